// Package cloudinary deletes remotely hosted listing images. Everything here
// is best-effort: failures are logged and swallowed so that listing deletion
// can never be blocked by the image host.
package cloudinary

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Config holds the Admin API credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Client wraps the Cloudinary SDK for listing-image cleanup.
type Client struct {
	cld *cloudinary.Cloudinary
}

// NewClient creates a new Cloudinary client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}
	return &Client{cld: cld}, nil
}

var versionPrefix = regexp.MustCompile(`^v\d+/`)

// ExtractPublicID derives the storage identifier from a Cloudinary delivery
// URL: the path after the /upload/ segment, with an optional v<digits>
// version segment and the file extension stripped. The public ID may contain
// folders (e.g. "rentall/image1").
func ExtractPublicID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid image URL %q: %w", rawURL, err)
	}

	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex == -1 || uploadIndex == len(parts)-1 {
		return "", fmt.Errorf("no upload segment in image URL %q", rawURL)
	}

	publicID := strings.Join(parts[uploadIndex+1:], "/")
	publicID = versionPrefix.ReplaceAllString(publicID, "")
	if ext := strings.LastIndex(publicID, "."); ext > strings.LastIndex(publicID, "/") && ext != -1 {
		publicID = publicID[:ext]
	}
	if publicID == "" {
		return "", fmt.Errorf("empty public ID in image URL %q", rawURL)
	}
	return publicID, nil
}

// DeleteListingImages deletes each hosted image independently and
// concurrently, waiting for all attempts. A single failure does not affect
// the others and is never reported to the caller.
func (c *Client) DeleteListingImages(ctx context.Context, urls []string) {
	var wg sync.WaitGroup
	for _, u := range urls {
		if u == "" {
			continue
		}
		wg.Add(1)
		go func(imageURL string) {
			defer wg.Done()
			c.deleteImage(ctx, imageURL)
		}(u)
	}
	wg.Wait()
}

func (c *Client) deleteImage(ctx context.Context, imageURL string) {
	publicID, err := ExtractPublicID(imageURL)
	if err != nil {
		log.Printf("Skipping image cleanup: %v", err)
		return
	}

	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		log.Printf("Failed to delete image %s from Cloudinary: %v", publicID, err)
		return
	}
	switch resp.Result {
	case "ok":
		log.Printf("Deleted image from Cloudinary: %s", publicID)
	case "not found":
		log.Printf("Image not found in Cloudinary (may have been deleted already): %s", publicID)
	default:
		log.Printf("Unexpected result from Cloudinary delete for %s: %s", publicID, resp.Result)
	}
}
