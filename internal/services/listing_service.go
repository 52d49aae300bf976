package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"rentall/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ImageCleaner removes remotely hosted images. Failures are handled inside
// the implementation; the call never reports one.
type ImageCleaner interface {
	DeleteListingImages(ctx context.Context, urls []string)
}

// EventPublisher publishes listing lifecycle events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ListingService implements the CRUD-and-ownership contract shared by the
// housing, auto, and parcel categories. One generic service parameterized by
// the category model replaces three duplicated ones.
type ListingService[U any, T repositories.ListingPtr[U]] struct {
	repo     repositories.ListingRepository[T]
	images   ImageCleaner
	events   EventPublisher
	validate *validator.Validate
	category string
}

// NewListingService creates a new ListingService for one category. The image
// cleaner and event publisher are optional; nil skips them.
func NewListingService[U any, T repositories.ListingPtr[U]](
	repo repositories.ListingRepository[T],
	images ImageCleaner,
	events EventPublisher,
	category string,
) *ListingService[U, T] {
	return &ListingService[U, T]{
		repo:     repo,
		images:   images,
		events:   events,
		validate: newValidator(),
		category: category,
	}
}

// ListPublic retrieves all active listings, newest first. No auth required.
func (s *ListingService[U, T]) ListPublic() ([]T, error) {
	return s.repo.GetAllActive()
}

// ListMine retrieves the caller's active listings, newest first.
func (s *ListingService[U, T]) ListMine(userID string) ([]T, error) {
	return s.repo.GetByOwner(userID)
}

// GetByID retrieves a single listing. Any caller may read any listing; the
// identifier is checked before the store is touched.
func (s *ListingService[U, T]) GetByID(id string) (T, error) {
	var zero T
	if _, err := uuid.Parse(id); err != nil {
		return zero, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	listing, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return listing, nil
}

// Create validates the payload against the category schema and stores it.
// The owner is always the authenticated caller; any owner value in the
// payload is discarded.
func (s *ListingService[U, T]) Create(userID string, payload []byte) (T, error) {
	var zero T
	var record U
	listing := T(&record)
	if err := json.Unmarshal(payload, listing); err != nil {
		return zero, &ValidationError{Fields: map[string]string{"body": "invalid request body"}}
	}

	listing.SetID("")
	listing.SetUserID(userID)
	listing.Activate()

	if err := s.validate.Struct(listing); err != nil {
		return zero, newValidationError(err)
	}
	if err := s.repo.Create(listing); err != nil {
		return zero, err
	}

	s.publishEvent("listing.created", listing)
	return listing, nil
}

// Update merges the payload over the stored listing, re-validates the result,
// and persists it. Only the owner may update; id, owner, and creation time
// survive the merge untouched.
func (s *ListingService[U, T]) Update(userID, id string, payload []byte) (T, error) {
	var zero T
	listing, err := s.GetByID(id)
	if err != nil {
		return zero, err
	}
	if listing.GetUserID() != userID {
		return zero, ErrForbidden
	}

	prevID := listing.GetID()
	prevOwner := listing.GetUserID()
	prevCreated := listing.GetCreatedAt()

	if err := json.Unmarshal(payload, listing); err != nil {
		return zero, &ValidationError{Fields: map[string]string{"body": "invalid request body"}}
	}

	listing.SetID(prevID)
	listing.SetUserID(prevOwner)
	listing.SetCreatedAt(prevCreated)

	if err := s.validate.Struct(listing); err != nil {
		return zero, newValidationError(err)
	}
	if err := s.repo.Update(listing); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return listing, nil
}

// Delete removes a listing permanently. Associated hosted images are cleaned
// up best-effort first; image cleanup can never fail or abort the deletion.
func (s *ListingService[U, T]) Delete(ctx context.Context, userID, id string) error {
	listing, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if listing.GetUserID() != userID {
		return ErrForbidden
	}

	if s.images != nil {
		if urls := listing.ImageURLs(); len(urls) > 0 {
			s.images.DeleteListingImages(ctx, urls)
		}
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.publishEvent("listing.deleted", listing)
	return nil
}

// publishEvent publishes a lifecycle event best-effort. A missing broker or a
// publish failure is logged and swallowed.
func (s *ListingService[U, T]) publishEvent(event string, listing T) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":     event,
		"category":  s.category,
		"listingID": listing.GetID(),
		"userID":    listing.GetUserID(),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for %s %s: %v", event, s.category, listing.GetID(), err)
		return
	}
	if err := s.events.Publish(event, body); err != nil {
		log.Printf("Warning: failed to publish %s event for %s %s: %v", event, s.category, listing.GetID(), err)
	}
}
