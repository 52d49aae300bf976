package handlers

import (
	"errors"
	"fmt"
	"log"

	"rentall/internal/models"
	"rentall/internal/repositories"
	"rentall/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ListingHandler handles HTTP requests for one listing category. It is
// generic over the category model; the three categories are three
// instantiations of the same handler.
type ListingHandler[U any, T repositories.ListingPtr[U]] struct {
	service  *services.ListingService[U, T]
	category string // route segment and message noun, e.g. "housing"
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler[U any, T repositories.ListingPtr[U]](service *services.ListingService[U, T], category string) *ListingHandler[U, T] {
	return &ListingHandler[U, T]{
		service:  service,
		category: category,
	}
}

// RegisterRoutes registers the category routes. Reads are public (with
// optional identity); mutations and my-listings require auth.
func (h *ListingHandler[U, T]) RegisterRoutes(router fiber.Router, required, optional fiber.Handler) {
	routes := router.Group("/" + h.category)
	routes.Get("/", optional, h.HandleList)
	routes.Get("/my-listings", required, h.HandleMyListings)
	routes.Get("/:id", optional, h.HandleGetByID)
	routes.Post("/", required, h.HandleCreate)
	routes.Put("/:id", required, h.HandleUpdate)
	routes.Delete("/:id", required, h.HandleDelete)
}

// currentUser returns the user the auth gate attached to the request.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// respondError maps service failures onto the HTTP statuses of the API
// contract.
func (h *ListingHandler[U, T]) respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, services.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid %s ID format", h.category),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("%s listing not found", h.category),
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to modify this listing",
		})
	default:
		log.Printf("Unhandled %s error: %v", h.category, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

// HandleList returns all active listings, newest first.
func (h *ListingHandler[U, T]) HandleList(c *fiber.Ctx) error {
	listings, err := h.service.ListPublic()
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(listings)
}

// HandleMyListings returns the caller's active listings, newest first.
func (h *ListingHandler[U, T]) HandleMyListings(c *fiber.Ctx) error {
	listings, err := h.service.ListMine(currentUser(c).ID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(listings)
}

// HandleGetByID returns a single listing. Anyone may read any listing.
func (h *ListingHandler[U, T]) HandleGetByID(c *fiber.Ctx) error {
	listing, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(listing)
}

// HandleCreate validates and stores a new listing owned by the caller.
func (h *ListingHandler[U, T]) HandleCreate(c *fiber.Ctx) error {
	listing, err := h.service.Create(currentUser(c).ID, c.Body())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// HandleUpdate merges the payload over an existing listing the caller owns.
func (h *ListingHandler[U, T]) HandleUpdate(c *fiber.Ctx) error {
	listing, err := h.service.Update(currentUser(c).ID, c.Params("id"), c.Body())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(listing)
}

// HandleDelete removes a listing the caller owns, cleaning up its hosted
// images best-effort.
func (h *ListingHandler[U, T]) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), currentUser(c).ID, c.Params("id")); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s listing deleted successfully", h.category),
	})
}
