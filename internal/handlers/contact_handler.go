package handlers

import (
	"errors"
	"log"

	"rentall/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for the contact form.
type ContactHandler struct {
	service *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

// RegisterRoutes registers the contact routes. Submitting is public; reading
// the inbox requires auth.
func (h *ContactHandler) RegisterRoutes(router fiber.Router, required fiber.Handler) {
	contactRoutes := router.Group("/contact")
	contactRoutes.Post("/", h.HandleSubmit)
	contactRoutes.Get("/", required, h.HandleListAll)
}

// ContactRequest represents a contact form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// HandleSubmit stores a contact message and returns the stored receipt.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing contact request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	contact, err := h.service.Submit(req.Name, req.Email, req.Message)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide name, email, and message",
			})
		}
		log.Printf("Error storing contact message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

// HandleListAll returns all contact messages, newest first.
func (h *ContactHandler) HandleListAll(c *fiber.Ctx) error {
	contacts, err := h.service.ListAll()
	if err != nil {
		log.Printf("Error listing contact messages: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(contacts)
}
