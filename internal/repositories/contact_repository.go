package repositories

import "rentall/internal/models"

// ContactRepository defines the interface for contact-message data access.
// Messages are write-once; there is no update or delete.
type ContactRepository interface {
	Create(contact *models.Contact) error
	GetAll() ([]models.Contact, error)
}
