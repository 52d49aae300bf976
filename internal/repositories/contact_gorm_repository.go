package repositories

import (
	"fmt"

	"rentall/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// Create stores a new contact message.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// GetAll retrieves all contact messages, newest first.
func (r *GORMContactRepository) GetAll() ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	if err := r.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	return contacts, nil
}
