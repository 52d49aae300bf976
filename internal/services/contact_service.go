package services

import (
	"rentall/internal/models"
	"rentall/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ContactService handles contact-form submissions. Messages have no owner
// and no auth model on intake.
type ContactService struct {
	repo     repositories.ContactRepository
	validate *validator.Validate
}

// NewContactService creates a new ContactService.
func NewContactService(repo repositories.ContactRepository) *ContactService {
	return &ContactService{
		repo:     repo,
		validate: validator.New(),
	}
}

// Submit stores an inquiry message. Name, email, and message are all
// required; the store assigns the id and timestamp.
func (s *ContactService) Submit(name, email, message string) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.validate.Struct(contact); err != nil {
		return nil, newValidationError(err)
	}
	if err := s.repo.Create(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// ListAll retrieves all contact messages, newest first.
func (s *ContactService) ListAll() ([]models.Contact, error) {
	return s.repo.GetAll()
}
