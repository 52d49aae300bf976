package repositories

import (
	"errors"

	"rentall/internal/models"
)

// ErrNotFound is returned when a lookup matches no record. Implementations
// wrap it with context about the missing record.
var ErrNotFound = errors.New("record not found")

// ListingPtr constrains a type parameter to a pointer to a listing model
// (*models.Housing, *models.Auto, *models.Parcel).
type ListingPtr[U any] interface {
	*U
	models.Listing
}

// ListingRepository defines the data access contract shared by the three
// listing collections. One generic implementation replaces the three
// near-identical per-category repositories the API surface implies.
type ListingRepository[T models.Listing] interface {
	GetAllActive() ([]T, error)
	GetByOwner(userID string) ([]T, error)
	GetByID(id string) (T, error)
	Create(listing T) error
	Update(listing T) error
	Delete(id string) error
}
