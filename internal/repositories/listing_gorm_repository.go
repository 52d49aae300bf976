package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMListingRepository is a GORM implementation of ListingRepository,
// generic over the listing model it stores.
type GORMListingRepository[U any, T ListingPtr[U]] struct {
	db *gorm.DB
}

// NewGORMListingRepository creates a new instance of GORMListingRepository
// for one listing collection.
func NewGORMListingRepository[U any, T ListingPtr[U]](db *gorm.DB) *GORMListingRepository[U, T] {
	return &GORMListingRepository[U, T]{
		db: db,
	}
}

// GetAllActive retrieves all active listings, newest first.
func (r *GORMListingRepository[U, T]) GetAllActive() ([]T, error) {
	listings := make([]T, 0)
	if err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to get active listings: %w", err)
	}
	return listings, nil
}

// GetByOwner retrieves all active listings owned by the given user, newest
// first.
func (r *GORMListingRepository[U, T]) GetByOwner(userID string) ([]T, error) {
	listings := make([]T, 0)
	if err := r.db.Where("user_id = ? AND is_active = ?", userID, true).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to get listings for user %s: %w", userID, err)
	}
	return listings, nil
}

// GetByID retrieves a single listing by its ID.
func (r *GORMListingRepository[U, T]) GetByID(id string) (T, error) {
	var zero T
	var record U
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, fmt.Errorf("listing with ID %s: %w", id, ErrNotFound)
		}
		return zero, fmt.Errorf("failed to get listing by ID %s: %w", id, err)
	}
	return T(&record), nil
}

// Create creates a new listing in the database, assigning an ID when the
// caller did not.
func (r *GORMListingRepository[U, T]) Create(listing T) error {
	if listing.GetID() == "" {
		listing.SetID(uuid.New().String())
	}
	if err := r.db.Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// Update persists every field of an existing listing.
func (r *GORMListingRepository[U, T]) Update(listing T) error {
	res := r.db.Save(listing)
	if res.Error != nil {
		return fmt.Errorf("failed to update listing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("listing with ID %s: %w", listing.GetID(), ErrNotFound)
	}
	return nil
}

// Delete removes a listing permanently.
func (r *GORMListingRepository[U, T]) Delete(id string) error {
	var record U
	res := r.db.Delete(&record, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("listing with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
