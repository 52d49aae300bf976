package models

import "time"

// Listing is the common contract the three category models share. The generic
// listing service and repository only touch listings through it.
type Listing interface {
	GetID() string
	SetID(id string)
	GetUserID() string
	SetUserID(id string)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	Activate()
	ImageURLs() []string
}

// ListingMeta holds the fields every listing category carries: the
// store-assigned identifier, the owner reference, the active flag, and the
// timestamps GORM maintains.
type ListingMeta struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user" gorm:"index;type:varchar(36)" validate:"required"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *ListingMeta) GetID() string            { return m.ID }
func (m *ListingMeta) SetID(id string)          { m.ID = id }
func (m *ListingMeta) GetUserID() string        { return m.UserID }
func (m *ListingMeta) SetUserID(id string)      { m.UserID = id }
func (m *ListingMeta) GetCreatedAt() time.Time  { return m.CreatedAt }
func (m *ListingMeta) SetCreatedAt(t time.Time) { m.CreatedAt = t }
func (m *ListingMeta) Activate()                { m.IsActive = true }
