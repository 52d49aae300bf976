package models

import "time"

// Parcel represents a courier offer: a traveler willing to carry parcels
// between the US and Kazakhstan. Parcel listings carry no images.
type Parcel struct {
	ListingMeta
	Direction    string    `json:"direction" validate:"required,oneof=US_to_Kazakhstan Kazakhstan_to_US"`
	TravelDate   time.Time `json:"travelDate" validate:"required"`
	LocationFrom string    `json:"locationFrom" validate:"required"`
	LocationTo   string    `json:"locationTo" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	ContactPhone string    `json:"contactPhone" validate:"required"`
	ContactEmail string    `json:"contactEmail,omitempty" validate:"omitempty,email"`
}

func (p *Parcel) ImageURLs() []string { return nil }
