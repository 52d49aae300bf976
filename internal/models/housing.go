package models

import "time"

// Housing represents a housing listing (room, apartment, or a spot in a
// shared room). Gender is only meaningful, and only required, for
// spot_in_room listings.
type Housing struct {
	ListingMeta
	ListingType    string     `json:"listingType" validate:"required,oneof=room apartment spot_in_room"`
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description" validate:"required"`
	Location       string     `json:"location" validate:"required,oneof='Orange County' 'Los Angeles'"`
	Address        string     `json:"address,omitempty"`
	Price          float64    `json:"price" validate:"gte=0"`
	Gender         string     `json:"gender,omitempty" validate:"required_if=ListingType spot_in_room,omitempty,oneof=men women any"`
	Amenities      []string   `json:"amenities" gorm:"serializer:json"`
	Thumbnail      string     `json:"thumbnail,omitempty"`
	Images         []string   `json:"images" gorm:"serializer:json"`
	ContactPhone   string     `json:"contactPhone" validate:"required"`
	ContactEmail   string     `json:"contactEmail,omitempty" validate:"omitempty,email"`
	AvailableFrom  time.Time  `json:"availableFrom" validate:"required"`
	AvailableUntil *time.Time `json:"availableUntil,omitempty"`
}

// ImageURLs returns every remotely hosted image attached to the listing,
// thumbnail first.
func (h *Housing) ImageURLs() []string {
	var urls []string
	if h.Thumbnail != "" {
		urls = append(urls, h.Thumbnail)
	}
	urls = append(urls, h.Images...)
	return urls
}
