package models

import "time"

// Auto represents a vehicle listing, for rent or for sale. AvailableFrom is
// required only for rentals. The year upper bound (next model year) is
// enforced by the vehicle_year validation rule registered by the services
// package.
type Auto struct {
	ListingMeta
	ListingType    string     `json:"listingType" validate:"required,oneof=rent sale"`
	Make           string     `json:"make" validate:"required"`
	Model          string     `json:"model" validate:"required"`
	Year           int        `json:"year" validate:"required,gte=1900,vehicle_year"`
	Location       string     `json:"location" validate:"required,oneof='Orange County' 'Los Angeles'"`
	Address        string     `json:"address,omitempty"`
	Price          float64    `json:"price" validate:"gte=0"`
	Mileage        int        `json:"mileage" validate:"gte=0"`
	Condition      string     `json:"condition" validate:"required,oneof=excellent good fair poor"`
	Transmission   string     `json:"transmission" validate:"required,oneof=automatic manual"`
	FuelType       string     `json:"fuelType" validate:"required,oneof=gasoline electric hybrid diesel"`
	Description    string     `json:"description" validate:"required"`
	Thumbnail      string     `json:"thumbnail,omitempty"`
	Images         []string   `json:"images" gorm:"serializer:json"`
	ContactPhone   string     `json:"contactPhone" validate:"required"`
	ContactEmail   string     `json:"contactEmail,omitempty" validate:"omitempty,email"`
	AvailableFrom  time.Time  `json:"availableFrom" validate:"required_if=ListingType rent"`
	AvailableUntil *time.Time `json:"availableUntil,omitempty"`
}

func (a *Auto) ImageURLs() []string {
	var urls []string
	if a.Thumbnail != "" {
		urls = append(urls, a.Thumbnail)
	}
	urls = append(urls, a.Images...)
	return urls
}
