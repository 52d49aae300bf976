package models

import "time"

// Contact is an inquiry submitted through the contact form. Messages have no
// owner and are never updated.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}
