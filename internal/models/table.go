package models

import "time"

// Table ids are allocated by the registry, never by the database.
type Table struct {
	ID uint `gorm:"primaryKey;autoIncrement:false" json:"id"`

	SalonID string `gorm:"size:50;index;not null" json:"salon_id"`

	Shape  string `gorm:"size:20;not null" json:"shape"`
	Size   string `gorm:"size:20;not null" json:"size"`
	Status string `gorm:"size:20;not null;default:'free'" json:"status"`

	ActiveReservationID *string `gorm:"size:36;uniqueIndex" json:"active_reservation_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
