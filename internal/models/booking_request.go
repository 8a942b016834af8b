package models

import "time"

// BookingRequest is a public reservation request awaiting staff action.
type BookingRequest struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Phone     string `gorm:"size:30;not null" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`

	PartySize int    `gorm:"not null" json:"party_size"`
	Date      string `gorm:"size:10;not null" json:"date"`
	Time      string `gorm:"size:10;not null" json:"time"`
	Comments  string `gorm:"type:text" json:"comments"`

	Status        string  `gorm:"size:30;index;not null" json:"status"`
	RejectReason  string  `gorm:"size:255" json:"reject_reason,omitempty"`
	ClientID      *uint   `json:"client_id"`
	ReservationID *string `gorm:"size:36" json:"reservation_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
