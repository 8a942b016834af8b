package models

import "time"

type Reservation struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	GuestName    string `gorm:"size:150;not null" json:"guest_name"`
	PartySize    int    `gorm:"not null" json:"party_size"`
	Date         string `gorm:"size:10;not null" json:"date"`
	Time         string `gorm:"size:10;not null" json:"time"`
	DurationHint string `gorm:"size:20" json:"duration_hint"`
	Origin       string `gorm:"size:20;not null" json:"origin"`
	Notes        string `gorm:"type:text" json:"notes"`

	// SalonName is a display snapshot of the bound table's salon.
	SalonName string `gorm:"size:100" json:"salon_name"`

	TableID *uint `gorm:"uniqueIndex" json:"table_id"`

	Phone            string  `gorm:"size:30" json:"phone,omitempty"`
	Email            string  `gorm:"size:100" json:"email,omitempty"`
	BookingRequestID *string `gorm:"size:36;index" json:"booking_request_id,omitempty"`

	SeatedAt  *time.Time `json:"seated_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
