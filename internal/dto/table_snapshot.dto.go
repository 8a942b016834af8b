package dto

import "time"

// TableSnapshot is the read view of one table and its bound reservation.
type TableSnapshot struct {
	TableID   uint   `json:"table_id"`
	SalonID   string `json:"salon_id"`
	SalonName string `json:"salon_name"`
	Shape     string `json:"shape"`
	Size      string `json:"size"`
	Status    string `json:"status"`

	Reservation *ReservationView `json:"reservation,omitempty"`
}

type ReservationView struct {
	ID           string     `json:"id"`
	GuestName    string     `json:"guest_name"`
	PartySize    int        `json:"party_size"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	DurationHint string     `json:"duration_hint"`
	Origin       string     `json:"origin"`
	Notes        string     `json:"notes"`
	SalonName    string     `json:"salon_name"`
	CreatedAt    time.Time  `json:"created_at"`
	SeatedAt     *time.Time `json:"seated_at,omitempty"`
}

// TableListDTO is one row of a salon floor listing.
type TableListDTO struct {
	ID            uint    `json:"id"`
	Shape         string  `json:"shape"`
	Size          string  `json:"size"`
	Status        string  `json:"status"`
	ReservationID *string `json:"reservation_id"`
}
