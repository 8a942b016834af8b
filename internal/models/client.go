package models

import "time"

// Guest directory entry, no login.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Phone     string `gorm:"size:30;uniqueIndex;not null" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
