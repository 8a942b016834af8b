package models

import "time"

type Salon struct {
	ID       string `gorm:"primaryKey;size:50" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Position int    `gorm:"default:0" json:"position"`

	Tables []Table `gorm:"foreignKey:SalonID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"tables,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
