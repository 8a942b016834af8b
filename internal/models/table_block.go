package models

import "time"

type TableBlock struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	TableID uint   `gorm:"index;not null" json:"table_id"`

	Reason    string `gorm:"size:255;not null" json:"reason"`
	Date      string `gorm:"size:10;not null" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedBy *uint     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
