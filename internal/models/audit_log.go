package models

import "time"

// AuditLog is one staff action. Table actions use entity "table" and the
// table number as entity_id.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `gorm:"index" json:"user_id"`
	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50;index:idx_audit_entity" json:"entity"`
	EntityID string `gorm:"size:36;index:idx_audit_entity" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
