package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/Soulinho/pandawok-project/internal/models"
)

// Store persists audit events to the audit_logs table.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Write(ctx context.Context, ev Event) error {
	var meta string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = string(b)
		}
	}

	return s.db.WithContext(ctx).Create(&models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}).Error
}

// Filter narrows a Query. Zero fields match everything.
type Filter struct {
	Action   string
	Entity   string
	EntityID string
	From     *time.Time
	To       *time.Time

	Page  int
	Limit int
}

func (f *Filter) normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
}

// Query returns one page of matching entries, newest first, and the total
// match count.
func (s *Store) Query(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f.normalize()

	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
