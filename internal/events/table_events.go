package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Soulinho/pandawok-project/internal/logger"
)

const TableStatusSubject = "pandawok.tables.status"

const (
	EventReservationPlaced  = "reservation.placed"
	EventWalkInSeated       = "walkin.seated"
	EventGuestSeated        = "guest.seated"
	EventTableChanged       = "table.changed"
	EventReservationClosed  = "reservation.finalized"
	EventReservationDeleted = "reservation.deleted"
	EventReservationUpdated = "reservation.updated"
)

type TableStatusEvent struct {
	EventType      string    `json:"event_type"`
	TableID        uint      `json:"table_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status"`
	ReservationID  string    `json:"reservation_id,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Source         string    `json:"source"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// TableEmitter publishes committed table state changes. Failures are logged
// and never reach the caller.
type TableEmitter struct {
	pub Publisher
}

func NewTableEmitter(pub Publisher) *TableEmitter {
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &TableEmitter{pub: pub}
}

func (e *TableEmitter) Emit(ctx context.Context, ev TableStatusEvent) {
	if e == nil {
		return
	}
	if ev.Source == "" {
		ev.Source = "pandawok-api"
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		logger.ErrorLogger.WithError(err).Error("table event marshal failed")
		return
	}

	if err := e.pub.Publish(ctx, TableStatusSubject, body); err != nil {
		logger.ErrorLogger.WithError(err).
			WithField("event_type", ev.EventType).
			WithField("table_id", ev.TableID).
			Error("table event publish failed")
	}
}
