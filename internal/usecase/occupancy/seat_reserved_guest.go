package occupancy

import (
	"context"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/models"
)

type SeatReservedGuest struct {
	deps Deps
}

func NewSeatReservedGuest(deps Deps) *SeatReservedGuest {
	return &SeatReservedGuest{deps: deps}
}

// Execute marks a booked party as arrived: Reserved → Occupied. The
// reservation keeps its origin.
func (uc *SeatReservedGuest) Execute(
	ctx context.Context,
	tableID uint,
	actorID *uint,
) (*models.Reservation, error) {

	var res *models.Reservation

	err := uc.deps.withTables(ctx, []uint{tableID}, func(tx domain.Repository) error {
		table, err := tx.LockTable(ctx, tableID)
		if err != nil {
			return err
		}
		if err := domain.CanSeatReserved(domain.Status(table.Status)); err != nil {
			return err
		}

		res, err = tx.GetReservation(ctx, *table.ActiveReservationID)
		if err != nil {
			return err
		}

		now := uc.deps.now()
		res.SeatedAt = &now
		table.Status = string(domain.StatusOccupied)

		if err := tx.SaveReservation(ctx, res); err != nil {
			return err
		}
		return tx.SaveTable(ctx, table)
	})
	if err != nil {
		return nil, err
	}

	uc.deps.record(actorID, "guest_seated", tableID, map[string]any{
		"reservation_id": res.ID,
		"origin":         res.Origin,
	})

	uc.deps.emit(ctx, events.TableStatusEvent{
		EventType:      events.EventGuestSeated,
		TableID:        tableID,
		Status:         string(domain.StatusOccupied),
		PreviousStatus: string(domain.StatusReserved),
		ReservationID:  res.ID,
	})

	return res, nil
}
