package occupancy

import (
	"context"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/models"
)

// release unbinds the table's reservation and destroys it: Reserved or
// Occupied → Free. It returns the removed reservation and the previous status.
func release(
	ctx context.Context,
	deps Deps,
	tableID uint,
) (*models.Reservation, domain.Status, error) {

	var (
		res      *models.Reservation
		previous domain.Status
	)

	err := deps.withTables(ctx, []uint{tableID}, func(tx domain.Repository) error {
		table, err := tx.LockTable(ctx, tableID)
		if err != nil {
			return err
		}
		previous = domain.Status(table.Status)
		if err := domain.CanRelease(previous); err != nil {
			return err
		}

		res, err = tx.GetReservation(ctx, *table.ActiveReservationID)
		if err != nil {
			return err
		}

		domain.Unbind(table)
		if err := tx.SaveTable(ctx, table); err != nil {
			return err
		}
		return tx.DeleteReservation(ctx, res.ID)
	})
	if err != nil {
		return nil, "", err
	}
	return res, previous, nil
}

// ======================================================
// FINALIZE
// ======================================================

type Finalize struct {
	deps Deps
}

func NewFinalize(deps Deps) *Finalize {
	return &Finalize{deps: deps}
}

// Execute closes the service at a table.
func (uc *Finalize) Execute(ctx context.Context, tableID uint, actorID *uint) error {
	res, previous, err := release(ctx, uc.deps, tableID)
	if err != nil {
		return err
	}

	uc.deps.record(actorID, "reservation_finalized", tableID, map[string]any{
		"reservation_id": res.ID,
		"guest_name":     res.GuestName,
		"origin":         res.Origin,
		"previous":       string(previous),
	})

	uc.deps.emit(ctx, events.TableStatusEvent{
		EventType:      events.EventReservationClosed,
		TableID:        tableID,
		Status:         string(domain.StatusFree),
		PreviousStatus: string(previous),
		ReservationID:  res.ID,
		Reason:         "finalized",
	})
	return nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteReservation struct {
	deps Deps
}

func NewDeleteReservation(deps Deps) *DeleteReservation {
	return &DeleteReservation{deps: deps}
}

// Execute cancels the table's reservation.
func (uc *DeleteReservation) Execute(ctx context.Context, tableID uint, actorID *uint) error {
	res, previous, err := release(ctx, uc.deps, tableID)
	if err != nil {
		return err
	}

	uc.deps.record(actorID, "reservation_deleted", tableID, map[string]any{
		"reservation_id": res.ID,
		"guest_name":     res.GuestName,
		"origin":         res.Origin,
		"previous":       string(previous),
	})

	uc.deps.emit(ctx, events.TableStatusEvent{
		EventType:      events.EventReservationDeleted,
		TableID:        tableID,
		Status:         string(domain.StatusFree),
		PreviousStatus: string(previous),
		ReservationID:  res.ID,
		Reason:         "deleted",
	})
	return nil
}
