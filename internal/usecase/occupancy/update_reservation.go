package occupancy

import (
	"context"
	"errors"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/models"
)

type UpdateReservation struct {
	deps Deps
}

func NewUpdateReservation(deps Deps) *UpdateReservation {
	return &UpdateReservation{deps: deps}
}

// Execute merges patch into the reservation bound to tableID. Table status is
// unchanged. A free table has nothing to update and reports not found.
func (uc *UpdateReservation) Execute(
	ctx context.Context,
	tableID uint,
	patch domain.ReservationPatch,
	actorID *uint,
) (*models.Reservation, error) {
	return uc.apply(ctx, tableID, "", patch, actorID)
}

// resolveAttempts bounds how often ExecuteByReservation chases a reservation
// that keeps moving between tables.
const resolveAttempts = 3

// ExecuteByReservation patches reservationID wherever it is bound. The table is
// resolved first and confirmed again under its lock; a reservation that moved
// in between is looked up again.
func (uc *UpdateReservation) ExecuteByReservation(
	ctx context.Context,
	reservationID string,
	patch domain.ReservationPatch,
	actorID *uint,
) (*models.Reservation, error) {

	for attempt := 0; attempt < resolveAttempts; attempt++ {
		res, err := uc.deps.Repo.GetReservation(ctx, reservationID)
		if err != nil {
			return nil, err
		}
		if res.TableID == nil {
			return nil, domain.ErrNotFound
		}

		updated, err := uc.apply(ctx, *res.TableID, reservationID, patch, actorID)
		if errors.Is(err, errMoved) {
			continue
		}
		return updated, err
	}
	return nil, domain.ErrBusy
}

// errMoved reports that the locked table no longer holds the expected
// reservation. Nothing was written.
var errMoved = errors.New("reservation moved")

func (uc *UpdateReservation) apply(
	ctx context.Context,
	tableID uint,
	expectedID string,
	patch domain.ReservationPatch,
	actorID *uint,
) (*models.Reservation, error) {

	var res *models.Reservation

	err := uc.deps.withTables(ctx, []uint{tableID}, func(tx domain.Repository) error {
		table, err := tx.LockTable(ctx, tableID)
		if err != nil {
			return err
		}
		if table.ActiveReservationID == nil {
			if expectedID != "" {
				return errMoved
			}
			return domain.ErrNotFound
		}
		if expectedID != "" && *table.ActiveReservationID != expectedID {
			return errMoved
		}

		res, err = tx.GetReservation(ctx, *table.ActiveReservationID)
		if err != nil {
			return err
		}

		if err := domain.ApplyPatch(res, patch); err != nil {
			return err
		}
		return tx.SaveReservation(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	uc.deps.record(actorID, "reservation_updated", tableID, map[string]any{
		"reservation_id": res.ID,
	})

	uc.deps.emit(ctx, events.TableStatusEvent{
		EventType:      events.EventReservationUpdated,
		TableID:        tableID,
		Status:         tableStatusFor(res),
		PreviousStatus: tableStatusFor(res),
		ReservationID:  res.ID,
	})

	return res, nil
}

func tableStatusFor(res *models.Reservation) string {
	if res.SeatedAt != nil {
		return string(domain.StatusOccupied)
	}
	return string(domain.StatusReserved)
}
