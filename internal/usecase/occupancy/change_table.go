package occupancy

import (
	"context"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/models"
)

type ChangeTableInput struct {
	FromTableID uint
	ToTableID   uint
	ActorID     *uint
}

type ChangeTable struct {
	deps Deps
}

func NewChangeTable(deps Deps) *ChangeTable {
	return &ChangeTable{deps: deps}
}

// Execute moves the source table's reservation to a free target table. The
// target inherits the source status and the source becomes free. Both tables
// change in one transaction or not at all.
func (uc *ChangeTable) Execute(
	ctx context.Context,
	in ChangeTableInput,
) (*models.Reservation, error) {

	if in.FromTableID == in.ToTableID {
		return nil, domain.ErrInvalidState
	}

	var (
		res    *models.Reservation
		status domain.Status
	)

	ids := []uint{in.FromTableID, in.ToTableID}
	err := uc.deps.withTables(ctx, ids, func(tx domain.Repository) error {
		// row locks follow the same ascending order as the table locks
		first, second := in.FromTableID, in.ToTableID
		if second < first {
			first, second = second, first
		}
		a, err := tx.LockTable(ctx, first)
		if err != nil {
			return err
		}
		b, err := tx.LockTable(ctx, second)
		if err != nil {
			return err
		}

		source, target := a, b
		if source.ID != in.FromTableID {
			source, target = b, a
		}

		if err := domain.CanMove(domain.Status(source.Status), domain.Status(target.Status)); err != nil {
			return err
		}

		res, err = tx.GetReservation(ctx, *source.ActiveReservationID)
		if err != nil {
			return err
		}

		salon, err := tx.GetSalon(ctx, target.SalonID)
		if err != nil {
			return err
		}

		status = domain.Status(source.Status)

		// source first so the unique bindings never collide mid-move
		domain.Unbind(source)
		if err := tx.SaveTable(ctx, source); err != nil {
			return err
		}

		domain.Bind(target, res, status, salon.Name)
		if err := tx.SaveReservation(ctx, res); err != nil {
			return err
		}
		if err := tx.SaveTable(ctx, target); err != nil {
			if httperr.IsUniqueViolation(err) {
				return domain.ErrTargetNotFree
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.deps.record(in.ActorID, "table_changed", in.FromTableID, map[string]any{
		"reservation_id": res.ID,
		"from_table_id":  in.FromTableID,
		"to_table_id":    in.ToTableID,
		"status":         string(status),
	})

	uc.deps.emit(ctx, events.TableStatusEvent{
		EventType:      events.EventTableChanged,
		TableID:        in.FromTableID,
		Status:         string(domain.StatusFree),
		PreviousStatus: string(status),
		ReservationID:  res.ID,
		Reason:         "moved",
	})
	uc.deps.emit(ctx, events.TableStatusEvent{
		EventType:      events.EventTableChanged,
		TableID:        in.ToTableID,
		Status:         string(status),
		PreviousStatus: string(domain.StatusFree),
		ReservationID:  res.ID,
		Reason:         "moved",
	})

	return res, nil
}
