package occupancy

import (
	"context"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/models"
	"github.com/Soulinho/pandawok-project/internal/timezone"
)

type SeatWalkInInput struct {
	TableID   uint
	GuestName string
	PartySize int
	Notes     string
	ActorID   *uint
}

type SeatWalkIn struct {
	deps Deps
}

func NewSeatWalkIn(deps Deps) *SeatWalkIn {
	return &SeatWalkIn{deps: deps}
}

// Execute seats a party without a booking: Free → Occupied.
func (uc *SeatWalkIn) Execute(
	ctx context.Context,
	in SeatWalkInInput,
) (*models.Reservation, error) {

	now := uc.deps.now()

	res, err := domain.NewReservation(domain.ReservationFields{
		GuestName:    in.GuestName,
		PartySize:    in.PartySize,
		Date:         now.Format(timezone.DateLayout),
		Time:         now.Format(timezone.TimeLayout),
		DurationHint: domain.WalkInDuration,
		Origin:       domain.OriginWalkIn,
		Notes:        in.Notes,
	}, now)
	if err != nil {
		return nil, err
	}
	res.SeatedAt = &now

	err = uc.deps.withTables(ctx, []uint{in.TableID}, func(tx domain.Repository) error {
		table, err := tx.LockTable(ctx, in.TableID)
		if err != nil {
			return err
		}
		if err := domain.CanPlace(domain.Status(table.Status)); err != nil {
			return err
		}

		blocks, err := tx.ListBlocksForDate(ctx, table.ID, res.Date)
		if err != nil {
			return err
		}
		if domain.IsBlocked(blocks, res.Date, now.Hour()*60+now.Minute()) {
			return domain.ErrTableBlocked
		}

		salon, err := tx.GetSalon(ctx, table.SalonID)
		if err != nil {
			return err
		}

		domain.Bind(table, res, domain.StatusOccupied, salon.Name)

		if err := tx.CreateReservation(ctx, res); err != nil {
			if httperr.IsUniqueViolation(err) {
				return domain.ErrInvalidState
			}
			return err
		}
		return tx.SaveTable(ctx, table)
	})
	if err != nil {
		return nil, err
	}

	uc.deps.record(in.ActorID, "walkin_seated", in.TableID, map[string]any{
		"reservation_id": res.ID,
		"party_size":     res.PartySize,
	})

	uc.deps.emit(ctx, events.TableStatusEvent{
		EventType:      events.EventWalkInSeated,
		TableID:        in.TableID,
		Status:         string(domain.StatusOccupied),
		PreviousStatus: string(domain.StatusFree),
		ReservationID:  res.ID,
	})

	return res, nil
}
