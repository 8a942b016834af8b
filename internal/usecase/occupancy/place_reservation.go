package occupancy

import (
	"context"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/models"
	"github.com/Soulinho/pandawok-project/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type PlaceReservationInput struct {
	TableID uint

	GuestName    string
	PartySize    int
	Date         string
	Time         string
	Notes        string
	Origin       string
	DurationHint string

	Phone            string
	Email            string
	BookingRequestID *string

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type PlaceReservation struct {
	deps Deps
}

func NewPlaceReservation(deps Deps) *PlaceReservation {
	return &PlaceReservation{deps: deps}
}

// Execute books a free table: Free → Reserved.
func (uc *PlaceReservation) Execute(
	ctx context.Context,
	in PlaceReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// Origin: staff bookings default to Restaurant
	// --------------------------------------------------
	origin := domain.Origin(in.Origin)
	if origin == "" {
		origin = domain.OriginRestaurant
	}
	if origin == domain.OriginWalkIn {
		return nil, httperr.ErrValidation("origin")
	}

	duration := in.DurationHint
	if duration == "" {
		duration = uc.deps.DurationHint
	}

	res, err := domain.NewReservation(domain.ReservationFields{
		GuestName:        in.GuestName,
		PartySize:        in.PartySize,
		Date:             in.Date,
		Time:             in.Time,
		DurationHint:     duration,
		Origin:           origin,
		Notes:            in.Notes,
		Phone:            in.Phone,
		Email:            in.Email,
		BookingRequestID: in.BookingRequestID,
	}, uc.deps.now())
	if err != nil {
		return nil, err
	}

	err = uc.deps.withTables(ctx, []uint{in.TableID}, func(tx domain.Repository) error {
		table, err := tx.LockTable(ctx, in.TableID)
		if err != nil {
			return err
		}
		if err := domain.CanPlace(domain.Status(table.Status)); err != nil {
			return err
		}

		// --------------------------------------------------
		// Blocks only apply when the time is a wall clock
		// --------------------------------------------------
		if minute, err := timezone.ParseClock(res.Time); err == nil {
			blocks, err := tx.ListBlocksForDate(ctx, table.ID, res.Date)
			if err != nil {
				return err
			}
			if domain.IsBlocked(blocks, res.Date, minute) {
				return domain.ErrTableBlocked
			}
		}

		salon, err := tx.GetSalon(ctx, table.SalonID)
		if err != nil {
			return err
		}

		domain.Bind(table, res, domain.StatusReserved, salon.Name)

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

	uc.deps.record(in.ActorID, "reservation_placed", in.TableID, map[string]any{
		"reservation_id": res.ID,
		"origin":         res.Origin,
		"party_size":     res.PartySize,
		"date":           res.Date,
		"time":           res.Time,
	})

	uc.deps.emit(ctx, events.TableStatusEvent{
		EventType:      events.EventReservationPlaced,
		TableID:        in.TableID,
		Status:         string(domain.StatusReserved),
		PreviousStatus: string(domain.StatusFree),
		ReservationID:  res.ID,
	})

	return res, nil
}
