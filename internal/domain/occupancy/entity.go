package occupancy

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/models"
	"github.com/Soulinho/pandawok-project/internal/timezone"
)

const WalkInDuration = "N/A"

// ReservationFields is the data needed to create a reservation record.
type ReservationFields struct {
	GuestName    string
	PartySize    int
	Date         string
	Time         string
	DurationHint string
	Origin       Origin
	Notes        string

	Phone            string
	Email            string
	BookingRequestID *string
}

// ReservationPatch carries a partial update. Nil fields are left untouched.
type ReservationPatch struct {
	GuestName    *string
	PartySize    *int
	Date         *string
	Time         *string
	DurationHint *string
	Notes        *string
	Phone        *string
	Email        *string

	Origin    *string
	CreatedAt *time.Time
}

// NewReservation validates f and builds an unbound reservation.
func NewReservation(f ReservationFields, now time.Time) (*models.Reservation, error) {
	var bad []string

	name := strings.TrimSpace(f.GuestName)
	if name == "" {
		bad = append(bad, "guest_name")
	}
	if f.PartySize <= 0 {
		bad = append(bad, "party_size")
	}
	if _, err := time.Parse(timezone.DateLayout, f.Date); err != nil {
		bad = append(bad, "date")
	}
	if strings.TrimSpace(f.Time) == "" {
		bad = append(bad, "time")
	}
	switch f.Origin {
	case OriginRestaurant, OriginWeb, OriginWalkIn:
	default:
		bad = append(bad, "origin")
	}
	if len(bad) > 0 {
		return nil, httperr.ErrValidation(bad...)
	}

	return &models.Reservation{
		ID:               uuid.NewString(),
		GuestName:        name,
		PartySize:        f.PartySize,
		Date:             f.Date,
		Time:             strings.TrimSpace(f.Time),
		DurationHint:     f.DurationHint,
		Origin:           string(f.Origin),
		Notes:            f.Notes,
		Phone:            f.Phone,
		Email:            f.Email,
		BookingRequestID: f.BookingRequestID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// ApplyPatch merges p into r. A patch naming origin or creation time is
// rejected whole, whatever value it carries.
func ApplyPatch(r *models.Reservation, p ReservationPatch) error {
	if p.Origin != nil || p.CreatedAt != nil {
		return ErrImmutableFieldViolation
	}

	var bad []string
	if p.GuestName != nil && strings.TrimSpace(*p.GuestName) == "" {
		bad = append(bad, "guest_name")
	}
	if p.PartySize != nil && *p.PartySize <= 0 {
		bad = append(bad, "party_size")
	}
	if p.Date != nil {
		if _, err := time.Parse(timezone.DateLayout, *p.Date); err != nil {
			bad = append(bad, "date")
		}
	}
	if p.Time != nil && strings.TrimSpace(*p.Time) == "" {
		bad = append(bad, "time")
	}
	if len(bad) > 0 {
		return httperr.ErrValidation(bad...)
	}

	if p.GuestName != nil {
		r.GuestName = strings.TrimSpace(*p.GuestName)
	}
	if p.PartySize != nil {
		r.PartySize = *p.PartySize
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Time != nil {
		r.Time = strings.TrimSpace(*p.Time)
	}
	if p.DurationHint != nil {
		r.DurationHint = *p.DurationHint
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	return nil
}

// ===============================
// Binding
// ===============================

// Bind links t and r and moves t to status. The caller persists both.
func Bind(t *models.Table, r *models.Reservation, status Status, salonName string) {
	id := t.ID
	r.TableID = &id
	r.SalonName = salonName

	resID := r.ID
	t.ActiveReservationID = &resID
	t.Status = string(status)
}

// Unbind returns t to Free.
func Unbind(t *models.Table) {
	t.ActiveReservationID = nil
	t.Status = string(StatusFree)
}

// ===============================
// Blocks
// ===============================

// IsBlocked reports whether any block covers date at the given minute of day.
// Blocks are half-open: [start, end).
func IsBlocked(blocks []models.TableBlock, date string, minute int) bool {
	for _, b := range blocks {
		if b.Date != date {
			continue
		}
		start, err1 := timezone.ParseClock(b.StartTime)
		end, err2 := timezone.ParseClock(b.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if minute >= start && minute < end {
			return true
		}
	}
	return false
}

// NewBlock validates a block window.
func NewBlock(tableID uint, reason, date, start, end string) (*models.TableBlock, error) {
	var bad []string

	reason = strings.TrimSpace(reason)
	if reason == "" {
		bad = append(bad, "reason")
	}
	if _, err := time.Parse(timezone.DateLayout, date); err != nil {
		bad = append(bad, "date")
	}
	s, errS := timezone.ParseClock(start)
	if errS != nil {
		bad = append(bad, "start_time")
	}
	e, errE := timezone.ParseClock(end)
	if errE != nil {
		bad = append(bad, "end_time")
	}
	if errS == nil && errE == nil && e <= s {
		bad = append(bad, "end_time")
	}
	if len(bad) > 0 {
		return nil, httperr.ErrValidation(bad...)
	}

	return &models.TableBlock{
		ID:        uuid.NewString(),
		TableID:   tableID,
		Reason:    reason,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}
