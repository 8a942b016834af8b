package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func validFields() ReservationFields {
	return ReservationFields{
		GuestName:    "Ana Ruiz",
		PartySize:    4,
		Date:         "2026-10-20",
		Time:         "13:00",
		DurationHint: "3h",
		Origin:       OriginRestaurant,
	}
}

func TestNewReservation_Valid(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	r, err := NewReservation(validFields(), now)
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Ana Ruiz", r.GuestName)
	assert.Equal(t, "Restaurant", r.Origin)
	assert.Equal(t, now, r.CreatedAt)
	assert.Nil(t, r.TableID)
}

func TestNewReservation_RejectsEveryBadField(t *testing.T) {
	f := validFields()
	f.GuestName = "   "
	f.PartySize = 0
	f.Date = "20/10/2026"
	f.Time = ""
	f.Origin = "Phone"

	_, err := NewReservation(f, time.Now())
	require.Error(t, err)

	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"guest_name", "party_size", "date", "time", "origin"}, ve.Fields)
}

func TestApplyPatch_MergesFields(t *testing.T) {
	r, err := NewReservation(validFields(), time.Now())
	require.NoError(t, err)

	err = ApplyPatch(r, ReservationPatch{
		PartySize: intPtr(6),
		Notes:     strPtr("window seat"),
	})
	require.NoError(t, err)

	assert.Equal(t, 6, r.PartySize)
	assert.Equal(t, "window seat", r.Notes)
	assert.Equal(t, "Ana Ruiz", r.GuestName)
}

func TestApplyPatch_OriginIsImmutable(t *testing.T) {
	r, err := NewReservation(validFields(), time.Now())
	require.NoError(t, err)

	err = ApplyPatch(r, ReservationPatch{Origin: strPtr("WalkIn"), PartySize: intPtr(9)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeImmutableFieldViolation))
	assert.Equal(t, 4, r.PartySize, "rejected patch must not apply partially")

	err = ApplyPatch(r, ReservationPatch{Origin: strPtr("Restaurant"), PartySize: intPtr(9)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeImmutableFieldViolation), "current value is rejected too")
	assert.Equal(t, 4, r.PartySize)
	assert.Equal(t, "Restaurant", r.Origin)
}

func TestApplyPatch_CreatedAtIsImmutable(t *testing.T) {
	r, err := NewReservation(validFields(), time.Now())
	require.NoError(t, err)

	other := r.CreatedAt.Add(-time.Hour)
	err = ApplyPatch(r, ReservationPatch{CreatedAt: &other})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeImmutableFieldViolation))

	same := r.CreatedAt
	err = ApplyPatch(r, ReservationPatch{CreatedAt: &same, Notes: strPtr("late")})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeImmutableFieldViolation))
	assert.Empty(t, r.Notes)
}

func TestBindAndUnbind(t *testing.T) {
	table := &models.Table{ID: 7, Status: string(StatusFree)}
	r, err := NewReservation(validFields(), time.Now())
	require.NoError(t, err)

	Bind(table, r, StatusReserved, "Salón 1 (A)")

	require.NotNil(t, table.ActiveReservationID)
	require.NotNil(t, r.TableID)
	assert.Equal(t, r.ID, *table.ActiveReservationID)
	assert.Equal(t, uint(7), *r.TableID)
	assert.Equal(t, "reserved", table.Status)
	assert.Equal(t, "Salón 1 (A)", r.SalonName)

	Unbind(table)
	assert.Nil(t, table.ActiveReservationID)
	assert.Equal(t, "free", table.Status)
}

func TestTransitionGuards(t *testing.T) {
	assert.NoError(t, CanPlace(StatusFree))
	assert.ErrorIs(t, CanPlace(StatusReserved), ErrInvalidState)
	assert.ErrorIs(t, CanPlace(StatusOccupied), ErrInvalidState)

	assert.NoError(t, CanSeatReserved(StatusReserved))
	assert.ErrorIs(t, CanSeatReserved(StatusFree), ErrInvalidState)
	assert.ErrorIs(t, CanSeatReserved(StatusOccupied), ErrInvalidState)

	assert.NoError(t, CanRelease(StatusReserved))
	assert.NoError(t, CanRelease(StatusOccupied))
	assert.ErrorIs(t, CanRelease(StatusFree), ErrInvalidState)

	assert.NoError(t, CanMove(StatusOccupied, StatusFree))
	assert.ErrorIs(t, CanMove(StatusFree, StatusFree), ErrSourceNotBound)
	assert.ErrorIs(t, CanMove(StatusReserved, StatusOccupied), ErrTargetNotFree)
}

func TestShapeAndSize(t *testing.T) {
	assert.True(t, Shape("rectangular").Valid())
	assert.False(t, Shape("oval").Valid())
	assert.True(t, Size("large").Valid())
	assert.False(t, Size("xl").Valid())
}

func TestNewBlock(t *testing.T) {
	b, err := NewBlock(3, "private event", "2026-10-20", "14:00", "16:00")
	require.NoError(t, err)
	assert.Equal(t, uint(3), b.TableID)

	_, err = NewBlock(3, "", "2026-10-20", "16:00", "14:00")
	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"reason", "end_time"}, ve.Fields)
}

func TestIsBlocked(t *testing.T) {
	blocks := []models.TableBlock{
		{Date: "2026-10-20", StartTime: "14:00", EndTime: "16:00"},
	}

	assert.True(t, IsBlocked(blocks, "2026-10-20", 14*60))
	assert.True(t, IsBlocked(blocks, "2026-10-20", 15*60+59))
	assert.False(t, IsBlocked(blocks, "2026-10-20", 16*60), "end is exclusive")
	assert.False(t, IsBlocked(blocks, "2026-10-20", 13*60+59))
	assert.False(t, IsBlocked(blocks, "2026-10-21", 15*60))
}
