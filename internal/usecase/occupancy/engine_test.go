package occupancy

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	infraRepo "github.com/Soulinho/pandawok-project/internal/infra/repository"
	"github.com/Soulinho/pandawok-project/internal/locks"
	"github.com/Soulinho/pandawok-project/internal/models"
	"github.com/Soulinho/pandawok-project/internal/testutil"
)

// ======================================================
// FIXTURES
// ======================================================

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []events.TableStatusEvent
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, msg []byte) error {
	var ev events.TableStatusEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.EventType)
	}
	return out
}

type engine struct {
	db     *gorm.DB
	deps   Deps
	pub    *recordingPublisher
	locker *locks.Local
}

var fixedNow = time.Date(2026, 10, 18, 13, 45, 0, 0, time.UTC)

func newEngine(t *testing.T) *engine {
	t.Helper()

	db := testutil.NewDB(t)
	testutil.SeedSalon(t, db, "salon1A", "Salón 1 (A)", 6, 7, 9, 11)
	testutil.SeedSalon(t, db, "salon2B", "Salón 2 (B)", 30)

	pub := &recordingPublisher{}
	locker := locks.NewLocal(100 * time.Millisecond)

	return &engine{
		db:     db,
		pub:    pub,
		locker: locker,
		deps: Deps{
			Repo:         infraRepo.NewOccupancyGormRepository(db),
			Locks:        locker,
			Events:       events.NewTableEmitter(pub),
			Timezone:     "UTC",
			DurationHint: "3h",
			Now:          func() time.Time { return fixedNow },
		},
	}
}

func (e *engine) place(t *testing.T, tableID uint, guest string, party int) *models.Reservation {
	t.Helper()
	res, err := NewPlaceReservation(e.deps).Execute(context.Background(), PlaceReservationInput{
		TableID:   tableID,
		GuestName: guest,
		PartySize: party,
		Date:      "2026-10-20",
		Time:      "13:00",
	})
	require.NoError(t, err)
	return res
}

func (e *engine) table(t *testing.T, id uint) models.Table {
	t.Helper()
	var tbl models.Table
	require.NoError(t, e.db.First(&tbl, id).Error)
	return tbl
}

// assertInvariants checks the table/reservation binding in both directions.
func (e *engine) assertInvariants(t *testing.T) {
	t.Helper()

	var tables []models.Table
	require.NoError(t, e.db.Find(&tables).Error)
	var reservations []models.Reservation
	require.NoError(t, e.db.Find(&reservations).Error)

	byID := map[string]models.Reservation{}
	for _, r := range reservations {
		byID[r.ID] = r
	}

	bound := 0
	for _, tbl := range tables {
		if tbl.Status == string(domain.StatusFree) {
			assert.Nil(t, tbl.ActiveReservationID, "free table %d has a reservation", tbl.ID)
			continue
		}
		require.NotNil(t, tbl.ActiveReservationID, "table %d is %s without reservation", tbl.ID, tbl.Status)
		r, ok := byID[*tbl.ActiveReservationID]
		require.True(t, ok, "table %d points at a missing reservation", tbl.ID)
		require.NotNil(t, r.TableID)
		assert.Equal(t, tbl.ID, *r.TableID)
		bound++
	}

	for _, r := range reservations {
		require.NotNil(t, r.TableID, "orphan reservation %s", r.ID)
	}
	assert.Equal(t, bound, len(reservations))
}

// ======================================================
// REGISTRY
// ======================================================

func TestAddTable_AllocatesMaxPlusOne(t *testing.T) {
	e := newEngine(t)
	uc := NewAddTable(e.deps)

	tbl, err := uc.Execute(context.Background(), AddTableInput{SalonID: "salon2B", Shape: "square", Size: "large"})
	require.NoError(t, err)
	assert.Equal(t, uint(31), tbl.ID)
	assert.Equal(t, "free", tbl.Status)

	tbl, err = uc.Execute(context.Background(), AddTableInput{SalonID: "salon1A", Shape: "round", Size: "small"})
	require.NoError(t, err)
	assert.Equal(t, uint(32), tbl.ID)
}

func TestAddTable_EmptyStoreStartsAtOne(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedSalon(t, db, "salon1A", "Salón 1 (A)")

	deps := Deps{
		Repo:  infraRepo.NewOccupancyGormRepository(db),
		Locks: locks.NewLocal(time.Second),
	}

	tbl, err := NewAddTable(deps).Execute(context.Background(), AddTableInput{SalonID: "salon1A", Shape: "round", Size: "medium"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), tbl.ID)
}

func TestAddTable_InvalidSalon(t *testing.T) {
	e := newEngine(t)

	_, err := NewAddTable(e.deps).Execute(context.Background(), AddTableInput{SalonID: "nope", Shape: "round", Size: "small"})
	assert.ErrorIs(t, err, domain.ErrInvalidSalon)

	_, err = NewAddTable(e.deps).Execute(context.Background(), AddTableInput{SalonID: "salon1A", Shape: "oval", Size: "small"})
	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"shape"}, ve.Fields)
}

func TestAddTable_ConcurrentAddsNeverCollide(t *testing.T) {
	e := newEngine(t)
	e.deps.Locks = locks.NewLocal(5 * time.Second)
	uc := NewAddTable(e.deps)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[uint]bool{}
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tbl, err := uc.Execute(context.Background(), AddTableInput{SalonID: "salon1A", Shape: "round", Size: "small"})
			if assert.NoError(t, err) {
				mu.Lock()
				ids[tbl.ID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 10)
	for id := uint(31); id <= 40; id++ {
		assert.True(t, ids[id], "missing id %d", id)
	}
}

func TestListTables(t *testing.T) {
	e := newEngine(t)

	tables, err := NewListTables(e.deps.Repo).Execute(context.Background(), "salon1A")
	require.NoError(t, err)

	var ids []uint
	for _, tbl := range tables {
		ids = append(ids, tbl.ID)
	}
	assert.Equal(t, []uint{6, 7, 9, 11}, ids)

	_, err = NewListTables(e.deps.Repo).Execute(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrInvalidSalon)
}

func TestGetTable_NotFound(t *testing.T) {
	e := newEngine(t)

	_, err := NewGetTable(e.deps.Repo).Execute(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ======================================================
// PLACE / VIEW
// ======================================================

func TestPlaceReservation_RoundTrip(t *testing.T) {
	e := newEngine(t)

	res, err := NewPlaceReservation(e.deps).Execute(context.Background(), PlaceReservationInput{
		TableID:   9,
		GuestName: "Ana Ruiz",
		PartySize: 4,
		Date:      "2026-10-20",
		Time:      "13:00",
		Notes:     "birthday",
	})
	require.NoError(t, err)

	snap, err := NewGetTableView(e.deps.Repo).Execute(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, "reserved", snap.Status)
	assert.Equal(t, "Salón 1 (A)", snap.SalonName)
	require.NotNil(t, snap.Reservation)
	assert.Equal(t, res.ID, snap.Reservation.ID)
	assert.Equal(t, "Ana Ruiz", snap.Reservation.GuestName)
	assert.Equal(t, 4, snap.Reservation.PartySize)
	assert.Equal(t, "2026-10-20", snap.Reservation.Date)
	assert.Equal(t, "13:00", snap.Reservation.Time)
	assert.Equal(t, "birthday", snap.Reservation.Notes)
	assert.Equal(t, "Restaurant", snap.Reservation.Origin)
	assert.Equal(t, "3h", snap.Reservation.DurationHint)
	assert.Equal(t, "Salón 1 (A)", snap.Reservation.SalonName)

	assert.Equal(t, []string{events.EventReservationPlaced}, e.pub.types())
	e.assertInvariants(t)
}

func TestPlaceReservation_NoDoubleBooking(t *testing.T) {
	e := newEngine(t)
	first := e.place(t, 7, "Ana Ruiz", 2)

	_, err := NewPlaceReservation(e.deps).Execute(context.Background(), PlaceReservationInput{
		TableID: 7, GuestName: "Luis", PartySize: 2, Date: "2026-10-20", Time: "14:00",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	var count int64
	e.db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)

	tbl := e.table(t, 7)
	assert.Equal(t, first.ID, *tbl.ActiveReservationID)
}

func TestPlaceReservation_Validation(t *testing.T) {
	e := newEngine(t)

	_, err := NewPlaceReservation(e.deps).Execute(context.Background(), PlaceReservationInput{
		TableID: 7, GuestName: "", PartySize: 0, Date: "2026-10-20", Time: "13:00",
	})
	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"guest_name", "party_size"}, ve.Fields)

	_, err = NewPlaceReservation(e.deps).Execute(context.Background(), PlaceReservationInput{
		TableID: 7, GuestName: "X", PartySize: 2, Date: "2026-10-20", Time: "13:00", Origin: "WalkIn",
	})
	require.ErrorAs(t, err, &ve)

	_, err = NewPlaceReservation(e.deps).Execute(context.Background(), PlaceReservationInput{
		TableID: 404, GuestName: "X", PartySize: 2, Date: "2026-10-20", Time: "13:00",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "free", e.table(t, 7).Status)
}

func TestPlaceReservation_WebOrigin(t *testing.T) {
	e := newEngine(t)

	res, err := NewPlaceReservation(e.deps).Execute(context.Background(), PlaceReservationInput{
		TableID: 7, GuestName: "Web Guest", PartySize: 2, Date: "2026-10-20", Time: "13:00", Origin: "Web",
	})
	require.NoError(t, err)
	assert.Equal(t, "Web", res.Origin)
}

// ======================================================
// WALK-IN / SEAT
// ======================================================

func TestSeatWalkIn(t *testing.T) {
	e := newEngine(t)

	res, err := NewSeatWalkIn(e.deps).Execute(context.Background(), SeatWalkInInput{
		TableID:   6,
		GuestName: "Carlos Rodriguez",
		PartySize: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "WalkIn", res.Origin)
	assert.Equal(t, "N/A", res.DurationHint)
	assert.Equal(t, "2026-10-18", res.Date)
	assert.Equal(t, "13:45", res.Time)

	snap, err := NewGetTableView(e.deps.Repo).Execute(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "occupied", snap.Status)
	assert.Equal(t, "Carlos Rodriguez", snap.Reservation.GuestName)

	err = NewFinalize(e.deps).Execute(context.Background(), 6, nil)
	require.NoError(t, err)

	snap, err = NewGetTableView(e.deps.Repo).Execute(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "free", snap.Status)
	assert.Nil(t, snap.Reservation)

	var count int64
	e.db.Model(&models.Reservation{}).Count(&count)
	assert.Zero(t, count)
	e.assertInvariants(t)
}

func TestSeatWalkIn_OnBusyTable(t *testing.T) {
	e := newEngine(t)
	e.place(t, 6, "Ana", 2)

	_, err := NewSeatWalkIn(e.deps).Execute(context.Background(), SeatWalkInInput{TableID: 6, GuestName: "B", PartySize: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSeatReservedGuest_KeepsOrigin(t *testing.T) {
	e := newEngine(t)
	placed := e.place(t, 11, "Grupo Empresa", 10)

	res, err := NewSeatReservedGuest(e.deps).Execute(context.Background(), 11, nil)
	require.NoError(t, err)

	assert.Equal(t, placed.ID, res.ID)
	assert.Equal(t, "Restaurant", res.Origin)
	require.NotNil(t, res.SeatedAt)

	var stored models.Reservation
	require.NoError(t, e.db.First(&stored, "id = ?", placed.ID).Error)
	assert.Equal(t, "Restaurant", stored.Origin)
	assert.Equal(t, "occupied", e.table(t, 11).Status)

	_, err = NewSeatReservedGuest(e.deps).Execute(context.Background(), 11, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "already occupied")

	_, err = NewSeatReservedGuest(e.deps).Execute(context.Background(), 7, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "free table")
	e.assertInvariants(t)
}

// ======================================================
// CHANGE TABLE
// ======================================================

func TestChangeTable_MovesReservation(t *testing.T) {
	e := newEngine(t)
	placed := e.place(t, 7, "Ana Ruiz", 4)

	res, err := NewChangeTable(e.deps).Execute(context.Background(), ChangeTableInput{FromTableID: 7, ToTableID: 9})
	require.NoError(t, err)
	assert.Equal(t, placed.ID, res.ID)

	from, to := e.table(t, 7), e.table(t, 9)
	assert.Equal(t, "free", from.Status)
	assert.Nil(t, from.ActiveReservationID)
	assert.Equal(t, "reserved", to.Status)
	require.NotNil(t, to.ActiveReservationID)
	assert.Equal(t, placed.ID, *to.ActiveReservationID)

	snap, err := NewGetTableView(e.deps.Repo).Execute(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", snap.Reservation.GuestName)
	assert.Equal(t, 4, snap.Reservation.PartySize)
	assert.Equal(t, "Restaurant", snap.Reservation.Origin)
	assert.Equal(t, placed.CreatedAt.Unix(), snap.Reservation.CreatedAt.Unix())

	e.assertInvariants(t)
}

func TestChangeTable_OccupiedStaysOccupiedAcrossSalons(t *testing.T) {
	e := newEngine(t)
	_, err := NewSeatWalkIn(e.deps).Execute(context.Background(), SeatWalkInInput{TableID: 6, GuestName: "Carlos", PartySize: 3})
	require.NoError(t, err)

	res, err := NewChangeTable(e.deps).Execute(context.Background(), ChangeTableInput{FromTableID: 6, ToTableID: 30})
	require.NoError(t, err)

	assert.Equal(t, "Salón 2 (B)", res.SalonName)
	assert.Equal(t, "occupied", e.table(t, 30).Status)
	assert.Equal(t, "free", e.table(t, 6).Status)
	e.assertInvariants(t)
}

func TestChangeTable_TargetNotFree(t *testing.T) {
	e := newEngine(t)
	a := e.place(t, 7, "Ana", 2)
	b := e.place(t, 9, "Luis", 2)

	_, err := NewChangeTable(e.deps).Execute(context.Background(), ChangeTableInput{FromTableID: 7, ToTableID: 9})
	assert.ErrorIs(t, err, domain.ErrTargetNotFree)

	assert.Equal(t, a.ID, *e.table(t, 7).ActiveReservationID)
	assert.Equal(t, b.ID, *e.table(t, 9).ActiveReservationID)
	e.assertInvariants(t)
}

func TestChangeTable_Errors(t *testing.T) {
	e := newEngine(t)
	e.place(t, 7, "Ana", 2)
	uc := NewChangeTable(e.deps)

	_, err := uc.Execute(context.Background(), ChangeTableInput{FromTableID: 9, ToTableID: 11})
	assert.ErrorIs(t, err, domain.ErrSourceNotBound)

	_, err = uc.Execute(context.Background(), ChangeTableInput{FromTableID: 7, ToTableID: 7})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.Execute(context.Background(), ChangeTableInput{FromTableID: 7, ToTableID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "reserved", e.table(t, 7).Status)
	e.assertInvariants(t)
}

func TestChangeTable_OppositeMovesDoNotDeadlock(t *testing.T) {
	e := newEngine(t)
	e.deps.Locks = locks.NewLocal(5 * time.Second)
	e.place(t, 7, "Ana", 2)
	uc := NewChangeTable(e.deps)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.Execute(context.Background(), ChangeTableInput{FromTableID: 7, ToTableID: 9})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.Execute(context.Background(), ChangeTableInput{FromTableID: 9, ToTableID: 7})
	}()
	wg.Wait()

	// whichever ran first moved the party, the other saw the resulting state
	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t,
			httperr.IsBusiness(err, httperr.CodeSourceNotBound) || httperr.IsBusiness(err, httperr.CodeTargetNotFree),
			"unexpected error %v", err)
	}
	assert.GreaterOrEqual(t, ok, 1)
	e.assertInvariants(t)
}

func TestChangeTable_BusyWhenLocked(t *testing.T) {
	e := newEngine(t)
	e.place(t, 7, "Ana", 2)

	release, err := e.locker.Acquire(context.Background(), 9)
	require.NoError(t, err)
	defer release()

	_, err = NewChangeTable(e.deps).Execute(context.Background(), ChangeTableInput{FromTableID: 7, ToTableID: 9})
	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.Equal(t, "reserved", e.table(t, 7).Status)
}

// ======================================================
// RELEASE / UPDATE
// ======================================================

func TestDeleteReservation(t *testing.T) {
	e := newEngine(t)
	e.place(t, 7, "Ana", 2)

	require.NoError(t, NewDeleteReservation(e.deps).Execute(context.Background(), 7, nil))
	assert.Equal(t, "free", e.table(t, 7).Status)

	err := NewDeleteReservation(e.deps).Execute(context.Background(), 7, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	err = NewFinalize(e.deps).Execute(context.Background(), 7, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Equal(t, []string{events.EventReservationPlaced, events.EventReservationDeleted}, e.pub.types())
	e.assertInvariants(t)
}

func TestUpdateReservation(t *testing.T) {
	e := newEngine(t)
	placed := e.place(t, 7, "Ana", 2)
	uc := NewUpdateReservation(e.deps)

	party := 5
	notes := "allergy: nuts"
	res, err := uc.Execute(context.Background(), 7, domain.ReservationPatch{PartySize: &party, Notes: &notes}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, res.PartySize)
	assert.Equal(t, "reserved", e.table(t, 7).Status)

	origin := "Web"
	_, err = uc.Execute(context.Background(), 7, domain.ReservationPatch{Origin: &origin}, nil)
	assert.ErrorIs(t, err, domain.ErrImmutableFieldViolation)

	var stored models.Reservation
	require.NoError(t, e.db.First(&stored, "id = ?", placed.ID).Error)
	assert.Equal(t, "Restaurant", stored.Origin)
	assert.Equal(t, 5, stored.PartySize)
	assert.Equal(t, "allergy: nuts", stored.Notes)

	_, err = uc.Execute(context.Background(), 9, domain.ReservationPatch{PartySize: &party}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReservation_ByID(t *testing.T) {
	e := newEngine(t)
	placed := e.place(t, 7, "Ana", 2)

	name := "Ana María Ruiz"
	res, err := NewUpdateReservation(e.deps).ExecuteByReservation(context.Background(), placed.ID, domain.ReservationPatch{GuestName: &name}, nil)
	require.NoError(t, err)
	assert.Equal(t, name, res.GuestName)

	_, err = NewUpdateReservation(e.deps).ExecuteByReservation(context.Background(), "missing", domain.ReservationPatch{GuestName: &name}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReservation_OnOccupiedTable(t *testing.T) {
	e := newEngine(t)
	_, err := NewSeatWalkIn(e.deps).Execute(context.Background(), SeatWalkInInput{TableID: 7, GuestName: "Ana", PartySize: 2})
	require.NoError(t, err)

	party := 4
	res, err := NewUpdateReservation(e.deps).Execute(context.Background(), 7, domain.ReservationPatch{PartySize: &party}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.PartySize)
	assert.Equal(t, "occupied", e.table(t, 7).Status)
}

// ======================================================
// BLOCKS
// ======================================================

func TestBlockTable_PreventsPlacement(t *testing.T) {
	e := newEngine(t)

	block, err := NewBlockTable(e.deps).Execute(context.Background(), BlockTableInput{
		TableID: 7, Reason: "maintenance", Date: "2026-10-20", StartTime: "12:00", EndTime: "14:00",
	})
	require.NoError(t, err)

	_, err = NewPlaceReservation(e.deps).Execute(context.Background(), PlaceReservationInput{
		TableID: 7, GuestName: "Ana", PartySize: 2, Date: "2026-10-20", Time: "13:00",
	})
	assert.ErrorIs(t, err, domain.ErrTableBlocked)

	_, err = NewPlaceReservation(e.deps).Execute(context.Background(), PlaceReservationInput{
		TableID: 7, GuestName: "Ana", PartySize: 2, Date: "2026-10-20", Time: "14:00",
	})
	require.NoError(t, err)

	blocks, err := NewListBlocks(e.deps.Repo).Execute(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	require.NoError(t, NewRemoveBlock(e.deps).Execute(context.Background(), block.ID, nil))
	assert.ErrorIs(t, NewRemoveBlock(e.deps).Execute(context.Background(), block.ID, nil), domain.ErrNotFound)
}

func TestBlockTable_PreventsWalkInNow(t *testing.T) {
	e := newEngine(t)

	_, err := NewBlockTable(e.deps).Execute(context.Background(), BlockTableInput{
		TableID: 6, Reason: "staff lunch", Date: "2026-10-18", StartTime: "13:30", EndTime: "14:30",
	})
	require.NoError(t, err)

	_, err = NewSeatWalkIn(e.deps).Execute(context.Background(), SeatWalkInInput{TableID: 6, GuestName: "X", PartySize: 2})
	assert.ErrorIs(t, err, domain.ErrTableBlocked)
	assert.Equal(t, "free", e.table(t, 6).Status)
}

// ======================================================
// SEQUENCES
// ======================================================

func TestInvariantsHoldAcrossCommandSequence(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	e.place(t, 7, "Ana", 2)
	_, err := NewSeatWalkIn(e.deps).Execute(ctx, SeatWalkInInput{TableID: 6, GuestName: "Carlos", PartySize: 3})
	require.NoError(t, err)
	e.assertInvariants(t)

	_, err = NewChangeTable(e.deps).Execute(ctx, ChangeTableInput{FromTableID: 7, ToTableID: 9})
	require.NoError(t, err)
	e.assertInvariants(t)

	_, err = NewSeatReservedGuest(e.deps).Execute(ctx, 9, nil)
	require.NoError(t, err)
	e.assertInvariants(t)

	_, err = NewChangeTable(e.deps).Execute(ctx, ChangeTableInput{FromTableID: 6, ToTableID: 9})
	assert.ErrorIs(t, err, domain.ErrTargetNotFree)
	e.assertInvariants(t)

	require.NoError(t, NewFinalize(e.deps).Execute(ctx, 9, nil))
	require.NoError(t, NewDeleteReservation(e.deps).Execute(ctx, 6, nil))
	e.assertInvariants(t)

	for _, id := range []uint{6, 7, 9, 11, 30} {
		assert.Equal(t, "free", e.table(t, id).Status)
	}
}

// movingRepo runs interleave once, right after the first reservation lookup
// made outside any table lock.
type movingRepo struct {
	domain.Repository
	once       sync.Once
	interleave func()
}

func (r *movingRepo) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := r.Repository.GetReservation(ctx, id)
	r.once.Do(r.interleave)
	return res, err
}

func TestUpdateReservation_ByIDFollowsMovedReservation(t *testing.T) {
	e := newEngine(t)
	ana := e.place(t, 7, "Ana", 2)

	var bob *models.Reservation
	repo := &movingRepo{Repository: e.deps.Repo}
	repo.interleave = func() {
		_, err := NewChangeTable(e.deps).Execute(context.Background(), ChangeTableInput{FromTableID: 7, ToTableID: 9})
		require.NoError(t, err)
		bob = e.place(t, 7, "Bob", 3)
	}

	deps := e.deps
	deps.Repo = repo

	name := "Ana María"
	res, err := NewUpdateReservation(deps).ExecuteByReservation(context.Background(), ana.ID, domain.ReservationPatch{GuestName: &name}, nil)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, res.ID)

	var storedAna, storedBob models.Reservation
	require.NoError(t, e.db.First(&storedAna, "id = ?", ana.ID).Error)
	require.NoError(t, e.db.First(&storedBob, "id = ?", bob.ID).Error)

	assert.Equal(t, "Ana María", storedAna.GuestName)
	assert.Equal(t, uint(9), *storedAna.TableID)
	assert.Equal(t, "Bob", storedBob.GuestName, "the party now on table 7 is untouched")
	e.assertInvariants(t)
}

func TestUpdateReservation_ByIDReleasedInBetween(t *testing.T) {
	e := newEngine(t)
	ana := e.place(t, 7, "Ana", 2)

	var bob *models.Reservation
	repo := &movingRepo{Repository: e.deps.Repo}
	repo.interleave = func() {
		require.NoError(t, NewDeleteReservation(e.deps).Execute(context.Background(), 7, nil))
		bob = e.place(t, 7, "Bob", 3)
	}

	deps := e.deps
	deps.Repo = repo

	name := "Ana María"
	_, err := NewUpdateReservation(deps).ExecuteByReservation(context.Background(), ana.ID, domain.ReservationPatch{GuestName: &name}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var storedBob models.Reservation
	require.NoError(t, e.db.First(&storedBob, "id = ?", bob.ID).Error)
	assert.Equal(t, "Bob", storedBob.GuestName)
}

func TestUpdateReservation_OriginInPatchLeavesRecordUnchanged(t *testing.T) {
	e := newEngine(t)
	placed := e.place(t, 7, "Ana", 2)

	origin := "Restaurant"
	party := 9
	_, err := NewUpdateReservation(e.deps).Execute(context.Background(), 7, domain.ReservationPatch{Origin: &origin, PartySize: &party}, nil)
	assert.ErrorIs(t, err, domain.ErrImmutableFieldViolation)

	var stored models.Reservation
	require.NoError(t, e.db.First(&stored, "id = ?", placed.ID).Error)
	assert.Equal(t, 2, stored.PartySize)
}
