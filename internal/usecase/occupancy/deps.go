package occupancy

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Soulinho/pandawok-project/internal/audit"
	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/locks"
	"github.com/Soulinho/pandawok-project/internal/timezone"
)

// Deps are the collaborators shared by every engine command.
type Deps struct {
	Repo   domain.Repository
	Locks  locks.Locker
	Audit  *audit.Dispatcher
	Events *events.TableEmitter

	Timezone     string
	DurationHint string

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	loc := timezone.Location(d.Timezone)
	if d.Now != nil {
		return d.Now().In(loc)
	}
	return time.Now().In(loc)
}

// withTables holds the locks of every table in ids while fn runs inside one
// transaction.
func (d Deps) withTables(
	ctx context.Context,
	ids []uint,
	fn func(tx domain.Repository) error,
) error {
	release, err := d.Locks.Acquire(ctx, ids...)
	if err != nil {
		if errors.Is(err, locks.ErrTimeout) {
			return domain.ErrBusy
		}
		return err
	}
	defer release()

	return d.Repo.Transaction(ctx, fn)
}

func (d Deps) record(actorID *uint, action string, tableID uint, meta any) {
	d.Audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   action,
		Entity:   "table",
		EntityID: strconv.FormatUint(uint64(tableID), 10),
		Metadata: meta,
	})
}

func (d Deps) emit(ctx context.Context, ev events.TableStatusEvent) {
	ev.OccurredAt = d.now().UTC()
	d.Events.Emit(ctx, ev)
}
