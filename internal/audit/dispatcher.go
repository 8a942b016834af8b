package audit

import (
	"context"
	"time"

	"github.com/Soulinho/pandawok-project/internal/logger"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

// Event is one state change worth keeping: who did what to which entity.
type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Writer interface {
	Write(ctx context.Context, ev Event) error
}

// Dispatcher writes events off the request path on a single worker.
type Dispatcher struct {
	writer Writer
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(w Writer) *Dispatcher {
	d := &Dispatcher{
		writer: w,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := d.writer.Write(ctx, ev)
		cancel()

		if err != nil {
			logger.ErrorLogger.WithError(err).
				WithField("action", ev.Action).
				WithField("entity", ev.Entity).
				WithField("entity_id", ev.EntityID).
				Error("audit write failed")
		}
	}
}

// Dispatch never blocks. A full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		logger.ErrorLogger.WithField("action", ev.Action).Error("audit queue full, dropping event")
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	close(d.queue)
	<-d.done
}
