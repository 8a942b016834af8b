package locks

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Local is an in-process Locker backed by one token channel per key.
type Local struct {
	timeout time.Duration

	mu    sync.Mutex
	slots map[uint]chan struct{}
}

func NewLocal(timeout time.Duration) *Local {
	return &Local{
		timeout: timeout,
		slots:   make(map[uint]chan struct{}),
	}
}

func (l *Local) slot(key uint) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

func (l *Local) Acquire(ctx context.Context, keys ...uint) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var held []func()
	for _, key := range ordered(keys) {
		ch := l.slot(key)
		select {
		case ch <- struct{}{}:
			held = append(held, func() { <-ch })
		case <-ctx.Done():
			releaseAll(held)()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrTimeout
			}
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	release := releaseAll(held)
	return func() { once.Do(release) }, nil
}

var _ Locker = (*Local)(nil)
