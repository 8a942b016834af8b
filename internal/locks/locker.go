package locks

import (
	"context"
	"errors"
	"sort"
)

// RegistryKey guards table id allocation. Table ids start at 1.
const RegistryKey uint = 0

// ErrTimeout is returned when a lock could not be acquired in time.
var ErrTimeout = errors.New("lock wait timed out")

// Locker grants exclusive access to a set of tables. Keys are always taken in
// ascending order so two callers locking overlapping sets cannot deadlock.
type Locker interface {
	Acquire(ctx context.Context, keys ...uint) (release func(), err error)
}

// ordered returns keys sorted ascending without duplicates.
func ordered(keys []uint) []uint {
	out := make([]uint, 0, len(keys))
	seen := make(map[uint]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func releaseAll(releases []func()) func() {
	return func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
}
