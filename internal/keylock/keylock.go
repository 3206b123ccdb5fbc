// Package keylock serializes work per key (auction id) with a bounded wait.
package keylock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"moto-auction/internal/biddingerrors"

	"golang.org/x/sync/semaphore"
)

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// Locker hands out one exclusive slot per key. Entries are dropped once no
// holder or waiter references them, so the table only grows with live keys.
type Locker struct {
	mu      sync.Mutex
	entries map[int64]*entry
	timeout time.Duration
}

// New creates a Locker whose Lock gives up after timeout
func New(timeout time.Duration) *Locker {
	return &Locker{
		entries: make(map[int64]*entry),
		timeout: timeout,
	}
}

// Lock acquires the slot for key. It fails with ErrBusy when the slot cannot be
// taken within the configured timeout or ctx ends first; the latter also wraps the context error.
// The returned unlock func must be called exactly once.
func (l *Locker) Lock(ctx context.Context, key int64) (func(), error) {
	e := l.ref(key)

	waitCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := e.sem.Acquire(waitCtx, 1); err != nil {
		l.unref(key)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("lock auction %d: %w: %w", key, biddingerrors.ErrBusy, ctxErr)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("lock auction %d after %s: %w", key, l.timeout, biddingerrors.ErrBusy)
		}
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			l.unref(key)
		})
	}, nil
}

func (l *Locker) ref(key int64) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) unref(key int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// Len reports how many keys currently have holders or waiters
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
