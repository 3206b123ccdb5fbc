package keylock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"moto-auction/internal/biddingerrors"

	"github.com/stretchr/testify/require"
)

func TestLocker_SerializesSameKey(t *testing.T) {
	t.Parallel()

	l := New(5 * time.Second)

	var inside int32
	var maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), 1)
			require.NoError(t, err)
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), maxInside)
	require.Zero(t, l.Len(), "entries are released once idle")
}

func TestLocker_DifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	l := New(50 * time.Millisecond)

	unlock1, err := l.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer unlock1()

	unlock2, err := l.Lock(context.Background(), 2)
	require.NoError(t, err)
	unlock2()
}

func TestLocker_TimeoutIsBusy(t *testing.T) {
	t.Parallel()

	l := New(20 * time.Millisecond)

	unlock, err := l.Lock(context.Background(), 7)
	require.NoError(t, err)

	_, err = l.Lock(context.Background(), 7)
	require.Error(t, err)
	require.True(t, errors.Is(err, biddingerrors.ErrBusy))

	unlock()
	unlock() // second call is a no-op

	unlock, err = l.Lock(context.Background(), 7)
	require.NoError(t, err)
	unlock()
	require.Zero(t, l.Len())
}

func TestLocker_CallerCancellation(t *testing.T) {
	t.Parallel()

	l := New(time.Second)

	unlock, err := l.Lock(context.Background(), 3)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Lock(ctx, 3)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, biddingerrors.ErrBusy)

	// the slot is still usable by its holder's successor
	unlock()
	next, err := l.Lock(context.Background(), 3)
	require.NoError(t, err)
	next()
}
