package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	auction "moto-auction/internal/auctionService"
	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
	"moto-auction/internal/notifications"
	"moto-auction/internal/repository"

	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// Tests one sweep at each point of an auction's timeline
func TestSweeper_Sweep(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	clk := &clock{t: start}
	engine := auction.NewService(repo, notifications.NewGenerator(repo), nil, auction.DefaultOptions())
	engine.SetClock(clk.Now)
	sweeper := NewSweeper(engine, repo, time.Second, time.Hour)
	sweeper.SetClock(clk.Now)

	ctx := context.Background()
	seller := model.Actor{UserID: 1, Role: model.RoleSeller}
	moto, err := engine.RegisterMotorcycle(ctx, seller, model.Motorcycle{Make: "KTM", Model: "890 Duke"})
	require.NoError(t, err)
	a, err := engine.Create(ctx, seller, auction.CreateRequest{
		MotorcycleID:  moto.MotorcycleID,
		StartingPrice: 6000,
		StartTime:     start.Add(10 * time.Minute),
		EndTime:       start.Add(3 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, a.Status)

	steps := []struct {
		name   string
		at     time.Time
		want   Result
		status model.Status
	}{
		{name: "before_start", at: start, want: Result{}, status: model.StatusPending},
		{name: "start_reached", at: start.Add(10 * time.Minute), want: Result{Activated: 1}, status: model.StatusActive},
		{name: "running", at: start.Add(time.Hour), want: Result{}, status: model.StatusActive},
		{name: "ending_soon", at: start.Add(2*time.Hour + 30*time.Minute), want: Result{Warned: 1}, status: model.StatusActive},
		{name: "ending_soon_again", at: start.Add(2*time.Hour + 40*time.Minute), want: Result{}, status: model.StatusActive},
		{name: "end_reached", at: start.Add(3 * time.Hour), want: Result{Ended: 1}, status: model.StatusEnded},
		{name: "after_end", at: start.Add(4 * time.Hour), want: Result{}, status: model.StatusEnded},
	}

	for _, step := range steps {
		clk.Set(step.at)
		got := sweeper.Sweep(ctx)
		require.Equal(t, step.want, got, step.name)

		snap, err := engine.Snapshot(ctx, a.AuctionID)
		require.NoError(t, err)
		require.Equal(t, step.status, snap.Auction.Status, step.name)
	}

	sellerNotes, err := repo.ListNotifications(seller.UserID)
	require.NoError(t, err)
	require.Len(t, sellerNotes, 2)
	require.Equal(t, model.NotificationAuctionCompleted, sellerNotes[0].Type)
	require.Equal(t, model.NotificationAuctionEnding, sellerNotes[1].Type)
}

type stubLifecycle struct {
	err error
}

func (s stubLifecycle) Activate(context.Context, model.Actor, int64) (model.Auction, error) {
	return model.Auction{}, s.err
}

func (s stubLifecycle) End(context.Context, model.Actor, int64) (model.Auction, error) {
	return model.Auction{}, s.err
}

func (s stubLifecycle) NotifyEndingSoon(context.Context, model.Actor, int64) (model.Auction, error) {
	return model.Auction{}, s.err
}

// Tests how engine errors are counted
func TestSweeper_Failures(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	moto, err := repo.CreateMotorcycle(model.Motorcycle{OwnerID: 1})
	require.NoError(t, err)
	_, err = repo.CreateAuction(model.Auction{
		MotorcycleID: moto.MotorcycleID,
		SellerID:     1,
		StartTime:    start.Add(-time.Hour),
		EndTime:      start.Add(-time.Minute),
		Status:       model.StatusActive,
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		err        error
		wantFailed int
	}{
		{name: "raced_transition", err: &biddingerrors.TransitionError{Action: "end", Current: "ended"}, wantFailed: 0},
		{name: "busy", err: biddingerrors.ErrBusy, wantFailed: 1},
		{name: "storage", err: errors.New("boom"), wantFailed: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := NewSweeper(stubLifecycle{err: tc.err}, repo, time.Second, time.Hour)
			s.SetClock(func() time.Time { return start })
			res := s.Sweep(context.Background())
			require.Equal(t, tc.wantFailed, res.Failed)
			require.Zero(t, res.Ended)
		})
	}
}

// Run stops when its context is cancelled
func TestSweeper_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	s := NewSweeper(stubLifecycle{}, repo, 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
