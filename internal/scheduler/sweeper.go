// Package scheduler drives the time-based transitions (activate, end, ending-soon
// notice) from one periodic sweep instead of a timer per auction.
package scheduler

import (
	"context"
	"errors"
	"time"

	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
	"moto-auction/internal/repository"
	"moto-auction/utils"
)

// Lifecycle is the part of the auction engine the sweep triggers
type Lifecycle interface {
	Activate(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error)
	End(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error)
	NotifyEndingSoon(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error)
}

// Result counts what one sweep did
type Result struct {
	Activated int
	Ended     int
	Warned    int
	Failed    int
}

// Sweeper periodically looks for auctions whose start, end or ending-soon time has passed
type Sweeper struct {
	engine   Lifecycle
	repo     repository.AuctionDB
	interval time.Duration
	window   time.Duration
	now      func() time.Time
}

// NewSweeper creates a sweeper. window is how long before the end time the ending-soon notice goes out.
func NewSweeper(engine Lifecycle, repo repository.AuctionDB, interval, window time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Second
	}
	return &Sweeper{engine: engine, repo: repo, interval: interval, window: window, now: time.Now}
}

// SetClock replaces the time source; used by tests
func (s *Sweeper) SetClock(now func() time.Time) { s.now = now }

// Run sweeps immediately and then every interval until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	utils.Info("scheduler started", map[string]any{"interval": s.interval.String()})
	s.Sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			utils.Info("scheduler stopping", map[string]any{"reason": ctx.Err().Error()})
			return nil
		}
	}
}

// Sweep applies every due time-driven transition once. The engine re-checks each
// guard under the auction's lock, so a race with a user action is harmless.
func (s *Sweeper) Sweep(ctx context.Context) Result {
	var res Result

	due, err := s.repo.ListAuctions(repository.AuctionFilter{
		Statuses: []model.Status{model.StatusPending, model.StatusActive},
	})
	if err != nil {
		utils.Error("scheduler: failed to list auctions", map[string]any{"error": err.Error()})
		res.Failed++
		return res
	}

	now := s.now().UTC()
	for _, a := range due {
		if ctx.Err() != nil {
			return res
		}
		switch {
		case a.Status == model.StatusPending && !now.Before(a.StartTime):
			if s.apply(ctx, "activate", a.AuctionID, s.engine.Activate, &res) {
				res.Activated++
			}
		case a.Status == model.StatusActive && !now.Before(a.EndTime):
			if s.apply(ctx, "end", a.AuctionID, s.engine.End, &res) {
				res.Ended++
			}
		case a.Status == model.StatusActive && !a.EndingNotified && s.window > 0 && a.EndTime.Sub(now) <= s.window:
			if s.apply(ctx, "notify-ending", a.AuctionID, s.engine.NotifyEndingSoon, &res) {
				res.Warned++
			}
		}
	}

	if res != (Result{}) {
		utils.Info("scheduler sweep finished", map[string]any{
			"activated": res.Activated,
			"ended":     res.Ended,
			"warned":    res.Warned,
			"failed":    res.Failed,
		})
	}
	return res
}

func (s *Sweeper) apply(
	ctx context.Context,
	action string,
	auctionID int64,
	run func(context.Context, model.Actor, int64) (model.Auction, error),
	res *Result,
) bool {
	_, err := run(ctx, model.SystemActor, auctionID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, biddingerrors.ErrInvalidTransition), errors.Is(err, biddingerrors.ErrAuctionNotFound):
		// someone else moved or removed the auction since it was listed
		utils.Debug("scheduler: transition no longer applies", map[string]any{
			"action":     action,
			"auction_id": auctionID,
			"error":      err.Error(),
		})
	case errors.Is(err, biddingerrors.ErrBusy):
		utils.Warn("scheduler: auction busy, retrying next sweep", map[string]any{
			"action":     action,
			"auction_id": auctionID,
		})
		res.Failed++
	default:
		utils.Error("scheduler: transition failed", map[string]any{
			"action":     action,
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		res.Failed++
	}
	return false
}
