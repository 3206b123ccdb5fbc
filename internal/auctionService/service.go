// Package auction owns the canonical lifecycle of every auction and the bid
// submission path. All mutations of one auction are serialized by a per-auction
// lock and follow validate, persist, notify, then commit in memory.
package auction

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"moto-auction/internal/biddingerrors"
	"moto-auction/internal/broadcaster"
	"moto-auction/internal/keylock"
	"moto-auction/internal/ledger"
	model "moto-auction/internal/models"
	"moto-auction/internal/notifications"
	"moto-auction/internal/repository"
	"moto-auction/utils"

	"golang.org/x/sync/singleflight"
)

// Publisher fans domain events out to real-time subscribers
type Publisher interface {
	Publish(evt broadcaster.Event) int
}

// Notifier writes the durable notifications a transition produces
type Notifier interface {
	BidPlaced(subject notifications.Subject, sellerID int64, bid model.Bid, displaced *model.Bid) ([]model.Notification, error)
	AuctionEndingSoon(subject notifications.Subject, sellerID int64, bidderIDs []int64, endTime time.Time) ([]model.Notification, error)
	AuctionEnded(subject notifications.Subject, sellerID int64, totalBids int, highest *model.Bid) ([]model.Notification, error)
	BidAccepted(subject notifications.Subject, bid model.Bid) ([]model.Notification, error)
	DealConfirmed(subject notifications.Subject, sellerID int64) ([]model.Notification, error)
	CollectionScheduled(subject notifications.Subject, buyerID int64, date time.Time) ([]model.Notification, error)
	CollectionDateChanged(subject notifications.Subject, buyerID int64, date time.Time) ([]model.Notification, error)
	CollectionConfirmed(subject notifications.Subject, sellerID int64) ([]model.Notification, error)
	DealCompleted(subject notifications.Subject, buyerID int64) ([]model.Notification, error)
}

// Options are the engine's policy knobs
type Options struct {
	MinIncrement     int64
	LockTimeout      time.Duration
	EarlyAcceptance  bool
	EndingSoonWindow time.Duration
}

// DefaultOptions returns a £50 increment, 2s lock wait, early acceptance on and a one hour ending-soon window
func DefaultOptions() Options {
	return Options{
		MinIncrement:     50,
		LockTimeout:      2 * time.Second,
		EarlyAcceptance:  true,
		EndingSoonWindow: time.Hour,
	}
}

// auctionState is the in-memory copy of one auction. Writers hold the auction's
// keylock slot and take mu only for the commit; readers take mu.RLock.
type auctionState struct {
	mu         sync.RWMutex
	auction    model.Auction
	motorcycle model.Motorcycle
	ledger     *ledger.Ledger
}

func (st *auctionState) subject() notifications.Subject {
	return notifications.Subject{AuctionID: st.auction.AuctionID, Title: st.motorcycle.Title()}
}

// Service is the auction engine
type Service struct {
	repo      repository.AuctionDB
	notifier  Notifier
	publisher Publisher
	locks     *keylock.Locker
	machine   Machine
	opts      Options
	now       func() time.Time

	mu      sync.RWMutex
	states  map[int64]*auctionState
	deleted map[int64]struct{}
	loads   singleflight.Group
}

// NewService creates the engine; zero option fields fall back to DefaultOptions
func NewService(repo repository.AuctionDB, notifier Notifier, publisher Publisher, opts Options) *Service {
	def := DefaultOptions()
	if opts.MinIncrement <= 0 {
		opts.MinIncrement = def.MinIncrement
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = def.LockTimeout
	}
	if opts.EndingSoonWindow <= 0 {
		opts.EndingSoonWindow = def.EndingSoonWindow
	}
	return &Service{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		locks:     keylock.New(opts.LockTimeout),
		machine:   Machine{EarlyAcceptance: opts.EarlyAcceptance},
		opts:      opts,
		now:       time.Now,
		states:    make(map[int64]*auctionState),
		deleted:   make(map[int64]struct{}),
	}
}

// SetClock replaces the time source; used by tests
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Options returns the engine's effective options
func (s *Service) Options() Options { return s.opts }

// Snapshot is a consistent read of one auction and its ledger
type Snapshot struct {
	Auction        model.Auction
	Motorcycle     model.Motorcycle
	Bids           []model.Bid
	Highest        *model.Bid
	TotalBids      int
	MinimumNextBid int64
}

// Snapshot returns the auction, its motorcycle and its bids (highest first) as one consistent view
func (s *Service) Snapshot(ctx context.Context, auctionID int64) (Snapshot, error) {
	if auctionID <= 0 {
		return Snapshot{}, biddingerrors.Validationf("auction id must be positive")
	}
	st, err := s.state(ctx, auctionID)
	if err != nil {
		return Snapshot{}, err
	}

	st.mu.RLock()
	defer st.mu.RUnlock()

	snap := Snapshot{
		Auction:        st.auction.Clone(),
		Motorcycle:     st.motorcycle,
		Bids:           st.ledger.Bids(),
		TotalBids:      st.ledger.Count(),
		MinimumNextBid: st.ledger.MinimumAcceptable(st.auction.StartingPrice, s.opts.MinIncrement),
	}
	if top, ok := st.ledger.Highest(); ok {
		snap.Highest = &top
	}
	return snap, nil
}

// state returns the cached state for an auction, loading it from the repository
// once when several callers miss at the same time.
func (s *Service) state(_ context.Context, auctionID int64) (*auctionState, error) {
	s.mu.RLock()
	st, ok := s.states[auctionID]
	_, gone := s.deleted[auctionID]
	s.mu.RUnlock()
	if ok {
		return st, nil
	}
	if gone {
		return nil, fmt.Errorf("service: %w - auction %d was deleted", biddingerrors.ErrAuctionNotFound, auctionID)
	}

	v, err, _ := s.loads.Do(strconv.FormatInt(auctionID, 10), func() (any, error) {
		return s.load(auctionID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*auctionState), nil
}

func (s *Service) load(auctionID int64) (*auctionState, error) {
	a, err := s.repo.LoadAuction(auctionID)
	if err != nil {
		return nil, repoErr(fmt.Sprintf("load auction %d", auctionID), err)
	}
	moto, err := s.repo.LoadMotorcycle(a.MotorcycleID)
	if err != nil {
		return nil, repoErr(fmt.Sprintf("load motorcycle %d for auction %d", a.MotorcycleID, auctionID), err)
	}
	bids, err := s.repo.LoadBidsForAuction(auctionID)
	if err != nil {
		return nil, repoErr(fmt.Sprintf("load bids for auction %d", auctionID), err)
	}

	st := &auctionState{auction: a, motorcycle: moto, ledger: ledger.Restore(auctionID, bids)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, gone := s.deleted[auctionID]; gone {
		return nil, fmt.Errorf("service: %w - auction %d was deleted", biddingerrors.ErrAuctionNotFound, auctionID)
	}
	if cached, ok := s.states[auctionID]; ok {
		return cached, nil
	}
	s.states[auctionID] = st
	return st, nil
}

// evict drops a cached state so the next access reloads it from the repository
func (s *Service) evict(auctionID int64) {
	s.mu.Lock()
	delete(s.states, auctionID)
	s.mu.Unlock()
}

func (s *Service) lock(ctx context.Context, auctionID int64) (func(), error) {
	unlock, err := s.locks.Lock(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return unlock, nil
}

// repoErr keeps not-found errors as they are and marks everything else as a persistence failure
func repoErr(op string, err error) error {
	for _, notFound := range []error{
		biddingerrors.ErrAuctionNotFound,
		biddingerrors.ErrMotorcycleNotFound,
		biddingerrors.ErrBidNotFound,
		biddingerrors.ErrUserNotFound,
	} {
		if errors.Is(err, notFound) {
			return fmt.Errorf("service: failed to %s: %w", op, err)
		}
	}
	return fmt.Errorf("service: %w - %s: %w", biddingerrors.ErrPersistence, op, err)
}

func (s *Service) publish(typ broadcaster.EventType, a model.Auction, data map[string]any) {
	if s.publisher == nil {
		return
	}
	delivered := s.publisher.Publish(broadcaster.Event{
		Type:       typ,
		AuctionID:  a.AuctionID,
		Data:       data,
		Timestamp:  s.now().UTC(),
		Restricted: a.Visibility == model.VisibilityInviteOnly,
	})
	utils.Debug("event published", map[string]any{
		"type":       typ,
		"auction_id": a.AuctionID,
		"delivered":  delivered,
	})
}

// restore writes back the records a failed transition had already saved.
// If that fails too the cached state is dropped so the next access reloads whatever storage holds.
func (s *Service) restore(auctionID int64, prev *model.Auction, prevMoto *model.Motorcycle) {
	var errs []error
	if prevMoto != nil {
		if err := s.repo.SaveMotorcycle(*prevMoto); err != nil {
			errs = append(errs, err)
		}
	}
	if prev != nil {
		if err := s.repo.SaveAuction(*prev); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.evict(auctionID)
		utils.Error("failed to restore auction after an aborted transition", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
	}
}

// auctionData is the common payload of lifecycle events
func auctionData(a model.Auction, l *ledger.Ledger) map[string]any {
	data := map[string]any{
		"auction_id": a.AuctionID,
		"status":     a.Status,
		"total_bids": l.Count(),
	}
	if top, ok := l.Highest(); ok {
		data["current_bid"] = top.Amount
	}
	return data
}
