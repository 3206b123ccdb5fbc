// Package ledger keeps the append-only, per-auction record of bids and the
// single authoritative computation of the current leader.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
	"moto-auction/utils"

	"github.com/google/btree"
)

// byRank orders bids highest amount first, then earliest timestamp, then lowest id
func byRank(a, b model.Bid) bool {
	if a.Amount != b.Amount {
		return a.Amount > b.Amount
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.BidID < b.BidID
}

// Ledger is safe for concurrent readers; writers are expected to be serialized
// by the caller's per-auction lock, but Append is guarded regardless.
type Ledger struct {
	mu        sync.RWMutex
	auctionID int64
	ranked    *btree.BTreeG[model.Bid]
	byID      map[int64]model.Bid
	amounts   map[int64]int64 // amount -> first bid id recorded at that amount
	lastStamp time.Time
}

// New creates an empty ledger for an auction
func New(auctionID int64) *Ledger {
	return &Ledger{
		auctionID: auctionID,
		ranked:    btree.NewG(8, btree.LessFunc[model.Bid](byRank)),
		byID:      make(map[int64]model.Bid),
		amounts:   make(map[int64]int64),
	}
}

// Restore rebuilds a ledger from persisted bids in append order. Equal amounts can
// only come from a misconfigured increment; they are logged and ranked earliest first.
func Restore(auctionID int64, bids []model.Bid) *Ledger {
	l := New(auctionID)
	for _, b := range bids {
		if b.AuctionID != auctionID {
			utils.Error("ledger: restored bid belongs to another auction", map[string]any{
				"auction_id":     auctionID,
				"bid_id":         b.BidID,
				"bid_auction_id": b.AuctionID,
			})
			continue
		}
		if tiedWith, tied := l.amounts[b.Amount]; tied {
			utils.Error("ledger: tied bid amounts found in persisted ledger", map[string]any{
				"auction_id": auctionID,
				"amount":     b.Amount,
				"bid_id":     b.BidID,
				"tied_with":  tiedWith,
			})
		}
		l.insert(b)
	}
	return l
}

func (l *Ledger) insert(b model.Bid) {
	l.ranked.ReplaceOrInsert(b)
	l.byID[b.BidID] = b
	if _, seen := l.amounts[b.Amount]; !seen {
		l.amounts[b.Amount] = b.BidID
	}
	if b.CreatedAt.After(l.lastStamp) {
		l.lastStamp = b.CreatedAt
	}
}

// AuctionID returns the auction this ledger belongs to
func (l *Ledger) AuctionID() int64 { return l.auctionID }

// MinimumAcceptable returns max(startingPrice, highest + minIncrement)
func (l *Ledger) MinimumAcceptable(startingPrice, minIncrement int64) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	top, ok := l.ranked.Min()
	if !ok {
		return startingPrice
	}
	if floor := top.Amount + minIncrement; floor > startingPrice {
		return floor
	}
	return startingPrice
}

// Stamp returns the timestamp the next appended bid should carry. It is strictly
// after every timestamp already in the ledger even if the wall clock steps back.
func (l *Ledger) Stamp(now time.Time) time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if now.After(l.lastStamp) {
		return now
	}
	return l.lastStamp.Add(time.Nanosecond)
}

// Append records a bid. The bid must strictly exceed the current highest and carry
// a timestamp later than every recorded bid; anything else is an invariant violation.
func (l *Ledger) Append(b model.Bid) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b.AuctionID != l.auctionID {
		return fmt.Errorf("ledger: bid for auction %d appended to auction %d: %w", b.AuctionID, l.auctionID, biddingerrors.ErrLedgerInvariant)
	}
	if _, dup := l.byID[b.BidID]; dup {
		return fmt.Errorf("ledger: bid %d already recorded: %w", b.BidID, biddingerrors.ErrLedgerInvariant)
	}
	if top, ok := l.ranked.Min(); ok && b.Amount <= top.Amount {
		if b.Amount == top.Amount {
			utils.Error("ledger: refusing tied bid amount", map[string]any{
				"auction_id": l.auctionID,
				"amount":     b.Amount,
				"bid_id":     b.BidID,
				"tied_with":  top.BidID,
			})
		}
		return fmt.Errorf("ledger: bid %d of %d does not exceed highest %d: %w", b.BidID, b.Amount, top.Amount, biddingerrors.ErrLedgerInvariant)
	}
	if !b.CreatedAt.After(l.lastStamp) {
		return fmt.Errorf("ledger: bid %d timestamp not after last recorded bid: %w", b.BidID, biddingerrors.ErrLedgerInvariant)
	}

	l.insert(b)
	return nil
}

// Highest returns the leading bid, if any
func (l *Ledger) Highest() (model.Bid, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ranked.Min()
}

// Count returns the number of recorded bids
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ranked.Len()
}

// Bids returns every bid ordered by amount descending, earlier first on equal amounts
func (l *Ledger) Bids() []model.Bid {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Bid, 0, l.ranked.Len())
	l.ranked.Ascend(func(b model.Bid) bool {
		out = append(out, b)
		return true
	})
	return out
}

// Bid looks up a recorded bid by id
func (l *Ledger) Bid(bidID int64) (model.Bid, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.byID[bidID]
	return b, ok
}

// Bidders returns the distinct bidder ids seen on this auction, leader first
func (l *Ledger) Bidders() []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[int64]struct{})
	var out []int64
	l.ranked.Ascend(func(b model.Bid) bool {
		if _, ok := seen[b.BidderID]; !ok {
			seen[b.BidderID] = struct{}{}
			out = append(out, b.BidderID)
		}
		return true
	})
	return out
}
