// Package directory is the read side: auction detail merged with ledger and
// motorcycle data, active listings, a dealer's listings and bid history.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	auction "moto-auction/internal/auctionService"
	"moto-auction/internal/biddingerrors"
	"moto-auction/internal/broadcaster"
	model "moto-auction/internal/models"
	"moto-auction/internal/repository"
)

// Snapshotter is the part of the auction engine the directory reads from
type Snapshotter interface {
	Snapshot(ctx context.Context, auctionID int64) (auction.Snapshot, error)
}

// Summary is one row of a listing
type Summary struct {
	AuctionID      int64            `json:"auction_id"`
	MotorcycleID   int64            `json:"motorcycle_id"`
	SellerID       int64            `json:"seller_id"`
	Title          string           `json:"title"`
	Status         model.Status     `json:"status"`
	Visibility     model.Visibility `json:"visibility"`
	StartingPrice  int64            `json:"starting_price"`
	CurrentBid     *int64           `json:"current_bid"`
	TotalBids      int              `json:"total_bids"`
	MinimumNextBid int64            `json:"minimum_next_bid"`
	StartTime      time.Time        `json:"start_time"`
	EndTime        time.Time        `json:"end_time"`
}

// Detail is the full auction page. Reserve fields are only filled for the owning seller.
type Detail struct {
	Auction         model.Auction    `json:"auction"`
	Motorcycle      model.Motorcycle `json:"motorcycle"`
	CurrentBid      *int64           `json:"current_bid"`
	LeadingBidderID *int64           `json:"leading_bidder_id"`
	TotalBids       int              `json:"total_bids"`
	MinimumNextBid  int64            `json:"minimum_next_bid"`
	Bids            []model.Bid      `json:"bids"`
	ReservePrice    *int64           `json:"reserve_price,omitempty"`
	ReserveMet      *bool            `json:"reserve_met,omitempty"`
}

// Directory answers queries; it holds no locks of its own
type Directory struct {
	repo   repository.AuctionDB
	engine Snapshotter
}

// New creates a Directory
func New(repo repository.AuctionDB, engine Snapshotter) *Directory {
	return &Directory{repo: repo, engine: engine}
}

// hidden reports an invite-only auction to a viewer who may not see it the same way as a missing one
func hidden(auctionID int64) error {
	return fmt.Errorf("directory: %w - auction %d", biddingerrors.ErrAuctionNotFound, auctionID)
}

// Detail returns one auction as viewerID (0 for anonymous) may see it
func (d *Directory) Detail(ctx context.Context, viewerID, auctionID int64) (Detail, error) {
	snap, err := d.engine.Snapshot(ctx, auctionID)
	if err != nil {
		return Detail{}, err
	}
	if !snap.Auction.VisibleTo(viewerID) {
		return Detail{}, hidden(auctionID)
	}

	out := Detail{
		Auction:        snap.Auction,
		Motorcycle:     snap.Motorcycle,
		TotalBids:      snap.TotalBids,
		MinimumNextBid: snap.MinimumNextBid,
		Bids:           snap.Bids,
	}
	if out.Bids == nil {
		out.Bids = []model.Bid{}
	}
	if snap.Highest != nil {
		out.CurrentBid = &snap.Highest.Amount
		out.LeadingBidderID = &snap.Highest.BidderID
	}
	if viewerID != 0 && viewerID == snap.Auction.SellerID && snap.Auction.ReservePrice != nil {
		reserve := *snap.Auction.ReservePrice
		met := snap.Highest != nil && snap.Highest.Amount >= reserve
		out.ReservePrice = &reserve
		out.ReserveMet = &met
	}
	return out, nil
}

// CanWatch decides whether userID may subscribe to a real-time topic. Invite-only
// auctions are hidden from everyone outside the seller and the invitees.
func (d *Directory) CanWatch(ctx context.Context, userID int64, topic string) error {
	auctionID, ok := broadcaster.TopicAuctionID(topic)
	if !ok {
		return nil
	}
	snap, err := d.engine.Snapshot(ctx, auctionID)
	if err != nil {
		return err
	}
	if !snap.Auction.VisibleTo(userID) {
		return hidden(auctionID)
	}
	return nil
}

// Bids returns an auction's bids, highest first
func (d *Directory) Bids(ctx context.Context, viewerID, auctionID int64) ([]model.Bid, error) {
	snap, err := d.engine.Snapshot(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if !snap.Auction.VisibleTo(viewerID) {
		return nil, hidden(auctionID)
	}
	if snap.Bids == nil {
		return []model.Bid{}, nil
	}
	return snap.Bids, nil
}

// Active lists open auctions visible to viewerID, ending soonest first
func (d *Directory) Active(ctx context.Context, viewerID int64) ([]Summary, error) {
	rows, err := d.repo.ListAuctions(repository.AuctionFilter{Statuses: []model.Status{model.StatusActive}})
	if err != nil {
		return nil, fmt.Errorf("directory: %w - list active auctions: %w", biddingerrors.ErrPersistence, err)
	}
	out, err := d.summaries(ctx, viewerID, rows, func(s auction.Snapshot) bool {
		return s.Auction.Status == model.StatusActive
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EndTime.Before(out[j].EndTime) })
	return out, nil
}

// DealerAuctions lists every auction of one seller that viewerID may see, newest first
func (d *Directory) DealerAuctions(ctx context.Context, viewerID, dealerID int64) ([]Summary, error) {
	if dealerID <= 0 {
		return nil, biddingerrors.Validationf("dealer id must be positive")
	}
	rows, err := d.repo.ListAuctions(repository.AuctionFilter{SellerID: dealerID})
	if err != nil {
		return nil, fmt.Errorf("directory: %w - list auctions of dealer %d: %w", biddingerrors.ErrPersistence, dealerID, err)
	}
	out, err := d.summaries(ctx, viewerID, rows, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AuctionID > out[j].AuctionID })
	return out, nil
}

// summaries reads each row through the engine so current bid and status come from the ledger
func (d *Directory) summaries(ctx context.Context, viewerID int64, rows []model.Auction, keep func(auction.Snapshot) bool) ([]Summary, error) {
	out := make([]Summary, 0, len(rows))
	for _, row := range rows {
		if !row.VisibleTo(viewerID) {
			continue
		}
		snap, err := d.engine.Snapshot(ctx, row.AuctionID)
		if errors.Is(err, biddingerrors.ErrAuctionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if keep != nil && !keep(snap) {
			continue
		}
		out = append(out, summarize(snap))
	}
	return out, nil
}

func summarize(s auction.Snapshot) Summary {
	sum := Summary{
		AuctionID:      s.Auction.AuctionID,
		MotorcycleID:   s.Auction.MotorcycleID,
		SellerID:       s.Auction.SellerID,
		Title:          s.Motorcycle.Title(),
		Status:         s.Auction.Status,
		Visibility:     s.Auction.Visibility,
		StartingPrice:  s.Auction.StartingPrice,
		TotalBids:      s.TotalBids,
		MinimumNextBid: s.MinimumNextBid,
		StartTime:      s.Auction.StartTime,
		EndTime:        s.Auction.EndTime,
	}
	if s.Highest != nil {
		sum.CurrentBid = &s.Highest.Amount
	}
	return sum
}
