// Package notifications turns auction transitions and bids into durable per-user
// records, and serves them back to their recipients.
package notifications

import (
	"fmt"
	"time"

	model "moto-auction/internal/models"
	"moto-auction/internal/repository"
)

// Generator writes notifications synchronously with the transition that caused them.
// It does not deduplicate: the state machine's guards decide whether a transition runs.
type Generator struct {
	repo repository.NotificationDB
	now  func() time.Time
}

// NewGenerator creates a Generator backed by repo
func NewGenerator(repo repository.NotificationDB) *Generator {
	return &Generator{repo: repo, now: time.Now}
}

// SetClock replaces the time source; used by tests
func (g *Generator) SetClock(now func() time.Time) { g.now = now }

// Subject identifies the auction a notification is about
type Subject struct {
	AuctionID int64
	Title     string
}

// Link is the deep link clients open for an auction
func (s Subject) Link() string { return fmt.Sprintf("/auctions/%d", s.AuctionID) }

func (g *Generator) emit(userID int64, typ model.NotificationType, subject Subject, content string) (model.Notification, error) {
	n, err := g.repo.CreateNotification(model.Notification{
		UserID:    userID,
		Type:      typ,
		Content:   content,
		CreatedAt: g.now().UTC(),
		Link:      subject.Link(),
	})
	if err != nil {
		return model.Notification{}, fmt.Errorf("notifications: create %s for user %d: %w", typ, userID, err)
	}
	return n, nil
}

// emitAll writes every draft and returns what was stored plus the first error
func (g *Generator) emitAll(subject Subject, drafts ...draft) ([]model.Notification, error) {
	out := make([]model.Notification, 0, len(drafts))
	var firstErr error
	for _, d := range drafts {
		n, err := g.emit(d.userID, d.typ, subject, d.content)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out = append(out, n)
	}
	return out, firstErr
}

type draft struct {
	userID  int64
	typ     model.NotificationType
	content string
}

// BidPlaced notifies the seller, and the previous leader when displaced by someone else
func (g *Generator) BidPlaced(subject Subject, sellerID int64, bid model.Bid, displaced *model.Bid) ([]model.Notification, error) {
	drafts := []draft{{
		userID:  sellerID,
		typ:     model.NotificationBid,
		content: fmt.Sprintf("New bid of £%d on your %s", bid.Amount, subject.Title),
	}}
	if displaced != nil && displaced.BidderID != bid.BidderID {
		drafts = append(drafts, draft{
			userID:  displaced.BidderID,
			typ:     model.NotificationBid,
			content: fmt.Sprintf("You have been outbid on %s: the highest bid is now £%d", subject.Title, bid.Amount),
		})
	}
	return g.emitAll(subject, drafts...)
}

// AuctionEndingSoon warns the seller and every bidder that bidding is about to close
func (g *Generator) AuctionEndingSoon(subject Subject, sellerID int64, bidderIDs []int64, endTime time.Time) ([]model.Notification, error) {
	when := endTime.UTC().Format("02 Jan 15:04 MST")
	drafts := []draft{{
		userID:  sellerID,
		typ:     model.NotificationAuctionEnding,
		content: fmt.Sprintf("Your auction for %s ends at %s", subject.Title, when),
	}}
	for _, id := range bidderIDs {
		drafts = append(drafts, draft{
			userID:  id,
			typ:     model.NotificationAuctionEnding,
			content: fmt.Sprintf("Bidding on %s ends at %s", subject.Title, when),
		})
	}
	return g.emitAll(subject, drafts...)
}

// AuctionEnded tells the seller bidding has closed so they can review offers
func (g *Generator) AuctionEnded(subject Subject, sellerID int64, totalBids int, highest *model.Bid) ([]model.Notification, error) {
	content := fmt.Sprintf("Bidding has closed on %s with no bids", subject.Title)
	if highest != nil {
		content = fmt.Sprintf("Bidding has closed on %s: %d bids, highest £%d. Review the bids to accept one.", subject.Title, totalBids, highest.Amount)
	}
	return g.emitAll(subject, draft{userID: sellerID, typ: model.NotificationAuctionCompleted, content: content})
}

// BidAccepted notifies the winning bidder
func (g *Generator) BidAccepted(subject Subject, bid model.Bid) ([]model.Notification, error) {
	return g.emitAll(subject, draft{
		userID:  bid.BidderID,
		typ:     model.NotificationBidAccepted,
		content: fmt.Sprintf("Your bid of £%d for %s has been accepted. Please confirm the deal.", bid.Amount, subject.Title),
	})
}

// DealConfirmed notifies the seller that the buyer confirmed
func (g *Generator) DealConfirmed(subject Subject, sellerID int64) ([]model.Notification, error) {
	return g.emitAll(subject, draft{
		userID:  sellerID,
		typ:     model.NotificationDealConfirmed,
		content: fmt.Sprintf("The buyer has confirmed the deal for %s. Please schedule a collection date.", subject.Title),
	})
}

// CollectionScheduled notifies the buyer of the collection date
func (g *Generator) CollectionScheduled(subject Subject, buyerID int64, date time.Time) ([]model.Notification, error) {
	return g.emitAll(subject, draft{
		userID:  buyerID,
		typ:     model.NotificationCollectionScheduled,
		content: fmt.Sprintf("Collection of %s is scheduled for %s", subject.Title, date.UTC().Format("Mon 02 Jan 2006")),
	})
}

// CollectionDateChanged notifies the buyer that the motorcycle's availability moved
func (g *Generator) CollectionDateChanged(subject Subject, buyerID int64, date time.Time) ([]model.Notification, error) {
	return g.emitAll(subject, draft{
		userID:  buyerID,
		typ:     model.NotificationMessage,
		content: fmt.Sprintf("The seller changed the availability date of %s to %s", subject.Title, date.UTC().Format("Mon 02 Jan 2006")),
	})
}

// CollectionConfirmed notifies the seller that the buyer collected, completing the sale
func (g *Generator) CollectionConfirmed(subject Subject, sellerID int64) ([]model.Notification, error) {
	return g.emitAll(subject, draft{
		userID:  sellerID,
		typ:     model.NotificationCollectionConfirmed,
		content: fmt.Sprintf("The buyer confirmed collection of %s. The sale is complete.", subject.Title),
	})
}

// DealCompleted notifies the buyer that the seller closed the sale
func (g *Generator) DealCompleted(subject Subject, buyerID int64) ([]model.Notification, error) {
	return g.emitAll(subject, draft{
		userID:  buyerID,
		typ:     model.NotificationAuctionCompleted,
		content: fmt.Sprintf("The seller marked the sale of %s as complete", subject.Title),
	})
}
