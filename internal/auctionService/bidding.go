package auction

import (
	"context"
	"fmt"

	"moto-auction/internal/biddingerrors"
	"moto-auction/internal/broadcaster"
	model "moto-auction/internal/models"
	"moto-auction/utils"
)

// SubmitBid validates and records a bid. Rejections come back as ErrValidation,
// ErrForbidden, *AuctionNotOpenError or *BidTooLowError; lock contention as ErrBusy.
// A bid whose notifications cannot be written is withdrawn and reported as ErrPersistence.
func (s *Service) SubmitBid(ctx context.Context, actor model.Actor, auctionID, amount int64) (model.Bid, error) {
	if auctionID <= 0 {
		return model.Bid{}, biddingerrors.Validationf("auction id must be positive")
	}
	if amount <= 0 {
		return model.Bid{}, biddingerrors.Validationf("bid amount must be a positive whole number, got %d", amount)
	}

	unlock, err := s.lock(ctx, auctionID)
	if err != nil {
		return model.Bid{}, err
	}
	defer unlock()

	st, err := s.state(ctx, auctionID)
	if err != nil {
		return model.Bid{}, err
	}
	// the keylock slot makes us the only writer, so st.auction is stable here
	a := st.auction

	if err := s.machine.Authorize(ActionPlaceBid, actor, a); err != nil {
		return model.Bid{}, fmt.Errorf("service: %w", err)
	}
	if actor.UserID == a.SellerID {
		return model.Bid{}, biddingerrors.Validationf("sellers cannot bid on their own auction")
	}
	if a.Visibility == model.VisibilityInviteOnly && !a.IsInvited(actor.UserID) {
		return model.Bid{}, biddingerrors.Forbiddenf("user %d is not invited to auction %d", actor.UserID, auctionID)
	}

	now := s.now().UTC()
	if a.Status != model.StatusActive || !now.Before(a.EndTime) {
		return model.Bid{}, fmt.Errorf("service: %w", &biddingerrors.AuctionNotOpenError{Status: string(a.Status), EndTime: a.EndTime})
	}

	minimum := st.ledger.MinimumAcceptable(a.StartingPrice, s.opts.MinIncrement)
	if amount < minimum {
		return model.Bid{}, fmt.Errorf("service: %w", &biddingerrors.BidTooLowError{Amount: amount, Minimum: minimum})
	}

	var displaced *model.Bid
	if top, ok := st.ledger.Highest(); ok {
		displaced = &top
	}

	stored, err := s.repo.AppendBid(model.Bid{
		AuctionID: auctionID,
		BidderID:  actor.UserID,
		Amount:    amount,
		CreatedAt: st.ledger.Stamp(now),
	})
	if err != nil {
		return model.Bid{}, repoErr(fmt.Sprintf("append bid to auction %d", auctionID), err)
	}

	if _, err := s.notifier.BidPlaced(st.subject(), a.SellerID, stored, displaced); err != nil {
		if rmErr := s.repo.RemoveBid(auctionID, stored.BidID); rmErr != nil {
			s.evict(auctionID)
			utils.Error("failed to withdraw bid after notification write failed", map[string]any{
				"auction_id": auctionID,
				"bid_id":     stored.BidID,
				"error":      rmErr.Error(),
			})
		}
		return model.Bid{}, repoErr(fmt.Sprintf("write bid_placed notifications for auction %d", auctionID), err)
	}

	st.mu.Lock()
	err = st.ledger.Append(stored)
	st.mu.Unlock()
	if err != nil {
		// the bid is durable but the cached ledger disagrees; rebuild it from storage next time
		s.evict(auctionID)
		utils.Error("ledger rejected a persisted bid", map[string]any{
			"auction_id": auctionID,
			"bid_id":     stored.BidID,
			"error":      err.Error(),
		})
		return model.Bid{}, fmt.Errorf("service: failed to record bid %d: %w", stored.BidID, err)
	}

	data := auctionData(a, st.ledger)
	data["bid"] = stored
	data["minimum_next_bid"] = st.ledger.MinimumAcceptable(a.StartingPrice, s.opts.MinIncrement)
	s.publish(broadcaster.EventNewBid, a, data)

	utils.Info("bid recorded", map[string]any{
		"auction_id": auctionID,
		"bid_id":     stored.BidID,
		"bidder_id":  stored.BidderID,
		"amount":     stored.Amount,
	})
	return stored, nil
}
