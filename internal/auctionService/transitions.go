package auction

import (
	"context"
	"fmt"
	"time"

	"moto-auction/internal/biddingerrors"
	"moto-auction/internal/broadcaster"
	"moto-auction/internal/ledger"
	model "moto-auction/internal/models"
	"moto-auction/utils"
)

// CreateRequest is a seller's new listing
type CreateRequest struct {
	MotorcycleID     int64
	StartingPrice    int64
	ReservePrice     *int64
	Visibility       model.Visibility
	InvitedBidderIDs []int64
	StartTime        time.Time
	EndTime          time.Time
}

func (r *CreateRequest) validate(now time.Time) error {
	if r.MotorcycleID <= 0 {
		return biddingerrors.Validationf("motorcycle id must be positive")
	}
	if r.StartingPrice <= 0 {
		return biddingerrors.Validationf("starting price must be a positive whole number, got %d", r.StartingPrice)
	}
	if r.ReservePrice != nil && *r.ReservePrice <= 0 {
		return biddingerrors.Validationf("reserve price must be positive when set, got %d", *r.ReservePrice)
	}
	switch r.Visibility {
	case "":
		r.Visibility = model.VisibilityPublic
	case model.VisibilityPublic, model.VisibilityInviteOnly:
	default:
		return biddingerrors.Validationf("visibility must be %s or %s, got %q", model.VisibilityPublic, model.VisibilityInviteOnly, r.Visibility)
	}
	if r.Visibility == model.VisibilityInviteOnly && len(r.InvitedBidderIDs) == 0 {
		return biddingerrors.Validationf("invite-only auctions need at least one invited bidder")
	}
	if r.StartTime.IsZero() {
		r.StartTime = now
	}
	if !r.EndTime.After(r.StartTime) {
		return biddingerrors.Validationf("end time must be after start time")
	}
	if !r.EndTime.After(now) {
		return biddingerrors.Validationf("end time must be in the future")
	}
	return nil
}

// Create lists a motorcycle the seller owns. The auction opens immediately when its start time has passed.
func (s *Service) Create(ctx context.Context, actor model.Actor, req CreateRequest) (model.Auction, error) {
	if actor.Role != model.RoleSeller {
		return model.Auction{}, fmt.Errorf("service: %w", biddingerrors.Forbiddenf("%s requires role %s, caller is %s", ActionCreate, model.RoleSeller, actor.Role))
	}
	now := s.now().UTC()
	if err := req.validate(now); err != nil {
		return model.Auction{}, err
	}

	moto, err := s.repo.LoadMotorcycle(req.MotorcycleID)
	if err != nil {
		return model.Auction{}, repoErr(fmt.Sprintf("load motorcycle %d", req.MotorcycleID), err)
	}
	if moto.OwnerID != actor.UserID {
		return model.Auction{}, fmt.Errorf("service: %w", biddingerrors.Forbiddenf("motorcycle %d does not belong to user %d", moto.MotorcycleID, actor.UserID))
	}

	invited := make([]int64, 0, len(req.InvitedBidderIDs))
	for _, id := range req.InvitedBidderIDs {
		if id != actor.UserID {
			invited = append(invited, id)
		}
	}

	status := model.StatusPending
	if !req.StartTime.After(now) {
		status = model.StatusActive
	}

	a := model.Auction{
		MotorcycleID:     moto.MotorcycleID,
		SellerID:         actor.UserID,
		StartingPrice:    req.StartingPrice,
		ReservePrice:     req.ReservePrice,
		Visibility:       req.Visibility,
		InvitedBidderIDs: invited,
		StartTime:        req.StartTime.UTC(),
		EndTime:          req.EndTime.UTC(),
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := a.CheckInvariants(); err != nil {
		return model.Auction{}, biddingerrors.Validationf("%v", err)
	}

	stored, err := s.repo.CreateAuction(a)
	if err != nil {
		return model.Auction{}, repoErr("create auction", err)
	}

	// a bid on the new id may already have loaded and cached its state
	st := &auctionState{auction: stored.Clone(), motorcycle: moto, ledger: ledger.New(stored.AuctionID)}
	s.mu.Lock()
	if cached, ok := s.states[stored.AuctionID]; ok {
		st = cached
	} else {
		s.states[stored.AuctionID] = st
	}
	s.mu.Unlock()

	data := auctionData(stored, st.ledger)
	data["auction"] = stored
	data["motorcycle"] = moto
	s.publish(broadcaster.EventAuctionCreated, stored, data)

	utils.Info("auction created", map[string]any{
		"auction_id": stored.AuctionID,
		"seller_id":  stored.SellerID,
		"status":     stored.Status,
	})
	return stored.Clone(), nil
}

// RegisterMotorcycle adds a motorcycle to the seller's stock
func (s *Service) RegisterMotorcycle(_ context.Context, actor model.Actor, m model.Motorcycle) (model.Motorcycle, error) {
	if actor.Role != model.RoleSeller {
		return model.Motorcycle{}, fmt.Errorf("service: %w", biddingerrors.Forbiddenf("only sellers can register motorcycles"))
	}
	if m.Make == "" || m.Model == "" {
		return model.Motorcycle{}, biddingerrors.Validationf("make and model are required")
	}
	if m.Year < 0 || m.Mileage < 0 {
		return model.Motorcycle{}, biddingerrors.Validationf("year and mileage cannot be negative")
	}
	m.MotorcycleID = 0
	m.OwnerID = actor.UserID
	stored, err := s.repo.CreateMotorcycle(m)
	if err != nil {
		return model.Motorcycle{}, repoErr("create motorcycle", err)
	}
	return stored, nil
}

// Motorcycle returns a registered motorcycle
func (s *Service) Motorcycle(_ context.Context, motorcycleID int64) (model.Motorcycle, error) {
	if motorcycleID <= 0 {
		return model.Motorcycle{}, biddingerrors.Validationf("motorcycle id must be positive")
	}
	m, err := s.repo.LoadMotorcycle(motorcycleID)
	if err != nil {
		return model.Motorcycle{}, repoErr(fmt.Sprintf("load motorcycle %d", motorcycleID), err)
	}
	return m, nil
}

// draft is the working copy a transition mutates before it is persisted
type draft struct {
	auction      model.Auction
	motorcycle   model.Motorcycle
	motoModified bool
	now          time.Time
}

// transition runs one state-machine action: authorize, guard, mutate a draft,
// persist it, write its notifications, commit it to memory, then publish while
// still holding the auction's slot so events leave in commit order.
// A failed notification write undoes the saved draft and nothing is committed.
func (s *Service) transition(
	ctx context.Context,
	auctionID int64,
	action Action,
	actor model.Actor,
	apply func(st *auctionState, d *draft) error,
	notify func(st *auctionState, d draft) error,
	publish func(st *auctionState, d draft),
) (model.Auction, error) {
	if auctionID <= 0 {
		return model.Auction{}, biddingerrors.Validationf("auction id must be positive")
	}

	unlock, err := s.lock(ctx, auctionID)
	if err != nil {
		return model.Auction{}, err
	}
	defer unlock()

	st, err := s.state(ctx, auctionID)
	if err != nil {
		return model.Auction{}, err
	}
	cur := st.auction

	if err := s.machine.Authorize(action, actor, cur); err != nil {
		return model.Auction{}, fmt.Errorf("service: %w", err)
	}
	if err := s.machine.Guard(action, cur); err != nil {
		return model.Auction{}, fmt.Errorf("service: %w", err)
	}

	d := &draft{auction: cur.Clone(), motorcycle: st.motorcycle, now: s.now().UTC()}
	if to, ok := s.machine.Target(action); ok {
		d.auction.Status = to
	}
	if apply != nil {
		if err := apply(st, d); err != nil {
			return model.Auction{}, err
		}
	}
	d.auction.UpdatedAt = d.now
	if err := d.auction.CheckInvariants(); err != nil {
		return model.Auction{}, fmt.Errorf("service: %w - %s would break auction %d: %v", biddingerrors.ErrInvalidTransition, action, auctionID, err)
	}

	if d.motoModified {
		if err := s.repo.SaveMotorcycle(d.motorcycle); err != nil {
			return model.Auction{}, repoErr(fmt.Sprintf("save motorcycle %d", d.motorcycle.MotorcycleID), err)
		}
	}
	var prevMoto *model.Motorcycle
	if d.motoModified {
		prev := st.motorcycle
		prevMoto = &prev
	}
	if err := s.repo.SaveAuction(d.auction); err != nil {
		s.restore(auctionID, nil, prevMoto)
		return model.Auction{}, repoErr(fmt.Sprintf("save auction %d", auctionID), err)
	}

	if notify != nil {
		if err := notify(st, *d); err != nil {
			s.restore(auctionID, &cur, prevMoto)
			return model.Auction{}, repoErr(fmt.Sprintf("write %s notifications for auction %d", action, auctionID), err)
		}
	}

	st.mu.Lock()
	st.auction = d.auction
	st.motorcycle = d.motorcycle
	st.mu.Unlock()

	if publish != nil {
		publish(st, *d)
	}

	utils.Info("auction transition applied", map[string]any{
		"auction_id": auctionID,
		"action":     action,
		"from":       cur.Status,
		"to":         d.auction.Status,
		"user_id":    actor.UserID,
	})
	return d.auction.Clone(), nil
}

// guardFailed reports a guard that is not about the auction status
func guardFailed(action Action, a model.Auction, requirement string) error {
	return fmt.Errorf("service: %w", &biddingerrors.TransitionError{
		Action:   string(action),
		Current:  string(a.Status),
		Required: []string{requirement},
	})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Activate opens a pending auction once its start time has passed
func (s *Service) Activate(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
	return s.transition(ctx, auctionID, ActionActivate, actor,
		func(_ *auctionState, d *draft) error {
			if d.now.Before(d.auction.StartTime) {
				return guardFailed(ActionActivate, d.auction, "start time "+d.auction.StartTime.Format(time.RFC3339))
			}
			return nil
		},
		nil,
		func(st *auctionState, d draft) {
			s.publish(broadcaster.EventAuctionActivated, d.auction, auctionData(d.auction, st.ledger))
		})
}

// End closes bidding once the end time has passed and tells the seller
func (s *Service) End(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
	return s.transition(ctx, auctionID, ActionEnd, actor,
		func(_ *auctionState, d *draft) error {
			if d.now.Before(d.auction.EndTime) {
				return guardFailed(ActionEnd, d.auction, "end time "+d.auction.EndTime.Format(time.RFC3339))
			}
			return nil
		},
		func(st *auctionState, d draft) error {
			var highest *model.Bid
			if top, ok := st.ledger.Highest(); ok {
				highest = &top
			}
			_, err := s.notifier.AuctionEnded(st.subject(), d.auction.SellerID, st.ledger.Count(), highest)
			return err
		},
		func(st *auctionState, d draft) {
			data := auctionData(d.auction, st.ledger)
			if top, ok := st.ledger.Highest(); ok {
				data["leading_bidder_id"] = top.BidderID
			}
			s.publish(broadcaster.EventAuctionEnded, d.auction, data)
		})
}

// NotifyEndingSoon warns the seller and bidders once when an active auction nears its end time
func (s *Service) NotifyEndingSoon(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
	return s.transition(ctx, auctionID, ActionNotifyEnding, actor,
		func(_ *auctionState, d *draft) error {
			if d.auction.EndingNotified {
				return guardFailed(ActionNotifyEnding, d.auction, "no ending notice sent yet")
			}
			if d.auction.EndTime.Sub(d.now) > s.opts.EndingSoonWindow {
				return guardFailed(ActionNotifyEnding, d.auction, "end time within "+s.opts.EndingSoonWindow.String())
			}
			d.auction.EndingNotified = true
			return nil
		},
		func(st *auctionState, d draft) error {
			_, err := s.notifier.AuctionEndingSoon(st.subject(), d.auction.SellerID, st.ledger.Bidders(), d.auction.EndTime)
			return err
		},
		nil)
}

// AcceptBid makes the given bid the winner. It succeeds at most once per auction.
func (s *Service) AcceptBid(ctx context.Context, actor model.Actor, auctionID, bidID int64) (model.Auction, error) {
	if bidID <= 0 {
		return model.Auction{}, biddingerrors.Validationf("bid id must be positive")
	}
	var accepted model.Bid
	return s.transition(ctx, auctionID, ActionAcceptBid, actor,
		func(st *auctionState, d *draft) error {
			bid, ok := st.ledger.Bid(bidID)
			if !ok {
				return fmt.Errorf("service: %w - bid %d is not on auction %d", biddingerrors.ErrBidNotFound, bidID, auctionID)
			}
			accepted = bid
			d.auction.WinningBidderID = &bid.BidderID
			d.auction.AcceptedBidID = &bid.BidID
			return nil
		},
		func(st *auctionState, _ draft) error {
			_, err := s.notifier.BidAccepted(st.subject(), accepted)
			return err
		},
		func(st *auctionState, d draft) {
			data := auctionData(d.auction, st.ledger)
			data["bid_id"] = accepted.BidID
			data["winning_bidder_id"] = accepted.BidderID
			data["amount"] = accepted.Amount
			s.publish(broadcaster.EventBidAccepted, d.auction, data)
		})
}

// ConfirmDeal records the winning bidder's confirmation
func (s *Service) ConfirmDeal(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
	return s.transition(ctx, auctionID, ActionConfirmDeal, actor,
		func(_ *auctionState, d *draft) error {
			d.auction.DealConfirmed = true
			return nil
		},
		func(st *auctionState, d draft) error {
			_, err := s.notifier.DealConfirmed(st.subject(), d.auction.SellerID)
			return err
		},
		func(st *auctionState, d draft) {
			s.publish(broadcaster.EventDealConfirmed, d.auction, auctionData(d.auction, st.ledger))
		})
}

// ScheduleCollection sets the collection date; it cannot be in the past
func (s *Service) ScheduleCollection(ctx context.Context, actor model.Actor, auctionID int64, date time.Time) (model.Auction, error) {
	if date.IsZero() {
		return model.Auction{}, biddingerrors.Validationf("collection date is required")
	}
	return s.transition(ctx, auctionID, ActionScheduleCollection, actor,
		func(_ *auctionState, d *draft) error {
			if date.Before(startOfDay(d.now)) {
				return guardFailed(ActionScheduleCollection, d.auction, "collection date on or after "+d.now.Format(time.DateOnly))
			}
			when := date.UTC()
			d.auction.CollectionDate = &when
			return nil
		},
		func(st *auctionState, d draft) error {
			_, err := s.notifier.CollectionScheduled(st.subject(), *d.auction.WinningBidderID, *d.auction.CollectionDate)
			return err
		},
		func(st *auctionState, d draft) {
			data := auctionData(d.auction, st.ledger)
			data["collection_date"] = d.auction.CollectionDate
			s.publish(broadcaster.EventCollectionScheduled, d.auction, data)
		})
}

// ConfirmCollection records the buyer's collection and completes the sale
func (s *Service) ConfirmCollection(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
	return s.transition(ctx, auctionID, ActionConfirmCollection, actor,
		func(_ *auctionState, d *draft) error {
			d.auction.CollectionConfirmed = true
			return nil
		},
		func(st *auctionState, d draft) error {
			_, err := s.notifier.CollectionConfirmed(st.subject(), d.auction.SellerID)
			return err
		},
		func(st *auctionState, d draft) {
			data := auctionData(d.auction, st.ledger)
			s.publish(broadcaster.EventCollectionConfirmed, d.auction, data)
			s.publish(broadcaster.EventAuctionCompleted, d.auction, data)
		})
}

// CompleteDeal lets the seller close a scheduled sale without the buyer's confirmation
func (s *Service) CompleteDeal(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
	return s.transition(ctx, auctionID, ActionCompleteDeal, actor, nil,
		func(st *auctionState, d draft) error {
			_, err := s.notifier.DealCompleted(st.subject(), *d.auction.WinningBidderID)
			return err
		},
		func(st *auctionState, d draft) {
			s.publish(broadcaster.EventAuctionCompleted, d.auction, auctionData(d.auction, st.ledger))
		})
}

// ExtendDate moves the motorcycle's availability date while collection is pending
func (s *Service) ExtendDate(ctx context.Context, actor model.Actor, auctionID int64, date time.Time) (model.Auction, error) {
	if date.IsZero() {
		return model.Auction{}, biddingerrors.Validationf("availability date is required")
	}
	return s.transition(ctx, auctionID, ActionExtendDate, actor,
		func(_ *auctionState, d *draft) error {
			if date.Before(startOfDay(d.now)) {
				return guardFailed(ActionExtendDate, d.auction, "availability date on or after "+d.now.Format(time.DateOnly))
			}
			d.motorcycle.DateAvailable = date.UTC()
			d.motoModified = true
			return nil
		},
		func(st *auctionState, d draft) error {
			_, err := s.notifier.CollectionDateChanged(st.subject(), *d.auction.WinningBidderID, d.motorcycle.DateAvailable)
			return err
		},
		nil)
}

// ArchiveNoSale withdraws an unsold auction
func (s *Service) ArchiveNoSale(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
	return s.transition(ctx, auctionID, ActionArchiveNoSale, actor, nil, nil,
		func(st *auctionState, d draft) {
			s.publish(broadcaster.EventAuctionArchived, d.auction, auctionData(d.auction, st.ledger))
		})
}

// Delete removes an auction that has not received any bid
func (s *Service) Delete(ctx context.Context, actor model.Actor, auctionID int64) error {
	if auctionID <= 0 {
		return biddingerrors.Validationf("auction id must be positive")
	}

	unlock, err := s.lock(ctx, auctionID)
	if err != nil {
		return err
	}
	defer unlock()

	st, err := s.state(ctx, auctionID)
	if err != nil {
		return err
	}
	a := st.auction

	if err := s.machine.Authorize(ActionDelete, actor, a); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if err := s.machine.Guard(ActionDelete, a); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if st.ledger.Count() > 0 {
		return guardFailed(ActionDelete, a, "no bids recorded")
	}

	if err := s.repo.DeleteAuction(auctionID); err != nil {
		return repoErr(fmt.Sprintf("delete auction %d", auctionID), err)
	}

	s.mu.Lock()
	delete(s.states, auctionID)
	s.deleted[auctionID] = struct{}{}
	s.mu.Unlock()

	s.publish(broadcaster.EventAuctionDeleted, a, map[string]any{"auction_id": auctionID})

	utils.Info("auction deleted", map[string]any{
		"auction_id": auctionID,
		"seller_id":  actor.UserID,
	})
	return nil
}
