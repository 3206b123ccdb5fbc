package auction

import (
	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
)

// Action is a state-machine transition trigger
type Action string

const (
	ActionCreate             Action = "create"
	ActionActivate           Action = "activate"
	ActionEnd                Action = "end"
	ActionNotifyEnding       Action = "notify-ending"
	ActionPlaceBid           Action = "place-bid"
	ActionAcceptBid          Action = "accept-bid"
	ActionConfirmDeal        Action = "confirm-deal"
	ActionScheduleCollection Action = "schedule-collection"
	ActionConfirmCollection  Action = "confirm-collection"
	ActionCompleteDeal       Action = "complete-deal"
	ActionExtendDate         Action = "extend-date"
	ActionArchiveNoSale      Action = "archive-no-sale"
	ActionDelete             Action = "delete"
)

// rule is one row of the transition table. An empty to means the status is unchanged.
type rule struct {
	role model.Role
	from []model.Status
	to   model.Status
}

var rules = map[Action]rule{
	ActionActivate:           {role: model.RoleSystem, from: []model.Status{model.StatusPending}, to: model.StatusActive},
	ActionEnd:                {role: model.RoleSystem, from: []model.Status{model.StatusActive}, to: model.StatusEnded},
	ActionNotifyEnding:       {role: model.RoleSystem, from: []model.Status{model.StatusActive}},
	ActionPlaceBid:           {role: model.RoleBuyer, from: []model.Status{model.StatusActive}},
	ActionAcceptBid:          {role: model.RoleSeller, from: []model.Status{model.StatusEnded}, to: model.StatusBidAccepted},
	ActionConfirmDeal:        {role: model.RoleBuyer, from: []model.Status{model.StatusBidAccepted}, to: model.StatusDealConfirmed},
	ActionScheduleCollection: {role: model.RoleSeller, from: []model.Status{model.StatusDealConfirmed}, to: model.StatusCollectionScheduled},
	ActionConfirmCollection:  {role: model.RoleBuyer, from: []model.Status{model.StatusCollectionScheduled}, to: model.StatusCompleted},
	ActionCompleteDeal:       {role: model.RoleSeller, from: []model.Status{model.StatusCollectionScheduled}, to: model.StatusCompleted},
	ActionExtendDate:         {role: model.RoleSeller, from: []model.Status{model.StatusCollectionScheduled}},
	ActionArchiveNoSale:      {role: model.RoleSeller, from: []model.Status{model.StatusPending, model.StatusActive}, to: model.StatusArchivedNoSale},
	ActionDelete:             {role: model.RoleSeller, from: []model.Status{model.StatusPending, model.StatusActive}},
}

// Machine evaluates the transition table under a policy
type Machine struct {
	// EarlyAcceptance lets a seller accept a bid while the auction is still active
	EarlyAcceptance bool
}

func (m Machine) sources(action Action) []model.Status {
	r := rules[action]
	if action == ActionAcceptBid && m.EarlyAcceptance {
		return append([]model.Status{model.StatusActive}, r.from...)
	}
	return r.from
}

// Allows reports whether action may run from status
func (m Machine) Allows(action Action, status model.Status) bool {
	for _, s := range m.sources(action) {
		if s == status {
			return true
		}
	}
	return false
}

// Target returns the status action moves to and whether it changes status at all
func (m Machine) Target(action Action) (model.Status, bool) {
	r, ok := rules[action]
	if !ok || r.to == "" {
		return "", false
	}
	return r.to, true
}

// Guard fails with a TransitionError when action cannot run from the auction's status
func (m Machine) Guard(action Action, a model.Auction) error {
	if m.Allows(action, a.Status) {
		return nil
	}
	required := make([]string, 0, len(m.sources(action)))
	for _, s := range m.sources(action) {
		required = append(required, string(s))
	}
	return &biddingerrors.TransitionError{Action: string(action), Current: string(a.Status), Required: required}
}

// Authorize checks the actor's role and relationship to the auction. Seller actions
// need the owning seller, buyer transitions need the winning bidder once one is set,
// time-driven transitions need the system actor. It runs before Guard.
func (m Machine) Authorize(action Action, actor model.Actor, a model.Auction) error {
	r, ok := rules[action]
	if !ok {
		return biddingerrors.Validationf("unknown action %q", action)
	}
	if actor.Role != r.role {
		return biddingerrors.Forbiddenf("%s requires role %s, caller is %s", action, r.role, actor.Role)
	}
	switch r.role {
	case model.RoleSeller:
		if actor.UserID != a.SellerID {
			return biddingerrors.Forbiddenf("user %d is not the seller of auction %d", actor.UserID, a.AuctionID)
		}
	case model.RoleBuyer:
		if action == ActionPlaceBid {
			return nil
		}
		if a.WinningBidderID != nil && *a.WinningBidderID != actor.UserID {
			return biddingerrors.Forbiddenf("user %d is not the winning bidder of auction %d", actor.UserID, a.AuctionID)
		}
	}
	return nil
}

// Edges lists every status change the table can produce, for invariant checks
func (m Machine) Edges() map[model.Status][]model.Status {
	out := make(map[model.Status][]model.Status)
	for action, r := range rules {
		if r.to == "" {
			continue
		}
		for _, from := range m.sources(action) {
			out[from] = append(out[from], r.to)
		}
	}
	return out
}
