package auction

import (
	"errors"
	"testing"

	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMachine_Allows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		early  bool
		action Action
		status model.Status
		want   bool
	}{
		{name: "activate_pending", action: ActionActivate, status: model.StatusPending, want: true},
		{name: "activate_active", action: ActionActivate, status: model.StatusActive, want: false},
		{name: "end_active", action: ActionEnd, status: model.StatusActive, want: true},
		{name: "accept_ended", action: ActionAcceptBid, status: model.StatusEnded, want: true},
		{name: "accept_active_without_early", action: ActionAcceptBid, status: model.StatusActive, want: false},
		{name: "accept_active_with_early", early: true, action: ActionAcceptBid, status: model.StatusActive, want: true},
		{name: "accept_twice", early: true, action: ActionAcceptBid, status: model.StatusBidAccepted, want: false},
		{name: "confirm_deal", action: ActionConfirmDeal, status: model.StatusBidAccepted, want: true},
		{name: "schedule", action: ActionScheduleCollection, status: model.StatusDealConfirmed, want: true},
		{name: "confirm_collection", action: ActionConfirmCollection, status: model.StatusCollectionScheduled, want: true},
		{name: "complete_override", action: ActionCompleteDeal, status: model.StatusCollectionScheduled, want: true},
		{name: "extend_date", action: ActionExtendDate, status: model.StatusCollectionScheduled, want: true},
		{name: "archive_pending", action: ActionArchiveNoSale, status: model.StatusPending, want: true},
		{name: "archive_ended", action: ActionArchiveNoSale, status: model.StatusEnded, want: false},
		{name: "delete_completed", action: ActionDelete, status: model.StatusCompleted, want: false},
		{name: "unknown_action", action: Action("teleport"), status: model.StatusActive, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := Machine{EarlyAcceptance: tc.early}
			require.Equal(t, tc.want, m.Allows(tc.action, tc.status))
		})
	}
}

func TestMachine_GuardNamesStatusAndAction(t *testing.T) {
	t.Parallel()

	err := Machine{}.Guard(ActionConfirmDeal, model.Auction{Status: model.StatusEnded})
	require.True(t, errors.Is(err, biddingerrors.ErrInvalidTransition))
	require.Contains(t, err.Error(), "cannot confirm-deal while auction is ended (requires bid_accepted)")
}

func TestMachine_Authorize(t *testing.T) {
	t.Parallel()

	winner := int64(7)
	a := model.Auction{AuctionID: 1, SellerID: 3, WinningBidderID: &winner}

	tests := []struct {
		name    string
		action  Action
		actor   model.Actor
		wantErr error
	}{
		{name: "owner_seller", action: ActionAcceptBid, actor: model.Actor{UserID: 3, Role: model.RoleSeller}},
		{name: "other_seller", action: ActionAcceptBid, actor: model.Actor{UserID: 4, Role: model.RoleSeller}, wantErr: biddingerrors.ErrForbidden},
		{name: "buyer_on_seller_action", action: ActionArchiveNoSale, actor: model.Actor{UserID: 7, Role: model.RoleBuyer}, wantErr: biddingerrors.ErrForbidden},
		{name: "winner_confirms", action: ActionConfirmDeal, actor: model.Actor{UserID: 7, Role: model.RoleBuyer}},
		{name: "loser_confirms", action: ActionConfirmDeal, actor: model.Actor{UserID: 8, Role: model.RoleBuyer}, wantErr: biddingerrors.ErrForbidden},
		{name: "seller_confirms_deal", action: ActionConfirmDeal, actor: model.Actor{UserID: 3, Role: model.RoleSeller}, wantErr: biddingerrors.ErrForbidden},
		{name: "system_ends", action: ActionEnd, actor: model.SystemActor},
		{name: "seller_ends", action: ActionEnd, actor: model.Actor{UserID: 3, Role: model.RoleSeller}, wantErr: biddingerrors.ErrForbidden},
		{name: "any_buyer_bids", action: ActionPlaceBid, actor: model.Actor{UserID: 9, Role: model.RoleBuyer}},
		{name: "unknown_action", action: Action("teleport"), actor: model.SystemActor, wantErr: biddingerrors.ErrValidation},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Machine{}.Authorize(tc.action, tc.actor, a)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

// The status graph must be acyclic and terminal states must have no way out
func TestMachine_EdgesFormDAG(t *testing.T) {
	t.Parallel()

	for _, early := range []bool{false, true} {
		edges := Machine{EarlyAcceptance: early}.Edges()

		for from, tos := range edges {
			require.False(t, from.Terminal(), "terminal status %s has outgoing edges", from)
			for _, to := range tos {
				require.NotEqual(t, from, to)
			}
		}

		const (
			unvisited = iota
			visiting
			done
		)
		marks := make(map[model.Status]int)
		var visit func(model.Status)
		visit = func(s model.Status) {
			require.NotEqual(t, visiting, marks[s], "cycle through %s", s)
			if marks[s] == done {
				return
			}
			marks[s] = visiting
			for _, next := range edges[s] {
				visit(next)
			}
			marks[s] = done
		}
		for from := range edges {
			visit(from)
		}
	}
}
