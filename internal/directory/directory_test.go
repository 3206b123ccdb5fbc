package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	auction "moto-auction/internal/auctionService"
	"moto-auction/internal/biddingerrors"
	"moto-auction/internal/broadcaster"
	model "moto-auction/internal/models"
	"moto-auction/internal/notifications"
	"moto-auction/internal/repository"

	"github.com/stretchr/testify/require"
)

var (
	now    = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	seller = model.Actor{UserID: 1, Role: model.RoleSeller}
	buyer  = model.Actor{UserID: 2, Role: model.RoleBuyer}
	guest  = model.Actor{UserID: 3, Role: model.RoleBuyer}
)

type fixture struct {
	dir    *Directory
	engine *auction.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := repository.NewMemoryRepo()
	engine := auction.NewService(repo, notifications.NewGenerator(repo), nil, auction.DefaultOptions())
	engine.SetClock(func() time.Time { return now })
	return fixture{dir: New(repo, engine), engine: engine}
}

func (f fixture) list(t *testing.T, owner model.Actor, edit func(*auction.CreateRequest)) model.Auction {
	t.Helper()
	ctx := context.Background()
	moto, err := f.engine.RegisterMotorcycle(ctx, owner, model.Motorcycle{Make: "BMW", Model: "R1250GS", Year: 2022})
	require.NoError(t, err)
	req := auction.CreateRequest{MotorcycleID: moto.MotorcycleID, StartingPrice: 9000, EndTime: now.Add(2 * time.Hour)}
	if edit != nil {
		edit(&req)
	}
	a, err := f.engine.Create(ctx, owner, req)
	require.NoError(t, err)
	return a
}

// Tests Detail merges ledger and motorcycle data and guards the reserve
func TestDirectory_Detail(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	reserve := int64(9500)
	a := f.list(t, seller, func(r *auction.CreateRequest) { r.ReservePrice = &reserve })

	_, err := f.engine.SubmitBid(ctx, buyer, a.AuctionID, 9000)
	require.NoError(t, err)
	top, err := f.engine.SubmitBid(ctx, guest, a.AuctionID, 9600)
	require.NoError(t, err)

	t.Run("bidder_view", func(t *testing.T) {
		t.Parallel()
		d, err := f.dir.Detail(ctx, buyer.UserID, a.AuctionID)
		require.NoError(t, err)
		require.Equal(t, top.Amount, *d.CurrentBid)
		require.Equal(t, guest.UserID, *d.LeadingBidderID)
		require.Equal(t, 2, d.TotalBids)
		require.Equal(t, int64(9650), d.MinimumNextBid)
		require.Equal(t, "2022 BMW R1250GS", d.Motorcycle.Title())
		require.Nil(t, d.ReservePrice)
		require.Nil(t, d.ReserveMet)
	})

	t.Run("seller_view", func(t *testing.T) {
		t.Parallel()
		d, err := f.dir.Detail(ctx, seller.UserID, a.AuctionID)
		require.NoError(t, err)
		require.Equal(t, reserve, *d.ReservePrice)
		require.True(t, *d.ReserveMet)
	})

	t.Run("matches_ledger", func(t *testing.T) {
		t.Parallel()
		d, err := f.dir.Detail(ctx, 0, a.AuctionID)
		require.NoError(t, err)
		snap, err := f.engine.Snapshot(ctx, a.AuctionID)
		require.NoError(t, err)
		require.Equal(t, snap.Highest.Amount, *d.CurrentBid)
		require.Equal(t, snap.TotalBids, d.TotalBids)
		require.Len(t, d.Bids, d.TotalBids)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, err := f.dir.Detail(ctx, 0, 999)
		require.True(t, errors.Is(err, biddingerrors.ErrAuctionNotFound))
	})
}

// Tests invite-only auctions are hidden from outsiders
func TestDirectory_InviteOnlyVisibility(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	private := f.list(t, seller, func(r *auction.CreateRequest) {
		r.Visibility = model.VisibilityInviteOnly
		r.InvitedBidderIDs = []int64{buyer.UserID}
	})
	public := f.list(t, seller, nil)

	tests := []struct {
		name     string
		viewerID int64
		want     []int64
	}{
		{name: "anonymous", viewerID: 0, want: []int64{public.AuctionID}},
		{name: "outsider", viewerID: guest.UserID, want: []int64{public.AuctionID}},
		{name: "invited", viewerID: buyer.UserID, want: []int64{private.AuctionID, public.AuctionID}},
		{name: "seller", viewerID: seller.UserID, want: []int64{private.AuctionID, public.AuctionID}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			active, err := f.dir.Active(ctx, tc.viewerID)
			require.NoError(t, err)
			var ids []int64
			for _, s := range active {
				ids = append(ids, s.AuctionID)
			}
			require.ElementsMatch(t, tc.want, ids)

			_, err = f.dir.Detail(ctx, tc.viewerID, private.AuctionID)
			_, bidsErr := f.dir.Bids(ctx, tc.viewerID, private.AuctionID)
			watchErr := f.dir.CanWatch(ctx, tc.viewerID, broadcaster.AuctionTopic(private.AuctionID))
			if len(tc.want) == 2 {
				require.NoError(t, err)
				require.NoError(t, bidsErr)
				require.NoError(t, watchErr)
			} else {
				require.True(t, errors.Is(err, biddingerrors.ErrAuctionNotFound))
				require.True(t, errors.Is(bidsErr, biddingerrors.ErrAuctionNotFound))
				require.True(t, errors.Is(watchErr, biddingerrors.ErrAuctionNotFound))
			}
			require.NoError(t, f.dir.CanWatch(ctx, tc.viewerID, broadcaster.TopicAllAuctions))
			require.NoError(t, f.dir.CanWatch(ctx, tc.viewerID, broadcaster.AuctionTopic(public.AuctionID)))
		})
	}
}

// Tests Active ordering and DealerAuctions
func TestDirectory_Listings(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	otherSeller := model.Actor{UserID: 10, Role: model.RoleSeller}

	late := f.list(t, seller, func(r *auction.CreateRequest) { r.EndTime = now.Add(5 * time.Hour) })
	soon := f.list(t, seller, func(r *auction.CreateRequest) { r.EndTime = now.Add(time.Hour) })
	upcoming := f.list(t, seller, func(r *auction.CreateRequest) {
		r.StartTime = now.Add(time.Hour)
		r.EndTime = now.Add(3 * time.Hour)
	})
	elsewhere := f.list(t, otherSeller, nil)

	_, err := f.engine.SubmitBid(ctx, buyer, soon.AuctionID, 9100)
	require.NoError(t, err)

	active, err := f.dir.Active(ctx, 0)
	require.NoError(t, err)
	require.Len(t, active, 3)
	require.Equal(t, soon.AuctionID, active[0].AuctionID)
	require.Equal(t, int64(9100), *active[0].CurrentBid)
	require.Equal(t, 1, active[0].TotalBids)
	require.Nil(t, active[1].CurrentBid)

	mine, err := f.dir.DealerAuctions(ctx, 0, seller.UserID)
	require.NoError(t, err)
	var ids []int64
	for _, s := range mine {
		ids = append(ids, s.AuctionID)
	}
	require.Equal(t, []int64{upcoming.AuctionID, soon.AuctionID, late.AuctionID}, ids)
	require.Equal(t, model.StatusPending, mine[0].Status)

	theirs, err := f.dir.DealerAuctions(ctx, 0, otherSeller.UserID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	require.Equal(t, elsewhere.AuctionID, theirs[0].AuctionID)

	_, err = f.dir.DealerAuctions(ctx, 0, 0)
	require.True(t, errors.Is(err, biddingerrors.ErrValidation))

	bids, err := f.dir.Bids(ctx, 0, late.AuctionID)
	require.NoError(t, err)
	require.NotNil(t, bids)
	require.Empty(t, bids)
}
