package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"

	"github.com/stretchr/testify/require"
)

// Helper to seed a motorcycle and an auction for it
func seedAuction(t *testing.T, repo *MemoryRepo, sellerID int64, status model.Status) model.Auction {
	t.Helper()

	moto, err := repo.CreateMotorcycle(model.Motorcycle{OwnerID: sellerID, Make: "Triumph", Model: "Bonneville", Year: 2019})
	require.NoError(t, err)

	now := time.Now().UTC()
	reserve := int64(4000)
	a, err := repo.CreateAuction(model.Auction{
		MotorcycleID:  moto.MotorcycleID,
		SellerID:      sellerID,
		StartingPrice: 3500,
		ReservePrice:  &reserve,
		Visibility:    model.VisibilityPublic,
		StartTime:     now,
		EndTime:       now.Add(time.Hour),
		Status:        status,
	})
	require.NoError(t, err)
	return a
}

// Test CreateAuction / LoadAuction / SaveAuction
func TestMemoryRepo_AuctionCRUD(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	a := seedAuction(t, repo, 1, model.StatusActive)
	require.NotZero(t, a.AuctionID)

	t.Run("load_returns_copy", func(t *testing.T) {
		loaded, err := repo.LoadAuction(a.AuctionID)
		require.NoError(t, err)
		*loaded.ReservePrice = 1

		again, err := repo.LoadAuction(a.AuctionID)
		require.NoError(t, err)
		require.Equal(t, int64(4000), *again.ReservePrice)
	})

	t.Run("save_overwrites", func(t *testing.T) {
		loaded, err := repo.LoadAuction(a.AuctionID)
		require.NoError(t, err)
		loaded.Status = model.StatusEnded
		require.NoError(t, repo.SaveAuction(loaded))

		again, err := repo.LoadAuction(a.AuctionID)
		require.NoError(t, err)
		require.Equal(t, model.StatusEnded, again.Status)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		_, err := repo.LoadAuction(999)
		require.True(t, errors.Is(err, biddingerrors.ErrAuctionNotFound))
		require.True(t, errors.Is(repo.SaveAuction(model.Auction{AuctionID: 999}), biddingerrors.ErrAuctionNotFound))
		require.True(t, errors.Is(repo.DeleteAuction(999), biddingerrors.ErrAuctionNotFound))
	})

	t.Run("create_requires_motorcycle", func(t *testing.T) {
		_, err := repo.CreateAuction(model.Auction{MotorcycleID: 12345})
		require.True(t, errors.Is(err, biddingerrors.ErrMotorcycleNotFound))
	})
}

// Test ListAuctions filtering
func TestMemoryRepo_ListAuctions(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	a1 := seedAuction(t, repo, 1, model.StatusActive)
	a2 := seedAuction(t, repo, 1, model.StatusPending)
	a3 := seedAuction(t, repo, 2, model.StatusActive)

	tests := []struct {
		name   string
		filter AuctionFilter
		want   []int64
	}{
		{name: "all", filter: AuctionFilter{}, want: []int64{a1.AuctionID, a2.AuctionID, a3.AuctionID}},
		{name: "active_only", filter: AuctionFilter{Statuses: []model.Status{model.StatusActive}}, want: []int64{a1.AuctionID, a3.AuctionID}},
		{name: "seller_1", filter: AuctionFilter{SellerID: 1}, want: []int64{a1.AuctionID, a2.AuctionID}},
		{name: "seller_2_pending", filter: AuctionFilter{SellerID: 2, Statuses: []model.Status{model.StatusPending}}, want: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := repo.ListAuctions(tc.filter)
			require.NoError(t, err)

			var ids []int64
			for _, a := range got {
				ids = append(ids, a.AuctionID)
			}
			require.Equal(t, tc.want, ids)
		})
	}
}

// Test AppendBid / LoadBidsForAuction
func TestMemoryRepo_Bids(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	a := seedAuction(t, repo, 1, model.StatusActive)

	b1, err := repo.AppendBid(model.Bid{AuctionID: a.AuctionID, BidderID: 2, Amount: 3500})
	require.NoError(t, err)
	b2, err := repo.AppendBid(model.Bid{AuctionID: a.AuctionID, BidderID: 3, Amount: 3600})
	require.NoError(t, err)
	require.NotEqual(t, b1.BidID, b2.BidID)

	bids, err := repo.LoadBidsForAuction(a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, []model.Bid{b1, b2}, bids)

	_, err = repo.AppendBid(model.Bid{AuctionID: 999, BidderID: 2, Amount: 1})
	require.True(t, errors.Is(err, biddingerrors.ErrAuctionNotFound))

	// removing a bid keeps the others in order
	b3, err := repo.AppendBid(model.Bid{AuctionID: a.AuctionID, BidderID: 2, Amount: 3700})
	require.NoError(t, err)
	require.NoError(t, repo.RemoveBid(a.AuctionID, b2.BidID))
	bids, err = repo.LoadBidsForAuction(a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, []model.Bid{b1, b3}, bids)

	err = repo.RemoveBid(a.AuctionID, b2.BidID)
	require.True(t, errors.Is(err, biddingerrors.ErrBidNotFound))

	// deleting the auction drops its bids
	require.NoError(t, repo.DeleteAuction(a.AuctionID))
	bids, err = repo.LoadBidsForAuction(a.AuctionID)
	require.NoError(t, err)
	require.Empty(t, bids)

	// concurrency test
	t.Run("concurrent_bids", func(t *testing.T) {
		t.Parallel()

		repo := NewMemoryRepo()
		a := seedAuction(t, repo, 1, model.StatusActive)

		var wg sync.WaitGroup
		concurrentCount := 50

		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				_, err := repo.AppendBid(model.Bid{AuctionID: a.AuctionID, BidderID: int64(100 + i), Amount: int64(3500 + i)})
				require.NoError(t, err)
			}()
		}

		wg.Wait()

		bids, err := repo.LoadBidsForAuction(a.AuctionID)
		require.NoError(t, err)
		require.Len(t, bids, concurrentCount)

		seen := make(map[int64]bool)
		for _, b := range bids {
			require.False(t, seen[b.BidID], fmt.Sprintf("duplicate bid id %d", b.BidID))
			seen[b.BidID] = true
		}
	})
}

// Test notification storage
func TestMemoryRepo_Notifications(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()

	n1, err := repo.CreateNotification(model.Notification{UserID: 7, Type: model.NotificationBid, Content: "first"})
	require.NoError(t, err)
	n2, err := repo.CreateNotification(model.Notification{UserID: 7, Type: model.NotificationBidAccepted, Content: "second"})
	require.NoError(t, err)
	_, err = repo.CreateNotification(model.Notification{UserID: 8, Type: model.NotificationBid, Content: "other user"})
	require.NoError(t, err)

	list, err := repo.ListNotifications(7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, n2.NotificationID, list[0].NotificationID, "newest first")

	read, err := repo.MarkNotificationRead(7, n1.NotificationID)
	require.NoError(t, err)
	require.True(t, read.Read)

	// idempotent
	read, err = repo.MarkNotificationRead(7, n1.NotificationID)
	require.NoError(t, err)
	require.True(t, read.Read)

	// another user's notification is not found for user 7
	_, err = repo.MarkNotificationRead(8, n1.NotificationID)
	require.True(t, errors.Is(err, biddingerrors.ErrNotificationNotFound))

	changed, err := repo.MarkAllNotificationsRead(7)
	require.NoError(t, err)
	require.Equal(t, 1, changed)

	changed, err = repo.MarkAllNotificationsRead(7)
	require.NoError(t, err)
	require.Zero(t, changed)
}

// Test users and motorcycles
func TestMemoryRepo_UsersAndMotorcycles(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()

	u, err := repo.CreateUser(model.User{Username: "dealer", Role: model.RoleSeller})
	require.NoError(t, err)
	loaded, err := repo.LoadUser(u.UserID)
	require.NoError(t, err)
	require.Equal(t, u, loaded)

	_, err = repo.LoadUser(42)
	require.True(t, errors.Is(err, biddingerrors.ErrUserNotFound))

	m, err := repo.CreateMotorcycle(model.Motorcycle{OwnerID: u.UserID, Make: "Honda", Model: "CB500"})
	require.NoError(t, err)
	m.Mileage = 1200
	require.NoError(t, repo.SaveMotorcycle(m))

	loadedMoto, err := repo.LoadMotorcycle(m.MotorcycleID)
	require.NoError(t, err)
	require.Equal(t, 1200, loadedMoto.Mileage)

	require.True(t, errors.Is(repo.SaveMotorcycle(model.Motorcycle{MotorcycleID: 77}), biddingerrors.ErrMotorcycleNotFound))
}
