package repository

import (
	"fmt"
	"sort"
	"sync"

	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
)

// AuctionDB defines the durable storage the auction engine and query surface consume
type AuctionDB interface {
	CreateAuction(auction model.Auction) (model.Auction, error)
	LoadAuction(auctionID int64) (model.Auction, error)
	SaveAuction(auction model.Auction) error
	DeleteAuction(auctionID int64) error
	ListAuctions(filter AuctionFilter) ([]model.Auction, error)

	AppendBid(bid model.Bid) (model.Bid, error)
	RemoveBid(auctionID, bidID int64) error
	LoadBidsForAuction(auctionID int64) ([]model.Bid, error)

	CreateMotorcycle(motorcycle model.Motorcycle) (model.Motorcycle, error)
	LoadMotorcycle(motorcycleID int64) (model.Motorcycle, error)
	SaveMotorcycle(motorcycle model.Motorcycle) error
}

// NotificationDB stores per-user notification records
type NotificationDB interface {
	CreateNotification(n model.Notification) (model.Notification, error)
	ListNotifications(userID int64) ([]model.Notification, error)
	MarkNotificationRead(userID, notificationID int64) (model.Notification, error)
	MarkAllNotificationsRead(userID int64) (int, error)
}

// UserDB resolves users for the authentication collaborator
type UserDB interface {
	CreateUser(user model.User) (model.User, error)
	LoadUser(userID int64) (model.User, error)
}

// AuctionFilter narrows ListAuctions; zero values match everything
type AuctionFilter struct {
	Statuses []model.Status
	SellerID int64
}

func (f AuctionFilter) matches(a model.Auction) bool {
	if f.SellerID != 0 && a.SellerID != f.SellerID {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// arena is an id-keyed table with its own lock and id sequence
type arena[T any] struct {
	mu   sync.RWMutex
	next int64
	rows map[int64]T
}

func newArena[T any]() *arena[T] {
	return &arena[T]{rows: make(map[int64]T)}
}

func (a *arena[T]) insert(build func(id int64) T) T {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next++
	row := build(a.next)
	a.rows[a.next] = row
	return row
}

func (a *arena[T]) get(id int64) (T, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	row, ok := a.rows[id]
	return row, ok
}

func (a *arena[T]) replace(id int64, row T) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.rows[id]; !ok {
		return false
	}
	a.rows[id] = row
	return true
}

func (a *arena[T]) remove(id int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.rows[id]; !ok {
		return false
	}
	delete(a.rows, id)
	return true
}

// scan visits rows in ascending id order
func (a *arena[T]) scan(visit func(T)) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ids := make([]int64, 0, len(a.rows))
	for id := range a.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		visit(a.rows[id])
	}
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB, NotificationDB and UserDB
type MemoryRepo struct {
	auctions    *arena[model.Auction]
	motorcycles *arena[model.Motorcycle]
	users       *arena[model.User]

	bidMu     sync.RWMutex
	nextBidID int64
	bids      map[int64][]model.Bid // key: auctionID -> bids in append order

	noteMu     sync.RWMutex
	nextNoteID int64
	notes      map[int64][]model.Notification // key: userID -> notifications in creation order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:    newArena[model.Auction](),
		motorcycles: newArena[model.Motorcycle](),
		users:       newArena[model.User](),
		bids:        make(map[int64][]model.Bid),
		notes:       make(map[int64][]model.Notification),
	}
}

// CreateAuction stores a new auction and assigns its id
func (r *MemoryRepo) CreateAuction(auction model.Auction) (model.Auction, error) {
	if _, ok := r.motorcycles.get(auction.MotorcycleID); !ok {
		return model.Auction{}, fmt.Errorf("create auction for motorcycle %d: %w", auction.MotorcycleID, biddingerrors.ErrMotorcycleNotFound)
	}
	stored := r.auctions.insert(func(id int64) model.Auction {
		a := auction.Clone()
		a.AuctionID = id
		return a
	})
	return stored.Clone(), nil
}

// LoadAuction returns a copy of the stored auction
func (r *MemoryRepo) LoadAuction(auctionID int64) (model.Auction, error) {
	a, ok := r.auctions.get(auctionID)
	if !ok {
		return model.Auction{}, fmt.Errorf("load auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return a.Clone(), nil
}

// SaveAuction overwrites an existing auction
func (r *MemoryRepo) SaveAuction(auction model.Auction) error {
	if !r.auctions.replace(auction.AuctionID, auction.Clone()) {
		return fmt.Errorf("save auction %d: %w", auction.AuctionID, biddingerrors.ErrAuctionNotFound)
	}
	return nil
}

// DeleteAuction removes an auction and any bids stored against it
func (r *MemoryRepo) DeleteAuction(auctionID int64) error {
	if !r.auctions.remove(auctionID) {
		return fmt.Errorf("delete auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	r.bidMu.Lock()
	delete(r.bids, auctionID)
	r.bidMu.Unlock()
	return nil
}

// ListAuctions returns auctions matching filter in ascending id order
func (r *MemoryRepo) ListAuctions(filter AuctionFilter) ([]model.Auction, error) {
	var out []model.Auction
	r.auctions.scan(func(a model.Auction) {
		if filter.matches(a) {
			out = append(out, a.Clone())
		}
	})
	return out, nil
}

// AppendBid records a bid and assigns its id
func (r *MemoryRepo) AppendBid(bid model.Bid) (model.Bid, error) {
	if _, ok := r.auctions.get(bid.AuctionID); !ok {
		return model.Bid{}, fmt.Errorf("append bid for auction %d: %w", bid.AuctionID, biddingerrors.ErrAuctionNotFound)
	}

	r.bidMu.Lock()
	defer r.bidMu.Unlock()

	r.nextBidID++
	bid.BidID = r.nextBidID
	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], bid)
	return bid, nil
}

// RemoveBid withdraws a bid whose placement could not be completed
func (r *MemoryRepo) RemoveBid(auctionID, bidID int64) error {
	r.bidMu.Lock()
	defer r.bidMu.Unlock()

	bids := r.bids[auctionID]
	for i, b := range bids {
		if b.BidID == bidID {
			r.bids[auctionID] = append(bids[:i:i], bids[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove bid %d from auction %d: %w", bidID, auctionID, biddingerrors.ErrBidNotFound)
}

// LoadBidsForAuction returns all bids for an auction in append order
func (r *MemoryRepo) LoadBidsForAuction(auctionID int64) ([]model.Bid, error) {
	r.bidMu.RLock()
	defer r.bidMu.RUnlock()
	return append([]model.Bid(nil), r.bids[auctionID]...), nil
}

// CreateMotorcycle stores a motorcycle and assigns its id
func (r *MemoryRepo) CreateMotorcycle(motorcycle model.Motorcycle) (model.Motorcycle, error) {
	return r.motorcycles.insert(func(id int64) model.Motorcycle {
		motorcycle.MotorcycleID = id
		return motorcycle
	}), nil
}

// LoadMotorcycle returns a stored motorcycle
func (r *MemoryRepo) LoadMotorcycle(motorcycleID int64) (model.Motorcycle, error) {
	m, ok := r.motorcycles.get(motorcycleID)
	if !ok {
		return model.Motorcycle{}, fmt.Errorf("load motorcycle %d: %w", motorcycleID, biddingerrors.ErrMotorcycleNotFound)
	}
	return m, nil
}

// SaveMotorcycle overwrites an existing motorcycle
func (r *MemoryRepo) SaveMotorcycle(motorcycle model.Motorcycle) error {
	if !r.motorcycles.replace(motorcycle.MotorcycleID, motorcycle) {
		return fmt.Errorf("save motorcycle %d: %w", motorcycle.MotorcycleID, biddingerrors.ErrMotorcycleNotFound)
	}
	return nil
}

// CreateUser stores a user and assigns its id
func (r *MemoryRepo) CreateUser(user model.User) (model.User, error) {
	return r.users.insert(func(id int64) model.User {
		user.UserID = id
		return user
	}), nil
}

// LoadUser returns a stored user
func (r *MemoryRepo) LoadUser(userID int64) (model.User, error) {
	u, ok := r.users.get(userID)
	if !ok {
		return model.User{}, fmt.Errorf("load user %d: %w", userID, biddingerrors.ErrUserNotFound)
	}
	return u, nil
}

// CreateNotification stores a notification and assigns its id
func (r *MemoryRepo) CreateNotification(n model.Notification) (model.Notification, error) {
	r.noteMu.Lock()
	defer r.noteMu.Unlock()

	r.nextNoteID++
	n.NotificationID = r.nextNoteID
	r.notes[n.UserID] = append(r.notes[n.UserID], n)
	return n, nil
}

// ListNotifications returns a user's notifications, newest first
func (r *MemoryRepo) ListNotifications(userID int64) ([]model.Notification, error) {
	r.noteMu.RLock()
	defer r.noteMu.RUnlock()

	stored := r.notes[userID]
	out := make([]model.Notification, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

// MarkNotificationRead sets the read flag on one of the user's notifications
func (r *MemoryRepo) MarkNotificationRead(userID, notificationID int64) (model.Notification, error) {
	r.noteMu.Lock()
	defer r.noteMu.Unlock()

	stored := r.notes[userID]
	for i := range stored {
		if stored[i].NotificationID == notificationID {
			stored[i].Read = true
			return stored[i], nil
		}
	}
	return model.Notification{}, fmt.Errorf("mark notification %d read for user %d: %w", notificationID, userID, biddingerrors.ErrNotificationNotFound)
}

// MarkAllNotificationsRead marks every unread notification for the user and returns how many changed
func (r *MemoryRepo) MarkAllNotificationsRead(userID int64) (int, error) {
	r.noteMu.Lock()
	defer r.noteMu.Unlock()

	changed := 0
	stored := r.notes[userID]
	for i := range stored {
		if !stored[i].Read {
			stored[i].Read = true
			changed++
		}
	}
	return changed, nil
}
