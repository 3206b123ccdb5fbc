package models

import (
	"errors"
	"strconv"
	"time"
)

// Role identifies which kind of actor is making a request
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
	RoleSystem Role = "system"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleSeller, RoleBuyer, RoleSystem:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
}

// SystemActor is used by the background sweep for time-driven transitions
var SystemActor = Actor{Role: RoleSystem}

// User represents a participant in the marketplace
type User struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Motorcycle is the listed vehicle an auction sells
type Motorcycle struct {
	MotorcycleID  int64     `json:"motorcycle_id"`
	OwnerID       int64     `json:"owner_id"`
	Make          string    `json:"make"`
	Model         string    `json:"model"`
	Year          int       `json:"year"`
	Mileage       int       `json:"mileage"`
	Description   string    `json:"description"`
	DateAvailable time.Time `json:"date_available"`
}

// Title is the short human readable name used in notifications
func (m Motorcycle) Title() string {
	if m.Make == "" && m.Model == "" {
		return "motorcycle"
	}
	if m.Year == 0 {
		return m.Make + " " + m.Model
	}
	return strconv.Itoa(m.Year) + " " + m.Make + " " + m.Model
}

// Status is the lifecycle state of an auction
type Status string

const (
	StatusPending             Status = "pending"
	StatusActive              Status = "active"
	StatusEnded               Status = "ended"
	StatusBidAccepted         Status = "bid_accepted"
	StatusDealConfirmed       Status = "deal_confirmed"
	StatusCollectionScheduled Status = "collection_scheduled"
	StatusCompleted           Status = "completed"
	StatusArchivedNoSale      Status = "archived_no_sale"
)

// Terminal reports whether no further transitions can leave s
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusArchivedNoSale
}

// HasWinner reports whether an auction in status s carries a winning bidder
func (s Status) HasWinner() bool {
	switch s {
	case StatusBidAccepted, StatusDealConfirmed, StatusCollectionScheduled, StatusCompleted:
		return true
	}
	return false
}

// Visibility controls who may see and bid on an auction
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityInviteOnly Visibility = "invite_only"
)

// Auction represents one listed motorcycle's sale process.
// ReservePrice and InvitedBidderIDs are never serialized directly; views decide who sees them.
type Auction struct {
	AuctionID           int64      `json:"auction_id"`
	MotorcycleID        int64      `json:"motorcycle_id"`
	SellerID            int64      `json:"seller_id"`
	StartingPrice       int64      `json:"starting_price"`
	ReservePrice        *int64     `json:"-"`
	Visibility          Visibility `json:"visibility"`
	InvitedBidderIDs    []int64    `json:"-"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             time.Time  `json:"end_time"`
	Status              Status     `json:"status"`
	WinningBidderID     *int64     `json:"winning_bidder_id,omitempty"`
	AcceptedBidID       *int64     `json:"accepted_bid_id,omitempty"`
	CollectionDate      *time.Time `json:"collection_date,omitempty"`
	DealConfirmed       bool       `json:"deal_confirmed"`
	CollectionConfirmed bool       `json:"collection_confirmed"`
	EndingNotified      bool       `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Clone returns a deep copy so callers can never alias stored state
func (a Auction) Clone() Auction {
	c := a
	if a.ReservePrice != nil {
		v := *a.ReservePrice
		c.ReservePrice = &v
	}
	if a.WinningBidderID != nil {
		v := *a.WinningBidderID
		c.WinningBidderID = &v
	}
	if a.AcceptedBidID != nil {
		v := *a.AcceptedBidID
		c.AcceptedBidID = &v
	}
	if a.CollectionDate != nil {
		v := *a.CollectionDate
		c.CollectionDate = &v
	}
	if a.InvitedBidderIDs != nil {
		c.InvitedBidderIDs = append([]int64(nil), a.InvitedBidderIDs...)
	}
	return c
}

// IsInvited reports whether userID may bid on an invite-only auction
func (a Auction) IsInvited(userID int64) bool {
	for _, id := range a.InvitedBidderIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// VisibleTo reports whether the auction may be shown to userID (0 = anonymous)
func (a Auction) VisibleTo(userID int64) bool {
	if a.Visibility != VisibilityInviteOnly {
		return true
	}
	return userID != 0 && (userID == a.SellerID || a.IsInvited(userID))
}

// Invariant errors returned by CheckInvariants
var (
	ErrEndBeforeStart      = errors.New("end time must be after start time")
	ErrWinnerInWrongStatus = errors.New("winning bidder set outside an accepted status")
	ErrCollectionNoDeal    = errors.New("collection confirmed without a confirmed deal")
)

// CheckInvariants verifies the structural invariants every stored auction must satisfy
func (a Auction) CheckInvariants() error {
	if !a.EndTime.After(a.StartTime) {
		return ErrEndBeforeStart
	}
	if a.WinningBidderID != nil && !a.Status.HasWinner() {
		return ErrWinnerInWrongStatus
	}
	if a.CollectionConfirmed && !a.DealConfirmed {
		return ErrCollectionNoDeal
	}
	return nil
}

// Bid represents one bidder's offer against an auction
type Bid struct {
	BidID     int64     `json:"bid_id"`
	AuctionID int64     `json:"auction_id"`
	BidderID  int64     `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationType enumerates what a notification is about
type NotificationType string

const (
	NotificationBid                 NotificationType = "bid"
	NotificationBidAccepted         NotificationType = "bid_accepted"
	NotificationAuctionEnding       NotificationType = "auction_ending"
	NotificationAuctionCompleted    NotificationType = "auction_completed"
	NotificationMessage             NotificationType = "message"
	NotificationDealConfirmed       NotificationType = "deal_confirmed"
	NotificationCollectionScheduled NotificationType = "collection_scheduled"
	NotificationCollectionConfirmed NotificationType = "collection_confirmed"
)

// Notification is a durable per-user record of an event
type Notification struct {
	NotificationID int64            `json:"notification_id"`
	UserID         int64            `json:"user_id"`
	Type           NotificationType `json:"type"`
	Content        string           `json:"content"`
	Read           bool             `json:"read"`
	CreatedAt      time.Time        `json:"created_at"`
	Link           string           `json:"link,omitempty"`
}
