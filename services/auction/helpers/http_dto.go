package helpers

import (
	"time"

	model "moto-auction/internal/models"
)

// Request DTOs
type PlaceBidRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type AcceptBidRequest struct {
	BidID int64 `json:"bid_id" binding:"required,gt=0"`
}

// DateRequest carries a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp
type DateRequest struct {
	Date string `json:"date" binding:"required"`
}

type CreateAuctionRequest struct {
	MotorcycleID     int64     `json:"motorcycle_id" binding:"required,gt=0"`
	StartingPrice    int64     `json:"starting_price" binding:"required,gt=0"`
	ReservePrice     *int64    `json:"reserve_price" binding:"omitempty,gt=0"`
	Visibility       string    `json:"visibility" binding:"omitempty,oneof=public invite_only"`
	InvitedBidderIDs []int64   `json:"invited_bidder_ids"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time" binding:"required"`
}

type RegisterMotorcycleRequest struct {
	Make          string    `json:"make" binding:"required"`
	Model         string    `json:"model" binding:"required"`
	Year          int       `json:"year" binding:"omitempty,gte=1885"`
	Mileage       int       `json:"mileage" binding:"omitempty,gte=0"`
	Description   string    `json:"description"`
	DateAvailable time.Time `json:"date_available"`
}

type TokenRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

// Response DTOs
type BidResponse struct {
	BidID     int64  `json:"bid_id"`
	AuctionID int64  `json:"auction_id"`
	BidderID  int64  `json:"bidder_id"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type TokenResponse struct {
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expires_at"`
	User      model.User `json:"user"`
}

// ToBidResponse converts a bid to its wire form
func ToBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:     b.BidID,
		AuctionID: b.AuctionID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
