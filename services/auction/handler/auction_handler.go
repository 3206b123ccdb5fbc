package handler

import (
	"context"
	"net/http"
	"time"

	auction "moto-auction/internal/auctionService"
	"moto-auction/internal/biddingerrors"
	"moto-auction/internal/directory"
	model "moto-auction/internal/models"
	"moto-auction/services/auction/helpers"
	"moto-auction/utils"

	"github.com/gin-gonic/gin"
)

// AuctionEngine is the write side the handlers drive
type AuctionEngine interface {
	Create(ctx context.Context, actor model.Actor, req auction.CreateRequest) (model.Auction, error)
	SubmitBid(ctx context.Context, actor model.Actor, auctionID, amount int64) (model.Bid, error)
	AcceptBid(ctx context.Context, actor model.Actor, auctionID, bidID int64) (model.Auction, error)
	ConfirmDeal(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error)
	ScheduleCollection(ctx context.Context, actor model.Actor, auctionID int64, date time.Time) (model.Auction, error)
	ConfirmCollection(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error)
	CompleteDeal(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error)
	ExtendDate(ctx context.Context, actor model.Actor, auctionID int64, date time.Time) (model.Auction, error)
	ArchiveNoSale(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error)
	Delete(ctx context.Context, actor model.Actor, auctionID int64) error
	RegisterMotorcycle(ctx context.Context, actor model.Actor, m model.Motorcycle) (model.Motorcycle, error)
	Motorcycle(ctx context.Context, motorcycleID int64) (model.Motorcycle, error)
}

// AuctionQueries is the read side the handlers serve
type AuctionQueries interface {
	Detail(ctx context.Context, viewerID, auctionID int64) (directory.Detail, error)
	Bids(ctx context.Context, viewerID, auctionID int64) ([]model.Bid, error)
	Active(ctx context.Context, viewerID int64) ([]directory.Summary, error)
	DealerAuctions(ctx context.Context, viewerID, dealerID int64) ([]directory.Summary, error)
}

// AuctionHandler serves the auction lifecycle, bid and motorcycle routes
type AuctionHandler struct {
	engine  AuctionEngine
	queries AuctionQueries
}

// NewAuctionHandler sends writes to engine and reads to queries
func NewAuctionHandler(engine AuctionEngine, queries AuctionQueries) *AuctionHandler {
	return &AuctionHandler{engine: engine, queries: queries}
}

// requireActor writes 401 when the route was reached without an authenticated caller
func requireActor(c *gin.Context, handlerName string) (model.Actor, bool) {
	actor, ok := helpers.ActorFrom(c)
	if !ok {
		helpers.RespondError(c, handlerName, biddingerrors.ErrUnauthorized, nil)
		return model.Actor{}, false
	}
	return actor, true
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	actor, ok := requireActor(c, "CreateAuctionHandler")
	if !ok {
		return
	}
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	a, err := h.engine.Create(c.Request.Context(), actor, auction.CreateRequest{
		MotorcycleID:     req.MotorcycleID,
		StartingPrice:    req.StartingPrice,
		ReservePrice:     req.ReservePrice,
		Visibility:       model.Visibility(req.Visibility),
		InvitedBidderIDs: req.InvitedBidderIDs,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
	})
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err, map[string]any{
			"user_id":       actor.UserID,
			"motorcycle_id": req.MotorcycleID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, a, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": a.AuctionID,
		"seller_id":  a.SellerID,
		"status":     a.Status,
	})
}

// DeleteAuctionHandler handles DELETE /auctions/:auction_id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	actor, ok := requireActor(c, "DeleteAuctionHandler")
	if !ok {
		return
	}
	auctionID, err := helpers.ParseID(c, "auction_id")
	if err != nil {
		helpers.RespondError(c, "DeleteAuctionHandler", err, nil)
		return
	}

	if err := h.engine.Delete(c.Request.Context(), actor, auctionID); err != nil {
		helpers.RespondError(c, "DeleteAuctionHandler", err, map[string]any{
			"auction_id": auctionID,
			"user_id":    actor.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"auction_id": auctionID}, "auction deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted successfully", map[string]any{"auction_id": auctionID})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	actor, ok := requireActor(c, "PlaceBidHandler")
	if !ok {
		return
	}
	auctionID, err := helpers.ParseID(c, "auction_id")
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, nil)
		return
	}
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.engine.SubmitBid(c.Request.Context(), actor, auctionID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"user_id":    actor.UserID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"user_id":    bid.BidderID,
		"amount":     bid.Amount,
	})
}

// AcceptBidHandler handles POST /auctions/:auction_id/accept
func (h *AuctionHandler) AcceptBidHandler(c *gin.Context) {
	var req helpers.AcceptBidRequest
	h.transition(c, "AcceptBidHandler", "bid accepted successfully", &req,
		func(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
			return h.engine.AcceptBid(ctx, actor, auctionID, req.BidID)
		})
}

// ConfirmDealHandler handles POST /auctions/:auction_id/confirm-deal
func (h *AuctionHandler) ConfirmDealHandler(c *gin.Context) {
	h.transition(c, "ConfirmDealHandler", "deal confirmed successfully", nil, h.engine.ConfirmDeal)
}

// ScheduleCollectionHandler handles POST /auctions/:auction_id/schedule-collection
func (h *AuctionHandler) ScheduleCollectionHandler(c *gin.Context) {
	var req helpers.DateRequest
	h.transition(c, "ScheduleCollectionHandler", "collection scheduled successfully", &req,
		func(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
			date, err := helpers.ParseDate(req.Date)
			if err != nil {
				return model.Auction{}, err
			}
			return h.engine.ScheduleCollection(ctx, actor, auctionID, date)
		})
}

// ConfirmCollectionHandler handles POST /auctions/:auction_id/confirm-collection
func (h *AuctionHandler) ConfirmCollectionHandler(c *gin.Context) {
	h.transition(c, "ConfirmCollectionHandler", "collection confirmed successfully", nil, h.engine.ConfirmCollection)
}

// CompleteDealHandler handles POST /auctions/:auction_id/complete
func (h *AuctionHandler) CompleteDealHandler(c *gin.Context) {
	h.transition(c, "CompleteDealHandler", "deal completed successfully", nil, h.engine.CompleteDeal)
}

// ExtendDateHandler handles POST /auctions/:auction_id/extend-date
func (h *AuctionHandler) ExtendDateHandler(c *gin.Context) {
	var req helpers.DateRequest
	h.transition(c, "ExtendDateHandler", "availability date updated successfully", &req,
		func(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error) {
			date, err := helpers.ParseDate(req.Date)
			if err != nil {
				return model.Auction{}, err
			}
			return h.engine.ExtendDate(ctx, actor, auctionID, date)
		})
}

// ArchiveHandler handles POST /auctions/:auction_id/archive
func (h *AuctionHandler) ArchiveHandler(c *gin.Context) {
	h.transition(c, "ArchiveHandler", "auction archived successfully", nil, h.engine.ArchiveNoSale)
}

// transition is the shared body of every lifecycle endpoint. body, when set, is bound before run.
func (h *AuctionHandler) transition(
	c *gin.Context,
	handlerName, message string,
	body any,
	run func(ctx context.Context, actor model.Actor, auctionID int64) (model.Auction, error),
) {
	actor, ok := requireActor(c, handlerName)
	if !ok {
		return
	}
	auctionID, err := helpers.ParseID(c, "auction_id")
	if err != nil {
		helpers.RespondError(c, handlerName, err, nil)
		return
	}
	if body != nil {
		if err := c.ShouldBindJSON(body); err != nil {
			helpers.HandleBindError(c, handlerName, err)
			return
		}
	}

	a, err := run(c.Request.Context(), actor, auctionID)
	if err != nil {
		helpers.RespondError(c, handlerName, err, map[string]any{
			"auction_id": auctionID,
			"user_id":    actor.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, message)
	helpers.LogSuccess(handlerName, message, map[string]any{
		"auction_id": auctionID,
		"user_id":    actor.UserID,
		"status":     a.Status,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID, err := helpers.ParseID(c, "auction_id")
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err, nil)
		return
	}

	detail, err := h.queries.Detail(c.Request.Context(), helpers.ViewerID(c), auctionID)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, detail, "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"total_bids": detail.TotalBids,
	})
}

// GetBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	auctionID, err := helpers.ParseID(c, "auction_id")
	if err != nil {
		helpers.RespondError(c, "GetBidsHandler", err, nil)
		return
	}

	bids, err := h.queries.Bids(c.Request.Context(), helpers.ViewerID(c), auctionID)
	if err != nil {
		helpers.RespondError(c, "GetBidsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.ToBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(resp),
	})
}

// ListActiveHandler handles GET /auctions
func (h *AuctionHandler) ListActiveHandler(c *gin.Context) {
	list, err := h.queries.Active(c.Request.Context(), helpers.ViewerID(c))
	if err != nil {
		helpers.RespondError(c, "ListActiveHandler", err, nil)
		return
	}
	if list == nil {
		list = []directory.Summary{}
	}

	utils.JSONResponse(c, http.StatusOK, list, "auctions retrieved successfully")
	helpers.LogSuccess("ListActiveHandler", "auctions retrieved successfully", map[string]any{"count": len(list)})
}

// ListDealerAuctionsHandler handles GET /dealers/:dealer_id/auctions
func (h *AuctionHandler) ListDealerAuctionsHandler(c *gin.Context) {
	dealerID, err := helpers.ParseID(c, "dealer_id")
	if err != nil {
		helpers.RespondError(c, "ListDealerAuctionsHandler", err, nil)
		return
	}

	list, err := h.queries.DealerAuctions(c.Request.Context(), helpers.ViewerID(c), dealerID)
	if err != nil {
		helpers.RespondError(c, "ListDealerAuctionsHandler", err, map[string]any{"dealer_id": dealerID})
		return
	}
	if list == nil {
		list = []directory.Summary{}
	}

	utils.JSONResponse(c, http.StatusOK, list, "auctions retrieved successfully")
	helpers.LogSuccess("ListDealerAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"dealer_id": dealerID,
		"count":     len(list),
	})
}

// RegisterMotorcycleHandler handles POST /motorcycles
func (h *AuctionHandler) RegisterMotorcycleHandler(c *gin.Context) {
	actor, ok := requireActor(c, "RegisterMotorcycleHandler")
	if !ok {
		return
	}
	var req helpers.RegisterMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterMotorcycleHandler", err)
		return
	}

	m, err := h.engine.RegisterMotorcycle(c.Request.Context(), actor, model.Motorcycle{
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		Mileage:       req.Mileage,
		Description:   req.Description,
		DateAvailable: req.DateAvailable,
	})
	if err != nil {
		helpers.RespondError(c, "RegisterMotorcycleHandler", err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, m, "motorcycle registered successfully")
	helpers.LogSuccess("RegisterMotorcycleHandler", "motorcycle registered successfully", map[string]any{
		"motorcycle_id": m.MotorcycleID,
		"owner_id":      m.OwnerID,
	})
}

// GetMotorcycleHandler handles GET /motorcycles/:motorcycle_id
func (h *AuctionHandler) GetMotorcycleHandler(c *gin.Context) {
	motorcycleID, err := helpers.ParseID(c, "motorcycle_id")
	if err != nil {
		helpers.RespondError(c, "GetMotorcycleHandler", err, nil)
		return
	}

	m, err := h.engine.Motorcycle(c.Request.Context(), motorcycleID)
	if err != nil {
		helpers.RespondError(c, "GetMotorcycleHandler", err, map[string]any{"motorcycle_id": motorcycleID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, m, "motorcycle retrieved successfully")
	helpers.LogSuccess("GetMotorcycleHandler", "motorcycle retrieved successfully", map[string]any{"motorcycle_id": motorcycleID})
}
