package server

import (
	"net/http"

	handler "moto-auction/services/auction/handler"
	"moto-auction/utils"

	"github.com/gin-gonic/gin"
)

// Services is everything the HTTP surface is built from
type Services struct {
	Engine        handler.AuctionEngine
	Queries       handler.AuctionQueries
	Notifications handler.NotificationService
	Tokens        handler.TokenIssuer
	Stream        handler.Streamer
	Parser        TokenParser

	// DevLogin exposes POST /auth/token
	DevLogin bool
	// Connections reports live real-time connections for /health; may be nil
	Connections func() int
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc Services) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // X-Request-ID in and out
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(svc.Engine, svc.Queries)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications)
	streamHandler := handler.NewStreamHandler(svc.Stream)

	optional := AuthMiddleware(svc.Parser, false)
	required := AuthMiddleware(svc.Parser, true)

	router.GET("/health", func(c *gin.Context) {
		data := gin.H{"status": "ok"}
		if svc.Connections != nil {
			data["connections"] = svc.Connections()
		}
		utils.JSONResponse(c, http.StatusOK, data, "healthy")
	})

	if svc.DevLogin {
		router.POST("/auth/token", handler.NewAuthHandler(svc.Tokens).TokenHandler)
	}

	router.GET("/ws", optional, streamHandler.StreamHandler)

	auctions := router.Group("/auctions")
	{
		auctions.GET("", optional, auctionHandler.ListActiveHandler)
		auctions.GET("/:auction_id", optional, auctionHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", optional, auctionHandler.GetBidsHandler)

		auctions.POST("", required, auctionHandler.CreateAuctionHandler)
		auctions.DELETE("/:auction_id", required, auctionHandler.DeleteAuctionHandler)
		auctions.POST("/:auction_id/bids", required, auctionHandler.PlaceBidHandler)
		auctions.POST("/:auction_id/accept", required, auctionHandler.AcceptBidHandler)
		auctions.POST("/:auction_id/confirm-deal", required, auctionHandler.ConfirmDealHandler)
		auctions.POST("/:auction_id/schedule-collection", required, auctionHandler.ScheduleCollectionHandler)
		auctions.POST("/:auction_id/confirm-collection", required, auctionHandler.ConfirmCollectionHandler)
		auctions.POST("/:auction_id/complete", required, auctionHandler.CompleteDealHandler)
		auctions.POST("/:auction_id/extend-date", required, auctionHandler.ExtendDateHandler)
		auctions.POST("/:auction_id/archive", required, auctionHandler.ArchiveHandler)
	}

	dealers := router.Group("/dealers")
	{
		dealers.GET("/:dealer_id/auctions", optional, auctionHandler.ListDealerAuctionsHandler)
	}

	motorcycles := router.Group("/motorcycles")
	{
		motorcycles.POST("", required, auctionHandler.RegisterMotorcycleHandler)
		motorcycles.GET("/:motorcycle_id", auctionHandler.GetMotorcycleHandler)
	}

	notifications := router.Group("/notifications", required)
	{
		notifications.GET("", notificationHandler.ListNotificationsHandler)
		notifications.POST("/read-all", notificationHandler.MarkAllReadHandler)
		notifications.POST("/:notification_id/read", notificationHandler.MarkReadHandler)
	}

	return router
}
