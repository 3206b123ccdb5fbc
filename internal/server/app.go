package server

import (
	"context"

	auction "moto-auction/internal/auctionService"
	"moto-auction/internal/auth"
	"moto-auction/internal/broadcaster"
	"moto-auction/internal/config"
	"moto-auction/internal/directory"
	"moto-auction/internal/notifications"
	"moto-auction/internal/repository"
	"moto-auction/internal/scheduler"

	"github.com/gin-gonic/gin"
)

// App is the wired server: one repository, the engine and everything around it
type App struct {
	Repo      *repository.MemoryRepo
	Engine    *auction.Service
	Directory *directory.Directory
	Hub       *broadcaster.Hub
	Auth      *auth.Authenticator
	Sweeper   *scheduler.Sweeper
	Router    *gin.Engine
}

// NewApp wires every component from cfg. ctx bounds the real-time topic checks.
func NewApp(ctx context.Context, cfg config.Config, repo *repository.MemoryRepo) *App {
	hub := broadcaster.NewHub(broadcaster.Config{
		HeartbeatInterval: cfg.HeartbeatInterval,
		MissedHeartbeats:  cfg.HeartbeatMissedLimit,
		BufferSize:        cfg.SubscriberBuffer,
	})

	engine := auction.NewService(repo, notifications.NewGenerator(repo), hub, auction.Options{
		MinIncrement:     cfg.MinBidIncrement,
		LockTimeout:      cfg.LockTimeout,
		EarlyAcceptance:  cfg.AllowEarlyAcceptance,
		EndingSoonWindow: cfg.EndingSoonWindow,
	})
	dir := directory.New(repo, engine)
	authenticator := auth.New(cfg.JWTSecret, cfg.JWTTTL, repo)

	// invite-only auctions stay off the real-time channel for outsiders too
	hub.SetTopicGuard(func(userID int64, topic string) error {
		return dir.CanWatch(ctx, userID, topic)
	})

	router := SetupRouter(Services{
		Engine:        engine,
		Queries:       dir,
		Notifications: notifications.NewService(repo),
		Tokens:        authenticator,
		Stream:        hub,
		Parser:        authenticator,
		DevLogin:      cfg.DevLogin,
		Connections:   hub.Connections,
	})

	return &App{
		Repo:      repo,
		Engine:    engine,
		Directory: dir,
		Hub:       hub,
		Auth:      authenticator,
		Sweeper:   scheduler.NewSweeper(engine, repo, cfg.SweepInterval, cfg.EndingSoonWindow),
		Router:    router,
	}
}
