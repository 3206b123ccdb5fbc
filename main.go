package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auction "moto-auction/internal/auctionService"
	"moto-auction/internal/config"
	model "moto-auction/internal/models"
	"moto-auction/internal/repository"
	"moto-auction/internal/server"
	"moto-auction/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		utils.Fatal("invalid configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("unknown log level, keeping info", map[string]any{"level": cfg.LogLevel})
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := server.NewApp(ctx, cfg, repository.NewMemoryRepo())

	if cfg.SeedDemoData {
		if err := seed(ctx, app.Repo, app.Engine); err != nil {
			utils.Fatal("failed to seed demo data", map[string]any{"error": err.Error()})
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.Hub.Run(gctx) })
	g.Go(func() error { return app.Sweeper.Run(gctx) })
	g.Go(func() error {
		utils.Info("Starting auction server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		utils.Fatal("server stopped with error", map[string]any{"error": err.Error()})
	}
	utils.Info("server stopped", nil)
}

// seed adds demo dealers, buyers and a couple of live auctions to the in-memory repo
func seed(ctx context.Context, repo *repository.MemoryRepo, engine *auction.Service) error {
	users := []model.User{
		{Username: "northside-motors", Role: model.RoleSeller},
		{Username: "harbour-bikes", Role: model.RoleSeller},
		{Username: "alex", Role: model.RoleBuyer},
		{Username: "sam", Role: model.RoleBuyer},
		{Username: "jo", Role: model.RoleBuyer},
	}
	created := make([]model.User, 0, len(users))
	for _, u := range users {
		row, err := repo.CreateUser(u)
		if err != nil {
			return err
		}
		created = append(created, row)
	}
	dealerA := model.Actor{UserID: created[0].UserID, Role: model.RoleSeller}
	dealerB := model.Actor{UserID: created[1].UserID, Role: model.RoleSeller}

	listings := []struct {
		dealer  model.Actor
		moto    model.Motorcycle
		price   int64
		invited []int64
		runFor  time.Duration
	}{
		{
			dealer: dealerA,
			moto:   model.Motorcycle{Make: "Triumph", Model: "Bonneville T120", Year: 2019, Mileage: 8400},
			price:  3500,
			runFor: 2 * time.Hour,
		},
		{
			dealer: dealerA,
			moto:   model.Motorcycle{Make: "Honda", Model: "CB500X", Year: 2021, Mileage: 5100},
			price:  4200,
			runFor: 24 * time.Hour,
		},
		{
			dealer:  dealerB,
			moto:    model.Motorcycle{Make: "Ducati", Model: "Monster 821", Year: 2018, Mileage: 12900},
			price:   5200,
			invited: []int64{created[2].UserID, created[3].UserID},
			runFor:  6 * time.Hour,
		},
	}

	now := time.Now().UTC()
	for _, l := range listings {
		moto, err := engine.RegisterMotorcycle(ctx, l.dealer, l.moto)
		if err != nil {
			return err
		}
		req := auction.CreateRequest{
			MotorcycleID:     moto.MotorcycleID,
			StartingPrice:    l.price,
			InvitedBidderIDs: l.invited,
			EndTime:          now.Add(l.runFor),
		}
		if len(l.invited) > 0 {
			req.Visibility = model.VisibilityInviteOnly
		}
		a, err := engine.Create(ctx, l.dealer, req)
		if err != nil {
			return err
		}
		utils.Info("seeded auction", map[string]any{
			"auction_id": a.AuctionID,
			"title":      moto.Title(),
			"visibility": a.Visibility,
		})
	}
	return nil
}
