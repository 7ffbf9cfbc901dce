package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kovil/hall-booking/internal/availability"
	"github.com/kovil/hall-booking/internal/config"
	"github.com/kovil/hall-booking/internal/database"
	"github.com/kovil/hall-booking/internal/handler"
	"github.com/kovil/hall-booking/internal/middleware"
	"github.com/kovil/hall-booking/internal/queue"
	"github.com/kovil/hall-booking/internal/repository"
	"github.com/kovil/hall-booking/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	availRepo := repository.NewAvailabilityRepo(db, nil)
	hallRepo := repository.NewHallRepo(db)

	// Build the read-side index and the writer-of-record.
	index := availability.NewIndex()
	resolver := availability.NewResolver(availRepo, index, time.Duration(cfg.HoldTTLMin)*time.Minute, nil)

	// The two booking surfaces share one window policy and differ only
	// in horizon and transition mode.
	detail := availability.Surface{Name: "detail", HorizonMonths: cfg.DetailHorizonMonths, Mode: availability.ModeBook}
	overview := availability.Surface{Name: "overview", HorizonMonths: cfg.OverviewHorizonMonths, Mode: availability.ModeHold}
	bookSession := availability.NewSession(detail, index, resolver, availRepo, nil)
	holdSession := availability.NewSession(overview, index, resolver, availRepo, nil)
	surfaces := map[string]availability.Surface{"detail": detail, "overview": overview}

	// Prime the index before serving; a failure here is not fatal since
	// every entry defaults to available and the poller retries.
	if records, err := availRepo.ListRecords(context.Background()); err != nil {
		log.Printf("initial availability load failed: %v", err)
	} else {
		index.Refresh(records)
	}

	// Background refresh keeps the projection close to durable state
	// even when mutations happen in other replicas.
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.RefreshIntervalSec) * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			bookSession.RefreshIndex(context.Background())
		}
	}()

	// Sweep lapsed holds back to AVAILABLE.  Reads already normalise
	// expired holds; the sweep keeps the table itself tidy.
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.ExpireSweepSec) * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := availRepo.ExpireHolds(context.Background()); err != nil {
				log.Printf("hold sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("hold sweep released %d lapsed holds", n)
			}
		}
	}()

	// Consume booking.confirmed events into the office log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	// Redis is optional: without it the cache and limiter pass through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewHallHandler(hallRepo), handler.NewAvailabilityHandler(index, availRepo, hallRepo, surfaces, nil), cacheMW)
	router.RegisterBooking(e, handler.NewBookingHandler(holdSession, bookSession, resolver, hallRepo), rateMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
