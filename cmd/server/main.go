package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-reservation/internal/config"
	"github.com/iliyamo/ticket-reservation/internal/directory"
	"github.com/iliyamo/ticket-reservation/internal/handler"
	"github.com/iliyamo/ticket-reservation/internal/inventory"
	"github.com/iliyamo/ticket-reservation/internal/middleware"
	"github.com/iliyamo/ticket-reservation/internal/queue"
	"github.com/iliyamo/ticket-reservation/internal/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dir := directory.New()
	engine := inventory.NewEngine(dir, inventory.Params{
		HoldTTL:            time.Duration(cfg.HoldTTLMin) * time.Minute,
		MaxTicketsPerOrder: cfg.MaxTicketsPerOrder,
		ServiceFeePercent:  cfg.ServiceFeePercent,
		FlatFee:            cfg.FlatFee,
	})
	if cfg.SeedDemoData {
		if err := dir.Seed(); err != nil {
			log.Fatalf("seed directory: %v", err)
		}
		if err := engine.LoadDemoData(); err != nil {
			log.Fatalf("seed inventory: %v", err)
		}
		log.Printf("demo catalog loaded")
	}

	e := echo.New()
	e.HideBanner = true

	// Redis is optional: with no server reachable the client is nil and
	// both middleware become pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAdmin(e, handler.NewAdminHandler(dir, engine))
	router.RegisterBrowse(e, handler.NewBrowseHandler(dir, engine), cacheMW)
	router.RegisterReservations(e, handler.NewReservationHandler(dir, engine, cfg.QueueEnabled))

	if cfg.QueueEnabled {
		go func() {
			if err := queue.StartOrderConsumer(); err != nil {
				log.Printf("order consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
