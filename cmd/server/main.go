package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/gspotbarber/barbershop-booking/internal/config"
	"github.com/gspotbarber/barbershop-booking/internal/database"
	"github.com/gspotbarber/barbershop-booking/internal/handler"
	"github.com/gspotbarber/barbershop-booking/internal/middleware"
	"github.com/gspotbarber/barbershop-booking/internal/repository"
	"github.com/gspotbarber/barbershop-booking/internal/router"
	queue_publisher "github.com/gspotbarber/barbershop-booking/internal/service"
	"github.com/gspotbarber/barbershop-booking/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	// Storage is mandatory: the process must not serve without its
	// database and seeded reference data.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(ctx, db, cfg.BcryptCost); err != nil {
		log.Fatalf("seed: %v", err)
	}

	// Redis is optional: without it sessions live in process memory and
	// the catalog cache is disabled.
	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb)
	} else {
		log.Printf("redis unavailable, using in-memory session store")
		sessions = session.NewMemoryStore()
	}

	events := queue_publisher.New(cfg.BrokerURL)
	if events.Enabled() {
		log.Printf("booking events enabled")
	}

	admins := repository.NewAdminRepo(db)
	services := repository.NewServiceRepo(db)
	bookings := repository.NewBookingRepo(db)

	serviceH := handler.NewServiceHandler(services)
	bookingH := handler.NewBookingHandler(bookings, events)
	authH := handler.NewAuthHandler(cfg, admins, sessions)
	adminBookingH := handler.NewAdminBookingHandler(bookings, events)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	requireAdmin := middleware.RequireAdmin(cfg.SessionSecret, sessionTTL, sessions)
	catalogCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, serviceH, bookingH, catalogCache)
	router.RegisterAdmin(e, authH, adminBookingH, requireAdmin)
	e.Static("/", cfg.StaticDir) // frontend controllers and pages

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
