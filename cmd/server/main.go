package main // Entry point package

import (
	"context" // bounded startup calls
	"log"     // Logging library
	"time"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework
	"github.com/robfig/cron/v3"   // scheduled maintenance jobs

	"github.com/mendoza-apartments/booking-api/internal/config"   // environment config loader
	"github.com/mendoza-apartments/booking-api/internal/database" // MySQL connector
	"github.com/mendoza-apartments/booking-api/internal/handler"
	"github.com/mendoza-apartments/booking-api/internal/mailer"
	"github.com/mendoza-apartments/booking-api/internal/middleware"
	"github.com/mendoza-apartments/booking-api/internal/queue"
	"github.com/mendoza-apartments/booking-api/internal/repository"
	"github.com/mendoza-apartments/booking-api/internal/router"
	"github.com/mendoza-apartments/booking-api/internal/storage"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	apartments := repository.NewApartmentRepo(db)
	bookings := repository.NewBookingRepo(db)
	availability := repository.NewAvailabilityRepo(db)

	// Seed the dashboard account; there is no registration endpoint.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
			log.Printf("admin seed failed: %v", err)
		}
		cancel()
	}

	// Optional collaborators.  A missing SMTP or S3 configuration disables
	// the feature instead of blocking startup.
	var m *mailer.Mailer
	if cfg.SMTPHost != "" && cfg.SMTPSender != "" {
		m = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPAppPass, cfg.NotifyInbox)
	} else {
		log.Println("SMTP not configured; booking emails disabled")
	}

	var store *storage.ImageStore
	if cfg.S3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err = storage.NewImageStore(ctx, cfg.S3Bucket, cfg.S3Region, cfg.ImageBaseURL)
		cancel()
		if err != nil {
			log.Printf("object storage unavailable, image uploads disabled: %v", err)
			store = nil
		}
	} else {
		log.Println("S3_BUCKET not set; image uploads disabled")
	}

	e := echo.New() // Create Echo instance

	// Redis-backed rate limiting and response caching; a nil client means
	// both middlewares pass requests straight through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e) // health check
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e,
		handler.NewPublicHandler(apartments),
		handler.NewBookingHandler(bookings, apartments, m),
	)
	router.RegisterAdmin(e,
		handler.NewAdminHandler(cfg, apartments, bookings, availability, store, m),
		cfg.JWTSecret,
	)

	// Broker consumer appends booking events to the audit log file.  The
	// loop reconnects on its own; a dead broker only costs the audit trail.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	// Nightly cleanup of availability periods that ended over a year ago.
	c := cron.New()
	if _, err := c.AddFunc("0 4 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		cutoff := time.Now().AddDate(-1, 0, 0)
		n, err := availability.PurgeEndedBefore(ctx, cutoff)
		if err != nil {
			log.Printf("availability purge failed: %v", err)
			return
		}
		log.Printf("availability purge removed %d periods", n)
	}); err != nil {
		log.Printf("cron registration failed: %v", err)
	}
	c.Start()
	defer c.Stop()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
