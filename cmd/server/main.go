package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv" // Loads .env files into the environment
	"github.com/labstack/echo/v4"

	"computer-club/internal/config"
	"computer-club/internal/database"
	"computer-club/internal/handler"
	"computer-club/internal/jobs"
	mw "computer-club/internal/middleware"
	"computer-club/internal/queue"
	"computer-club/internal/repository"
	"computer-club/internal/router"
	"computer-club/internal/service"
	"computer-club/internal/validation"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Repositories.
	clientRepo := repository.NewClientRepo(db)
	computerRepo := repository.NewComputerRepo(db)
	tariffRepo := repository.NewTariffRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	// Validators shared across packages.  The domain services build
	// their own validators from the repositories they own.
	sessionValidator := validation.NewSessionValidator(sessionRepo, clientRepo, computerRepo, tariffRepo)
	adminValidator := validation.NewAdminValidator(adminRepo)

	// Services.
	clientSvc := service.NewClientService(clientRepo)
	computerSvc := service.NewComputerService(computerRepo)
	tariffSvc := service.NewTariffService(tariffRepo)
	paymentSvc := service.NewPaymentService(paymentRepo)

	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = queue.Publisher{}
		go func() {
			if err := queue.StartSessionConsumer(); err != nil {
				log.Printf("session consumer stopped: %v", err)
			}
		}()
	}
	sessionSvc := service.NewSessionService(sessionRepo, paymentRepo, clientSvc, computerSvc, tariffSvc, sessionValidator, publisher)

	// Background jobs.
	scheduler := jobs.NewScheduler(paymentRepo, sessionRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("start scheduler: %v", err)
	}
	defer scheduler.Stop()

	e := echo.New()

	// Redis-backed rate limiting and response caching.  Both degrade to
	// pass-through when Redis is unreachable.  The cache is scoped to
	// the admin group, behind its auth middleware, so cached responses
	// never reach unauthenticated callers.
	rdb := config.NewRedisClient()
	e.Use(mw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, adminRepo, adminValidator), cfg.JWTSecret)
	router.RegisterAdmin(e, cfg.JWTSecret,
		mw.NewRedisCache(config.LoadCacheConfig(), rdb),
		handler.NewComputerHandler(computerSvc),
		handler.NewClientHandler(clientSvc),
		handler.NewTariffHandler(tariffSvc),
		handler.NewSessionHandler(sessionSvc),
		handler.NewPaymentHandler(paymentSvc),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
