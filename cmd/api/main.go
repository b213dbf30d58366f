package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/config"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/internal/infrastructure/cache"
	"github.com/sangkips/trademarket-api/internal/infrastructure/database"
	"github.com/sangkips/trademarket-api/internal/infrastructure/repository"
	"github.com/sangkips/trademarket-api/internal/presentation/http/handler"
	"github.com/sangkips/trademarket-api/internal/presentation/http/middleware"
	"github.com/sangkips/trademarket-api/internal/presentation/http/routes"
	"github.com/sangkips/trademarket-api/pkg/events"
	"github.com/sangkips/trademarket-api/pkg/logger"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.App.Env, cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if cfg.Database.Seed {
		if err := database.SeedDefaultData(db, log); err != nil {
			log.Warn().Err(err).Msg("Failed to seed default data")
		}
	}

	publisher := newPublisher(cfg, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close event publisher")
		}
	}()

	idempotencyRepo := newIdempotencyRepository(cfg, db, log)
	defer func() {
		if err := idempotencyRepo.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close idempotency store")
		}
	}()

	// Initialize services
	uow := repository.NewUnitOfWork(db)
	customerService := service.NewCustomerService(uow)
	productService := service.NewProductService(uow)
	receiptService := service.NewReceiptService(uow, publisher, log)
	statisticService := service.NewStatisticService(uow)

	// Initialize handlers
	handlers := &routes.Handlers{
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Statistic: handler.NewStatisticHandler(statisticService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfigFrom(&cfg.RateLimit))
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          log,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("env", cfg.App.Env).Str("port", port).Msgf("Starting %s server", cfg.App.Name)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}

// newPublisher sends receipt events to Kafka when brokers are configured
func newPublisher(cfg *config.Config, log zerolog.Logger) events.Publisher {
	if !cfg.Kafka.Enabled() {
		log.Info().Msg("Kafka not configured, receipt events are dropped")
		return events.NopPublisher{}
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.ReceiptTopic).Msg("Publishing receipt events to Kafka")
	return events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.ReceiptTopic))
}

// newIdempotencyRepository prefers Redis and falls back to the database
func newIdempotencyRepository(cfg *config.Config, db *gorm.DB, log zerolog.Logger) domainRepo.IdempotencyRepository {
	if cfg.Redis.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Idempotency keys stored in Redis")
			return cache.NewRedisIdempotencyRepository(rdb)
		}
		log.Warn().Err(err).Msg("Redis unavailable, storing idempotency keys in the database")
	}

	repo := repository.NewIdempotencyRepository(db)
	purged, err := repo.DeleteExpired(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to purge expired idempotency keys")
	} else if purged > 0 {
		log.Info().Int64("count", purged).Msg("Purged expired idempotency keys")
	}
	return repo
}
