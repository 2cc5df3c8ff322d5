package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/designhub/backend/config"
	"github.com/pageza/designhub/backend/internal/api"
	"github.com/pageza/designhub/backend/internal/cache"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/events"
	"github.com/pageza/designhub/backend/internal/logger"
	"github.com/pageza/designhub/backend/internal/middleware"
	"github.com/pageza/designhub/backend/internal/router"
	"github.com/pageza/designhub/backend/internal/server"
	"github.com/pageza/designhub/backend/internal/service"
	"go.uber.org/zap"
)

func main() {
	log := logger.NewZapLogger(config.GetEnvironment().String())

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("Failed to run migrations", err)
	}

	users := database.NewUserStore(db)
	profileOpts := []service.ProfileOption{service.WithLogger(log)}

	deps := api.Dependencies{DB: db, Log: log}

	// Redis backs the profile cache and the PATCH rate limiter; both are optional
	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(cfg, log)
		if err != nil {
			log.Warn("Redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		} else {
			defer redisClient.Close()
			profileOpts = append(profileOpts, service.WithProfileCache(cache.NewProfileCache(redisClient, cfg.ProfileCacheTTL)))
			deps.ProfileRateLimiter = middleware.NewProfileUpdateRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitMax, log)
		}
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.ProfileTopic, log)
		log.Info("Publishing profile events to Kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.ProfileTopic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher", err)
		}
	}()
	profileOpts = append(profileOpts, service.WithEventPublisher(publisher))

	var presigner service.Presigner
	s3Cfg, err := config.NewS3Config(context.Background(), cfg)
	switch {
	case err == nil:
		presigner = s3Cfg
	case errors.Is(err, config.ErrStorageDisabled):
		log.Info("S3 bucket not configured, resource downloads will not include links")
	default:
		log.Fatal("Failed to initialize S3 client", err)
	}

	deps.Auth = service.NewAuthService(users, cfg.JWTSecret, cfg.TokenLifespan)
	deps.Profile = service.NewProfileService(users, profileOpts...)
	deps.Feed = service.NewFeedService(db, users)
	deps.Chat = service.NewChatService(db, users)
	deps.Resources = service.NewResourceService(db, presigner)
	deps.Vacancies = service.NewVacancyService(db, users)
	deps.Portfolio = service.NewPortfolioService(db, users)
	deps.Settings = service.NewSettingsService(db, users)

	srv := server.New(cfg, router.SetupRouter(cfg, deps), log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("Server error", err)
		}
	case sig := <-quit:
		log.Info("Received signal", zap.String("signal", sig.String()))
	}

	log.Info("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error("Server shutdown error", err)
	}
	log.Info("Server stopped")
}
