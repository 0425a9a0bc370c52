package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusfolio/ascent-api/internal/config"
	"github.com/campusfolio/ascent-api/internal/database"
	"github.com/campusfolio/ascent-api/internal/handler"
	"github.com/campusfolio/ascent-api/internal/middleware"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/repository"
	"github.com/campusfolio/ascent-api/internal/router"
	"github.com/campusfolio/ascent-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Activity{}, &models.Portfolio{}, &models.Notification{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured; sessions and caches are disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, redisClient, natsConn, validate, logger)
	activityService := service.NewActivityService(activityRepo, validate, redisClient, notificationService, logger)
	achievementService := service.NewAchievementService(activityRepo, redisClient, cfg.TrackerCacheTTL, logger)
	portfolioService := service.NewPortfolioService(portfolioRepo, activityRepo, validate, cfg.PortfolioBaseURL, logger)
	authService := service.NewAuthService(userRepo, redisClient, cfg.JWTSecret, cfg.DemoPassword, logger)
	analyticsService := service.NewAdminAnalyticsService(activityRepo, userRepo, redisClient, cfg.TrackerCacheTTL, logger)
	seedService := service.NewSeedService(userRepo, activityRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notificationService.Start(ctx)

	// Re-hydrate the stored session identity once at startup.
	if identity, ok := authService.Current(ctx); ok {
		logger.Info().Uint("user_id", identity.ID).Str("role", identity.Role).Msg("restored session identity")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:           handler.NewAuthHandler(authService, validate, logger),
		ActivityHandler:       handler.NewActivityHandler(activityService, logger),
		AchievementHandler:    handler.NewAchievementHandler(achievementService, logger),
		PortfolioHandler:      handler.NewPortfolioHandler(portfolioService, logger),
		NotificationHandler:   handler.NewNotificationHandler(notificationService, logger),
		AdminAnalyticsHandler: handler.NewAdminAnalyticsHandler(analyticsService, logger),
		SeedHandler:           handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:         middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
