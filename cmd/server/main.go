package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/casalista/marketplace-api/internal/api"
	"github.com/casalista/marketplace-api/internal/api/handler"
	"github.com/casalista/marketplace-api/internal/core/service"
	"github.com/casalista/marketplace-api/internal/core/token"
	"github.com/casalista/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/casalista/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/casalista/marketplace-api/internal/infrastructure/db/redis"
	"github.com/casalista/marketplace-api/internal/infrastructure/queue"
	"github.com/casalista/marketplace-api/pkg/logger"
)

// @title        Marketplace API
// @version      1.0
// @description  Realtor marketplace backend with role-gated signup and JWT authentication.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in    header
// @name  Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" || cfg.ProductKeySecret == "" {
		log.Fatal().Msg("JWT_SECRET and PRODUCT_KEY_SECRET must be set")
	}

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	homeRepo := mongodb.NewHomeRepository(db)
	inquiryRepo := mongodb.NewInquiryRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":     userRepo.EnsureIndexes,
		"homes":     homeRepo.EnsureIndexes,
		"inquiries": inquiryRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	signer := token.NewSigner(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, signer, cfg.ProductKeySecret, log)
	homeService := service.NewHomeService(homeRepo, redisdb.NewHomeCache(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.Queue.Workers, log)
	inquiryService := service.NewInquiryService(inquiryRepo, homeRepo, dispatcher, log)
	dispatcher.Bind(inquiryService)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Logger:  log,
		Signer:  signer,
		Users:   userRepo,
		Auth:    handler.NewAuthHandler(authService),
		Homes:   handler.NewHomeHandler(homeService),
		Inquiry: handler.NewInquiryHandler(inquiryService),
		Health:  handler.NewHealthHandler(db, rdb),
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = e.Shutdown(context.Background())
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server start failed")
	}
}
