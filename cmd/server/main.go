package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/egovmeet/video-verification/internal/cache"
	"github.com/egovmeet/video-verification/internal/config"
	"github.com/egovmeet/video-verification/internal/database"
	"github.com/egovmeet/video-verification/internal/handler"
	"github.com/egovmeet/video-verification/internal/queue"
	"github.com/egovmeet/video-verification/internal/registry"
	"github.com/egovmeet/video-verification/internal/repository"
	"github.com/egovmeet/video-verification/internal/router"
	"github.com/egovmeet/video-verification/internal/service"
	"github.com/egovmeet/video-verification/internal/utils"
)

func main() {
	// .env is a development convenience; in deployment the variables come
	// from the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("mysql connect failed", zap.Error(err))
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		// Sessions, profile cache and meeting secrets all live in Redis.
		logger.Fatal("redis connect failed")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepo(db)
	citizenRepo := repository.NewCitizenRepo(db)
	meetingRepo := repository.NewMeetingRepo(db)

	sessions := cache.NewSessionStore(rdb)
	profiles := cache.NewCitizenCache(rdb, cfg.CitizenCacheTTL)
	secrets := cache.NewMeetingSecretStore(rdb)

	var reg registry.Client
	if cfg.AsanBaseURL != "" {
		reg = registry.NewHTTPClient(cfg.AsanBaseURL, 10*time.Second)
	} else {
		logger.Warn("ASAN_BASE_URL not set, using stub registry client")
		reg = &registry.StubClient{Latency: time.Second}
	}

	roomCfg := utils.RoomTokenConfig{
		Secret:   cfg.RoomJWTSecret,
		Issuer:   cfg.RoomIssuer,
		Audience: cfg.RoomAudience,
		Subject:  cfg.RoomSubject,
		Group:    cfg.RoomGroup,
		TTLHours: cfg.RoomTTLHours,
	}

	publisher := service.NewLifecyclePublisher(cfg.RabbitURL, logger)
	go queue.StartLifecycleConsumer(cfg.RabbitURL, logger)

	sessionSvc := service.NewSessionService(userRepo, sessions, service.SessionConfig{
		JWTSecret:      cfg.JWTSecret,
		AccessTTLMin:   cfg.AccessTTLMin,
		RefreshTTLDays: cfg.RefreshTTLDays,
		BcryptCost:     cfg.BcryptCost,
	})
	citizenSvc := service.NewCitizenService(profiles, reg, logger)
	meetingSvc := service.NewMeetingService(meetingRepo, citizenRepo, profiles, secrets, roomCfg, publisher)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e,
		handler.NewAuthHandler(sessionSvc),
		handler.NewCitizenHandler(citizenSvc),
		handler.NewMeetingHandler(meetingSvc, userRepo),
		handler.NewUserHandler(userRepo),
		cfg.JWTSecret)

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
