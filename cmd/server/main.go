package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/sports-facility-reservation/internal/config"
	"github.com/iliyamo/sports-facility-reservation/internal/database"
	"github.com/iliyamo/sports-facility-reservation/internal/handler"
	"github.com/iliyamo/sports-facility-reservation/internal/logger"
	"github.com/iliyamo/sports-facility-reservation/internal/queue"
	"github.com/iliyamo/sports-facility-reservation/internal/repository"
	"github.com/iliyamo/sports-facility-reservation/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	if cfg.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.Seed(ctx, db, cfg.BcryptCost, log); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
		cancel()
	}

	// Optional infrastructure: the API works without Redis (rate limiting
	// disabled) and without RabbitMQ (no confirmation events).
	rdb := config.NewRedisClient()
	if cfg.AMQPURL != "" {
		go queue.StartReservationConsumer(cfg.AMQPURL, log)
	}

	users := repository.NewUserRepo(db)
	branches := repository.NewBranchRepo(db)
	sports := repository.NewSportRepo(db)
	sessions := repository.NewSessionRepo(db)
	reservations := repository.NewReservationRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)
	e.Use(echomw.Recover())

	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users),
		Users:        handler.NewUserHandler(cfg, users),
		Branches:     handler.NewBranchHandler(branches),
		Sports:       handler.NewSportHandler(sports),
		Sessions:     handler.NewSessionHandler(sessions, branches, sports),
		Reservations: handler.NewReservationHandler(cfg, reservations, sessions, users, log),
	}, cfg, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
