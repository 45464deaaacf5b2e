package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/jssrooms/backend/internal/application/config"
	"github.com/jssrooms/backend/internal/application/constant"
	"github.com/jssrooms/backend/internal/application/metric"
	"github.com/jssrooms/backend/internal/infra/adapters/memory"
	"github.com/jssrooms/backend/internal/infra/adapters/postgres"
	"github.com/jssrooms/backend/internal/infra/adapters/postgres/repository"
	"github.com/jssrooms/backend/internal/infra/ports/http/handlers"
	"github.com/jssrooms/backend/internal/infra/ports/http/server"
	"github.com/jssrooms/backend/internal/usecase"
)

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: slog.LevelInfo},
			),
		),
	)

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	var (
		userRepo         repository.UserRepository
		eventRepo        repository.EventRepository
		registrationRepo repository.RegistrationRepository
	)

	if cfg.Postgres.Enabled() {
		dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
		if err != nil {
			slog.Error("connect to postgres", slog.Any(constant.Error, err))
			os.Exit(1)
		}
		defer dbConn.Close()

		userRepo = repository.NewUserRepo(dbConn)
		eventRepo = repository.NewEventRepo(dbConn)
		registrationRepo = repository.NewRegistrationRepo(dbConn)
	} else {
		slog.Warn("no postgres configured, running on in-memory stores")

		userRepo = memory.NewUserRepository()
		eventRepo = memory.NewEventRepository()
		registrationRepo = memory.NewRegistrationRepository(eventRepo)
	}

	roomRegistry := memory.NewRoomRegistry()

	userUsecase := usecase.NewUserUsecase([]byte(cfg.JWTSecret), userRepo)
	broadcastUsecase := usecase.NewBroadcastUsecase(roomRegistry)
	roomUsecase := usecase.NewRoomUsecase(roomRegistry, broadcastUsecase, cfg.MaxRoomMinutes)
	eventUsecase := usecase.NewEventUsecase(eventRepo)
	registrationUsecase := usecase.NewRegistrationUsecase(registrationRepo)
	checkinUsecase := usecase.NewCheckinUsecase(registrationRepo)

	sweeper := usecase.NewExpirySweeper(roomRegistry, broadcastUsecase, cfg.SweepInterval)
	go sweeper.Run(ctx)

	authHandler := handlers.NewAuthHandler(userUsecase)
	roomHandler := handlers.NewRoomHandler(roomUsecase)
	eventHandler := handlers.NewEventHandler(eventUsecase, registrationUsecase)
	checkinHandler := handlers.NewCheckinHandler(checkinUsecase)
	wsHandler := handlers.NewWSHandler(cfg, broadcastUsecase)

	echoSrv := server.New(cfg, authHandler, roomHandler, eventHandler, checkinHandler, wsHandler)

	metricsSrv := metric.NewServer()

	echoSrvCh := make(chan error, 1)
	metricsSrvCh := make(chan error, 1)

	go func() {
		echoSrvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	go func() {
		metricsSrvCh <- metricsSrv.Start(":" + cfg.MetricPort)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down servers due to context cancel")
	case err := <-echoSrvCh:
		slog.Error(
			"HTTP server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	case err := <-metricsSrvCh:
		slog.Error(
			"metrics server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	}

	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("failed to gracefully shutdown HTTP server", slog.Any(constant.Error, err))
	}

	if err := metricsSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("failed to gracefully shutdown metrics server", slog.Any(constant.Error, err))
	}
}
