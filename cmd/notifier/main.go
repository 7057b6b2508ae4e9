package main

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	notifhandler "github.com/circlepot/notifier/internal/api/handlers/notification"
	prefshandler "github.com/circlepot/notifier/internal/api/handlers/preferences"
	pushhandler "github.com/circlepot/notifier/internal/api/handlers/push"
	"github.com/circlepot/notifier/internal/api/router"
	"github.com/circlepot/notifier/internal/api/server"
	"github.com/circlepot/notifier/internal/config"
	"github.com/circlepot/notifier/internal/mapper"
	"github.com/circlepot/notifier/internal/rabbitmq/queue"
	deduprepo "github.com/circlepot/notifier/internal/repository/dedup"
	notifrepo "github.com/circlepot/notifier/internal/repository/notification"
	prefsrepo "github.com/circlepot/notifier/internal/repository/preferences"
	subsrepo "github.com/circlepot/notifier/internal/repository/subscription"
	notifsvc "github.com/circlepot/notifier/internal/service/notification"
	eventsync "github.com/circlepot/notifier/internal/sync"
	"github.com/circlepot/notifier/internal/worker"
	"github.com/circlepot/notifier/pkg/subgraph"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewPushQueue(ch)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create push queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	notifications := notifrepo.NewRepository(db)
	dedup := deduprepo.NewRepository(db)
	preferences := prefsrepo.NewRepository(db)
	subscriptions := subsrepo.NewRepository(db)

	// Backfill actions onto records persisted before actions existed.
	if err := notifications.MigrateActions(ctx); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to migrate notification actions")
	}

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	service := notifsvc.NewService(
		notifications, preferences, subscriptions, q, rdb, cfg.Retry, cfg.Push.APIURL,
	)

	events := subgraph.NewClient(cfg.Subgraph.URL, cfg.Subgraph.FetchTimeout)
	snapshotMapper := mapper.New(dedup, preferences, service)
	poller := eventsync.NewPoller(events, preferences, cfg.Subgraph.PollInterval, cfg.Subgraph.FetchTimeout)
	orchestrator := worker.NewOrchestrator(poller, snapshotMapper)

	go poller.Run(ctx)
	go orchestrator.Run(ctx, cfg.Workers.Count)

	r := router.New(
		notifhandler.NewHandler(service),
		prefshandler.NewHandler(service),
		pushhandler.NewHandler(service, val),
	)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
