package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/config"
	"github.com/circlepot/notifier/internal/pushworker"
	"github.com/circlepot/notifier/internal/pushworker/store"
	"github.com/circlepot/notifier/internal/rabbitmq/queue"
	"github.com/circlepot/notifier/pkg/fcm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()

	st, err := store.New(cfg.Push.StorePath)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open worker store")
	}

	sender, err := fcm.NewClient(ctx, cfg.Push.CredentialsFile)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create fcm client")
	}

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

	w := pushworker.New(q, sender, st, cfg.Retry)
	syncer := pushworker.NewSyncer(st, sender, cfg.Push.SyncInterval, cfg.Push.SyncTimeout)

	go syncer.Run(ctx)
	go w.Run(ctx, cfg.Workers.Count)

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}

	if err := st.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close worker store")
	}
}
