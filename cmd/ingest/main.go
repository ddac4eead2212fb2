package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sightstack/stackstream/config"
	"github.com/sightstack/stackstream/internal/clients"
	"github.com/sightstack/stackstream/internal/clients/kafka_client"
	"github.com/sightstack/stackstream/internal/consumers"
	"github.com/sightstack/stackstream/internal/db"
	"github.com/sightstack/stackstream/internal/logging"
	"github.com/sightstack/stackstream/internal/rowkey"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		slog.Warn("[Main] Shutdown signal received")
		cancel()
	}()

	gateway := clients.InitBigtable(ctx)
	defer clients.CloseBigtable()

	var dedupe *clients.ValkeyClient
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		dedupe = clients.InitValkey()
		defer clients.CloseValkey()
	} else {
		slog.Warn("[Main] VALKEY_INIT_ADDRESS not set, ingest dedupe disabled")
	}

	repo := db.NewRepository(gateway, rowkey.NewCodec(config.BucketLocation()))

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_QUESTIONS,
		consumers.NewQuestionConsumer(repo, dedupe).Start)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_TRENDS,
		consumers.NewTrendConsumer(repo).Start)

	if err := kafka_client.StartConsumer(ctx, kafka_client.GetKafkaConfig()); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}
