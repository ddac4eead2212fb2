package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sightstack/stackstream/config"
	"github.com/sightstack/stackstream/internal/clients"
	"github.com/sightstack/stackstream/internal/db"
	"github.com/sightstack/stackstream/internal/logging"
	"github.com/sightstack/stackstream/internal/rowkey"
	"github.com/sightstack/stackstream/internal/server"
)

const DEFAULT_PORT = 8080

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gateway := clients.InitBigtable(ctx)
	defer clients.CloseBigtable()

	repo := db.NewRepository(gateway, rowkey.NewCodec(config.BucketLocation()))

	port := DEFAULT_PORT
	if raw := os.Getenv("PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			slog.Error("[Main] Invalid PORT value", slog.String("port", raw))
			os.Exit(1)
		}
		port = parsed
	}

	srv := server.NewServer(port, repo)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		slog.Warn("[Main] Shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("[Main] Server shutdown failed", slog.String("error", err.Error()))
		}
		cancel()
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("[Main] Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Server stopped")
}
