/**
 * @description
 * Entry point for the virement-service. Wires configuration, the PostgreSQL
 * pool, the beneficiaire HTTP client, the RabbitMQ event producer and the
 * HTTP router, then serves with graceful shutdown.
 *
 * The event producer is optional: when RabbitMQ is unreachable the service
 * starts anyway with a no-op publisher and logs a warning per event.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/d-sar/poc/internal/virement/api"
	"github.com/d-sar/poc/internal/virement/app"
	"github.com/d-sar/poc/internal/virement/config"
	"github.com/d-sar/poc/internal/virement/store"
	"github.com/d-sar/poc/pkg/beneficiaireclient"
	"github.com/d-sar/poc/pkg/postgres"
	"github.com/d-sar/poc/pkg/rabbitmq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbpool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	logger.Info("database connection established")

	repository := store.NewPostgresRepository(dbpool)

	beneficiaires := beneficiaireclient.NewClient(
		cfg.BeneficiaireServiceURL,
		time.Duration(cfg.BeneficiaireTimeoutSeconds)*time.Second,
	)

	var events rabbitmq.Publisher
	producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
	if err != nil {
		logger.Warn("rabbitmq unavailable, events will be dropped", "error", err)
		events = &rabbitmq.NopPublisher{}
	} else {
		defer producer.Close()
		events = producer
	}

	service := app.NewService(repository, beneficiaires, events, cfg.VirementEventExchange, logger)
	handler := api.NewHandler(service)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting virement-service", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
