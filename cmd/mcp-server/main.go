/**
 * @description
 * Entry point for the mcp-server, the read-only relay that aggregates
 * beneficiary and transfer data from the two core services for the chatbot.
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

	"github.com/d-sar/poc/internal/mcpserver"
	"github.com/d-sar/poc/internal/mcpserver/config"
	"github.com/d-sar/poc/pkg/beneficiaireclient"
	"github.com/d-sar/poc/pkg/virementclient"
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

	beneficiaires := beneficiaireclient.NewClient(cfg.BeneficiaireServiceURL, 10*time.Second)
	virements := virementclient.NewClient(cfg.VirementServiceURL, 10*time.Second)

	handler := mcpserver.NewHandler(beneficiaires, virements)
	router := mcpserver.NewRouter(handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting mcp-server", "port", cfg.ServerPort)
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
