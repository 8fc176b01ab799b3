package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-editorbind/internal/adminserver"
	"github.com/goliatone/go-editorbind/internal/logging"
	"github.com/goliatone/go-editorbind/pkg/enhancer"
)

func main() {
	logger, closeLog, err := logging.New(logging.Config{
		Level: os.Getenv("EDITORBIND_LOG_LEVEL"),
		File:  os.Getenv("EDITORBIND_LOG_FILE"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "editorbind-server: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()

	enh, err := enhancer.New(enhancer.WithLogger(logger))
	if err != nil {
		logger.Error("configure enhancer", "error", err)
		os.Exit(1)
	}

	cfg := adminserver.Config{
		Address:  getEnv("EDITORBIND_HTTP_ADDR", ":8080"),
		Enhancer: enh,
		Logger:   logger,
	}
	srv, err := adminserver.New(cfg)
	if err != nil {
		logger.Error("configure server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	logger.Info("editorbind demo listening", "addr", cfg.Address)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
