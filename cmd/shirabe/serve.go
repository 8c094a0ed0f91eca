package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperjump/shirabe/internal/server"
	"go.uber.org/zap"
)

// Run executes the serve command. It blocks until the context is cancelled or the
// process receives SIGINT or SIGTERM.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config.Server
	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Port = c.Port
	}

	srv := server.NewServer(deps.Engine, deps.Registry.Extensions(), &cfg, deps.Logger)

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	deps.Logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		deps.Logger.Warn("shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
