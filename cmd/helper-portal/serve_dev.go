package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helper-labs/helper-portal/internal/devserver"
	"github.com/helper-labs/helper-portal/internal/storage/bolt"
)

var serveDevCmd = &cobra.Command{
	Use:   "serve-dev",
	Short: "Run a local stand-in for the portal API",
	Long: `serve-dev serves the portal API from a local Bolt database. It seeds the
admin account and the policy catalogue on first start.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveDev(cmd.Context())
	},
}

func serveDev(ctx context.Context) error {
	store, err := bolt.New(cfg.DevServer.StoragePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	srv, err := devserver.New(ctx, cfg, store, logger)
	if err != nil {
		return fmt.Errorf("init dev server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// graceful shutdown
	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-waitForSignal():
	}
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.DevServer.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
	return nil
}

func waitForSignal() <-chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return sigCh
}
