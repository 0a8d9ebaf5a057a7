// Package app wires configuration, data sources and the HTTP server into a
// running dashboard.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/chrissnell/citibike-dashboard/internal/assets"
	"github.com/chrissnell/citibike-dashboard/internal/controllers/restserver"
	"github.com/chrissnell/citibike-dashboard/internal/dashboard"
	"github.com/chrissnell/citibike-dashboard/internal/dataset"
	"github.com/chrissnell/citibike-dashboard/internal/log"
	"github.com/chrissnell/citibike-dashboard/pkg/config"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source, err := dataset.NewSource(a.cfg.Data)
	if err != nil {
		return fmt.Errorf("error opening data source: %w", err)
	}
	defer source.Close()

	dash, err := dashboard.New(*a.cfg, source, assets.NewStore(a.cfg.Assets.Dir))
	if err != nil {
		return fmt.Errorf("error building dashboard: %w", err)
	}

	ctrl, err := restserver.NewController(ctx, &wg, a.cfg.Server, dash, a.logger)
	if err != nil {
		return fmt.Errorf("error creating dashboard server: %w", err)
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	log.Infow("Application started successfully",
		"source", a.cfg.Data.Source,
		"assets_dir", a.cfg.Assets.Dir,
		"addr", ctrl.Server.Addr)

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	log.Info("waiting for the server to drain...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
