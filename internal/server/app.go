// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/watchlist/internal/logging"
	"github.com/dmitrijs2005/watchlist/internal/server/auth"
	"github.com/dmitrijs2005/watchlist/internal/server/config"
	"github.com/dmitrijs2005/watchlist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/watchlist/internal/server/rest"
	"github.com/dmitrijs2005/watchlist/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  *rest.HTTPServer
}

// NewApp connects to the store and applies migrations. The API is not
// served unless both succeed.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogBackend, logOut)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	deps := rest.Dependencies{
		Users:        services.NewUserService(rm, c),
		Lists:        services.NewListService(rm, c),
		Tokens:       auth.NewTokenIssuer([]byte(c.SecretKey), c.TokenValidityDuration),
		Store:        rm,
		AuthScheme:   c.AuthScheme,
		StoreTimeout: c.StoreTimeout,
	}

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		httpServer:  rest.NewHTTPServer(c.EndpointAddrHTTP, logger, deps),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves the API until ctx is cancelled or a termination signal
// arrives, then releases the store.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := app.initSignalHandler(ctx)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddrHTTP)

	runErr := app.httpServer.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "http server failed", "error", runErr)
	}

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing store failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	if err := logging.Sync(app.logger); err != nil && runErr == nil {
		return fmt.Errorf("flush logs: %w", err)
	}
	return runErr
}
