// Package server wires configuration, storage, services and the gRPC and
// HTTP listeners into a runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/fuel/internal/clock"
	"github.com/dmitrijs2005/fuel/internal/logging"
	"github.com/dmitrijs2005/fuel/internal/server/config"
	"github.com/dmitrijs2005/fuel/internal/server/httpapi"
	"github.com/dmitrijs2005/fuel/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fuel/internal/server/services"

	gs "github.com/dmitrijs2005/fuel/internal/server/grpc"
)

const tokenPurgeInterval = time.Hour

// tokenPurger is the slice of services.UserService the purge loop needs.
type tokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	profileService *services.ProfileService
}

// NewApp connects to the database, applies migrations and builds the
// services. The caller owns ctx only for the duration of startup.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(logOut, logging.FormatJSON, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	clk := clock.NewSystemClock()
	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    services.NewUserService(db, rm, c, clk),
		profileService: services.NewProfileService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.profileService, app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := httpapi.NewRouter(app.db, app.logger.With("module", "http_server"))
	if err := httpapi.Run(ctx, app.config.EndpointAddrHTTP, h, app.logger); err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
	}
}

// purgeLoop removes expired refresh tokens every interval until ctx ends.
func purgeLoop(ctx context.Context, p tokenPurger, interval time.Duration, logger logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpiredTokens(ctx)
			if err != nil {
				logger.Warn(ctx, "token purge failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info(ctx, "purged expired refresh tokens", "count", n)
			}
		}
	}
}

// Run blocks until a termination signal arrives or a listener fails, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		purgeLoop(ctx, app.userService, tokenPurgeInterval, app.logger)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close", "error", err)
	}
	app.logger.Info(context.Background(), "Stopped")
}
