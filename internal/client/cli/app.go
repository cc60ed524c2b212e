package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fuel/internal/client/client"
	"github.com/dmitrijs2005/fuel/internal/client/config"
	"github.com/dmitrijs2005/fuel/internal/client/models"
	"github.com/dmitrijs2005/fuel/internal/client/profilesync"
	"github.com/dmitrijs2005/fuel/internal/client/services"
	"github.com/dmitrijs2005/fuel/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single reachability probe.
const pingTimeout = 3 * time.Second

// AuthService is the session side of the client. services.AuthService
// implements it.
type AuthService interface {
	profilesync.Identity
	Signup(ctx context.Context, email, password, name string, profile *models.ProfileUpdate) (*models.RemoteProfile, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Email() string
	Close() error
}

type App struct {
	config *config.Config
	auth   AuthService
	sync   *profilesync.Coordinator
	logger logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local database, connects to the server, restores a saved
// session and loads the profile.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewFuelClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db, logger)
	if ok, err := as.RestoreSession(ctx); err != nil {
		logger.Warn(ctx, "session not restored", "error", err)
	} else if ok {
		logger.Info(ctx, "session restored", "email", as.Email())
	}

	ps := profilesync.New(ctx, as,
		profilesync.WithDebounce(c.SaveDebounce),
		profilesync.WithSaveTimeout(c.SaveTimeout),
		profilesync.WithLogger(logger),
	)

	a := newApp(c, as, ps, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, as AuthService, ps *profilesync.Coordinator, logger logging.Logger, r *bufio.Reader, w io.Writer) *App {
	return &App{config: c, auth: as, sync: ps, logger: logger, reader: r, out: w}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// Run starts the connectivity watcher and blocks in the REPL. On exit a
// pending profile save is flushed and resources are released.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.printf("Welcome to fuel (type 'help' for commands)\n")
	a.printStatusLine()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))

	if err := a.Close(ctx); err != nil {
		a.logger.Warn(ctx, "shutdown", "error", err)
	}
}

// Close flushes a pending save and closes the connection and database. The
// flush gets its own timeout and still runs when ctx is already canceled.
func (a *App) Close(ctx context.Context) error {
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.config.SaveTimeout)
	defer cancel()
	errs := []error{a.sync.Flush(fctx), a.auth.Close()}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// StartOnlineStatusWatcher pings the server every interval and switches the
// mode accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.auth.Ping(pctx)
	cancel()

	if err != nil {
		if a.currentMode() == ModeOnline {
			a.setMode(ModeOffline)
		}
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) getStatus() string {
	var parts []string
	if email := a.auth.Email(); email != "" && a.isLoggedIn() {
		parts = append(parts, email)
	}
	if m := a.currentMode(); m != "" {
		parts = append(parts, string(m))
	}
	if a.sync.HasPendingSave() || a.sync.Busy() {
		parts = append(parts, "*")
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}
