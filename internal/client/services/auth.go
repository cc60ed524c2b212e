// Package services contains application services for the fuel client. The
// AuthService owns the session: it logs in and out, keeps the token pair in
// the local database, and fetches and stores the remote profile on behalf of
// the profile sync coordinator.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fuel/internal/client/client"
	"github.com/dmitrijs2005/fuel/internal/client/models"
	"github.com/dmitrijs2005/fuel/internal/client/repositories/session"
	"github.com/dmitrijs2005/fuel/internal/dbx"
	"github.com/dmitrijs2005/fuel/internal/logging"
	pb "github.com/dmitrijs2005/fuel/internal/proto"
)

var ErrNotSignedIn = errors.New("not signed in")

type AuthService struct {
	client client.Client
	db     *sql.DB
	logger logging.Logger

	mu    sync.RWMutex
	email string
}

// NewAuthService binds the API client to the local database. Token changes
// made by the client (including silent refreshes) are persisted.
func NewAuthService(c client.Client, db *sql.DB, logger logging.Logger) *AuthService {
	a := &AuthService{client: c, db: db, logger: logger.With("module", "auth")}
	c.OnTokens(a.persistTokens)
	return a
}

func (a *AuthService) persistTokens(access, refresh string) {
	ctx := context.Background()
	var err error
	if access == "" && refresh == "" {
		err = session.NewSQLiteRepository(a.db).Clear(ctx)
	} else {
		err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := session.NewSQLiteRepository(tx)
			if err := repo.Set(ctx, session.KeyAccessToken, access); err != nil {
				return err
			}
			return repo.Set(ctx, session.KeyRefreshToken, refresh)
		})
	}
	if err != nil {
		a.logger.Warn(ctx, "session not persisted", "error", err)
	}
}

func (a *AuthService) setEmail(ctx context.Context, email string) error {
	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
	return session.NewSQLiteRepository(a.db).Set(ctx, session.KeyEmail, email)
}

// Email is the address of the signed-in user, or "" when signed out.
func (a *AuthService) Email() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.email
}

// Signup creates the account and signs in. profile may be nil.
func (a *AuthService) Signup(ctx context.Context, email, password, name string, profile *models.ProfileUpdate) (*models.RemoteProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	req := &pb.SignupRequest{Email: email, Password: password, Name: name}
	if profile != nil {
		req.Profile = toWire(*profile)
	}

	u, err := a.client.Signup(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("signup error: %w", err)
	}
	if err := a.setEmail(ctx, email); err != nil {
		a.logger.Warn(ctx, "email not persisted", "error", err)
	}
	return toRemoteProfile(u), nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := a.client.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.setEmail(ctx, email); err != nil {
		a.logger.Warn(ctx, "email not persisted", "error", err)
	}
	return nil
}

// Logout revokes the session on the server when reachable and always
// forgets it locally.
func (a *AuthService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)

	a.mu.Lock()
	a.email = ""
	a.mu.Unlock()
	if cerr := session.NewSQLiteRepository(a.db).Clear(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	if err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

// RestoreSession reloads tokens saved by a previous run. It reports whether
// a session was found; the tokens are validated lazily by the next call.
func (a *AuthService) RestoreSession(ctx context.Context) (bool, error) {
	repo := session.NewSQLiteRepository(a.db)

	access, ok, err := repo.Get(ctx, session.KeyAccessToken)
	if err != nil || !ok {
		return false, err
	}
	refresh, _, err := repo.Get(ctx, session.KeyRefreshToken)
	if err != nil {
		return false, err
	}
	email, _, err := repo.Get(ctx, session.KeyEmail)
	if err != nil {
		return false, err
	}

	a.client.SetTokens(access, refresh)
	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
	return true, nil
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *AuthService) Close() error {
	return a.client.Close()
}

// IsAuthenticated reports whether a session is held. It does not contact
// the server.
func (a *AuthService) IsAuthenticated() bool {
	access, _ := a.client.Tokens()
	return access != ""
}

// CurrentProfile fetches the remote profile. It returns (nil, nil) when
// signed out.
func (a *AuthService) CurrentProfile(ctx context.Context) (*models.RemoteProfile, error) {
	if !a.IsAuthenticated() {
		return nil, nil
	}
	u, err := a.client.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile error: %w", err)
	}
	return toRemoteProfile(u), nil
}

// UpdateProfile sends the whole editable surface and returns the stored
// snapshot.
func (a *AuthService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.RemoteProfile, error) {
	if !a.IsAuthenticated() {
		return nil, ErrNotSignedIn
	}
	u, err := a.client.UpdateProfile(ctx, toWire(update))
	if err != nil {
		return nil, fmt.Errorf("update profile error: %w", err)
	}
	return toRemoteProfile(u), nil
}
