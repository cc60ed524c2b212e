// Package session persists the signed-in session (tokens and email) in the
// client's SQLite database so a restart does not require a new login.
package session

import "context"

// Well-known keys.
const (
	KeyEmail        = "email"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

type Repository interface {
	// Get returns ok=false when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
