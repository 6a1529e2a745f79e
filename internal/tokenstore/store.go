// Package tokenstore owns the persisted session credentials. It is the sole
// source of truth for whether a user is authenticated.
package tokenstore

import (
	"context"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

// Store persists the access and refresh tokens. Tokens are opaque strings and
// are never validated here.
type Store interface {
	// Set persists both tokens, replacing whatever was stored before
	Set(ctx context.Context, creds models.Credentials) error

	// Get returns the stored credentials or apperrors.ErrNoCredentials
	Get(ctx context.Context) (models.Credentials, error)

	// Clear removes both tokens unconditionally. Idempotent
	Clear(ctx context.Context) error
}

// Has reports token presence. Errors are treated as "absent" since both the
// session gate and the request hook only care about presence.
func Has(ctx context.Context, s Store) bool {
	creds, err := s.Get(ctx)
	return err == nil && !creds.IsZero()
}
