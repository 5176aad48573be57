package tokenRepo

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// ErrNotFound is returned when a user has no stored OAuth grant.
var ErrNotFound = errors.New("token not found")

// TokenRepository persists per-user Google OAuth grants.
type TokenRepository interface {
	Save(ctx context.Context, userID string, token *oauth2.Token) error
	Get(ctx context.Context, userID string) (*oauth2.Token, error)
	Delete(ctx context.Context, userID string) error
}
