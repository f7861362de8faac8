// Package refreshtokens persists server-stored refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/eventkeeper/eventkeeper/internal/server/models"
)

// Repository stores opaque refresh tokens with their expiry. Find returns
// common.ErrorNotFound for unknown tokens.
type Repository interface {
	Create(ctx context.Context, userID, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}
