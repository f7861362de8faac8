// Package users persists identity accounts.
package users

import (
	"context"

	"github.com/eventkeeper/eventkeeper/internal/server/models"
)

// Repository stores identity accounts. Create returns common.ErrEmailExists
// on a duplicate email; lookups return common.ErrorNotFound for absent rows.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, displayName, photoURL *string) error
}
