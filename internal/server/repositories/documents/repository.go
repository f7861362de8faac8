// Package documents persists per-user profile documents.
package documents

import (
	"context"

	"github.com/eventkeeper/eventkeeper/internal/server/models"
)

// Repository stores user documents keyed by user id. Get returns
// common.ErrorNotFound for absent documents. Update refreshes updated_at and
// leaves nil patch fields untouched.
type Repository interface {
	Get(ctx context.Context, userID string) (*models.Document, error)
	Create(ctx context.Context, doc *models.Document) error
	Update(ctx context.Context, userID string, patch models.DocumentPatch) error
}
