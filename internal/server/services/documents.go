package services

import (
	"context"
	"database/sql"

	"github.com/eventkeeper/eventkeeper/internal/server/models"
	"github.com/eventkeeper/eventkeeper/internal/server/repositories/repomanager"
)

// DocumentService reads and writes per-user profile documents.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager) *DocumentService {
	return &DocumentService{db: db, repomanager: m}
}

func (s *DocumentService) Get(ctx context.Context, userID string) (*models.Document, error) {
	return s.repomanager.Documents(s.db).Get(ctx, userID)
}

func (s *DocumentService) Create(ctx context.Context, doc *models.Document) error {
	return s.repomanager.Documents(s.db).Create(ctx, doc)
}

func (s *DocumentService) Update(ctx context.Context, userID string, patch models.DocumentPatch) error {
	return s.repomanager.Documents(s.db).Update(ctx, userID, patch)
}
