package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eventkeeper/eventkeeper/internal/common"
	"github.com/eventkeeper/eventkeeper/internal/dbx"
	"github.com/eventkeeper/eventkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Document, error) {
	query :=
		`SELECT user_id, email, first_name, last_name, phone, address,
		        profile_image_url, profile_image_path, registration_step,
		        has_completed_registration, created_at, updated_at
		 FROM user_documents
		 WHERE user_id = $1
		 `

	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&doc.UserID, &doc.Email, &doc.FirstName, &doc.LastName, &doc.Phone, &doc.Address,
		&doc.ProfileImageURL, &doc.ProfileImagePath, &doc.RegistrationStep,
		&doc.HasCompletedRegistration, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

// Create inserts the initial onboarding document. Re-creating an existing
// document resets its onboarding fields, matching set-with-overwrite
// semantics.
func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) error {
	query :=
		`INSERT INTO user_documents (user_id, email, registration_step, has_completed_registration)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET email                      = excluded.email,
		     registration_step          = excluded.registration_step,
		     has_completed_registration = excluded.has_completed_registration,
		     updated_at                 = now()
		 `

	_, err := r.db.ExecContext(ctx, query,
		doc.UserID, doc.Email, doc.RegistrationStep, doc.HasCompletedRegistration)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID string, patch models.DocumentPatch) error {
	query :=
		`UPDATE user_documents
		 SET email                      = COALESCE($2, email),
		     first_name                 = COALESCE($3, first_name),
		     last_name                  = COALESCE($4, last_name),
		     phone                      = COALESCE($5, phone),
		     address                    = COALESCE($6, address),
		     profile_image_url          = COALESCE($7, profile_image_url),
		     profile_image_path         = COALESCE($8, profile_image_path),
		     registration_step          = COALESCE($9, registration_step),
		     has_completed_registration = COALESCE($10, has_completed_registration),
		     updated_at                 = now()
		 WHERE user_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID,
		patch.Email, patch.FirstName, patch.LastName, patch.Phone, patch.Address,
		patch.ProfileImageURL, patch.ProfileImagePath, patch.RegistrationStep,
		patch.HasCompletedRegistration)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
