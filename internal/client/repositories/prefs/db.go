package prefs

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eventkeeper/eventkeeper/internal/client/migrations"
	"github.com/pressly/goose/v3"
)

// InitDatabase opens the client sqlite database and applies the embedded
// schema migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening client db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("running client migrations: %w", err)
	}

	return db, nil
}
