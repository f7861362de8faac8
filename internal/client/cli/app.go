// Package cli implements the interactive terminal client. It plays the role
// of the presentation layer: it reads auth state snapshots to decide which
// prompt to show and invokes the service operations in response to input.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/eventkeeper/eventkeeper/internal/client/backend"
	"github.com/eventkeeper/eventkeeper/internal/client/config"
	"github.com/eventkeeper/eventkeeper/internal/client/repositories/prefs"
	"github.com/eventkeeper/eventkeeper/internal/client/services"
	"github.com/eventkeeper/eventkeeper/internal/client/state"
	"github.com/eventkeeper/eventkeeper/internal/filex"
	"github.com/eventkeeper/eventkeeper/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config       *config.Config
	store        *state.Store
	authService  *services.AuthService
	eventService *services.EventService
	reader       *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	dbPath := c.DatabasePath
	if !filepath.IsAbs(dbPath) && dbPath == filepath.Base(dbPath) {
		dir, err := filex.EnsureSubDir("data")
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, dbPath)
	}

	db, err := prefs.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	prefsRepo := prefs.NewSQLiteRepository(db)

	apiClient, err := backend.NewHTTPClient(ctx, c.ServerBaseURL, prefs.NewTokenStore(prefsRepo))
	if err != nil {
		return nil, err
	}

	logger := logging.NewJSON(os.Getenv("LOG_LEVEL"))
	store := state.NewStore()

	return &App{
		config:       c,
		store:        store,
		authService:  services.NewAuthService(store, apiClient, prefsRepo, logger),
		eventService: services.NewEventService(c.EventAPIBaseURL),
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
