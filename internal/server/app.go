// Package server initializes and runs the EventKeeper backend. It opens the
// database, wires the services and the HTTP transport, starts the reminder
// worker and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/eventkeeper/eventkeeper/internal/logging"
	"github.com/eventkeeper/eventkeeper/internal/server/config"
	serverhttp "github.com/eventkeeper/eventkeeper/internal/server/http"
	"github.com/eventkeeper/eventkeeper/internal/server/notify"
	"github.com/eventkeeper/eventkeeper/internal/server/repositories/repomanager"
	"github.com/eventkeeper/eventkeeper/internal/server/services"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *serverhttp.Server
	worker     *notify.Worker
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Getenv("LOG_LEVEL"))

	db, err := repomanager.OpenDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	userService := services.NewUserService(db, rm, cfg)
	documentService := services.NewDocumentService(db, rm)
	storageService := services.NewStorageService(cfg)

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	handler := serverhttp.NewHandler(userService, documentService, storageService, logger)
	httpServer := serverhttp.NewServer(cfg, handler, cache, logger)

	worker := notify.NewWorker(notify.NewLogSender(logger), logger)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		httpServer: httpServer,
		worker:     worker,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.worker.Run(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
}
