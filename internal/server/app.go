// Package server initializes and runs the file storage server: it opens the
// database, applies migrations, selects a blob backend and starts the HTTP
// endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/filevault/internal/logging"
	"github.com/dmitrijs2005/filevault/internal/server/blob"
	"github.com/dmitrijs2005/filevault/internal/server/config"
	"github.com/dmitrijs2005/filevault/internal/server/httpapi"
	"github.com/dmitrijs2005/filevault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filevault/internal/server/services"
	"github.com/dmitrijs2005/filevault/web"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	// A migration failure only warns; the listener still comes up so the
	// health endpoint and static client stay reachable.
	if err := rm.RunMigrations(ctx, db); err != nil {
		logger.Warn(ctx, "migrations failed", "error", err.Error())
	}

	store, err := newBlobStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	userService := services.NewUserService(db, rm, cfg)
	fileService := services.NewFileService(db, rm, store, logger)

	httpServer := httpapi.NewServer(cfg, logger, userService, fileService, web.FS)

	return &App{config: cfg, logger: logger, db: db, httpServer: httpServer}, nil
}

func newBlobStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (blob.Store, error) {
	switch cfg.BlobBackend {
	case config.BackendS3:
		return blob.NewS3Store(ctx, blob.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		}, cfg.MaxUploadSize)
	case config.BackendDisk:
		return blob.NewDiskStore(ctx, cfg.UploadDir, cfg.MaxUploadSize, logger), nil
	default:
		return nil, fmt.Errorf("unknown blob backend: %s", cfg.BlobBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until the context is cancelled or a signal arrives. A listener
// that cannot bind is fatal and the error propagates to main.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "backend", app.config.BlobBackend)

	app.initSignalHandler(cancelFunc)

	err := app.httpServer.Run(ctx)

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Warn(ctx, "db close error", "error", cerr.Error())
	}

	return err
}
