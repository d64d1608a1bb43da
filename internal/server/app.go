// Package server initializes and runs the filekeeper server. It opens the
// storage backends, wires the services together, handles graceful shutdown
// and starts the HTTP endpoint.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"github.com/dmitrijs2005/filekeeper/internal/server/blob"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/db"
	"github.com/dmitrijs2005/filekeeper/internal/server/files"
	"github.com/dmitrijs2005/filekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/filekeeper/internal/server/sessions"
	"github.com/dmitrijs2005/filekeeper/internal/server/users"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	manager  db.Manager
	sessions sessions.Store
	blobs    blob.Store
}

func NewApp(c *config.Config) *App {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	return &App{config: c, logger: logger}
}

// openBackends connects the database, the session store and the blob store.
// Nothing is opened in constructors, so a failure here leaves no half-open
// state to unwind.
func (app *App) openBackends(ctx context.Context) error {

	app.manager = db.NewPostgresManager(app.config.DatabaseDSN)
	if err := app.manager.Open(ctx); err != nil {
		return fmt.Errorf("db init error: %w", err)
	}

	app.sessions = sessions.NewRedisStore(app.config.RedisAddr)
	if err := app.sessions.Open(ctx); err != nil {
		return fmt.Errorf("session store init error: %w", err)
	}

	switch app.config.BlobBackend {
	case config.BlobBackendS3:
		app.blobs = blob.NewS3Store(blob.S3Options{
			RootUser:     app.config.S3RootUser,
			RootPassword: app.config.S3RootPassword,
			Bucket:       app.config.S3Bucket,
			Region:       app.config.S3Region,
			BaseEndpoint: app.config.S3BaseEndpoint,
		})
	case config.BlobBackendDisk:
		app.blobs = blob.NewDiskStore(app.config.BlobDir)
	default:
		return fmt.Errorf("unknown blob backend: %s", app.config.BlobBackend)
	}
	if err := app.blobs.Open(ctx); err != nil {
		return fmt.Errorf("blob store init error: %w", err)
	}

	return nil
}

func (app *App) closeBackends(ctx context.Context) {
	if app.blobs != nil {
		if err := app.blobs.Close(); err != nil {
			app.logger.Error(ctx, "blob store close error", "error", err.Error())
		}
	}
	if app.sessions != nil {
		if err := app.sessions.Close(); err != nil {
			app.logger.Error(ctx, "session store close error", "error", err.Error())
		}
	}
	if app.manager != nil {
		if err := app.manager.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err.Error())
		}
	}
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	us := users.NewService(app.manager.Users())
	as := auth.NewService(app.manager.Users(), app.sessions, app.config.SessionTTL)
	fs := files.NewService(app.manager.Files(), app.blobs)

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger, us, as, fs, app.sessions, app.manager)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.openBackends(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return
	}
	defer app.closeBackends(ctx)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
