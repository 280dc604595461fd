// Package server initializes and runs the main application server.
// It opens the remote and local stores, runs migrations, wires the
// reconciliation services and serves the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/estately/internal/cache"
	"github.com/dmitrijs2005/estately/internal/images"
	"github.com/dmitrijs2005/estately/internal/localstore"
	"github.com/dmitrijs2005/estately/internal/logging"
	"github.com/dmitrijs2005/estately/internal/notify"
	"github.com/dmitrijs2005/estately/internal/seed"
	"github.com/dmitrijs2005/estately/internal/server/config"
	"github.com/dmitrijs2005/estately/internal/server/httpapi"
	"github.com/dmitrijs2005/estately/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/estately/internal/server/services"

	_ "modernc.org/sqlite"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	localDB *sql.DB
	router  http.Handler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	localDB, err := sql.Open("sqlite", cfg.LocalStorePath)
	if err != nil {
		return nil, fmt.Errorf("local store init error: %w", err)
	}
	local := localstore.NewSQLiteStore(localDB)
	if err := local.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("local store schema error: %w", err)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.SendGridAPIKey != "" {
		notifier = notify.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.NotifyFromEmail)
	}

	propertySvc := services.NewPropertyService(db, rm, seed.NewSource(),
		services.NewSessionStore(), cache.New(cfg.SearchCacheTTL), logger)
	paymentSvc := services.NewPaymentService(db, rm, local, notifier, logger)

	presigner := images.NewPresigner(images.Options{
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
	})

	handlers := httpapi.NewHandlers(propertySvc, paymentSvc, presigner, logger)
	router := httpapi.NewRouter(handlers, []byte(cfg.SecretKey))

	return &App{config: cfg, logger: logger, db: db, localDB: localDB, router: router}, nil
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

	srv := &http.Server{Addr: app.config.EndpointAddrHTTP, Handler: app.router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	if err := app.localDB.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
