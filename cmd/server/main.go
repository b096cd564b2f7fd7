package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/abiwaumi/tablewater/internal/config"
	"github.com/abiwaumi/tablewater/internal/repository"
	"github.com/abiwaumi/tablewater/internal/repository/memory"
	"github.com/abiwaumi/tablewater/internal/repository/mongodb"
	"github.com/abiwaumi/tablewater/internal/repository/sheets"
	"github.com/abiwaumi/tablewater/internal/scheduler"
	"github.com/abiwaumi/tablewater/internal/server/handlers"
	"github.com/abiwaumi/tablewater/internal/server/router"
	authsvc "github.com/abiwaumi/tablewater/internal/service/auth"
	reportingsvc "github.com/abiwaumi/tablewater/internal/service/reporting"
	"github.com/abiwaumi/tablewater/pkg/clients/alert"
	"github.com/abiwaumi/tablewater/pkg/logger"
)

func main() {
	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	cfg, err := config.Load("")
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			// Refuse to run degraded: serve the setup screen until the
			// operator provides the missing settings.
			baseLogger.Error("configuration incomplete, serving setup screen", zap.Strings("missing", cfgErr.Missing))
			port := os.Getenv("APP_PORT")
			if port == "" {
				port = "8080"
			}
			serve(router.NewSetup(cfgErr), port, baseLogger)
			return
		}
		baseLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	var store repository.Store
	switch cfg.Store.Mode {
	case config.StoreModeMongoDB:
		mongoStore, err := mongodb.NewStore(context.Background(), cfg.Store.MongoURI, cfg.Store.MongoDBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoStore
	default:
		memStore := memory.NewStore()
		if err := memStore.SeedDemoUsers(); err != nil {
			baseLogger.Fatal("failed to seed demo users", zap.Error(err))
		}
		baseLogger.Info("running in demo mode with in-memory store")
		store = memStore
	}

	sessionSvc := authsvc.NewService(store, cfg.Auth.JWTSecret, baseLogger.Named("svc.auth"))
	reportingSvc := reportingsvc.NewService(store, baseLogger.Named("svc.reporting"))

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		sheetExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("google sheets export enabled")
	}

	var alerts alert.Client
	if cfg.Alerts.WebhookURL != "" {
		alerts = alert.NewWebhookClient(cfg.Alerts.WebhookURL)
		baseLogger.Info("alert webhook enabled")
	}

	deps := router.Deps{
		Auth:      handlers.NewAuthHandler(sessionSvc, baseLogger.Named("handlers.auth")),
		Records:   handlers.NewRecordsHandler(store, baseLogger.Named("handlers.records")),
		Resources: handlers.NewResourcesHandler(store, baseLogger.Named("handlers.resources")),
		Dashboard: handlers.NewDashboardHandler(reportingSvc, store, baseLogger.Named("handlers.dashboard")),
	}
	engine := router.New(sessionSvc, deps, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, store, exporter, alerts, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	serve(engine, cfg.Server.Port, baseLogger)
}

func serve(handler http.Handler, port string, baseLogger *zap.Logger) {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
