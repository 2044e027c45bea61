package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/config"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository/boltdb"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository/jsonfile"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository/mongodb"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository/sheets"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/scheduler"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/server/handlers"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/server/router"
	inventorysvc "github.com/ANI-CPU-tech/STOCK-MATE/internal/service/inventory"
	reportingsvc "github.com/ANI-CPU-tech/STOCK-MATE/internal/service/reporting"
	"github.com/ANI-CPU-tech/STOCK-MATE/pkg/clients/alert"
	"github.com/ANI-CPU-tech/STOCK-MATE/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store := openStore(cfg, baseLogger)
	defer func() {
		if err := store.Close(); err != nil {
			baseLogger.Error("failed to close store", zap.Error(err))
		}
	}()

	manager, err := inventorysvc.NewManager(context.Background(), store, logger.Named(baseLogger, "svc.inventory"))
	if err != nil {
		baseLogger.Fatal("failed to load inventory state", zap.Error(err))
	}

	// Optional report archive
	var archive mongodb.Archive
	if cfg.MongoDB.URI != "" {
		mongoArchive, err := mongodb.NewMongoDBArchive(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb archive", zap.Error(err))
		}
		defer func() {
			if err := mongoArchive.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoArchive
		baseLogger.Info("mongodb report archive enabled")
	}

	// Optional bill export
	var exporter sheets.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets.CredentialsPath, cfg.Sheets.SpreadsheetID, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("google sheets bill export enabled")
	}

	reportingSvc := reportingsvc.NewService(manager, archive, exporter, logger.Named(baseLogger, "svc.reporting"))

	// Optional webhook notifier
	var notifier alert.Client
	if cfg.Alert.WebhookURL != "" {
		notifier = alert.NewClient(cfg.Alert.WebhookURL)
		baseLogger.Info("alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook url missing, notifications disabled")
	}

	handler := handlers.NewInventoryHandler(manager, reportingSvc, logger.Named(baseLogger, "handlers.inventory"))
	engine := router.New(handler, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, notifier, logger.Named(baseLogger, "scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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

func openStore(cfg *config.Config, baseLogger *zap.Logger) repository.Store {
	switch cfg.Storage.Backend {
	case config.BackendBolt:
		if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
			baseLogger.Fatal("failed to create data dir", zap.Error(err))
		}
		store, err := boltdb.Open(filepath.Join(cfg.Storage.DataDir, cfg.Storage.BoltFile), logger.Named(baseLogger, "repo.boltdb"))
		if err != nil {
			baseLogger.Fatal("failed to open bolt store", zap.Error(err))
		}
		return store
	default:
		store, err := jsonfile.New(cfg.Storage.DataDir, cfg.Storage.InventoryFile, cfg.Storage.BillsFile, logger.Named(baseLogger, "repo.jsonfile"))
		if err != nil {
			baseLogger.Fatal("failed to open file store", zap.Error(err))
		}
		return store
	}
}
