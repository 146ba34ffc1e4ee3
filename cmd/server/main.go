package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/travelviet/places-admin/pkg/adapters/handler"
	"github.com/travelviet/places-admin/pkg/adapters/repository/sqlite"
	"github.com/travelviet/places-admin/pkg/adapters/storage"
	"github.com/travelviet/places-admin/pkg/config"
	"github.com/travelviet/places-admin/pkg/core/services"
	"github.com/travelviet/places-admin/pkg/metrics"
)

func main() {
	cfg := config.Load()

	// Structured logger (zap)
	log := newZap(cfg.LogLevel)
	defer log.Sync()

	metrics.Init()

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Initialize Image Store
	store, err := storage.NewS3Store(context.Background(), cfg.ImageBucket, cfg.ImagePublicURL)
	if err != nil {
		log.Fatal("failed to init image store", zap.Error(err))
	}

	// Initialize Services
	placeService := services.NewPlaceService(repo, store)
	labelService := services.NewLabelService(repo)

	// Initialize Router
	mux := handler.NewRouter(cfg, log, placeService, labelService)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newZap(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
