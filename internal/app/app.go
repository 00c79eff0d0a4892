package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"usage-counter/internal/aggregators"
	"usage-counter/internal/dictionaries"
	"usage-counter/internal/events"
	internalhttp "usage-counter/internal/http"
	"usage-counter/internal/ingestors"
	"usage-counter/internal/resolvers"
	"usage-counter/internal/sessions"
	"usage-counter/internal/shared/configs"
	"usage-counter/internal/shared/filestorages"
	"usage-counter/internal/shared/loggers"
	"usage-counter/internal/stores"
	"usage-counter/internal/streams"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	accessBatchConsumer streams.AccessBatchConsumer
	backgroundCtx       context.Context
	backgroundCancel    context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "usage-counter").
		Logger()

	// Initialize blob store
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Load the resolver lookup tables. The service cannot classify a single
	// access without them, so a missing dictionary is fatal.
	tables, err := dictionaries.Load(context.Background(), fileStorage, config.Dictionaries.Dir, config.Aggregation.DefaultCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionaries: %w", err)
	}

	// Initialize stream queue
	accessBatchQueue := streams.NewPartitionedQueue[events.AccessBatchEvent]()

	// Initialize aggregation service
	usageReportStore := stores.NewUsageReportStore(fileStorage)
	hitLogStore := stores.NewHitLogStore(fileStorage)
	sessionLogger := appLogger.With().Str(loggers.FieldComponent, "sessions").Logger()
	deduplicator := sessions.NewDeduplicator(sessionLogger)
	counterAggregator := aggregators.NewCounterAggregator()
	aggregationService := aggregators.NewAggregationService(
		config.Aggregation.IncludeNonArticle,
		deduplicator,
		counterAggregator,
		usageReportStore,
		hitLogStore,
	)
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	accessBatchConsumer := streams.NewAccessBatchConsumer(accessBatchQueue, aggregationService, consumerLogger)

	// Initialize ingestionService
	resolverLogger := appLogger.With().Str(loggers.FieldComponent, "resolvers").Logger()
	resolverSet := resolvers.NewSet(tables, resolverLogger)
	hitEnricher := ingestors.NewHitEnricher(resolverSet)
	accessBatchStore := stores.NewAccessBatchStore(fileStorage)
	accessBatchProducer := streams.NewAccessBatchProducer(accessBatchQueue)
	ingestionService := ingestors.NewIngestionService(hitEnricher, accessBatchStore, accessBatchProducer)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(ingestionService, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:              config,
		appLogger:           appLogger,
		server:              server,
		accessBatchConsumer: accessBatchConsumer,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting usage-counter service on port %d (log_level=%s, file_storage_root_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir)

	// start background consumers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.accessBatchConsumer.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	// 2) Cancel background consumers
	if app.backgroundCancel != nil {
		app.backgroundCancel()
		app.appLogger.Info().Msg("Background consumers cancelled")
	}

	// 3) Wait for background consumers to finish
	app.accessBatchConsumer.Stop()
	app.appLogger.Info().Msg("Background consumers stopped")

	return nil
}
