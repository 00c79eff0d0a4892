package http

import (
	"net/http"

	"usage-counter/internal/ingestors"
	"usage-counter/internal/shared/loggers"
	"usage-counter/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(ingestionService ingestors.IngestionService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	ingestAccessHandler := NewIngestAccessHandler(ingestionService)

	// Routes
	router.Post("/accesses", errorHandlingAdapter(ingestAccessHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
