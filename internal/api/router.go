package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fantasta/internal/api/apierr"
	"github.com/mcoot/fantasta/internal/api/handler"
	apimiddleware "github.com/mcoot/fantasta/internal/api/middleware"
	"github.com/mcoot/fantasta/internal/metrics"
	"github.com/mcoot/fantasta/internal/middleware"
	"github.com/mcoot/fantasta/internal/model"
	"github.com/mcoot/fantasta/internal/services/auction"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuctionService *auction.Service
	// Metrics is served on /metrics when non-nil
	Metrics *metrics.Metrics
	// DefaultBudget applies to setup requests without a budget
	DefaultBudget int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	defaultBudget := cfg.DefaultBudget
	if defaultBudget == 0 {
		defaultBudget = model.DefaultInitialBudget
	}

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuctionService, defaultBudget)
	playerHandler := handler.NewPlayerHandler(cfg.AuctionService)
	participantHandler := handler.NewParticipantHandler(cfg.AuctionService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID())
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Session routes
	api.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/session", sessionHandler.Reset).Methods(http.MethodDelete)
	api.HandleFunc("/session/setup", sessionHandler.Setup).Methods(http.MethodPost)
	api.HandleFunc("/session/undo", sessionHandler.Undo).Methods(http.MethodPost)

	// Workbook routes
	api.HandleFunc("/catalog", sessionHandler.LoadCatalog).Methods(http.MethodPost)
	api.HandleFunc("/import", sessionHandler.Import).Methods(http.MethodPost)
	api.HandleFunc("/export.xlsx", sessionHandler.ExportXLSX).Methods(http.MethodGet)
	api.HandleFunc("/export.json", sessionHandler.ExportJSON).Methods(http.MethodGet)
	api.HandleFunc("/results", sessionHandler.Results).Methods(http.MethodGet)

	// Catalog queries
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/teams", playerHandler.Teams).Methods(http.MethodGet)
	api.HandleFunc("/stats", playerHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/history", playerHandler.History).Methods(http.MethodGet)

	// Bid operations
	api.HandleFunc("/players/{id}/acquire", playerHandler.Acquire).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}/price", playerHandler.RevisePrice).Methods(http.MethodPatch)
	api.HandleFunc("/players/{id}/release", playerHandler.Release).Methods(http.MethodPost)

	// Participant routes
	api.HandleFunc("/participants", participantHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/participants/{name}", participantHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/participants/{name}/roster", participantHandler.Roster).Methods(http.MethodGet)
	api.HandleFunc("/participants/{name}/can-acquire", participantHandler.CanAcquire).Methods(http.MethodGet)

	if cfg.Metrics != nil {
		metricsHandler := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)(cfg.Metrics.Handler())
		r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}
