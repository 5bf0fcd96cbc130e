package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/forceteam/internal/api/handler"
	"github.com/mcoot/forceteam/internal/api/middleware"
	"github.com/mcoot/forceteam/internal/api/response"
	"github.com/mcoot/forceteam/internal/host/sim"
	"github.com/mcoot/forceteam/internal/services/auth"
	"github.com/mcoot/forceteam/internal/services/command"
	"github.com/mcoot/forceteam/internal/sse"
	"github.com/mcoot/forceteam/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Commands    *command.Service
	Journal     storage.Journal
	Hub         *sse.Hub
	// Sim enables the simulation control routes when set
	Sim      *sim.Server
	HostMode string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	rosterHandler := handler.NewRosterHandler(cfg.Commands)
	consoleHandler := handler.NewConsoleHandler(cfg.Commands)
	reportHandler := handler.NewReportHandler(cfg.Journal, cfg.Hub)

	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler(cfg.HostMode)).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/rosters", rosterHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/rosters", rosterHandler.Clear).Methods(http.MethodDelete)
	protected.HandleFunc("/rosters/apply", rosterHandler.Apply).Methods(http.MethodPost)
	protected.HandleFunc("/rosters/{player_id}", rosterHandler.Set).Methods(http.MethodPut)
	protected.HandleFunc("/rosters/{player_id}/force", rosterHandler.Force).Methods(http.MethodPost)

	protected.HandleFunc("/console", consoleHandler.Execute).Methods(http.MethodPost)

	protected.HandleFunc("/reports", reportHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/events", reportHandler.Events).Methods(http.MethodGet)

	if cfg.Sim != nil {
		simHandler := handler.NewSimHandler(cfg.Commands, cfg.Sim)
		simRoutes := protected.PathPrefix("/sim").Subrouter()
		simRoutes.HandleFunc("/players", simHandler.Players).Methods(http.MethodGet)
		simRoutes.HandleFunc("/players", simHandler.Connect).Methods(http.MethodPost)
		simRoutes.HandleFunc("/players/{player_id}", simHandler.Disconnect).Methods(http.MethodDelete)
		simRoutes.HandleFunc("/players/{player_id}/join", simHandler.Join).Methods(http.MethodPost)
		simRoutes.HandleFunc("/round-start", simHandler.RoundStart).Methods(http.MethodPost)
		simRoutes.HandleFunc("/phase", simHandler.Phase).Methods(http.MethodPut)
	}

	return r
}

func healthHandler(hostMode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", HostMode: hostMode})
	}
}
