package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/forceteam/internal/api/apierr"
	"github.com/mcoot/forceteam/internal/middleware"
)

// Logging creates request logging middleware for the API.
// Health probes are logged at debug so they don't drown out admin calls.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger, middleware.QuietPaths("/api/v1/health"))
}

// Recovery creates panic recovery middleware that answers with a JSON
// INTERNAL_ERROR body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
