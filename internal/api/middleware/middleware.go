package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/scrabble-go2/internal/api/apierr"
	"github.com/mcoot/scrabble-go2/internal/middleware"
)

// Logging logs each API request with its request ID
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// Recovery turns a handler panic into a JSON INTERNAL_ERROR response
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
