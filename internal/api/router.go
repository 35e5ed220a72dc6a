package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scrabble-go2/internal/api/handler"
	"github.com/mcoot/scrabble-go2/internal/api/middleware"
	"github.com/mcoot/scrabble-go2/internal/api/response"
	"github.com/mcoot/scrabble-go2/internal/services/dictionary"
	"github.com/mcoot/scrabble-go2/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	Dictionary     *dictionary.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler(cfg.Dictionary)).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)

	games := api.PathPrefix("/games/{id}").Subrouter()
	games.HandleFunc("", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/cells/{x}/{y}", gameHandler.Cell).Methods(http.MethodGet)
	games.HandleFunc("/hand", gameHandler.Hand).Methods(http.MethodGet)
	games.HandleFunc("/scores", gameHandler.Scores).Methods(http.MethodGet)
	games.HandleFunc("/history", gameHandler.History).Methods(http.MethodGet)
	games.HandleFunc("/moves", gameHandler.Play).Methods(http.MethodPost)
	games.HandleFunc("/skip", gameHandler.Skip).Methods(http.MethodPost)
	games.HandleFunc("/reset", gameHandler.Reset).Methods(http.MethodPost)
	games.HandleFunc("/undo", gameHandler.Undo).Methods(http.MethodPost)
	games.HandleFunc("/redo", gameHandler.Redo).Methods(http.MethodPost)

	return r
}

// healthHandler reports ok once a lexicon is loaded
func healthHandler(dict *dictionary.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dict == nil || !dict.IsLoaded() {
			response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "no dictionary"})
			return
		}
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Words: dict.WordCount()})
	}
}
