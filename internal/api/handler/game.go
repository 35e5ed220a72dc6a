package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/scrabble-go2/internal/api/request"
	"github.com/mcoot/scrabble-go2/internal/api/response"
	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// ifMatch reads the fingerprint the client last saw, ignoring quotes and weak markers
func ifMatch(r *http.Request) string {
	value := strings.TrimSpace(r.Header.Get("If-Match"))
	if value == "*" {
		return ""
	}
	value = strings.TrimPrefix(value, "W/")
	return strings.Trim(value, `"`)
}

// writeGame writes a game with its fingerprint as the ETag
func writeGame(w http.ResponseWriter, status int, g *model.Game, body any) {
	fingerprint, err := g.Fingerprint()
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSONWithETag(w, status, fingerprint, body)
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	games := make([]string, len(ids))
	for i, id := range ids {
		games[i] = string(id)
	}
	response.JSON(w, http.StatusOK, response.GameList{Games: games})
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), req.Players)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeGame(w, http.StatusCreated, g, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeGame(w, http.StatusOK, g, response.GameFromModel(g))
}

// Cell handles GET /api/v1/games/{id}/cells/{x}/{y}
func (h *GameHandler) Cell(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	x, errX := strconv.Atoi(vars["x"])
	y, errY := strconv.Atoi(vars["y"])
	if errX != nil || errY != nil {
		WriteError(w, NewInvalidRequestError("x and y must be integers"))
		return
	}

	cell, err := h.gameController.Cell(r.Context(), gameID(r), model.Position{X: x, Y: y})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CellFromController(cell))
}

// Hand handles GET /api/v1/games/{id}/hand
func (h *GameHandler) Hand(w http.ResponseWriter, r *http.Request) {
	player, err := h.gameController.CurrentPlayer(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HandFromModel(player))
}

// Scores handles GET /api/v1/games/{id}/scores
func (h *GameHandler) Scores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.gameController.Scores(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoresFromController(scores))
}

// History handles GET /api/v1/games/{id}/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.gameController.History(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, history)
}

// Play handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	dir, err := model.ParseDirection(req.Direction)
	if err != nil {
		WriteError(w, err)
		return
	}

	placement, err := model.NewPlacement(model.Position{X: req.X, Y: req.Y}, dir, req.Word, req.Blanks...)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, g, err := h.gameController.PlayMove(r.Context(), gameID(r), placement, ifMatch(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeGame(w, http.StatusOK, g, response.MoveResponseFromModel(result, g))
}

// Skip handles POST /api/v1/games/{id}/skip
func (h *GameHandler) Skip(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.SkipTurn(r.Context(), gameID(r), ifMatch(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeGame(w, http.StatusOK, g, response.GameFromModel(g))
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req request.ResetRequest
	// An empty body resets the scores
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.gameController.ResetGame(r.Context(), gameID(r), req.KeepScores, ifMatch(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeGame(w, http.StatusOK, g, response.GameFromModel(g))
}

// Undo handles POST /api/v1/games/{id}/undo
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.Undo(r.Context(), gameID(r), ifMatch(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeGame(w, http.StatusOK, g, response.GameFromModel(g))
}

// Redo handles POST /api/v1/games/{id}/redo
func (h *GameHandler) Redo(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.Redo(r.Context(), gameID(r), ifMatch(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeGame(w, http.StatusOK, g, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
