package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/scrabble-go2/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidLetter       = "INVALID_LETTER"
	CodeInvalidPlacement    = "INVALID_PLACEMENT"
	CodeOutOfBounds         = "OUT_OF_BOUNDS"
	CodeCellOccupied        = "CELL_OCCUPIED"
	CodeInvalidWord         = "INVALID_WORD"
	CodeLetterMismatch      = "LETTER_MISMATCH"
	CodeInsufficientTiles   = "INSUFFICIENT_TILES"
	CodeDisconnected        = "DISCONNECTED"
	CodeNoTilesPlaced       = "NO_TILES_PLACED"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeTooManyPlayers      = "TOO_MANY_PLAYERS"
	CodeInvalidPlayerName   = "INVALID_PLAYER_NAME"
	CodeNothingToUndo       = "NOTHING_TO_UNDO"
	CodeNothingToRedo       = "NOTHING_TO_REDO"
	CodeStaleGame           = "STALE_GAME"
	CodeDictionaryNotLoaded = "DICTIONARY_NOT_LOADED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// moveError builds a 422 for a rejected move, keeping the wrapped detail
func moveError(code string, err error) *httpError {
	return &httpError{http.StatusUnprocessableEntity, APIError{code, err.Error()}}
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Move legality errors
	case errors.Is(err, model.ErrInvalidWord):
		return moveError(CodeInvalidWord, err)
	case errors.Is(err, model.ErrLetterMismatch):
		return moveError(CodeLetterMismatch, err)
	case errors.Is(err, model.ErrInsufficientTiles):
		return moveError(CodeInsufficientTiles, err)
	case errors.Is(err, model.ErrDisconnected):
		return moveError(CodeDisconnected, err)
	case errors.Is(err, model.ErrNoTilesPlaced):
		return moveError(CodeNoTilesPlaced, err)
	case errors.Is(err, model.ErrCellOccupied):
		return moveError(CodeCellOccupied, err)
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, err.Error()}}
	case errors.Is(err, model.ErrInvalidPlacement):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlacement, err.Error()}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLetter, "Letters must be A-Z"}}

	// Game errors
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeInsufficientPlayers, "A game needs at least 2 players"}}
	case errors.Is(err, model.ErrTooManyPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeTooManyPlayers, "A game allows at most 4 players"}}
	case errors.Is(err, model.ErrInvalidPlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerName, "Player names must not be empty"}}
	case errors.Is(err, model.ErrNothingToUndo):
		return &httpError{http.StatusConflict, APIError{CodeNothingToUndo, "Nothing to undo"}}
	case errors.Is(err, model.ErrNothingToRedo):
		return &httpError{http.StatusConflict, APIError{CodeNothingToRedo, "Nothing to redo"}}
	case errors.Is(err, model.ErrStaleGame):
		return &httpError{http.StatusPreconditionFailed, APIError{CodeStaleGame, "Game has changed, reload and retry"}}

	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryNotLoaded, "Dictionary not loaded"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
