package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrOutOfBounds  = errors.New("position is outside the board")
	ErrCellOccupied = errors.New("cell is already occupied")

	// Move errors
	ErrInvalidWord       = errors.New("word is not in the dictionary")
	ErrLetterMismatch    = errors.New("letter does not match the tile already on the board")
	ErrInsufficientTiles = errors.New("hand does not hold the required tiles")
	ErrDisconnected      = errors.New("move is not connected to existing tiles")
	ErrNoTilesPlaced     = errors.New("move places no new tiles")
	ErrInvalidPlacement  = errors.New("invalid placement")
	ErrInvalidLetter     = errors.New("invalid letter")

	// Bag errors
	ErrEmptyBag = errors.New("tile bag is empty")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrTooManyPlayers      = errors.New("too many players")
	ErrInvalidPlayerName   = errors.New("invalid player name")
	ErrNothingToUndo       = errors.New("nothing to undo")
	ErrNothingToRedo       = errors.New("nothing to redo")
	ErrStaleGame           = errors.New("game has changed since it was read")

	// Storage errors
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
