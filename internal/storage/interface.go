package storage

import (
	"context"

	"github.com/mcoot/scrabble-go2/internal/model"
)

// SnapshotStack names one of a game's two history stacks
type SnapshotStack string

const (
	UndoStack SnapshotStack = "undo"
	RedoStack SnapshotStack = "redo"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]model.GameID, error)
	// DeleteGame removes the game and both of its snapshot stacks
	DeleteGame(ctx context.Context, id model.GameID) error

	// Snapshot operations. Stacks are last in, first out.
	PushSnapshot(ctx context.Context, id model.GameID, stack SnapshotStack, game *model.Game) error
	// PopSnapshot returns model.ErrSnapshotNotFound when the stack is empty
	PopSnapshot(ctx context.Context, id model.GameID, stack SnapshotStack) (*model.Game, error)
	ClearSnapshots(ctx context.Context, id model.GameID, stack SnapshotStack) error
	SnapshotCount(ctx context.Context, id model.GameID, stack SnapshotStack) (int, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
