package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Games are copied on the way in and out so callers never share state with the store.
type Storage struct {
	mu sync.RWMutex

	games           map[model.GameID]*model.Game
	snapshots       map[snapshotKey][]*model.Game
	dictionaryWords []string
}

type snapshotKey struct {
	gameID model.GameID
	stack  storage.SnapshotStack
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:     make(map[model.GameID]*model.Game),
		snapshots: make(map[snapshotKey][]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]model.GameID, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	delete(s.snapshots, snapshotKey{gameID: id, stack: storage.UndoStack})
	delete(s.snapshots, snapshotKey{gameID: id, stack: storage.RedoStack})
	return nil
}

// Snapshot operations

func (s *Storage) PushSnapshot(ctx context.Context, id model.GameID, stack storage.SnapshotStack, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshotKey{gameID: id, stack: stack}
	s.snapshots[key] = append(s.snapshots[key], game.Clone())
	return nil
}

func (s *Storage) PopSnapshot(ctx context.Context, id model.GameID, stack storage.SnapshotStack) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshotKey{gameID: id, stack: stack}
	games := s.snapshots[key]
	if len(games) == 0 {
		return nil, model.ErrSnapshotNotFound
	}
	last := games[len(games)-1]
	s.snapshots[key] = games[:len(games)-1]
	return last, nil
}

func (s *Storage) ClearSnapshots(ctx context.Context, id model.GameID, stack storage.SnapshotStack) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, snapshotKey{gameID: id, stack: stack})
	return nil
}

func (s *Storage) SnapshotCount(ctx context.Context, id model.GameID, stack storage.SnapshotStack) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots[snapshotKey{gameID: id, stack: stack}]), nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}
