package game

import (
	"context"
	"errors"

	"github.com/mcoot/scrabble-go2/internal/dependencies/random"
	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/storage"
	"github.com/mcoot/scrabble-go2/internal/testutil"
)

var errWriteFailed = errors.New("write failed")

// failingStorage wraps a store and fails the writes it is told to
type failingStorage struct {
	storage.Storage
	failSave bool
	failPush bool
}

func (f *failingStorage) SaveGame(ctx context.Context, game *model.Game) error {
	if f.failSave {
		return errWriteFailed
	}
	return f.Storage.SaveGame(ctx, game)
}

func (f *failingStorage) PushSnapshot(ctx context.Context, id model.GameID, stack storage.SnapshotStack, game *model.Game) error {
	if f.failPush {
		return errWriteFailed
	}
	return f.Storage.PushSnapshot(ctx, id, stack, game)
}

// controllerOver builds a controller sharing the suite's engine and mocks on another store
func (s *ControllerSuite) controllerOver(store storage.Storage) *Controller {
	return NewController(store, s.controller.engine, s.controller.scoringService, s.clock, s.random, testutil.NopLogger())
}

func (s *ControllerSuite) TestFailedSaveLeavesHistoryUntouched() {
	s.createGame()
	s.playHello()
	failing := s.controllerOver(&failingStorage{Storage: s.storage, failSave: true})

	_, err := failing.SkipTurn(s.ctx, "GAME1", "")
	s.ErrorIs(err, errWriteFailed)
	s.Equal(History{Undo: 1, Redo: 0}, s.history())

	_, err = failing.Undo(s.ctx, "GAME1", "")
	s.ErrorIs(err, errWriteFailed)
	s.Equal(History{Undo: 1, Redo: 0}, s.history())

	game, err := s.controller.GetGame(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Len(game.Moves, 1)
	s.Equal("bob", game.CurrentPlayer().Name)

	// The surviving snapshot is the real one from before hello
	undone, err := s.controller.Undo(s.ctx, "GAME1", "")
	s.Require().NoError(err)
	s.Empty(undone.Moves)
	s.True(undone.FirstMovePending)
}

func (s *ControllerSuite) TestFailedSnapshotPushRollsBackMove() {
	s.createGame()
	s.playHello()
	failing := s.controllerOver(&failingStorage{Storage: s.storage, failPush: true})

	_, err := failing.SkipTurn(s.ctx, "GAME1", "")
	s.ErrorIs(err, errWriteFailed)

	game, err := s.controller.GetGame(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Len(game.Moves, 1)
	s.Equal("bob", game.CurrentPlayer().Name)
	s.Equal(History{Undo: 1, Redo: 0}, s.history())
}

func (s *ControllerSuite) TestFailedRedoPushKeepsGame() {
	s.createGame()
	s.playHello()
	_, err := s.controller.Undo(s.ctx, "GAME1", "")
	s.Require().NoError(err)
	failing := s.controllerOver(&failingStorage{Storage: s.storage, failPush: true})

	_, err = failing.Redo(s.ctx, "GAME1", "")
	s.ErrorIs(err, errWriteFailed)

	game, err := s.controller.GetGame(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Empty(game.Moves)
	s.Equal(History{Undo: 0, Redo: 1}, s.history())
}

func (s *ControllerSuite) TestCreateGameSkipsIDInUse() {
	s.createGame()
	s.random.QueueString("GAME1", "GAME2")

	game, err := s.controller.CreateGame(s.ctx, []string{"carol", "dave"})
	s.Require().NoError(err)
	s.Equal(model.GameID("GAME2"), game.ID)

	original, err := s.controller.GetGame(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob"}, original.PlayerNames())
}

func (s *ControllerSuite) TestCreateGameGivesUpWhenEveryIDTaken() {
	s.createGame()
	for i := 0; i < gameIDAttempts; i++ {
		s.random.QueueString("GAME1")
	}

	_, err := s.controller.CreateGame(s.ctx, []string{"carol", "dave"})
	s.Error(err)

	ids, err := s.controller.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"GAME1"}, ids)
}

func (s *ControllerSuite) TestDeleteGameReleasesLock() {
	s.createGame()
	s.Contains(s.controller.locks, model.GameID("GAME1"))

	s.Require().NoError(s.controller.DeleteGame(s.ctx, "GAME1"))
	s.NotContains(s.controller.locks, model.GameID("GAME1"))
}

func (s *ControllerSuite) TestRestartedSeededControllerKeepsExistingGames() {
	first := NewController(s.storage, s.controller.engine, s.controller.scoringService, s.clock, random.NewSeeded(42), testutil.NopLogger())
	restarted := NewController(s.storage, s.controller.engine, s.controller.scoringService, s.clock, random.NewSeeded(42), testutil.NopLogger())

	kept, err := first.CreateGame(s.ctx, []string{"alice", "bob"})
	s.Require().NoError(err)
	created, err := restarted.CreateGame(s.ctx, []string{"carol", "dave"})
	s.Require().NoError(err)

	s.NotEqual(kept.ID, created.ID)
	stored, err := s.controller.GetGame(s.ctx, kept.ID)
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob"}, stored.PlayerNames())
}
