// Package storagetest holds the behaviour every storage backend must share.
// Backend test suites embed Suite and set Storage in their SetupTest.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/storage"
)

// Suite is the shared storage conformance suite
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// NewGame builds a dealt two player game for storage round trips
func (s *Suite) NewGame(id model.GameID) *model.Game {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	game, err := model.NewGame(id, []string{"alice", "bob"}, model.DefaultLayout(), model.NewTileBag(model.StandardTiles()), now)
	s.Require().NoError(err)
	return game
}

// Game tests

func (s *Suite) TestSaveAndGetGame() {
	game := s.NewGame("GAME1")
	s.Require().NoError(game.Board.Place(model.Center, model.NewBlankTile().WithLetter('q')))
	game.Players[1].AddScore(42)
	game.AdvanceTurn()
	game.FirstMovePending = false

	err := s.Storage.SaveGame(s.Ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetGame(s.Ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(1, retrieved.CurrentPlayerIdx)
	s.False(retrieved.FirstMovePending)
	s.Equal(42, retrieved.Players[1].Score)
	s.Equal(game.Players[0].Hand.Letters(), retrieved.Players[0].Hand.Letters())
	s.Equal(game.Bag.Remaining(), retrieved.Bag.Remaining())
	s.Equal(model.PremiumDoubleWord, retrieved.Board.Premium(model.Position{X: 10, Y: 10}))

	tile, ok := retrieved.Board.Get(model.Center)
	s.True(ok)
	s.True(tile.Blank)
	s.Equal('q', tile.Letter)

	want, err := game.Fingerprint()
	s.Require().NoError(err)
	got, err := retrieved.Fingerprint()
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, "NONEXISTENT")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestSavedGameIsNotShared() {
	game := s.NewGame("GAME1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	game.Players[0].AddScore(10)

	retrieved, err := s.Storage.GetGame(s.Ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal(0, retrieved.Players[0].Score)
}

func (s *Suite) TestSaveGameOverwrites() {
	game := s.NewGame("GAME1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	game.AdvanceTurn()
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal(1, retrieved.CurrentPlayerIdx)
}

func (s *Suite) TestListGames() {
	ids, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(ids)

	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.NewGame("GAME2")))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.NewGame("GAME1")))

	ids, err = s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"GAME1", "GAME2"}, ids)
}

func (s *Suite) TestDeleteGame() {
	game := s.NewGame("GAME1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))
	s.Require().NoError(s.Storage.PushSnapshot(s.Ctx, "GAME1", storage.UndoStack, game))
	s.Require().NoError(s.Storage.PushSnapshot(s.Ctx, "GAME1", storage.RedoStack, game))

	err := s.Storage.DeleteGame(s.Ctx, "GAME1")
	s.Require().NoError(err)

	_, err = s.Storage.GetGame(s.Ctx, "GAME1")
	s.ErrorIs(err, model.ErrGameNotFound)

	for _, stack := range []storage.SnapshotStack{storage.UndoStack, storage.RedoStack} {
		count, err := s.Storage.SnapshotCount(s.Ctx, "GAME1", stack)
		s.Require().NoError(err)
		s.Equal(0, count)
	}

	ids, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(ids)
}

func (s *Suite) TestDeleteMissingGame() {
	s.NoError(s.Storage.DeleteGame(s.Ctx, "NONEXISTENT"))
}

// Snapshot tests

func (s *Suite) TestSnapshotsAreLastInFirstOut() {
	game := s.NewGame("GAME1")
	s.Require().NoError(s.Storage.PushSnapshot(s.Ctx, "GAME1", storage.UndoStack, game))
	game.AdvanceTurn()
	s.Require().NoError(s.Storage.PushSnapshot(s.Ctx, "GAME1", storage.UndoStack, game))

	count, err := s.Storage.SnapshotCount(s.Ctx, "GAME1", storage.UndoStack)
	s.Require().NoError(err)
	s.Equal(2, count)

	top, err := s.Storage.PopSnapshot(s.Ctx, "GAME1", storage.UndoStack)
	s.Require().NoError(err)
	s.Equal(1, top.CurrentPlayerIdx)

	next, err := s.Storage.PopSnapshot(s.Ctx, "GAME1", storage.UndoStack)
	s.Require().NoError(err)
	s.Equal(0, next.CurrentPlayerIdx)

	_, err = s.Storage.PopSnapshot(s.Ctx, "GAME1", storage.UndoStack)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

func (s *Suite) TestSnapshotIsNotShared() {
	game := s.NewGame("GAME1")
	s.Require().NoError(s.Storage.PushSnapshot(s.Ctx, "GAME1", storage.UndoStack, game))

	game.Players[0].AddScore(99)

	snap, err := s.Storage.PopSnapshot(s.Ctx, "GAME1", storage.UndoStack)
	s.Require().NoError(err)
	s.Equal(0, snap.Players[0].Score)
}

func (s *Suite) TestSnapshotStacksAreSeparate() {
	game := s.NewGame("GAME1")
	s.Require().NoError(s.Storage.PushSnapshot(s.Ctx, "GAME1", storage.UndoStack, game))

	_, err := s.Storage.PopSnapshot(s.Ctx, "GAME1", storage.RedoStack)
	s.ErrorIs(err, model.ErrSnapshotNotFound)

	_, err = s.Storage.PopSnapshot(s.Ctx, "GAME2", storage.UndoStack)
	s.ErrorIs(err, model.ErrSnapshotNotFound)

	count, err := s.Storage.SnapshotCount(s.Ctx, "GAME1", storage.UndoStack)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *Suite) TestClearSnapshots() {
	game := s.NewGame("GAME1")
	s.Require().NoError(s.Storage.PushSnapshot(s.Ctx, "GAME1", storage.RedoStack, game))
	s.Require().NoError(s.Storage.PushSnapshot(s.Ctx, "GAME1", storage.RedoStack, game))
	s.Require().NoError(s.Storage.PushSnapshot(s.Ctx, "GAME1", storage.UndoStack, game))

	err := s.Storage.ClearSnapshots(s.Ctx, "GAME1", storage.RedoStack)
	s.Require().NoError(err)

	count, err := s.Storage.SnapshotCount(s.Ctx, "GAME1", storage.RedoStack)
	s.Require().NoError(err)
	s.Equal(0, count)

	count, err = s.Storage.SnapshotCount(s.Ctx, "GAME1", storage.UndoStack)
	s.Require().NoError(err)
	s.Equal(1, count)
}

// Dictionary tests

func (s *Suite) TestSaveAndGetDictionaryWords() {
	words := []string{"hello", "world", "peer"}
	err := s.Storage.SaveDictionaryWords(s.Ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetDictionaryWords(s.Ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved)
}

func (s *Suite) TestSaveDictionaryWordsReplaces() {
	s.Require().NoError(s.Storage.SaveDictionaryWords(s.Ctx, []string{"old"}))
	s.Require().NoError(s.Storage.SaveDictionaryWords(s.Ctx, []string{"new", "words"}))

	retrieved, err := s.Storage.GetDictionaryWords(s.Ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"new", "words"}, retrieved)
}

func (s *Suite) TestGetDictionaryWordsNotLoaded() {
	_, err := s.Storage.GetDictionaryWords(s.Ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}
