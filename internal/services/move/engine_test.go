package move

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/services/board"
	"github.com/mcoot/scrabble-go2/internal/services/dictionary"
	"github.com/mcoot/scrabble-go2/internal/services/scoring"
	"github.com/mcoot/scrabble-go2/internal/storage/memory"
	"github.com/mcoot/scrabble-go2/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	engine *Engine
	game   *model.Game
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	dict := dictionary.New(memory.New())
	s.Require().NoError(dict.LoadWords([]string{
		"hello", "help", "peer", "peers", "owns", "jello", "ax", "ox", "cat", "rations", "at", "hat",
	}))
	s.engine = New(dict, board.New(), scoring.New(), testutil.NopLogger())

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	game, err := model.NewGame("GAME1", []string{"alice", "bob"}, model.DefaultLayout(), model.NewTileBag(model.StandardTiles()), now)
	s.Require().NoError(err)
	s.game = game
}

func (s *EngineSuite) setHand(idx int, letters string) {
	s.game.Players[idx].Hand = testutil.HandOf(letters)
}

func (s *EngineSuite) placement(x, y int, dir model.Direction, word string, blanks ...int) model.Placement {
	p, err := model.NewPlacement(model.Position{X: x, Y: y}, dir, word, blanks...)
	s.Require().NoError(err)
	return p
}

func (s *EngineSuite) play(x, y int, dir model.Direction, word string, blanks ...int) (*model.MoveResult, error) {
	return s.engine.Play(s.game, s.placement(x, y, dir, word, blanks...))
}

// playHello opens the game with hello across the centre
func (s *EngineSuite) playHello() {
	s.setHand(0, "helloab")
	_, err := s.play(7, 7, model.DirectionRight, "hello")
	s.Require().NoError(err)
}

// assertRejected plays the move and checks it fails without touching the game
func (s *EngineSuite) assertRejected(target error, x, y int, dir model.Direction, word string, blanks ...int) {
	before := s.game.Clone()

	result, err := s.play(x, y, dir, word, blanks...)

	s.ErrorIs(err, target)
	s.Nil(result)
	s.Equal(before, s.game)
}

// Reference game

func (s *EngineSuite) TestReferenceGame() {
	s.setHand(0, "helloab")
	result, err := s.play(7, 7, model.DirectionRight, "hello")
	s.Require().NoError(err)
	s.Equal(9, result.Score)
	s.Equal(9, s.game.Players[0].Score)
	s.False(s.game.FirstMovePending)
	s.Equal(1, s.game.CurrentPlayerIdx)

	s.setHand(1, "elpzzzz")
	result, err = s.play(7, 7, model.DirectionDown, "help")
	s.Require().NoError(err)
	s.Equal(9, result.Score)
	s.Len(result.Placed, 3)
	s.Equal(9, s.game.Players[1].Score)

	s.setHand(0, "eerzzzz")
	result, err = s.play(7, 10, model.DirectionRight, "peer")
	s.Require().NoError(err)
	s.Equal(12, result.Score)
	s.Equal(21, s.game.Players[0].Score)

	s.setHand(1, "wnszzzz")
	result, err = s.play(11, 7, model.DirectionDown, "owns")
	s.Require().NoError(err)
	s.Equal(14, result.Score)
	s.Equal(23, s.game.Players[1].Score)

	s.Require().Len(result.Words, 2)
	s.Equal("owns", result.Words[0].Word)
	s.True(result.Words[0].Primary)
	s.Equal(7, result.Words[0].Score)
	s.Equal("peers", result.Words[1].Word)
	s.Equal(7, result.Words[1].Score)

	s.Equal(0, s.game.CurrentPlayerIdx)
	s.Equal(5+3+3+3, s.game.Board.TileCount())
}

func (s *EngineSuite) TestMoveCommitsTilesAndRefills() {
	s.setHand(0, "helloab")
	bagBefore := s.game.Bag.Remaining()

	result, err := s.play(7, 7, model.DirectionRight, "hello")
	s.Require().NoError(err)

	s.Equal("alice", result.PlayerName)
	hand := s.game.Players[0].Hand
	s.Equal(model.HandSize, hand.Size())
	s.Equal(bagBefore-5, s.game.Bag.Remaining())
	s.GreaterOrEqual(hand.CountOf('a'), 1)
	s.GreaterOrEqual(hand.CountOf('b'), 1)

	for i, r := range "hello" {
		tile, ok := s.game.Board.Get(model.Position{X: 7 + i, Y: 7})
		s.True(ok)
		s.Equal(r, tile.Letter)
	}
}

func (s *EngineSuite) TestRefillStopsWhenBagEmpty() {
	s.game.Bag = model.NewTileBag(nil)
	s.setHand(0, "helloab")

	_, err := s.play(7, 7, model.DirectionRight, "hello")
	s.Require().NoError(err)

	s.Equal("ab", s.game.Players[0].Hand.Letters())
}

// Rejections

func (s *EngineSuite) TestFirstMoveMustCoverCenter() {
	s.setHand(0, "helloab")
	s.assertRejected(model.ErrDisconnected, 0, 0, model.DirectionRight, "hello")
	s.True(s.game.FirstMovePending)
}

func (s *EngineSuite) TestDisconnectedMove() {
	s.playHello()
	s.setHand(1, "catzzzz")

	s.assertRejected(model.ErrDisconnected, 0, 0, model.DirectionRight, "cat")
}

func (s *EngineSuite) TestLetterMismatch() {
	s.playHello()
	s.setHand(1, "jzzzzzz")

	s.assertRejected(model.ErrLetterMismatch, 7, 7, model.DirectionRight, "jello")
}

func (s *EngineSuite) TestInvalidWord() {
	s.setHand(0, "hellqab")
	s.assertRejected(model.ErrInvalidWord, 7, 7, model.DirectionRight, "hellq")
}

func (s *EngineSuite) TestInvalidWordIncludesAdjacentBoardLetters() {
	s.playHello()
	// "at" is a word, but it runs into the h of hello
	s.setHand(1, "atzzzzz")
	s.assertRejected(model.ErrInvalidWord, 5, 7, model.DirectionRight, "at")
}

func (s *EngineSuite) TestPrimaryWordExtendedByBoardLetters() {
	s.setHand(0, "atzzzzz")
	_, err := s.play(7, 7, model.DirectionRight, "at")
	s.Require().NoError(err)

	// h placed before "at" reads as hat
	s.setHand(1, "hzzzzzz")
	result, err := s.play(6, 7, model.DirectionRight, "h")
	s.Require().NoError(err)

	s.Require().Len(result.Words, 1)
	s.Equal("hat", result.Words[0].Word)
	s.Equal(model.Position{X: 6, Y: 7}, result.Words[0].Start)
	s.Equal(4+1+1, result.Score)
}

func (s *EngineSuite) TestInvalidSideWord() {
	s.playHello()
	s.setHand(1, "axzzzzz")

	// ax is fine but the x under the h forms "hx"
	s.assertRejected(model.ErrInvalidWord, 6, 8, model.DirectionRight, "ax")
}

func (s *EngineSuite) TestInsufficientTiles() {
	s.setHand(0, "heloabc")
	s.assertRejected(model.ErrInsufficientTiles, 7, 7, model.DirectionRight, "hello")
}

func (s *EngineSuite) TestBlankMustBeHeldToPlayBlank() {
	s.setHand(0, "helloab")
	s.assertRejected(model.ErrInsufficientTiles, 7, 7, model.DirectionRight, "hello", 0)
}

func (s *EngineSuite) TestNoTilesPlaced() {
	s.playHello()
	s.setHand(1, "helloab")

	s.assertRejected(model.ErrNoTilesPlaced, 7, 7, model.DirectionRight, "hello")
}

func (s *EngineSuite) TestOutOfBounds() {
	s.setHand(0, "helloab")
	s.assertRejected(model.ErrOutOfBounds, 12, 7, model.DirectionRight, "hello")
	s.assertRejected(model.ErrOutOfBounds, 7, 13, model.DirectionDown, "hello")
	s.assertRejected(model.ErrOutOfBounds, -1, 7, model.DirectionRight, "hello")
}

func (s *EngineSuite) TestMalformedPlacement() {
	s.setHand(0, "helloab")
	before := s.game.Clone()

	_, err := s.engine.Play(s.game, model.Placement{Anchor: model.Center, Direction: model.DirectionRight})
	s.ErrorIs(err, model.ErrInvalidPlacement)

	_, err = s.engine.Play(s.game, model.Placement{Anchor: model.Center, Direction: "up", Tiles: []model.TileSpec{{Letter: 'a'}}})
	s.ErrorIs(err, model.ErrInvalidPlacement)

	_, err = s.engine.Play(s.game, model.Placement{Anchor: model.Center, Direction: model.DirectionRight, Tiles: []model.TileSpec{{Letter: '1'}}})
	s.ErrorIs(err, model.ErrInvalidLetter)

	s.Equal(before, s.game)
}

func (s *EngineSuite) TestEveryInvalidSideWordReported() {
	s.playHello()
	s.setHand(1, "axzzzzz")

	// a under the h forms "ha", x under the e forms "ex"
	_, err := s.play(7, 8, model.DirectionRight, "ax")
	s.Require().ErrorIs(err, model.ErrInvalidWord)
	s.Contains(err.Error(), `"ha", "ex"`)
}

func (s *EngineSuite) TestSingleLetterFirstMoveRejected() {
	s.setHand(0, "helloab")
	s.assertRejected(model.ErrInvalidWord, 7, 7, model.DirectionRight, "a")
}

// Blanks

func (s *EngineSuite) TestBlankScoresZero() {
	s.setHand(0, "?elloab")

	result, err := s.play(7, 7, model.DirectionRight, "hello", 0)
	s.Require().NoError(err)

	s.Equal(0+1+1+1+2, result.Score)
	tile, _ := s.game.Board.Get(model.Center)
	s.True(tile.Blank)
	s.Equal('h', tile.Letter)
}

func (s *EngineSuite) TestBlankOnBoardMatchesItsLetter() {
	s.setHand(0, "?elloab")
	_, err := s.play(7, 7, model.DirectionRight, "hello", 0)
	s.Require().NoError(err)

	// help reuses the blank h at the centre, which still scores nothing
	s.setHand(1, "elpzzzz")
	result, err := s.play(7, 7, model.DirectionDown, "help")
	s.Require().NoError(err)
	s.Equal(0+1+1+3, result.Score)
}

// Single tile plays

func (s *EngineSuite) TestSingleTileAcrossFormsSideWord() {
	s.playHello()
	s.setHand(1, "xzzzzzz")

	// x under the o: no word across, "ox" down
	result, err := s.play(11, 8, model.DirectionRight, "x")
	s.Require().NoError(err)

	s.Equal(9, result.Score)
	s.Require().Len(result.Words, 1)
	s.Equal("ox", result.Words[0].Word)
	s.False(result.Words[0].Primary)
}

func (s *EngineSuite) TestSingleTileAlongFormsPrimaryWord() {
	s.playHello()
	s.setHand(1, "xzzzzzz")

	result, err := s.play(11, 8, model.DirectionDown, "x")
	s.Require().NoError(err)

	s.Equal(9, result.Score)
	s.Require().Len(result.Words, 1)
	s.Equal("ox", result.Words[0].Word)
	s.True(result.Words[0].Primary)
}

func (s *EngineSuite) TestSideWordOfOneLetterScoresNothing() {
	s.setHand(0, "helloab")
	result, err := s.play(7, 7, model.DirectionRight, "hello")
	s.Require().NoError(err)

	// No perpendicular words were formed
	s.Len(result.Words, 1)
	s.Equal(result.Words[0].Score, result.Score)
}

// Bonuses

func (s *EngineSuite) TestBingo() {
	s.setHand(0, "rations")

	result, err := s.play(4, 7, model.DirectionRight, "rations")
	s.Require().NoError(err)

	s.True(result.Bingo)
	s.Equal(7+model.BingoBonus, result.Score)
}

// Validate

func (s *EngineSuite) TestValidateDoesNotMutate() {
	s.setHand(0, "helloab")
	before := s.game.Clone()

	plan, err := s.engine.Validate(s.game, s.placement(7, 7, model.DirectionRight, "hello"))
	s.Require().NoError(err)

	s.Equal(before, s.game)
	s.Equal(9, plan.Result.Score)
	s.True(plan.CoversCenter())
	s.Equal("hello", plan.Primary.Text())
	s.Len(plan.Placed, 5)

	result, err := s.engine.Apply(s.game, plan)
	s.Require().NoError(err)
	s.Equal(9, result.Score)
	s.Equal(9, s.game.Players[0].Score)
}

func (s *EngineSuite) TestValidateNormalizesCase() {
	s.setHand(0, "helloab")
	placement := model.Placement{
		Anchor:    model.Center,
		Direction: model.DirectionRight,
		Tiles:     []model.TileSpec{{Letter: 'H'}, {Letter: 'E'}, {Letter: 'L'}, {Letter: 'L'}, {Letter: 'O'}},
	}

	plan, err := s.engine.Validate(s.game, placement)
	s.Require().NoError(err)
	s.Equal("hello", plan.Placement.Word())
}
