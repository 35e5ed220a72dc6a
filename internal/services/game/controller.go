package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/scrabble-go2/internal/dependencies/clock"
	"github.com/mcoot/scrabble-go2/internal/dependencies/random"
	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/services/move"
	"github.com/mcoot/scrabble-go2/internal/services/scoring"
	"github.com/mcoot/scrabble-go2/internal/storage"
)

const (
	gameIDLength   = 12
	gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	gameIDAttempts = 10
)

// Controller hosts game sessions: it loads a game, runs the move engine
// against it, keeps undo/redo history and persists the result.
// Operations on one game are serialized; different games run in parallel.
type Controller struct {
	storage        storage.Storage
	engine         *move.Engine
	scoringService *scoring.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
	layout         model.Layout

	mu    sync.Mutex
	locks map[model.GameID]*sync.Mutex
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	engine *move.Engine,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		engine:         engine,
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger,
		layout:         model.DefaultLayout(),
		locks:          make(map[model.GameID]*sync.Mutex),
	}
}

// Scoreboard is the ranked score table of a game
type Scoreboard struct {
	Standings     []scoring.Standing `json:"standings"`
	Winner        string             `json:"winner,omitempty"` // empty on a tie
	CurrentPlayer string             `json:"current_player"`
}

// Cell describes one board square
type Cell struct {
	Position model.Position `json:"position"`
	Tile     *model.Tile    `json:"tile,omitempty"`
	Premium  model.Premium  `json:"premium"`
}

// History is the depth of a game's undo and redo stacks
type History struct {
	Undo int `json:"undo"`
	Redo int `json:"redo"`
}

// lock serializes operations on a single game
func (c *Controller) lock(id model.GameID) func() {
	c.mu.Lock()
	l, ok := c.locks[id]
	if !ok {
		l = &sync.Mutex{}
		c.locks[id] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// load fetches a game and checks it still matches the caller's fingerprint.
// An empty ifMatch skips the check.
func (c *Controller) load(ctx context.Context, id model.GameID, ifMatch string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if ifMatch == "" {
		return game, nil
	}
	current, err := game.Fingerprint()
	if err != nil {
		return nil, err
	}
	if current != ifMatch {
		return nil, fmt.Errorf("%w: game %s", model.ErrStaleGame, id)
	}
	return game, nil
}

// newBag returns a full, shuffled bag
func (c *Controller) newBag() *model.TileBag {
	bag := model.NewTileBag(model.StandardTiles())
	bag.Shuffle(c.random.Intn)
	return bag
}

// reserveID draws game IDs until one is not already stored, returning it
// with its lock held so no other create can claim it first
func (c *Controller) reserveID(ctx context.Context) (model.GameID, func(), error) {
	for i := 0; i < gameIDAttempts; i++ {
		id := model.GameID(c.random.String(gameIDLength, gameIDAlphabet))
		unlock := c.lock(id)
		_, err := c.storage.GetGame(ctx, id)
		if errors.Is(err, model.ErrGameNotFound) {
			return id, unlock, nil
		}
		unlock()
		if err != nil {
			return "", nil, err
		}
		c.logger.Warn("game ID already in use", slog.String("game_id", string(id)))
	}
	return "", nil, fmt.Errorf("no free game ID after %d attempts", gameIDAttempts)
}

// CreateGame seats 2 to 4 named players and deals their hands
func (c *Controller) CreateGame(ctx context.Context, names []string) (*model.Game, error) {
	cleaned := make([]string, len(names))
	for i, name := range names {
		cleaned[i] = strings.TrimSpace(name)
		if cleaned[i] == "" {
			return nil, fmt.Errorf("%w: player %d has no name", model.ErrInvalidPlayerName, i+1)
		}
	}

	gameID, unlock, err := c.reserveID(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	game, err := model.NewGame(gameID, cleaned, c.layout, c.newBag(), c.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.Int("player_count", len(cleaned)),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns the IDs of all stored games
func (c *Controller) ListGames(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListGames(ctx)
}

// CurrentPlayer returns the player to move, including their hand
func (c *Controller) CurrentPlayer(ctx context.Context, gameID model.GameID) (*model.Player, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.CurrentPlayer(), nil
}

// CurrentHand returns a copy of the tiles held by the player to move
func (c *Controller) CurrentHand(ctx context.Context, gameID model.GameID) (model.Hand, error) {
	player, err := c.CurrentPlayer(ctx, gameID)
	if err != nil {
		return model.Hand{}, err
	}
	return player.Hand.Clone(), nil
}

// Scores returns the ranked scores and the leader
func (c *Controller) Scores(ctx context.Context, gameID model.GameID) (*Scoreboard, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	standings := c.scoringService.RankPlayers(game.Players)
	return &Scoreboard{
		Standings:     standings,
		Winner:        c.scoringService.DetermineWinner(standings),
		CurrentPlayer: game.CurrentPlayer().Name,
	}, nil
}

// IsFirstMove reports whether the opening move is still to be played
func (c *Controller) IsFirstMove(ctx context.Context, gameID model.GameID) (bool, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return false, err
	}
	return game.FirstMovePending, nil
}

// Cell returns the tile and premium of one square
func (c *Controller) Cell(ctx context.Context, gameID model.GameID, pos model.Position) (*Cell, error) {
	if !pos.InBounds() {
		return nil, fmt.Errorf("%w: %s", model.ErrOutOfBounds, pos)
	}
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	cell := &Cell{Position: pos, Premium: game.Board.Premium(pos)}
	if tile, ok := game.Board.Get(pos); ok {
		cell.Tile = &tile
	}
	return cell, nil
}

// Premium returns the premium of one square
func (c *Controller) Premium(ctx context.Context, gameID model.GameID, pos model.Position) (model.Premium, error) {
	cell, err := c.Cell(ctx, gameID, pos)
	if err != nil {
		return model.PremiumNormal, err
	}
	return cell.Premium, nil
}

// History returns how many moves can be undone and redone
func (c *Controller) History(ctx context.Context, gameID model.GameID) (*History, error) {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	undo, err := c.storage.SnapshotCount(ctx, gameID, storage.UndoStack)
	if err != nil {
		return nil, err
	}
	redo, err := c.storage.SnapshotCount(ctx, gameID, storage.RedoStack)
	if err != nil {
		return nil, err
	}
	return &History{Undo: undo, Redo: redo}, nil
}

// PlayMove validates and applies a placement for the current player.
// A rejected move changes nothing, neither the game nor its history.
func (c *Controller) PlayMove(ctx context.Context, gameID model.GameID, placement model.Placement, ifMatch string) (*model.MoveResult, *model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.load(ctx, gameID, ifMatch)
	if err != nil {
		return nil, nil, err
	}

	snapshot := game.Clone()
	result, err := c.engine.Play(game, placement)
	if err != nil {
		return nil, nil, err
	}

	now := c.clock.Now()
	game.Moves = append(game.Moves, model.NewPlayRecord(*result, now))
	game.UpdatedAt = now

	if err := c.commit(ctx, game, snapshot); err != nil {
		return nil, nil, err
	}

	return result, game, nil
}

// SkipTurn passes the turn to the next player
func (c *Controller) SkipTurn(ctx context.Context, gameID model.GameID, ifMatch string) (*model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.load(ctx, gameID, ifMatch)
	if err != nil {
		return nil, err
	}

	snapshot := game.Clone()
	now := c.clock.Now()
	skipped := game.CurrentPlayer().Name
	game.Moves = append(game.Moves, model.NewSkipRecord(skipped, now))
	game.AdvanceTurn()
	game.UpdatedAt = now

	if err := c.commit(ctx, game, snapshot); err != nil {
		return nil, err
	}

	c.logger.Info("turn skipped",
		slog.String("game_id", string(gameID)),
		slog.String("player", skipped),
	)

	return game, nil
}

// commit saves the game, then records the pre-move snapshot for undo and
// drops redo history. If history cannot be written the save is rolled back.
func (c *Controller) commit(ctx context.Context, game, snapshot *model.Game) error {
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	if err := c.storage.PushSnapshot(ctx, game.ID, storage.UndoStack, snapshot); err != nil {
		return c.rollback(ctx, snapshot, err)
	}
	if err := c.storage.ClearSnapshots(ctx, game.ID, storage.RedoStack); err != nil {
		if _, popErr := c.storage.PopSnapshot(ctx, game.ID, storage.UndoStack); popErr != nil {
			c.logger.Error("failed to drop undo snapshot",
				slog.String("game_id", string(game.ID)),
				slog.String("error", popErr.Error()),
			)
		}
		return c.rollback(ctx, snapshot, err)
	}
	return nil
}

// rollback puts back the game as it was before a failed write and returns cause
func (c *Controller) rollback(ctx context.Context, previous *model.Game, cause error) error {
	if err := c.storage.SaveGame(ctx, previous); err != nil {
		c.logger.Error("failed to roll back game",
			slog.String("game_id", string(previous.ID)),
			slog.String("error", err.Error()),
		)
	}
	return cause
}

// ResetGame starts the game over with the same players: a fresh board, bag
// and hands. Scores are zeroed unless keepScores is set. History is cleared.
func (c *Controller) ResetGame(ctx context.Context, gameID model.GameID, keepScores bool, ifMatch string) (*model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	old, err := c.load(ctx, gameID, ifMatch)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game, err := model.NewGame(old.ID, old.PlayerNames(), c.layout, c.newBag(), now)
	if err != nil {
		return nil, err
	}
	game.CreatedAt = old.CreatedAt
	if keepScores {
		for i, p := range old.Players {
			game.Players[i].Score = p.Score
		}
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	for _, stack := range []storage.SnapshotStack{storage.UndoStack, storage.RedoStack} {
		if err := c.storage.ClearSnapshots(ctx, gameID, stack); err != nil {
			return nil, c.rollback(ctx, old, err)
		}
	}

	c.logger.Info("game reset",
		slog.String("game_id", string(gameID)),
		slog.Bool("keep_scores", keepScores),
	)

	return game, nil
}

// Undo restores the game to before the last move or skip
func (c *Controller) Undo(ctx context.Context, gameID model.GameID, ifMatch string) (*model.Game, error) {
	return c.travel(ctx, gameID, ifMatch, storage.UndoStack, storage.RedoStack, model.ErrNothingToUndo)
}

// Redo reapplies the last undone move or skip
func (c *Controller) Redo(ctx context.Context, gameID model.GameID, ifMatch string) (*model.Game, error) {
	return c.travel(ctx, gameID, ifMatch, storage.RedoStack, storage.UndoStack, model.ErrNothingToRedo)
}

// travel swaps the current game for the top of one stack, pushing it onto the other
func (c *Controller) travel(ctx context.Context, gameID model.GameID, ifMatch string, from, to storage.SnapshotStack, empty error) (*model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	current, err := c.load(ctx, gameID, ifMatch)
	if err != nil {
		return nil, err
	}

	depth, err := c.storage.SnapshotCount(ctx, gameID, from)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		return nil, empty
	}

	if err := c.storage.PushSnapshot(ctx, gameID, to, current); err != nil {
		return nil, err
	}
	restored, err := c.storage.PopSnapshot(ctx, gameID, from)
	if err != nil {
		c.dropSnapshot(ctx, gameID, to)
		if errors.Is(err, model.ErrSnapshotNotFound) {
			return nil, empty
		}
		return nil, err
	}
	if err := c.storage.SaveGame(ctx, restored); err != nil {
		c.restoreSnapshot(ctx, gameID, from, restored)
		c.dropSnapshot(ctx, gameID, to)
		return nil, err
	}

	c.logger.Info("game history restored",
		slog.String("game_id", string(gameID)),
		slog.String("from", string(from)),
		slog.Int("moves", len(restored.Moves)),
	)

	return restored, nil
}

// restoreSnapshot pushes a popped snapshot back after a failed undo or redo
func (c *Controller) restoreSnapshot(ctx context.Context, gameID model.GameID, stack storage.SnapshotStack, snapshot *model.Game) {
	if err := c.storage.PushSnapshot(ctx, gameID, stack, snapshot); err != nil {
		c.logger.Error("failed to restore snapshot",
			slog.String("game_id", string(gameID)),
			slog.String("stack", string(stack)),
			slog.String("error", err.Error()),
		)
	}
}

// dropSnapshot pops the snapshot pushed by a failed undo or redo
func (c *Controller) dropSnapshot(ctx context.Context, gameID model.GameID, stack storage.SnapshotStack) {
	if _, err := c.storage.PopSnapshot(ctx, gameID, stack); err != nil {
		c.logger.Error("failed to drop snapshot",
			slog.String("game_id", string(gameID)),
			slog.String("stack", string(stack)),
			slog.String("error", err.Error()),
		)
	}
}

// DeleteGame removes a game and its history
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	unlock := c.lock(gameID)
	defer unlock()

	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.locks, gameID)
	c.mu.Unlock()

	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, names []string) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]model.GameID, error)
	CurrentPlayer(ctx context.Context, gameID model.GameID) (*model.Player, error)
	CurrentHand(ctx context.Context, gameID model.GameID) (model.Hand, error)
	Scores(ctx context.Context, gameID model.GameID) (*Scoreboard, error)
	IsFirstMove(ctx context.Context, gameID model.GameID) (bool, error)
	Cell(ctx context.Context, gameID model.GameID, pos model.Position) (*Cell, error)
	Premium(ctx context.Context, gameID model.GameID, pos model.Position) (model.Premium, error)
	History(ctx context.Context, gameID model.GameID) (*History, error)
	PlayMove(ctx context.Context, gameID model.GameID, placement model.Placement, ifMatch string) (*model.MoveResult, *model.Game, error)
	SkipTurn(ctx context.Context, gameID model.GameID, ifMatch string) (*model.Game, error)
	ResetGame(ctx context.Context, gameID model.GameID, keepScores bool, ifMatch string) (*model.Game, error)
	Undo(ctx context.Context, gameID model.GameID, ifMatch string) (*model.Game, error)
	Redo(ctx context.Context, gameID model.GameID, ifMatch string) (*model.Game, error)
	DeleteGame(ctx context.Context, gameID model.GameID) error
}

var _ ControllerInterface = (*Controller)(nil)
