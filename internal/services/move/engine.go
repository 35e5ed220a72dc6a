package move

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/services/board"
	"github.com/mcoot/scrabble-go2/internal/services/dictionary"
	"github.com/mcoot/scrabble-go2/internal/services/scoring"
)

// Engine validates proposed placements against a game and commits legal ones
type Engine struct {
	lexicon        dictionary.Lexicon
	boardService   *board.Service
	scoringService *scoring.Service
	logger         *slog.Logger
}

// New creates a new MoveEngine
func New(
	lexicon dictionary.Lexicon,
	boardService *board.Service,
	scoringService *scoring.Service,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		lexicon:        lexicon,
		boardService:   boardService,
		scoringService: scoringService,
		logger:         logger,
	}
}

// Plan is a validated move that has not been applied yet
type Plan struct {
	Placement model.Placement
	Placed    []model.PlacedTile // new tiles in placement order
	Specs     []model.TileSpec   // hand tile to spend for each entry of Placed
	Primary   board.Word
	Sides     []board.Word
	Result    model.MoveResult
}

// CoversCenter reports whether any new tile lands on the centre square
func (p *Plan) CoversCenter() bool {
	for _, pt := range p.Placed {
		if pt.Position == model.Center {
			return true
		}
	}
	return false
}

// Validate checks a placement for the current player without changing the game.
// Checks run in a fixed order and the first failure is returned.
func (e *Engine) Validate(game *model.Game, placement model.Placement) (*Plan, error) {
	player := game.CurrentPlayer()
	if player == nil {
		return nil, fmt.Errorf("%w: game has no players", model.ErrInvalidPlacement)
	}

	specs, err := e.checkShape(placement)
	if err != nil {
		return nil, err
	}
	placement.Tiles = specs

	b := game.Board
	dir := placement.Direction
	perp := dir.Perpendicular()

	// Primary line as intended, board letters before and after the span included
	intended := make(map[model.Position]model.Tile, len(specs))
	for i, spec := range specs {
		intended[placement.Anchor.Step(dir, i)] = tileFor(spec)
	}
	line := e.boardService.ExtendLine(b, intended, placement.Anchor, dir)
	singleLetter := line.Len() == 1
	if !singleLetter && !e.lexicon.IsValidWord(line.Text()) {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidWord, line.Text())
	}

	// Per cell: existing letters must agree, empty cells become demand on the hand
	plan := &Plan{Placement: placement}
	demand := make(map[model.TileSpec]int)
	placed := make(map[model.Position]model.Tile)
	touching := false
	for i, spec := range specs {
		pos := placement.Anchor.Step(dir, i)
		if existing, ok := b.Get(pos); ok {
			if existing.MatchLetter() != spec.Letter {
				return nil, fmt.Errorf("%w: %s holds %q, not %q", model.ErrLetterMismatch, pos, existing.MatchLetter(), spec.Letter)
			}
			touching = true
			continue
		}
		demand[spec]++
		tile := tileFor(spec)
		placed[pos] = tile
		plan.Placed = append(plan.Placed, model.PlacedTile{Position: pos, Tile: tile})
		plan.Specs = append(plan.Specs, spec)
		if e.boardService.Touches(b, pos) {
			touching = true
		}
	}
	if len(plan.Placed) == 0 {
		return nil, fmt.Errorf("%w: every cell of %q is already filled", model.ErrNoTilesPlaced, placement.Word())
	}

	if !player.Hand.CanSupply(demand) {
		return nil, fmt.Errorf("%w: %s holds %q", model.ErrInsufficientTiles, player.Name, player.Hand.Letters())
	}

	if game.FirstMovePending {
		if !plan.CoversCenter() {
			return nil, fmt.Errorf("%w: first move must cover %s", model.ErrDisconnected, model.Center)
		}
	} else if !touching {
		return nil, fmt.Errorf("%w: no new tile touches the board", model.ErrDisconnected)
	}

	var sideTexts []string
	for _, pt := range plan.Placed {
		side := e.boardService.ExtendWord(b, pt.Position, pt.Tile, perp)
		if side.Len() <= 1 {
			continue
		}
		plan.Sides = append(plan.Sides, side)
		sideTexts = append(sideTexts, side.Text())
	}
	if invalid := e.lexicon.InvalidWords(sideTexts); len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidWord, quoteAll(invalid))
	}
	if singleLetter && len(plan.Sides) == 0 {
		return nil, fmt.Errorf("%w: a single letter is not a word", model.ErrInvalidWord)
	}

	plan.Primary = e.boardService.ExtendLine(b, placed, placement.Anchor, dir)
	words, bingo, total := e.scoringService.ScoreMove(b, plan.Primary, plan.Sides, len(plan.Placed))
	plan.Result = model.MoveResult{
		PlayerName: player.Name,
		Placed:     plan.Placed,
		Words:      words,
		Bingo:      bingo,
		Score:      total,
	}

	return plan, nil
}

// Apply commits a plan from Validate: tiles move from hand to board, the
// hand is refilled, the score is added and the turn passes on.
// The game must not have changed since the plan was made.
func (e *Engine) Apply(game *model.Game, plan *Plan) (*model.MoveResult, error) {
	player := game.CurrentPlayer()
	for i, pt := range plan.Placed {
		tile, ok := player.Hand.Take(plan.Specs[i])
		if !ok {
			return nil, fmt.Errorf("%w: %s lost a planned tile", model.ErrInsufficientTiles, player.Name)
		}
		if err := game.Board.Place(pt.Position, tile); err != nil {
			return nil, err
		}
	}
	player.Hand.Refill(game.Bag)
	player.AddScore(plan.Result.Score)

	if plan.CoversCenter() {
		game.FirstMovePending = false
	}
	game.AdvanceTurn()

	result := plan.Result
	return &result, nil
}

// Play validates and, when legal, applies a placement in one step.
// A rejected placement leaves the game untouched.
func (e *Engine) Play(game *model.Game, placement model.Placement) (*model.MoveResult, error) {
	player := game.CurrentPlayer()
	plan, err := e.Validate(game, placement)
	if err != nil {
		e.logger.Debug("move rejected",
			slog.String("game_id", string(game.ID)),
			slog.String("word", placement.Word()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	result, err := e.Apply(game, plan)
	if err != nil {
		return nil, err
	}

	e.logger.Info("move played",
		slog.String("game_id", string(game.ID)),
		slog.String("player", player.Name),
		slog.String("word", plan.Primary.Text()),
		slog.Int("score", result.Score),
		slog.Bool("bingo", result.Bingo),
		slog.Int("board_tiles", game.Board.TileCount()),
	)

	return result, nil
}

// checkShape normalizes the tiles and makes sure the whole span fits the board
func (e *Engine) checkShape(placement model.Placement) ([]model.TileSpec, error) {
	if len(placement.Tiles) == 0 {
		return nil, fmt.Errorf("%w: empty word", model.ErrInvalidPlacement)
	}
	if !placement.Direction.Valid() {
		return nil, fmt.Errorf("%w: unknown direction %q", model.ErrInvalidPlacement, placement.Direction)
	}

	specs := make([]model.TileSpec, len(placement.Tiles))
	for i, t := range placement.Tiles {
		spec, err := t.Normalize()
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}

	if !placement.Anchor.InBounds() || !placement.End().InBounds() {
		return nil, fmt.Errorf("%w: %s to %s", model.ErrOutOfBounds, placement.Anchor, placement.End())
	}
	return specs, nil
}

// tileFor is the tile a spec becomes once on the board
func tileFor(spec model.TileSpec) model.Tile {
	if spec.Blank {
		return model.NewBlankTile().WithLetter(spec.Letter)
	}
	return model.Tile{Letter: spec.Letter}
}

// Interface for dependency injection
type EngineInterface interface {
	Validate(game *model.Game, placement model.Placement) (*Plan, error)
	Apply(game *model.Game, plan *Plan) (*model.MoveResult, error)
	Play(game *model.Game, placement model.Placement) (*model.MoveResult, error)
}

var _ EngineInterface = (*Engine)(nil)

// quoteAll renders words as a comma separated list of quoted strings
func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strconv.Quote(w)
	}
	return strings.Join(quoted, ", ")
}
