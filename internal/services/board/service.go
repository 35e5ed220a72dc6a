package board

import (
	"strings"

	"github.com/mcoot/scrabble-go2/internal/model"
)

// WordCell is one letter of a word read off the board
type WordCell struct {
	Position model.Position
	Tile     model.Tile
	New      bool // placed by the move being considered
}

// Word is a maximal run of letters along one axis
type Word struct {
	Start     model.Position
	Direction model.Direction
	Cells     []WordCell
}

// Text returns the word's letters
func (w Word) Text() string {
	var sb strings.Builder
	for _, c := range w.Cells {
		sb.WriteRune(c.Tile.MatchLetter())
	}
	return sb.String()
}

// Len returns the number of letters
func (w Word) Len() int {
	return len(w.Cells)
}

// NewCount returns how many of the word's letters are newly placed
func (w Word) NewCount() int {
	n := 0
	for _, c := range w.Cells {
		if c.New {
			n++
		}
	}
	return n
}

// BoardWord converts to the model representation
func (w Word) BoardWord() model.BoardWord {
	return model.BoardWord{Word: w.Text(), Start: w.Start, Direction: w.Direction}
}

// Service reconstructs words from the board
type Service struct{}

// New creates a new BoardService
func New() *Service {
	return &Service{}
}

// ExtendWord reads the word through pos along dir as if tile stood at pos.
// It scans backwards then forwards, consuming contiguous occupied cells up
// to the board edge or the first empty cell.
func (s *Service) ExtendWord(board *model.Board, pos model.Position, tile model.Tile, dir model.Direction) Word {
	return s.ExtendLine(board, map[model.Position]model.Tile{pos: tile}, pos, dir)
}

// ExtendLine is ExtendWord for several proposed tiles at once. Cells in
// placed are read as newly placed tiles; all others come from the board.
func (s *Service) ExtendLine(board *model.Board, placed map[model.Position]model.Tile, pos model.Position, dir model.Direction) Word {
	at := func(p model.Position) (model.Tile, bool, bool) {
		if t, ok := placed[p]; ok {
			return t, true, true
		}
		t, ok := board.Get(p)
		return t, ok, false
	}

	start := pos
	for {
		prev := start.Step(dir, -1)
		if _, ok, _ := at(prev); !ok {
			break
		}
		start = prev
	}

	word := Word{Start: start, Direction: dir}
	for p := start; ; p = p.Step(dir, 1) {
		t, ok, isNew := at(p)
		if !ok {
			break
		}
		word.Cells = append(word.Cells, WordCell{Position: p, Tile: t, New: isNew})
	}
	return word
}

// Touches reports whether any orthogonal neighbour of pos holds a tile
func (s *Service) Touches(board *model.Board, pos model.Position) bool {
	for _, n := range pos.Neighbors() {
		if !board.IsEmpty(n) {
			return true
		}
	}
	return false
}

// Interface for dependency injection
type ServiceInterface interface {
	ExtendWord(board *model.Board, pos model.Position, tile model.Tile, dir model.Direction) Word
	ExtendLine(board *model.Board, placed map[model.Position]model.Tile, pos model.Position, dir model.Direction) Word
	Touches(board *model.Board, pos model.Position) bool
}

var _ ServiceInterface = (*Service)(nil)
