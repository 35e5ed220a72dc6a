package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BingoBonus is awarded when a single move uses every tile of a full hand
const BingoBonus = 50

// Placement is a proposed move: the full word read from Anchor along
// Direction, including letters already on the board.
type Placement struct {
	Anchor    Position   `json:"anchor"`
	Direction Direction  `json:"direction"`
	Tiles     []TileSpec `json:"tiles"`
}

// NewPlacement builds a placement from a plain word, marking the given indices as blanks
func NewPlacement(anchor Position, dir Direction, word string, blanks ...int) (Placement, error) {
	specs, err := SpecsFromWord(word, blanks...)
	if err != nil {
		return Placement{}, err
	}
	return Placement{Anchor: anchor, Direction: dir, Tiles: specs}, nil
}

// Word returns the placement's letters as a string
func (p Placement) Word() string {
	var sb strings.Builder
	for _, s := range p.Tiles {
		sb.WriteRune(s.Letter)
	}
	return sb.String()
}

// End returns the position of the last letter in the placement
func (p Placement) End() Position {
	if len(p.Tiles) == 0 {
		return p.Anchor
	}
	return p.Anchor.Step(p.Direction, len(p.Tiles)-1)
}

// PlacedTile is a tile that a move put onto the board
type PlacedTile struct {
	Position Position `json:"position"`
	Tile     Tile     `json:"tile"`
}

// BoardWord is a run of letters on the board
type BoardWord struct {
	Word      string    `json:"word"`
	Start     Position  `json:"start"`
	Direction Direction `json:"direction"`
}

// ScoredWord is a word formed by a move together with its points
type ScoredWord struct {
	BoardWord
	Score   int  `json:"score"`
	Primary bool `json:"primary"`
}

// MoveResult describes an accepted move
type MoveResult struct {
	PlayerName string       `json:"player_name"`
	Placed     []PlacedTile `json:"placed"`
	Words      []ScoredWord `json:"words"`
	Bingo      bool         `json:"bingo"`
	Score      int          `json:"score"`
}

// MoveKind distinguishes entries in the move log
type MoveKind string

const (
	MoveKindPlay MoveKind = "play"
	MoveKindSkip MoveKind = "skip"
)

// MoveRecord is one entry in a game's move log
type MoveRecord struct {
	ID         string    `json:"id"`
	Kind       MoveKind  `json:"kind"`
	PlayerName string    `json:"player_name"`
	Words      []string  `json:"words,omitempty"`
	Score      int       `json:"score"`
	PlayedAt   time.Time `json:"played_at"`
}

// NewPlayRecord logs an accepted move
func NewPlayRecord(result MoveResult, at time.Time) MoveRecord {
	words := make([]string, len(result.Words))
	for i, w := range result.Words {
		words[i] = w.Word
	}
	return MoveRecord{
		ID:         uuid.NewString(),
		Kind:       MoveKindPlay,
		PlayerName: result.PlayerName,
		Words:      words,
		Score:      result.Score,
		PlayedAt:   at,
	}
}

// NewSkipRecord logs a passed turn
func NewSkipRecord(playerName string, at time.Time) MoveRecord {
	return MoveRecord{
		ID:         uuid.NewString(),
		Kind:       MoveKindSkip,
		PlayerName: playerName,
		PlayedAt:   at,
	}
}
