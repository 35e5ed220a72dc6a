package scoring

import (
	"sort"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/services/board"
)

// Service provides scoring arithmetic for moves and final standings
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// ScoreWord scores a word against the board's premium squares.
// Every letter counts at face value. Letter premiums apply only under newly
// placed tiles, and the word premiums of newly covered squares multiply together.
func (s *Service) ScoreWord(b *model.Board, word board.Word) int {
	sum := 0
	multiplier := 1
	for _, c := range word.Cells {
		value := c.Tile.Score()
		if c.New {
			premium := b.Premium(c.Position)
			value *= premium.LetterMultiplier()
			multiplier *= premium.WordMultiplier()
		}
		sum += value
	}
	return sum * multiplier
}

// ScoreMove scores a whole move: the primary word, every side word longer
// than one letter, and the bingo bonus when a full hand is placed.
// The primary word scores nothing when it is a single letter.
func (s *Service) ScoreMove(b *model.Board, primary board.Word, sides []board.Word, tilesPlaced int) ([]model.ScoredWord, bool, int) {
	var scored []model.ScoredWord
	total := 0

	if primary.Len() > 1 {
		points := s.ScoreWord(b, primary)
		scored = append(scored, model.ScoredWord{BoardWord: primary.BoardWord(), Score: points, Primary: true})
		total += points
	}

	for _, side := range sides {
		if side.Len() <= 1 {
			continue
		}
		points := s.ScoreWord(b, side)
		scored = append(scored, model.ScoredWord{BoardWord: side.BoardWord(), Score: points})
		total += points
	}

	bingo := tilesPlaced == model.HandSize
	if bingo {
		total += model.BingoBonus
	}

	return scored, bingo, total
}

// Standing is a player's place in the score table
type Standing struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Rank  int    `json:"rank"` // 1-based, tied players share a rank
}

// RankPlayers returns players ordered by score descending.
// Ties keep seat order.
func (s *Service) RankPlayers(players []*model.Player) []Standing {
	standings := make([]Standing, len(players))
	for i, p := range players {
		standings[i] = Standing{Name: p.Name, Score: p.Score}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	for i := range standings {
		if i > 0 && standings[i].Score == standings[i-1].Score {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}
	}

	return standings
}

// DetermineWinner returns the leader's name, or empty string if tie
func (s *Service) DetermineWinner(standings []Standing) string {
	if len(standings) == 0 {
		return ""
	}

	topScore := standings[0].Score
	tieCount := 0
	for _, st := range standings {
		if st.Score == topScore {
			tieCount++
		}
	}

	if tieCount > 1 {
		return "" // Tie
	}

	return standings[0].Name
}

// Interface for dependency injection
type ServiceInterface interface {
	ScoreWord(b *model.Board, word board.Word) int
	ScoreMove(b *model.Board, primary board.Word, sides []board.Word, tilesPlaced int) ([]model.ScoredWord, bool, int)
	RankPlayers(players []*model.Player) []Standing
	DetermineWinner(standings []Standing) string
}

var _ ServiceInterface = (*Service)(nil)
