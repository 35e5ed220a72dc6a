package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrabble-go2/internal/model"
)

// PlaceWord puts regular tiles for word onto the board starting at start.
// A '.' in word leaves that cell untouched.
func PlaceWord(t testing.TB, board *model.Board, start model.Position, dir model.Direction, word string) {
	t.Helper()
	for i, r := range word {
		if r == '.' {
			continue
		}
		tile, err := model.NewTile(r)
		require.NoError(t, err)
		require.NoError(t, board.Place(start.Step(dir, i), tile))
	}
}

// HandOf builds a hand from letters, '?' for an undesignated blank
func HandOf(letters string) model.Hand {
	var h model.Hand
	for _, r := range letters {
		if r == '?' {
			h.Tiles = append(h.Tiles, model.NewBlankTile())
			continue
		}
		tile, err := model.NewTile(r)
		if err != nil {
			panic(err)
		}
		h.Tiles = append(h.Tiles, tile)
	}
	return h
}
