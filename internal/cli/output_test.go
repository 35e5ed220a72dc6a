package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBoard(t *testing.T) {
	board := Board{
		Tiles:    []string{"ab.", "...", "..C"},
		Premiums: []string{"T.d", ".Dt", "..."},
	}

	lines := strings.Split(strings.TrimRight(formatBoard(board), "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "     0  1  2 ", lines[0])
	assert.Equal(t, "   +---------+", lines[1])
	assert.Equal(t, " 0 | A  B 2L |", lines[2])
	assert.Equal(t, " 1 | . 2W 3L |", lines[3])
	assert.Equal(t, " 2 | .  .  c |", lines[4])
	assert.Equal(t, "   +---------+", lines[5])
}

func TestFormatBoardEmpty(t *testing.T) {
	assert.Empty(t, formatBoard(Board{}))
}

func TestFormatScores(t *testing.T) {
	winner := "Bob"
	out := formatScores(Scores{
		Standings:     []Standing{{Rank: 1, Name: "Bob", Score: 23}, {Rank: 2, Name: "Ann", Score: 21}},
		Winner:        &winner,
		CurrentPlayer: "Ann",
	})

	assert.Equal(t, "1. Bob: 23\n2. Ann: 21\nLeader: Bob\nTo play: Ann\n", out)

	out = formatScores(Scores{Standings: []Standing{{Rank: 1, Name: "Ann"}, {Rank: 1, Name: "Bob"}}})
	assert.Contains(t, out, "Tied")
}

func TestFormatGameMarksCurrentPlayer(t *testing.T) {
	out := formatGame(Game{
		ID:            "G1",
		Players:       []Player{{Name: "Ann", Score: 9, TileCount: 7}, {Name: "Bob", TileCount: 7}},
		CurrentPlayer: "Bob",
		Hand:          Hand{Player: "Bob", Tiles: []string{"A", "?"}},
		Moves:         []Move{{Kind: "play", Player: "Ann", Words: []string{"hello"}, Score: 9}},
	})

	assert.Contains(t, out, "   Ann: 9 points (7 tiles)")
	assert.Contains(t, out, " * Bob: 0 points (7 tiles)")
	assert.Contains(t, out, "Hand (Bob): A ?")
	assert.Contains(t, out, "Last move: Ann played hello for 9")
}
