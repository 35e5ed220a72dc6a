package model

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"golang.org/x/crypto/blake2b"
)

// GameID uniquely identifies a game
type GameID string

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Game is a single session: the board, the shared bag and the seated players.
// The player list is fixed for the lifetime of the game.
type Game struct {
	ID      GameID    `json:"id"`
	Board   *Board    `json:"board"`
	Bag     *TileBag  `json:"bag"`
	Players []*Player `json:"players"`

	// Turn management
	CurrentPlayerIdx int  `json:"current_player_idx"`
	FirstMovePending bool `json:"first_move_pending"` // true until an accepted move covers the centre

	// Moves played so far, oldest first
	Moves []MoveRecord `json:"moves"`

	// Timing
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGame seats the named players, deals their hands from the bag in seat
// order and leaves the first player to move.
func NewGame(id GameID, names []string, layout Layout, bag *TileBag, now time.Time) (*Game, error) {
	if len(names) < MinPlayers {
		return nil, fmt.Errorf("%w: need at least %d, got %d", ErrInsufficientPlayers, MinPlayers, len(names))
	}
	if len(names) > MaxPlayers {
		return nil, fmt.Errorf("%w: at most %d, got %d", ErrTooManyPlayers, MaxPlayers, len(names))
	}

	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = NewPlayer(name)
		players[i].Hand.Refill(bag)
	}

	return &Game{
		ID:               id,
		Board:            NewBoard(layout),
		Bag:              bag,
		Players:          players,
		CurrentPlayerIdx: 0,
		FirstMovePending: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.CurrentPlayerIdx]
}

// AdvanceTurn passes the turn to the next player in seat order
func (g *Game) AdvanceTurn() {
	if len(g.Players) == 0 {
		return
	}
	g.CurrentPlayerIdx = (g.CurrentPlayerIdx + 1) % len(g.Players)
}

// PlayerNames returns the seated player names in order
func (g *Game) PlayerNames() []string {
	names := make([]string, len(g.Players))
	for i, p := range g.Players {
		names[i] = p.Name
	}
	return names
}

// Clone returns a deep copy of the game, suitable as an undo snapshot
func (g *Game) Clone() *Game {
	c := *g
	if g.Board != nil {
		c.Board = g.Board.Clone()
	}
	if g.Bag != nil {
		c.Bag = g.Bag.Clone()
	}
	c.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		c.Players[i] = p.Clone()
	}
	c.Moves = slices.Clone(g.Moves)
	return &c
}

// Fingerprint is a short digest of the full game state.
// Any change to the board, bag, hands, scores or turn changes it.
func (g *Game) Fingerprint() (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("failed to encode game: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:16]), nil
}
