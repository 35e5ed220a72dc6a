package response

import (
	"strings"
	"time"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/services/game"
)

// Player represents a seated player in API responses
type Player struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	TileCount int    `json:"tile_count"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Name:      p.Name,
		Score:     p.Score,
		TileCount: p.Hand.Size(),
	}
}

// Hand represents a player's rack. Blanks are shown as "?".
type Hand struct {
	Player string   `json:"player"`
	Tiles  []string `json:"tiles"`
}

// HandFromModel converts a player's hand
func HandFromModel(p *model.Player) Hand {
	tiles := make([]string, len(p.Hand.Tiles))
	for i, t := range p.Hand.Tiles {
		tiles[i] = t.String()
	}
	return Hand{Player: p.Name, Tiles: tiles}
}

// Board represents the board as text rows.
// Tiles: "." is empty, lowercase is a regular tile, uppercase is a blank playing that letter.
// Premiums: "." normal, "d" double letter, "t" triple letter, "D" double word, "T" triple word.
type Board struct {
	Tiles    []string `json:"tiles"`
	Premiums []string `json:"premiums"`
}

// BoardFromModel converts model.Board to response Board
func BoardFromModel(b *model.Board) Board {
	tiles := make([]string, model.BoardSize)
	premiums := make([]string, model.BoardSize)
	for y := 0; y < model.BoardSize; y++ {
		var tileRow, premiumRow strings.Builder
		for x := 0; x < model.BoardSize; x++ {
			pos := model.Position{X: x, Y: y}
			tileRow.WriteByte(TileChar(b, pos))
			premiumRow.WriteByte(PremiumChar(b.Premium(pos)))
		}
		tiles[y] = tileRow.String()
		premiums[y] = premiumRow.String()
	}
	return Board{Tiles: tiles, Premiums: premiums}
}

// TileChar is the board-row character for a cell
func TileChar(b *model.Board, pos model.Position) byte {
	tile, ok := b.Get(pos)
	if !ok {
		return '.'
	}
	if tile.Blank {
		return byte(tile.Letter) - 'a' + 'A'
	}
	return byte(tile.Letter)
}

// PremiumChar is the board-row character for a premium square
func PremiumChar(p model.Premium) byte {
	switch p {
	case model.PremiumDoubleLetter:
		return 'd'
	case model.PremiumTripleLetter:
		return 't'
	case model.PremiumDoubleWord:
		return 'D'
	case model.PremiumTripleWord:
		return 'T'
	default:
		return '.'
	}
}

// Word is a word formed by a move
type Word struct {
	Word      string `json:"word"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
	Score     int    `json:"score"`
	Primary   bool   `json:"primary,omitempty"`
}

// WordFromModel converts model.ScoredWord
func WordFromModel(w model.ScoredWord) Word {
	return Word{
		Word:      w.Word,
		X:         w.Start.X,
		Y:         w.Start.Y,
		Direction: string(w.Direction),
		Score:     w.Score,
		Primary:   w.Primary,
	}
}

// Move is an entry in the move log
type Move struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Player   string    `json:"player"`
	Words    []string  `json:"words,omitempty"`
	Score    int       `json:"score"`
	PlayedAt time.Time `json:"played_at"`
}

// MoveFromModel converts model.MoveRecord
func MoveFromModel(m model.MoveRecord) Move {
	return Move{
		ID:       m.ID,
		Kind:     string(m.Kind),
		Player:   m.PlayerName,
		Words:    m.Words,
		Score:    m.Score,
		PlayedAt: m.PlayedAt,
	}
}

// Game represents the full state of a game
type Game struct {
	ID            string    `json:"id"`
	Version       string    `json:"version"` // same value as the ETag header
	Players       []Player  `json:"players"`
	CurrentPlayer string    `json:"current_player"`
	FirstMove     bool      `json:"first_move"`
	BagRemaining  int       `json:"bag_remaining"`
	Board         Board     `json:"board"`
	Hand          Hand      `json:"hand"`
	Moves         []Move    `json:"moves"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GameFromModel converts model.Game to response Game.
// Only the current player's hand is included.
func GameFromModel(g *model.Game) Game {
	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerFromModel(p)
	}

	moves := make([]Move, len(g.Moves))
	for i, m := range g.Moves {
		moves[i] = MoveFromModel(m)
	}

	// Fingerprint only fails if the game cannot be encoded
	version, _ := g.Fingerprint()

	current := g.CurrentPlayer()
	return Game{
		ID:            string(g.ID),
		Version:       version,
		Players:       players,
		CurrentPlayer: current.Name,
		FirstMove:     g.FirstMovePending,
		BagRemaining:  g.Bag.Remaining(),
		Board:         BoardFromModel(g.Board),
		Hand:          HandFromModel(current),
		Moves:         moves,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []string `json:"games"`
}

// Cell represents one board square
type Cell struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Letter  string `json:"letter,omitempty"`
	Blank   bool   `json:"blank,omitempty"`
	Premium string `json:"premium"`
}

// CellFromController converts game.Cell
func CellFromController(c *game.Cell) Cell {
	cell := Cell{
		X:       c.Position.X,
		Y:       c.Position.Y,
		Premium: c.Premium.String(),
	}
	if c.Tile != nil {
		cell.Letter = string(c.Tile.Letter)
		cell.Blank = c.Tile.Blank
	}
	return cell
}

// Standing is one row of the score table
type Standing struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Scores is the ranked score table
type Scores struct {
	Standings     []Standing `json:"standings"`
	Winner        *string    `json:"winner"` // null on a tie
	CurrentPlayer string     `json:"current_player"`
}

// ScoresFromController converts game.Scoreboard
func ScoresFromController(s *game.Scoreboard) Scores {
	standings := make([]Standing, len(s.Standings))
	for i, st := range s.Standings {
		standings[i] = Standing{Rank: st.Rank, Name: st.Name, Score: st.Score}
	}
	var winner *string
	if s.Winner != "" {
		w := s.Winner
		winner = &w
	}
	return Scores{
		Standings:     standings,
		Winner:        winner,
		CurrentPlayer: s.CurrentPlayer,
	}
}

// MoveResponse is the response after an accepted move
type MoveResponse struct {
	Player string `json:"player"`
	Words  []Word `json:"words"`
	Bingo  bool   `json:"bingo,omitempty"`
	Score  int    `json:"score"`
	Game   Game   `json:"game"`
}

// MoveResponseFromModel converts a move result and the resulting game
func MoveResponseFromModel(result *model.MoveResult, g *model.Game) MoveResponse {
	words := make([]Word, len(result.Words))
	for i, w := range result.Words {
		words[i] = WordFromModel(w)
	}
	return MoveResponse{
		Player: result.PlayerName,
		Words:  words,
		Bingo:  result.Bingo,
		Score:  result.Score,
		Game:   GameFromModel(g),
	}
}
