package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			errData["error"] = apiErr
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		fmt.Print(formatGame(v))
	case MoveResult:
		fmt.Print(formatMoveResult(v))
	case Hand:
		fmt.Print(formatHand(v))
	case Scores:
		fmt.Print(formatScores(v))
	case Cell:
		fmt.Printf("(%d,%d) premium: %s\n", v.X, v.Y, v.Premium)
		if v.Letter != "" {
			fmt.Printf("tile: %s\n", tileLabel(v.Letter, v.Blank))
		}
	case GameList:
		if len(v.Games) == 0 {
			fmt.Println("No games")
		}
		for _, id := range v.Games {
			fmt.Println(id)
		}
	case HealthResult:
		fmt.Printf("Status: %s (%d words)\n", v.Status, v.Words)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	TileCount int    `json:"tile_count"`
}

// Hand response type
type Hand struct {
	Player string   `json:"player"`
	Tiles  []string `json:"tiles"`
}

// Board response type
type Board struct {
	Tiles    []string `json:"tiles"`
	Premiums []string `json:"premiums"`
}

// Move response type
type Move struct {
	ID     string   `json:"id"`
	Kind   string   `json:"kind"`
	Player string   `json:"player"`
	Words  []string `json:"words,omitempty"`
	Score  int      `json:"score"`
}

// Game response type
type Game struct {
	ID            string   `json:"id"`
	Version       string   `json:"version"`
	Players       []Player `json:"players"`
	CurrentPlayer string   `json:"current_player"`
	FirstMove     bool     `json:"first_move"`
	BagRemaining  int      `json:"bag_remaining"`
	Board         Board    `json:"board"`
	Hand          Hand     `json:"hand"`
	Moves         []Move   `json:"moves"`
}

// GameList response type
type GameList struct {
	Games []string `json:"games"`
}

// Word response type
type Word struct {
	Word      string `json:"word"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
	Score     int    `json:"score"`
	Primary   bool   `json:"primary,omitempty"`
}

// MoveResult response type
type MoveResult struct {
	Player string `json:"player"`
	Words  []Word `json:"words"`
	Bingo  bool   `json:"bingo,omitempty"`
	Score  int    `json:"score"`
	Game   Game   `json:"game"`
}

// Standing response type
type Standing struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Scores response type
type Scores struct {
	Standings     []Standing `json:"standings"`
	Winner        *string    `json:"winner"`
	CurrentPlayer string     `json:"current_player"`
}

// Cell response type
type Cell struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Letter  string `json:"letter,omitempty"`
	Blank   bool   `json:"blank,omitempty"`
	Premium string `json:"premium"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Words  int    `json:"words"`
}

func tileLabel(letter string, blank bool) string {
	if blank {
		return strings.ToUpper(letter) + " (blank)"
	}
	return strings.ToUpper(letter)
}

func formatGame(g Game) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Game: %s\n", g.ID)
	fmt.Fprintf(&sb, "Version: %s\n", g.Version)
	if g.FirstMove {
		sb.WriteString("Opening move: must cover the centre square\n")
	}
	fmt.Fprintf(&sb, "Tiles in bag: %d\n", g.BagRemaining)

	sb.WriteString("Players:\n")
	for _, p := range g.Players {
		marker := " "
		if p.Name == g.CurrentPlayer {
			marker = "*"
		}
		fmt.Fprintf(&sb, " %s %s: %d points (%d tiles)\n", marker, p.Name, p.Score, p.TileCount)
	}

	sb.WriteString("\n")
	sb.WriteString(formatBoard(g.Board))
	sb.WriteString("\n")
	sb.WriteString(formatHand(g.Hand))

	if len(g.Moves) > 0 {
		last := g.Moves[len(g.Moves)-1]
		if last.Kind == "skip" {
			fmt.Fprintf(&sb, "Last move: %s skipped\n", last.Player)
		} else {
			fmt.Fprintf(&sb, "Last move: %s played %s for %d\n", last.Player, strings.Join(last.Words, ", "), last.Score)
		}
	}
	return sb.String()
}

// formatBoard draws the board. Empty squares show their premium:
// 3W/2W triple/double word, 3L/2L triple/double letter.
// Blank tiles are shown in lowercase.
func formatBoard(b Board) string {
	if len(b.Tiles) == 0 {
		return ""
	}
	size := len(b.Tiles)

	var sb strings.Builder
	border := "   +" + strings.Repeat("---", size) + "+\n"

	sb.WriteString("    ")
	for x := 0; x < size; x++ {
		fmt.Fprintf(&sb, "%2d ", x)
	}
	sb.WriteString("\n")
	sb.WriteString(border)

	for y := 0; y < size; y++ {
		fmt.Fprintf(&sb, "%2d |", y)
		for x := 0; x < size; x++ {
			sb.WriteString(cellLabel(b, x, y))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

func cellLabel(b Board, x, y int) string {
	tile := b.Tiles[y][x]
	switch {
	case tile >= 'a' && tile <= 'z':
		return " " + strings.ToUpper(string(tile)) + " "
	case tile >= 'A' && tile <= 'Z':
		return " " + strings.ToLower(string(tile)) + " "
	}

	var premium byte = '.'
	if y < len(b.Premiums) && x < len(b.Premiums[y]) {
		premium = b.Premiums[y][x]
	}
	switch premium {
	case 'T':
		return "3W "
	case 'D':
		return "2W "
	case 't':
		return "3L "
	case 'd':
		return "2L "
	default:
		return " . "
	}
}

func formatHand(h Hand) string {
	return fmt.Sprintf("Hand (%s): %s\n", h.Player, strings.Join(h.Tiles, " "))
}

func formatMoveResult(m MoveResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s scored %d\n", m.Player, m.Score)
	for _, w := range m.Words {
		fmt.Fprintf(&sb, "  %s (%d,%d %s): %d\n", w.Word, w.X, w.Y, w.Direction, w.Score)
	}
	if m.Bingo {
		sb.WriteString("  Bingo! All seven tiles used\n")
	}
	sb.WriteString("\n")
	sb.WriteString(formatGame(m.Game))
	return sb.String()
}

func formatScores(s Scores) string {
	var sb strings.Builder
	for _, st := range s.Standings {
		fmt.Fprintf(&sb, "%d. %s: %d\n", st.Rank, st.Name, st.Score)
	}
	if s.Winner != nil {
		fmt.Fprintf(&sb, "Leader: %s\n", *s.Winner)
	} else {
		sb.WriteString("Tied\n")
	}
	fmt.Fprintf(&sb, "To play: %s\n", s.CurrentPlayer)
	return sb.String()
}
