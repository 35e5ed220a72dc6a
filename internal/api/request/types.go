package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Players []string `json:"players"`
}

// MoveRequest is the request body for playing a word.
// Word is the full word read from (X, Y), including letters already on the board.
// Blanks lists the indices within Word that are played from a blank tile.
type MoveRequest struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
	Word      string `json:"word"`
	Blanks    []int  `json:"blanks,omitempty"`
}

// ResetRequest is the request body for resetting a game
type ResetRequest struct {
	KeepScores bool `json:"keep_scores"`
}
