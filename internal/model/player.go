package model

// Player is a seat at the table: a name, the tiles held and the running score
type Player struct {
	Name  string `json:"name"`
	Hand  Hand   `json:"hand"`
	Score int    `json:"score"`
}

// NewPlayer creates a player with an empty hand and zero score
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// AddScore adds points to the player's score. Negative amounts are ignored.
func (p *Player) AddScore(points int) {
	if points > 0 {
		p.Score += points
	}
}

// Clone returns an independent copy of the player
func (p *Player) Clone() *Player {
	return &Player{Name: p.Name, Hand: p.Hand.Clone(), Score: p.Score}
}
