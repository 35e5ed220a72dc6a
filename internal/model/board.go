package model

import "fmt"

// Board is the 15x15 grid of placed tiles with its premium squares.
//
// Reads are forgiving: Get, IsEmpty and Premium treat any position off the
// board as an empty normal square. Word scanning walks off the edges and
// relies on this. Place is strict.
type Board struct {
	Cells    [BoardSize][BoardSize]*Tile   `json:"cells"`    // Cells[y][x], nil means empty
	Premiums [BoardSize][BoardSize]Premium `json:"premiums"` // Premiums[y][x]
}

// NewBoard creates an empty board with the given premium layout (nil for none)
func NewBoard(layout Layout) *Board {
	b := &Board{}
	b.SetPremiumLayout(layout)
	return b
}

// Place puts a tile on an empty cell
func (b *Board) Place(pos Position, tile Tile) error {
	if !pos.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	if existing := b.Cells[pos.Y][pos.X]; existing != nil {
		return fmt.Errorf("%w: %s holds %s", ErrCellOccupied, pos, existing)
	}
	t := tile
	b.Cells[pos.Y][pos.X] = &t
	return nil
}

// Get returns the tile at the position, or false if the cell is empty or off the board
func (b *Board) Get(pos Position) (Tile, bool) {
	if !pos.InBounds() {
		return Tile{}, false
	}
	t := b.Cells[pos.Y][pos.X]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// IsEmpty returns true if the cell holds no tile. Off-board cells are empty.
func (b *Board) IsEmpty(pos Position) bool {
	_, ok := b.Get(pos)
	return !ok
}

// Premium returns the premium of the square, normal when off the board
func (b *Board) Premium(pos Position) Premium {
	if !pos.InBounds() {
		return PremiumNormal
	}
	return b.Premiums[pos.Y][pos.X]
}

// SetPremiumLayout replaces every premium square with the given layout
func (b *Board) SetPremiumLayout(layout Layout) {
	b.Premiums = [BoardSize][BoardSize]Premium{}
	for pos, p := range layout {
		if pos.InBounds() {
			b.Premiums[pos.Y][pos.X] = p
		}
	}
}

// TileCount returns the number of occupied cells
func (b *Board) TileCount() int {
	count := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.Cells[y][x] != nil {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	c := &Board{Premiums: b.Premiums}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if t := b.Cells[y][x]; t != nil {
				tile := *t
				c.Cells[y][x] = &tile
			}
		}
	}
	return c
}
