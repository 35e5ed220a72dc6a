package model

import "slices"

// TileBag is the stack of undrawn tiles. Draw pops from the end.
type TileBag struct {
	Tiles []Tile `json:"tiles"`
}

// standardDistribution is the count of each letter in a full bag
var standardDistribution = map[rune]int{
	'a': 9, 'b': 2, 'c': 2, 'd': 4, 'e': 12, 'f': 2, 'g': 3, 'h': 2, 'i': 9,
	'j': 1, 'k': 1, 'l': 4, 'm': 2, 'n': 6, 'o': 8, 'p': 2, 'q': 1, 'r': 6,
	's': 4, 't': 6, 'u': 4, 'v': 2, 'w': 2, 'x': 1, 'y': 2, 'z': 1,
}

// StandardBlankCount is the number of blanks in a full bag
const StandardBlankCount = 2

// StandardTiles returns the 100 tiles of a full bag in alphabetical order, blanks last
func StandardTiles() []Tile {
	tiles := make([]Tile, 0, 100)
	for l := 'a'; l <= 'z'; l++ {
		for i := 0; i < standardDistribution[l]; i++ {
			tiles = append(tiles, Tile{Letter: l})
		}
	}
	for i := 0; i < StandardBlankCount; i++ {
		tiles = append(tiles, NewBlankTile())
	}
	return tiles
}

// NewTileBag creates a bag holding the given tiles. The last tile is drawn first.
func NewTileBag(tiles []Tile) *TileBag {
	return &TileBag{Tiles: append([]Tile(nil), tiles...)}
}

// Shuffle permutes the bag uniformly with a Fisher-Yates pass.
// intn must return a value in [0, n).
func (b *TileBag) Shuffle(intn func(n int) int) {
	for i := len(b.Tiles) - 1; i > 0; i-- {
		j := intn(i + 1)
		b.Tiles[i], b.Tiles[j] = b.Tiles[j], b.Tiles[i]
	}
}

// Draw removes and returns the top tile
func (b *TileBag) Draw() (Tile, error) {
	if len(b.Tiles) == 0 {
		return Tile{}, ErrEmptyBag
	}
	last := len(b.Tiles) - 1
	t := b.Tiles[last]
	b.Tiles = b.Tiles[:last]
	return t, nil
}

// Remaining returns how many tiles are left to draw
func (b *TileBag) Remaining() int {
	return len(b.Tiles)
}

// Clone returns an independent copy of the bag
func (b *TileBag) Clone() *TileBag {
	return &TileBag{Tiles: slices.Clone(b.Tiles)}
}
