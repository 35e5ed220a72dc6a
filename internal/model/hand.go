package model

import (
	"errors"
	"slices"
	"strings"
	"unicode"
)

// HandSize is the number of tiles a hand is refilled to
const HandSize = 7

// Hand is the set of tiles a player holds
type Hand struct {
	Tiles []Tile `json:"tiles"`
}

// Refill draws from the bag until the hand is full or the bag runs out.
// Returns the number of tiles drawn.
func (h *Hand) Refill(bag *TileBag) int {
	drawn := 0
	for len(h.Tiles) < HandSize {
		t, err := bag.Draw()
		if errors.Is(err, ErrEmptyBag) {
			break
		}
		h.Tiles = append(h.Tiles, t)
		drawn++
	}
	return drawn
}

// Size returns the number of tiles held
func (h *Hand) Size() int {
	return len(h.Tiles)
}

// CountOf counts the tiles that read as the given letter
func (h *Hand) CountOf(letter rune) int {
	l := unicode.ToLower(letter)
	count := 0
	for _, t := range h.Tiles {
		if t.MatchLetter() == l {
			count++
		}
	}
	return count
}

// Take removes the first tile that can serve the spec.
// A regular spec takes a regular tile of that letter. A blank spec takes a
// blank already showing the letter, else any undesignated blank, which is
// assigned the letter.
func (h *Hand) Take(spec TileSpec) (Tile, bool) {
	letter := unicode.ToLower(spec.Letter)

	if !spec.Blank {
		for i, t := range h.Tiles {
			if !t.Blank && t.Letter == letter {
				return h.removeAt(i), true
			}
		}
		return Tile{}, false
	}

	for i, t := range h.Tiles {
		if t.Blank && t.Letter == letter {
			return h.removeAt(i), true
		}
	}
	for i, t := range h.Tiles {
		if t.Blank && !t.Designated() {
			return h.removeAt(i).WithLetter(letter), true
		}
	}
	return Tile{}, false
}

// CanSupply reports whether the hand holds enough tiles to serve every spec in demand
func (h *Hand) CanSupply(demand map[TileSpec]int) bool {
	regular := make(map[rune]int)
	assignedBlanks := make(map[rune]int)
	freeBlanks := 0
	for _, t := range h.Tiles {
		switch {
		case !t.Blank:
			regular[t.Letter]++
		case t.Designated():
			assignedBlanks[t.Letter]++
		default:
			freeBlanks++
		}
	}

	for spec, n := range demand {
		letter := unicode.ToLower(spec.Letter)
		if !spec.Blank {
			if regular[letter] < n {
				return false
			}
			continue
		}
		short := n - assignedBlanks[letter]
		if short > 0 {
			freeBlanks -= short
			if freeBlanks < 0 {
				return false
			}
		}
	}
	return true
}

// Letters renders the hand as a string, '?' for an undesignated blank
func (h *Hand) Letters() string {
	var sb strings.Builder
	for _, t := range h.Tiles {
		if t.Designated() {
			sb.WriteRune(t.Letter)
		} else {
			sb.WriteRune('?')
		}
	}
	return sb.String()
}

// Clone returns an independent copy of the hand
func (h *Hand) Clone() Hand {
	return Hand{Tiles: slices.Clone(h.Tiles)}
}

func (h *Hand) removeAt(i int) Tile {
	t := h.Tiles[i]
	h.Tiles = append(h.Tiles[:i], h.Tiles[i+1:]...)
	return t
}
