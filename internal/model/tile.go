package model

import (
	"encoding/json"
	"fmt"
	"unicode"
)

// Tile is a single lettered piece. Blank tiles carry no letter until the
// player designates one, and always score zero.
type Tile struct {
	Letter rune // 'a'..'z', 0 for an undesignated blank
	Blank  bool
}

// tileJSON is the wire form shared by Tile and TileSpec: letters travel as strings
type tileJSON struct {
	Letter string `json:"letter,omitempty"`
	Blank  bool   `json:"blank,omitempty"`
}

func encodeLetter(letter rune) string {
	if letter == 0 {
		return ""
	}
	return string(letter)
}

func decodeLetter(s string) (rune, error) {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return 0, nil
	case 1:
		return NormalizeLetter(runes[0])
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLetter, s)
	}
}

// MarshalJSON implements json.Marshaler
func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(tileJSON{Letter: encodeLetter(t.Letter), Blank: t.Blank})
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Tile) UnmarshalJSON(data []byte) error {
	var raw tileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	letter, err := decodeLetter(raw.Letter)
	if err != nil {
		return err
	}
	*t = Tile{Letter: letter, Blank: raw.Blank}
	return nil
}

var letterScores = [26]int{
	// a  b  c  d  e  f  g  h  i  j  k  l  m
	1, 3, 3, 2, 1, 4, 2, 4, 1, 8, 5, 1, 3,
	// n o  p  q   r  s  t  u  v  w  x  y  z
	1, 1, 3, 10, 1, 1, 1, 1, 4, 4, 8, 4, 10,
}

// NewTile creates a regular lettered tile
func NewTile(letter rune) (Tile, error) {
	l, err := NormalizeLetter(letter)
	if err != nil {
		return Tile{}, err
	}
	return Tile{Letter: l}, nil
}

// NewBlankTile creates an undesignated blank
func NewBlankTile() Tile {
	return Tile{Blank: true}
}

// NormalizeLetter lowercases a letter and rejects anything outside a-z
func NormalizeLetter(letter rune) (rune, error) {
	l := unicode.ToLower(letter)
	if l < 'a' || l > 'z' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLetter, letter)
	}
	return l, nil
}

// LetterScore returns the face value of a regular tile showing the letter
func LetterScore(letter rune) int {
	l := unicode.ToLower(letter)
	if l < 'a' || l > 'z' {
		return 0
	}
	return letterScores[l-'a']
}

// Score is the tile's point value. Blanks are worth 0 whatever they display.
func (t Tile) Score() int {
	if t.Blank {
		return 0
	}
	return LetterScore(t.Letter)
}

// MatchLetter is the letter the tile reads as in a word
func (t Tile) MatchLetter() rune {
	return t.Letter
}

// Designated reports whether the tile shows a letter (always true for regular tiles)
func (t Tile) Designated() bool {
	return t.Letter != 0
}

// WithLetter returns a copy of a blank showing the given letter.
// Regular tiles are returned unchanged.
func (t Tile) WithLetter(letter rune) Tile {
	if !t.Blank {
		return t
	}
	t.Letter = unicode.ToLower(letter)
	return t
}

// Spec returns the TileSpec that identifies this tile
func (t Tile) Spec() TileSpec {
	return TileSpec{Letter: t.Letter, Blank: t.Blank}
}

func (t Tile) String() string {
	if !t.Designated() {
		return "?"
	}
	if t.Blank {
		return string(unicode.ToUpper(t.Letter)) + "*"
	}
	return string(unicode.ToUpper(t.Letter))
}

// TileSpec describes a tile a player intends to play: a letter, and whether
// the letter is supplied by a blank.
type TileSpec struct {
	Letter rune
	Blank  bool
}

// MarshalJSON implements json.Marshaler
func (s TileSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(tileJSON{Letter: encodeLetter(s.Letter), Blank: s.Blank})
}

// UnmarshalJSON implements json.Unmarshaler
func (s *TileSpec) UnmarshalJSON(data []byte) error {
	var raw tileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	letter, err := decodeLetter(raw.Letter)
	if err != nil {
		return err
	}
	*s = TileSpec{Letter: letter, Blank: raw.Blank}
	return nil
}

// Normalize lowercases the letter and validates it
func (s TileSpec) Normalize() (TileSpec, error) {
	l, err := NormalizeLetter(s.Letter)
	if err != nil {
		return TileSpec{}, err
	}
	return TileSpec{Letter: l, Blank: s.Blank}, nil
}

// Score is the value the spec would contribute once placed
func (s TileSpec) Score() int {
	if s.Blank {
		return 0
	}
	return LetterScore(s.Letter)
}

// SpecsFromWord builds tile specs for a word, marking the given indices as blanks
func SpecsFromWord(word string, blanks ...int) ([]TileSpec, error) {
	runes := []rune(word)
	blankSet := make(map[int]bool, len(blanks))
	for _, i := range blanks {
		if i < 0 || i >= len(runes) {
			return nil, fmt.Errorf("%w: blank index %d outside word %q", ErrInvalidPlacement, i, word)
		}
		blankSet[i] = true
	}

	specs := make([]TileSpec, len(runes))
	for i, r := range runes {
		l, err := NormalizeLetter(r)
		if err != nil {
			return nil, err
		}
		specs[i] = TileSpec{Letter: l, Blank: blankSet[i]}
	}
	return specs, nil
}
