package model

import "fmt"

// Premium is the multiplier kind of a board square
type Premium int

const (
	PremiumNormal Premium = iota
	PremiumDoubleLetter
	PremiumTripleLetter
	PremiumDoubleWord
	PremiumTripleWord
)

// LetterMultiplier is the factor applied to a tile newly placed on the square
func (p Premium) LetterMultiplier() int {
	switch p {
	case PremiumDoubleLetter:
		return 2
	case PremiumTripleLetter:
		return 3
	case PremiumNormal, PremiumDoubleWord, PremiumTripleWord:
		return 1
	default:
		return 1
	}
}

// WordMultiplier is the factor applied to a whole word that newly covers the square
func (p Premium) WordMultiplier() int {
	switch p {
	case PremiumDoubleWord:
		return 2
	case PremiumTripleWord:
		return 3
	case PremiumNormal, PremiumDoubleLetter, PremiumTripleLetter:
		return 1
	default:
		return 1
	}
}

// Short returns the two-letter board notation (empty for normal squares)
func (p Premium) Short() string {
	switch p {
	case PremiumDoubleLetter:
		return "DL"
	case PremiumTripleLetter:
		return "TL"
	case PremiumDoubleWord:
		return "DW"
	case PremiumTripleWord:
		return "TW"
	default:
		return ""
	}
}

func (p Premium) String() string {
	switch p {
	case PremiumDoubleLetter:
		return "double_letter"
	case PremiumTripleLetter:
		return "triple_letter"
	case PremiumDoubleWord:
		return "double_word"
	case PremiumTripleWord:
		return "triple_word"
	default:
		return "normal"
	}
}

// ParsePremium accepts both the long names and the DL/TL/DW/TW notation
func ParsePremium(s string) (Premium, error) {
	switch s {
	case "", "normal":
		return PremiumNormal, nil
	case "DL", "double_letter":
		return PremiumDoubleLetter, nil
	case "TL", "triple_letter":
		return PremiumTripleLetter, nil
	case "DW", "double_word":
		return PremiumDoubleWord, nil
	case "TW", "triple_word":
		return PremiumTripleWord, nil
	default:
		return PremiumNormal, fmt.Errorf("unknown premium %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Premium) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Premium) UnmarshalText(text []byte) error {
	parsed, err := ParsePremium(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Layout maps board cells to premiums. Cells not present are normal.
type Layout map[Position]Premium

// standardLayout rows are indexed by Y, characters by X.
// T triple word, D double word, t triple letter, d double letter.
// The centre star carries no multiplier.
var standardLayout = [BoardSize]string{
	"T..d...T...d..T",
	".D...t...t...D.",
	"..D...d.d...D..",
	"d..D...d...D..d",
	"....D.....D....",
	".t...t...t...t.",
	"..d...d.d...d..",
	"T..d.......d..T",
	"..d...d.d...d..",
	".t...t...t...t.",
	"....D.....D....",
	"d..D...d...D..d",
	"..D...d.d...D..",
	".D...t...t...D.",
	"T..d...T...d..T",
}

// DefaultLayout returns the standard premium layout
func DefaultLayout() Layout {
	layout := make(Layout)
	for y, row := range standardLayout {
		for x, c := range row {
			var p Premium
			switch c {
			case 'T':
				p = PremiumTripleWord
			case 'D':
				p = PremiumDoubleWord
			case 't':
				p = PremiumTripleLetter
			case 'd':
				p = PremiumDoubleLetter
			default:
				continue
			}
			layout[Position{X: x, Y: y}] = p
		}
	}
	return layout
}
