package game

import (
	"strings"
)

// Color of a card. ColorNone is only carried by unresolved wild cards.
type Color uint8

const (
	ColorNone Color = iota
	Red
	Yellow
	Green
	Blue
)

// Colors lists the four playable colors in canonical build order.
var Colors = [...]Color{Red, Yellow, Green, Blue}

var colorNames = map[Color]string{
	ColorNone: "black",
	Red:       "red",
	Yellow:    "yellow",
	Green:     "green",
	Blue:      "blue",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// Playable reports whether c is one of the four real colors.
func (c Color) Playable() bool {
	return c >= Red && c <= Blue
}

// ParseColor accepts the wire names (case-insensitive). "none" is an alias
// for "black".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "yellow":
		return Yellow, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	case "black", "none":
		return ColorNone, nil
	}
	return ColorNone, Errorf(KindInvalidInput, "unknown color %q", s)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Rank of a card: 0-9 or one of the action ranks.
type Rank uint8

const (
	Zero Rank = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Skip
	Reverse
	DrawTwo
	Wild
	WildDrawFour
)

var rankNames = [...]string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"Skip", "Reverse", "DrawTwo", "Wild", "WildDrawFour",
}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return "unknown"
}

// IsNumber reports whether r is one of 0-9.
func (r Rank) IsNumber() bool {
	return r <= Nine
}

// IsWild reports whether r is Wild or WildDrawFour.
func (r Rank) IsWild() bool {
	return r == Wild || r == WildDrawFour
}

// Points is the standard end-of-round value of a card left in a hand.
func (r Rank) Points() int {
	switch {
	case r.IsNumber():
		return int(r)
	case r.IsWild():
		return 50
	default:
		return 20
	}
}

// ParseRank accepts the wire names plus the spaced legacy spellings
// ("Draw Two", "Wild Draw Four").
func ParseRank(s string) (Rank, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for i, name := range rankNames {
		if strings.ToLower(name) == norm {
			return Rank(i), nil
		}
	}
	return 0, Errorf(KindInvalidInput, "unknown rank %q", s)
}

// Card is an immutable (rank, color) pair.
type Card struct {
	Rank  Rank
	Color Color
}

// String renders the wire form, e.g. "red_7" or "black_WildDrawFour".
func (c Card) String() string {
	return c.Color.String() + "_" + c.Rank.String()
}

// Valid reports whether c can exist in the deck: wilds are black, every
// other rank has a playable color.
func (c Card) Valid() bool {
	if int(c.Rank) >= len(rankNames) {
		return false
	}
	if c.Rank.IsWild() {
		return c.Color == ColorNone
	}
	return c.Color.Playable()
}

// ParseCard parses the "<color>_<rank>" wire form.
func ParseCard(s string) (Card, error) {
	colorPart, rankPart, ok := strings.Cut(strings.TrimSpace(s), "_")
	if !ok {
		return Card{}, Errorf(KindInvalidInput, "malformed card %q", s)
	}
	color, err := ParseColor(colorPart)
	if err != nil {
		return Card{}, err
	}
	rank, err := ParseRank(rankPart)
	if err != nil {
		return Card{}, err
	}
	c := Card{Rank: rank, Color: color}
	if !c.Valid() {
		return Card{}, Errorf(KindInvalidInput, "no such card %q", s)
	}
	return c, nil
}

func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
