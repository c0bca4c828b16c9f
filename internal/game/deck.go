package game

import (
	"math/rand/v2"
)

// DeckSize is the number of cards in a full UNO deck.
const DeckSize = 108

// Deck holds the draw pile and the discard pile. The last element of each
// slice is its top; draws take from the head of the draw pile.
type Deck struct {
	draw    []Card
	discard []Card
	rng     *rand.Rand
}

// buildCards returns the 108 cards in canonical order.
func buildCards() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, color := range Colors {
		for r := Zero; r <= DrawTwo; r++ {
			cards = append(cards, Card{Rank: r, Color: color})
			if r != Zero {
				cards = append(cards, Card{Rank: r, Color: color})
			}
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, Card{Rank: Wild, Color: ColorNone})
		cards = append(cards, Card{Rank: WildDrawFour, Color: ColorNone})
	}
	return cards
}

// NewDeck returns a shuffled full deck with an empty discard pile.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{draw: buildCards(), rng: rng}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// Draw removes up to n cards from the draw pile, recycling the discard pile
// (minus its top card) when the draw pile runs out. If both piles are
// exhausted the cards drawn so far are returned with ErrEmptyDeck.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n <= 0 {
		return nil, nil
	}
	out := make([]Card, 0, min(n, len(d.draw)+len(d.discard)))
	for len(out) < n {
		if len(d.draw) == 0 && !d.recycle() {
			return out, ErrEmptyDeck
		}
		out = append(out, d.draw[0])
		d.draw = d.draw[1:]
	}
	return out, nil
}

// recycle moves every discard except the top card into the draw pile and
// shuffles. It reports false when there is nothing to recycle.
func (d *Deck) recycle() bool {
	if len(d.discard) <= 1 {
		return false
	}
	top := d.discard[len(d.discard)-1]
	d.draw = append(d.draw, d.discard[:len(d.discard)-1]...)
	d.discard = append(d.discard[:0], top)
	d.shuffle()
	return true
}

// Discard places c on top of the discard pile.
func (d *Deck) Discard(c Card) {
	d.discard = append(d.discard, c)
}

// Top returns the top discard card.
func (d *Deck) Top() (Card, bool) {
	if len(d.discard) == 0 {
		return Card{}, false
	}
	return d.discard[len(d.discard)-1], true
}

// ReturnAndShuffle puts c back into the draw pile and reshuffles it.
func (d *Deck) ReturnAndShuffle(c Card) {
	d.draw = append(d.draw, c)
	d.shuffle()
}

// Size returns the draw and discard pile lengths.
func (d *Deck) Size() (draw, discard int) {
	return len(d.draw), len(d.discard)
}
