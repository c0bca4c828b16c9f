// Package sim plays complete games between simple bots. It backs the seed
// command and load checks against the engine.
package sim

import (
	"errors"

	"unoserver/internal/game"
)

// ErrStalled is returned when a game does not finish within the turn cap.
var ErrStalled = errors.New("game did not finish within the turn limit")

// DefaultMaxTurns is the turn cap used when Play is given zero.
const DefaultMaxTurns = 5000

// Play starts s with players and drives it to the end. Each bot plays its
// first legal non-wild card, then a wild naming its most held color, and
// draws one card otherwise.
func Play(s *game.Session, players []string, maxTurns int) (*game.Result, error) {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	snap, err := s.Start(players)
	if err != nil {
		return nil, err
	}
	current := snap.Public.CurrentPlayer

	for turn := 0; turn < maxTurns; turn++ {
		view, err := s.PrivateView(current)
		if err != nil {
			return nil, err
		}

		c, chosen, ok := choose(s, current, view.Hand)
		if !ok {
			out, err := s.DrawCards(current, 1)
			if err != nil {
				return nil, err
			}
			current = out.Snapshot.Public.CurrentPlayer
			continue
		}

		out, err := s.PlayCard(current, c, chosen)
		if err != nil {
			return nil, err
		}
		if out.Finished {
			return out.Result, nil
		}
		current = out.Snapshot.Public.CurrentPlayer
	}
	return nil, ErrStalled
}

func choose(s *game.Session, player string, hand []game.Card) (game.Card, game.Color, bool) {
	var wild *game.Card
	for i, c := range hand {
		if s.IsLegal(player, c) != nil {
			continue
		}
		if !c.Rank.IsWild() {
			return c, game.ColorNone, true
		}
		if wild == nil {
			wild = &hand[i]
		}
	}
	if wild == nil {
		return game.Card{}, game.ColorNone, false
	}
	return *wild, favoriteColor(hand), true
}

// favoriteColor is the color the hand holds most of, red on a tie or an
// all-wild hand.
func favoriteColor(hand []game.Card) game.Color {
	counts := make(map[game.Color]int, len(game.Colors))
	for _, c := range hand {
		if c.Color.Playable() {
			counts[c.Color]++
		}
	}
	best := game.Colors[0]
	for _, color := range game.Colors[1:] {
		if counts[color] > counts[best] {
			best = color
		}
	}
	return best
}
