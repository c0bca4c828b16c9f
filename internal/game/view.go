package game

import "slices"

// PublicView is what every seat in the room may see.
type PublicView struct {
	CurrentPlayer    string   `json:"currentPlayer"`
	TopCard          *Card    `json:"topCard,omitempty"`
	CurrentColor     Color    `json:"currentColor"`
	Direction        int      `json:"direction"`
	PendingDrawCount int      `json:"pendingDrawCount"`
	Phase            Phase    `json:"phase"`
	Winner           string   `json:"winner,omitempty"`
	Players          []string `json:"players"`
	Version          int      `json:"version"` // bumped by every state change
}

// PrivateView is the public view plus one player's own hand. Other players
// appear only as hand sizes.
type PrivateView struct {
	PublicView
	Player      string         `json:"player"`
	PlayerIndex int            `json:"playerIndex"`
	Hand        []Card         `json:"hand"`
	HandSizes   map[string]int `json:"handSizes"`
}

// Snapshot is a consistent set of views taken under one lock acquisition.
type Snapshot struct {
	Public  PublicView
	Private map[string]PrivateView
}

// PublicView returns the room-wide projection.
func (s *Session) PublicView() PublicView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publicView()
}

// PrivateView returns player's projection, or ErrNotInRoom if player has no
// seat in this game.
func (s *Session) PrivateView(player string) (PrivateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.order, player) {
		return PrivateView{}, ErrNotInRoom
	}
	return s.privateView(player, s.publicView(), s.handSizes()), nil
}

// Snapshot returns the public view and every player's private view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) publicView() PublicView {
	v := PublicView{
		CurrentColor:     s.color,
		Direction:        s.direction,
		PendingDrawCount: s.pending,
		Phase:            s.phase,
		Winner:           s.winner,
		Players:          slices.Clone(s.order),
		Version:          s.version,
	}
	if s.phase == PhaseInProgress {
		v.CurrentPlayer = s.order[s.current]
	}
	if s.deck != nil {
		if top, ok := s.deck.Top(); ok {
			v.TopCard = &top
		}
	}
	return v
}

func (s *Session) handSizes() map[string]int {
	sizes := make(map[string]int, len(s.order))
	for _, p := range s.order {
		sizes[p] = len(s.hands[p])
	}
	return sizes
}

func (s *Session) privateView(player string, pub PublicView, sizes map[string]int) PrivateView {
	return PrivateView{
		PublicView:  pub,
		Player:      player,
		PlayerIndex: slices.Index(s.order, player),
		Hand:        slices.Clone(s.hands[player]),
		HandSizes:   sizes,
	}
}

func (s *Session) snapshot() Snapshot {
	pub := s.publicView()
	sizes := s.handSizes()
	snap := Snapshot{Public: pub, Private: make(map[string]PrivateView, len(s.order))}
	for _, p := range s.order {
		snap.Private[p] = s.privateView(p, pub, sizes)
	}
	return snap
}
