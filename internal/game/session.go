package game

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Phase of a session. FINISHED is terminal.
type Phase string

const (
	PhaseWaiting    Phase = "WAITING_FOR_PLAYERS"
	PhaseInProgress Phase = "IN_PROGRESS"
	PhaseFinished   Phase = "FINISHED"
)

// HandSize is the number of cards dealt to each player.
const HandSize = 7

// Seats per game. A full table still leaves a draw pile after the deal.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Session is the authoritative rules state of one game. All exported
// methods are safe for concurrent use and serialize on the session lock.
type Session struct {
	mu sync.Mutex

	id       string
	roomCode string
	rng      *rand.Rand

	order     []string
	hands     map[string][]Card
	deck      *Deck
	current   int
	direction int
	color     Color
	pending   int
	phase     Phase
	winner    string
	turns     int
	version   int

	startedAt  time.Time
	finishedAt time.Time
}

// NewSession creates a session waiting for Start. A nil rng gets a randomly
// seeded PCG source.
func NewSession(roomCode string, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Session{
		id:        uuid.NewString(),
		roomCode:  roomCode,
		rng:       rng,
		hands:     make(map[string][]Card),
		direction: 1,
		phase:     PhaseWaiting,
	}
}

// PlayOutcome is the result of a successful PlayCard.
type PlayOutcome struct {
	Player   string
	Card     Card
	Finished bool
	Result   *Result // set when Finished
	Snapshot Snapshot
}

// DrawOutcome is the result of a successful DrawCards.
type DrawOutcome struct {
	Player    string
	Requested int
	Drawn     int
	Forced    bool
	Short     bool // fewer cards than requested were available
	Snapshot  Snapshot
}

// Result summarizes a finished game for score keeping.
type Result struct {
	GameID     string
	RoomCode   string
	Winner     string
	Players    []string
	Points     int            // awarded to the winner
	Remaining  map[string]int // point value left in each loser's hand
	Turns      int
	StartedAt  time.Time
	FinishedAt time.Time
}

func (s *Session) ID() string { return s.id }

func (s *Session) RoomCode() string { return s.roomCode }

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start fixes the player order as given, deals HandSize cards to each player
// and turns up a non-wild first discard.
func (s *Session) Start(players []string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseWaiting {
		return Snapshot{}, ErrGameInProgress
	}
	if len(players) < MinPlayers {
		return Snapshot{}, ErrInsufficientPlayers
	}
	if len(players) > MaxPlayers {
		return Snapshot{}, Errorf(KindInvalidInput, "at most %d players can be seated", MaxPlayers)
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if strings.TrimSpace(p) == "" {
			return Snapshot{}, Errorf(KindInvalidInput, "player name is required")
		}
		if seen[p] {
			return Snapshot{}, Errorf(KindDuplicatePlayer, "player %q listed twice", p)
		}
		seen[p] = true
	}

	s.order = slices.Clone(players)
	s.deck = NewDeck(s.rng)
	for _, p := range s.order {
		// A fresh deck always covers 4 x 7 cards.
		hand, _ := s.deck.Draw(HandSize)
		s.hands[p] = hand
	}

	var first Card
	for {
		drawn, _ := s.deck.Draw(1)
		first = drawn[0]
		if !first.Rank.IsWild() {
			break
		}
		s.deck.ReturnAndShuffle(first)
	}
	s.deck.Discard(first)

	s.color = first.Color
	s.current = 0
	s.direction = 1
	s.pending = 0
	s.phase = PhaseInProgress
	s.startedAt = time.Now()
	s.version++
	return s.snapshot(), nil
}

// IsLegal reports whether player may play c right now. It does not check
// that c is in the player's hand.
func (s *Session) IsLegal(player string, c Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkTurn(player); err != nil {
		return err
	}
	return s.checkCard(player, c)
}

func (s *Session) checkTurn(player string) error {
	if s.phase != PhaseInProgress {
		return ErrGameNotStarted
	}
	if s.order[s.current] != player {
		return Errorf(KindNotPlayersTurn, "it is %s's turn", s.order[s.current])
	}
	return nil
}

func (s *Session) checkCard(player string, c Card) error {
	top, _ := s.deck.Top()
	if s.pending > 0 {
		if !stacksOn(c, top) {
			return Errorf(KindIllegalCardPlay, "%s cannot be played on %s: stack a %s or draw %d",
				c, top, top.Rank, s.pending)
		}
		return nil
	}
	switch c.Rank {
	case Wild:
		return nil
	case WildDrawFour:
		if s.holdsColor(player, s.color) {
			return Errorf(KindIllegalCardPlay, "WildDrawFour is not allowed while holding a %s card", s.color)
		}
		return nil
	}
	if c.Color == s.color || c.Rank == top.Rank {
		return nil
	}
	return Errorf(KindIllegalCardPlay, "%s matches neither color %s nor %s", c, s.color, top)
}

func (s *Session) holdsColor(player string, color Color) bool {
	for _, c := range s.hands[player] {
		if c.Color == color {
			return true
		}
	}
	return false
}

// PlayCard plays one copy of c from player's hand. chosen is required for
// wild cards and ignored otherwise. On error nothing changes.
func (s *Session) PlayCard(player string, c Card, chosen Color) (*PlayOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTurn(player); err != nil {
		return nil, err
	}
	hand := s.hands[player]
	idx := slices.Index(hand, c)
	if idx < 0 {
		return nil, Errorf(KindCardNotInHand, "%s is not in your hand", c)
	}
	e := effectOf(c.Rank)
	if e.wild && !chosen.Playable() {
		return nil, Errorf(KindInvalidInput, "%s requires a chosen color", c)
	}
	if err := s.checkCard(player, c); err != nil {
		return nil, err
	}

	s.hands[player] = slices.Delete(slices.Clone(hand), idx, idx+1)
	s.deck.Discard(c)
	if e.wild {
		s.color = chosen
	} else {
		s.color = c.Color
	}
	s.pending = pendingAfter(e, s.pending)
	s.turns++
	s.version++

	out := &PlayOutcome{Player: player, Card: c}
	if len(s.hands[player]) == 0 {
		s.phase = PhaseFinished
		s.winner = player
		s.finishedAt = time.Now()
		out.Finished = true
		out.Result = s.result()
	} else {
		s.direction, s.current = applyTurn(e, s.direction, len(s.order), s.current)
	}
	out.Snapshot = s.snapshot()
	return out, nil
}

// DrawCards resolves a pending penalty, or draws max(requested, 1) cards.
// Either way the turn passes; drawn cards are never played automatically.
func (s *Session) DrawCards(player string, requested int) (*DrawOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTurn(player); err != nil {
		return nil, err
	}
	n := max(requested, 1)
	forced := s.pending > 0
	if forced {
		n = s.pending
	}

	cards, err := s.deck.Draw(n)
	s.hands[player] = append(slices.Clone(s.hands[player]), cards...)
	if forced {
		s.pending = 0
	}
	s.current = nextTurn(s.current, s.direction, len(s.order), 1)
	s.turns++
	s.version++

	return &DrawOutcome{
		Player:    player,
		Requested: n,
		Drawn:     len(cards),
		Forced:    forced,
		Short:     errors.Is(err, ErrEmptyDeck),
		Snapshot:  s.snapshot(),
	}, nil
}

func (s *Session) result() *Result {
	r := &Result{
		GameID:     s.id,
		RoomCode:   s.roomCode,
		Winner:     s.winner,
		Players:    slices.Clone(s.order),
		Remaining:  make(map[string]int, len(s.order)-1),
		Turns:      s.turns,
		StartedAt:  s.startedAt,
		FinishedAt: s.finishedAt,
	}
	for _, p := range s.order {
		if p == s.winner {
			continue
		}
		pts := 0
		for _, c := range s.hands[p] {
			pts += c.Rank.Points()
		}
		r.Remaining[p] = pts
		r.Points += pts
	}
	return r
}

// cardCount is the number of cards across both piles and every hand.
func (s *Session) cardCount() int {
	if s.deck == nil {
		return 0
	}
	draw, discard := s.deck.Size()
	total := draw + discard
	for _, h := range s.hands {
		total += len(h)
	}
	return total
}
