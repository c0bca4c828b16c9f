package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"unoserver/internal/game"
	"unoserver/internal/logger"
	"unoserver/internal/model"
)

const recordTimeout = 5 * time.Second

// GameService routes client actions into room sessions and turns the
// outcomes into outbound events. Session locks are released before any
// event is handed to the broadcaster; a per-room emit lock, held from the
// session call until the events are handed off, keeps each room's events in
// the order the session applied them.
type GameService struct {
	registry    *Registry
	scores      ScoreSink
	broadcaster Broadcaster
	emit        roomLocks
}

// NewGameService creates a new game service. scores may be nil.
func NewGameService(registry *Registry, scores ScoreSink) *GameService {
	return &GameService{
		registry: registry,
		scores:   scores,
		emit:     roomLocks{locks: make(map[string]*sync.Mutex)},
	}
}

// roomLocks hands out one mutex per room code. It is taken before the
// registry and session locks, never while holding them.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *roomLocks) lock(code string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[code]
	if !ok {
		m = &sync.Mutex{}
		l.locks[code] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

func (l *roomLocks) drop(code string) {
	l.mu.Lock()
	delete(l.locks, code)
	l.mu.Unlock()
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// StartGame deals a new game in the room.
func (s *GameService) StartGame(ctx context.Context, code, player string) error {
	defer s.emit.lock(code)()

	session, snap, err := s.registry.StartSession(ctx, code, player)
	if err != nil {
		return s.reject(code, player, "start_game", err)
	}

	pub := snap.Public
	s.toRoom(code, model.EventGameStarted, &model.GameStartedEvent{
		GameID:        session.ID(),
		CurrentPlayer: pub.CurrentPlayer,
		TopCard:       pub.TopCard,
		CurrentColor:  pub.CurrentColor,
		Direction:     pub.Direction,
		Players:       pub.Players,
	})
	s.sendStates(code, snap)
	return nil
}

// PlayCard plays cardWire ("red_7") for player. chosenColor is only read
// for wild cards.
func (s *GameService) PlayCard(ctx context.Context, code, player, cardWire, chosenColor string) error {
	defer s.emit.lock(code)()

	const action = "play_card"

	c, err := game.ParseCard(cardWire)
	if err != nil {
		return s.reject(code, player, action, err)
	}
	chosen := game.ColorNone
	if c.Rank.IsWild() && strings.TrimSpace(chosenColor) != "" {
		if chosen, err = game.ParseColor(chosenColor); err != nil {
			return s.reject(code, player, action, err)
		}
	}

	session, err := s.registry.Session(code)
	if err != nil {
		return s.reject(code, player, action, err)
	}
	out, err := session.PlayCard(player, c, chosen)
	if err != nil {
		return s.reject(code, player, action, err)
	}

	pub := out.Snapshot.Public
	evt := &model.CardPlayedEvent{
		Player:           player,
		Card:             c,
		CurrentPlayer:    pub.CurrentPlayer,
		TopCard:          pub.TopCard,
		CurrentColor:     pub.CurrentColor,
		Direction:        pub.Direction,
		PendingDrawCount: pub.PendingDrawCount,
	}
	evtType := model.EventCardPlayed
	if out.Finished {
		evt.Winner = pub.Winner
		evtType = model.EventGameOver
	}
	s.toRoom(code, evtType, evt)
	s.sendStates(code, out.Snapshot)
	s.registry.Touch(ctx, code)

	if out.Finished {
		logger.Log.Info("game over", zap.String("room", code), zap.String("winner", pub.Winner),
			zap.Int("points", out.Result.Points))
		s.record(out.Result)
	}
	return nil
}

// DrawCard resolves a pending penalty or draws count cards (at least one).
func (s *GameService) DrawCard(ctx context.Context, code, player string, count int) error {
	defer s.emit.lock(code)()

	session, err := s.registry.Session(code)
	if err != nil {
		return s.reject(code, player, "draw_card", err)
	}
	out, err := session.DrawCards(player, count)
	if err != nil {
		return s.reject(code, player, "draw_card", err)
	}
	if out.Short {
		logger.Log.Warn("draw came up short", zap.String("room", code), zap.String("player", player),
			zap.Int("requested", out.Requested), zap.Int("drawn", out.Drawn))
	}

	s.toRoom(code, model.EventCardsDrawn, &model.CardsDrawnEvent{
		Player:           player,
		DrawCount:        out.Drawn,
		CurrentPlayer:    out.Snapshot.Public.CurrentPlayer,
		PendingDrawCount: out.Snapshot.Public.PendingDrawCount,
	})
	s.sendStates(code, out.Snapshot)
	s.registry.Touch(ctx, code)
	return nil
}

// JoinNotify announces player to the room once per seating. Repeat calls
// for an announced seat send nothing.
func (s *GameService) JoinNotify(ctx context.Context, code, player string) error {
	defer s.emit.lock(code)()

	status, first, err := s.registry.Announce(code, player)
	if err != nil {
		return s.reject(code, player, "join", err)
	}
	if !first {
		return nil
	}
	s.toRoom(code, model.EventPlayerJoined, &model.PlayerJoinedEvent{
		Player:      player,
		PlayerCount: status.PlayerCount,
	})
	return nil
}

// SendState sends player their private view of a running game. It is a
// no-op before the game starts.
func (s *GameService) SendState(ctx context.Context, code, player string) error {
	defer s.emit.lock(code)()

	session, err := s.registry.Session(code)
	if game.KindOf(err) == game.KindGameNotStarted {
		return nil
	}
	if err != nil {
		return s.reject(code, player, "sync", err)
	}
	view, err := session.PrivateView(player)
	if err != nil {
		return s.reject(code, player, "sync", err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToPlayer(code, player, model.EventState, view)
	}
	return nil
}

// LeaveRoom takes player off the roster and tells the rest of the room.
func (s *GameService) LeaveRoom(ctx context.Context, code, player string) (*model.RoomStatus, error) {
	defer s.emit.lock(code)()

	status, destroyed, err := s.registry.LeaveRoom(ctx, code, player)
	if err != nil {
		return nil, err
	}
	if s.broadcaster != nil {
		s.broadcaster.DisconnectPlayer(code, player)
	}
	if destroyed {
		if s.broadcaster != nil {
			s.broadcaster.DisconnectRoom(code)
		}
		s.emit.drop(code)
		return status, nil
	}
	s.toRoom(code, model.EventPlayerLeft, &model.PlayerLeftEvent{
		Player:      player,
		PlayerCount: status.PlayerCount,
	})
	return status, nil
}

// RemoveRoom destroys the room and closes its connections.
func (s *GameService) RemoveRoom(ctx context.Context, code string) error {
	defer s.emit.lock(code)()

	if err := s.registry.RemoveRoom(ctx, code); err != nil {
		return err
	}
	if s.broadcaster != nil {
		s.broadcaster.DisconnectRoom(code)
	}
	s.emit.drop(code)
	return nil
}

// reject sends err privately to the acting player and returns it.
func (s *GameService) reject(code, player, action string, err error) error {
	logger.Log.Debug("action rejected", zap.String("room", code), zap.String("player", player),
		zap.String("action", action), zap.Error(err))
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToPlayer(code, player, model.EventError, &model.ErrorEvent{
			Kind:    game.KindOf(err),
			Message: err.Error(),
			Action:  action,
		})
	}
	return err
}

func (s *GameService) toRoom(code string, evtType model.EventType, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(code, evtType, payload)
	}
}

func (s *GameService) sendStates(code string, snap game.Snapshot) {
	if s.broadcaster == nil {
		return
	}
	for player, view := range snap.Private {
		s.broadcaster.BroadcastToPlayer(code, player, model.EventState, view)
	}
}

// record hands a finished game to the score sink without blocking the
// caller.
func (s *GameService) record(r *game.Result) {
	if s.scores == nil || r == nil {
		return
	}
	result := model.NewGameResult(r)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := s.scores.RecordResult(ctx, result); err != nil {
			logger.Log.Error("failed to record game result", zap.String("game", result.GameID), zap.Error(err))
		}
	}()
}
