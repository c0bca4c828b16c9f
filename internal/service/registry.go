package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"unoserver/internal/cache"
	"unoserver/internal/config"
	"unoserver/internal/game"
	"unoserver/internal/logger"
	"unoserver/internal/model"
)

const (
	roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeLen   = 8
)

// room is a lobby and, once started, the owner of its game session.
// Fields are guarded by Registry.mu.
type room struct {
	code      string
	players   []string
	session   *game.Session
	createdAt time.Time
	announced map[string]bool // seats already broadcast as PLAYER_JOINED
}

// Registry owns every live room. Its lock covers the room map and rosters
// only; sessions carry their own locks.
type Registry struct {
	mu         sync.RWMutex
	rooms      map[string]*room
	maxPlayers int
	roomCache  cache.RoomCache
	newSession func(code string) *game.Session
}

// NewRegistry creates an empty registry. roomCache may be nil, in which
// case room status is not mirrored.
func NewRegistry(roomCache cache.RoomCache, maxPlayers int) *Registry {
	if maxPlayers < config.MinPlayers || maxPlayers > config.MaxPlayers {
		maxPlayers = config.MaxPlayers
	}
	return &Registry{
		rooms:      make(map[string]*room),
		maxPlayers: maxPlayers,
		roomCache:  roomCache,
		newSession: func(code string) *game.Session { return game.NewSession(code, nil) },
	}
}

// CreateRoom registers a new room seated with playerName.
func (r *Registry) CreateRoom(ctx context.Context, playerName string) (*model.RoomStatus, error) {
	if strings.TrimSpace(playerName) == "" {
		return nil, game.Errorf(game.KindInvalidInput, "player name is required")
	}

	for {
		code, err := generateRoomCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate room code: %w", err)
		}
		if r.roomCache != nil {
			exists, err := r.roomCache.Exists(ctx, code)
			if err != nil {
				logger.Log.Warn("room code lookup failed", zap.String("room", code), zap.Error(err))
			} else if exists {
				continue
			}
		}

		r.mu.Lock()
		if _, taken := r.rooms[code]; taken {
			r.mu.Unlock()
			continue
		}
		rm := &room{code: code, players: []string{playerName}, createdAt: time.Now(), announced: map[string]bool{}}
		r.rooms[code] = rm
		status, meta := r.describe(rm)
		r.mu.Unlock()

		logger.Log.Info("room created", zap.String("room", code), zap.String("player", playerName))
		r.mirror(ctx, meta)
		return status, nil
	}
}

// JoinRoom seats playerName in the room.
func (r *Registry) JoinRoom(ctx context.Context, code, playerName string) (*model.RoomStatus, error) {
	if strings.TrimSpace(playerName) == "" {
		return nil, game.Errorf(game.KindInvalidInput, "player name is required")
	}

	r.mu.Lock()
	rm, ok := r.rooms[code]
	if !ok {
		r.mu.Unlock()
		return nil, game.ErrRoomNotFound
	}
	if rm.session != nil {
		r.mu.Unlock()
		return nil, game.ErrGameInProgress
	}
	if len(rm.players) >= r.maxPlayers {
		r.mu.Unlock()
		return nil, game.Errorf(game.KindRoomFull, "room is full (maximum %d players)", r.maxPlayers)
	}
	if slices.Contains(rm.players, playerName) {
		r.mu.Unlock()
		return nil, game.ErrDuplicatePlayer
	}
	rm.players = append(rm.players, playerName)
	status, meta := r.describe(rm)
	r.mu.Unlock()

	logger.Log.Info("player joined", zap.String("room", code), zap.String("player", playerName))
	r.mirror(ctx, meta)
	return status, nil
}

// LeaveRoom removes playerName from the roster and destroys the room when it
// empties. A started game keeps its fixed player order.
func (r *Registry) LeaveRoom(ctx context.Context, code, playerName string) (status *model.RoomStatus, destroyed bool, err error) {
	r.mu.Lock()
	rm, ok := r.rooms[code]
	if !ok {
		r.mu.Unlock()
		return nil, false, game.ErrRoomNotFound
	}
	idx := slices.Index(rm.players, playerName)
	if idx < 0 {
		r.mu.Unlock()
		return nil, false, game.ErrNotInRoom
	}
	rm.players = slices.Delete(rm.players, idx, idx+1)
	delete(rm.announced, playerName)
	if len(rm.players) == 0 {
		delete(r.rooms, code)
		destroyed = true
	}
	status, meta := r.describe(rm)
	r.mu.Unlock()

	logger.Log.Info("player left", zap.String("room", code), zap.String("player", playerName),
		zap.Bool("destroyed", destroyed))
	if destroyed {
		r.forget(ctx, code)
	} else {
		r.mirror(ctx, meta)
	}
	return status, destroyed, nil
}

// GetRoom returns the room's current status.
func (r *Registry) GetRoom(code string) (*model.RoomStatus, error) {
	r.mu.RLock()
	rm, ok := r.rooms[code]
	if !ok {
		r.mu.RUnlock()
		return nil, game.ErrRoomNotFound
	}
	status, _ := r.describe(rm)
	r.mu.RUnlock()
	return status, nil
}

// Announce marks playerName's seat as announced to the room. first is false
// when the seat was already announced since the player last sat down, so the
// REST join and the socket's join message produce a single PLAYER_JOINED.
func (r *Registry) Announce(code, playerName string) (status *model.RoomStatus, first bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[code]
	if !ok {
		return nil, false, game.ErrRoomNotFound
	}
	if !slices.Contains(rm.players, playerName) {
		return nil, false, game.ErrNotInRoom
	}
	first = !rm.announced[playerName]
	rm.announced[playerName] = true
	status, _ = r.describe(rm)
	return status, first, nil
}

// RemoveRoom destroys the room and its session.
func (r *Registry) RemoveRoom(ctx context.Context, code string) error {
	r.mu.Lock()
	if _, ok := r.rooms[code]; !ok {
		r.mu.Unlock()
		return game.ErrRoomNotFound
	}
	delete(r.rooms, code)
	r.mu.Unlock()

	logger.Log.Info("room removed", zap.String("room", code))
	r.forget(ctx, code)
	return nil
}

// StartSession creates the room's game session and deals. requestedBy must
// be seated in the room.
func (r *Registry) StartSession(ctx context.Context, code, requestedBy string) (*game.Session, game.Snapshot, error) {
	r.mu.Lock()
	rm, ok := r.rooms[code]
	if !ok {
		r.mu.Unlock()
		return nil, game.Snapshot{}, game.ErrRoomNotFound
	}
	if !slices.Contains(rm.players, requestedBy) {
		r.mu.Unlock()
		return nil, game.Snapshot{}, game.ErrNotInRoom
	}
	if rm.session != nil {
		r.mu.Unlock()
		return nil, game.Snapshot{}, game.ErrGameInProgress
	}
	if len(rm.players) < config.MinPlayers {
		r.mu.Unlock()
		return nil, game.Snapshot{}, game.ErrInsufficientPlayers
	}

	session := r.newSession(code)
	snap, err := session.Start(rm.players)
	if err != nil {
		r.mu.Unlock()
		return nil, game.Snapshot{}, err
	}
	rm.session = session
	_, meta := r.describe(rm)
	r.mu.Unlock()

	logger.Log.Info("game started", zap.String("room", code), zap.String("game", session.ID()),
		zap.Strings("players", snap.Public.Players))
	r.mirror(ctx, meta)
	return session, snap, nil
}

// Session returns the started session of a room.
func (r *Registry) Session(code string) (*game.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[code]
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	if rm.session == nil {
		return nil, game.ErrGameNotStarted
	}
	return rm.session, nil
}

// IsSeated reports whether playerName is on the room's roster.
func (r *Registry) IsSeated(code, playerName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[code]
	return ok && slices.Contains(rm.players, playerName)
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Touch rewrites the room's status mirror, e.g. after a turn changed the
// current player.
func (r *Registry) Touch(ctx context.Context, code string) {
	r.mu.RLock()
	rm, ok := r.rooms[code]
	if !ok {
		r.mu.RUnlock()
		return
	}
	_, meta := r.describe(rm)
	r.mu.RUnlock()
	r.mirror(ctx, meta)
}

// describe copies the room state. Must be called with r.mu held. The
// session's own lock nests inside the registry lock, never the reverse.
func (r *Registry) describe(rm *room) (*model.RoomStatus, *model.RoomMeta) {
	status := &model.RoomStatus{
		RoomID:      rm.code,
		Players:     slices.Clone(rm.players),
		PlayerCount: len(rm.players),
		GameStarted: rm.session != nil,
	}
	meta := &model.RoomMeta{
		Phase:     string(game.PhaseWaiting),
		CreatedAt: rm.createdAt,
		UpdatedAt: time.Now(),
	}
	if rm.session != nil {
		pub := rm.session.PublicView()
		status.CurrentPlayer = pub.CurrentPlayer
		meta.Phase = string(pub.Phase)
		meta.GameID = rm.session.ID()
	}
	meta.RoomStatus = *status
	return status, meta
}

func (r *Registry) mirror(ctx context.Context, meta *model.RoomMeta) {
	if r.roomCache == nil {
		return
	}
	if err := r.roomCache.SetMeta(ctx, meta.RoomID, meta); err != nil {
		logger.Log.Warn("failed to mirror room status", zap.String("room", meta.RoomID), zap.Error(err))
	}
}

func (r *Registry) forget(ctx context.Context, code string) {
	if r.roomCache == nil {
		return
	}
	if err := r.roomCache.Delete(ctx, code); err != nil {
		logger.Log.Warn("failed to drop room status", zap.String("room", code), zap.Error(err))
	}
}

// generateRoomCode creates an 8-char uppercase alphanumeric code
func generateRoomCode() (string, error) {
	b := make([]byte, roomCodeLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	code := make([]byte, roomCodeLen)
	for i := range code {
		code[i] = roomCodeChars[int(b[i])%len(roomCodeChars)]
	}
	return string(code), nil
}
