package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"unoserver/internal/logger"
	"unoserver/internal/model"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    model.EventType `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for rooms
type Hub struct {
	// roomCode -> player -> conn
	conns map[string]map[string]*Connection

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	disconnect chan *disconnectRequest
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	RoomCode string
	Player   string
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	RoomCode string
	ToPlayer string // Empty means all players, a name means one player
	Message  *Message
}

type disconnectRequest struct {
	roomCode string
	player   string // empty means the whole room
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		disconnect: make(chan *disconnectRequest, 16),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

// NewConnection creates a connection bound to this hub.
func (h *Hub) NewConnection(roomCode, player string) *Connection {
	return &Connection{
		RoomCode: roomCode,
		Player:   player,
		Send:     make(chan []byte, 256),
		Hub:      h,
	}
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.RoomCode] == nil {
				h.conns[conn.RoomCode] = make(map[string]*Connection)
			}
			// A newer connection for the same seat replaces the old one.
			if old, ok := h.conns[conn.RoomCode][conn.Player]; ok && old != conn {
				close(old.Send)
			}
			h.conns[conn.RoomCode][conn.Player] = conn
			h.mu.Unlock()
			logger.Log.Info("player connected", zap.String("room", conn.RoomCode), zap.String("player", conn.Player))

		case conn := <-h.unregister:
			h.mu.Lock()
			if players, ok := h.conns[conn.RoomCode]; ok {
				if existing, ok := players[conn.Player]; ok && existing == conn {
					delete(players, conn.Player)
					close(conn.Send)
					if len(players) == 0 {
						delete(h.conns, conn.RoomCode)
					}
					logger.Log.Info("player disconnected", zap.String("room", conn.RoomCode), zap.String("player", conn.Player))
				}
			}
			h.mu.Unlock()

		case req := <-h.disconnect:
			h.mu.Lock()
			if players, ok := h.conns[req.roomCode]; ok {
				for name, conn := range players {
					if req.player != "" && name != req.player {
						continue
					}
					delete(players, name)
					close(conn.Send)
				}
				if len(players) == 0 {
					delete(h.conns, req.roomCode)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				logger.Log.Error("failed to encode message", zap.String("type", string(msg.Message.Type)), zap.Error(err))
				continue
			}

			h.mu.RLock()
			if players, ok := h.conns[msg.RoomCode]; ok {
				for name, conn := range players {
					if msg.ToPlayer != "" && name != msg.ToPlayer {
						continue
					}
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
						logger.Log.Warn("ws send buffer full", zap.String("room", msg.RoomCode), zap.String("player", name))
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// ConnectionCount returns the number of open connections in a room.
func (h *Hub) ConnectionCount(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[roomCode])
}

// BroadcastToRoom sends a message to every player in a room (implements service.Broadcaster)
func (h *Hub) BroadcastToRoom(roomCode string, msgType model.EventType, payload interface{}) {
	h.send(roomCode, "", msgType, payload)
}

// BroadcastToPlayer sends a message to a specific player (implements service.Broadcaster)
func (h *Hub) BroadcastToPlayer(roomCode, player string, msgType model.EventType, payload interface{}) {
	if player == "" {
		return
	}
	h.send(roomCode, player, msgType, payload)
}

// DisconnectPlayer closes one player's connection (implements service.Broadcaster)
func (h *Hub) DisconnectPlayer(roomCode, player string) {
	if player == "" {
		return
	}
	h.disconnect <- &disconnectRequest{roomCode: roomCode, player: player}
}

// DisconnectRoom closes every connection in a room (implements service.Broadcaster)
func (h *Hub) DisconnectRoom(roomCode string) {
	h.disconnect <- &disconnectRequest{roomCode: roomCode}
}

func (h *Hub) send(roomCode, player string, msgType model.EventType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error("failed to encode payload", zap.String("type", string(msgType)), zap.Error(err))
		return
	}
	h.broadcast <- &BroadcastMessage{
		RoomCode: roomCode,
		ToPlayer: player,
		Message: &Message{
			Type:    msgType,
			Payload: data,
		},
	}
}
