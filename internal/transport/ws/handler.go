package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"unoserver/internal/game"
	"unoserver/internal/logger"
	"unoserver/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Inbound message types
const (
	ActionStartGame = "start_game"
	ActionPlayCard  = "play_card"
	ActionDrawCard  = "draw_card"
	ActionJoin      = "join"
	ActionSync      = "sync"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Dispatcher executes player actions. Failures are reported to the acting
// player by the dispatcher itself.
type Dispatcher interface {
	StartGame(ctx context.Context, code, player string) error
	PlayCard(ctx context.Context, code, player, card, chosenColor string) error
	DrawCard(ctx context.Context, code, player string, count int) error
	JoinNotify(ctx context.Context, code, player string) error
	SendState(ctx context.Context, code, player string) error
}

// Seats reports room membership.
type Seats interface {
	IsSeated(code, player string) bool
}

// InboundMessage is what clients send over the socket
type InboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type playCardPayload struct {
	Card        string `json:"card"`
	ChosenColor string `json:"chosenColor,omitempty"`
}

type drawCardPayload struct {
	Count int `json:"count"`
}

// Handler handles WebSocket connections
type Handler struct {
	hub   *Hub
	seats Seats
	games Dispatcher
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, seats Seats, games Dispatcher) *Handler {
	return &Handler{
		hub:   hub,
		seats: seats,
		games: games,
	}
}

// PlayerWS handles GET /v1/ws/rooms/{code}?player=
func (h *Handler) PlayerWS(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	player := r.URL.Query().Get("player")

	if player == "" {
		http.Error(w, "missing player", http.StatusBadRequest)
		return
	}
	if !h.seats.IsSeated(code, player) {
		http.Error(w, "player is not in this room", http.StatusForbidden)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := h.hub.NewConnection(code, player)
	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)

	// Connecting mid-game delivers the player's current view.
	_ = h.games.SendState(context.Background(), code, player)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("websocket read error", zap.String("room", conn.RoomCode),
					zap.String("player", conn.Player), zap.Error(err))
			}
			break
		}
		h.dispatch(context.Background(), conn, data)
	}
}

// dispatch decodes one inbound message and routes it to the game service.
func (h *Handler) dispatch(ctx context.Context, conn *Connection, data []byte) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.fail(conn, "", game.Errorf(game.KindInvalidInput, "malformed message"))
		return
	}

	var err error
	switch msg.Type {
	case ActionStartGame:
		err = h.games.StartGame(ctx, conn.RoomCode, conn.Player)
	case ActionPlayCard:
		var p playCardPayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			h.fail(conn, msg.Type, err)
			return
		}
		err = h.games.PlayCard(ctx, conn.RoomCode, conn.Player, p.Card, p.ChosenColor)
	case ActionDrawCard:
		var p drawCardPayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			h.fail(conn, msg.Type, err)
			return
		}
		err = h.games.DrawCard(ctx, conn.RoomCode, conn.Player, p.Count)
	case ActionJoin: // no-op when the REST join already announced the seat
		err = h.games.JoinNotify(ctx, conn.RoomCode, conn.Player)
	case ActionSync:
		err = h.games.SendState(ctx, conn.RoomCode, conn.Player)
	default:
		h.fail(conn, msg.Type, game.Errorf(game.KindInvalidInput, "unknown message type %q", msg.Type))
		return
	}
	if err != nil {
		logger.Log.Debug("ws action failed", zap.String("room", conn.RoomCode), zap.String("player", conn.Player),
			zap.String("type", msg.Type), zap.Error(err))
	}
}

func decodePayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return game.Errorf(game.KindInvalidInput, "malformed payload")
	}
	return nil
}

func (h *Handler) fail(conn *Connection, action string, err error) {
	h.hub.BroadcastToPlayer(conn.RoomCode, conn.Player, model.EventError, &model.ErrorEvent{
		Kind:    game.KindOf(err),
		Message: err.Error(),
		Action:  action,
	})
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
