package natsbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"unoserver/internal/logger"
	"unoserver/internal/model"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subj string, data []byte) error
}

// Event is the JSON body published for every room-wide event.
type Event struct {
	Room    string          `json:"room"`
	Type    model.EventType `json:"type"`
	Payload json.RawMessage `json:"payload"`
	SentAt  int64           `json:"sentAt"`
}

// Connect dials the broker with reconnects enabled.
func Connect(url string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("uno-server"),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Log.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Log.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}
	return nats.Connect(url, opts...)
}

// Subject returns the subject a room's events are published on.
func Subject(roomCode string) string {
	return fmt.Sprintf("uno.rooms.%s.events", roomCode)
}

// Publisher mirrors room-wide events onto NATS. Private events never leave
// the process, so the player-targeted methods do nothing.
type Publisher struct {
	conn Conn
}

// NewPublisher creates a publisher over conn
func NewPublisher(conn Conn) *Publisher {
	return &Publisher{conn: conn}
}

// BroadcastToRoom implements service.Broadcaster
func (p *Publisher) BroadcastToRoom(roomCode string, msgType model.EventType, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error("failed to encode event", zap.String("type", string(msgType)), zap.Error(err))
		return
	}
	data, err := json.Marshal(&Event{
		Room:    roomCode,
		Type:    msgType,
		Payload: body,
		SentAt:  time.Now().UnixMilli(),
	})
	if err != nil {
		logger.Log.Error("failed to encode event", zap.String("type", string(msgType)), zap.Error(err))
		return
	}
	if err := p.conn.Publish(Subject(roomCode), data); err != nil {
		logger.Log.Warn("nats publish failed", zap.String("room", roomCode), zap.Error(err))
	}
}

func (p *Publisher) BroadcastToPlayer(string, string, model.EventType, interface{}) {}

func (p *Publisher) DisconnectPlayer(string, string) {}

func (p *Publisher) DisconnectRoom(string) {}
