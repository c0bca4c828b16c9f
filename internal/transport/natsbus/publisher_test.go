package natsbus

import (
	"encoding/json"
	"errors"
	"testing"

	"unoserver/internal/model"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	msgs []published
	err  error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, published{subj, data})
	return nil
}

func TestPublishRoomEvent(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn)

	p.BroadcastToRoom("ABCD1234", model.EventPlayerJoined, &model.PlayerJoinedEvent{Player: "Bob", PlayerCount: 2})

	if len(conn.msgs) != 1 {
		t.Fatalf("published %d messages", len(conn.msgs))
	}
	if got := conn.msgs[0].subject; got != "uno.rooms.ABCD1234.events" {
		t.Errorf("subject = %q", got)
	}
	var evt Event
	if err := json.Unmarshal(conn.msgs[0].data, &evt); err != nil {
		t.Fatal(err)
	}
	if evt.Room != "ABCD1234" || evt.Type != model.EventPlayerJoined || evt.SentAt == 0 {
		t.Errorf("event = %+v", evt)
	}
	var joined model.PlayerJoinedEvent
	if err := json.Unmarshal(evt.Payload, &joined); err != nil {
		t.Fatal(err)
	}
	if joined.Player != "Bob" || joined.PlayerCount != 2 {
		t.Errorf("payload = %+v", joined)
	}
}

func TestPrivateEventsStayLocal(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn)

	p.BroadcastToPlayer("ROOM", "Alice", model.EventState, map[string]string{"hand": "secret"})
	p.DisconnectPlayer("ROOM", "Alice")
	p.DisconnectRoom("ROOM")

	if len(conn.msgs) != 0 {
		t.Errorf("published %d private messages", len(conn.msgs))
	}
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	p := NewPublisher(&fakeConn{err: errors.New("nats: connection closed")})
	p.BroadcastToRoom("ROOM", model.EventGameOver, map[string]string{"winner": "Alice"})
}
