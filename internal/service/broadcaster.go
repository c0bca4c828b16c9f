package service

import "unoserver/internal/model"

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToRoom(roomCode string, msgType model.EventType, payload interface{})
	BroadcastToPlayer(roomCode, player string, msgType model.EventType, payload interface{})
	DisconnectPlayer(roomCode, player string)
	DisconnectRoom(roomCode string)
}

// multiBroadcaster fans every call out to several broadcasters.
type multiBroadcaster []Broadcaster

// MultiBroadcaster combines broadcasters; nil entries are skipped.
func MultiBroadcaster(bs ...Broadcaster) Broadcaster {
	var out multiBroadcaster
	for _, b := range bs {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (m multiBroadcaster) BroadcastToRoom(roomCode string, msgType model.EventType, payload interface{}) {
	for _, b := range m {
		b.BroadcastToRoom(roomCode, msgType, payload)
	}
}

func (m multiBroadcaster) BroadcastToPlayer(roomCode, player string, msgType model.EventType, payload interface{}) {
	for _, b := range m {
		b.BroadcastToPlayer(roomCode, player, msgType, payload)
	}
}

func (m multiBroadcaster) DisconnectPlayer(roomCode, player string) {
	for _, b := range m {
		b.DisconnectPlayer(roomCode, player)
	}
}

func (m multiBroadcaster) DisconnectRoom(roomCode string) {
	for _, b := range m {
		b.DisconnectRoom(roomCode)
	}
}
