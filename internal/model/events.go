package model

import "unoserver/internal/game"

// EventType names an outbound message.
type EventType string

// Room-wide events
const (
	EventGameStarted  EventType = "GAME_STARTED"
	EventCardPlayed   EventType = "CARD_PLAYED"
	EventGameOver     EventType = "GAME_OVER"
	EventCardsDrawn   EventType = "CARDS_DRAWN"
	EventPlayerJoined EventType = "PLAYER_JOINED"
	EventPlayerLeft   EventType = "PLAYER_LEFT"
)

// Private events
const (
	EventState EventType = "STATE"
	EventError EventType = "ERROR"
)

type GameStartedEvent struct {
	GameID        string     `json:"gameId"`
	CurrentPlayer string     `json:"currentPlayer"`
	TopCard       *game.Card `json:"topCard"`
	CurrentColor  game.Color `json:"currentColor"`
	Direction     int        `json:"direction"`
	Players       []string   `json:"players"`
}

// CardPlayedEvent is sent as CARD_PLAYED, or as GAME_OVER with Winner set.
type CardPlayedEvent struct {
	Player           string     `json:"player"`
	Card             game.Card  `json:"card"`
	CurrentPlayer    string     `json:"currentPlayer"`
	TopCard          *game.Card `json:"topCard"`
	CurrentColor     game.Color `json:"currentColor"`
	Direction        int        `json:"direction"`
	PendingDrawCount int        `json:"pendingDrawCount"`
	Winner           string     `json:"winner,omitempty"`
}

type CardsDrawnEvent struct {
	Player           string `json:"player"`
	DrawCount        int    `json:"drawCount"`
	CurrentPlayer    string `json:"currentPlayer"`
	PendingDrawCount int    `json:"pendingDrawCount"`
}

type PlayerJoinedEvent struct {
	Player      string `json:"player"`
	PlayerCount int    `json:"playerCount"`
}

type PlayerLeftEvent struct {
	Player      string `json:"player"`
	PlayerCount int    `json:"playerCount"`
}

// ErrorEvent is delivered only to the player whose action was rejected.
type ErrorEvent struct {
	Kind    game.Kind `json:"kind"`
	Message string    `json:"message"`
	Action  string    `json:"action,omitempty"`
}
