package model

import "time"

// RoomStatus is the response body of every room-management call.
type RoomStatus struct {
	RoomID        string   `json:"roomId"`
	Players       []string `json:"players"`
	PlayerCount   int      `json:"playerCount"`
	GameStarted   bool     `json:"gameStarted"`
	CurrentPlayer string   `json:"currentPlayer,omitempty"`
}

// RoomMeta is the status mirror kept in Redis for other processes.
type RoomMeta struct {
	RoomStatus
	Phase     string    `json:"phase"`
	GameID    string    `json:"gameId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
