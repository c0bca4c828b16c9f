package model

import (
	"time"

	"unoserver/internal/game"
)

// GameResult is the persisted record of a finished game.
type GameResult struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	GameID     string         `json:"gameId" bson:"gameId"`
	RoomCode   string         `json:"roomCode" bson:"roomCode"`
	Winner     string         `json:"winner" bson:"winner"`
	Players    []string       `json:"players" bson:"players"`
	Points     int            `json:"points" bson:"points"`
	Remaining  map[string]int `json:"remaining" bson:"remaining"`
	Turns      int            `json:"turns" bson:"turns"`
	StartedAt  time.Time      `json:"startedAt" bson:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt" bson:"finishedAt"`
}

// NewGameResult copies a session result into its stored form.
func NewGameResult(r *game.Result) *GameResult {
	return &GameResult{
		GameID:     r.GameID,
		RoomCode:   r.RoomCode,
		Winner:     r.Winner,
		Players:    r.Players,
		Points:     r.Points,
		Remaining:  r.Remaining,
		Turns:      r.Turns,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

// LeaderboardEntry is one ranked player, either from the all-time Redis
// board or a windowed aggregation over stored results.
type LeaderboardEntry struct {
	Player string `json:"player" bson:"_id"`
	Points int    `json:"points" bson:"points"`
	Wins   int    `json:"wins" bson:"wins"`
	Rank   int    `json:"rank" bson:"-"`
}
