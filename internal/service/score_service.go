package service

import (
	"context"
	"fmt"
	"time"

	"unoserver/internal/cache"
	"unoserver/internal/game"
	"unoserver/internal/model"
	"unoserver/internal/repository"
)

// Leaderboard periods. The week and month boards are rolling windows.
const (
	PeriodAll   = "all"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

var periodWindows = map[string]time.Duration{
	PeriodWeek:  7 * 24 * time.Hour,
	PeriodMonth: 30 * 24 * time.Hour,
}

// ScoreSink receives the result of every finished game.
type ScoreSink interface {
	RecordResult(ctx context.Context, result *model.GameResult) error
}

// ScoreService persists results to MongoDB and keeps the Redis leaderboard.
type ScoreService struct {
	results     repository.ResultRepo
	leaderboard cache.LeaderboardCache
}

// NewScoreService creates a new score service
func NewScoreService(results repository.ResultRepo, leaderboard cache.LeaderboardCache) *ScoreService {
	return &ScoreService{
		results:     results,
		leaderboard: leaderboard,
	}
}

// RecordResult stores the result and credits the winner.
func (s *ScoreService) RecordResult(ctx context.Context, result *model.GameResult) error {
	if err := s.results.Create(ctx, result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	if err := s.leaderboard.AddWin(ctx, result.Winner, result.Points); err != nil {
		return fmt.Errorf("failed to update leaderboard: %w", err)
	}
	return nil
}

// GetLeaderboard returns the top players by points for period. The all-time
// board ("" or "all") comes from Redis; rolling windows are aggregated from
// stored results.
func (s *ScoreService) GetLeaderboard(ctx context.Context, period string, limit int) ([]model.LeaderboardEntry, error) {
	if period == "" || period == PeriodAll {
		return s.leaderboard.GetTop(ctx, limit)
	}
	window, ok := periodWindows[period]
	if !ok {
		return nil, game.Errorf(game.KindInvalidInput, "unknown leaderboard period %q", period)
	}
	entries, err := s.results.Leaderboard(ctx, time.Now().Add(-window), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s leaderboard: %w", period, err)
	}
	return entries, nil
}

// GetHistory returns a player's most recent results.
func (s *ScoreService) GetHistory(ctx context.Context, player string, limit int) ([]*model.GameResult, error) {
	return s.results.ListByPlayer(ctx, player, limit)
}

// GetRank returns the player's 1-indexed leaderboard position, or -1 when
// the player has no wins.
func (s *ScoreService) GetRank(ctx context.Context, player string) (int64, error) {
	return s.leaderboard.GetRank(ctx, player)
}

// GetResult returns one finished game, or nil when it is unknown.
func (s *ScoreService) GetResult(ctx context.Context, gameID string) (*model.GameResult, error) {
	return s.results.GetByGameID(ctx, gameID)
}
