package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"unoserver/internal/model"
)

// LeaderboardCache handles Redis ZSET operations for the all-time leaderboard
type LeaderboardCache interface {
	AddWin(ctx context.Context, player string, points int) error
	GetTop(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	GetRank(ctx context.Context, player string) (int64, error)
}

const (
	pointsKey = "uno:lb:points"
	winsKey   = "uno:lb:wins"
)

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) AddWin(ctx context.Context, player string, points int) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, pointsKey, float64(points), player)
		pipe.ZIncrBy(ctx, winsKey, 1, player)
		return nil
	})
	return err
}

func (c *leaderboardCache) GetTop(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, pointsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []model.LeaderboardEntry{}, nil
	}

	members := make([]string, len(results))
	for i, z := range results {
		members[i] = z.Member.(string)
	}
	wins, err := c.client.ZMScore(ctx, winsKey, members...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, len(results))
	for i, z := range results {
		entries[i] = model.LeaderboardEntry{
			Player: members[i],
			Points: int(z.Score),
			Wins:   int(wins[i]),
			Rank:   i + 1,
		}
	}
	return entries, nil
}

func (c *leaderboardCache) GetRank(ctx context.Context, player string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, pointsKey, player).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}
