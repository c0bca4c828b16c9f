package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"unoserver/internal/cache"
	"unoserver/internal/config"
	"unoserver/internal/game"
	"unoserver/internal/logger"
	"unoserver/internal/model"
	"unoserver/internal/repository"
	"unoserver/internal/service"
	"unoserver/internal/sim"
)

// seed fills the result store and leaderboard with simulated games.
func main() {
	games := flag.Int("games", 20, "number of games to simulate")
	seats := flag.Int("players", 4, "players per game (2-4)")
	flag.Parse()

	cfg := config.Load()
	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Log

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to ping Redis", zap.Error(err))
	}

	results := repository.NewResultRepo(client.Database(cfg.MongoDB))
	if err := results.EnsureIndexes(ctx); err != nil {
		log.Warn("failed to ensure result indexes", zap.Error(err))
	}
	scores := service.NewScoreService(results, cache.NewLeaderboardCache(rdb))

	n := min(max(*seats, config.MinPlayers), config.MaxPlayers)
	roster := make([]string, n)
	for i := range roster {
		roster[i] = fmt.Sprintf("bot-%d", i+1)
	}

	recorded := 0
	for i := 0; i < *games; i++ {
		s := game.NewSession(fmt.Sprintf("SEED%04d", i), nil)
		res, err := sim.Play(s, roster, 0)
		if errors.Is(err, sim.ErrStalled) {
			log.Warn("simulated game stalled", zap.String("game", s.ID()))
			continue
		}
		if err != nil {
			log.Fatal("simulation failed", zap.Error(err))
		}

		if err := scores.RecordResult(ctx, model.NewGameResult(res)); err != nil {
			log.Fatal("failed to record result", zap.String("game", res.GameID), zap.Error(err))
		}
		recorded++
	}

	log.Info("seeding complete", zap.Int("games", recorded), zap.Int("players", n))
}
