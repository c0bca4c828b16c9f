package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"unoserver/internal/cache"
	"unoserver/internal/config"
	"unoserver/internal/logger"
	"unoserver/internal/repository"
	"unoserver/internal/service"
	"unoserver/internal/transport/natsbus"
	"unoserver/internal/transport/rest"
	"unoserver/internal/transport/ws"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Log

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	log.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("failed to ping Redis", zap.Error(err))
	}
	log.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))

	// Initialize repositories
	resultRepo := repository.NewResultRepo(db)
	if err := resultRepo.EnsureIndexes(pingCtx); err != nil {
		log.Warn("failed to ensure result indexes", zap.Error(err))
	}

	// Initialize caches
	roomCache := cache.NewRoomCache(rdb)
	leaderboard := cache.NewLeaderboardCache(rdb)

	// Initialize services
	scoreSvc := service.NewScoreService(resultRepo, leaderboard)
	registry := service.NewRegistry(roomCache, cfg.MaxPlayers)
	gameSvc := service.NewGameService(registry, scoreSvc)

	wsHub := ws.NewHub()

	// Room events go to WebSocket clients and, when configured, to NATS.
	broadcasters := []service.Broadcaster{wsHub}
	if cfg.NATSURL != "" {
		nc, err := natsbus.Connect(cfg.NATSURL)
		if err != nil {
			log.Warn("NATS unavailable, event mirror disabled", zap.String("url", cfg.NATSURL), zap.Error(err))
		} else {
			defer nc.Drain()
			broadcasters = append(broadcasters, natsbus.NewPublisher(nc))
			log.Info("connected to NATS", zap.String("url", nc.ConnectedUrl()))
		}
	}
	gameSvc.SetBroadcaster(service.MultiBroadcaster(broadcasters...))

	router := rest.NewRouter(&rest.Container{
		Registry:    registry,
		Games:       gameSvc,
		Scores:      scoreSvc,
		WSHub:       wsHub,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.HTTPPort), zap.Int("maxPlayers", cfg.MaxPlayers))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited", zap.Int("openRooms", registry.Len()))
}
