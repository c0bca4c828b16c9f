package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"unoserver/internal/model"
)

const (
	roomKeyPrefix = "uno:room:"
	liveRoomsKey  = "uno:rooms:live" // ZSET code -> last update (unix ms)

	// An idle room's mirror lapses after this long even if the process
	// that owned it died without cleaning up.
	roomStatusTTL = 24 * time.Hour
)

// RoomCache mirrors room status into Redis so other processes can see which
// codes are taken. The in-memory registry stays authoritative; the mirror
// is best-effort.
type RoomCache interface {
	SetMeta(ctx context.Context, code string, meta *model.RoomMeta) error
	Delete(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) (bool, error)
}

type roomCache struct {
	client *redis.Client
}

// NewRoomCache returns a RoomCache backed by client.
func NewRoomCache(client *redis.Client) RoomCache {
	return &roomCache{client: client}
}

func roomKey(code string) string {
	return roomKeyPrefix + code
}

// SetMeta writes the status document and bumps the room in the live index.
// Index entries older than the status TTL belong to lapsed documents and are
// trimmed in the same transaction.
func (c *roomCache) SetMeta(ctx context.Context, code string, meta *model.RoomMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	updated := meta.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	cutoff := updated.Add(-roomStatusTTL).UnixMilli()

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, roomKey(code), data, roomStatusTTL)
		pipe.ZAdd(ctx, liveRoomsKey, redis.Z{Score: float64(updated.UnixMilli()), Member: code})
		pipe.ZRemRangeByScore(ctx, liveRoomsKey, "-inf", "("+strconv.FormatInt(cutoff, 10))
		return nil
	})
	return err
}

func (c *roomCache) Delete(ctx context.Context, code string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, roomKey(code))
		pipe.ZRem(ctx, liveRoomsKey, code)
		return nil
	})
	return err
}

// Exists reports whether any process holds a live status document for code.
func (c *roomCache) Exists(ctx context.Context, code string) (bool, error) {
	n, err := c.client.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
