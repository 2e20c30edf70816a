package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const watermarkTTL = 30 * 24 * time.Hour

// Watermark remembers the booking count a viewer last saw.
type Watermark interface {
	// Swap stores n and returns the previous value. seen is false on a
	// viewer's first look.
	Swap(ctx context.Context, storeID, viewerID uuid.UUID, n int) (prev int, seen bool, err error)
}

func redisKeyWatermark(storeID, viewerID uuid.UUID) string {
	return "calendar:seen:" + storeID.String() + ":" + viewerID.String()
}

type redisWatermark struct {
	rdb *redis.Client
}

func NewRedisWatermark(rdb *redis.Client) Watermark {
	return &redisWatermark{rdb: rdb}
}

func (w *redisWatermark) Swap(ctx context.Context, storeID, viewerID uuid.UUID, n int) (int, bool, error) {
	key := redisKeyWatermark(storeID, viewerID)
	prev, err := w.rdb.GetSet(ctx, key, n).Int()
	seen := true
	if errors.Is(err, redis.Nil) {
		seen, err = false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("swap calendar watermark: %w", err)
	}
	w.rdb.Expire(ctx, key, watermarkTTL)
	return prev, seen, nil
}
