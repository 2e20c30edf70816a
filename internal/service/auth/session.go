package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisKeySession returns the Redis key for a session.
func redisKeySession(sessionID uuid.UUID) string { return "session:" + sessionID.String() }

// Sessions keeps console sessions alive server-side so a token can be
// revoked before it expires.
type Sessions interface {
	Save(ctx context.Context, sessionID uuid.UUID, principal string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID uuid.UUID) (bool, error)
	Delete(ctx context.Context, sessionID uuid.UUID) (bool, error)
}

type redisSessions struct {
	rdb *redis.Client
}

func NewRedisSessions(rdb *redis.Client) Sessions {
	return &redisSessions{rdb: rdb}
}

func (s *redisSessions) Save(ctx context.Context, sessionID uuid.UUID, principal string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, redisKeySession(sessionID), principal, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *redisSessions) Exists(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	err := s.rdb.Get(ctx, redisKeySession(sessionID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get session: %w", err)
	}
	return true, nil
}

func (s *redisSessions) Delete(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	n, err := s.rdb.Del(ctx, redisKeySession(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return n > 0, nil
}
