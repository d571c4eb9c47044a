package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// IdempotencyStore maps a caller-supplied idempotency key to the reservation it produced.
type IdempotencyStore interface {
	// Claim marks key as in flight. When the key already exists it returns
	// claimed=false and the stored reservation id ("" while still in flight).
	Claim(ctx context.Context, key string, ttl time.Duration) (reservationID string, claimed bool, err error)
	Complete(ctx context.Context, key, reservationID string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

const idempotencyPrefix = "idempotency:reservation:"

type redisIdempotencyStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewIdempotencyStore(client *redis.Client, log *zap.Logger) IdempotencyStore {
	return &redisIdempotencyStore{
		client: client,
		log:    log.With(zap.String("repository", "idempotency")),
	}
}

func (s *redisIdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	redisKey := idempotencyPrefix + key

	// the key can expire between SETNX and GET, so try twice
	for attempt := 0; attempt < 2; attempt++ {
		claimed, err := s.client.SetNX(ctx, redisKey, "", ttl).Result()
		if err != nil {
			return "", false, fmt.Errorf("claim idempotency key %s: %w", key, err)
		}
		if claimed {
			return "", true, nil
		}

		reservationID, err := s.client.Get(ctx, redisKey).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("read idempotency key %s: %w", key, err)
		}
		return reservationID, false, nil
	}

	return "", false, nil
}

func (s *redisIdempotencyStore) Complete(ctx context.Context, key, reservationID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, idempotencyPrefix+key, reservationID, ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key %s: %w", key, err)
	}
	s.log.Debug("Idempotency key completed", zap.String("key", key), zap.String("reservation_id", reservationID))
	return nil
}

func (s *redisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key %s: %w", key, err)
	}
	s.log.Debug("Idempotency key released", zap.String("key", key))
	return nil
}
