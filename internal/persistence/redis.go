package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

// Redis wraps the go-redis client and adds best-effort JSON cache helpers.
// All cache operations tolerate a nil receiver so services work without redis.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// GetJSON loads and decodes a cached value into dest. Returns false on a
// miss, a decode failure, or when no client is configured.
func (r *Redis) GetJSON(ctx context.Context, key string, dest any) bool {
	if r == nil || r.Client == nil {
		return false
	}
	raw, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON encodes and stores a value with a TTL, best effort.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if r == nil || r.Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = r.Client.Set(ctx, key, raw, ttl).Err()
}

// Delete drops a cached key, best effort.
func (r *Redis) Delete(ctx context.Context, key string) {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Del(ctx, key).Err()
}
