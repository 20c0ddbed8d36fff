package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) (*Redis, error) {
	if client == nil {
		return nil, errors.New("cache: redis client is required")
	}

	return &Redis{client: client}, nil
}

func (r *Redis) PutGrant(ctx context.Context, principalID uint64, ttl time.Duration) error {
	return r.client.Set(ctx, grantKey(principalID), "1", ttl).Err()
}

func (r *Redis) HasGrant(ctx context.Context, principalID uint64) (bool, error) {
	err := r.client.Get(ctx, grantKey(principalID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *Redis) DeleteGrant(ctx context.Context, principalID uint64) error {
	return r.client.Del(ctx, grantKey(principalID)).Err()
}

func (r *Redis) RevokeSession(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// token already expired, nothing to denylist
		return nil
	}

	return r.client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (r *Redis) IsSessionRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
