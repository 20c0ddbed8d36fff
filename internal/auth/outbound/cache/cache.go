// Package cache stores the short-lived authentication state that does not
// belong in the principals table: the "OTP verified" grant issued after a
// successful code check, and the denylist of revoked session IDs.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sentraid/sentra/internal/pkg/clock"
)

const (
	grantKeyPrefix   = "otp_good:"
	revokedKeyPrefix = "revoked:"
)

type Cache interface {
	// PutGrant records that the principal passed an OTP check. The grant
	// disappears after ttl and is never refreshed implicitly.
	PutGrant(ctx context.Context, principalID uint64, ttl time.Duration) error
	HasGrant(ctx context.Context, principalID uint64) (bool, error)
	DeleteGrant(ctx context.Context, principalID uint64) error

	// RevokeSession denylists a token ID until the token would have
	// expired on its own.
	RevokeSession(ctx context.Context, jti string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, jti string) (bool, error)
}

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type FactoryOptions struct {
	RedisClient *redis.Client
	Clock       clock.Clocker
}

func NewFromDriver(driver string, opts FactoryOptions) (Cache, error) {
	switch driver {
	case DriverRedis:
		return NewRedis(opts.RedisClient)
	case DriverMemory, "":
		return NewMemory(opts.Clock), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", driver)
	}
}

func grantKey(principalID uint64) string {
	return fmt.Sprintf("%s%d", grantKeyPrefix, principalID)
}

func revokedKey(jti string) string {
	return revokedKeyPrefix + jti
}
