package goAccount

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/draventh/goAccount/internal"
)

const loginLimiterKeyPrefix = "llk:"

var errLoginLimiterUnavailable = errors.New("login limiter backend unavailable")

// loginLimiter tracks consecutive failed login attempts per account in Redis.
// The counter lives from the first failure until the end of the current
// calendar day (absolute expiry, not sliding) and is never reset by a
// successful login; it simply ages out.
type loginLimiter struct {
	redis  *redis.Client
	config SecurityConfig
	now    func() time.Time
}

func newLoginLimiter(redisClient *redis.Client, cfg SecurityConfig) *loginLimiter {
	return &loginLimiter{
		redis:  redisClient,
		config: cfg,
		now:    time.Now,
	}
}

func (l *loginLimiter) enabled() bool {
	return l.config.MaxLoginAttempts > 0
}

func (l *loginLimiter) key(accountID int64) string {
	return loginLimiterKeyPrefix + strconv.FormatInt(accountID, 10)
}

// IsLocked reports whether the stored failure count exceeds the configured
// threshold. Absence of a counter means not locked.
func (l *loginLimiter) IsLocked(ctx context.Context, accountID int64) (bool, error) {
	if !l.enabled() {
		return false, nil
	}

	count, err := l.redis.Get(ctx, l.key(accountID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", errLoginLimiterUnavailable, err)
	}

	return count > int64(l.config.MaxLoginAttempts), nil
}

// RecordFailure creates the counter with value 1 and an end-of-day TTL on the
// first failure, and increments it without touching the TTL afterwards.
//
// The exists-then-write pair is two round trips with no atomicity guarantee;
// concurrent failures for one account can undercount by one. The counter is a
// soft control, so that slip is accepted rather than paying for a lock on
// every login.
func (l *loginLimiter) RecordFailure(ctx context.Context, accountID int64) error {
	if !l.enabled() {
		return nil
	}

	key := l.key(accountID)
	exists, err := l.redis.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", errLoginLimiterUnavailable, err)
	}

	if exists == 0 {
		if err := l.redis.SetEx(ctx, key, "1", internal.UntilEndOfDay(l.now())).Err(); err != nil {
			return fmt.Errorf("%w: %v", errLoginLimiterUnavailable, err)
		}
		return nil
	}

	if err := l.redis.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", errLoginLimiterUnavailable, err)
	}
	return nil
}

// FailureCount returns the current counter value, 0 when absent.
func (l *loginLimiter) FailureCount(ctx context.Context, accountID int64) (int64, error) {
	if !l.enabled() {
		return 0, nil
	}

	count, err := l.redis.Get(ctx, l.key(accountID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", errLoginLimiterUnavailable, err)
	}
	return count, nil
}
