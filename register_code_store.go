package goAccount

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/draventh/goAccount/internal"
)

// registerCodeStore keeps one-time registration codes in Redis, keyed by the
// MD5 digest of the target email so the raw address never appears in the
// keyspace. A key exists only while its TTL is positive; once it expires the
// code is indistinguishable from never issued.
type registerCodeStore struct {
	redis  *redis.Client
	config RegisterCodeConfig
}

func newRegisterCodeStore(redisClient *redis.Client, cfg RegisterCodeConfig) *registerCodeStore {
	return &registerCodeStore{
		redis:  redisClient,
		config: cfg,
	}
}

func (s *registerCodeStore) key(email string) string {
	return s.config.RedisPrefix + ":" + internal.EmailDigest(email)
}

// Issue generates a fresh 160-bit code and stores it under the email's digest
// with the configured absolute TTL, replacing any earlier code for the same
// address.
func (s *registerCodeStore) Issue(ctx context.Context, email string) (string, error) {
	token, err := internal.RandToken(internal.RegisterCodeLength)
	if err != nil {
		return "", err
	}

	if err := s.redis.SetEx(ctx, s.key(email), token, s.config.TTL).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRegisterCodeUnavailable, err)
	}

	return token, nil
}

// Verify returns the stored code when candidate matches it. A missing key is
// reported as [ErrCodeExpired]; so is a cache outage, since an unreadable
// code is indistinguishable from an expired one and there is no safe
// fallback. On a mismatch the remaining TTL is decayed by one step and
// [ErrCodeIncorrect] is returned.
//
// A successful verification leaves the key intact: repeating the identical
// call within the remaining TTL succeeds again. The registration-completion
// step is expected to be idempotent against that replay.
func (s *registerCodeStore) Verify(ctx context.Context, email, candidate string) (string, error) {
	key := s.key(email)

	stored, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCodeExpired
		}
		return "", fmt.Errorf("%w: %v", ErrCodeExpired, err)
	}
	if stored == "" {
		return "", ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) != 1 {
		s.decay(ctx, key)
		return "", ErrCodeIncorrect
	}

	return stored, nil
}

// decay shrinks the key's remaining TTL by one step. Best effort: the
// TTL-then-EXPIRE pair is not atomic and a rare missed step under concurrent
// wrong guesses is acceptable.
func (s *registerCodeStore) decay(ctx context.Context, key string) {
	ttl, err := s.redis.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		return
	}

	if ttl > s.config.DecayStep {
		_ = s.redis.Expire(ctx, key, ttl-s.config.DecayStep).Err()
		return
	}

	// Remaining window is smaller than one step: let the key go instead of
	// handing the backend a non-positive TTL.
	_ = s.redis.Del(ctx, key).Err()
}
