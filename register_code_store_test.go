package goAccount

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCodeStore(t *testing.T) (*registerCodeStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := RegisterCodeConfig{
		TTL:         20 * time.Minute,
		DecayStep:   10 * time.Second,
		RedisPrefix: "rck",
	}
	return newRegisterCodeStore(client, cfg), mr
}

func TestCodeStoreIssueAndVerify(t *testing.T) {
	s, mr := newTestCodeStore(t)
	ctx := context.Background()

	code, err := s.Issue(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if len(code) != 40 {
		t.Errorf("code length = %d, want 40", len(code))
	}
	if ttl := mr.TTL(s.key("alice@example.com")); ttl != 20*time.Minute {
		t.Errorf("TTL = %v, want 20m", ttl)
	}

	stored, err := s.Verify(ctx, "alice@example.com", code)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if stored != code {
		t.Errorf("Verify returned %q, want the issued code", stored)
	}
}

func TestCodeStoreKeyHidesEmail(t *testing.T) {
	s, _ := newTestCodeStore(t)

	key := s.key("alice@example.com")
	if key == "rck:alice@example.com" {
		t.Error("raw email leaked into the cache key")
	}
	if key != s.key("alice@example.com") {
		t.Error("key derivation is not stable")
	}
	if key == s.key("bob@example.com") {
		t.Error("distinct emails collide on one key")
	}
}

func TestCodeStoreReissueOverwrites(t *testing.T) {
	s, _ := newTestCodeStore(t)
	ctx := context.Background()

	first, err := s.Issue(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("first Issue: %v", err)
	}
	second, err := s.Issue(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("second Issue: %v", err)
	}
	if first == second {
		t.Fatal("reissue produced the same code")
	}

	if _, err := s.Verify(ctx, "alice@example.com", first); !errors.Is(err, ErrCodeIncorrect) {
		t.Errorf("stale code: got %v, want ErrCodeIncorrect", err)
	}
	if _, err := s.Verify(ctx, "alice@example.com", second); err != nil {
		t.Errorf("current code: %v", err)
	}
}

func TestCodeStoreVerifyMissing(t *testing.T) {
	s, _ := newTestCodeStore(t)

	_, err := s.Verify(context.Background(), "ghost@example.com", "anything")
	if !errors.Is(err, ErrCodeExpired) {
		t.Errorf("got %v, want ErrCodeExpired", err)
	}
}

func TestCodeStoreWrongGuessDecay(t *testing.T) {
	s, mr := newTestCodeStore(t)
	ctx := context.Background()

	if _, err := s.Issue(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	key := s.key("alice@example.com")

	for i := 1; i <= 3; i++ {
		if _, err := s.Verify(ctx, "alice@example.com", "not-it"); !errors.Is(err, ErrCodeIncorrect) {
			t.Fatalf("guess %d: got %v, want ErrCodeIncorrect", i, err)
		}
	}

	want := 20*time.Minute - 30*time.Second
	if ttl := mr.TTL(key); ttl != want {
		t.Errorf("TTL after 3 wrong guesses = %v, want %v", ttl, want)
	}
}

func TestCodeStoreDecayFloor(t *testing.T) {
	s, mr := newTestCodeStore(t)
	ctx := context.Background()

	if _, err := s.Issue(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	key := s.key("alice@example.com")
	mr.SetTTL(key, 9*time.Second)

	if _, err := s.Verify(ctx, "alice@example.com", "not-it"); !errors.Is(err, ErrCodeIncorrect) {
		t.Fatalf("got %v, want ErrCodeIncorrect", err)
	}
	if mr.Exists(key) {
		t.Error("key outlived a wrong guess below the decay step")
	}
}

func TestCodeStoreExpiry(t *testing.T) {
	s, mr := newTestCodeStore(t)
	ctx := context.Background()

	code, err := s.Issue(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	mr.FastForward(20*time.Minute + time.Second)

	if _, err := s.Verify(ctx, "alice@example.com", code); !errors.Is(err, ErrCodeExpired) {
		t.Errorf("got %v, want ErrCodeExpired", err)
	}
}

func TestCodeStoreOutageMapsToExpired(t *testing.T) {
	s, mr := newTestCodeStore(t)
	ctx := context.Background()

	mr.Close()

	if _, err := s.Issue(ctx, "alice@example.com"); !errors.Is(err, ErrRegisterCodeUnavailable) {
		t.Errorf("Issue during outage: got %v, want ErrRegisterCodeUnavailable", err)
	}
	if _, err := s.Verify(ctx, "alice@example.com", "anything"); !errors.Is(err, ErrCodeExpired) {
		t.Errorf("Verify during outage: got %v, want ErrCodeExpired", err)
	}
}
