// Package session keeps a rolling per-session conversation summary so that
// follow-up questions carry context even when the caller supplies none.
// The summary is plain text capped to a fixed size; the oldest exchanges
// fall off the front. Losing it only degrades answer quality, so every
// failure here is non-fatal to the chat path.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "sahayak:session:"

	// maxSummaryLen bounds the stored summary; answers are truncated before
	// appending so one verbose reply cannot evict the whole history.
	maxSummaryLen = 2000
	maxAnswerLen  = 400

	defaultTTL = 24 * time.Hour
)

// KV is the storage the store needs. Satisfied by RedisKV; tests use an
// in-memory implementation.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Store reads and appends session summaries.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore creates a Store. A non-positive ttl falls back to 24h.
func NewStore(kv KV, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{kv: kv, ttl: ttl}
}

// Summary returns the current summary for the session, empty when none.
func (s *Store) Summary(ctx context.Context, sessionID string) (string, error) {
	return s.kv.Get(ctx, keyPrefix+sessionID)
}

// Append records one exchange, trimming the summary from the front when it
// exceeds the cap. Each Set refreshes the TTL.
func (s *Store) Append(ctx context.Context, sessionID, question, answer string) error {
	key := keyPrefix + sessionID
	current, err := s.kv.Get(ctx, key)
	if err != nil {
		return err
	}

	if len(answer) > maxAnswerLen {
		answer = answer[:maxAnswerLen] + "..."
	}
	updated := current + fmt.Sprintf("Q: %s\nA: %s\n\n", question, answer)
	if len(updated) > maxSummaryLen {
		updated = updated[len(updated)-maxSummaryLen:]
	}
	return s.kv.Set(ctx, key, updated, s.ttl)
}

// RedisKV adapts a redis client to the KV interface. A missing key reads as
// an empty summary, not an error.
type RedisKV struct {
	Client *redis.Client
}

func (r RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (r RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}
