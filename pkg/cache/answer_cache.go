package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnswerCache memoizes generated answers per (session, query) pair so a
// repeated identical question skips the embedding and generation calls.
// Redis being unavailable only disables caching, never fails a query.
type AnswerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAnswerCache(rdb *redis.Client, ttl time.Duration) *AnswerCache {
	return &AnswerCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *AnswerCache) key(sessionId, query string) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("answer:%s:%s", sessionId, hex.EncodeToString(sum[:]))
}

// Get returns the cached answer and whether one was found.
func (c *AnswerCache) Get(ctx context.Context, sessionId, query string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, c.key(sessionId, query)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores an answer; errors are ignored since the cache is best-effort.
func (c *AnswerCache) Set(ctx context.Context, sessionId, query, answer string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, c.key(sessionId, query), answer, c.ttl)
}
