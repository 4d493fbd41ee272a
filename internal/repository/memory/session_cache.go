package memory

import (
	"time"

	"ai-docquery-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SessionCache keeps recently seen session records in memory so the query
// hot path skips a database round trip. Entries expire, so status changes
// written by the ingestion worker become visible shortly after.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	// Default expiration 5 minutes, purge sweep every 10 minutes
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

func (r *SessionCache) Save(session *entity.DocumentSession) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *SessionCache) Get(sessionId string) (*entity.DocumentSession, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*entity.DocumentSession), true
	}
	return nil, false
}

func (r *SessionCache) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}
