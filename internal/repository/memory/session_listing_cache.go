package memory

import (
	"time"

	"zeorag-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const listingKey = "session_listing"

// SessionListingCache keeps the distinct-session listing in memory for a
// short while. Appends and deletes invalidate it, so the listing endpoint
// stays cheap without going stale.
type SessionListingCache struct {
	cache *cache.Cache
}

func NewSessionListingCache() *SessionListingCache {
	c := cache.New(30*time.Second, 5*time.Minute)
	return &SessionListingCache{
		cache: c,
	}
}

func (r *SessionListingCache) Get() ([]*entity.SessionInfo, bool) {
	if x, found := r.cache.Get(listingKey); found {
		return x.([]*entity.SessionInfo), true
	}
	return nil, false
}

func (r *SessionListingCache) Set(sessions []*entity.SessionInfo) {
	r.cache.Set(listingKey, sessions, cache.DefaultExpiration)
}

func (r *SessionListingCache) Invalidate() {
	r.cache.Delete(listingKey)
}
