package memory

import (
	"time"

	"bionic-interviewer-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

// TokenCache keeps validated token lookups in memory so that hot call-scoped
// endpoints do not hit the database on every request. Keyed by token hash.
type TokenCache struct {
	cache *cache.Cache
}

func NewTokenCache() *TokenCache {
	// 5 minute expiry, purge every minute. Short on purpose: revoking a
	// token must take effect quickly.
	c := cache.New(5*time.Minute, 1*time.Minute)
	return &TokenCache{
		cache: c,
	}
}

func (r *TokenCache) Save(tokenHash string, resolved *dto.ValidateTokenResponse) {
	r.cache.Set(tokenHash, resolved, cache.DefaultExpiration)
}

func (r *TokenCache) Get(tokenHash string) (*dto.ValidateTokenResponse, bool) {
	if x, found := r.cache.Get(tokenHash); found {
		return x.(*dto.ValidateTokenResponse), true
	}
	return nil, false
}

func (r *TokenCache) Delete(tokenHash string) {
	r.cache.Delete(tokenHash)
}
