package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/internal/database"
	"github.com/AymanChabbaki/safaria-sub000/internal/models"
)

const (
	// ListingCacheKeyPrefix is the Redis key prefix for cached collections.
	ListingCacheKeyPrefix = "safaria:listings:"
	// ListingCacheTTL bounds staleness when an invalidation is missed.
	ListingCacheTTL = 6 * time.Hour
)

// ListingCache caches whole listing collections per kind and language.
// Invalidation is wholesale: any admin write to a kind drops every
// language variant of that kind.
type ListingCache struct{}

func listingCacheKey(kind models.ListingKind, lang string) string {
	if lang == "" {
		lang = "fr"
	}
	return ListingCacheKeyPrefix + kind.Name + ":" + lang
}

// Get returns the cached collection, or ok=false on a miss. Redis
// failures count as misses, never as errors.
func (ListingCache) Get(ctx context.Context, kind models.ListingKind, lang string) ([]models.Listing, bool) {
	raw, err := database.RedisClient.Get(ctx, listingCacheKey(kind, lang)).Result()
	if err != nil {
		return nil, false
	}
	var listings []models.Listing
	if err := json.Unmarshal([]byte(raw), &listings); err != nil {
		return nil, false
	}
	return listings, true
}

// Set stores a collection; failures are ignored (the cache is an
// optimization, not a source of truth).
func (ListingCache) Set(ctx context.Context, kind models.ListingKind, lang string, listings []models.Listing) {
	raw, err := json.Marshal(listings)
	if err != nil {
		return
	}
	database.RedisClient.Set(ctx, listingCacheKey(kind, lang), raw, ListingCacheTTL)
}

// Invalidate drops every cached language variant of a kind.
func (ListingCache) Invalidate(ctx context.Context, kind models.ListingKind) {
	for _, lang := range []string{"fr", "en", "ar"} {
		database.RedisClient.Del(ctx, listingCacheKey(kind, lang))
	}
}

// Listings is the process-wide listing cache.
var Listings = ListingCache{}
