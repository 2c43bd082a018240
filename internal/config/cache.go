package config

import (
	"strconv"
	"time"
)

// CacheConfig defines settings for the response cache middleware. When
// Enabled is false or no Redis client is available, caching is disabled.
// Only successful GET responses are cached; MaxBodyBytes caps the size of
// a cacheable body so a huge listing cannot evict everything else.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults apply when variables are not set.
func LoadCacheConfig() CacheConfig {
	ttl, err := time.ParseDuration(getenv("CACHE_TTL", "30s"))
	if err != nil {
		ttl = 30 * time.Second
	}
	maxBody, _ := strconv.Atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576"))
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		TTL:          ttl,
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: maxBody,
	}
}
