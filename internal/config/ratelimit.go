package config

import (
	"strconv"
	"time"
)

// RateLimitConfig defines settings for the fixed-window limiter applied to
// the auth endpoints. Requests is the number of calls allowed per Window
// per client IP.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
	Prefix   string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig. Defaults apply when variables are not set.
func LoadRateLimitConfig() RateLimitConfig {
	window, err := time.ParseDuration(getenv("RATELIMIT_WINDOW", "1m"))
	if err != nil {
		window = time.Minute
	}
	reqs, _ := strconv.Atoi(getenv("RATELIMIT_REQUESTS", "30"))
	return RateLimitConfig{
		Enabled:  getenv("RATELIMIT_ENABLED", "true") == "true",
		Requests: reqs,
		Window:   window,
		Prefix:   getenv("RATELIMIT_PREFIX", "ratelimit"),
	}
}
