package enhance

import "time"

// Config holds enhancement settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one Enhance call. Zero means no extra bound beyond the
	// caller's context.
	Timeout time.Duration

	// CacheSize is the number of override sets kept in memory. Zero
	// disables caching.
	CacheSize int
}

// DefaultConfig returns sensible defaults for section enhancement.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.3,
		Timeout:     20 * time.Second,
		CacheSize:   64,
	}
}
