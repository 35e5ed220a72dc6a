package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// GameTTL applies to game state and its snapshot stacks; refreshed on every write
	GameTTL time.Duration

	// MaxSnapshots caps each snapshot stack, dropping the oldest entries (0 for no cap)
	MaxSnapshots int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		GameTTL:      7 * 24 * time.Hour,
		MaxSnapshots: 200,
	}
}
