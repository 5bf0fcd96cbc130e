package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Namespace prefixes every key, so several servers can share one Redis
	Namespace string

	// MaxReports caps the journal list length
	MaxReports int64
	// JournalTTL expires the journal after a quiet period; zero keeps it forever
	JournalTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		Namespace:    "default",
		MaxReports:   1000,
		JournalTTL:   7 * 24 * time.Hour,
	}
}
