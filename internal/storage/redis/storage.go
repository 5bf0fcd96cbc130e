package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/forceteam/internal/model"
	"github.com/mcoot/forceteam/internal/storage"
)

// Storage is a Redis-backed journal. Reports are pushed onto the head of a
// capped list.
type Storage struct {
	client *redis.Client
	cfg    Config
	key    string
}

// New creates a new Redis journal and checks the connection
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis journal with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.MaxReports <= 0 {
		cfg.MaxReports = DefaultConfig().MaxReports
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		key:    journalKey(cfg.Namespace),
	}
}

// Client exposes the underlying connection so the command bus can share it
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Journal = (*Storage)(nil)

func (s *Storage) Append(ctx context.Context, r model.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	// Use pipeline so push, trim and expiry go out together
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, data)
	pipe.LTrim(ctx, s.key, 0, s.cfg.MaxReports-1)
	if s.cfg.JournalTTL > 0 {
		pipe.Expire(ctx, s.key, s.cfg.JournalTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) List(ctx context.Context, limit int) ([]model.Report, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	items, err := s.client.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, err
	}

	reports := make([]model.Report, 0, len(items))
	for _, item := range items {
		var r model.Report
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
