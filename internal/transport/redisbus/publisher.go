package redisbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/forceteam/internal/model"
)

const (
	publishBufferSize = 256
	publishTimeout    = 2 * time.Second
)

// Publisher sends reports to a Redis channel from its own goroutine
type Publisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
	ch      chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

// NewPublisher starts publishing to channel. Call Close to flush it.
func NewPublisher(client *redis.Client, channel string, logger *slog.Logger) *Publisher {
	p := &Publisher{
		client:  client,
		channel: channel,
		logger:  logger.With(slog.String("component", "redis-publisher")),
		ch:      make(chan []byte, publishBufferSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Report implements report.Reporter
func (p *Publisher) Report(r model.Report) {
	data, err := json.Marshal(r)
	if err != nil {
		p.logger.Error("failed to encode report", slog.String("kind", string(r.Kind)), slog.Any("error", err))
		return
	}
	select {
	case p.ch <- data:
	default:
		p.logger.Warn("publish buffer full, dropping report", slog.String("kind", string(r.Kind)))
	}
}

// Close stops accepting reports and waits for queued ones to be sent
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		close(p.ch)
	})
	<-p.done
}

func (p *Publisher) run() {
	defer close(p.done)
	for data := range p.ch {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
			p.logger.Error("failed to publish report", slog.String("error", err.Error()))
		}
		cancel()
	}
}
