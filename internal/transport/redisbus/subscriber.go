// Package redisbus lets match bots drive the engine over Redis pub/sub:
// console lines arrive on one channel and reports go out on another.
package redisbus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/forceteam/internal/services/command"
)

// Executor runs a console line
type Executor interface {
	Execute(ctx context.Context, line string) (command.Result, error)
}

// Reply is published after each command
type Reply struct {
	Line    string `json:"line"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Subscriber executes console lines received on the command channel
type Subscriber struct {
	client *redis.Client
	cfg    Config
	exec   Executor
	logger *slog.Logger
	ready  chan struct{}
}

// NewSubscriber creates a new Subscriber
func NewSubscriber(client *redis.Client, cfg Config, exec Executor, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		client: client,
		cfg:    cfg,
		exec:   exec,
		logger: logger.With(slog.String("component", "redis-subscriber")),
		ready:  make(chan struct{}),
	}
}

// Ready is closed once the subscription is confirmed
func (s *Subscriber) Ready() <-chan struct{} {
	return s.ready
}

// Run consumes commands until ctx is cancelled
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.cfg.CommandChannel)
	defer pubsub.Close()

	// Wait for confirmation that subscription is created
	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	close(s.ready)
	s.logger.Info("listening for commands", slog.String("channel", s.cfg.CommandChannel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("command subscriber stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.handle(ctx, msg.Payload)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, line string) {
	reply := Reply{Line: line}
	res, err := s.exec.Execute(ctx, line)
	if err != nil {
		s.logger.Warn("bus command failed", slog.String("line", line), slog.String("error", err.Error()))
		reply.Error = err.Error()
	} else {
		reply.OK = true
		reply.Message = res.Message
	}

	if s.cfg.ReplyChannel == "" {
		return
	}
	data, err := json.Marshal(reply)
	if err != nil {
		return
	}
	if err := s.client.Publish(ctx, s.cfg.ReplyChannel, data).Err(); err != nil {
		s.logger.Error("failed to publish reply", slog.String("error", err.Error()))
	}
}
