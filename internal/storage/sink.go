package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/forceteam/internal/model"
)

const (
	sinkBufferSize   = 256
	sinkWriteTimeout = 2 * time.Second
)

// Sink writes reports to a Journal from its own goroutine so the tick loop
// never waits on storage. Reports are dropped when the buffer is full.
type Sink struct {
	journal Journal
	logger  *slog.Logger
	ch      chan model.Report

	closeOnce sync.Once
	done      chan struct{}
}

// NewSink starts a writer goroutine for journal. Call Close to flush it.
func NewSink(journal Journal, logger *slog.Logger) *Sink {
	s := &Sink{
		journal: journal,
		logger:  logger.With(slog.String("component", "journal-sink")),
		ch:      make(chan model.Report, sinkBufferSize),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Report queues r for writing
func (s *Sink) Report(r model.Report) {
	select {
	case s.ch <- r:
	default:
		s.logger.Warn("journal buffer full, dropping report", slog.String("kind", string(r.Kind)))
	}
}

// Close stops accepting reports and waits for queued ones to be written
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		close(s.ch)
	})
	<-s.done
}

func (s *Sink) run() {
	defer close(s.done)
	for r := range s.ch {
		ctx, cancel := context.WithTimeout(context.Background(), sinkWriteTimeout)
		if err := s.journal.Append(ctx, r); err != nil {
			s.logger.Error("failed to append report",
				slog.String("kind", string(r.Kind)),
				slog.String("error", err.Error()),
			)
		}
		cancel()
	}
}
