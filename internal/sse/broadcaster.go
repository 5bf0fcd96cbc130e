package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/forceteam/internal/model"
)

// ReportEvent is the SSE event name carrying a report
const ReportEvent = "report"

// Broadcaster publishes enforcement reports to hub clients as JSON
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Report implements report.Reporter
func (b *Broadcaster) Report(r model.Report) {
	data, err := json.Marshal(r)
	if err != nil {
		b.logger.Error("sse failed to encode report",
			slog.String("kind", string(r.Kind)),
			slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(ReportEvent, string(data))
}
