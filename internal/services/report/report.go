// Package report fans enforcement outcomes out to their sinks.
package report

import (
	"context"
	"log/slog"

	"github.com/mcoot/forceteam/internal/model"
)

// Reporter receives engine reports. Implementations are called from the
// tick loop and must not block it.
type Reporter interface {
	Report(r model.Report)
}

// Func adapts a plain function into a Reporter
type Func func(r model.Report)

// Report calls f(r)
func (f Func) Report(r model.Report) {
	f(r)
}

// Fanout delivers every report to each reporter in order
type Fanout []Reporter

// Report implements Reporter
func (f Fanout) Report(r model.Report) {
	for _, rep := range f {
		if rep != nil {
			rep.Report(r)
		}
	}
}

// Nop discards reports
type Nop struct{}

// Report implements Reporter
func (Nop) Report(model.Report) {}

// Log writes reports to a structured logger. Operator-facing problems
// (mismatches, gone players, deferrals, rejected input) log at warn.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging reporter
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With(slog.String("component", "roster-report"))}
}

// Report implements Reporter
func (l *Log) Report(r model.Report) {
	level := slog.LevelInfo
	if r.Warning() {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{slog.String("kind", string(r.Kind))}
	if r.PlayerID != 0 {
		attrs = append(attrs, slog.String("player_id", r.PlayerID.String()))
	}
	if r.Team != model.TeamNone {
		attrs = append(attrs, slog.String("team", r.Team.String()))
	}
	if r.Detail != "" {
		attrs = append(attrs, slog.String("detail", r.Detail))
	}
	switch r.Kind {
	case model.ReportSweepCompleted:
		attrs = append(attrs, slog.Int("moved", r.Moved), slog.Int("correct", r.Correct))
	case model.ReportRostersCleared:
		attrs = append(attrs, slog.Int("removed", r.Removed))
	}

	l.logger.LogAttrs(context.Background(), level, message(r.Kind), attrs...)
}

func message(kind model.ReportKind) string {
	switch kind {
	case model.ReportRosterSet:
		return "roster entry set"
	case model.ReportRosterRejected:
		return "roster request rejected"
	case model.ReportRostersCleared:
		return "rosters cleared"
	case model.ReportDeferred:
		return "player not connected, deferring to connect"
	case model.ReportSwitchVerified:
		return "team switch verified"
	case model.ReportSwitchMismatched:
		return "team switch did not take effect"
	case model.ReportPlayerGone:
		return "player left during team switch"
	case model.ReportRespawned:
		return "player respawned"
	case model.ReportJoinVetoed:
		return "team selection vetoed"
	case model.ReportSweepCompleted:
		return "roster sweep completed"
	default:
		return "roster report"
	}
}
