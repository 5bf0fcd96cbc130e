// Package command is the goroutine-safe front door to the roster engine.
// Every operation is marshalled onto the tick loop.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/forceteam/internal/model"
	"github.com/mcoot/forceteam/internal/services/roster"
)

// Runner executes fn on the goroutine that owns the engine
type Runner interface {
	Call(ctx context.Context, fn func()) error
}

// RosterList is a snapshot of the roster
type RosterList struct {
	Rosters      []model.RosterEntry `json:"rosters"`
	KnownPlayers int                 `json:"known_players"`
}

// Result is the outcome of a console line
type Result struct {
	Command Name   `json:"command"`
	Message string `json:"message"`

	Entry   *model.RosterEntry  `json:"entry,omitempty"`
	Removed *int                `json:"removed,omitempty"`
	Sweep   *roster.SweepResult `json:"sweep,omitempty"`
	Rosters *RosterList         `json:"rosters,omitempty"`
}

// Service exposes roster operations to other goroutines
type Service struct {
	runner Runner
	engine *roster.Engine
	logger *slog.Logger
}

// NewService creates a new command service
func NewService(runner Runner, engine *roster.Engine, logger *slog.Logger) *Service {
	return &Service{
		runner: runner,
		engine: engine,
		logger: logger.With(slog.String("component", "command-service")),
	}
}

// Do runs fn on the loop
func (s *Service) Do(ctx context.Context, fn func()) error {
	return s.runner.Call(ctx, fn)
}

// SetRoster pins a player to a team
func (s *Service) SetRoster(ctx context.Context, playerID, team string) (model.RosterEntry, error) {
	var (
		entry  model.RosterEntry
		setErr error
	)
	if err := s.runner.Call(ctx, func() {
		entry, setErr = s.engine.SetRoster(playerID, team)
	}); err != nil {
		return model.RosterEntry{}, err
	}
	return entry, setErr
}

// ForceTeam pins a player and moves them whatever their current team
func (s *Service) ForceTeam(ctx context.Context, playerID, team string) (model.RosterEntry, error) {
	var (
		entry    model.RosterEntry
		forceErr error
	)
	if err := s.runner.Call(ctx, func() {
		entry, forceErr = s.engine.ForceTeam(playerID, team)
	}); err != nil {
		return model.RosterEntry{}, err
	}
	return entry, forceErr
}

// ClearRosters removes every entry and returns how many were removed
func (s *Service) ClearRosters(ctx context.Context) (int, error) {
	var removed int
	err := s.runner.Call(ctx, func() {
		removed = s.engine.ClearRosters()
	})
	return removed, err
}

// ApplyRosters runs a manual sweep
func (s *Service) ApplyRosters(ctx context.Context) (roster.SweepResult, error) {
	var res roster.SweepResult
	err := s.runner.Call(ctx, func() {
		res = s.engine.ApplyRosters()
	})
	return res, err
}

// Rosters returns every entry
func (s *Service) Rosters(ctx context.Context) (RosterList, error) {
	var list RosterList
	err := s.runner.Call(ctx, func() {
		list = RosterList{
			Rosters:      s.engine.Rosters(),
			KnownPlayers: s.engine.KnownPlayers(),
		}
	})
	return list, err
}

// Execute parses and runs one console line
func (s *Service) Execute(ctx context.Context, line string) (Result, error) {
	cmd, err := Parse(line)
	if err != nil {
		s.logger.Warn("rejected console command", slog.String("line", line), slog.String("error", err.Error()))
		return Result{}, err
	}

	res := Result{Command: cmd.Name}
	switch cmd.Name {
	case SetRoster:
		entry, err := s.SetRoster(ctx, cmd.Args[0], cmd.Args[1])
		if err != nil {
			return Result{}, err
		}
		res.Entry = &entry
		res.Message = fmt.Sprintf("%s pinned to %s", entry.PlayerID, entry.Team.Token())

	case ForceTeam:
		entry, err := s.ForceTeam(ctx, cmd.Args[0], cmd.Args[1])
		if err != nil {
			return Result{}, err
		}
		res.Entry = &entry
		res.Message = fmt.Sprintf("%s forced to %s", entry.PlayerID, entry.Team.Token())

	case ClearRosters:
		removed, err := s.ClearRosters(ctx)
		if err != nil {
			return Result{}, err
		}
		res.Removed = &removed
		res.Message = fmt.Sprintf("cleared %d roster entries", removed)

	case ApplyRosters:
		sweep, err := s.ApplyRosters(ctx)
		if err != nil {
			return Result{}, err
		}
		res.Sweep = &sweep
		res.Message = fmt.Sprintf("moved %d, %d already correct", sweep.Moved, sweep.Correct)

	case ListRosters:
		list, err := s.Rosters(ctx)
		if err != nil {
			return Result{}, err
		}
		res.Rosters = &list
		res.Message = formatRosters(list)
	}

	s.logger.Info("console command executed",
		slog.String("command", string(cmd.Name)),
		slog.String("result", res.Message),
	)
	return res, nil
}

func formatRosters(list RosterList) string {
	if len(list.Rosters) == 0 {
		return "no roster entries"
	}
	lines := make([]string, 0, len(list.Rosters))
	for _, e := range list.Rosters {
		lines = append(lines, fmt.Sprintf("%s %s", e.PlayerID, e.Team.Token()))
	}
	return strings.Join(lines, "\n")
}
