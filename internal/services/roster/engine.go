// Package roster pins players to teams for the length of a match and keeps
// the live game in line with those pins.
package roster

import (
	"log/slog"
	"time"

	"github.com/mcoot/forceteam/internal/dependencies/clock"
	"github.com/mcoot/forceteam/internal/dependencies/tick"
	"github.com/mcoot/forceteam/internal/host"
	"github.com/mcoot/forceteam/internal/model"
	"github.com/mcoot/forceteam/internal/services/report"
)

// Timings holds the fixed delays the triggers wait on
type Timings struct {
	// ConnectSettleDelay lets a joining client finish initialising
	ConnectSettleDelay time.Duration
	// RoundStartDelay lets the game's own team balancing finish first
	RoundStartDelay time.Duration
	// LookupRetryInterval spaces lookups of a player that is not connected yet
	LookupRetryInterval time.Duration
	// LookupRetryAttempts is the total number of lookups before deferring
	LookupRetryAttempts int
}

// DefaultTimings returns the production delays
func DefaultTimings() Timings {
	return Timings{
		ConnectSettleDelay:  500 * time.Millisecond,
		RoundStartDelay:     time.Second,
		LookupRetryInterval: 500 * time.Millisecond,
		LookupRetryAttempts: 3,
	}
}

// SweepResult tallies one bulk enforcement pass
type SweepResult struct {
	Moved   int `json:"moved"`
	Correct int `json:"correct"`
}

// Option configures an Engine
type Option func(*Engine)

// WithTimings overrides the trigger delays
func WithTimings(t Timings) Option {
	return func(e *Engine) {
		e.timings = t
	}
}

// Engine owns the roster and routes every trigger into team switches.
// All methods must be called from the tick loop.
type Engine struct {
	host      host.Host
	scheduler tick.Scheduler
	clock     clock.Clock
	reporter  report.Reporter
	logger    *slog.Logger

	store    *Store
	protocol *Protocol
	timings  Timings
	attached bool

	// lookups holds the live retry chain per player; a chain stops once its
	// token is replaced or removed
	lookups   map[model.PlayerID]uint64
	lookupSeq uint64
}

// New creates an Engine. Call Attach to start reacting to game events.
func New(
	h host.Host,
	scheduler tick.Scheduler,
	clk clock.Clock,
	reporter report.Reporter,
	logger *slog.Logger,
	opts ...Option,
) *Engine {
	if reporter == nil {
		reporter = report.Nop{}
	}
	e := &Engine{
		host:      h,
		scheduler: scheduler,
		clock:     clk,
		reporter:  reporter,
		logger:    logger.With(slog.String("component", "roster-engine")),
		store:     NewStore(),
		timings:   DefaultTimings(),
		lookups:   make(map[model.PlayerID]uint64),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.timings.LookupRetryAttempts < 1 {
		e.timings.LookupRetryAttempts = 1
	}
	e.protocol = newProtocol(h, scheduler, e.emit, e.logger)
	return e
}

// Attach registers the connect, round-start and join-attempt hooks.
// Calling it more than once is a no-op.
func (e *Engine) Attach() {
	if e.attached {
		return
	}
	e.attached = true
	e.host.OnPlayerConnect(e.handleConnect)
	e.host.OnRoundStart(e.handleRoundStart)
	e.host.OnJoinAttempt(e.handleJoinAttempt)
	e.logger.Info("roster engine attached")
}

// Rosters returns every pinned assignment, ordered by player id
func (e *Engine) Rosters() []model.RosterEntry {
	return e.store.Entries()
}

// Lookup returns the pinned team for a player
func (e *Engine) Lookup(id model.PlayerID) (model.Team, bool) {
	return e.store.Get(id)
}

// KnownPlayers returns how many rostered players have connected since the last clear
func (e *Engine) KnownPlayers() int {
	return e.store.KnownCount()
}

// Switch runs the verified switch protocol directly
func (e *Engine) Switch(p host.Player, target model.Team, reconnect bool) *Switch {
	return e.protocol.Run(p, target, reconnect)
}

func (e *Engine) emit(r model.Report) {
	if r.At.IsZero() {
		r.At = e.clock.Now()
	}
	e.reporter.Report(r)
}
