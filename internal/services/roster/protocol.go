package roster

import (
	"log/slog"

	"github.com/mcoot/forceteam/internal/dependencies/tick"
	"github.com/mcoot/forceteam/internal/host"
	"github.com/mcoot/forceteam/internal/model"
)

// SwitchState tracks one verified team switch
type SwitchState int

const (
	SwitchIdle       SwitchState = iota
	SwitchIssued                 // ChangeTeam scheduled or applied, awaiting verification
	SwitchVerified               // Player ended on the target team
	SwitchMismatched             // ChangeTeam had no effect
	SwitchPlayerGone             // Player left before the switch finished
)

func (s SwitchState) String() string {
	switch s {
	case SwitchIdle:
		return "idle"
	case SwitchIssued:
		return "issued"
	case SwitchVerified:
		return "verified"
	case SwitchMismatched:
		return "mismatched"
	case SwitchPlayerGone:
		return "player_gone"
	default:
		return "unknown"
	}
}

// Terminal reports whether the switch has finished
func (s SwitchState) Terminal() bool {
	return s == SwitchVerified || s == SwitchMismatched || s == SwitchPlayerGone
}

// Switch is one invocation of the protocol
type Switch struct {
	PlayerID  model.PlayerID
	Target    model.Team
	Reconnect bool

	state     SwitchState
	respawned bool
}

// State returns the current protocol state
func (s *Switch) State() SwitchState {
	return s.state
}

// Respawned reports whether verification also respawned the player
func (s *Switch) Respawned() bool {
	return s.respawned
}

// Protocol moves a player to a team over two ticks: the change is applied on
// the next tick and checked on the tick after. It never retries by itself.
type Protocol struct {
	host      host.Host
	scheduler tick.Scheduler
	emit      func(model.Report)
	logger    *slog.Logger
}

func newProtocol(h host.Host, scheduler tick.Scheduler, emit func(model.Report), logger *slog.Logger) *Protocol {
	return &Protocol{
		host:      h,
		scheduler: scheduler,
		emit:      emit,
		logger:    logger,
	}
}

// Run starts a switch of p to target. If p is already on target the switch
// is verified immediately and the host is never called.
func (p *Protocol) Run(player host.Player, target model.Team, reconnect bool) *Switch {
	sw := &Switch{
		PlayerID:  player.ID(),
		Target:    target,
		Reconnect: reconnect,
	}

	if player.Team() == target {
		sw.state = SwitchVerified
		p.logger.Debug("player already on target team",
			slog.String("player_id", sw.PlayerID.String()),
			slog.String("team", target.String()),
		)
		return sw
	}

	sw.state = SwitchIssued
	p.scheduler.NextTick(func() {
		if !player.Valid() {
			p.finish(sw, SwitchPlayerGone, "left before the switch was applied")
			return
		}
		p.host.ChangeTeam(player, target)
		p.scheduler.NextTick(func() { p.verify(sw, player) })
	})
	return sw
}

func (p *Protocol) verify(sw *Switch, player host.Player) {
	if !player.Valid() {
		p.finish(sw, SwitchPlayerGone, "left before the switch was verified")
		return
	}

	if current := player.Team(); current != sw.Target {
		p.finish(sw, SwitchMismatched, "still on "+current.String())
		return
	}

	if !player.Alive() && CanRespawn(p.host.Phase(), sw.Reconnect) {
		p.host.Respawn(player)
		sw.respawned = true
	}
	p.finish(sw, SwitchVerified, "")
}

func (p *Protocol) finish(sw *Switch, state SwitchState, detail string) {
	sw.state = state

	var kind model.ReportKind
	switch state {
	case SwitchVerified:
		kind = model.ReportSwitchVerified
	case SwitchMismatched:
		kind = model.ReportSwitchMismatched
	default:
		kind = model.ReportPlayerGone
	}
	p.emit(model.Report{Kind: kind, PlayerID: sw.PlayerID, Team: sw.Target, Detail: detail})

	if sw.respawned {
		p.emit(model.Report{Kind: model.ReportRespawned, PlayerID: sw.PlayerID, Team: sw.Target, Detail: "after switch"})
	}
}
