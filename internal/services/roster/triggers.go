package roster

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/forceteam/internal/host"
	"github.com/mcoot/forceteam/internal/model"
)

const (
	sweepManual     = "manual"
	sweepRoundStart = "round_start"
)

// SetRoster pins a player to a team. A connected player already on a
// playable team is switched straight away; anyone else is caught by a
// later trigger.
func (e *Engine) SetRoster(idToken, teamToken string) (model.RosterEntry, error) {
	entry, err := e.parseAssignment(idToken, teamToken)
	if err != nil {
		return entry, err
	}

	e.store.Set(entry.PlayerID, entry.Team)
	e.emit(model.Report{Kind: model.ReportRosterSet, PlayerID: entry.PlayerID, Team: entry.Team})

	e.lookup(entry.PlayerID, func(p host.Player) {
		target, ok := e.store.Get(p.ID())
		if !ok {
			return
		}
		if !p.Team().Playable() {
			e.logger.Debug("rostered player not on a playable team, waiting for team selection",
				slog.String("player_id", p.ID().String()),
			)
			return
		}
		if p.Team() != target {
			e.protocol.Run(p, target, false)
		}
	})
	return entry, nil
}

// ForceTeam pins a player and moves them regardless of their current team,
// spectators included
func (e *Engine) ForceTeam(idToken, teamToken string) (model.RosterEntry, error) {
	entry, err := e.parseAssignment(idToken, teamToken)
	if err != nil {
		return entry, err
	}

	e.store.Set(entry.PlayerID, entry.Team)
	e.emit(model.Report{Kind: model.ReportRosterSet, PlayerID: entry.PlayerID, Team: entry.Team, Detail: "forced"})

	e.lookup(entry.PlayerID, func(p host.Player) {
		if target, ok := e.store.Get(p.ID()); ok {
			e.protocol.Run(p, target, false)
		}
	})
	return entry, nil
}

// ClearRosters drops every entry and forgets known players
func (e *Engine) ClearRosters() int {
	n := e.store.ClearAll()
	e.lookups = make(map[model.PlayerID]uint64)
	e.emit(model.Report{Kind: model.ReportRostersCleared, Removed: n})
	return n
}

// ApplyRosters switches every connected rostered player who is on the wrong side
func (e *Engine) ApplyRosters() SweepResult {
	return e.sweep(sweepManual)
}

func (e *Engine) sweep(reason string) SweepResult {
	var res SweepResult
	for _, p := range e.host.Connected() {
		if !p.Valid() || p.Bot() || p.Observer() || !p.Team().Playable() {
			continue
		}
		target, ok := e.store.Get(p.ID())
		if !ok {
			continue
		}
		if p.Team() == target {
			res.Correct++
			continue
		}
		e.protocol.Run(p, target, false)
		res.Moved++
	}

	e.emit(model.Report{
		Kind:    model.ReportSweepCompleted,
		Detail:  reason,
		Moved:   res.Moved,
		Correct: res.Correct,
	})
	return res
}

func (e *Engine) handleRoundStart() {
	e.scheduler.After(e.timings.RoundStartDelay, func() {
		e.sweep(sweepRoundStart)
	})
}

func (e *Engine) handleConnect(p host.Player) {
	id := p.ID()
	if _, ok := e.store.Get(id); !ok {
		return
	}
	reconnect := e.store.MarkKnown(id)
	if _, pending := e.lookups[id]; pending {
		delete(e.lookups, id)
		e.logger.Debug("connect trigger took over pending lookup", slog.String("player_id", id.String()))
	}

	e.scheduler.After(e.timings.ConnectSettleDelay, func() {
		target, ok := e.store.Get(id)
		if !ok {
			return
		}
		current, ok := e.host.Resolve(id)
		if !ok || !current.Valid() {
			e.logger.Debug("rostered player left before settling", slog.String("player_id", id.String()))
			return
		}

		if current.Team() != target {
			e.protocol.Run(current, target, reconnect)
			return
		}
		if !current.Alive() && CanRespawn(e.host.Phase(), reconnect) {
			e.host.Respawn(current)
			e.emit(model.Report{Kind: model.ReportRespawned, PlayerID: id, Team: target, Detail: "on connect"})
		}
	})
}

func (e *Engine) handleJoinAttempt(p host.Player, token string) host.JoinResult {
	id := p.ID()
	target, ok := e.store.Get(id)
	if !ok {
		return host.JoinContinue
	}
	requested := model.DecodeJoinToken(token)
	if requested == target {
		return host.JoinContinue
	}

	e.emit(model.Report{
		Kind:     model.ReportJoinVetoed,
		PlayerID: id,
		Team:     target,
		Detail:   "requested " + requested.String(),
	})

	// The veto already happens before the game applies anything, so the
	// correction goes in on the next tick without the protocol's issue delay.
	e.scheduler.NextTick(func() {
		if !p.Valid() {
			return
		}
		target, ok := e.store.Get(id)
		if !ok {
			return
		}
		if p.Team() != target {
			e.host.ChangeTeam(p, target)
		}
		e.scheduler.NextTick(func() {
			if !p.Valid() || p.Alive() {
				return
			}
			if CanRespawn(e.host.Phase(), false) {
				e.host.Respawn(p)
				e.emit(model.Report{Kind: model.ReportRespawned, PlayerID: id, Team: target, Detail: "after vetoed selection"})
			}
		})
	})
	return host.JoinHandled
}

// lookup resolves a player by id, retrying a fixed number of times before
// leaving them to the connect trigger. A newer lookup for the same player or
// the player's connect ends the chain, so one player never has two switches
// started from here.
func (e *Engine) lookup(id model.PlayerID, found func(host.Player)) {
	e.lookupSeq++
	token := e.lookupSeq
	e.lookups[id] = token

	attempt := 1
	var try func()
	try = func() {
		if e.lookups[id] != token {
			return
		}
		if p, ok := e.host.Resolve(id); ok && p.Valid() {
			delete(e.lookups, id)
			found(p)
			return
		}
		if attempt >= e.timings.LookupRetryAttempts {
			delete(e.lookups, id)
			team, _ := e.store.Get(id)
			e.emit(model.Report{
				Kind:     model.ReportDeferred,
				PlayerID: id,
				Team:     team,
				Detail:   fmt.Sprintf("not connected after %d lookups", attempt),
			})
			return
		}
		attempt++
		e.scheduler.After(e.timings.LookupRetryInterval, try)
	}
	try()
}

func (e *Engine) parseAssignment(idToken, teamToken string) (model.RosterEntry, error) {
	id, err := model.ParsePlayerID(idToken)
	if err != nil {
		e.emit(model.Report{Kind: model.ReportRosterRejected, Detail: fmt.Sprintf("player id %q", idToken)})
		return model.RosterEntry{}, fmt.Errorf("%w: %q", err, idToken)
	}
	team := model.ParseTeamToken(teamToken)
	if !team.Playable() {
		e.emit(model.Report{Kind: model.ReportRosterRejected, PlayerID: id, Detail: fmt.Sprintf("team %q", teamToken)})
		return model.RosterEntry{}, fmt.Errorf("%w: %q", model.ErrInvalidTeam, teamToken)
	}
	return model.RosterEntry{PlayerID: id, Team: team}, nil
}
