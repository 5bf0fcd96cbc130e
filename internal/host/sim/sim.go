// Package sim is an in-process game server implementing host.Host.
// It backs development mode and every engine test. It is not safe for
// concurrent use: drive it from the tick loop only.
package sim

import (
	"sort"

	"github.com/mcoot/forceteam/internal/host"
	"github.com/mcoot/forceteam/internal/model"
)

// ConnectOptions describes a player joining the simulated server
type ConnectOptions struct {
	Team     model.Team
	Alive    bool
	Bot      bool
	Observer bool
}

// TeamChange records a ChangeTeam call made against the server
type TeamChange struct {
	PlayerID model.PlayerID
	Team     model.Team
}

// PlayerState is a snapshot of one connected player
type PlayerState struct {
	PlayerID model.PlayerID `json:"player_id,string"`
	Team     model.Team     `json:"team"`
	Alive    bool           `json:"alive"`
	Bot      bool           `json:"bot"`
	Observer bool           `json:"observer"`
	Blocked  bool           `json:"blocked"`
}

type player struct {
	id       model.PlayerID
	team     model.Team
	alive    bool
	bot      bool
	observer bool
	valid    bool
	blocked  bool
}

func (p *player) ID() model.PlayerID { return p.id }
func (p *player) Team() model.Team   { return p.team }
func (p *player) Alive() bool        { return p.alive }
func (p *player) Valid() bool        { return p.valid }
func (p *player) Bot() bool          { return p.bot }
func (p *player) Observer() bool     { return p.observer }

// Server is a simulated match
type Server struct {
	players map[model.PlayerID]*player
	order   []model.PlayerID
	phase   model.GamePhase

	connectHooks []func(host.Player)
	roundHooks   []func()
	joinHooks    []func(host.Player, string) host.JoinResult

	teamChanges []TeamChange
	respawns    []model.PlayerID
}

// Ensure Server implements the host contract
var _ host.Host = (*Server)(nil)

// New creates an empty server in the live phase
func New() *Server {
	return &Server{
		players: make(map[model.PlayerID]*player),
	}
}

// Directory

func (s *Server) Resolve(id model.PlayerID) (host.Player, bool) {
	p, ok := s.players[id]
	if !ok {
		return nil, false
	}
	return p, true
}

func (s *Server) Connected() []host.Player {
	out := make([]host.Player, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.players[id])
	}
	return out
}

// Controller

func (s *Server) ChangeTeam(hp host.Player, team model.Team) {
	p, ok := hp.(*player)
	if !ok || !p.valid {
		return
	}
	s.teamChanges = append(s.teamChanges, TeamChange{PlayerID: p.id, Team: team})
	if p.blocked {
		return
	}
	p.team = team
	if !team.Playable() {
		p.alive = false
	}
}

func (s *Server) Respawn(hp host.Player) {
	p, ok := hp.(*player)
	if !ok || !p.valid {
		return
	}
	s.respawns = append(s.respawns, p.id)
	if p.team.Playable() {
		p.alive = true
	}
}

// PhaseQuery

func (s *Server) Phase() model.GamePhase {
	return s.phase
}

// Hooks

func (s *Server) OnPlayerConnect(fn func(host.Player)) {
	s.connectHooks = append(s.connectHooks, fn)
}

func (s *Server) OnRoundStart(fn func()) {
	s.roundHooks = append(s.roundHooks, fn)
}

func (s *Server) OnJoinAttempt(fn func(host.Player, string) host.JoinResult) {
	s.joinHooks = append(s.joinHooks, fn)
}

// Simulation controls

// Connect adds a player and fires the connect hooks once they are fully in
func (s *Server) Connect(id model.PlayerID, opts ConnectOptions) (host.Player, error) {
	if _, ok := s.players[id]; ok {
		return nil, model.ErrPlayerExists
	}
	p := &player{
		id:       id,
		team:     opts.Team,
		alive:    opts.Alive && opts.Team.Playable(),
		bot:      opts.Bot,
		observer: opts.Observer,
		valid:    true,
	}
	s.players[id] = p
	s.order = append(s.order, id)

	for _, fn := range s.connectHooks {
		fn(p)
	}
	return p, nil
}

// Disconnect removes a player; handles held elsewhere become invalid
func (s *Server) Disconnect(id model.PlayerID) error {
	p, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	p.valid = false
	delete(s.players, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// RequestJoin simulates a player picking a team from the team menu.
// The selection is applied only when every hook lets it continue.
func (s *Server) RequestJoin(id model.PlayerID, token string) (host.JoinResult, error) {
	p, ok := s.players[id]
	if !ok {
		return host.JoinContinue, model.ErrPlayerNotFound
	}
	for _, fn := range s.joinHooks {
		if fn(p, token) == host.JoinHandled {
			return host.JoinHandled, nil
		}
	}
	if team := model.DecodeJoinToken(token); team != model.TeamInvalid && team != p.team {
		p.team = team
		p.alive = false
	}
	return host.JoinContinue, nil
}

// StartRound respawns everyone on a playable team and fires round-start hooks
func (s *Server) StartRound() {
	for _, p := range s.players {
		if p.team.Playable() {
			p.alive = true
		}
	}
	for _, fn := range s.roundHooks {
		fn()
	}
}

// SetPhase replaces the phase flags
func (s *Server) SetPhase(phase model.GamePhase) {
	s.phase = phase
}

// AutoBalance moves a player the way the game's own balancer would.
// It bypasses ChangeTeam so it does not show up in the call log.
func (s *Server) AutoBalance(id model.PlayerID, team model.Team) error {
	p, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	p.team = team
	return nil
}

// SwapTeams exchanges T and CT for every player, like a half-time switch
func (s *Server) SwapTeams() {
	for _, p := range s.players {
		switch p.team {
		case model.TeamTerrorist:
			p.team = model.TeamCounterTerrorist
		case model.TeamCounterTerrorist:
			p.team = model.TeamTerrorist
		}
	}
}

// Kill marks a player dead
func (s *Server) Kill(id model.PlayerID) error {
	p, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	p.alive = false
	return nil
}

// Block makes ChangeTeam calls for the player silently ineffective,
// as if another plugin vetoed them
func (s *Server) Block(id model.PlayerID, blocked bool) error {
	p, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	p.blocked = blocked
	return nil
}

// Inspection

// Players returns a snapshot of connected players sorted by id
func (s *Server) Players() []PlayerState {
	out := make([]PlayerState, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, PlayerState{
			PlayerID: p.id,
			Team:     p.team,
			Alive:    p.alive,
			Bot:      p.bot,
			Observer: p.observer,
			Blocked:  p.blocked,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

// ChangeTeamCalls returns every ChangeTeam call seen so far
func (s *Server) ChangeTeamCalls() []TeamChange {
	out := make([]TeamChange, len(s.teamChanges))
	copy(out, s.teamChanges)
	return out
}

// RespawnCalls returns the ids of every Respawn call seen so far
func (s *Server) RespawnCalls() []model.PlayerID {
	out := make([]model.PlayerID, len(s.respawns))
	copy(out, s.respawns)
	return out
}

// ResetCalls clears the call logs
func (s *Server) ResetCalls() {
	s.teamChanges = nil
	s.respawns = nil
}
