// Package host defines the narrow contracts the enforcement engine needs from
// the game server it runs inside. Nothing here mutates roster state.
package host

import "github.com/mcoot/forceteam/internal/model"

// JoinResult tells the host whether to continue processing a team-selection request
type JoinResult int

const (
	JoinContinue JoinResult = iota // Let the game apply the request
	JoinHandled                    // Suppress default processing
)

func (r JoinResult) String() string {
	if r == JoinHandled {
		return "handled"
	}
	return "continue"
}

// Player is a live, possibly stale, handle to a connected player.
// Valid turns false once the player disconnects.
type Player interface {
	ID() model.PlayerID
	Team() model.Team
	Alive() bool
	Valid() bool
	Bot() bool
	Observer() bool // Broadcast/relay slots, never enforced
}

// Directory resolves players by their stable identifier
type Directory interface {
	Resolve(id model.PlayerID) (Player, bool)
	Connected() []Player
}

// Controller applies changes to players. Both calls are fire-and-forget;
// their effect is only observable on a later tick.
type Controller interface {
	ChangeTeam(p Player, team model.Team)
	Respawn(p Player)
}

// PhaseQuery reports the current match phase flags
type PhaseQuery interface {
	Phase() model.GamePhase
}

// Hooks registers callbacks for game events
type Hooks interface {
	OnPlayerConnect(fn func(Player))
	OnRoundStart(fn func())
	OnJoinAttempt(fn func(p Player, token string) JoinResult)
}

// Host is everything the engine consumes from the game server
type Host interface {
	Directory
	Controller
	PhaseQuery
	Hooks
}
