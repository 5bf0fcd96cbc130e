package response

import (
	"github.com/mcoot/forceteam/internal/model"
)

// Health is the response for the health check
type Health struct {
	Status   string `json:"status"`
	HostMode string `json:"host_mode,omitempty"`
}

// RosterEntry represents one pinned player
type RosterEntry struct {
	PlayerID string `json:"player_id"`
	Team     string `json:"team"`
}

// RosterEntryFromModel converts model.RosterEntry
func RosterEntryFromModel(e model.RosterEntry) RosterEntry {
	return RosterEntry{
		PlayerID: e.PlayerID.String(),
		Team:     e.Team.Token(),
	}
}

// Rosters is the response for listing the roster
type Rosters struct {
	Rosters      []RosterEntry `json:"rosters"`
	KnownPlayers int           `json:"known_players"`
}

// RostersFromModel converts a roster snapshot
func RostersFromModel(entries []model.RosterEntry, known int) Rosters {
	out := make([]RosterEntry, len(entries))
	for i, e := range entries {
		out[i] = RosterEntryFromModel(e)
	}
	return Rosters{Rosters: out, KnownPlayers: known}
}

// Cleared is the response after clearing the roster
type Cleared struct {
	Removed int `json:"removed"`
}

// Sweep is the response after a manual sweep
type Sweep struct {
	Moved   int `json:"moved"`
	Correct int `json:"correct"`
}

// Console is the response after running a console line
type Console struct {
	Command string `json:"command"`
	Message string `json:"message"`
}

// Reports is the response for the report journal
type Reports struct {
	Reports []model.Report `json:"reports"`
}

// SimPlayer represents a simulated player
type SimPlayer struct {
	PlayerID string `json:"player_id"`
	Team     string `json:"team"`
	Alive    bool   `json:"alive"`
	Bot      bool   `json:"bot,omitempty"`
	Observer bool   `json:"observer,omitempty"`
	Blocked  bool   `json:"blocked,omitempty"`
}

// SimPlayers is the response for listing simulated players
type SimPlayers struct {
	Players []SimPlayer `json:"players"`
}

// Join is the response after a simulated team-menu selection
type Join struct {
	Result string `json:"result"`
	Team   string `json:"team"`
}

// Phase is the simulated game phase
type Phase struct {
	Warmup     bool `json:"warmup"`
	FreezeTime bool `json:"freeze_time"`
	Paused     bool `json:"paused"`
}

// PhaseFromModel converts model.GamePhase
func PhaseFromModel(p model.GamePhase) Phase {
	return Phase{
		Warmup:     p.WarmupActive,
		FreezeTime: p.FreezeTimeActive,
		Paused:     p.Paused,
	}
}
