package model

import (
	"encoding/json"
	"strings"
)

// Team is a side a player can be on
type Team int

const (
	TeamInvalid          Team = -1 // Token did not decode to any team
	TeamNone             Team = 0  // Not yet assigned
	TeamSpectator        Team = 1
	TeamTerrorist        Team = 2
	TeamCounterTerrorist Team = 3
)

// Playable reports whether the team takes part in rounds.
// Only playable teams are valid enforcement targets.
func (t Team) Playable() bool {
	return t == TeamTerrorist || t == TeamCounterTerrorist
}

// Token returns the short admin token for the team
func (t Team) Token() string {
	switch t {
	case TeamNone:
		return "none"
	case TeamSpectator:
		return "spec"
	case TeamTerrorist:
		return "t"
	case TeamCounterTerrorist:
		return "ct"
	default:
		return "invalid"
	}
}

func (t Team) String() string {
	switch t {
	case TeamNone:
		return "None"
	case TeamSpectator:
		return "Spectator"
	case TeamTerrorist:
		return "Terrorist"
	case TeamCounterTerrorist:
		return "CounterTerrorist"
	default:
		return "Invalid"
	}
}

// MarshalJSON encodes the team as its admin token
func (t Team) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Token())
}

// UnmarshalJSON accepts any token DecodeJoinToken understands
func (t *Team) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	*t = DecodeJoinToken(token)
	return nil
}

// ParseTeamToken decodes an enforcement target token ("t" or "ct", any case).
// Every other input yields TeamInvalid.
func ParseTeamToken(token string) Team {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "t":
		return TeamTerrorist
	case "ct":
		return TeamCounterTerrorist
	default:
		return TeamInvalid
	}
}

// DecodeJoinToken decodes the raw argument of a team-selection request.
// Clients send numeric team indices; admin tooling may send names.
func DecodeJoinToken(token string) Team {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "0", "none", "auto":
		return TeamNone
	case "1", "spec", "spectator":
		return TeamSpectator
	case "2", "t", "terrorist":
		return TeamTerrorist
	case "3", "ct", "counterterrorist":
		return TeamCounterTerrorist
	default:
		return TeamInvalid
	}
}
