package model

import "time"

// ReportKind identifies what the engine is reporting
type ReportKind string

const (
	// Roster events
	ReportRosterSet      ReportKind = "roster_set"
	ReportRosterRejected ReportKind = "roster_rejected"
	ReportRostersCleared ReportKind = "rosters_cleared"
	ReportDeferred       ReportKind = "deferred_to_connect"

	// Switch outcomes
	ReportSwitchVerified   ReportKind = "switch_verified"
	ReportSwitchMismatched ReportKind = "switch_mismatched"
	ReportPlayerGone       ReportKind = "player_gone"
	ReportRespawned        ReportKind = "respawned"
	ReportJoinVetoed       ReportKind = "join_vetoed"

	// Sweeps
	ReportSweepCompleted ReportKind = "sweep_completed"
)

// Report is a single outcome emitted by the enforcement engine
type Report struct {
	Kind     ReportKind `json:"kind"`
	PlayerID PlayerID   `json:"player_id,string,omitempty"`
	Team     Team       `json:"team,omitempty"`
	Detail   string     `json:"detail,omitempty"`

	// Set on sweep and clear reports
	Moved   int `json:"moved,omitempty"`
	Correct int `json:"correct,omitempty"`
	Removed int `json:"removed,omitempty"`

	At time.Time `json:"at"`
}

// Warning reports whether the report signals something an operator should look at
func (r Report) Warning() bool {
	switch r.Kind {
	case ReportSwitchMismatched, ReportPlayerGone, ReportDeferred, ReportRosterRejected:
		return true
	default:
		return false
	}
}
