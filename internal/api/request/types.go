package request

// TeamRequest is the request body for pinning a player
type TeamRequest struct {
	Team string `json:"team"`
}

// ConsoleRequest is the request body for running a console line
type ConsoleRequest struct {
	Command string `json:"command"`
}

// ConnectRequest is the request body for adding a simulated player
type ConnectRequest struct {
	PlayerID string `json:"player_id"`
	Team     string `json:"team"`
	Alive    bool   `json:"alive"`
	Bot      bool   `json:"bot,omitempty"`
	Observer bool   `json:"observer,omitempty"`
}

// JoinRequest is the request body for a simulated team-menu selection
type JoinRequest struct {
	Token string `json:"token"`
}

// PhaseRequest is the request body for setting the simulated game phase
type PhaseRequest struct {
	Warmup     bool `json:"warmup"`
	FreezeTime bool `json:"freeze_time"`
	Paused     bool `json:"paused"`
}
