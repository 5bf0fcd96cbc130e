package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RosterEntry:
		fmt.Printf("%s -> %s\n", v.PlayerID, v.Team)
	case RosterList:
		o.printRosterList(v)
	case ClearResult:
		fmt.Printf("Cleared %d roster entries\n", v.Removed)
	case SweepResult:
		fmt.Printf("Moved: %d\nAlready correct: %d\n", v.Moved, v.Correct)
	case ConsoleResult:
		fmt.Println(v.Message)
	case ReportList:
		o.printReportList(v)
	case SimPlayers:
		o.printSimPlayers(v)
	case SimPlayer:
		o.printSimPlayer(v)
	case JoinResult:
		fmt.Printf("Result: %s\nTeam: %s\n", v.Result, v.Team)
	case PhaseResult:
		fmt.Printf("Warmup: %t\nFreeze time: %t\nPaused: %t\n", v.Warmup, v.FreezeTime, v.Paused)
	case TokenResult:
		fmt.Printf("Token: %s\nHash: %s\n", v.Token, v.Hash)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// RosterEntry response type (matches API)
type RosterEntry struct {
	PlayerID string `json:"player_id"`
	Team     string `json:"team"`
}

// RosterList response type
type RosterList struct {
	Rosters      []RosterEntry `json:"rosters"`
	KnownPlayers int           `json:"known_players"`
}

// ClearResult response type
type ClearResult struct {
	Removed int `json:"removed"`
}

// SweepResult response type
type SweepResult struct {
	Moved   int `json:"moved"`
	Correct int `json:"correct"`
}

// ConsoleResult response type
type ConsoleResult struct {
	Command string `json:"command"`
	Message string `json:"message"`
}

// Report is one journalled enforcement report
type Report struct {
	Kind     string    `json:"kind"`
	PlayerID string    `json:"player_id,omitempty"`
	Team     string    `json:"team,omitempty"`
	Detail   string    `json:"detail,omitempty"`
	Moved    int       `json:"moved,omitempty"`
	Correct  int       `json:"correct,omitempty"`
	Removed  int       `json:"removed,omitempty"`
	At       time.Time `json:"at"`
}

// ReportList response type
type ReportList struct {
	Reports []Report `json:"reports"`
}

// SimPlayer response type
type SimPlayer struct {
	PlayerID string `json:"player_id"`
	Team     string `json:"team"`
	Alive    bool   `json:"alive"`
	Bot      bool   `json:"bot,omitempty"`
	Observer bool   `json:"observer,omitempty"`
	Blocked  bool   `json:"blocked,omitempty"`
}

// SimPlayers response type
type SimPlayers struct {
	Players []SimPlayer `json:"players"`
}

// JoinResult response type
type JoinResult struct {
	Result string `json:"result"`
	Team   string `json:"team"`
}

// PhaseResult response type
type PhaseResult struct {
	Warmup     bool `json:"warmup"`
	FreezeTime bool `json:"freeze_time"`
	Paused     bool `json:"paused"`
}

// TokenResult is a generated admin token and the hash to configure for it
type TokenResult struct {
	Token string `json:"token,omitempty"`
	Hash  string `json:"hash"`
}

// HealthResult response type
type HealthResult struct {
	Status   string `json:"status"`
	HostMode string `json:"host_mode,omitempty"`
}

func (o *Output) printRosterList(l RosterList) {
	fmt.Printf("Rosters (%d), known players: %d\n", len(l.Rosters), l.KnownPlayers)
	for _, e := range l.Rosters {
		fmt.Printf("  - %s -> %s\n", e.PlayerID, e.Team)
	}
}

func (o *Output) printReportList(l ReportList) {
	if len(l.Reports) == 0 {
		fmt.Println("No reports")
		return
	}
	for _, r := range l.Reports {
		o.printReport(r)
	}
}

func (o *Output) printReport(r Report) {
	line := fmt.Sprintf("[%s] %s", r.At.Local().Format("2006-01-02 15:04:05"), r.Kind)
	if r.PlayerID != "" {
		line += " player=" + r.PlayerID
	}
	if r.Team != "" {
		line += " team=" + r.Team
	}
	switch r.Kind {
	case "sweep_completed":
		line += fmt.Sprintf(" moved=%d correct=%d", r.Moved, r.Correct)
	case "rosters_cleared":
		line += fmt.Sprintf(" removed=%d", r.Removed)
	}
	if r.Detail != "" {
		line += " (" + r.Detail + ")"
	}
	fmt.Println(line)
}

func (o *Output) printSimPlayers(p SimPlayers) {
	fmt.Printf("Players (%d):\n", len(p.Players))
	for _, pl := range p.Players {
		fmt.Print("  - ")
		o.printSimPlayer(pl)
	}
}

func (o *Output) printSimPlayer(p SimPlayer) {
	state := "dead"
	if p.Alive {
		state = "alive"
	}
	flags := ""
	if p.Bot {
		flags += " [bot]"
	}
	if p.Observer {
		flags += " [observer]"
	}
	if p.Blocked {
		flags += " [blocked]"
	}
	fmt.Printf("%s %s %s%s\n", p.PlayerID, p.Team, state, flags)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	if h.HostMode != "" {
		fmt.Printf("Host mode: %s\n", h.HostMode)
	}
}
