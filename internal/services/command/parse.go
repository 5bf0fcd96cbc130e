package command

import (
	"fmt"
	"strings"

	"github.com/mcoot/forceteam/internal/model"
)

// Name identifies a console command without its css_ prefix
type Name string

const (
	SetRoster    Name = "set_roster"
	ClearRosters Name = "clear_rosters"
	ForceTeam    Name = "force_team"
	ApplyRosters Name = "apply_rosters"
	ListRosters  Name = "list_rosters"
)

const prefix = "css_"

var aliases = map[string]Name{
	"ebot_force_team": ForceTeam,
}

var usage = map[Name]string{
	SetRoster:    "css_set_roster <steamid64> <t|ct>",
	ClearRosters: "css_clear_rosters",
	ForceTeam:    "css_force_team <steamid64> <t|ct>",
	ApplyRosters: "css_apply_rosters",
	ListRosters:  "css_list_rosters",
}

var arity = map[Name]int{
	SetRoster:    2,
	ClearRosters: 0,
	ForceTeam:    2,
	ApplyRosters: 0,
	ListRosters:  0,
}

// Line is a parsed console command
type Line struct {
	Name Name
	Args []string
}

// Parse splits a console line into a command and its arguments
func Parse(line string) (Line, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Line{}, fmt.Errorf("%w: empty line", model.ErrUnknownCommand)
	}

	raw := strings.TrimPrefix(strings.ToLower(fields[0]), prefix)
	name := Name(raw)
	if alias, ok := aliases[raw]; ok {
		name = alias
	}

	want, ok := arity[name]
	if !ok {
		return Line{}, fmt.Errorf("%w: %s", model.ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	if len(args) != want {
		return Line{}, fmt.Errorf("%w: usage: %s", model.ErrUsage, usage[name])
	}
	return Line{Name: name, Args: args}, nil
}

// Usage returns the usage line for a command
func Usage(name Name) string {
	return usage[name]
}
