package roster

import (
	"sort"

	"github.com/mcoot/forceteam/internal/model"
)

// Store holds desired team assignments and the players seen since the last
// clear. It is owned by the engine and only touched from the tick loop, so
// it carries no locks.
type Store struct {
	entries map[model.PlayerID]model.Team
	known   map[model.PlayerID]struct{}
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		entries: make(map[model.PlayerID]model.Team),
		known:   make(map[model.PlayerID]struct{}),
	}
}

// Set pins a player to a team, replacing any previous assignment
func (s *Store) Set(id model.PlayerID, team model.Team) {
	s.entries[id] = team
}

// Get returns the desired team; false means the player is not enforced
func (s *Store) Get(id model.PlayerID) (model.Team, bool) {
	team, ok := s.entries[id]
	return team, ok
}

// ClearAll removes every entry and forgets known players.
// It returns the number of entries removed.
func (s *Store) ClearAll() int {
	n := len(s.entries)
	s.entries = make(map[model.PlayerID]model.Team)
	s.known = make(map[model.PlayerID]struct{})
	return n
}

// MarkKnown records that the player has connected and reports whether
// they had already connected before this call
func (s *Store) MarkKnown(id model.PlayerID) bool {
	_, seen := s.known[id]
	s.known[id] = struct{}{}
	return seen
}

// Known reports whether the player has connected since the last clear
func (s *Store) Known(id model.PlayerID) bool {
	_, ok := s.known[id]
	return ok
}

// Size returns the number of entries
func (s *Store) Size() int {
	return len(s.entries)
}

// KnownCount returns the number of players seen since the last clear
func (s *Store) KnownCount() int {
	return len(s.known)
}

// Entries returns a snapshot of every entry, ordered by player id
func (s *Store) Entries() []model.RosterEntry {
	out := make([]model.RosterEntry, 0, len(s.entries))
	for id, team := range s.entries {
		out = append(out, model.RosterEntry{PlayerID: id, Team: team})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}
