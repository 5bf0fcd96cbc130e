package model

import (
	"strconv"
	"strings"
)

// PlayerID uniquely identifies a player account (SteamID64).
// It stays the same across reconnects within a match.
type PlayerID uint64

// String returns the base-10 form used on the wire and in logs
func (id PlayerID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParsePlayerID decodes a base-10 player identifier token
func ParsePlayerID(token string) (PlayerID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, ErrInvalidPlayerID
	}
	v, err := strconv.ParseUint(token, 10, 64)
	if err != nil || v == 0 {
		return 0, ErrInvalidPlayerID
	}
	return PlayerID(v), nil
}

// RosterEntry is one pinned assignment
type RosterEntry struct {
	PlayerID PlayerID
	Team     Team
}
