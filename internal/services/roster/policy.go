package roster

import "github.com/mcoot/forceteam/internal/model"

// CanRespawn decides whether a dead player may be respawned.
//
// A corrected player only gets a spawn while nothing is at stake (warmup or
// a pause). A reconnecting player lost their spawn, so they may also rejoin
// during freeze time, before the round goes live.
func CanRespawn(phase model.GamePhase, reconnect bool) bool {
	if phase.WarmupActive || phase.Paused {
		return true
	}
	return reconnect && phase.FreezeTimeActive
}
