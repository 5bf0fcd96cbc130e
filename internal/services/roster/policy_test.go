package roster

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/forceteam/internal/model"
)

func allPhases() []model.GamePhase {
	var phases []model.GamePhase
	for i := 0; i < 8; i++ {
		phases = append(phases, model.GamePhase{
			WarmupActive:     i&1 != 0,
			FreezeTimeActive: i&2 != 0,
			Paused:           i&4 != 0,
		})
	}
	return phases
}

func TestCanRespawn(t *testing.T) {
	tests := []struct {
		name      string
		phase     model.GamePhase
		reconnect bool
		want      bool
	}{
		{"live round", model.GamePhase{}, false, false},
		{"live round reconnect", model.GamePhase{}, true, false},
		{"warmup", model.GamePhase{WarmupActive: true}, false, true},
		{"paused", model.GamePhase{Paused: true}, false, true},
		{"freeze time", model.GamePhase{FreezeTimeActive: true}, false, false},
		{"freeze time reconnect", model.GamePhase{FreezeTimeActive: true}, true, true},
		{"paused during freeze time", model.GamePhase{FreezeTimeActive: true, Paused: true}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanRespawn(tt.phase, tt.reconnect))
		})
	}
}

func TestCanRespawnReconnectIsSuperset(t *testing.T) {
	for _, phase := range allPhases() {
		t.Run(fmt.Sprintf("%+v", phase), func(t *testing.T) {
			if CanRespawn(phase, false) {
				assert.True(t, CanRespawn(phase, true))
			}
			// The only difference is freeze time on its own
			differs := CanRespawn(phase, true) != CanRespawn(phase, false)
			onlyFreeze := phase.FreezeTimeActive && !phase.WarmupActive && !phase.Paused
			assert.Equal(t, onlyFreeze, differs)
		})
	}
}
