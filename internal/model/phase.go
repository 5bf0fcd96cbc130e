package model

// GamePhase is a snapshot of the match phase flags.
// Always read fresh from the host; the match can change between ticks.
type GamePhase struct {
	WarmupActive     bool
	FreezeTimeActive bool
	Paused           bool
}
