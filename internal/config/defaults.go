package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in rules.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Gravity: GravityConfig{
			BaseMS:  700,
			StepMS:  50,
			FloorMS: 120,
		},
		LockDelayMS: 500,
		Progression: Progression{
			LinesPerLevel: 10,
		},
		Spawn: SpawnConfig{
			Row: -2,
		},
		Effects: EffectsConfig{
			LineFlashTicks: 6,
			DropTrailTicks: 4,
			HUDPulseTicks:  16,
		},
	}
}

// DefaultYAML returns the embedded default rules file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
