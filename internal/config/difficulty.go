package config

import "fmt"

// DifficultyPreset represents a named starting speed.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. The empty string means "keep the config".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// BaseGravityForPreset returns the level-1 fall interval for a preset.
func BaseGravityForPreset(preset DifficultyPreset) uint64 {
	switch preset {
	case DifficultyEasy:
		return 900
	case DifficultyHard:
		return 500
	default:
		return 700
	}
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
// Only the starting speed changes; the floor still bounds every level.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Gravity.BaseMS = max(BaseGravityForPreset(preset), cfg.Gravity.FloorMS)
}
