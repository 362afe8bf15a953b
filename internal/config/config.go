// Package config provides YAML-based rules loading and difficulty presets
// for the game.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains all tunable rules of the simulation.
// Board size and scoring are fixed and deliberately absent.
type TetrisConfig struct {
	Gravity     GravityConfig `yaml:"gravity"`
	LockDelayMS uint64        `yaml:"lock_delay_ms"`
	Progression Progression   `yaml:"progression"`
	Spawn       SpawnConfig   `yaml:"spawn"`
	Effects     EffectsConfig `yaml:"effects"`
}

// GravityConfig defines the fall interval and how it shrinks per level.
type GravityConfig struct {
	BaseMS  uint64 `yaml:"base_ms"`  // Interval at level 1
	StepMS  uint64 `yaml:"step_ms"`  // Reduction per level
	FloorMS uint64 `yaml:"floor_ms"` // Fastest allowed interval
}

// Progression defines how cleared lines map to levels.
type Progression struct {
	LinesPerLevel int `yaml:"lines_per_level"`
}

// SpawnConfig defines where new pieces appear.
type SpawnConfig struct {
	Row int `yaml:"row"` // Negative rows start above the visible well
}

// EffectsConfig defines how many ticks transient highlights last.
type EffectsConfig struct {
	LineFlashTicks int `yaml:"line_flash_ticks"`
	DropTrailTicks int `yaml:"drop_trail_ticks"`
	HUDPulseTicks  int `yaml:"hud_pulse_ticks"`
}

// Validate checks that the rules describe a playable game.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Gravity.BaseMS == 0 {
		errs = append(errs, errors.New("gravity.base_ms must be positive"))
	}
	if c.Gravity.FloorMS == 0 {
		errs = append(errs, errors.New("gravity.floor_ms must be positive"))
	}
	if c.Gravity.FloorMS > c.Gravity.BaseMS {
		errs = append(errs, fmt.Errorf("gravity.floor_ms (%d) exceeds gravity.base_ms (%d)",
			c.Gravity.FloorMS, c.Gravity.BaseMS))
	}
	if c.LockDelayMS == 0 {
		errs = append(errs, errors.New("lock_delay_ms must be positive"))
	}
	if c.Progression.LinesPerLevel < 1 {
		errs = append(errs, errors.New("progression.lines_per_level must be at least 1"))
	}
	if c.Spawn.Row < -4 || c.Spawn.Row > 0 {
		errs = append(errs, fmt.Errorf("spawn.row %d out of range [-4, 0]", c.Spawn.Row))
	}
	if c.Effects.LineFlashTicks < 0 || c.Effects.DropTrailTicks < 0 || c.Effects.HUDPulseTicks < 0 {
		errs = append(errs, errors.New("effects ticks must not be negative"))
	}
	return errors.Join(errs...)
}
