package tetris

import "github.com/vovakirdan/tui-tetris/internal/config"

// Rules are the timing and progression parameters of a session.
// All durations are in milliseconds.
type Rules struct {
	GravityBaseMS  uint64
	GravityStepMS  uint64
	GravityFloorMS uint64
	LockDelayMS    uint64
	LinesPerLevel  int
	SpawnRow       int

	// Effect lengths in ticks; purely visual.
	LineFlashTicks int
	DropTrailTicks int
	HUDPulseTicks  int
}

// DefaultRules returns the rules from the embedded defaults.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultTetrisConfig())
}

// RulesFromConfig converts loaded YAML rules into engine rules.
func RulesFromConfig(cfg config.TetrisConfig) Rules {
	return Rules{
		GravityBaseMS:  cfg.Gravity.BaseMS,
		GravityStepMS:  cfg.Gravity.StepMS,
		GravityFloorMS: cfg.Gravity.FloorMS,
		LockDelayMS:    cfg.LockDelayMS,
		LinesPerLevel:  max(cfg.Progression.LinesPerLevel, 1),
		SpawnRow:       cfg.Spawn.Row,
		LineFlashTicks: cfg.Effects.LineFlashTicks,
		DropTrailTicks: cfg.Effects.DropTrailTicks,
		HUDPulseTicks:  cfg.Effects.HUDPulseTicks,
	}
}

// LevelForLines returns the level reached after clearing the given number of lines.
func (r Rules) LevelForLines(lines int) int {
	return max(lines, 0)/max(r.LinesPerLevel, 1) + 1
}

// GravityInterval returns the fall interval for a level. Each level above the
// first takes one step off the base; once another step would pass the floor
// the interval snaps to the floor and stays there.
func (r Rules) GravityInterval(level int) uint64 {
	interval := r.GravityBaseMS
	for i := 1; i < level; i++ {
		if interval > r.GravityFloorMS+r.GravityStepMS {
			interval -= r.GravityStepMS
			continue
		}
		interval = r.GravityFloorMS
		break
	}
	return max(interval, 1)
}
