package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

func TestLevelForLines(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		lines int
		want  int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{25, 3},
		{-3, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.LevelForLines(tt.lines), "lines=%d", tt.lines)
	}
}

func TestGravityInterval(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		level int
		want  uint64
	}{
		{1, 700},
		{2, 650},
		{3, 600},
		{12, 150},
		{13, 120},
		{40, 120},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.GravityInterval(tt.level), "level=%d", tt.level)
	}
}

func TestRulesFromConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Gravity.BaseMS = 500
	cfg.Progression.LinesPerLevel = 0

	r := RulesFromConfig(cfg)
	assert.Equal(t, uint64(500), r.GravityBaseMS)
	assert.Equal(t, uint64(500), r.LockDelayMS)
	assert.Equal(t, 1, r.LinesPerLevel)
	assert.Equal(t, -2, r.SpawnRow)
	assert.Equal(t, 6, r.LineFlashTicks)
}
