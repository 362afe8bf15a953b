package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func TestSimulateIsDeterministic(t *testing.T) {
	opts := simOptions{Rules: tetris.DefaultRules(), Seed: 7, Steps: 2000, Policy: "random", FPS: 60}

	a, err := simulate(opts)
	require.NoError(t, err)
	b, err := simulate(opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotZero(t, a.Tick)
}

func TestSimulateDropPolicyEndsGame(t *testing.T) {
	snap, err := simulate(simOptions{Rules: tetris.DefaultRules(), Seed: 1, Steps: 1000, Policy: "drop"})
	require.NoError(t, err)

	assert.Equal(t, tetris.PhaseGameOver, snap.Phase)
	assert.Positive(t, snap.Score)
	assert.Less(t, snap.Tick, uint64(1000))
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	_, err := simulate(simOptions{Rules: tetris.DefaultRules(), Steps: 10, Policy: "greedy"})
	assert.Error(t, err)

	_, err = simulate(simOptions{Rules: tetris.DefaultRules(), Steps: -1, Policy: "drop"})
	assert.Error(t, err)
}

func TestPrintSimResult(t *testing.T) {
	snap, err := simulate(simOptions{Rules: tetris.DefaultRules(), Seed: 3, Steps: 50, Policy: "drop"})
	require.NoError(t, err)

	var out bytes.Buffer
	printSimResult(&out, 3, snap)

	assert.Contains(t, out.String(), "Seed : 3")
	assert.Contains(t, out.String(), "Next Piece:")
}

func TestFrameDuration(t *testing.T) {
	tests := []struct {
		fps  int
		want uint64
	}{
		{60, 16},
		{0, 16},
		{-5, 16},
		{1000, 1},
		{2000, 1},
		{1_000_000, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, frameDuration(tt.fps), "fps %d", tt.fps)
	}
}
