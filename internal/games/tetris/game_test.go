package tetris

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// startedGame returns a playing session whose bag yields I, O, T, L, J, S, Z.
func startedGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g := New(append([]Option{WithRand(identityRand{})}, opts...)...)
	g.Step(core.ActionStart, 0)
	require.Equal(t, PhasePlaying, g.Phase())
	return g
}

func TestTitleScreen(t *testing.T) {
	g := New(WithRand(identityRand{}))
	assert.Equal(t, PhaseTitle, g.Phase())
	assert.True(t, g.State().Paused)

	g.Update(10_000)
	g.Step(core.ActionLeft, 16)
	assert.False(t, g.Snapshot().Active.Active)

	g.Step(core.ActionStart, 0)
	snap := g.Snapshot()
	assert.Equal(t, PhasePlaying, snap.Phase)
	assert.True(t, snap.Active.Active)
	assert.Equal(t, 0, snap.Active.Shape)
	assert.Equal(t, 1, snap.Next)
	assert.Equal(t, -2, snap.Active.Row)
	assert.Equal(t, 3, snap.Active.Col)
}

func TestGravityMovesPieceDown(t *testing.T) {
	g := startedGame(t)

	g.Update(699)
	assert.Equal(t, -2, g.Snapshot().Active.Row)
	g.Update(1)
	assert.Equal(t, -1, g.Snapshot().Active.Row)
	g.Update(1400)
	assert.Equal(t, 1, g.Snapshot().Active.Row)
}

func TestLateralMovesAndWalls(t *testing.T) {
	g := startedGame(t)

	for range 10 {
		g.HandleInput(core.ActionLeft)
	}
	assert.Equal(t, 0, g.Snapshot().Active.Col)

	for range 10 {
		g.HandleInput(core.ActionRight)
	}
	assert.Equal(t, BoardWidth-4, g.Snapshot().Active.Col)
}

func TestLockDelayTiming(t *testing.T) {
	g := startedGame(t)
	for g.tryMove(1, 0) {
	}
	require.Equal(t, 18, g.active.Row)

	g.HandleInput(core.ActionSoftDrop)
	assert.True(t, g.Snapshot().LockPending)

	g.Update(200)
	g.Update(200)
	snap := g.Snapshot()
	assert.Equal(t, uint64(400), snap.LockTimerMS)
	assert.Equal(t, 0, snap.Active.Shape, "still the first piece")

	g.HandleInput(core.ActionLeft)
	snap = g.Snapshot()
	assert.False(t, snap.LockPending)
	assert.Equal(t, uint64(0), snap.LockTimerMS)

	g.HandleInput(core.ActionSoftDrop)
	g.Update(499)
	snap = g.Snapshot()
	assert.True(t, snap.Active.Active)
	assert.Equal(t, 0, snap.Active.Shape)
	assert.Equal(t, uint64(499), snap.LockTimerMS)

	g.Update(1)
	snap = g.Snapshot()
	assert.Equal(t, 1, snap.Active.Shape, "I locked, O spawned")
	for col := 2; col <= 5; col++ {
		assert.Equal(t, 1, snap.Cells[19][col], "col %d", col)
	}
	assert.Equal(t, 0, snap.Score, "no drop bonus for a gravity lock")

	// A soft drop that still moves the piece clears a pending lock
	g = startedGame(t)
	g.active.Row = 17
	g.beginLockDelay()
	g.Update(100)
	require.True(t, g.Snapshot().LockPending)

	g.HandleInput(core.ActionSoftDrop)
	snap = g.Snapshot()
	assert.Equal(t, 18, snap.Active.Row)
	assert.False(t, snap.LockPending)
	assert.Equal(t, uint64(0), snap.LockTimerMS)
}

func TestRotationResetsLockDelay(t *testing.T) {
	g := startedGame(t)
	g.active = ActivePiece{Shape: 2, Row: 17, Col: 3, Active: true}

	g.HandleInput(core.ActionSoftDrop)
	g.Update(300)
	require.Equal(t, uint64(300), g.Snapshot().LockTimerMS)

	g.HandleInput(core.ActionRotate)
	snap := g.Snapshot()
	assert.Equal(t, 1, snap.Active.Rotation)
	assert.False(t, snap.LockPending)
	assert.Equal(t, uint64(0), snap.LockTimerMS)
}

func TestBlockedRotationKeepsPiece(t *testing.T) {
	g := startedGame(t)
	for g.tryMove(1, 0) {
	}

	// A vertical bar would poke through the floor; there are no kicks
	g.HandleInput(core.ActionRotate)
	snap := g.Snapshot()
	assert.Equal(t, 0, snap.Active.Rotation)
	assert.Equal(t, 18, snap.Active.Row)
}

func TestHardDropMatchesGravity(t *testing.T) {
	dropped := startedGame(t)
	fallen := startedGame(t)
	for _, g := range []*Game{dropped, fallen} {
		g.board.Set(15, 4, 7)
		g.board.Set(19, 0, 7)
	}

	assert.Equal(t, 15, dropped.HardDrop())

	for i := 0; fallen.active.Shape == 0; i++ {
		require.Less(t, i, BoardHeight+10)
		fallen.Update(700)
	}

	assert.Equal(t, dropped.board.Cells(), fallen.board.Cells())
	assert.Equal(t, 1, dropped.board.Cell(14, 4))
	assert.Equal(t, 30, dropped.Ledger().Current())
	assert.Equal(t, 0, fallen.Ledger().Current())
}

func TestHardDropClearsLineAndLevelsUp(t *testing.T) {
	g := startedGame(t)
	for _, col := range []int{0, 1, 2, 7, 8, 9} {
		g.board.Set(19, col, 5)
	}
	g.lines = 9

	g.HandleInput(core.ActionHardDrop)

	snap := g.Snapshot()
	assert.Equal(t, 140, snap.Score, "40 for 20 rows dropped plus 100 for one line")
	assert.Equal(t, 140, snap.HighScore)
	assert.Equal(t, 10, snap.Lines)
	assert.Equal(t, 2, snap.Level)
	assert.Equal(t, uint64(650), snap.GravityMS)
	assert.Equal(t, []int{19}, snap.ClearedRows)
	assert.Len(t, snap.DropTrail, 4)
	assert.True(t, snap.HUDPulse)
	assert.Equal(t, 0, g.board.Height())
	assert.Equal(t, 1, snap.Active.Shape)
}

func TestEffectsExpire(t *testing.T) {
	g := startedGame(t)
	for _, col := range []int{0, 1, 2, 7, 8, 9} {
		g.board.Set(19, col, 5)
	}
	g.HandleInput(core.ActionHardDrop)

	for range 3 {
		g.Step(core.ActionNone, 0)
	}
	snap := g.Snapshot()
	assert.NotEmpty(t, snap.ClearedRows)
	assert.NotEmpty(t, snap.DropTrail)

	g.Step(core.ActionNone, 0)
	snap = g.Snapshot()
	assert.NotEmpty(t, snap.ClearedRows)
	assert.Empty(t, snap.DropTrail, "trail lasts 4 ticks")

	g.Step(core.ActionNone, 0)
	g.Step(core.ActionNone, 0)
	assert.Empty(t, g.Snapshot().ClearedRows, "flash lasts 6 ticks")
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	g := startedGame(t)
	for col := 3; col <= 6; col++ {
		g.board.Set(0, col, 9)
	}

	// I and O are stuck above the well and lock nothing; T cannot spawn
	assert.Equal(t, 0, g.HardDrop())
	assert.Equal(t, PhasePlaying, g.Phase())
	assert.Equal(t, 0, g.HardDrop())

	assert.Equal(t, PhaseGameOver, g.Phase())
	assert.True(t, g.State().GameOver)
	assert.False(t, g.Snapshot().Active.Active)
	assert.Equal(t, 4, countFilled(&g.board))

	g.Step(core.ActionLeft, 10_000)
	assert.Equal(t, PhaseGameOver, g.Phase())

	res := g.Step(core.ActionRestart, 0)
	assert.False(t, res.Quit)
	assert.False(t, res.State.GameOver)
	snap := g.Snapshot()
	assert.Equal(t, PhasePlaying, snap.Phase)
	assert.True(t, snap.Active.Active)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 0, g.board.Height())
}

func TestPause(t *testing.T) {
	g := startedGame(t)

	g.Step(core.ActionPause, 0)
	require.True(t, g.Snapshot().Paused)
	assert.True(t, g.State().Paused)

	g.Step(core.ActionLeft, 5000)
	snap := g.Snapshot()
	assert.Equal(t, -2, snap.Active.Row)
	assert.Equal(t, 3, snap.Active.Col)

	g.Step(core.ActionPause, 0)
	assert.False(t, g.Snapshot().Paused)
	g.Step(core.ActionNone, 700)
	assert.Equal(t, -1, g.Snapshot().Active.Row)
}

func TestQuit(t *testing.T) {
	g := New(WithRand(identityRand{}))
	assert.True(t, g.Step(core.ActionQuit, 0).Quit, "from title")

	g = startedGame(t)
	assert.False(t, g.Step(core.ActionNone, 16).Quit)
	assert.True(t, g.Step(core.ActionQuit, 16).Quit)
}

func TestSaveFailureIsNotFatal(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	var buf bytes.Buffer
	g := startedGame(t, WithLedger(NewLedger(store)), WithLogger(log.New(&buf)))

	g.HardDrop()

	assert.Equal(t, PhasePlaying, g.Phase())
	assert.Equal(t, 40, g.Ledger().High())
	assert.Equal(t, 1, store.saves)
	assert.Contains(t, buf.String(), "could not save high score")
}

func TestHighScoreSavedOnlyOnImprovement(t *testing.T) {
	store := &memStore{value: 100}
	g := startedGame(t, WithLedger(NewLedger(store)))

	g.HardDrop() // 40
	assert.Equal(t, 0, store.saves)
	g.HardDrop() // +38 for the O
	assert.Equal(t, 0, store.saves)
	g.HardDrop()
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, g.Ledger().Current(), store.value)
}

func TestDeterminism(t *testing.T) {
	cfg := core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 30}

	g1 := New()
	g1.Reset(cfg)
	g2 := New()
	g2.Reset(cfg)

	inputs := []core.Action{core.ActionLeft, core.ActionRotate, core.ActionRight, core.ActionSoftDrop, core.ActionHardDrop}
	g1.Step(core.ActionStart, 0)
	g2.Step(core.ActionStart, 0)
	for i := range 400 {
		in := core.ActionNone
		if i%7 == 0 {
			in = inputs[(i/7)%len(inputs)]
		}
		g1.Step(in, 16)
		g2.Step(in, 16)
	}

	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestDebugState(t *testing.T) {
	g := startedGame(t)
	out := g.DebugState()
	assert.Contains(t, out, "Phase: playing")
	assert.Contains(t, out, "Piece: I rot 0")
	assert.Contains(t, out, "Next: O")
	assert.Contains(t, out, "Stack: 0 rows, Bag: 5 left")
}
