package tetris

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is one session of the falling-block game. It owns the well, the bag,
// the score ledger and every timer; nothing is shared between instances.
type Game struct {
	rules       Rules
	rng         RandSource
	injectedRNG bool
	ledger      *Ledger
	logger      *log.Logger

	board  Board
	bag    *Bag
	active ActivePiece
	next   int
	phase  Phase
	paused bool
	tick   uint64

	gravityAccMS uint64
	gravityMS    uint64
	lockPending  bool
	lockTimerMS  uint64
	lines        int
	level        int

	// Visual effects, counted down once per Step
	flashRows  [BoardHeight]bool
	flashTicks int
	trail      []Point
	trailTicks int
	pulseTicks int
}

// Option configures a Game.
type Option func(*Game)

// WithRules replaces the default timing rules.
func WithRules(r Rules) Option {
	return func(g *Game) {
		g.rules = r
	}
}

// WithLedger sets the score ledger, typically backed by a persistent store.
func WithLedger(l *Ledger) Option {
	return func(g *Game) {
		if l != nil {
			g.ledger = l
		}
	}
}

// WithRand injects the random source used by the bag. Reset will not reseed it.
func WithRand(rng RandSource) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
			g.injectedRNG = true
		}
	}
}

// WithLogger sets the logger for non-fatal problems such as failed saves.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a session on the title screen.
func New(opts ...Option) *Game {
	g := &Game{
		rules:  DefaultRules(),
		ledger: NewLedger(nil),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1))
	}
	g.resetSession()
	g.phase = PhaseTitle
	return g
}

// Reset reseeds the session and returns to the title screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.injectedRNG {
		g.rng = rand.New(rand.NewSource(cfg.Seed))
	}
	g.tick = 0
	g.resetSession()
	g.phase = PhaseTitle
}

// resetSession clears all per-session state. The high score survives.
func (g *Game) resetSession() {
	g.board.Reset()
	g.bag = NewBag(ShapeCount(), g.rng)
	g.active = ActivePiece{}
	g.next = -1
	g.paused = false
	g.gravityAccMS = 0
	g.lines = 0
	g.level = 1
	g.gravityMS = g.rules.GravityInterval(g.level)
	g.lockPending = false
	g.lockTimerMS = 0
	g.flashRows = [BoardHeight]bool{}
	g.flashTicks = 0
	g.trail = g.trail[:0]
	g.trailTicks = 0
	g.pulseTicks = 0
	g.ledger.ResetCurrent()
}

// Start leaves the title screen.
func (g *Game) Start() {
	if g.phase != PhaseTitle {
		return
	}
	g.phase = PhasePlaying
	g.ensureNext()
	g.spawn()
}

// Restart begins a new session immediately.
func (g *Game) Restart() {
	g.resetSession()
	g.phase = PhasePlaying
	g.ensureNext()
	g.spawn()
}

// Step applies one input event, advances the clock by elapsedMS and counts
// down visual effects.
func (g *Game) Step(in core.Action, elapsedMS uint64) core.StepResult {
	g.tick++
	quit := g.HandleInput(in)
	g.Update(elapsedMS)
	g.tickEffects()
	return core.StepResult{State: g.State(), Quit: quit}
}

// HandleInput applies a single input event. Returns true when the player
// asked to quit.
func (g *Game) HandleInput(in core.Action) bool {
	if in == core.ActionQuit {
		return true
	}

	switch g.phase {
	case PhaseTitle:
		if in == core.ActionStart || in == core.ActionRestart {
			g.Start()
		}
		return false
	case PhaseGameOver:
		if in == core.ActionRestart || in == core.ActionStart {
			g.Restart()
		}
		return false
	}

	if in == core.ActionPause {
		g.paused = !g.paused
		return false
	}
	if g.paused {
		return false
	}

	switch in {
	case core.ActionLeft:
		if g.tryMove(0, -1) {
			g.cancelLockDelay()
		}
	case core.ActionRight:
		if g.tryMove(0, 1) {
			g.cancelLockDelay()
		}
	case core.ActionSoftDrop:
		if g.tryMove(1, 0) {
			g.cancelLockDelay()
		} else {
			g.beginLockDelay()
		}
	case core.ActionRotate:
		if g.tryRotate(1) {
			g.cancelLockDelay()
		}
	case core.ActionHardDrop:
		g.HardDrop()
	}
	return false
}

// HardDrop moves the piece down until blocked and settles it at once.
// Returns the number of rows fallen.
func (g *Game) HardDrop() int {
	if g.phase != PhasePlaying || !g.active.Active {
		return 0
	}
	dropped := 0
	for g.tryMove(1, 0) {
		dropped++
	}
	g.settle(dropped)
	return dropped
}

// Update advances gravity and the lock delay by elapsedMS.
func (g *Game) Update(elapsedMS uint64) {
	if g.phase != PhasePlaying || g.paused {
		return
	}

	if !g.active.Active {
		g.spawn()
		if g.phase != PhasePlaying {
			return
		}
	}

	g.gravityAccMS += elapsedMS
	for g.gravityAccMS >= g.gravityMS {
		g.gravityAccMS -= g.gravityMS
		if g.tryMove(1, 0) {
			g.cancelLockDelay()
		} else {
			g.beginLockDelay()
		}
	}

	if g.lockPending {
		g.lockTimerMS += elapsedMS
		if g.lockTimerMS >= g.rules.LockDelayMS {
			g.settle(0)
		}
	}
}

// State returns the platform-level summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.ledger.Current(),
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused || g.phase != PhasePlaying,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Board returns a copy of the well.
func (g *Game) Board() Board {
	return g.board
}

// Ledger returns the score ledger.
func (g *Game) Ledger() *Ledger {
	return g.ledger
}

// Rules returns the rules in effect.
func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) currentShape() *Shape {
	return shapeAt(g.active.Shape)
}

func (g *Game) ensureNext() {
	if g.next >= 0 {
		return
	}
	g.next = g.bag.Next()
}

// spawn activates the queued piece and draws the following one.
// A piece that cannot be placed at its spawn position ends the session.
func (g *Game) spawn() {
	if ShapeCount() == 0 {
		g.active.Active = false
		return
	}

	g.ensureNext()
	shape := shapeAt(g.next)
	g.active = ActivePiece{
		Shape:    g.next,
		Rotation: 0,
		Row:      g.rules.SpawnRow,
		Col:      (BoardWidth - shape.Size) / 2,
		Active:   true,
	}
	g.next = g.bag.Next()

	if !g.board.CanPlace(shape, g.active.Rotation, g.active.Row, g.active.Col) {
		g.phase = PhaseGameOver
		g.cancelLockDelay()
		g.active.Active = false
		g.logger.Debug("spawn blocked", "shape", shape.Name, "score", g.ledger.Current(), "lines", g.lines)
	}
}

func (g *Game) tryMove(dRow, dCol int) bool {
	if !g.active.Active {
		return false
	}
	row := g.active.Row + dRow
	col := g.active.Col + dCol
	if !g.board.CanPlace(g.currentShape(), g.active.Rotation, row, col) {
		return false
	}
	g.active.Row = row
	g.active.Col = col
	return true
}

// tryRotate cycles through the shape's rotation states. There are no wall
// kicks: a blocked rotation leaves the piece unchanged.
func (g *Game) tryRotate(direction int) bool {
	if !g.active.Active {
		return false
	}
	shape := g.currentShape()
	n := shape.RotationCount()
	next := ((g.active.Rotation+direction)%n + n) % n
	if !g.board.CanPlace(shape, next, g.active.Row, g.active.Col) {
		return false
	}
	g.active.Rotation = next
	return true
}

func (g *Game) beginLockDelay() {
	if g.lockPending {
		return
	}
	g.lockPending = true
	g.lockTimerMS = 0
}

func (g *Game) cancelLockDelay() {
	g.lockPending = false
	g.lockTimerMS = 0
}

// settle commits the active piece, scores it and spawns the next one.
func (g *Game) settle(dropBonus int) {
	g.cancelLockDelay()
	if dropBonus > 0 {
		g.recordDropTrail()
	} else {
		g.trail = g.trail[:0]
		g.trailTicks = 0
	}

	g.lockPiece()

	if dropBonus > 0 {
		g.ledger.AddDrop(dropBonus)
	}

	cleared, rows := g.board.ClearLines(BoardHeight)
	if cleared > 0 {
		g.ledger.AddLines(cleared)
		g.lines += cleared
		g.triggerLineFlash(rows)
		g.updateLevel()
	}

	if g.ledger.CommitHighScore() {
		if err := g.ledger.Save(); err != nil {
			g.logger.Warn("could not save high score", "location", g.ledger.Location(), "error", err)
		}
		g.pulseTicks = g.rules.HUDPulseTicks
	}

	g.spawn()
}

func (g *Game) lockPiece() {
	if !g.active.Active {
		return
	}
	g.board.Lock(g.currentShape(), g.active.Rotation, g.active.Row, g.active.Col, g.active.Shape+1)
	g.active.Active = false
}

func (g *Game) updateLevel() {
	level := g.rules.LevelForLines(g.lines)
	if level == g.level {
		return
	}
	g.level = level
	g.gravityMS = g.rules.GravityInterval(level)
	g.pulseTicks = g.rules.HUDPulseTicks
}

func (g *Game) triggerLineFlash(rows []int) {
	g.flashRows = [BoardHeight]bool{}
	for _, row := range rows {
		if row >= 0 && row < BoardHeight {
			g.flashRows[row] = true
		}
	}
	g.flashTicks = g.rules.LineFlashTicks
}

// recordDropTrail remembers the in-bounds cells where a hard-dropped piece landed.
func (g *Game) recordDropTrail() {
	g.trail = g.trail[:0]
	for _, cell := range g.currentShape().Cells(g.active.Rotation) {
		row := g.active.Row + cell[0]
		col := g.active.Col + cell[1]
		if inBounds(row, col) {
			g.trail = append(g.trail, Point{Row: row, Col: col})
		}
	}
	if len(g.trail) > 0 {
		g.trailTicks = g.rules.DropTrailTicks
	} else {
		g.trailTicks = 0
	}
}

func (g *Game) tickEffects() {
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flashRows = [BoardHeight]bool{}
		}
	}
	if g.trailTicks > 0 {
		g.trailTicks--
		if g.trailTicks == 0 {
			g.trail = g.trail[:0]
		}
	}
	if g.pulseTicks > 0 {
		g.pulseTicks--
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tick: %d, Phase: %s, Score: %d, High: %d\n",
		g.tick, g.phase, g.ledger.Current(), g.ledger.High()))
	b.WriteString(fmt.Sprintf("Level: %d, Lines: %d, Gravity: %dms\n", g.level, g.lines, g.gravityMS))
	if g.active.Active {
		b.WriteString(fmt.Sprintf("Piece: %s rot %d at (%d, %d), Next: %s\n",
			shapeAt(g.active.Shape).Name, g.active.Rotation, g.active.Row, g.active.Col, shapeName(g.next)))
	}
	b.WriteString(fmt.Sprintf("Lock: pending=%v timer=%dms\n", g.lockPending, g.lockTimerMS))
	b.WriteString(fmt.Sprintf("Stack: %d rows, Bag: %d left\n", g.board.Height(), g.bag.Remaining()))
	return b.String()
}

func shapeName(id int) string {
	if s := shapeAt(id); s != nil {
		return s.Name
	}
	return "-"
}
