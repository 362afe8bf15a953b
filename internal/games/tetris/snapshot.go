package tetris

// Phase is the coarse state of a session.
type Phase string

const (
	PhaseTitle    Phase = "title"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
)

// ActivePiece is the piece under player and gravity control.
// Row may be negative while the piece is above the well.
type ActivePiece struct {
	Shape    int
	Rotation int
	Row      int
	Col      int
	Active   bool
}

// Point is a board cell position.
type Point struct {
	Row, Col int
}

// Snapshot is a read-only copy of everything the renderer needs.
type Snapshot struct {
	Tick        uint64
	Phase       Phase
	Paused      bool
	Cells       [BoardHeight][BoardWidth]int
	Active      ActivePiece
	Next        int
	Score       int
	HighScore   int
	Level       int
	Lines       int
	GravityMS   uint64
	LockPending bool
	LockTimerMS uint64
	ClearedRows []int   // Rows flashing after a clear
	DropTrail   []Point // Landing cells of the last hard drop
	HUDPulse    bool    // Level up or new high score
}

// Snapshot returns the current state for rendering and determinism checks.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        g.tick,
		Phase:       g.phase,
		Paused:      g.paused,
		Cells:       g.board.Cells(),
		Active:      g.active,
		Next:        g.next,
		Score:       g.ledger.Current(),
		HighScore:   g.ledger.High(),
		Level:       g.level,
		Lines:       g.lines,
		GravityMS:   g.gravityMS,
		LockPending: g.lockPending,
		LockTimerMS: g.lockTimerMS,
		HUDPulse:    g.pulseTicks > 0,
	}

	if g.flashTicks > 0 {
		for row, on := range g.flashRows {
			if on {
				snap.ClearedRows = append(snap.ClearedRows, row)
			}
		}
	}
	if g.trailTicks > 0 {
		snap.DropTrail = append([]Point(nil), g.trail...)
	}
	return snap
}
