package tetris

// HighScoreStore persists the best score as a single integer record.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
	Location() string
}

// lineAwards holds points for 0..4 simultaneous clears.
var lineAwards = [...]int{0, 100, 300, 500, 800}

// Ledger tracks the running score and the best score seen.
type Ledger struct {
	current int
	high    int
	store   HighScoreStore
}

// NewLedger seeds the high score from store. Any load failure or negative
// value leaves the high score at zero. A nil store disables persistence.
func NewLedger(store HighScoreStore) *Ledger {
	l := &Ledger{store: store}
	if store == nil {
		return l
	}
	if v, err := store.Load(); err == nil && v >= 0 {
		l.high = v
	}
	return l
}

// Current returns the score of the running session.
func (l *Ledger) Current() int {
	return l.current
}

// High returns the best score recorded.
func (l *Ledger) High() int {
	return l.high
}

// Location returns where the high score lives, or "" without a store.
func (l *Ledger) Location() string {
	if l.store == nil {
		return ""
	}
	return l.store.Location()
}

// ResetCurrent starts a fresh session score.
func (l *Ledger) ResetCurrent() {
	l.current = 0
}

// AddLines awards points for rows cleared by a single lock.
func (l *Ledger) AddLines(cleared int) {
	if cleared <= 0 {
		return
	}
	l.current += LineAward(cleared)
}

// AddDrop awards two points per cell of hard-drop distance.
func (l *Ledger) AddDrop(distance int) {
	if distance <= 0 {
		return
	}
	l.current += distance * 2
}

// CommitHighScore raises the high score when the current run beats it.
// Returns true only on a strict improvement.
func (l *Ledger) CommitHighScore() bool {
	if l.current > l.high {
		l.high = l.current
		return true
	}
	return false
}

// Save writes the high score to the store.
func (l *Ledger) Save() error {
	if l.store == nil {
		return nil
	}
	return l.store.Save(l.high)
}

// LineAward returns the points for clearing n rows at once.
func LineAward(n int) int {
	if n <= 0 {
		return 0
	}
	if n < len(lineAwards) {
		return lineAwards[n]
	}
	return lineAwards[4] + (n-4)*100
}
