package tetris

// MaxBagSize bounds how many distinct pieces a bag can hold.
const MaxBagSize = 16

// RandSource is the randomness a bag draws from. *rand.Rand satisfies it;
// tests inject scripted sources to pin shuffle outcomes.
type RandSource interface {
	Intn(n int) int
}

// Bag hands out piece identifiers so that every identifier appears exactly
// once per refill, bounding droughts of any single piece.
type Bag struct {
	values [MaxBagSize]int
	count  int
	cursor int
	rng    RandSource
}

// NewBag prepares a bag of pieceCount identifiers (0..pieceCount-1).
// Counts above MaxBagSize are clamped. The bag starts exhausted, so the
// first Next shuffles.
func NewBag(pieceCount int, rng RandSource) *Bag {
	pieceCount = min(max(pieceCount, 0), MaxBagSize)
	return &Bag{
		count:  pieceCount,
		cursor: pieceCount,
		rng:    rng,
	}
}

// Next returns the next identifier, refilling when exhausted.
// Returns -1 for a bag with no pieces.
func (b *Bag) Next() int {
	if b.count == 0 {
		return -1
	}
	if b.cursor >= b.count {
		b.refill()
	}
	v := b.values[b.cursor]
	b.cursor++
	return v
}

// Len returns the number of distinct identifiers in the bag.
func (b *Bag) Len() int {
	return b.count
}

// Remaining returns how many draws are left before the next refill.
func (b *Bag) Remaining() int {
	return b.count - b.cursor
}

// refill writes every identifier once and applies a Fisher-Yates shuffle.
func (b *Bag) refill() {
	for i := 0; i < b.count; i++ {
		b.values[i] = i
	}
	for i := b.count; i > 1; i-- {
		j := b.rng.Intn(i)
		b.values[i-1], b.values[j] = b.values[j], b.values[i-1]
	}
	b.cursor = 0
}
