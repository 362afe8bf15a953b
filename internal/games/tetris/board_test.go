package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *Board, row, value int) {
	for col := range BoardWidth {
		b.Set(row, col, value)
	}
}

func countFilled(b *Board) int {
	n := 0
	for row := range BoardHeight {
		for col := range BoardWidth {
			if b.Cell(row, col) != CellEmpty {
				n++
			}
		}
	}
	return n
}

func TestCanPlace(t *testing.T) {
	var b Board
	tee := ShapeAt(2) // rotation 0 fills (1,1) (2,0) (2,1) (2,2)

	assert.True(t, b.CanPlace(tee, 0, 5, 3), "inside empty board")
	assert.False(t, b.CanPlace(tee, 0, 5, -1), "off the left edge")
	assert.False(t, b.CanPlace(tee, 0, 5, 8), "off the right edge")
	assert.False(t, b.CanPlace(tee, 0, 18, 3), "through the floor")
	assert.True(t, b.CanPlace(tee, 0, -3, 3), "above the top edge")
	assert.True(t, b.CanPlace(tee, 0, 17, 3), "resting on the floor")

	b.Set(7, 4, 1)
	assert.False(t, b.CanPlace(tee, 0, 5, 3), "occupied target cell")
	assert.True(t, b.CanPlace(tee, 0, 4, 3), "occupied cell below")
}

func TestCanPlaceRejectsInvalid(t *testing.T) {
	var b Board
	assert.False(t, b.CanPlace(nil, 0, 0, 0))
	assert.False(t, b.CanPlace(ShapeAt(1), 1, 0, 0), "O has one rotation")
	assert.False(t, b.CanPlace(ShapeAt(2), -1, 0, 0))
}

func TestLockWritesOnlyInBounds(t *testing.T) {
	var b Board
	i := ShapeAt(0)

	// Rotation 0 fills local row 1, so row -1 puts the bar on row 0 at cols 8..11
	b.Lock(i, 0, -1, 8, 1)

	assert.Equal(t, 1, b.Cell(0, 8))
	assert.Equal(t, 1, b.Cell(0, 9))
	assert.Equal(t, 2, countFilled(&b))

	// Entirely above the well writes nothing
	b.Lock(i, 0, -3, 0, 1)
	assert.Equal(t, 2, countFilled(&b))
}

func TestCellOutOfRange(t *testing.T) {
	var b Board
	b.Set(-1, 0, 5)
	b.Set(0, BoardWidth, 5)
	assert.Equal(t, CellEmpty, b.Cell(-1, 0))
	assert.Equal(t, CellEmpty, b.Cell(BoardHeight, 0))
	assert.Equal(t, 0, countFilled(&b))
}

func TestClearSingleLine(t *testing.T) {
	var b Board
	fillRow(&b, 19, 1)
	b.Set(18, 0, 5)
	b.Set(10, 9, 6)

	cleared, rows := b.ClearLines(BoardHeight)

	require.Equal(t, 1, cleared)
	assert.Equal(t, []int{19}, rows)
	assert.Equal(t, 5, b.Cell(19, 0))
	assert.Equal(t, 6, b.Cell(11, 9))
	assert.Equal(t, 2, countFilled(&b))
	assert.Equal(t, 9, b.Height())
}

func TestClearAdjacentLines(t *testing.T) {
	var b Board
	fillRow(&b, 18, 2)
	fillRow(&b, 19, 1)
	b.Set(17, 3, 4)

	cleared, rows := b.ClearLines(BoardHeight)

	require.Equal(t, 2, cleared)
	// The row above falls into the same index and is checked again
	assert.Equal(t, []int{19, 19}, rows)
	assert.Equal(t, 4, b.Cell(19, 3))
	assert.Equal(t, 1, countFilled(&b))
}

func TestClearSeparatedLines(t *testing.T) {
	var b Board
	fillRow(&b, 19, 1)
	fillRow(&b, 17, 1)
	b.Set(18, 2, 3)
	b.Set(16, 5, 6)

	cleared, rows := b.ClearLines(BoardHeight)

	require.Equal(t, 2, cleared)
	assert.Equal(t, []int{19, 18}, rows)
	assert.Equal(t, 3, b.Cell(19, 2))
	assert.Equal(t, 6, b.Cell(18, 5))
	assert.Equal(t, 2, countFilled(&b))
}

func TestClearLinesCapacity(t *testing.T) {
	var b Board
	fillRow(&b, 19, 1)
	fillRow(&b, 18, 1)
	fillRow(&b, 17, 1)

	cleared, rows := b.ClearLines(1)

	assert.Equal(t, 3, cleared)
	assert.Len(t, rows, 1)
	assert.Equal(t, 0, countFilled(&b))
}

func TestClearNothing(t *testing.T) {
	var b Board
	b.Set(19, 0, 1)
	cleared, rows := b.ClearLines(BoardHeight)
	assert.Equal(t, 0, cleared)
	assert.Empty(t, rows)
	assert.Equal(t, 1, b.Cell(19, 0))
}

func TestCanPlaceSideWallsAboveWell(t *testing.T) {
	var b Board
	i := ShapeAt(0)
	assert.True(t, b.CanPlace(i, 0, -2, 0))
	assert.False(t, b.CanPlace(i, 0, -2, -1))
	assert.False(t, b.CanPlace(i, 0, -2, 7))
}
