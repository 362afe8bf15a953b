package tetris

// Well dimensions. The well never changes size.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// CellEmpty marks an unoccupied cell. Locked cells hold the piece id plus one.
const CellEmpty = 0

// Board is the grid of locked cells.
type Board struct {
	cells [BoardHeight][BoardWidth]int
}

// Reset clears every cell.
func (b *Board) Reset() {
	b.cells = [BoardHeight][BoardWidth]int{}
}

// Cell returns the value at (row, col), or CellEmpty when out of range.
func (b *Board) Cell(row, col int) int {
	if !inBounds(row, col) {
		return CellEmpty
	}
	return b.cells[row][col]
}

// Set writes a raw cell value; out-of-range coordinates are ignored.
// Used to build fixtures.
func (b *Board) Set(row, col, value int) {
	if !inBounds(row, col) {
		return
	}
	b.cells[row][col] = value
}

// Cells returns a copy of the grid.
func (b *Board) Cells() [BoardHeight][BoardWidth]int {
	return b.cells
}

// CanPlace reports whether the shape fits at the given anchor.
// Filled cells above the top edge are allowed so pieces can spawn partly
// outside the well; left, right and bottom edges always reject, even for
// cells that are still above the well.
func (b *Board) CanPlace(shape *Shape, rotation, row, col int) bool {
	if shape == nil || rotation < 0 || rotation >= shape.RotationCount() {
		return false
	}

	for r := 0; r < shape.Size; r++ {
		for c := 0; c < shape.Size; c++ {
			if !shape.Filled(rotation, r, c) {
				continue
			}

			boardRow := row + r
			boardCol := col + c

			if boardCol < 0 || boardCol >= BoardWidth || boardRow >= BoardHeight {
				return false
			}
			if boardRow < 0 {
				continue
			}
			if b.cells[boardRow][boardCol] != CellEmpty {
				return false
			}
		}
	}
	return true
}

// Lock commits the shape's in-bounds cells with the given value.
// Cells outside the well are skipped.
func (b *Board) Lock(shape *Shape, rotation, row, col, value int) {
	if shape == nil {
		return
	}
	for r := 0; r < shape.Size; r++ {
		for c := 0; c < shape.Size; c++ {
			if !shape.Filled(rotation, r, c) {
				continue
			}
			b.Set(row+r, col+c, value)
		}
	}
}

// ClearLines removes completed rows and collapses the stack.
// Rows are scanned bottom to top; after a collapse the same index is checked
// again because the row above has moved into it. Up to capacity row indices
// are reported (as seen at detection time); the returned count is the full
// number of rows removed.
func (b *Board) ClearLines(capacity int) (int, []int) {
	cleared := 0
	var rows []int

	for row := BoardHeight - 1; row >= 0; row-- {
		if !b.rowFull(row) {
			continue
		}

		if cleared < capacity {
			rows = append(rows, row)
		}

		for move := row; move > 0; move-- {
			b.cells[move] = b.cells[move-1]
		}
		b.cells[0] = [BoardWidth]int{}
		cleared++
		row++ // re-check this index after the shift
	}

	return cleared, rows
}

// Height returns the number of rows from the bottom up to the highest
// occupied cell.
func (b *Board) Height() int {
	for row := 0; row < BoardHeight; row++ {
		for col := 0; col < BoardWidth; col++ {
			if b.cells[row][col] != CellEmpty {
				return BoardHeight - row
			}
		}
	}
	return 0
}

func (b *Board) rowFull(row int) bool {
	for col := 0; col < BoardWidth; col++ {
		if b.cells[row][col] == CellEmpty {
			return false
		}
	}
	return true
}

func inBounds(row, col int) bool {
	return row >= 0 && row < BoardHeight && col >= 0 && col < BoardWidth
}
