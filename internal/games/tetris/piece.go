// Package tetris implements the falling-block simulation: the piece catalog,
// the bag randomizer, the well, scoring and the fall/lock/clear state machine.
// It has no terminal dependencies; the platform layer feeds it actions and
// elapsed time and draws its snapshots.
package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Shape is a piece definition. Each rotation is a Size×Size occupancy grid
// stored as a row-major bitmask and only reachable through Filled and Cells.
type Shape struct {
	ID    int
	Name  string
	Size  int
	Color core.Color

	rotations []uint16
}

// RotationCount returns the number of distinct rotation states (1, 2 or 4).
func (s *Shape) RotationCount() int {
	if s == nil {
		return 0
	}
	return len(s.rotations)
}

// Filled reports whether the local cell is occupied in the given rotation.
// Out-of-range rotations and coordinates are simply empty.
func (s *Shape) Filled(rotation, row, col int) bool {
	if s == nil || rotation < 0 || rotation >= len(s.rotations) {
		return false
	}
	if row < 0 || row >= s.Size || col < 0 || col >= s.Size {
		return false
	}
	return s.rotations[rotation]&(1<<(row*s.Size+col)) != 0
}

// Cells returns the local (row, col) offsets of every filled cell.
func (s *Shape) Cells(rotation int) [][2]int {
	var cells [][2]int
	if s == nil {
		return cells
	}
	for r := 0; r < s.Size; r++ {
		for c := 0; c < s.Size; c++ {
			if s.Filled(rotation, r, c) {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}

// shapeDef is the readable source of a catalog entry: one layout per rotation,
// '#' marks a filled cell.
type shapeDef struct {
	name      string
	color     core.Color
	rotations [][]string
}

// Canonical rotation tables, in catalog order I, O, T, L, J, S, Z.
// Rotations are listed explicitly rather than computed, so rotating never
// shifts a piece and no kick table is needed.
var shapeDefs = []shapeDef{
	{"I", core.ColorCyan, [][]string{
		{"....", "####", "....", "...."},
		{"..#.", "..#.", "..#.", "..#."},
	}},
	{"O", core.ColorYellow, [][]string{
		{"..##", "..##", "....", "...."},
	}},
	{"T", core.ColorMagenta, [][]string{
		{"....", ".#..", "###.", "...."},
		{"..#.", ".##.", "..#.", "...."},
		{"....", "###.", ".#..", "...."},
		{".#..", ".##.", ".#..", "...."},
	}},
	{"L", core.ColorOrange, [][]string{
		{"..#.", "###.", "....", "...."},
		{".#..", ".#..", ".##.", "...."},
		{"....", "###.", "#...", "...."},
		{"##..", ".#..", ".#..", "...."},
	}},
	{"J", core.ColorBlue, [][]string{
		{"#...", "###.", "....", "...."},
		{".##.", ".#..", ".#..", "...."},
		{"....", "###.", "..#.", "...."},
		{".#..", ".#..", "##..", "...."},
	}},
	{"S", core.ColorGreen, [][]string{
		{".##.", "##..", "....", "...."},
		{".#..", ".##.", "..#.", "...."},
	}},
	{"Z", core.ColorRed, [][]string{
		{"##..", ".##.", "....", "...."},
		{"..#.", ".##.", ".#..", "...."},
	}},
}

var catalog = buildCatalog(shapeDefs)

func buildCatalog(defs []shapeDef) []Shape {
	shapes := make([]Shape, len(defs))
	for i, def := range defs {
		size := len(def.rotations[0])
		shape := Shape{
			ID:        i,
			Name:      def.name,
			Size:      size,
			Color:     def.color,
			rotations: make([]uint16, len(def.rotations)),
		}
		for r, layout := range def.rotations {
			var mask uint16
			for row, line := range layout {
				for col, ch := range line {
					if ch == '#' {
						mask |= 1 << (row*size + col)
					}
				}
			}
			shape.rotations[r] = mask
		}
		shapes[i] = shape
	}
	return shapes
}

// ShapeCount returns how many distinct shapes the catalog defines.
func ShapeCount() int {
	return len(catalog)
}

// ShapeAt returns a copy of the shape with the given index, or nil if out of
// range. Changing the copy never affects the catalog.
func ShapeAt(index int) *Shape {
	s := shapeAt(index)
	if s == nil {
		return nil
	}
	shape := *s
	return &shape
}

// shapeAt returns the catalog entry itself for the engine's hot paths.
func shapeAt(index int) *Shape {
	if index < 0 || index >= len(catalog) {
		return nil
	}
	return &catalog[index]
}

// CellIsFilled is the catalog-level cell query used by tests and previews.
func CellIsFilled(shape *Shape, rotation, row, col int) bool {
	return shape.Filled(rotation, row, col)
}
