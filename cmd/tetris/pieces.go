package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "List the piece catalog",
	Long:  `Shows every piece with each of its rotation states.`,
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		printCatalog(os.Stdout)
	},
}

// printCatalog draws each rotation of every shape side by side.
func printCatalog(w io.Writer) {
	fmt.Fprintf(w, "Pieces (%d):\n", tetris.ShapeCount())

	for i := range tetris.ShapeCount() {
		shape := tetris.ShapeAt(i)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s  (%d rotation", shape.Name, shape.RotationCount())
		if shape.RotationCount() != 1 {
			fmt.Fprint(w, "s")
		}
		fmt.Fprintln(w, ")")

		for row := range shape.Size {
			parts := make([]string, shape.RotationCount())
			for rot := range parts {
				var sb strings.Builder
				for col := range shape.Size {
					if shape.Filled(rot, row, col) {
						sb.WriteString("[]")
					} else {
						sb.WriteString(" .")
					}
				}
				parts[rot] = sb.String()
			}
			fmt.Fprintf(w, "    %s\n", strings.Join(parts, "   "))
		}
	}
}
