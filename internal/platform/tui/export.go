package tui

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// DefaultScreenshotDir is where ctrl+s writes unless overridden.
const DefaultScreenshotDir = "~/.tetris/screenshots"

const (
	pngFontSize = 14.0
	pngPadding  = 8.0
)

var (
	pngBackground = color.RGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}
	pngForeground = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
)

// pngPalette approximates the terminal colors in RGB.
var pngPalette = map[core.Color]color.RGBA{
	core.ColorRed:           {R: 0xcd, G: 0x31, B: 0x31, A: 0xff},
	core.ColorGreen:         {R: 0x0d, G: 0xbc, B: 0x79, A: 0xff},
	core.ColorYellow:        {R: 0xe5, G: 0xe5, B: 0x10, A: 0xff},
	core.ColorBlue:          {R: 0x24, G: 0x72, B: 0xc8, A: 0xff},
	core.ColorMagenta:       {R: 0xbc, G: 0x3f, B: 0xbc, A: 0xff},
	core.ColorCyan:          {R: 0x11, G: 0xa8, B: 0xcd, A: 0xff},
	core.ColorWhite:         {R: 0xe5, G: 0xe5, B: 0xe5, A: 0xff},
	core.ColorBrightRed:     {R: 0xf1, G: 0x4c, B: 0x4c, A: 0xff},
	core.ColorBrightGreen:   {R: 0x23, G: 0xd1, B: 0x8b, A: 0xff},
	core.ColorBrightYellow:  {R: 0xf5, G: 0xf5, B: 0x43, A: 0xff},
	core.ColorBrightBlue:    {R: 0x3b, G: 0x8e, B: 0xea, A: 0xff},
	core.ColorBrightMagenta: {R: 0xd6, G: 0x70, B: 0xd6, A: 0xff},
	core.ColorBrightCyan:    {R: 0x29, G: 0xb8, B: 0xdb, A: 0xff},
	core.ColorBrightWhite:   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	core.ColorOrange:        {R: 0xff, G: 0x87, B: 0x00, A: 0xff},
	core.ColorGray:          {R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff},
}

// Exporter writes screen snapshots to disk and the clipboard.
type Exporter struct {
	dir string
	now func() time.Time
}

// NewExporter returns an exporter writing into dir ("" for the default).
func NewExporter(dir string) (*Exporter, error) {
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	dir, err := storage.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	return &Exporter{dir: dir, now: time.Now}, nil
}

// Save writes the screen as both a text file and a PNG image.
// Returns the base path shared by the two files (without extension).
func (e *Exporter) Save(s *core.Screen) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	base := filepath.Join(e.dir, "tetris_"+e.now().Format("20060102_150405"))
	if err := os.WriteFile(base+".txt", []byte(ScreenText(s)), 0o600); err != nil {
		return "", fmt.Errorf("cannot write text screenshot: %w", err)
	}
	if err := WritePNG(s, base+".png"); err != nil {
		return "", err
	}
	return base, nil
}

// ScreenText returns the screen as plain text with trailing spaces trimmed.
func ScreenText(s *core.Screen) string {
	lines := strings.Split(s.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

// CopyToClipboard places the plain-text screen on the system clipboard.
func CopyToClipboard(s *core.Screen) error {
	if err := clipboard.WriteAll(ScreenText(s)); err != nil {
		return fmt.Errorf("cannot copy to clipboard: %w", err)
	}
	return nil
}

// WritePNG renders the screen buffer with a monospace font.
func WritePNG(s *core.Screen, path string) error {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	// Measure on a scratch context so the real one can be sized exactly
	probe := gg.NewContext(1, 1)
	probe.SetFontFace(face)
	charW, _ := probe.MeasureString("M")
	charH := probe.FontHeight() * 1.3

	width := int(float64(s.Width())*charW + 2*pngPadding)
	height := int(float64(s.Height())*charH + 2*pngPadding)
	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetFontFace(face)
	dc.SetColor(pngBackground)
	dc.Clear()

	for y := range s.Height() {
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			px := pngPadding + float64(x)*charW
			py := pngPadding + float64(y)*charH

			fg := pngForeground
			if c, ok := pngPalette[cell.Color]; ok {
				fg = c
			}
			if cell.Color == core.ColorInverse {
				dc.SetColor(pngForeground)
				dc.DrawRectangle(px, py, charW, charH)
				dc.Fill()
				fg = pngBackground
			}
			if cell.Rune == ' ' {
				continue
			}
			dc.SetColor(fg)
			dc.DrawStringAnchored(string(cell.Rune), px, py, 0, 1)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("cannot write png screenshot: %w", err)
	}
	return nil
}
