package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func TestPrintCatalog(t *testing.T) {
	var out bytes.Buffer
	printCatalog(&out)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Pieces (7):"))
	for _, name := range []string{"I", "O", "T", "L", "J", "S", "Z"} {
		assert.Contains(t, text, "\n  "+name+"  (")
	}
	assert.Contains(t, text, "O  (1 rotation)")
	assert.Contains(t, text, "T  (4 rotations)")
}

func TestPrintScores(t *testing.T) {
	var out bytes.Buffer
	printScores(&out, nil, 0)
	assert.Contains(t, out.String(), "No runs recorded yet.")

	out.Reset()
	when := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)
	printScores(&out, []storage.Run{
		{Player: "alice", Score: 1200, Lines: 12, Level: 2, CreatedAt: when},
		{Player: "bob", Score: 300, Lines: 3, Level: 1, CreatedAt: when},
	}, 900)

	text := out.String()
	assert.Contains(t, text, "alice")
	assert.Contains(t, text, "2024-01-02 03:04")
	assert.Contains(t, text, "Best: 1200")
}

func TestPrintRun(t *testing.T) {
	var out bytes.Buffer
	printRun(&out, storage.Run{
		ID:        "abc",
		Player:    "alice",
		Score:     420,
		Seed:      7,
		Duration:  90*time.Second + 400*time.Millisecond,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
	})

	text := out.String()
	assert.Contains(t, text, "Run abc")
	assert.Contains(t, text, "Score   : 420")
	assert.Contains(t, text, "Seed    : 7")
	assert.Contains(t, text, "Duration: 1m30s")
}
