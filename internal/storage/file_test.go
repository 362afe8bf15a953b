package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFileIsZero(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "highscore"))
	require.NoError(t, err)

	score, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "highscore")
	fs, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, fs.Save(1234))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1234\n", string(data))

	score, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 1234, score)

	require.NoError(t, fs.Save(99))
	score, err = fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 99, score)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStoreMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not a number\n"},
		{"empty", ""},
		{"negative", "-40\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "highscore")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			fs, err := NewFileStore(path)
			require.NoError(t, err)
			score, err := fs.Load()
			assert.Error(t, err)
			assert.Equal(t, 0, score)
		})
	}
}

func TestFileStoreToleratesSurroundingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore")
	require.NoError(t, os.WriteFile(path, []byte("  640  \n\n"), 0o644))

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	score, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 640, score)
}

func TestFileStoreSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// A regular file where the directory should be
	fs, err := NewFileStore(filepath.Join(blocker, "highscore"))
	require.NoError(t, err)
	assert.Error(t, fs.Save(10))
}
