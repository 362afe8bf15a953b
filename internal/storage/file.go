package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the high score as a single decimal integer in a text file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store for path. Nothing is touched on disk until
// the first Save.
func NewFileStore(path string) (*FileStore, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Load reads the stored score. A missing file is a zero score, not an error.
// A malformed file is reported so the caller can fall back to zero.
func (f *FileStore) Load() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot open %s: %w", f.path, err)
	}
	defer file.Close()

	var score int
	if _, err := fmt.Fscan(file, &score); err != nil {
		return 0, fmt.Errorf("storage: malformed high score in %s: %w", f.path, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("storage: negative high score in %s", f.path)
	}
	return score, nil
}

// Save writes the score followed by a newline. The file is replaced
// atomically so a crash never leaves a truncated record.
func (f *FileStore) Save(score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := fmt.Fprintf(tmp, "%d\n", score); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// Location returns the file path.
func (f *FileStore) Location() string {
	return f.path
}

// Close is a no-op; it lets callers treat every record the same way.
func (f *FileStore) Close() error {
	return nil
}
