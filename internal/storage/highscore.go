package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HighScoreRecord is a single persisted integer. Both FileStore and Record
// satisfy it, and so does the engine's store interface.
type HighScoreRecord interface {
	Load() (int, error)
	Save(score int) error
	Location() string
	Close() error
}

// DefaultHighScorePath is where the high score lives unless overridden.
const DefaultHighScorePath = "~/.tetris/highscore"

// DefaultDBPath is where run history lives unless overridden.
const DefaultDBPath = "~/.tetris/scores.db"

// highScoreRecordName is the row used when the high score is kept in SQLite.
const highScoreRecordName = "tetris"

// OpenHighScore picks a backend from the path: .db and .sqlite files get a
// SQLite record, anything else the flat file.
func OpenHighScore(path string) (HighScoreRecord, error) {
	if path == "" {
		path = DefaultHighScorePath
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		store, err := Open(path)
		if err != nil {
			return nil, err
		}
		return store.HighScoreRecord(highScoreRecordName), nil
	default:
		return NewFileStore(path)
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
