package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultHighScorePath is the file used when no path is configured.
const DefaultHighScorePath = "highscore.txt"

// FileStore keeps the high score as a single integer in a text file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultHighScorePath
	}
	return &FileStore{path: expandHome(path)}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// LoadHighScore reads the first whitespace-delimited token of the file.
// A missing file, a non-numeric token or a negative value yields 0 without error.
func (f *FileStore) LoadHighScore() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}

// SaveHighScore overwrites the file with high.
func (f *FileStore) SaveHighScore(high int) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(high)), 0o644); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", f.path, err)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

var _ HighScoreStore = (*FileStore)(nil)
