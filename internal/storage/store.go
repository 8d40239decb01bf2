// Package storage persists the high score between runs.
//
// Two backends exist: a plain text file holding a single integer, and an
// SQLite database that additionally keeps the history of every run.
package storage

// HighScoreStore restores and persists the best score.
type HighScoreStore interface {
	// LoadHighScore returns the stored high score, or 0 when none exists.
	LoadHighScore() (int, error)
	// SaveHighScore persists high as the new best score.
	SaveHighScore(high int) error
}

// RunRecorder is implemented by stores that keep per-run history.
type RunRecorder interface {
	RecordRun(score int) error
}

// Discard is a store that remembers nothing.
var Discard HighScoreStore = discard{}

type discard struct{}

func (discard) LoadHighScore() (int, error) { return 0, nil }
func (discard) SaveHighScore(int) error     { return nil }
