package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultProfile names runs made without a config profile.
const DefaultProfile = "default"

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished run.
type ScoreEntry struct {
	ID        int64
	Profile   string
	Score     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// best holds the high score separately so it survives history clears.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(profile, score DESC);

		CREATE TABLE IF NOT EXISTS best (
			profile TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run for the given profile.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(profile string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (profile, score) VALUES (?, ?)",
		profileKey(profile), score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SetHighScore stores high as the best score of profile.
func (s *Store) SetHighScore(profile string, high int) error {
	_, err := s.db.Exec(
		`INSERT INTO best (profile, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		profileKey(profile), high,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// HighScore returns the best score for the profile: the stored best, or
// the top recorded run if that is higher. Returns 0 if nothing exists.
func (s *Store) HighScore(profile string) (int, error) {
	key := profileKey(profile)

	var best sql.NullInt64
	err := s.db.QueryRow("SELECT score FROM best WHERE profile = ?", key).Scan(&best)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	var top sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE profile = ?", key).Scan(&top); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	high := 0
	if best.Valid {
		high = int(best.Int64)
	}
	if top.Valid && int(top.Int64) > high {
		high = int(top.Int64)
	}
	return high, nil
}

// TopScores retrieves the top N runs for the given profile.
// Results are ordered by score descending.
func (s *Store) TopScores(profile string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, profile, score, created_at
		 FROM runs
		 WHERE profile = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		profileKey(profile), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Profile, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes the run history and best score of the profile.
func (s *Store) ClearScores(profile string) error {
	key := profileKey(profile)
	if _, err := s.db.Exec("DELETE FROM runs WHERE profile = ?", key); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM best WHERE profile = ?", key); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ProfileStats contains aggregated statistics for a profile.
type ProfileStats struct {
	Profile    string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a specific profile.
func (s *Store) Stats(profile string) (*ProfileStats, error) {
	key := profileKey(profile)
	stats := &ProfileStats{Profile: key}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM runs WHERE profile = ?`,
		key,
	).Scan(&stats.RunsCount, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	high, err := s.HighScore(key)
	if err != nil {
		return nil, err
	}
	stats.HighScore = high

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE profile = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		key,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Profiles lists every profile that has recorded runs, sorted by name.
func (s *Store) Profiles() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT profile FROM runs ORDER BY profile`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return profiles, nil
}

// Board returns a HighScoreStore view of the store for one profile.
func (s *Store) Board(profile string) *Board {
	return &Board{store: s, profile: profileKey(profile)}
}

// Board adapts a Store to HighScoreStore and RunRecorder for one profile.
type Board struct {
	store   *Store
	profile string
}

// LoadHighScore implements HighScoreStore.
func (b *Board) LoadHighScore() (int, error) {
	return b.store.HighScore(b.profile)
}

// SaveHighScore implements HighScoreStore.
func (b *Board) SaveHighScore(high int) error {
	return b.store.SetHighScore(b.profile, high)
}

// RecordRun implements RunRecorder.
func (b *Board) RecordRun(score int) error {
	_, err := b.store.SaveScore(b.profile, score)
	return err
}

var (
	_ HighScoreStore = (*Board)(nil)
	_ RunRecorder    = (*Board)(nil)
)

func profileKey(profile string) string {
	if profile == "" {
		return DefaultProfile
	}
	return profile
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
