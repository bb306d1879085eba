// Package storage provides SQLite-based persistence for capture history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/parkshot/internal/capture"
	"github.com/vovakirdan/parkshot/internal/iso"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for capture history.
type Store struct {
	db *sql.DB
}

// CaptureEntry represents a single recorded capture.
type CaptureEntry struct {
	ID        int64
	Mode      capture.Mode
	Index     int
	Path      string
	Width     int
	Height    int
	Zoom      int
	Rotation  iso.Rotation
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS captures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			shot_index INTEGER NOT NULL DEFAULT 0,
			path TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			zoom INTEGER NOT NULL DEFAULT 0,
			rotation INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_captures_mode ON captures(mode);
		CREATE INDEX IF NOT EXISTS idx_captures_recent ON captures(created_at DESC);
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

// SaveCapture records a successful capture.
// Returns the ID of the inserted record.
func (s *Store) SaveCapture(res capture.Result) (int64, error) {
	createdAt := res.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO captures (mode, shot_index, path, width, height, zoom, rotation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Mode.String(),
		res.Index,
		res.Path,
		res.Width,
		res.Height,
		res.Zoom,
		int(res.Rotation),
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save capture: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordCapture implements capture.Recorder.
func (s *Store) RecordCapture(res capture.Result) error {
	_, err := s.SaveCapture(res)
	return err
}

// Ensure Store implements capture.Recorder
var _ capture.Recorder = (*Store)(nil)

// RecentCaptures retrieves the most recent captures, newest first.
func (s *Store) RecentCaptures(limit int) ([]CaptureEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, mode, shot_index, path, width, height, zoom, rotation, created_at
		 FROM captures
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query captures: %w", err)
	}
	return scanCaptures(rows)
}

// CapturesByMode retrieves the most recent captures of one mode.
func (s *Store) CapturesByMode(mode capture.Mode, limit int) ([]CaptureEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, mode, shot_index, path, width, height, zoom, rotation, created_at
		 FROM captures
		 WHERE mode = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		mode.String(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query captures: %w", err)
	}
	return scanCaptures(rows)
}

func scanCaptures(rows *sql.Rows) ([]CaptureEntry, error) {
	defer rows.Close()

	var entries []CaptureEntry
	for rows.Next() {
		var e CaptureEntry
		var mode string
		var rotation int
		var createdAt any
		if err := rows.Scan(&e.ID, &mode, &e.Index, &e.Path, &e.Width, &e.Height, &e.Zoom, &rotation, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		m, err := capture.ParseMode(mode)
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", e.ID, err)
		}
		e.Mode = m
		e.Rotation = iso.MaskRotation(rotation)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearCaptures deletes the whole history.
func (s *Store) ClearCaptures() error {
	_, err := s.db.Exec("DELETE FROM captures")
	if err != nil {
		return fmt.Errorf("storage: cannot clear captures: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for one capture mode.
type ModeStats struct {
	Mode         capture.Mode
	Count        int
	LargestArea  int64
	LastCaptured time.Time
}

// GetModeStats retrieves statistics for every mode that has captures.
func (s *Store) GetModeStats() (map[capture.Mode]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(width * height), MAX(created_at)
		 FROM captures
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get capture stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[capture.Mode]*ModeStats)
	for rows.Next() {
		var st ModeStats
		var mode string
		var last any
		if err := rows.Scan(&mode, &st.Count, &st.LargestArea, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		m, err := capture.ParseMode(mode)
		if err != nil {
			return nil, fmt.Errorf("storage: stats: %w", err)
		}
		st.Mode = m
		st.LastCaptured = parseTime(last)
		stats[m] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
