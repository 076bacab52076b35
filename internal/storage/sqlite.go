// Package storage provides SQLite-based persistence for search run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only run outcomes are stored; grid state is never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single recorded search outcome.
type Run struct {
	ID         int64
	MapID      string // Built-in or file map ID, empty for generated/edited grids
	Generator  string // Generator ID, empty when a map was used
	Source     string // "solve", "edit" or "ssh"
	Width      int
	Height     int
	Start      pathfind.Coord
	Goal       pathfind.Coord
	Walls      int
	Policy     string
	Found      bool
	Steps      int // Path length in moves, 0 when not found
	Expanded   int
	Discovered int
	Duration   time.Duration
	CreatedAt  time.Time
}

// NewRun builds a Run from a grid and a search result.
func NewRun(g *pathfind.Grid, start, goal pathfind.Coord, res pathfind.Result) Run {
	return Run{
		Width:      g.Width(),
		Height:     g.Height(),
		Start:      start,
		Goal:       goal,
		Walls:      g.WallCount(),
		Found:      res.Found,
		Steps:      res.Path.Len(),
		Expanded:   res.Expanded,
		Discovered: res.Discovered,
	}
}

// MapStats aggregates runs recorded for a single map.
type MapStats struct {
	MapID     string
	Runs      int
	Found     int
	BestSteps int // Shortest found path, 0 if none found
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("storage: empty database path")
	}

	// Expand ~ to home directory
	if dbPath[0] == '~' {
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			map_id TEXT NOT NULL DEFAULT '',
			generator TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			start_x INTEGER NOT NULL,
			start_y INTEGER NOT NULL,
			goal_x INTEGER NOT NULL,
			goal_y INTEGER NOT NULL,
			walls INTEGER NOT NULL DEFAULT 0,
			policy TEXT NOT NULL DEFAULT '',
			found INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			expanded INTEGER NOT NULL DEFAULT 0,
			discovered INTEGER NOT NULL DEFAULT 0,
			duration_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_map_id ON runs(map_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records a search outcome and returns the inserted ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (map_id, generator, source, width, height, start_x, start_y, goal_x, goal_y,
		  walls, policy, found, steps, expanded, discovered, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MapID, r.Generator, r.Source,
		r.Width, r.Height,
		r.Start.X, r.Start.Y, r.Goal.X, r.Goal.Y,
		r.Walls, r.Policy, r.Found, r.Steps, r.Expanded, r.Discovered,
		r.Duration.Microseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, map_id, generator, source, width, height, start_x, start_y, goal_x, goal_y,
	walls, policy, found, steps, expanded, discovered, duration_us, created_at`

// RecentRuns returns up to limit runs, newest first.
// A limit <= 0 returns all runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// RunsForMap returns up to limit runs recorded against mapID, newest first.
func (s *Store) RunsForMap(mapID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs WHERE map_id = ? ORDER BY id DESC LIMIT ?`,
		mapID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// StatsForMap aggregates every run recorded against mapID.
func (s *Store) StatsForMap(mapID string) (MapStats, error) {
	stats := MapStats{MapID: mapID}
	var best sql.NullInt64
	var found sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), SUM(found), MIN(CASE WHEN found = 1 THEN steps END)
		 FROM runs WHERE map_id = ?`,
		mapID,
	).Scan(&stats.Runs, &found, &best)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot query map stats: %w", err)
	}
	if found.Valid {
		stats.Found = int(found.Int64)
	}
	if best.Valid {
		stats.BestSteps = int(best.Int64)
	}
	return stats, nil
}

// ClearRuns deletes the whole run history.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var durationUS int64
		var createdAt any
		err := rows.Scan(
			&r.ID, &r.MapID, &r.Generator, &r.Source,
			&r.Width, &r.Height,
			&r.Start.X, &r.Start.Y, &r.Goal.X, &r.Goal.Y,
			&r.Walls, &r.Policy, &r.Found, &r.Steps, &r.Expanded, &r.Discovered,
			&durationUS, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationUS) * time.Microsecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read rows: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string values returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
