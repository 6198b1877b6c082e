// Package storage provides SQLite-based persistence for completed runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Runs are keyed by the map fingerprint, so two map files sharing an ID but
// differing in layout keep separate leaderboards.
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

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one completed game.
type Run struct {
	ID        int64
	MapHash   string // grid fingerprint
	MapID     string
	MapName   string
	Player    string
	Duration  time.Duration
	CreatedAt time.Time
}

// MapStats contains aggregated statistics for one map.
type MapStats struct {
	MapHash    string
	MapID      string
	MapName    string
	Runs       int
	Best       time.Duration
	Average    time.Duration
	LastPlayed time.Time
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
			map_hash TEXT NOT NULL,
			map_id TEXT NOT NULL,
			map_name TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_map_hash ON runs(map_hash);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(map_hash, duration_ms ASC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
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

// SaveRun records a completed run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.MapHash == "" {
		return 0, errors.New("storage: run has no map hash")
	}
	if r.Duration <= 0 {
		return 0, fmt.Errorf("storage: invalid run duration %v", r.Duration)
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (map_hash, map_id, map_name, player, duration_ms) VALUES (?, ?, ?, ?, ?)",
		r.MapHash, r.MapID, r.MapName, r.Player, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, map_hash, map_id, map_name, player, duration_ms, created_at`

// BestRuns retrieves the fastest runs on the given map, quickest first.
// Ties go to the earlier run.
func (s *Store) BestRuns(mapHash string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE map_hash = ?
		 ORDER BY duration_ms ASC, id ASC
		 LIMIT ?`,
		mapHash, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// PlayerRuns retrieves the most recent runs of one player across all maps.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player runs: %w", err)
	}
	return scanRuns(rows)
}

// BestTime returns the fastest time on the given map.
// ok is false if the map has no runs yet.
func (s *Store) BestTime(mapHash string) (best time.Duration, ok bool, err error) {
	var ms sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(duration_ms) FROM runs WHERE map_hash = ?",
		mapHash,
	).Scan(&ms)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !ms.Valid {
		return 0, false, nil
	}
	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}

// ClearRuns deletes all runs for the given map.
func (s *Store) ClearRuns(mapHash string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE map_hash = ?", mapHash)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// AllMapStats retrieves statistics for every map that has been completed,
// ordered by map name.
func (s *Store) AllMapStats() ([]MapStats, error) {
	rows, err := s.db.Query(
		`SELECT map_hash, MAX(map_id), MAX(map_name), COUNT(*), MIN(duration_ms), AVG(duration_ms), MAX(created_at)
		 FROM runs
		 GROUP BY map_hash
		 ORDER BY MAX(map_name), map_hash`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}
	defer rows.Close()

	var stats []MapStats
	for rows.Next() {
		var (
			st         MapStats
			best       int64
			avg        float64
			lastPlayed any
		)
		if err := rows.Scan(&st.MapHash, &st.MapID, &st.MapName, &st.Runs, &best, &avg, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Best = time.Duration(best) * time.Millisecond
		st.Average = time.Duration(avg * float64(time.Millisecond))
		st.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ms int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.MapHash, &r.MapID, &r.MapName, &r.Player, &ms, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
