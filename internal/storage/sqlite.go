// Package storage records parameter sweep results in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for sweep results.
type Store struct {
	db *sql.DB
}

// RunRecord summarizes one simulated scenario of a sweep.
type RunRecord struct {
	ID      int64
	SweepID string
	Scene   string
	Seed    int64
	Steps   int
	// Params is the key=value override list the run was built from.
	Params string

	Elements        int
	TotalMass       float64
	MeanTemperature float64
	PeakPressure    float64
	Transitions     int
	Destroyed       int
	Elapsed         time.Duration
	CreatedAt       time.Time
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sweep_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sweep_id TEXT NOT NULL,
			scene TEXT NOT NULL,
			seed INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			params TEXT NOT NULL DEFAULT '',
			elements INTEGER NOT NULL DEFAULT 0,
			total_mass REAL NOT NULL DEFAULT 0,
			mean_temperature REAL NOT NULL DEFAULT 0,
			peak_pressure REAL NOT NULL DEFAULT 0,
			transitions INTEGER NOT NULL DEFAULT 0,
			destroyed INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sweep_runs_sweep ON sweep_runs(sweep_id);
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

// SaveRun stores a run summary and returns its id.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sweep_runs
		 (sweep_id, scene, seed, steps, params, elements, total_mass, mean_temperature,
		  peak_pressure, transitions, destroyed, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SweepID, r.Scene, r.Seed, r.Steps, r.Params, r.Elements, r.TotalMass, r.MeanTemperature,
		r.PeakPressure, r.Transitions, r.Destroyed, r.Elapsed.Milliseconds(),
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

// Runs returns the runs of a sweep ordered by peak pressure, highest first.
func (s *Store) Runs(sweepID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, sweep_id, scene, seed, steps, params, elements, total_mass,
		        mean_temperature, peak_pressure, transitions, destroyed, elapsed_ms, created_at
		 FROM sweep_runs
		 WHERE sweep_id = ?
		 ORDER BY peak_pressure DESC, id ASC
		 LIMIT ?`,
		sweepID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r         RunRecord
			elapsedMS int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.SweepID, &r.Scene, &r.Seed, &r.Steps, &r.Params, &r.Elements,
			&r.TotalMass, &r.MeanTemperature, &r.PeakPressure, &r.Transitions, &r.Destroyed,
			&elapsedMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Sweeps lists the distinct sweep ids, most recent first.
func (s *Store) Sweeps() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT sweep_id FROM sweep_runs GROUP BY sweep_id ORDER BY MAX(id) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sweeps: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}
