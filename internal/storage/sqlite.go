// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation run.
type Run struct {
	ID         int64
	ScenarioID string
	Steps      int
	Bodies     int
	Contacts   int
	Duration   time.Duration
	CreatedAt  time.Time
}

// Stats aggregates every recorded run of a scenario.
type Stats struct {
	ScenarioID string
	Runs       int
	Contacts   int
	MaxDepth   float64
	Sides      map[core.Side]int // Contacts by side of the left body
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

	// Test connection
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
			scenario_id TEXT NOT NULL,
			steps INTEGER NOT NULL,
			bodies INTEGER NOT NULL,
			contacts INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario_id ON runs(scenario_id);

		CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			step INTEGER NOT NULL,
			left_id TEXT NOT NULL,
			right_id TEXT NOT NULL,
			side TEXT NOT NULL,
			depth REAL NOT NULL,
			point_x REAL NOT NULL,
			point_y REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_contacts_run_id ON contacts(run_id, step);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(run Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (scenario_id, steps, bodies, contacts, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ScenarioID, run.Steps, run.Bodies, run.Contacts, run.Duration.Milliseconds(),
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

// SaveContacts records the contacts of a run in a single transaction.
func (s *Store) SaveContacts(runID int64, contacts []core.ContactInfo) (err error) {
	if len(contacts) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback() //nolint:errcheck // The original error is more useful
		}
	}()

	stmt, err := tx.Prepare(
		`INSERT INTO contacts (run_id, step, left_id, right_id, side, depth, point_x, point_y)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare contact insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range contacts {
		if _, err = stmt.Exec(runID, c.Step, c.Left, c.Right, c.Side.String(), c.Depth, c.Point[0], c.Point[1]); err != nil {
			return fmt.Errorf("storage: cannot save contact: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit contacts: %w", err)
	}
	return nil
}

// RecentRuns retrieves the most recent runs, newest first. An empty
// scenarioID returns runs of every scenario.
func (s *Store) RecentRuns(scenarioID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scenario_id, steps, bodies, contacts, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR scenario_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scenarioID, scenarioID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.ScenarioID, &r.Steps, &r.Bodies, &r.Contacts, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunContacts retrieves the contacts of a run in step order.
func (s *Store) RunContacts(runID int64) ([]core.ContactInfo, error) {
	rows, err := s.db.Query(
		`SELECT step, left_id, right_id, side, depth, point_x, point_y
		 FROM contacts
		 WHERE run_id = ?
		 ORDER BY step, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []core.ContactInfo
	for rows.Next() {
		var c core.ContactInfo
		var side string
		var x, y float64
		if err := rows.Scan(&c.Step, &c.Left, &c.Right, &side, &c.Depth, &x, &y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Side = core.ParseSide(side)
		c.Point = mgl64.Vec2{x, y}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return contacts, nil
}

// ScenarioStats aggregates all runs of a scenario.
// Returns zero counts if the scenario was never run.
func (s *Store) ScenarioStats(scenarioID string) (Stats, error) {
	stats := Stats{ScenarioID: scenarioID, Sides: make(map[core.Side]int)}

	var contacts sql.NullInt64
	if err := s.db.QueryRow(
		"SELECT COUNT(*), SUM(contacts) FROM runs WHERE scenario_id = ?",
		scenarioID,
	).Scan(&stats.Runs, &contacts); err != nil {
		return stats, fmt.Errorf("storage: cannot query run totals: %w", err)
	}
	stats.Contacts = int(contacts.Int64)

	var maxDepth sql.NullFloat64
	if err := s.db.QueryRow(
		`SELECT MAX(c.depth) FROM contacts c
		 JOIN runs r ON r.id = c.run_id
		 WHERE r.scenario_id = ?`,
		scenarioID,
	).Scan(&maxDepth); err != nil {
		return stats, fmt.Errorf("storage: cannot query max depth: %w", err)
	}
	stats.MaxDepth = maxDepth.Float64

	rows, err := s.db.Query(
		`SELECT c.side, COUNT(*) FROM contacts c
		 JOIN runs r ON r.id = c.run_id
		 WHERE r.scenario_id = ?
		 GROUP BY c.side`,
		scenarioID,
	)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot query sides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var side string
		var n int
		if err := rows.Scan(&side, &n); err != nil {
			return stats, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		stats.Sides[core.ParseSide(side)] += n
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes every run of the scenario together with its contacts.
func (s *Store) ClearRuns(scenarioID string) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback() //nolint:errcheck // The original error is more useful
		}
	}()

	if _, err = tx.Exec(
		"DELETE FROM contacts WHERE run_id IN (SELECT id FROM runs WHERE scenario_id = ?)",
		scenarioID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear contacts: %w", err)
	}
	if _, err = tx.Exec("DELETE FROM runs WHERE scenario_id = ?", scenarioID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
