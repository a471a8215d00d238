// Package store provides SQLite-based persistence for simulation runs:
// run metadata and the per-step well reports extracted from the well state.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wellflow-xyz/go-wellflow/report"
)

// Store handles SQLite database operations for run logging.
type Store struct {
	db *sql.DB
}

// Run represents one simulation run record.
type Run struct {
	ID         string     `json:"id"`
	CaseName   string     `json:"case_name"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	TotalSteps int        `json:"total_steps"`
}

// WellSample is one well's reported state at one report step.
type WellSample struct {
	RunID    string  `json:"run_id"`
	Step     int     `json:"step"`
	Well     string  `json:"well"`
	Bhp      float64 `json:"bhp"`
	Thp      float64 `json:"thp"`
	OilRate  float64 `json:"oil_rate"`
	WatRate  float64 `json:"wat_rate"`
	GasRate  float64 `json:"gas_rate"`
	Producer bool    `json:"producer"`
}

// New creates a new Store with the given database path.
// Use ":memory:" for an ephemeral database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		case_name TEXT NOT NULL,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ended_at DATETIME,
		total_steps INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS well_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		well TEXT NOT NULL,
		bhp REAL NOT NULL,
		thp REAL NOT NULL,
		oil_rate REAL NOT NULL,
		wat_rate REAL NOT NULL,
		gas_rate REAL NOT NULL,
		producer INTEGER NOT NULL,
		detail TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_reports_run ON well_reports(run_id);
	CREATE INDEX IF NOT EXISTS idx_reports_run_step ON well_reports(run_id, step);
	CREATE INDEX IF NOT EXISTS idx_reports_well ON well_reports(run_id, well);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// CreateRun creates a new run record.
func (s *Store) CreateRun(id, caseName string) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, case_name, started_at) VALUES (?, ?, ?)`,
		id, caseName, time.Now().UTC(),
	)
	return err
}

// EndRun marks a run as ended with its final step count.
func (s *Store) EndRun(id string, totalSteps int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET ended_at = ?, total_steps = ? WHERE id = ?`,
		time.Now().UTC(), totalSteps, id,
	)
	return err
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, case_name, started_at, ended_at, total_steps
		 FROM runs WHERE id = ?`, id,
	)

	var r Run
	var endedAt sql.NullTime
	err := row.Scan(&r.ID, &r.CaseName, &r.StartedAt, &endedAt, &r.TotalSteps)
	if err != nil {
		return nil, err
	}
	if endedAt.Valid {
		r.EndedAt = &endedAt.Time
	}
	return &r, nil
}

// RecentRuns returns the most recent runs.
func (s *Store) RecentRuns(limit int) ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, case_name, started_at, ended_at, total_steps
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var endedAt sql.NullTime
		err := rows.Scan(&r.ID, &r.CaseName, &r.StartedAt, &endedAt, &r.TotalSteps)
		if err != nil {
			return nil, err
		}
		if endedAt.Valid {
			r.EndedAt = &endedAt.Time
		}
		runs = append(runs, &r)
	}
	return runs, nil
}

// SaveStepReport stores the full well report of one step. The headline
// quantities land in dedicated columns for querying; everything else
// (connections, segments, auxiliary rates) travels in the detail JSON.
func (s *Store) SaveStepReport(runID string, step int, wells report.Wells) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for name, well := range wells {
		detail, err := json.Marshal(well)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("encode report for well %s: %w", name, err)
		}
		_, err = tx.Exec(
			`INSERT INTO well_reports (run_id, step, well, bhp, thp,
			 oil_rate, wat_rate, gas_rate, producer, detail)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, step, name, well.Bhp, well.Thp,
			well.Rates.Get(report.OilRate), well.Rates.Get(report.WaterRate),
			well.Rates.Get(report.GasRate), well.Control.IsProducer, string(detail),
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// StepReport reconstructs the full well report of one step from the stored
// detail records.
func (s *Store) StepReport(runID string, step int) (report.Wells, error) {
	rows, err := s.db.Query(
		`SELECT well, detail FROM well_reports
		 WHERE run_id = ? AND step = ? ORDER BY well`, runID, step,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wells := make(report.Wells)
	for rows.Next() {
		var name, detail string
		if err := rows.Scan(&name, &detail); err != nil {
			return nil, err
		}
		var well report.Well
		if err := json.Unmarshal([]byte(detail), &well); err != nil {
			return nil, fmt.Errorf("decode report for well %s: %w", name, err)
		}
		wells[name] = well
	}
	return wells, rows.Err()
}

// WellHistory returns the headline quantities of one well over all stored
// steps of a run, in step order.
func (s *Store) WellHistory(runID, well string) ([]*WellSample, error) {
	rows, err := s.db.Query(
		`SELECT run_id, step, well, bhp, thp, oil_rate, wat_rate, gas_rate, producer
		 FROM well_reports WHERE run_id = ? AND well = ? ORDER BY step`, runID, well,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []*WellSample
	for rows.Next() {
		var ws WellSample
		err := rows.Scan(&ws.RunID, &ws.Step, &ws.Well, &ws.Bhp, &ws.Thp,
			&ws.OilRate, &ws.WatRate, &ws.GasRate, &ws.Producer)
		if err != nil {
			return nil, err
		}
		samples = append(samples, &ws)
	}
	return samples, rows.Err()
}

// ExportRunJSON exports a run and all its well reports as JSON.
func (s *Store) ExportRunJSON(runID string) ([]byte, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}

	steps := make(map[int]report.Wells)
	rows, err := s.db.Query(
		`SELECT DISTINCT step FROM well_reports WHERE run_id = ? ORDER BY step`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var step int
		if err := rows.Scan(&step); err != nil {
			return nil, err
		}
		wells, err := s.StepReport(runID, step)
		if err != nil {
			return nil, err
		}
		steps[step] = wells
	}

	export := map[string]any{
		"run":   run,
		"steps": steps,
	}

	return json.MarshalIndent(export, "", "  ")
}
