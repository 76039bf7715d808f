// Package store provides SQLite-based persistence of simulation runs and their
// daily metrics series.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/inference-sim/epidemic-sim/sim"
)

// Run describes one stored simulation run.
type Run struct {
	ID         string    `db:"id"`
	Seed       int64     `db:"seed"`
	Population int       `db:"population"`
	Horizon    int64     `db:"horizon"`
	CreatedAt  time.Time `db:"created_at"`
	ConfigJSON string    `db:"config_json"`
}

// NewRun creates a Run record with a fresh ID for cfg and seed.
func NewRun(cfg sim.Config, seed int64) (Run, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return Run{}, fmt.Errorf("encode config: %w", err)
	}
	return Run{
		ID:         uuid.NewString(),
		Seed:       seed,
		Population: cfg.Population.Size,
		Horizon:    cfg.Horizon,
		CreatedAt:  time.Now().UTC(),
		ConfigJSON: string(raw),
	}, nil
}

// Config decodes the configuration the run was made with.
func (r Run) Config() (sim.Config, error) {
	var cfg sim.Config
	if err := json.Unmarshal([]byte(r.ConfigJSON), &cfg); err != nil {
		return sim.Config{}, fmt.Errorf("decode config of run %s: %w", r.ID, err)
	}
	return cfg, nil
}

// DB wraps a SQLite connection for run persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		population INTEGER NOT NULL,
		horizon INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_metrics (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		day INTEGER NOT NULL,
		active INTEGER NOT NULL,
		new_diagnosed INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		susceptible INTEGER NOT NULL,
		in_incubation INTEGER NOT NULL,
		contagious INTEGER NOT NULL,
		infected INTEGER NOT NULL,
		severe INTEGER NOT NULL,
		PRIMARY KEY (run_id, day)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// dailyRow is a DailyMetrics row tagged with its run.
type dailyRow struct {
	RunID string `db:"run_id"`
	sim.DailyMetrics
}

// SaveRun writes the run and its full series in one transaction.
func (db *DB) SaveRun(ctx context.Context, run Run, series *sim.MetricsSeries) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO runs (id, seed, population, horizon, created_at, config_json)
		VALUES (:id, :seed, :population, :horizon, :created_at, :config_json)`, run); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO daily_metrics (run_id, day, active, new_diagnosed, deaths, susceptible, in_incubation, contagious, infected, severe)
		VALUES (:run_id, :day, :active, :new_diagnosed, :deaths, :susceptible, :in_incubation, :contagious, :infected, :severe)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range series.Days {
		if _, err := stmt.ExecContext(ctx, dailyRow{RunID: run.ID, DailyMetrics: d}); err != nil {
			return fmt.Errorf("insert day %d of run %s: %w", d.Day, run.ID, err)
		}
	}

	return tx.Commit()
}

// GetRun loads a run record by ID.
func (db *DB) GetRun(ctx context.Context, id string) (Run, error) {
	var run Run
	if err := db.conn.GetContext(ctx, &run, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// LoadSeries reads back a run's series in day order.
func (db *DB) LoadSeries(ctx context.Context, runID string) (*sim.MetricsSeries, error) {
	var days []sim.DailyMetrics
	err := db.conn.SelectContext(ctx, &days, `
		SELECT day, active, new_diagnosed, deaths, susceptible, in_incubation, contagious, infected, severe
		FROM daily_metrics WHERE run_id = ? ORDER BY day`, runID)
	if err != nil {
		return nil, fmt.Errorf("load series of run %s: %w", runID, err)
	}
	series := sim.NewMetricsSeries()
	for _, d := range days {
		series.Append(d)
	}
	return series, nil
}

// ListRuns returns all runs, newest first.
func (db *DB) ListRuns(ctx context.Context) ([]Run, error) {
	var runs []Run
	if err := db.conn.SelectContext(ctx, &runs, `SELECT * FROM runs ORDER BY created_at DESC, id`); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
