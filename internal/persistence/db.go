// Package persistence provides the SQLite-backed run journal.
// Every evaluation of the train can be recorded with its readings.
package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/waterwheel/internal/train"
)

// Section values stored with each reading.
const (
	SectionInput  = "input"
	SectionBefore = "before"
	SectionAfter  = "after"
)

// DB wraps a SQLite connection for the run journal.
type DB struct {
	conn *sqlx.DB
}

// Run is one journaled evaluation.
type Run struct {
	ID        string
	CreatedAt time.Time
	Input     float64
	Advantage float64
	Readings  []StoredReading
}

// StoredReading is a reading as kept in the journal.
type StoredReading struct {
	Seq     int     `db:"seq"`
	Section string  `db:"section"`
	Label   string  `db:"label"`
	Value   float64 `db:"value"`
	Note    string  `db:"note"`
}

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type runRow struct {
	ID        string  `db:"id"`
	CreatedAt string  `db:"created_at"`
	Input     float64 `db:"input"`
	Advantage float64 `db:"advantage"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

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
		created_at TEXT NOT NULL,
		input REAL NOT NULL,
		advantage REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS readings (
		run_id TEXT NOT NULL REFERENCES runs(id),
		seq INTEGER NOT NULL,
		section TEXT NOT NULL,
		label TEXT NOT NULL,
		value REAL NOT NULL,
		note TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// NewRun builds a journal entry for an evaluated report.
func NewRun(r *train.Report, now time.Time) Run {
	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
		Input:     r.Input,
		Advantage: r.Advantage(),
	}

	add := func(section string, rd train.Reading) {
		run.Readings = append(run.Readings, StoredReading{
			Seq:     len(run.Readings),
			Section: section,
			Label:   rd.Label,
			Value:   rd.Value,
			Note:    rd.Note,
		})
	}
	add(SectionInput, train.Reading{Label: train.InputLabel, Value: r.Input, Note: "applied force"})
	for _, rd := range r.Before {
		add(SectionBefore, rd)
	}
	for _, rd := range r.After {
		add(SectionAfter, rd)
	}
	return run
}

// SaveRun writes a run and its readings in one transaction.
func (db *DB) SaveRun(ctx context.Context, run Run) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, created_at, input, advantage) VALUES (?, ?, ?, ?)",
		run.ID, run.CreatedAt.UTC().Format(timeLayout), run.Input, run.Advantage,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO readings
		(run_id, seq, section, label, value, note)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rd := range run.Readings {
		if _, err := stmt.ExecContext(ctx, run.ID, rd.Seq, rd.Section, rd.Label, rd.Value, rd.Note); err != nil {
			return fmt.Errorf("insert reading %s: %w", rd.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("run journaled", "run", run.ID, "readings", len(run.Readings))
	return nil
}

// LoadRun returns a run with its readings in evaluation order.
func (db *DB) LoadRun(ctx context.Context, id string) (*Run, error) {
	var row runRow
	if err := db.conn.GetContext(ctx, &row,
		"SELECT id, created_at, input, advantage FROM runs WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	run, err := row.run()
	if err != nil {
		return nil, err
	}

	if err := db.conn.SelectContext(ctx, &run.Readings,
		"SELECT seq, section, label, value, note FROM readings WHERE run_id = ? ORDER BY seq",
		id,
	); err != nil {
		return nil, fmt.Errorf("load readings %s: %w", id, err)
	}
	return &run, nil
}

// RecentRuns returns the most recent runs, newest first, without readings.
func (db *DB) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	var rows []runRow
	if err := db.conn.SelectContext(ctx, &rows,
		"SELECT id, created_at, input, advantage FROM runs ORDER BY created_at DESC LIMIT ?",
		limit,
	); err != nil {
		return nil, err
	}

	runs := make([]Run, 0, len(rows))
	for _, row := range rows {
		run, err := row.run()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r runRow) run() (Run, error) {
	created, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("run %s created_at: %w", r.ID, err)
	}
	return Run{ID: r.ID, CreatedAt: created, Input: r.Input, Advantage: r.Advantage}, nil
}
