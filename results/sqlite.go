package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/lixenwraith/rdk/schedule"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	aborted     INTEGER NOT NULL,
	seed        INTEGER NOT NULL,
	config      TEXT NOT NULL,
	total       INTEGER NOT NULL,
	correct     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	run_id    TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq       INTEGER NOT NULL,
	coherence REAL NOT NULL,
	correct   INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);`

// Store keeps every run in a SQLite database, one row per run and one per record
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path
func OpenStore(path string) (*Store, error) {
	if path == "" {
		path = "rdk.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; the task never saves concurrently
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Save writes the run and its records in one transaction, replacing an earlier save of the same run
func (s *Store) Save(ctx context.Context, run *Run) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	sum := run.Summary()
	id := run.ID.String()
	if _, err := tx.ExecContext(ctx, `INSERT INTO runs(id, started_at, finished_at, aborted, seed, config, total, correct)
		VALUES(?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET finished_at=excluded.finished_at, aborted=excluded.aborted,
			config=excluded.config, total=excluded.total, correct=excluded.correct`,
		id, formatTime(run.StartedAt), formatTime(run.FinishedAt), run.Aborted,
		int64(run.Seed), run.Config, sum.Total, sum.Correct); err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records(run_id, seq, coherence, correct) VALUES(?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare records: %w", err)
	}
	defer func() { _ = stmt.Close() }()
	for i, r := range run.Records {
		if _, err := stmt.ExecContext(ctx, id, i, r.Coherence, r.Correct); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads a stored run with its records in trial order
func (s *Store) Load(ctx context.Context, id uuid.UUID) (*Run, error) {
	run := &Run{ID: id}
	var started, finished string
	var seed int64
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at, finished_at, aborted, seed, config FROM runs WHERE id = ?`, id.String()).
		Scan(&started, &finished, &run.Aborted, &seed, &run.Config)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select run: %w", err)
	}
	run.Seed = uint64(seed)
	if run.StartedAt, err = parseTime(started); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finished); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT coherence, correct FROM records WHERE run_id = ? ORDER BY seq`, id.String())
	if err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var r schedule.Record
		if err := rows.Scan(&r.Coherence, &r.Correct); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		run.Records = append(run.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return run, nil
}

// RunInfo is the per-run row without records
type RunInfo struct {
	ID        uuid.UUID
	StartedAt time.Time
	Aborted   bool
	Total     int
	Correct   int
}

// List returns every stored run, oldest first
func (s *Store) List(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, aborted, total, correct FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RunInfo
	for rows.Next() {
		var info RunInfo
		var id, started string
		if err := rows.Scan(&id, &started, &info.Aborted, &info.Total, &info.Correct); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if info.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id: %w", err)
		}
		if info.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Close releases the database
func (s *Store) Close() error { return s.db.Close() }

// timeLayout is fixed width so started_at sorts as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", v, err)
	}
	return t, nil
}
