// Package ledger keeps a local sqlite record of generated array jobs so that
// past grid searches can be listed without walking the output directories.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	_ "modernc.org/sqlite" // pure Go sqlite driver
)

const createArrayJobs = `
CREATE TABLE IF NOT EXISTS array_jobs (
  id              INTEGER PRIMARY KEY AUTOINCREMENT,
  name            TEXT NOT NULL,
  script_path     TEXT NOT NULL,
  submission_path TEXT NOT NULL,
  table_path      TEXT NOT NULL,
  task_count      INTEGER NOT NULL,
  created_at      TEXT NOT NULL
);`

// Entry is one generated array job.
type Entry struct {
	ID             int64
	Name           string
	ScriptPath     string
	SubmissionPath string
	TablePath      string
	TaskCount      int
	CreatedAt      time.Time
}

// Ledger is an open sqlite ledger.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the ledger database at path.
func Open(ctx context.Context, path string) (*Ledger, error) {
	if path == "" {
		return nil, errors.New("ledger path is empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, createArrayJobs); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise ledger %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Ledger opened.", "path", path)
	return &Ledger{db: db, now: time.Now}, nil
}

// Record stores e and returns its id. A zero CreatedAt is set to now.
func (l *Ledger) Record(ctx context.Context, e Entry) (int64, error) {
	created := e.CreatedAt
	if created.IsZero() {
		created = l.now()
	}
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO array_jobs (name, script_path, submission_path, table_path, task_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Name, e.ScriptPath, e.SubmissionPath, e.TablePath, e.TaskCount,
		created.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record job %q: %w", e.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read id for job %q: %w", e.Name, err)
	}
	ctxlog.FromContext(ctx).Debug("Ledger entry recorded.", "id", id, "job", e.Name)
	return id, nil
}

// List returns every entry, newest first.
func (l *Ledger) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, name, script_path, submission_path, table_path, task_count, created_at
		 FROM array_jobs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.ScriptPath, &e.SubmissionPath, &e.TablePath, &e.TaskCount, &created); err != nil {
			return nil, fmt.Errorf("failed to read ledger row: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("ledger row %d has a bad timestamp %q: %w", e.ID, created, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	return out, nil
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
