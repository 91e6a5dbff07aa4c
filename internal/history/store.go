// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records pipeline runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

// DBFile is the database filename inside the output directory.
const DBFile = "history.db"

const defaultListLimit = 20

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database in dir, creating the schema
// when it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, DBFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			video_url TEXT,
			status TEXT NOT NULL,
			error TEXT,
			report_path TEXT,
			script_path TEXT,
			audio_path TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts or replaces a run.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, topic, video_url, status, error, report_path, script_path, audio_path, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			status=excluded.status, error=excluded.error,
			report_path=excluded.report_path, script_path=excluded.script_path,
			audio_path=excluded.audio_path, finished_at=excluded.finished_at`,
		rec.ID, rec.Topic, rec.VideoURL, string(rec.Status), rec.Error,
		rec.ReportPath, rec.ScriptPath, rec.AudioPath,
		formatTime(rec.StartedAt), formatTime(rec.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", rec.ID, err)
	}
	return nil
}

// List returns up to limit runs, newest first. A non-positive limit uses 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, video_url, status, error, report_path, script_path, audio_path, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []types.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (types.RunRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, topic, video_url, status, error, report_path, script_path, audio_path, started_at, finished_at
		 FROM runs WHERE id = ?`, id)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RunRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// ExportYAML writes up to limit runs to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	runs, err := s.List(ctx, limit)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(runs); err != nil {
		return fmt.Errorf("encoding runs: %w", err)
	}
	return enc.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (types.RunRecord, error) {
	var (
		rec        types.RunRecord
		status     string
		startedAt  string
		videoURL   sql.NullString
		errText    sql.NullString
		reportPath sql.NullString
		scriptPath sql.NullString
		audioPath  sql.NullString
		finishedAt sql.NullString
	)
	if err := sc.Scan(&rec.ID, &rec.Topic, &videoURL, &status, &errText,
		&reportPath, &scriptPath, &audioPath, &startedAt, &finishedAt); err != nil {
		return types.RunRecord{}, err
	}
	rec.Status = types.RunStatus(status)
	rec.VideoURL = videoURL.String
	rec.Error = errText.String
	rec.ReportPath = reportPath.String
	rec.ScriptPath = scriptPath.String
	rec.AudioPath = audioPath.String
	rec.StartedAt = parseTime(startedAt)
	rec.FinishedAt = parseTime(finishedAt.String)
	return rec, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
