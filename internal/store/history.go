package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"momentum-cli/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SessionRecord struct {
	ID              string     `json:"id"`
	Goal            string     `json:"goal"`
	StartedAt       time.Time  `json:"startedAt"`
	ExpectedMinutes uint64     `json:"expectedMinutes"`
	StoppedAt       *time.Time `json:"stoppedAt,omitempty"`
	ReflectionPath  string     `json:"reflectionPath,omitempty"`
}

type AnalysisRecord struct {
	ID             string               `json:"id"`
	ReflectionPath string               `json:"reflectionPath"`
	Result         model.AnalysisResult `json:"result"`
	CreatedAt      time.Time            `json:"createdAt"`
}

func (s Store) openHistory(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.HistoryPath())
	if err != nil {
		return nil, err
	}
	// WAL: the TUI and a CLI invocation may write at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateHistory(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateHistory(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			goal TEXT NOT NULL,
			started_at_unix INTEGER NOT NULL,
			expected_minutes INTEGER NOT NULL,
			stopped_at_unix INTEGER,
			reflection_path TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at_unix);`,
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			reflection_path TEXT NOT NULL,
			summary TEXT NOT NULL,
			suggestion TEXT NOT NULL,
			reasoning TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("migrate history: %w", err)
		}
	}
	return nil
}

// RecordSessionStart inserts an open session row and returns its id.
func (s Store) RecordSessionStart(ctx context.Context, sd model.SessionData) (string, error) {
	db, err := s.openHistory(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close()

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO sessions(id, goal, started_at_unix, expected_minutes) VALUES(?, ?, ?, ?)`,
		id, sd.Goal, int64(sd.StartTime), int64(sd.TimeExpected))
	if err != nil {
		return "", err
	}
	return id, nil
}

// RecordSessionStop closes the most recent open session row. Missing rows are not an error
// (sessions started before the history db existed).
func (s Store) RecordSessionStop(ctx context.Context, stoppedAt time.Time, reflectionPath string) error {
	db, err := s.openHistory(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var id string
	err = db.QueryRowContext(ctx,
		`SELECT id FROM sessions WHERE stopped_at_unix IS NULL ORDER BY started_at_unix DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`UPDATE sessions SET stopped_at_unix = ?, reflection_path = ? WHERE id = ?`,
		stoppedAt.Unix(), reflectionPath, id)
	return err
}

func (s Store) RecordAnalysis(ctx context.Context, reflectionPath string, res model.AnalysisResult) (string, error) {
	db, err := s.openHistory(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close()

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO analyses(id, reflection_path, summary, suggestion, reasoning, created_at_unix) VALUES(?, ?, ?, ?, ?, ?)`,
		id, reflectionPath, res.Summary, res.Suggestion, res.Reasoning, s.now().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListSessions returns sessions newest first. limit <= 0 means no limit.
func (s Store) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	db, err := s.openHistory(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, goal, started_at_unix, expected_minutes, stopped_at_unix, reflection_path
		FROM sessions ORDER BY started_at_unix DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			r        SessionRecord
			started  int64
			expected int64
			stopped  sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Goal, &started, &expected, &stopped, &r.ReflectionPath); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(started, 0).UTC()
		r.ExpectedMinutes = uint64(expected)
		if stopped.Valid {
			t := time.Unix(stopped.Int64, 0).UTC()
			r.StoppedAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListAnalyses returns analyses newest first. limit <= 0 means no limit.
func (s Store) ListAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	db, err := s.openHistory(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, reflection_path, summary, suggestion, reasoning, created_at_unix
		FROM analyses ORDER BY created_at_unix DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var (
			r       AnalysisRecord
			created int64
		)
		if err := rows.Scan(&r.ID, &r.ReflectionPath, &r.Result.Summary, &r.Result.Suggestion, &r.Result.Reasoning, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
