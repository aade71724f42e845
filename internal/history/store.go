// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of normalization attempts so the
// share of emails handled without the AI fallback can be measured per
// reservation type.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/reservation-engine/pkg/types"
)

const (
	defaultMaxResults = 20

	// timeLayout is fixed width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Attempt is one logged normalization.
type Attempt struct {
	ID           string                `json:"id" yaml:"id"`
	CreatedAt    time.Time             `json:"created_at" yaml:"created_at"`
	Source       string                `json:"source" yaml:"source"`
	Type         types.ReservationType `json:"type" yaml:"type"`
	Method       types.Method          `json:"method" yaml:"method"`
	Success      bool                  `json:"success" yaml:"success"`
	Completeness float64               `json:"completeness" yaml:"completeness"`
	Confidence   types.Confidence      `json:"confidence" yaml:"confidence"`
	Error        string                `json:"error,omitempty" yaml:"error,omitempty"`
	Candidates   int                   `json:"candidates" yaml:"candidates"`
	Duration     time.Duration         `json:"duration" yaml:"duration"`
	Data         json.RawMessage       `json:"data,omitempty" yaml:"-"`
}

// NewAttempt builds an Attempt from a result with a fresh id and the
// current time. The accepted record, if any, is kept as JSON.
func NewAttempt(source string, rt types.ReservationType, res types.Result, candidates int, elapsed time.Duration) Attempt {
	a := Attempt{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Source:       source,
		Type:         rt,
		Method:       res.Method,
		Success:      res.Success,
		Completeness: res.Completeness,
		Confidence:   res.Confidence,
		Error:        res.Error,
		Candidates:   candidates,
		Duration:     elapsed,
	}
	if res.Data != nil {
		if data, err := json.Marshal(res.Data); err == nil {
			a.Data = data
		}
	}
	return a
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the database at cfg.DBPath, creating the
// parent directory and schema when missing.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT,
			type TEXT NOT NULL,
			method TEXT NOT NULL,
			success INTEGER NOT NULL,
			completeness REAL NOT NULL,
			confidence TEXT NOT NULL,
			error TEXT,
			candidates INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			data TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_type ON attempts(type)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_created_at ON attempts(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a. Missing ids and timestamps are filled in.
func (s *Store) Record(ctx context.Context, a Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	var data sql.NullString
	if len(a.Data) > 0 {
		data = sql.NullString{String: string(a.Data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, created_at, source, type, method, success,
			completeness, confidence, error, candidates, duration_ns, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.CreatedAt.UTC().Format(timeLayout),
		a.Source,
		string(a.Type),
		string(a.Method),
		a.Success,
		a.Completeness,
		string(a.Confidence),
		a.Error,
		a.Candidates,
		int64(a.Duration),
		data,
	)
	if err != nil {
		return fmt.Errorf("recording attempt %s: %w", a.ID, err)
	}
	return nil
}

// ListOptions filters List.
type ListOptions struct {
	// Type restricts results to one reservation type.
	Type types.ReservationType

	// FailuresOnly restricts results to attempts that found nothing.
	FailuresOnly bool

	// Since drops attempts older than this time.
	Since time.Time

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// List returns attempts newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Attempt, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, created_at, source, type, method, success, completeness,
			confidence, error, candidates, duration_ns, data
		FROM attempts WHERE 1=1`)

	if opts.Type != "" {
		qb.WriteString(` AND type = ?`)
		args = append(args, string(opts.Type))
	}
	if opts.FailuresOnly {
		qb.WriteString(` AND success = 0`)
	}
	if !opts.Since.IsZero() {
		qb.WriteString(` AND created_at >= ?`)
		args = append(args, opts.Since.UTC().Format(timeLayout))
	}
	qb.WriteString(` ORDER BY created_at DESC, rowid DESC LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var (
			a          Attempt
			createdAt  string
			source     sql.NullString
			rt, method string
			confidence string
			errText    sql.NullString
			durationNS int64
			data       sql.NullString
		)
		if err := rows.Scan(&a.ID, &createdAt, &source, &rt, &method, &a.Success,
			&a.Completeness, &confidence, &errText, &a.Candidates, &durationNS, &data); err != nil {
			return nil, fmt.Errorf("scanning attempt: %w", err)
		}

		a.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", a.ID, err)
		}
		a.Source = source.String
		a.Type = types.ReservationType(rt)
		a.Method = types.Method(method)
		a.Confidence = types.Confidence(confidence)
		a.Error = errText.String
		a.Duration = time.Duration(durationNS)
		if data.Valid {
			a.Data = json.RawMessage(data.String)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return attempts, nil
}

// TypeStats aggregates attempts for one reservation type.
type TypeStats struct {
	Type            types.ReservationType `json:"type" yaml:"type"`
	Attempts        int                   `json:"attempts" yaml:"attempts"`
	Succeeded       int                   `json:"succeeded" yaml:"succeeded"`
	JSONLD          int                   `json:"json_ld" yaml:"json_ld"`
	Microdata       int                   `json:"microdata" yaml:"microdata"`
	AvgCompleteness float64               `json:"avg_completeness" yaml:"avg_completeness"`
}

// HitRate is the fraction of attempts that produced a record.
func (t TypeStats) HitRate() float64 {
	if t.Attempts == 0 {
		return 0
	}
	return float64(t.Succeeded) / float64(t.Attempts)
}

// Stats aggregates the whole log per reservation type, ordered by type.
func (s *Store) Stats(ctx context.Context) ([]TypeStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type,
			COUNT(*),
			COALESCE(SUM(success), 0),
			COALESCE(SUM(CASE WHEN success = 1 AND method = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN success = 1 AND method = ? THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(completeness), 0)
		FROM attempts
		GROUP BY type
		ORDER BY type`,
		string(types.MethodJSONLD), string(types.MethodMicrodata),
	)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var stats []TypeStats
	for rows.Next() {
		var (
			ts TypeStats
			rt string
		)
		if err := rows.Scan(&rt, &ts.Attempts, &ts.Succeeded, &ts.JSONLD, &ts.Microdata, &ts.AvgCompleteness); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		ts.Type = types.ReservationType(rt)
		stats = append(stats, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stats: %w", err)
	}
	return stats, nil
}
