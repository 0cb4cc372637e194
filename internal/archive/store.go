// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive records completed pipeline runs in a local SQLite
// database with full-text search over finding text. The archive is a
// write-only export from the pipeline's perspective: a run never reads
// state from earlier runs.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/deep-research/pkg/types"
)

const dbFile = "runs.db"

// Store manages the run archive SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the archive database at cfg.Dir/runs.db,
// creating the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "archive"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
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
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			started TEXT,
			finished TEXT,
			draft TEXT,
			critique TEXT,
			report TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS findings (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			step_index INTEGER NOT NULL,
			step TEXT NOT NULL,
			content TEXT NOT NULL,
			score REAL,
			status TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_run_id ON findings(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='findings_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE findings_fts USING fts5(content, content=findings, content_rowid=rowid)`,
			`CREATE TRIGGER findings_ai AFTER INSERT ON findings BEGIN
				INSERT INTO findings_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER findings_ad AFTER DELETE ON findings BEGIN
				INSERT INTO findings_fts(findings_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save records a completed run and returns its archive ID.
func (s *Store) Save(ctx context.Context, result *types.RunResult) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, topic, started, finished, draft, critique, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, result.Topic,
		result.Started.UTC().Format(time.RFC3339Nano),
		result.Finished.UTC().Format(time.RFC3339Nano),
		result.Reflection.Draft, result.Reflection.Critique, result.Reflection.Report,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO findings (run_id, step_index, step, content, score, status)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, sr := range result.Steps {
		_, err := stmt.ExecContext(ctx,
			id, sr.Index, sr.Step, sr.Finding, sr.Verdict.Score, string(sr.Verdict.Status))
		if err != nil {
			return "", fmt.Errorf("inserting finding %d: %w", sr.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// RunSummary is one row of the archive listing.
type RunSummary struct {
	ID      string    `json:"id" yaml:"id"`
	Topic   string    `json:"topic" yaml:"topic"`
	Started time.Time `json:"started" yaml:"started"`
	Steps   int       `json:"steps" yaml:"steps"`
	Passed  int       `json:"passed" yaml:"passed"`
}

// List returns summaries of archived runs, newest first.
func (s *Store) List(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.topic, r.started,
			count(f.rowid),
			coalesce(sum(CASE WHEN f.status = 'PASS' THEN 1 ELSE 0 END), 0)
		 FROM runs r
		 LEFT JOIN findings f ON f.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.started DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var rs RunSummary
		var started sql.NullString
		if err := rows.Scan(&rs.ID, &rs.Topic, &started, &rs.Steps, &rs.Passed); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if started.Valid {
			rs.Started, _ = time.Parse(time.RFC3339Nano, started.String)
		}
		summaries = append(summaries, rs)
	}
	return summaries, rows.Err()
}

// Show reconstructs an archived run by ID.
func (s *Store) Show(ctx context.Context, id string) (*types.RunResult, error) {
	result := &types.RunResult{}
	var started, finished sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT topic, started, finished, draft, critique, report FROM runs WHERE id = ?`, id,
	).Scan(&result.Topic, &started, &finished,
		&result.Reflection.Draft, &result.Reflection.Critique, &result.Reflection.Report)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", id)
		}
		return nil, fmt.Errorf("looking up run: %w", err)
	}
	if started.Valid {
		result.Started, _ = time.Parse(time.RFC3339Nano, started.String)
	}
	if finished.Valid {
		result.Finished, _ = time.Parse(time.RFC3339Nano, finished.String)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT step_index, step, content, score, status
		 FROM findings WHERE run_id = ? ORDER BY step_index`, id)
	if err != nil {
		return nil, fmt.Errorf("reading findings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sr types.StepResult
		var status string
		if err := rows.Scan(&sr.Index, &sr.Step, &sr.Finding, &sr.Verdict.Score, &status); err != nil {
			return nil, fmt.Errorf("scanning finding: %w", err)
		}
		sr.Verdict.Status = types.VerdictStatus(status)
		result.Steps = append(result.Steps, sr)
		result.Plan = append(result.Plan, sr.Step)
	}
	return result, rows.Err()
}

// SearchHit is one full-text match over archived findings.
type SearchHit struct {
	RunID     string  `json:"run_id" yaml:"run_id"`
	Topic     string  `json:"topic" yaml:"topic"`
	StepIndex int     `json:"step_index" yaml:"step_index"`
	Step      string  `json:"step" yaml:"step"`
	Excerpt   string  `json:"excerpt" yaml:"excerpt"`
	Score     float64 `json:"score" yaml:"score"`
	Status    string  `json:"status" yaml:"status"`
}

// Search runs an FTS5 query over archived finding text, ranked by
// relevance. maxResults of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]SearchHit, error) {
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT f.run_id, r.topic, f.step_index, f.step, f.content, f.score, f.status
		 FROM findings_fts
		 JOIN findings f ON f.rowid = findings_fts.rowid
		 JOIN runs r ON r.id = f.run_id
		 WHERE findings_fts MATCH ?
		 ORDER BY findings_fts.rank
		 LIMIT ?`, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching archive: %w", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var h SearchHit
		var content string
		if err := rows.Scan(&h.RunID, &h.Topic, &h.StepIndex, &h.Step, &content, &h.Score, &h.Status); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		h.Excerpt = excerpt(content, 160)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// excerpt truncates content for display.
func excerpt(content string, max int) string {
	if len(content) <= max {
		return content
	}
	return content[:max-3] + "..."
}
