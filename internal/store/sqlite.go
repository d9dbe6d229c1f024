package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prasetya/ujian/internal/exam"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLStore keeps the submission and result logs in SQLite. Rows carry a
// monotonic seq so first-match lookup stays well-defined.
type SQLStore struct {
	db *sql.DB
}

var _ ResultStore = (*SQLStore)(nil)

// OpenSQL opens (creating if needed) the SQLite database at dsn and
// bootstraps the schema.
func OpenSQL(dsn string) (*SQLStore, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	s := &SQLStore{db: db}
	if err := s.Init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS submissions (
  seq          INTEGER PRIMARY KEY AUTOINCREMENT,
  id           TEXT NOT NULL,
  user_id      TEXT NOT NULL,
  user_name    TEXT NOT NULL,
  test_code    TEXT NOT NULL,
  answers_json TEXT NOT NULL,
  end_time     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
  seq             INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id         TEXT NOT NULL,
  user_name       TEXT NOT NULL,
  test_code       TEXT NOT NULL,
  score           REAL NOT NULL,
  total_questions INTEGER NOT NULL,
  correct_answers INTEGER NOT NULL,
  counts_json     TEXT NOT NULL,
  end_time        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_key ON results (test_code, user_id, seq);
`

// Init creates the tables when absent. Idempotent.
func (s *SQLStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return &StoreError{Op: "create schema", Err: err}
	}
	return nil
}

// SaveSubmission appends the submission and its derived result in one
// transaction.
func (s *SQLStore) SaveSubmission(ctx context.Context, sub exam.SubmissionRecord) error {
	if err := exam.ValidateSubmission(sub); err != nil {
		return err
	}
	result, err := exam.ResultFromSubmission(sub)
	if err != nil {
		return err
	}

	answersJSON, err := json.Marshal(sub.Answers)
	if err != nil {
		return &StoreError{Op: "encode answers", Err: err}
	}
	countsJSON, err := json.Marshal(result.ConfidenceCounts)
	if err != nil {
		return &StoreError{Op: "encode counts", Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Op: "begin tx", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO submissions (id, user_id, user_name, test_code, answers_json, end_time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.UserID, sub.UserName, sub.TestCode, string(answersJSON),
		sub.EndTime.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return &StoreError{Op: "insert submission", Err: err}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO results (user_id, user_name, test_code, score, total_questions, correct_answers, counts_json, end_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.UserID, result.UserName, result.TestCode, result.Score,
		result.TotalQuestions, result.CorrectAnswers, string(countsJSON),
		result.EndTime.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return &StoreError{Op: "insert result", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "commit", Err: err}
	}
	return nil
}

// FindResult returns the earliest stored result for the pair.
func (s *SQLStore) FindResult(ctx context.Context, testCode, userID string) (exam.ResultRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, user_name, test_code, score, total_questions, correct_answers, counts_json, end_time
		 FROM results WHERE test_code = ? AND user_id = ?
		 ORDER BY seq ASC LIMIT 1`,
		testCode, userID,
	)
	rec, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return exam.ResultRecord{}, ErrResultNotFound
	}
	if err != nil {
		return exam.ResultRecord{}, &StoreError{Op: "find result", Err: err}
	}
	return rec, nil
}

// ListResults returns every result in insertion order.
func (s *SQLStore) ListResults(ctx context.Context) ([]exam.ResultRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, user_name, test_code, score, total_questions, correct_answers, counts_json, end_time
		 FROM results ORDER BY seq ASC`,
	)
	if err != nil {
		return nil, &StoreError{Op: "list results", Err: err}
	}
	defer rows.Close()

	var out []exam.ResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, &StoreError{Op: "scan result", Err: err}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list results", Err: err}
	}
	return out, nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (exam.ResultRecord, error) {
	var rec exam.ResultRecord
	var countsJSON, endTime string
	if err := row.Scan(&rec.UserID, &rec.UserName, &rec.TestCode, &rec.Score,
		&rec.TotalQuestions, &rec.CorrectAnswers, &countsJSON, &endTime); err != nil {
		return exam.ResultRecord{}, err
	}
	if err := json.Unmarshal([]byte(countsJSON), &rec.ConfidenceCounts); err != nil {
		return exam.ResultRecord{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, endTime)
	if err != nil {
		return exam.ResultRecord{}, err
	}
	rec.EndTime = t
	return rec, nil
}
