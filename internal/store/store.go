// Package store persists submissions and their derived results. The log is
// append-only and shared; concurrent submissions from unrelated sessions
// may interleave in any order.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prasetya/ujian/internal/exam"
)

// ErrResultNotFound means no result exists for the (test code, user) pair.
var ErrResultNotFound = errors.New("result not found")

// StoreError wraps an I/O failure reading or writing the log. Submissions
// that fail with it are retryable from review.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("result store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Submitter accepts completed submissions. Appending the submission and
// its derived result record is one logical operation: exactly one result
// per successful submission.
type Submitter interface {
	SaveSubmission(ctx context.Context, sub exam.SubmissionRecord) error
}

// Finder looks up a result by (test code, user) pair.
//
// Lookup policy: first match over the insertion-ordered log. When the same
// pair was submitted more than once, the earliest stored result wins and
// later resubmissions are invisible to lookup. Carried over deliberately;
// see DESIGN.md before changing to last-match.
type Finder interface {
	FindResult(ctx context.Context, testCode, userID string) (exam.ResultRecord, error)
}

// ResultStore is the full persistence boundary.
type ResultStore interface {
	Submitter
	Finder

	// Init bootstraps the backing containers (files or tables) to an empty
	// state if absent. Idempotent; safe to run repeatedly.
	Init(ctx context.Context) error

	// ListResults returns every stored result in insertion order.
	ListResults(ctx context.Context) ([]exam.ResultRecord, error)

	Close() error
}

// DefaultDataDir resolves the flat-file data directory in priority order:
// UJIAN_DATA_DIR, then $XDG_DATA_HOME/ujian, then ~/.local/share/ujian.
func DefaultDataDir() (string, error) {
	if p := os.Getenv("UJIAN_DATA_DIR"); p != "" {
		return p, nil
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ujian"), nil
}
