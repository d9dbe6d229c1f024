package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/prasetya/ujian/internal/exam"
)

const (
	answersFile = "answers.json"
	resultsFile = "results.json"
	usersFile   = "users.json"
)

// JSONStore keeps the logs as flat JSON arrays on disk: answers.json holds
// one row per submitted answer, results.json one record per submission.
// Appends are read-modify-write over the whole array; a mutex serializes
// writers within this process, nothing serializes across processes.
type JSONStore struct {
	dir string
	mu  sync.Mutex
}

var _ ResultStore = (*JSONStore)(nil)

// NewJSONStore creates a store rooted at dir.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// answerRow is the persisted shape of one submitted answer.
type answerRow struct {
	UserID        string          `json:"user_id"`
	QuestionID    string          `json:"question_id"`
	Answer        string          `json:"answer"`
	Confidence    exam.Confidence `json:"confidence"`
	CorrectAnswer string          `json:"correct_answer"`
	SubtopicID    string          `json:"subtopic_id"`
	Competence    string          `json:"competence"`
	TimeTaken     int             `json:"time_taken"`
}

// Init creates the data directory and seeds answers.json, results.json,
// and users.json with empty arrays when absent. Existing files are left
// untouched, so running it again is safe.
func (s *JSONStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure(ctx)
}

func (s *JSONStore) ensure(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &StoreError{Op: "create data dir", Err: err}
	}
	for _, name := range []string{answersFile, resultsFile, usersFile} {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return &StoreError{Op: "stat " + name, Err: err}
		}
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return &StoreError{Op: "seed " + name, Err: err}
		}
	}
	return nil
}

// SaveSubmission validates sub, appends its answer rows to answers.json,
// and appends the derived result record to results.json. Validation
// failures leave both files untouched.
func (s *JSONStore) SaveSubmission(ctx context.Context, sub exam.SubmissionRecord) error {
	if err := exam.ValidateSubmission(sub); err != nil {
		return err
	}
	result, err := exam.ResultFromSubmission(sub)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return err
	}

	var answers []answerRow
	if err := s.readArray(answersFile, &answers); err != nil {
		return err
	}
	var results []exam.ResultRecord
	if err := s.readArray(resultsFile, &results); err != nil {
		return err
	}

	for _, a := range sub.Answers {
		answers = append(answers, answerRow{
			UserID:        sub.UserID,
			QuestionID:    a.QuestionID,
			Answer:        a.Answer,
			Confidence:    a.Confidence,
			CorrectAnswer: a.CorrectAnswer,
			SubtopicID:    a.SubtopicID,
			Competence:    a.Competence,
			TimeTaken:     a.TimeTaken,
		})
	}
	results = append(results, result)

	if err := s.writeArray(answersFile, answers); err != nil {
		return err
	}
	return s.writeArray(resultsFile, results)
}

// FindResult returns the first stored result matching the pair.
func (s *JSONStore) FindResult(ctx context.Context, testCode, userID string) (exam.ResultRecord, error) {
	results, err := s.ListResults(ctx)
	if err != nil {
		return exam.ResultRecord{}, err
	}
	for _, r := range results {
		if r.TestCode == testCode && r.UserID == userID {
			return r, nil
		}
	}
	return exam.ResultRecord{}, ErrResultNotFound
}

// ListResults returns every result in insertion order. A store that was
// never initialized reads as empty.
func (s *JSONStore) ListResults(ctx context.Context) ([]exam.ResultRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []exam.ResultRecord
	if err := s.readArray(resultsFile, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *JSONStore) Close() error { return nil }

// readArray decodes a log file into v. A missing file reads as empty.
func (s *JSONStore) readArray(name string, v any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &StoreError{Op: "read " + name, Err: err}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &StoreError{Op: "decode " + name, Err: err}
	}
	return nil
}

func (s *JSONStore) writeArray(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StoreError{Op: "encode " + name, Err: err}
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return &StoreError{Op: "write " + name, Err: err}
	}
	return nil
}
