package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetya/ujian/internal/exam"
)

func testSubmission(userID, testCode string) exam.SubmissionRecord {
	return exam.SubmissionRecord{
		ID:       "sub-" + userID + "-" + testCode,
		UserID:   userID,
		UserName: "Tester",
		TestCode: testCode,
		EndTime:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Answers: []exam.SubmittedAnswer{
			{QuestionID: "q1", Answer: "A", CorrectAnswer: "A", Confidence: exam.ConfidenceVeryConfident, SubtopicID: "s1", Competence: "c1", TimeTaken: 4},
			{QuestionID: "q2", Answer: "C", CorrectAnswer: "B", Confidence: exam.ConfidenceUnsure, SubtopicID: "s2", Competence: "c2", TimeTaken: 15},
		},
	}
}

// Both backends must satisfy the same contract; run the shared suite
// against each.
func openBackends(t *testing.T) map[string]ResultStore {
	t.Helper()
	sqlStore, err := OpenSQL(filepath.Join(t.TempDir(), "ujian.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlStore.Close() })
	return map[string]ResultStore{
		"json":   NewJSONStore(t.TempDir()),
		"sqlite": sqlStore,
	}
}

func TestInitIsIdempotent(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Init(ctx))
			require.NoError(t, st.Init(ctx))

			results, err := st.ListResults(ctx)
			require.NoError(t, err)
			assert.Empty(t, results)
		})
	}
}

func TestSaveAndFind(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Init(ctx))
			require.NoError(t, st.SaveSubmission(ctx, testSubmission("U1", "T1")))

			rec, err := st.FindResult(ctx, "T1", "U1")
			require.NoError(t, err)
			assert.Equal(t, 50.0, rec.Score)
			assert.Equal(t, 2, rec.TotalQuestions)
			assert.Equal(t, 1, rec.CorrectAnswers)
			assert.Equal(t, exam.ConfidenceCounts{VeryConfident: 1, Unsure: 1}, rec.ConfidenceCounts)
			assert.True(t, rec.EndTime.Equal(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)))
		})
	}
}

func TestFindNotFound(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Init(ctx))

			_, err := st.FindResult(ctx, "T1", "missing")
			assert.ErrorIs(t, err, ErrResultNotFound)
		})
	}
}

// Duplicate submissions under one key: lookup returns the first-stored
// result, never the resubmission.
func TestFindReturnsFirstMatch(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Init(ctx))

			first := testSubmission("U1", "T1")
			require.NoError(t, st.SaveSubmission(ctx, first))

			second := testSubmission("U1", "T1")
			second.Answers[1].Answer = "B" // resubmission scores 100
			require.NoError(t, st.SaveSubmission(ctx, second))

			rec, err := st.FindResult(ctx, "T1", "U1")
			require.NoError(t, err)
			assert.Equal(t, 50.0, rec.Score)

			results, err := st.ListResults(ctx)
			require.NoError(t, err)
			assert.Len(t, results, 2, "duplicates are not deduplicated")
		})
	}
}

func TestSaveRejectsInvalidSubmission(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Init(ctx))

			sub := testSubmission("U1", "T1")
			sub.UserID = ""
			var verr *exam.ValidationError
			require.ErrorAs(t, st.SaveSubmission(ctx, sub), &verr)

			results, err := st.ListResults(ctx)
			require.NoError(t, err)
			assert.Empty(t, results, "rejected submissions must not leave partial writes")
		})
	}
}

func TestJSONStoreSeedsFlatFiles(t *testing.T) {
	dir := t.TempDir()
	st := NewJSONStore(dir)
	require.NoError(t, st.Init(context.Background()))

	for _, name := range []string{"answers.json", "results.json", "users.json"} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw))
	}
}

func TestJSONStoreAppendsAnswerRows(t *testing.T) {
	dir := t.TempDir()
	st := NewJSONStore(dir)
	ctx := context.Background()
	require.NoError(t, st.SaveSubmission(ctx, testSubmission("U1", "T1")))
	require.NoError(t, st.SaveSubmission(ctx, testSubmission("U2", "T1")))

	raw, err := os.ReadFile(filepath.Join(dir, "answers.json"))
	require.NoError(t, err)

	var rows []answerRow
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "U1", rows[0].UserID)
	assert.Equal(t, "q1", rows[0].QuestionID)
	assert.Equal(t, "U2", rows[2].UserID)
}

func TestJSONStoreRecoversEndTime(t *testing.T) {
	st := NewJSONStore(t.TempDir())
	ctx := context.Background()
	sub := testSubmission("U1", "T1")
	require.NoError(t, st.SaveSubmission(ctx, sub))

	rec, err := st.FindResult(ctx, "T1", "U1")
	require.NoError(t, err)
	assert.True(t, rec.EndTime.Equal(sub.EndTime))
}
