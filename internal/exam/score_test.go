package exam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmptyGuard(t *testing.T) {
	_, err := Summarize(nil, nil)
	assert.ErrorIs(t, err, ErrNoQuestions)

	_, err = SummarizeAnswers(nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSummarizeAllCorrect(t *testing.T) {
	qs := twoQuestions()
	answers := []Answer{
		{Selected: "A", Confidence: ConfidenceVeryConfident, TimeTaken: 3},
		{Selected: "B", Confidence: ConfidenceUnsure, TimeTaken: 9},
	}

	sum, err := Summarize(qs, answers)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.CorrectCount)
	assert.Equal(t, 2, sum.TotalQuestions)
	assert.Equal(t, 100.0, sum.Score)
	assert.Equal(t, ConfidenceCounts{VeryConfident: 1, Unsure: 1}, sum.Counts)
}

func TestSummarizePartial(t *testing.T) {
	qs := twoQuestions()
	answers := []Answer{
		{Selected: "A", Confidence: ConfidenceNotSpecified, TimeTaken: 15},
		{}, // never answered
	}

	sum, err := Summarize(qs, answers)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.CorrectCount)
	assert.Equal(t, 50.0, sum.Score)
	assert.Equal(t, ConfidenceCounts{NotSpecified: 1}, sum.Counts)
}

func TestSummarizeMatchIsCaseSensitive(t *testing.T) {
	qs := []Question{{ID: "q1", CorrectAnswer: "A"}}

	sum, err := Summarize(qs, []Answer{{Selected: "a"}})
	require.NoError(t, err)
	assert.Equal(t, 0, sum.CorrectCount)
}

func TestSummarizeBlankNeverMatches(t *testing.T) {
	// A blank selection must not match even a blank correct answer.
	qs := []Question{{ID: "q1", CorrectAnswer: ""}}

	sum, err := Summarize(qs, []Answer{{}})
	require.NoError(t, err)
	assert.Equal(t, 0, sum.CorrectCount)
}

func TestSummarizeBounds(t *testing.T) {
	qs := twoQuestions()
	cases := [][]Answer{
		nil,
		{{Selected: "E"}, {Selected: "E"}},
		{{Selected: "A"}, {Selected: "B"}},
		{{Selected: "A"}},
	}
	for _, answers := range cases {
		sum, err := Summarize(qs, answers)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sum.Score, 0.0)
		assert.LessOrEqual(t, sum.Score, 100.0)
		assert.LessOrEqual(t, sum.CorrectCount, sum.TotalQuestions)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	qs := twoQuestions()
	answers := []Answer{
		{Selected: "A", Confidence: ConfidenceDontKnow, TimeTaken: 5},
		{Selected: "A", Confidence: ConfidenceUnsure, TimeTaken: 15},
	}

	first, err := Summarize(qs, answers)
	require.NoError(t, err)
	second, err := Summarize(qs, answers)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResultFromSubmission(t *testing.T) {
	end := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	sub := SubmissionRecord{
		ID:       "sub-1",
		UserID:   "U1",
		UserName: "Rina",
		TestCode: "T1",
		EndTime:  end,
		Answers: []SubmittedAnswer{
			{QuestionID: "q1", Answer: "A", CorrectAnswer: "A", Confidence: ConfidenceVeryConfident},
			{QuestionID: "q2", Answer: "C", CorrectAnswer: "B", Confidence: ConfidenceDontKnow},
		},
	}

	res, err := ResultFromSubmission(sub)
	require.NoError(t, err)

	assert.Equal(t, "U1", res.UserID)
	assert.Equal(t, "Rina", res.UserName)
	assert.Equal(t, "T1", res.TestCode)
	assert.Equal(t, 50.0, res.Score)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, ConfidenceCounts{VeryConfident: 1, DontKnow: 1}, res.ConfidenceCounts)
	assert.Equal(t, end, res.EndTime)
}

func TestResultFromSubmissionEmptyGuard(t *testing.T) {
	_, err := ResultFromSubmission(SubmissionRecord{UserID: "U1", TestCode: "T1"})
	assert.ErrorIs(t, err, ErrNoQuestions)
}
