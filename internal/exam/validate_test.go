package exam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSubmissionJoinsMetadata(t *testing.T) {
	qs := twoQuestions()
	answers := []Answer{
		{Selected: "A", Confidence: ConfidenceVeryConfident, TimeTaken: 4},
		{Selected: "B", Confidence: ConfidenceUnsure, TimeTaken: 15},
	}
	end := time.Now()

	sub, err := BuildSubmission("U1", "Rina", "T1", qs, answers, end)
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "U1", sub.UserID)
	assert.Equal(t, "T1", sub.TestCode)
	require.Len(t, sub.Answers, 2)
	assert.Equal(t, SubmittedAnswer{
		QuestionID:    "q1",
		Answer:        "A",
		Confidence:    ConfidenceVeryConfident,
		CorrectAnswer: "A",
		SubtopicID:    "s1",
		Competence:    "c1",
		TimeTaken:     4,
	}, sub.Answers[0])
}

func TestBuildSubmissionRequiresIdentity(t *testing.T) {
	_, err := BuildSubmission("", "Rina", "T1", twoQuestions(), nil, time.Now())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "user_id", verr.Field)
}

func TestValidateSubmission(t *testing.T) {
	valid := SubmissionRecord{
		ID:       "s",
		UserID:   "U1",
		TestCode: "T1",
		Answers:  []SubmittedAnswer{{QuestionID: "q1", Confidence: ConfidenceUnsure, TimeTaken: 3}},
	}

	tests := []struct {
		name   string
		mutate func(*SubmissionRecord)
		field  string
	}{
		{"valid", func(*SubmissionRecord) {}, ""},
		{"missing user", func(s *SubmissionRecord) { s.UserID = "" }, "user_id"},
		{"missing test code", func(s *SubmissionRecord) { s.TestCode = "" }, "test_code"},
		{"empty answers", func(s *SubmissionRecord) { s.Answers = nil }, "answers"},
		{"missing question id", func(s *SubmissionRecord) { s.Answers[0].QuestionID = "" }, "answers[0].question_id"},
		{"bad confidence", func(s *SubmissionRecord) { s.Answers[0].Confidence = "certain" }, "answers[0].confidence"},
		{"negative time", func(s *SubmissionRecord) { s.Answers[0].TimeTaken = -1 }, "answers[0].time_taken"},
		{"time over limit", func(s *SubmissionRecord) { s.Answers[0].TimeTaken = 16 }, "answers[0].time_taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := valid
			sub.Answers = append([]SubmittedAnswer(nil), valid.Answers...)
			tt.mutate(&sub)

			err := ValidateSubmission(sub)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
