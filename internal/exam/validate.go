package exam

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ValidationError marks a submission payload that must be rejected before
// any persistence happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %s %s", e.Field, e.Reason)
}

// BuildSubmission freezes the session's answers into a submission record,
// joining each answer with its question's metadata by position.
func BuildSubmission(userID, userName, testCode string, questions []Question, answers []Answer, endTime time.Time) (SubmissionRecord, error) {
	rows := make([]SubmittedAnswer, 0, len(questions))
	for i, q := range questions {
		var a Answer
		if i < len(answers) {
			a = answers[i]
		}
		rows = append(rows, SubmittedAnswer{
			QuestionID:    q.ID,
			Answer:        a.Selected,
			Confidence:    a.Confidence,
			CorrectAnswer: q.CorrectAnswer,
			SubtopicID:    q.SubtopicID,
			Competence:    q.Competence,
			TimeTaken:     a.TimeTaken,
		})
	}

	sub := SubmissionRecord{
		ID:       uuid.New().String(),
		UserID:   userID,
		UserName: userName,
		TestCode: testCode,
		Answers:  rows,
		EndTime:  endTime,
	}
	if err := ValidateSubmission(sub); err != nil {
		return SubmissionRecord{}, err
	}
	return sub, nil
}

// ValidateSubmission rejects malformed submission records: missing user
// identity or test code, an empty answer set, and out-of-range answer
// fields. Runs before any store write, so a rejection leaves no partial
// state behind.
func ValidateSubmission(sub SubmissionRecord) error {
	if sub.UserID == "" {
		return &ValidationError{Field: "user_id", Reason: "is required"}
	}
	if sub.TestCode == "" {
		return &ValidationError{Field: "test_code", Reason: "is required"}
	}
	if len(sub.Answers) == 0 {
		return &ValidationError{Field: "answers", Reason: "must not be empty"}
	}
	for i, a := range sub.Answers {
		if a.QuestionID == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("answers[%d].question_id", i),
				Reason: "is required",
			}
		}
		if !a.Confidence.Valid() {
			return &ValidationError{
				Field:  fmt.Sprintf("answers[%d].confidence", i),
				Reason: fmt.Sprintf("unknown bucket %q", a.Confidence),
			}
		}
		if a.TimeTaken < 0 || a.TimeTaken > QuestionSeconds {
			return &ValidationError{
				Field:  fmt.Sprintf("answers[%d].time_taken", i),
				Reason: fmt.Sprintf("must be 0-%d seconds", QuestionSeconds),
			}
		}
	}
	return nil
}
