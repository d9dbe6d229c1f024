package exam

import (
	"time"
)

// Confidence is the learner's self-reported certainty for one answer.
type Confidence string

const (
	// ConfidenceUnset means the learner has not rated the answer yet.
	ConfidenceUnset Confidence = ""

	ConfidenceVeryConfident Confidence = "very-confident"
	ConfidenceUnsure        Confidence = "unsure"
	ConfidenceDontKnow      Confidence = "dont-know"

	// ConfidenceNotSpecified is assigned when the rating prompt times out
	// or when a question is advanced with an answer but no rating.
	ConfidenceNotSpecified Confidence = "not-specified"
)

// Valid reports whether c is one of the four resolvable buckets or unset.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceUnset, ConfidenceVeryConfident, ConfidenceUnsure,
		ConfidenceDontKnow, ConfidenceNotSpecified:
		return true
	}
	return false
}

// OptionLabels are the five answer labels, in display order.
var OptionLabels = []string{"A", "B", "C", "D", "E"}

// Question is a single item from a question package. Immutable once loaded.
type Question struct {
	ID            string `json:"id"`
	Scenario      string `json:"scenario"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	OptionE       string `json:"option_e"`
	CorrectAnswer string `json:"correct_answer"`
	SubtopicID    string `json:"subtopic_list_id"`
	Competence    string `json:"competence"`
	ImageURL      string `json:"image_url,omitempty"`
}

// Option returns the option text for a label ("A".."E"), or "" for any
// other label.
func (q Question) Option(label string) string {
	switch label {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	case "E":
		return q.OptionE
	}
	return ""
}

// Answer is the learner's record for one question, index-aligned with the
// question sequence. Mutated in place as the session progresses.
type Answer struct {
	Selected   string     `json:"answer"`
	Confidence Confidence `json:"confidence"`
	TimeTaken  int        `json:"time_taken"`
}

// SubmittedAnswer is one answer joined with its question metadata, as
// persisted in the submission log.
type SubmittedAnswer struct {
	QuestionID    string     `json:"question_id"`
	Answer        string     `json:"answer"`
	Confidence    Confidence `json:"confidence"`
	CorrectAnswer string     `json:"correct_answer"`
	SubtopicID    string     `json:"subtopic_id"`
	Competence    string     `json:"competence"`
	TimeTaken     int        `json:"time_taken"`
}

// SubmissionRecord is the full answer set sent to persistence when a test
// completes. Constructed once at submit time, never mutated afterward.
type SubmissionRecord struct {
	ID       string            `json:"id"`
	UserID   string            `json:"user_id"`
	UserName string            `json:"user_name"`
	TestCode string            `json:"test_code"`
	Answers  []SubmittedAnswer `json:"answers"`
	EndTime  time.Time         `json:"end_time"`
}

// ConfidenceCounts holds the per-bucket answer counts for one submission.
// All four buckets are always carried, even when a display layer chooses
// to surface only three.
type ConfidenceCounts struct {
	VeryConfident int `json:"very-confident"`
	Unsure        int `json:"unsure"`
	DontKnow      int `json:"dont-know"`
	NotSpecified  int `json:"not-specified"`
}

// ResultRecord is the derived score summary for one (user, test code)
// pair, appended to the result log on successful submission.
type ResultRecord struct {
	UserID           string           `json:"user_id"`
	UserName         string           `json:"user_name"`
	TestCode         string           `json:"test_code"`
	Score            float64          `json:"score"`
	TotalQuestions   int              `json:"total_questions"`
	CorrectAnswers   int              `json:"correct_answers"`
	ConfidenceCounts ConfidenceCounts `json:"confidence_counts"`
	EndTime          time.Time        `json:"end_time"`
}
