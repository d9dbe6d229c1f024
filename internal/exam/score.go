package exam

import "errors"

// ErrNoQuestions is returned when a score is requested for an empty
// question set. Guarding here keeps the percentage division safe.
var ErrNoQuestions = errors.New("cannot score an empty question set")

// Summary is the output of the scoring engine.
type Summary struct {
	Score          float64
	TotalQuestions int
	CorrectCount   int
	Counts         ConfidenceCounts
}

// Summarize scores a parallel (questions, answers) pair: correct count by
// case-sensitive exact match (a blank selection never matches), score as a
// percentage of the total, and per-bucket confidence counts. It is pure
// and deterministic; calling it twice yields identical output.
func Summarize(questions []Question, answers []Answer) (Summary, error) {
	if len(questions) == 0 {
		return Summary{}, ErrNoQuestions
	}

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
	return SummarizeAnswers(rows)
}

// SummarizeAnswers scores already-joined answer rows. The store boundary
// uses this form to recompute the result record from a submission.
func SummarizeAnswers(rows []SubmittedAnswer) (Summary, error) {
	total := len(rows)
	if total == 0 {
		return Summary{}, ErrNoQuestions
	}

	var s Summary
	s.TotalQuestions = total
	for _, r := range rows {
		if r.Answer != "" && r.Answer == r.CorrectAnswer {
			s.CorrectCount++
		}
		switch r.Confidence {
		case ConfidenceVeryConfident:
			s.Counts.VeryConfident++
		case ConfidenceUnsure:
			s.Counts.Unsure++
		case ConfidenceDontKnow:
			s.Counts.DontKnow++
		case ConfidenceNotSpecified:
			s.Counts.NotSpecified++
		}
	}
	s.Score = float64(s.CorrectCount) / float64(total) * 100
	return s, nil
}

// ResultFromSubmission derives the result record persisted alongside a
// submission. Exactly one result is produced per successful submission.
func ResultFromSubmission(sub SubmissionRecord) (ResultRecord, error) {
	sum, err := SummarizeAnswers(sub.Answers)
	if err != nil {
		return ResultRecord{}, err
	}
	return ResultRecord{
		UserID:           sub.UserID,
		UserName:         sub.UserName,
		TestCode:         sub.TestCode,
		Score:            sum.Score,
		TotalQuestions:   sum.TotalQuestions,
		CorrectAnswers:   sum.CorrectCount,
		ConfidenceCounts: sum.Counts,
		EndTime:          sub.EndTime,
	}, nil
}
