package exam

import "errors"

// Countdown lengths, in seconds.
const (
	QuestionSeconds = 15 // main per-question countdown
	PromptSeconds   = 8  // confidence rating follow-up countdown
)

// Mode is the session's current state.
type Mode int

const (
	// ModeAnswering is the active question state: the main countdown runs.
	ModeAnswering Mode = iota
	// ModeConfidencePrompt is the rating follow-up: the main countdown is
	// suspended and the prompt countdown runs instead.
	ModeConfidencePrompt
	// ModeReview is the read-only recap of all recorded answers.
	ModeReview
	// ModeSubmitting means a submission is in flight; interaction is
	// disabled until it resolves.
	ModeSubmitting
	// ModeSubmitted is terminal.
	ModeSubmitted
)

// Event describes what a state transition did, so the caller can schedule
// the matching follow-up (start a prompt countdown, reset the main one).
type Event int

const (
	// EventNone: nothing happened (guarded or invalid in this mode).
	EventNone Event = iota
	// EventCounted: a countdown decremented without expiring.
	EventCounted
	// EventPromptOpened: the confidence prompt opened; the main countdown
	// is suspended.
	EventPromptOpened
	// EventAdvanced: moved to the next question; main countdown reset.
	EventAdvanced
	// EventReview: the last question was left behind; session is in review.
	EventReview
)

// ErrNotInReview is returned when submission is requested outside review.
var ErrNotInReview = errors.New("submission is only allowed from review")

// Session holds the in-progress state of one exam run: the loaded question
// sequence, the index-aligned answer sequence, the current index, the mode,
// and the active countdown values. A session is single-use.
//
// Session is not safe for concurrent use; it is driven by a single event
// loop. Every mutating method checks the closed flag first, so a wake-up
// that fires after Close is dropped rather than mutating torn-down state.
type Session struct {
	Questions []Question
	Answers   []Answer

	Current    int
	Mode       Mode
	TimeLeft   int // main countdown, seconds remaining
	PromptLeft int // prompt countdown, seconds remaining

	// LastError carries the human-readable message of a failed submission,
	// shown on the review screen. Cleared when submission is retried.
	LastError string

	closed bool
}

// NewSession starts a session over qs with all answers empty, the first
// question current, and the main countdown full. Empty question sets are
// rejected up front.
func NewSession(qs []Question) (*Session, error) {
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{
		Questions: qs,
		Answers:   make([]Answer, len(qs)),
		Mode:      ModeAnswering,
		TimeLeft:  QuestionSeconds,
	}, nil
}

// Close tears the session down. Any countdown wake-up still pending will
// see the flag and drop itself.
func (s *Session) Close() { s.closed = true }

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool { return s.closed }

// Question returns the current question.
func (s *Session) Question() Question { return s.Questions[s.Current] }

// Answer returns the current answer record.
func (s *Session) Answer() *Answer { return &s.Answers[s.Current] }

// MainTimerActive reports whether the main countdown should be ticking.
func (s *Session) MainTimerActive() bool {
	return !s.closed && s.Mode == ModeAnswering
}

// PromptTimerActive reports whether the prompt countdown should be ticking.
// At most one of the two timers is ever active.
func (s *Session) PromptTimerActive() bool {
	return !s.closed && s.Mode == ModeConfidencePrompt
}

// Select records the chosen option label for the current question.
func (s *Session) Select(label string) {
	if s.closed || s.Mode != ModeAnswering {
		return
	}
	s.Answers[s.Current].Selected = label
}

// SetConfidence records an inline confidence rating for the current
// question, before any prompt is involved.
func (s *Session) SetConfidence(c Confidence) {
	if s.closed || s.Mode != ModeAnswering {
		return
	}
	s.Answers[s.Current].Confidence = c
}

// Next is the explicit "Next"/"Finish" action. An answered question with
// no rating detours through the confidence prompt; otherwise the elapsed
// time is recorded and the session advances.
func (s *Session) Next() Event {
	if s.closed || s.Mode != ModeAnswering {
		return EventNone
	}
	a := &s.Answers[s.Current]
	if a.Selected != "" && a.Confidence == ConfidenceUnset {
		return s.openPrompt()
	}
	a.TimeTaken = QuestionSeconds - s.TimeLeft
	return s.advance()
}

// TickMain applies one second of the main countdown. On expiry the full
// question time is recorded; an answered question opens the confidence
// prompt while an unanswered one advances immediately.
func (s *Session) TickMain() Event {
	if !s.MainTimerActive() {
		return EventNone
	}
	s.TimeLeft--
	if s.TimeLeft > 0 {
		return EventCounted
	}
	a := &s.Answers[s.Current]
	a.TimeTaken = QuestionSeconds
	if a.Selected != "" {
		return s.openPrompt()
	}
	return s.advance()
}

// TickPrompt applies one second of the prompt countdown. Expiry resolves
// the rating to not-specified and advances.
func (s *Session) TickPrompt() Event {
	if !s.PromptTimerActive() {
		return EventNone
	}
	s.PromptLeft--
	if s.PromptLeft > 0 {
		return EventCounted
	}
	return s.ResolveConfidence(ConfidenceUnset)
}

// ResolveConfidence closes the confidence prompt with the chosen rating
// (not-specified when none was chosen) and advances.
func (s *Session) ResolveConfidence(c Confidence) Event {
	if s.closed || s.Mode != ModeConfidencePrompt {
		return EventNone
	}
	a := &s.Answers[s.Current]
	if c != ConfidenceUnset {
		a.Confidence = c
	} else if a.Confidence == ConfidenceUnset {
		a.Confidence = ConfidenceNotSpecified
	}
	s.Mode = ModeAnswering
	return s.advance()
}

// BeginSubmit moves from review to submitting. Re-enterable: a failed
// submission returns to review and may be retried.
func (s *Session) BeginSubmit() error {
	if s.closed {
		return errors.New("session closed")
	}
	if s.Mode != ModeReview {
		return ErrNotInReview
	}
	s.Mode = ModeSubmitting
	s.LastError = ""
	return nil
}

// FailSubmit records a submission failure and returns to review.
func (s *Session) FailSubmit(msg string) {
	if s.closed || s.Mode != ModeSubmitting {
		return
	}
	s.Mode = ModeReview
	s.LastError = msg
}

// CompleteSubmit marks the session as successfully submitted. Terminal.
func (s *Session) CompleteSubmit() {
	if s.closed || s.Mode != ModeSubmitting {
		return
	}
	s.Mode = ModeSubmitted
}

func (s *Session) openPrompt() Event {
	s.Mode = ModeConfidencePrompt
	s.PromptLeft = PromptSeconds
	return EventPromptOpened
}

// advance moves to the next question with a fresh countdown, or to review
// past the last question.
func (s *Session) advance() Event {
	if s.Current >= len(s.Questions)-1 {
		s.Mode = ModeReview
		return EventReview
	}
	s.Current++
	s.TimeLeft = QuestionSeconds
	return EventAdvanced
}
