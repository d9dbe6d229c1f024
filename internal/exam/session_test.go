package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestions() []Question {
	return []Question{
		{ID: "q1", Question: "First?", OptionA: "a", OptionB: "b", CorrectAnswer: "A", SubtopicID: "s1", Competence: "c1"},
		{ID: "q2", Question: "Second?", OptionA: "a", OptionB: "b", CorrectAnswer: "B", SubtopicID: "s2", Competence: "c2"},
	}
}

func TestNewSessionRejectsEmpty(t *testing.T) {
	_, err := NewSession(nil)
	require.ErrorIs(t, err, ErrNoQuestions)
}

func TestNewSessionInitialState(t *testing.T) {
	s, err := NewSession(twoQuestions())
	require.NoError(t, err)

	assert.Equal(t, ModeAnswering, s.Mode)
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, QuestionSeconds, s.TimeLeft)
	assert.Len(t, s.Answers, 2)
	assert.Equal(t, Answer{}, s.Answers[0])
}

func TestNextWithAnswerAndRatingAdvances(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Select("A")
	s.SetConfidence(ConfidenceVeryConfident)
	s.TickMain()
	s.TickMain()

	ev := s.Next()

	assert.Equal(t, EventAdvanced, ev)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, QuestionSeconds, s.TimeLeft)
	assert.Equal(t, 2, s.Answers[0].TimeTaken)
	assert.Equal(t, ConfidenceVeryConfident, s.Answers[0].Confidence)
}

func TestNextWithUnratedAnswerOpensPrompt(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Select("A")

	ev := s.Next()

	assert.Equal(t, EventPromptOpened, ev)
	assert.Equal(t, ModeConfidencePrompt, s.Mode)
	assert.Equal(t, PromptSeconds, s.PromptLeft)
	assert.Equal(t, 0, s.Current, "prompt must resolve before advancing")
}

func TestNextWithoutAnswerAdvancesWithoutPrompt(t *testing.T) {
	s, _ := NewSession(twoQuestions())

	ev := s.Next()

	assert.Equal(t, EventAdvanced, ev)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, ConfidenceUnset, s.Answers[0].Confidence)
}

func TestMainTimeoutWithoutAnswerSkipsPrompt(t *testing.T) {
	s, _ := NewSession(twoQuestions())

	var ev Event
	for i := 0; i < QuestionSeconds; i++ {
		ev = s.TickMain()
	}

	assert.Equal(t, EventAdvanced, ev)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, QuestionSeconds, s.TimeLeft, "main countdown resets for the next question")
	assert.Equal(t, QuestionSeconds, s.Answers[0].TimeTaken)
	assert.Equal(t, "", s.Answers[0].Selected)
}

func TestMainTimeoutWithAnswerOpensPrompt(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Select("B")

	var ev Event
	for i := 0; i < QuestionSeconds; i++ {
		ev = s.TickMain()
	}

	assert.Equal(t, EventPromptOpened, ev)
	assert.Equal(t, ModeConfidencePrompt, s.Mode)
	assert.Equal(t, QuestionSeconds, s.Answers[0].TimeTaken)
}

func TestPromptTimeoutResolvesNotSpecified(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Select("B")
	s.Next()
	require.Equal(t, ModeConfidencePrompt, s.Mode)

	var ev Event
	for i := 0; i < PromptSeconds; i++ {
		ev = s.TickPrompt()
	}

	assert.Equal(t, EventAdvanced, ev)
	assert.Equal(t, ConfidenceNotSpecified, s.Answers[0].Confidence)
	assert.Equal(t, ModeAnswering, s.Mode)
	assert.Equal(t, 1, s.Current)
}

func TestPromptSelectionResolves(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Select("B")
	s.Next()

	ev := s.ResolveConfidence(ConfidenceUnsure)

	assert.Equal(t, EventAdvanced, ev)
	assert.Equal(t, ConfidenceUnsure, s.Answers[0].Confidence)
}

func TestTimersNeverRunTogether(t *testing.T) {
	s, _ := NewSession(twoQuestions())

	assert.True(t, s.MainTimerActive())
	assert.False(t, s.PromptTimerActive())

	s.Select("A")
	s.Next()
	assert.False(t, s.MainTimerActive(), "entering the prompt suspends the main countdown")
	assert.True(t, s.PromptTimerActive())

	// A stale main tick arriving mid-prompt is dropped.
	before := s.TimeLeft
	assert.Equal(t, EventNone, s.TickMain())
	assert.Equal(t, before, s.TimeLeft)

	s.ResolveConfidence(ConfidenceDontKnow)
	assert.True(t, s.MainTimerActive())
	assert.False(t, s.PromptTimerActive())
}

func TestLastQuestionEntersReview(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Next()

	ev := s.Next()

	assert.Equal(t, EventReview, ev)
	assert.Equal(t, ModeReview, s.Mode)
	assert.False(t, s.MainTimerActive())
	assert.False(t, s.PromptTimerActive())
}

func TestPromptResolutionOnLastQuestionEntersReview(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Next()
	s.Select("B")
	s.Next()
	require.Equal(t, ModeConfidencePrompt, s.Mode)

	ev := s.ResolveConfidence(ConfidenceVeryConfident)

	assert.Equal(t, EventReview, ev)
	assert.Equal(t, ModeReview, s.Mode)
}

func TestSubmitLifecycle(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Next()
	s.Next()
	require.Equal(t, ModeReview, s.Mode)

	require.NoError(t, s.BeginSubmit())
	assert.Equal(t, ModeSubmitting, s.Mode)

	// Failure returns to review with a message; submit is re-enterable.
	s.FailSubmit("store unavailable")
	assert.Equal(t, ModeReview, s.Mode)
	assert.Equal(t, "store unavailable", s.LastError)

	require.NoError(t, s.BeginSubmit())
	assert.Empty(t, s.LastError, "retry clears the surfaced error")
	s.CompleteSubmit()
	assert.Equal(t, ModeSubmitted, s.Mode)
}

func TestBeginSubmitOnlyFromReview(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	assert.ErrorIs(t, s.BeginSubmit(), ErrNotInReview)
}

func TestClosedSessionDropsAllMutations(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Select("A")
	s.Close()

	assert.Equal(t, EventNone, s.TickMain())
	assert.Equal(t, EventNone, s.TickPrompt())
	assert.Equal(t, EventNone, s.Next())
	s.Select("B")
	s.SetConfidence(ConfidenceUnsure)

	assert.Equal(t, "A", s.Answers[0].Selected)
	assert.Equal(t, ConfidenceUnset, s.Answers[0].Confidence)
	assert.Equal(t, QuestionSeconds, s.TimeLeft)
	assert.False(t, s.MainTimerActive())
	assert.False(t, s.PromptTimerActive())
}

// Abandoning Q2 after rating Q1 late mirrors the recap defaults: Q1 ends
// not-specified, Q2 stays unanswered with zero seconds recorded.
func TestAbandonedFlowReviewDefaults(t *testing.T) {
	s, _ := NewSession(twoQuestions())
	s.Select("A")
	for i := 0; i < QuestionSeconds; i++ {
		s.TickMain()
	}
	for i := 0; i < PromptSeconds; i++ {
		s.TickPrompt()
	}
	for i := 0; i < QuestionSeconds; i++ {
		s.TickMain()
	}

	require.Equal(t, ModeReview, s.Mode)
	assert.Equal(t, Answer{Selected: "A", Confidence: ConfidenceNotSpecified, TimeTaken: QuestionSeconds}, s.Answers[0])
	assert.Equal(t, Answer{Selected: "", Confidence: ConfidenceUnset, TimeTaken: QuestionSeconds}, s.Answers[1])

	sum, err := Summarize(s.Questions, s.Answers)
	require.NoError(t, err)
	assert.Equal(t, 50.0, sum.Score)
}
