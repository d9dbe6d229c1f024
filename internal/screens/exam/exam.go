// Package exam drives a test run: the timed question flow, the confidence
// prompt, the review recap, and submission.
package exam

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	ex "github.com/prasetya/ujian/internal/exam"
	"github.com/prasetya/ujian/internal/pack"
	"github.com/prasetya/ujian/internal/router"
	"github.com/prasetya/ujian/internal/screen"
	"github.com/prasetya/ujian/internal/screens/results"
	"github.com/prasetya/ujian/internal/store"
	"github.com/prasetya/ujian/internal/ui/components"
	"github.com/prasetya/ujian/internal/ui/layout"
)

// confidenceChoices are the prompt options, index-aligned with
// confidenceValues.
var confidenceChoices = []string{"Very confident", "Unsure", "Don't know"}

var confidenceValues = []ex.Confidence{
	ex.ConfidenceVeryConfident,
	ex.ConfidenceUnsure,
	ex.ConfidenceDontKnow,
}

// ExamScreen implements screen.Screen for an active test run.
type ExamScreen struct {
	sess *ex.Session
	pkg  *pack.Package

	userID   string
	userName string

	submitter store.Submitter
	finder    store.Finder

	options components.OptionList
	picker  components.ConfidencePicker

	// Countdown chain sequence numbers, see messages.go.
	mainSeq   int
	promptSeq int

	reviewCursor int
	confirmOpen  bool
	leaveOpen    bool
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)
var _ screen.EscInterceptor = (*ExamScreen)(nil)

// New creates an exam screen over a loaded question package.
func New(submitter store.Submitter, finder store.Finder, pkg *pack.Package, userID, userName string) (*ExamScreen, error) {
	sess, err := ex.NewSession(pkg.Questions)
	if err != nil {
		return nil, err
	}
	s := &ExamScreen{
		sess:      sess,
		pkg:       pkg,
		userID:    userID,
		userName:  userName,
		submitter: submitter,
		finder:    finder,
		picker:    components.NewConfidencePicker(confidenceChoices),
	}
	s.syncQuestion()
	return s, nil
}

func (s *ExamScreen) Init() tea.Cmd {
	return s.mainTick()
}

func (s *ExamScreen) Title() string {
	return "Test " + s.pkg.TestCode
}

func (s *ExamScreen) Status() string {
	return s.userName + " · " + s.pkg.TestCode
}

func (s *ExamScreen) InterceptEsc() bool {
	return true
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	if s.leaveOpen || s.confirmOpen {
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	}
	switch s.sess.Mode {
	case ex.ModeAnswering:
		return []layout.KeyHint{
			{Key: "A-E", Description: "Answer"},
			{Key: "1-3", Description: "Rate"},
			{Key: "N", Description: "Next"},
			{Key: "Esc", Description: "Leave"},
		}
	case ex.ModeConfidencePrompt:
		return []layout.KeyHint{
			{Key: "1-3", Description: "Rate"},
			{Key: "Enter", Description: "Pick"},
		}
	case ex.ModeReview:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Browse"},
			{Key: "Enter", Description: "Submit test"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mainTickMsg:
		if msg.seq != s.mainSeq {
			return s, nil
		}
		ev := s.sess.TickMain()
		if ev == ex.EventCounted {
			return s, s.mainTick()
		}
		return s, s.after(ev)

	case promptTickMsg:
		if msg.seq != s.promptSeq {
			return s, nil
		}
		ev := s.sess.TickPrompt()
		if ev == ex.EventCounted {
			return s, s.promptTick()
		}
		return s, s.after(ev)

	case submitDoneMsg:
		return s.handleSubmitDone(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.leaveOpen {
		switch key {
		case "y", "Y":
			s.sess.Close()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.leaveOpen = false
		}
		return s, nil
	}

	switch s.sess.Mode {
	case ex.ModeAnswering:
		switch key {
		case "esc":
			s.leaveOpen = true
			return s, nil
		case "n", "right":
			return s, s.after(s.sess.Next())
		case "1", "2", "3":
			// Inline rating: skips the follow-up prompt on Next.
			if s.sess.Answer().Selected != "" {
				s.sess.SetConfidence(confidenceValues[key[0]-'1'])
			}
			return s, nil
		}
		before := s.options.Picked
		var cmd tea.Cmd
		s.options, cmd = s.options.Update(msg)
		if s.options.Picked != before {
			s.sess.Select(s.options.Picked)
		}
		return s, cmd

	case ex.ModeConfidencePrompt:
		if i := s.picker.PickIndex(key); i >= 0 && i < len(confidenceValues) {
			return s, s.after(s.sess.ResolveConfidence(confidenceValues[i]))
		}
		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		return s, cmd

	case ex.ModeReview:
		return s.handleReviewKey(key)
	}

	// Submitting or submitted: no interaction.
	return s, nil
}

func (s *ExamScreen) handleReviewKey(key string) (screen.Screen, tea.Cmd) {
	if s.confirmOpen {
		switch key {
		case "y", "Y", "enter":
			s.confirmOpen = false
			return s, s.submit()
		case "n", "N", "esc":
			s.confirmOpen = false
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.reviewCursor > 0 {
			s.reviewCursor--
		}
	case "down", "j":
		if s.reviewCursor < len(s.sess.Questions)-1 {
			s.reviewCursor++
		}
	case "enter", "s":
		s.confirmOpen = true
	case "esc":
		s.leaveOpen = true
	}
	return s, nil
}

// submit freezes the answers and sends them to the store.
func (s *ExamScreen) submit() tea.Cmd {
	if err := s.sess.BeginSubmit(); err != nil {
		return nil
	}

	sub, err := ex.BuildSubmission(
		s.userID, s.userName, s.pkg.TestCode,
		s.sess.Questions, s.sess.Answers, time.Now().UTC(),
	)
	if err != nil {
		s.sess.FailSubmit(err.Error())
		return nil
	}

	submitter := s.submitter
	return func() tea.Msg {
		return submitDoneMsg{Err: submitter.SaveSubmission(context.Background(), sub)}
	}
}

func (s *ExamScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.sess.FailSubmit("Saving failed: " + msg.Err.Error())
		return s, nil
	}

	s.sess.CompleteSubmit()
	s.sess.Close()

	resultScreen := results.New(s.finder, s.pkg, s.userID, s.userName, s.sess.Answers)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: resultScreen}
	}
}

// after schedules the follow-up for a session transition: a fresh prompt
// chain, a fresh main chain, or nothing for review entry.
func (s *ExamScreen) after(ev ex.Event) tea.Cmd {
	switch ev {
	case ex.EventPromptOpened:
		s.promptSeq++
		s.picker.Cursor = 0
		return s.promptTick()
	case ex.EventAdvanced:
		s.mainSeq++
		s.syncQuestion()
		return s.mainTick()
	case ex.EventReview:
		s.mainSeq++
		s.reviewCursor = 0
		return nil
	}
	return nil
}

// syncQuestion rebuilds the option list for the current question.
func (s *ExamScreen) syncQuestion() {
	q := s.sess.Question()
	opts := make([]components.Option, 0, len(ex.OptionLabels))
	for _, label := range ex.OptionLabels {
		opts = append(opts, components.Option{Label: label, Text: q.Option(label)})
	}
	s.options = s.options.Reset(opts)
	s.options.Picked = s.sess.Answer().Selected
}

func (s *ExamScreen) mainTick() tea.Cmd {
	seq := s.mainSeq
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return mainTickMsg{seq: seq}
	})
}

func (s *ExamScreen) promptTick() tea.Cmd {
	seq := s.promptSeq
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return promptTickMsg{seq: seq}
	})
}
