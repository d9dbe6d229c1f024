package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	ex "github.com/prasetya/ujian/internal/exam"
	"github.com/prasetya/ujian/internal/ui/components"
	"github.com/prasetya/ujian/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	if s.leaveOpen {
		return renderDialog(width, height,
			"Leave the test?",
			"Your answers will be discarded.")
	}

	switch s.sess.Mode {
	case ex.ModeAnswering:
		return s.renderAnswering(width, height)
	case ex.ModeConfidencePrompt:
		return s.renderPrompt(width, height)
	case ex.ModeReview:
		if s.confirmOpen {
			return renderDialog(width, height,
				"Submit the test?",
				"Answers cannot be changed after submitting.")
		}
		return s.renderReview(width, height)
	case ex.ModeSubmitting:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Submitting your answers..."))
	}
	return ""
}

// renderAnswering renders the active question with its countdown.
func (s *ExamScreen) renderAnswering(width, height int) string {
	q := s.sess.Question()

	var b strings.Builder

	// Progress line: position and how many are answered so far.
	answered := 0
	for _, a := range s.sess.Answers {
		if a.Selected != "" {
			answered++
		}
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.sess.Current+1, len(s.sess.Questions)))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d answered", answered))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	// Countdown bar.
	bar := components.ProgressBar{
		Label:   fmt.Sprintf("0:%02d", s.sess.TimeLeft),
		Percent: float64(s.sess.TimeLeft) / float64(ex.QuestionSeconds),
		Width:   width - 4,
	}
	if s.sess.TimeLeft <= 5 {
		bar.Fill = theme.Error
	}
	b.WriteString("  " + bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(s.renderQuestionBody(q, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View(min(width-8, 76))))

	if s.sess.Answer().Selected != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderInlineConfidence()))
	}

	return b.String()
}

// renderInlineConfidence renders the optional rate-now row under the
// options. Rating here skips the follow-up popup.
func (s *ExamScreen) renderInlineConfidence() string {
	current := s.sess.Answer().Confidence

	parts := make([]string, 0, len(confidenceChoices))
	for i, choice := range confidenceChoices {
		label := fmt.Sprintf("[%d] %s", i+1, choice)
		if confidenceValues[i] == current {
			parts = append(parts, theme.Selected.Render(label))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	return theme.Hint.Render("Rate now: ") + strings.Join(parts, "  ")
}

// renderPrompt renders the question dimmed behind the confidence popup.
func (s *ExamScreen) renderPrompt(width, height int) string {
	q := s.sess.Question()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", s.sess.Current+1, len(s.sess.Questions))))
	b.WriteString("\n\n")

	popup := s.picker.View(s.sess.PromptLeft)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, popup))
	b.WriteString("\n\n")

	answer := s.sess.Answer().Selected
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Your answer: %s. %s", answer, truncate(q.Option(answer), 50))))

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, b.String())
}

// renderReview renders the read-only recap of all answers.
func (s *ExamScreen) renderReview(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Review your answers"))
	b.WriteString("\n\n")

	if s.sess.LastError != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render(s.sess.LastError + " Press Enter to try again."))
		b.WriteString("\n\n")
	}

	// Keep the cursor row visible in tall question sets.
	rows := len(s.sess.Questions)
	visible := max(height-8, 3)
	start := 0
	if s.reviewCursor >= visible {
		start = s.reviewCursor - visible + 1
	}
	end := min(start+visible, rows)

	for i := start; i < end; i++ {
		q := s.sess.Questions[i]
		a := s.sess.Answers[i]

		answer := "Not answered"
		if a.Selected != "" {
			answer = a.Selected + ". " + truncate(q.Option(a.Selected), 28)
		}

		line := fmt.Sprintf("%2d. %-34s  %-32s  %-14s  %2ds",
			i+1, truncate(q.Question, 34), answer, confidenceLabel(a.Confidence), a.TimeTaken)

		prefix := "  "
		style := theme.Unselected
		if i == s.reviewCursor {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString("  " + style.Render(prefix+line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	button := components.NewButton("Submit Test", true, nil)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, button.View()))

	return b.String()
}

// renderQuestionBody renders the scenario, question text, and image note.
func (s *ExamScreen) renderQuestionBody(q ex.Question, width int) string {
	var b strings.Builder

	bodyWidth := min(width-8, 76)

	if q.Scenario != "" {
		scenario := lipgloss.NewStyle().
			Width(bodyWidth).
			Foreground(theme.TextDim).
			Italic(true).
			Render(q.Scenario)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, scenario))
		b.WriteString("\n\n")
	}

	question := lipgloss.NewStyle().
		Width(bodyWidth).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Question)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n")

	if q.ImageURL != "" {
		note := theme.Hint.Render("Figure: " + q.ImageURL)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, note))
		b.WriteString("\n")
	}

	return b.String()
}

// renderDialog renders a centered yes/no dialog.
func renderDialog(width, height int, title, detail string) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail))
	b.WriteString("\n\n")
	yes := components.Button{Label: "Yes", Hotkey: "y"}
	no := components.Button{Label: "No", Hotkey: "n"}
	b.WriteString(yes.ViewChoice(theme.Success))
	b.WriteString("   ")
	b.WriteString(no.ViewChoice(theme.Primary))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Popup.Render(b.String()))
}

// confidenceLabel maps a bucket to its review display text. Unrated
// answers display as not specified.
func confidenceLabel(c ex.Confidence) string {
	switch c {
	case ex.ConfidenceVeryConfident:
		return "Very confident"
	case ex.ConfidenceUnsure:
		return "Unsure"
	case ex.ConfidenceDontKnow:
		return "Don't know"
	}
	return "Not specified"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
