// Package results shows the stored outcome of a submitted test: the
// score summary, the confidence breakdown, and per-question detail.
package results

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	ex "github.com/prasetya/ujian/internal/exam"
	"github.com/prasetya/ujian/internal/pack"
	"github.com/prasetya/ujian/internal/screen"
	"github.com/prasetya/ujian/internal/store"
	"github.com/prasetya/ujian/internal/ui/layout"
	"github.com/prasetya/ujian/internal/ui/theme"
)

// resultMsg is sent when the stored result fetch resolves.
type resultMsg struct {
	Rec ex.ResultRecord
	Err error
}

// ResultsScreen implements screen.Screen for the post-submission recap.
type ResultsScreen struct {
	finder   store.Finder
	pkg      *pack.Package
	userID   string
	userName string
	answers  []ex.Answer

	rec    ex.ResultRecord
	loaded bool
	errMsg string
	cursor int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)

// New creates a results screen. The answers are the just-submitted set,
// used for the per-question detail; the headline numbers come from the
// store so the screen shows what was actually persisted.
func New(finder store.Finder, pkg *pack.Package, userID, userName string, answers []ex.Answer) *ResultsScreen {
	return &ResultsScreen{
		finder:   finder,
		pkg:      pkg,
		userID:   userID,
		userName: userName,
		answers:  answers,
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return r.fetch()
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) Status() string {
	return r.userName + " · " + r.pkg.TestCode
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	if r.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse answers"},
		{Key: "Esc", Description: "Back to start"},
	}
}

func (r *ResultsScreen) fetch() tea.Cmd {
	finder := r.finder
	testCode := r.pkg.TestCode
	userID := r.userID
	return func() tea.Msg {
		rec, err := finder.FindResult(context.Background(), testCode, userID)
		return resultMsg{Rec: rec, Err: err}
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, store.ErrResultNotFound) {
				r.errMsg = "No results found for this user and test code."
			} else {
				r.errMsg = msg.Err.Error()
			}
			return r, nil
		}
		r.rec = msg.Rec
		r.loaded = true
		r.errMsg = ""
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "R":
			if r.errMsg != "" {
				r.errMsg = ""
				return r, r.fetch()
			}
		case "up", "k":
			if r.cursor > 0 {
				r.cursor--
			}
		case "down", "j":
			if r.cursor < len(r.pkg.Questions)-1 {
				r.cursor++
			}
		}
	}

	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	if r.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(r.errMsg)+
				"\n\n"+theme.Hint.Render("Press R to retry"))
	}
	if !r.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Fetching your result..."))
	}

	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("Score: %.2f", r.rec.Score)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%d of %d correct", r.rec.CorrectAnswers, r.rec.TotalQuestions)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, r.renderBuckets()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("  " + strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")
	b.WriteString(r.renderDetails(width, height))

	return b.String()
}

// renderBuckets renders the confidence breakdown. The three rated buckets
// are shown as a card; unrated answers get a single line underneath.
func (r *ResultsScreen) renderBuckets() string {
	c := r.rec.ConfidenceCounts

	row := func(label string, n int) string {
		return fmt.Sprintf("%-16s %3d", label, n)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Confidence"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(row("Very confident", c.VeryConfident)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(row("Unsure", c.Unsure)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(row("Don't know", c.DontKnow)))

	card := theme.Card.Render(b.String())
	if c.NotSpecified > 0 {
		card += "\n" + theme.Hint.Render(fmt.Sprintf("%d answer(s) without a rating", c.NotSpecified))
	}
	return card
}

// renderDetails renders the scrollable per-question rows.
func (r *ResultsScreen) renderDetails(width, height int) string {
	if len(r.answers) != len(r.pkg.Questions) {
		return ""
	}

	var b strings.Builder

	visible := max(height-14, 3)
	start := 0
	if r.cursor >= visible {
		start = r.cursor - visible + 1
	}
	end := min(start+visible, len(r.pkg.Questions))

	for i := start; i < end; i++ {
		q := r.pkg.Questions[i]
		a := r.answers[i]

		verdict := theme.Incorrect.Render("✗")
		if a.Selected == q.CorrectAnswer {
			verdict = theme.Correct.Render("✓")
		}

		answer := "Not answered"
		if a.Selected != "" {
			answer = a.Selected
		}

		line := fmt.Sprintf("%2d. %-40s  yours: %-12s  correct: %s  %2ds",
			i+1, truncate(q.Question, 40), answer, q.CorrectAnswer, a.TimeTaken)

		style := theme.Unselected
		prefix := "  "
		if i == r.cursor {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString("  " + prefix + style.Render(line) + "  " + verdict)
		b.WriteString("\n")
	}

	return b.String()
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
