package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prasetya/ujian/internal/ui/theme"
)

// ConfidencePicker is the rating popup body: a short list of certainty
// levels with a countdown. The screen owning it decides what happens on
// pick and on timeout.
type ConfidencePicker struct {
	Choices []string
	Cursor  int
}

// NewConfidencePicker creates a picker over the given choice labels.
func NewConfidencePicker(choices []string) ConfidencePicker {
	return ConfidencePicker{Choices: choices}
}

// Update moves the cursor. Picking is detected by the caller via PickIndex.
func (c ConfidencePicker) Update(msg tea.Msg) (ConfidencePicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Choices)-1 {
			c.Cursor++
		}
	}
	return c, nil
}

// PickIndex maps a key to a choice index: number keys pick directly,
// enter picks the cursor row. Returns -1 when the key picks nothing.
func (c ConfidencePicker) PickIndex(key string) int {
	switch key {
	case "enter":
		return c.Cursor
	case "1", "2", "3", "4", "5":
		i := int(key[0] - '1')
		if i < len(c.Choices) {
			return i
		}
	}
	return -1
}

// View renders the popup card with the seconds remaining.
func (c ConfidencePicker) View(secondsLeft int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("How sure are you of this answer?"))
	b.WriteString("\n\n")

	for i, choice := range c.Choices {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s", prefix, i+1, choice)
		if i == c.Cursor {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	countdown := fmt.Sprintf("%ds left", secondsLeft)
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if secondsLeft <= 3 {
		style = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	}
	b.WriteString(style.Render(countdown))

	return theme.Popup.Render(b.String())
}
