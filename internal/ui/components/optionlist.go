package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prasetya/ujian/internal/ui/theme"
)

// Option is one selectable answer with its letter label.
type Option struct {
	Label string
	Text  string
}

// OptionList is the five-option answer selector. Picking an option keeps
// it marked; the choice can be changed any number of times before moving
// on.
type OptionList struct {
	Options []Option
	Cursor  int
	Picked  string // label of the chosen option, "" when none
}

// NewOptionList creates an option list with nothing picked.
func NewOptionList(options []Option) OptionList {
	return OptionList{Options: options}
}

// Reset clears the cursor and pick for a new question.
func (o OptionList) Reset(options []Option) OptionList {
	return OptionList{Options: options}
}

// Update handles keyboard navigation and picking. The caller reads Picked
// after the update to see the current choice.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter", " ":
		if o.Cursor >= 0 && o.Cursor < len(o.Options) {
			o.Picked = o.Options[o.Cursor].Label
		}
	default:
		// Direct letter pick.
		for i, opt := range o.Options {
			if strings.EqualFold(key, opt.Label) {
				o.Cursor = i
				o.Picked = opt.Label
				break
			}
		}
	}

	return o, nil
}

// View renders the option list.
func (o OptionList) View(width int) string {
	var b strings.Builder
	for i, opt := range o.Options {
		marker := "( )"
		if opt.Label == o.Picked {
			marker = "(●)"
		}
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s %s. %s", prefix, marker, opt.Label, opt.Text)
		if width > 4 {
			line = lipgloss.NewStyle().Width(width - 2).Render(line)
		}

		switch {
		case opt.Label == o.Picked:
			b.WriteString(theme.Selected.Render(line))
		case i == o.Cursor:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
