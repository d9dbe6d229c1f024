package components

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prasetya/ujian/internal/ui/theme"
)

// Button is a keyboard-driven action control. Active buttons respond to
// Enter, and to their hotkey when one is set.
type Button struct {
	Label   string
	Hotkey  string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button without a hotkey.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active || b.OnPress == nil {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if key == "enter" || (b.Hotkey != "" && strings.EqualFold(key, b.Hotkey)) {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the standalone block form of the button.
func (b Button) View() string {
	label := " " + b.Label + " "
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ViewChoice renders the compact dialog form, "[Y] Yes", in fg.
func (b Button) ViewChoice(fg color.Color) string {
	label := b.Label
	if b.Hotkey != "" {
		label = "[" + strings.ToUpper(b.Hotkey) + "] " + label
	}
	return lipgloss.NewStyle().Foreground(fg).Render(label)
}
