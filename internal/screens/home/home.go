// Package home is the entry screen: the participant identifies
// themselves, enters a test code, and starts the exam.
package home

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/prasetya/ujian/internal/pack"
	"github.com/prasetya/ujian/internal/router"
	"github.com/prasetya/ujian/internal/screen"
	"github.com/prasetya/ujian/internal/screens/exam"
	"github.com/prasetya/ujian/internal/store"
	"github.com/prasetya/ujian/internal/ui/components"
	"github.com/prasetya/ujian/internal/ui/layout"
	"github.com/prasetya/ujian/internal/ui/theme"
)

const (
	fieldName = iota
	fieldUserID
	fieldTestCode
	fieldCount
)

// packageLoadedMsg is sent when the question package fetch finishes.
type packageLoadedMsg struct {
	Pkg *pack.Package
	Err error
}

// HomeScreen is the start screen of the application.
type HomeScreen struct {
	source    pack.Source
	submitter store.Submitter
	finder    store.Finder

	inputs  [fieldCount]components.TextInput
	focus   int
	loading bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen over the given boundaries.
func New(source pack.Source, submitter store.Submitter, finder store.Finder) *HomeScreen {
	h := &HomeScreen{
		source:    source,
		submitter: submitter,
		finder:    finder,
	}
	h.inputs[fieldName] = components.NewTextInput("Name", "Your full name", 64)
	h.inputs[fieldUserID] = components.NewTextInput("Participant ID (optional)", "Leave blank to generate one", 64)
	h.inputs[fieldTestCode] = components.NewTextInput("Test code", "e.g. TRY-001", 32)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.inputs[h.focus].Focus()
}

func (h *HomeScreen) Title() string {
	return "Start"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Start test"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case packageLoadedMsg:
		return h.handleLoaded(msg)

	case tea.KeyMsg:
		if h.loading {
			return h, nil
		}
		switch msg.String() {
		case "tab", "down":
			return h, h.setFocus((h.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return h, h.setFocus((h.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if h.focus < fieldTestCode {
				return h, h.setFocus(h.focus + 1)
			}
			return h, h.start()
		}
	}

	var cmd tea.Cmd
	h.inputs[h.focus], cmd = h.inputs[h.focus].Update(msg)
	return h, cmd
}

func (h *HomeScreen) setFocus(i int) tea.Cmd {
	h.inputs[h.focus].Blur()
	h.focus = i
	return h.inputs[h.focus].Focus()
}

// start validates the form and kicks off the package fetch.
func (h *HomeScreen) start() tea.Cmd {
	name := strings.TrimSpace(h.inputs[fieldName].Value())
	code := strings.TrimSpace(h.inputs[fieldTestCode].Value())

	h.inputs[fieldName].Submit(name != "")
	h.inputs[fieldTestCode].Submit(code != "")
	if name == "" || code == "" {
		h.errMsg = "Name and test code are required."
		return nil
	}

	h.errMsg = ""
	h.loading = true
	source := h.source
	return func() tea.Msg {
		pkg, err := source.Load(context.Background(), code)
		return packageLoadedMsg{Pkg: pkg, Err: err}
	}
}

func (h *HomeScreen) handleLoaded(msg packageLoadedMsg) (screen.Screen, tea.Cmd) {
	h.loading = false
	if msg.Err != nil {
		if errors.Is(msg.Err, pack.ErrPackageNotFound) {
			h.errMsg = "No test found with that code."
		} else {
			h.errMsg = msg.Err.Error()
		}
		return h, nil
	}

	name := strings.TrimSpace(h.inputs[fieldName].Value())
	userID := strings.TrimSpace(h.inputs[fieldUserID].Value())
	if userID == "" {
		userID = uuid.New().String()
	}

	examScreen, err := exam.New(h.submitter, h.finder, msg.Pkg, userID, name)
	if err != nil {
		h.errMsg = err.Error()
		return h, nil
	}

	return h, func() tea.Msg {
		return router.PushScreenMsg{Screen: examScreen}
	}
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("Ujian"))
	sections = append(sections, theme.Subtitle.Width(width).Render("Timed multiple-choice tryouts in your terminal"))
	sections = append(sections, "")

	var form strings.Builder
	for i := range h.inputs {
		form.WriteString(h.inputs[i].View())
		if i < fieldCount-1 {
			form.WriteString("\n\n")
		}
	}
	card := theme.Card.Render(form.String())
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	if h.loading {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Loading questions..."))
	}

	if h.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(h.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
