package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prasetya/ujian/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for the right-hand side of the
// header, e.g. the logged-in name and test code.
type StatusProvider interface {
	Status() string
}

// EscInterceptor is an optional interface for screens that want the Esc
// key delivered to them instead of popping the navigation stack.
type EscInterceptor interface {
	InterceptEsc() bool
}
