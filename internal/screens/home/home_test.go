package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	ex "github.com/prasetya/ujian/internal/exam"
	"github.com/prasetya/ujian/internal/pack"
	"github.com/prasetya/ujian/internal/router"
	examscreen "github.com/prasetya/ujian/internal/screens/exam"
)

// stubSource implements pack.Source for testing.
type stubSource struct {
	pkg *pack.Package
	err error
}

func (s stubSource) Load(_ context.Context, _ string) (*pack.Package, error) {
	return s.pkg, s.err
}

func testPackage() *pack.Package {
	return &pack.Package{
		Version:  pack.PackageVersion,
		TestCode: "TRY-001",
		Questions: []ex.Question{
			{ID: "q1", Question: "First?", OptionA: "one", CorrectAnswer: "A"},
		},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func typeText(h *HomeScreen, s string) {
	for _, r := range s {
		h.Update(keyPress(r))
	}
}

func TestStartRequiresNameAndCode(t *testing.T) {
	h := New(stubSource{pkg: testPackage()}, nil, nil)
	h.Init()

	// Enter walks the empty form, then tries to start.
	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no load command for an empty form")
	}
	if h.errMsg == "" {
		t.Error("expected a validation message")
	}
}

func TestStartLoadsPackageAndPushesExam(t *testing.T) {
	h := New(stubSource{pkg: testPackage()}, nil, nil)
	h.Init()

	typeText(h, "Budi")
	h.Update(tea.KeyPressMsg{Code: tea.KeyTab}) // to participant ID, left blank
	h.Update(tea.KeyPressMsg{Code: tea.KeyTab}) // to test code
	typeText(h, "TRY-001")
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected a load command")
	}
	msg := cmd()
	loaded, ok := msg.(packageLoadedMsg)
	if !ok {
		t.Fatalf("expected packageLoadedMsg, got %T", msg)
	}

	_, cmd = h.Update(loaded)
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*examscreen.ExamScreen); !ok {
		t.Errorf("expected exam screen, got %T", push.Screen)
	}
}

func TestPackageNotFoundShowsMessage(t *testing.T) {
	h := New(stubSource{err: pack.ErrPackageNotFound}, nil, nil)
	h.Init()

	typeText(h, "Budi")
	h.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	h.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(h, "NOPE")
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = h.Update(cmd())

	if cmd != nil {
		t.Error("expected no navigation on failure")
	}
	if h.errMsg != "No test found with that code." {
		t.Errorf("unexpected message %q", h.errMsg)
	}
	if h.loading {
		t.Error("expected loading cleared")
	}
}
