package assistant

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/rota/pkg/tui/events"
	"tableflip.dev/rota/pkg/tui/theme"
)

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestSubmitEmitsPromptAndGoesPending(t *testing.T) {
	m := New("assistant", theme.Default())
	m.Focus()
	m.input.SetValue("book a bypass for tomorrow")

	m, cmd := m.Update(enter())
	if cmd == nil {
		t.Fatalf("enter with a prompt should submit")
	}
	msg, ok := cmd().(events.AssistSubmitMsg)
	if !ok {
		t.Fatalf("expected AssistSubmitMsg, got %T", cmd())
	}
	if msg.Prompt != "book a bypass for tomorrow" {
		t.Fatalf("unexpected prompt %q", msg.Prompt)
	}
	if !m.Pending() {
		t.Fatalf("a submitted pane should report pending")
	}
	if m.input.Value() != "" {
		t.Fatalf("the input should clear on submit")
	}
}

func TestEmptyPromptDoesNotSubmit(t *testing.T) {
	m := New("assistant", theme.Default())
	m.input.SetValue("   ")
	m, cmd := m.Update(enter())
	if cmd != nil || m.Pending() {
		t.Fatalf("blank prompts must not submit")
	}
}

func TestSecondSubmitWaitsForReply(t *testing.T) {
	m := New("assistant", theme.Default())
	m.input.SetValue("first")
	m, _ = m.Update(enter())

	m.input.SetValue("second")
	m, cmd := m.Update(enter())
	if cmd != nil {
		t.Fatalf("submits must be refused while a request is in flight")
	}

	m.SetReply("Scheduled.")
	if m.Pending() {
		t.Fatalf("a reply should clear the pending state")
	}
	if m.Reply() != "Scheduled." {
		t.Fatalf("unexpected reply %q", m.Reply())
	}
}
