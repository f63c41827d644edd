// Package assistant is the natural-language prompt pane: one input,
// the last reply, and a pending indicator while a request is in
// flight. The pane never talks to the network itself; it emits submit
// events and receives replies from the app.
package assistant

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/rota/pkg/tui/events"
	"tableflip.dev/rota/pkg/tui/theme"
)

// Model is the assistant prompt pane.
type Model struct {
	id events.ComponentID
	th theme.Theme

	input   textinput.Model
	reply   string
	pending bool

	width, height int
}

// New builds the pane.
func New(id events.ComponentID, th theme.Theme) Model {
	in := textinput.New()
	in.Placeholder = "book a coronary bypass tomorrow morning"
	in.CharLimit = 240
	in.Prompt = "> "
	return Model{id: id, th: th, input: in}
}

// Init implements ui.Component.
func (m Model) Init() tea.Cmd { return nil }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 6)
}

// Focus activates the input.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

// Blur deactivates the input.
func (m *Model) Blur() { m.input.Blur() }

// Pending reports whether a request is in flight.
func (m Model) Pending() bool { return m.pending }

// Reply exposes the last reply text.
func (m Model) Reply() string { return m.reply }

// SetReply records the assistant's answer and clears the pending state.
func (m *Model) SetReply(text string) {
	m.reply = text
	m.pending = false
}

// Update implements ui.Component.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "enter":
		if m.pending {
			return m, nil
		}
		prompt := strings.TrimSpace(m.input.Value())
		if prompt == "" {
			return m, nil
		}
		m.pending = true
		m.reply = ""
		m.input.Reset()
		return m, events.AssistSubmitCmd(m.id, prompt)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// View implements ui.Component.
func (m Model) View() string {
	th := m.th.Assistant
	lines := []string{
		th.Title.Render("Assistant"),
		m.input.View(),
	}
	switch {
	case m.pending:
		lines = append(lines, th.Pending.Render("thinking…"))
	case m.reply != "":
		lines = append(lines, th.Reply.Render(m.reply))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.width > 0 {
		content = lipgloss.NewStyle().Width(m.width - 4).Render(content)
	}
	return th.Frame.Render(content)
}
