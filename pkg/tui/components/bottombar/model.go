package bottombar

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/rota/pkg/tui/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeBoard Mode = iota
	ModeDetail
	ModeAssistant
	ModeCreate
)

// Model tracks footer/help/status rendering state.
type Model struct {
	th theme.FooterTheme

	mode       Mode
	statusLine string
	statusErr  bool
	width      int
}

// New returns a footer model with sensible defaults.
func New(th theme.FooterTheme) Model {
	return Model{th: th}
}

// SetMode updates the visual mode, which picks the help line.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
}

// Mode exposes the current mode.
func (m Model) Mode() Mode { return m.mode }

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string, isError bool) {
	m.statusLine = status
	m.statusErr = isError
}

// Status exposes the current status line and whether it is an error.
func (m Model) Status() (string, bool) {
	return m.statusLine, m.statusErr
}

// SetWidth configures the footer width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) helpLine() string {
	switch m.mode {
	case ModeDetail:
		return "j/k entries · a add · d remove · esc back · q quit"
	case ModeAssistant:
		return "enter send · esc back · q quit"
	case ModeCreate:
		return "enter create · esc cancel"
	default:
		return "h/l window · t today · f filter · j/k select · enter open · : assistant · A analyze · q quit"
	}
}

// View renders the footer: help on the left, status on the right.
func (m Model) View() string {
	help := m.th.Help.Render(m.helpLine())

	status := ""
	if m.statusLine != "" {
		if m.statusErr {
			status = m.th.Error.Render(m.statusLine)
		} else {
			status = m.th.Status.Render(m.statusLine)
		}
	}

	gap := m.width - ansi.PrintableRuneWidth(help) - ansi.PrintableRuneWidth(status)
	if gap < 1 {
		return lipgloss.JoinHorizontal(lipgloss.Top, help, " ", status)
	}
	return help + strings.Repeat(" ", gap) + status
}
