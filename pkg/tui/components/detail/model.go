// Package detail renders the selected booking and manages its
// sub-bookings: a cursor over the entries, an input row for new ones,
// and the capacity gate that refuses additions on full containers.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/google/uuid"

	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/tui/events"
	"tableflip.dev/rota/pkg/tui/theme"
)

// Mode identifies the pane's operating state.
type Mode int

const (
	// ModeBrowse walks the sub-booking cursor.
	ModeBrowse Mode = iota
	// ModeInput collects a new sub-booking.
	ModeInput
)

// Model is the booking detail pane.
type Model struct {
	id events.ComponentID
	th theme.Theme

	booking *schedule.Booking
	cursor  int
	mode    Mode
	input   textinput.Model
	warning string

	width, height int
}

// New builds an empty detail pane.
func New(id events.ComponentID, th theme.Theme) Model {
	in := textinput.New()
	in.Placeholder = "operation; patient; 09:30-10:15; OR-1; notes"
	in.CharLimit = 160
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

// SetBooking replaces the displayed booking. A nil booking empties the
// pane; a refreshed copy of the same booking keeps the cursor stable.
func (m *Model) SetBooking(b *schedule.Booking) {
	sameBooking := b != nil && m.booking != nil && b.ID == m.booking.ID
	m.booking = b
	m.warning = ""
	if !sameBooking {
		m.cursor = 0
		m.mode = ModeBrowse
		m.input.Reset()
		m.input.Blur()
	}
	if b != nil && m.cursor >= len(b.Subs) {
		m.cursor = len(b.Subs) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
}

// Booking exposes the displayed booking.
func (m Model) Booking() *schedule.Booking { return m.booking }

// Mode exposes the pane's operating state.
func (m Model) Mode() Mode { return m.mode }

// Warning exposes the current refusal message, empty when clear.
func (m Model) Warning() string { return m.warning }

// Update implements ui.Component.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.booking == nil {
		return m, nil
	}

	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	if m.mode == ModeInput {
		return m.updateInput(key)
	}

	switch key.String() {
	case "j", "down":
		if m.cursor < len(m.booking.Subs)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		// The affordance is disabled the moment the ceiling is hit,
		// so the refusal happens here and not at the store.
		if m.booking.Container && len(m.booking.Subs) >= m.booking.Capacity {
			m.warning = "This block is at capacity."
			return m, nil
		}
		m.mode = ModeInput
		m.warning = ""
		m.input.Reset()
		return m, m.input.Focus()
	case "d", "backspace":
		if len(m.booking.Subs) == 0 {
			return m, nil
		}
		sub := m.booking.Subs[m.cursor]
		return m, events.SubRemoveRequestCmd(m.id, m.ref(), sub.ID)
	}
	return m, nil
}

func (m Model) updateInput(key tea.KeyPressMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = ModeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		sub, ok := parseSub(m.input.Value())
		if !ok {
			m.warning = "A title is required."
			return m, nil
		}
		m.mode = ModeBrowse
		m.input.Blur()
		return m, events.SubAddRequestCmd(m.id, m.ref(), sub)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) ref() events.BookingRef {
	return events.BookingRef{ID: m.booking.ID, Title: m.booking.Title}
}

// parseSub reads the semicolon form "title; patient; time; room; note".
// Only the title is required.
func parseSub(raw string) (schedule.SubBooking, bool) {
	parts := strings.Split(raw, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" {
		return schedule.SubBooking{}, false
	}
	sub := schedule.SubBooking{
		ID:    uuid.NewString(),
		Title: parts[0],
	}
	if len(parts) > 1 {
		sub.Patient = parts[1]
	}
	if len(parts) > 2 {
		sub.When = schedule.ParseTimeSpec(parts[2])
	}
	if len(parts) > 3 {
		sub.Room = parts[3]
	}
	if len(parts) > 4 {
		sub.Note = parts[4]
	}
	return sub, true
}

// View implements ui.Component.
func (m Model) View() string {
	th := m.th.Detail
	if m.booking == nil {
		return th.Frame.Render(th.Label.Render("No booking selected."))
	}

	b := m.booking
	title := b.Title
	if badge := b.Badge(); badge != "" {
		title = fmt.Sprintf("%s  %s", title, badge)
	}

	lines := []string{
		th.Title.Render(title),
		th.Label.Render("when  ") + th.Value.Render(fmt.Sprintf("%s  %s to %s", b.Start.Local().Format("Mon Jan 2"), b.Start.Clock(), b.End.Clock())),
	}
	if b.Room != "" {
		lines = append(lines, th.Label.Render("room  ")+th.Value.Render(b.Room))
	}
	if b.Note != "" {
		lines = append(lines, th.Label.Render("note  ")+th.Value.Render(b.Note))
	}

	if b.Container {
		lines = append(lines, "")
		for i, s := range b.Subs {
			row := renderSub(s)
			if i == m.cursor && m.mode == ModeBrowse {
				row = th.SubFocus.Render(row)
			} else {
				row = th.SubRow.Render(row)
			}
			lines = append(lines, row)
		}
		if len(b.Subs) == 0 {
			lines = append(lines, th.Label.Render("no entries yet"))
		}
	}

	if m.mode == ModeInput {
		lines = append(lines, "", m.input.View())
	}
	if m.warning != "" {
		lines = append(lines, "", th.Warning.Render(m.warning))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.width > 0 {
		content = lipgloss.NewStyle().Width(m.width - 4).Render(content)
	}
	return th.Frame.Render(content)
}

func renderSub(s schedule.SubBooking) string {
	var sb strings.Builder
	sb.WriteString(s.Title)
	if s.Patient != "" {
		sb.WriteString("  " + s.Patient)
	}
	if !s.When.IsZero() {
		sb.WriteString("  " + s.When.String())
	}
	if s.Room != "" {
		sb.WriteString("  " + s.Room)
	}
	return sb.String()
}
