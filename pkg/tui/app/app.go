// Package app wires the board, detail, and assistant components into
// the root Bubble Tea model. All booking mutations route through the
// service here; components only emit requests.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	appsvc "tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/assist"
	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/store"
	"tableflip.dev/rota/pkg/tui/components/assistant"
	"tableflip.dev/rota/pkg/tui/components/bottombar"
	"tableflip.dev/rota/pkg/tui/components/detail"
	"tableflip.dev/rota/pkg/tui/components/grid"
	"tableflip.dev/rota/pkg/tui/events"
	"tableflip.dev/rota/pkg/tui/theme"
)

// DefaultCreateDuration is the span of a booking created from a click
// when the operator does not specify one.
const DefaultCreateDuration = 2 * time.Hour

// Assistant abstracts the external suggestion service so the UI can be
// exercised without the network.
type Assistant interface {
	Suggest(ctx context.Context, prompt string, resources []schedule.Resource, now time.Time) assist.Reply
	Analyze(ctx context.Context, resources []schedule.Resource, bookings []*schedule.Booking) string
}

// focus identifies which pane consumes keyboard input.
type focus int

const (
	focusBoard focus = iota
	focusDetail
	focusAssistant
	focusCreate
)

// internal messages

type bookingsLoadedMsg struct {
	bookings []*schedule.Booking
}

type bookingLoadedMsg struct {
	booking *schedule.Booking
}

type mutationDoneMsg struct {
	status string
	err    error
}

type assistReplyMsg struct {
	reply    assist.Reply
	imported int
}

type analyzeDoneMsg struct {
	text string
}

type watchEventMsg struct {
	ch <-chan store.Event
	ev store.Event
	ok bool
}

// Model is the root TUI model.
type Model struct {
	svc    *appsvc.Service
	client Assistant

	th        theme.Theme
	grid      grid.Model
	detail    detail.Model
	assistant assistant.Model
	footer    bottombar.Model

	focus focus

	createInput  textinput.Model
	createTarget *struct {
		resourceID int
		start      time.Time
	}

	now func() time.Time

	width, height int
}

// New builds the root model over the service.
func New(svc *appsvc.Service, client Assistant) *Model {
	th := theme.Default()

	resources, _ := svc.Resources(context.Background())

	in := textinput.New()
	in.Placeholder = "booking title"
	in.CharLimit = 120
	in.Prompt = "> "

	m := &Model{
		svc:         svc,
		client:      client,
		th:          th,
		grid:        grid.New("grid", th, resources, time.Now()),
		detail:      detail.New("detail", th),
		assistant:   assistant.New("assistant", th),
		footer:      bottombar.New(th.Footer),
		createInput: in,
		now:         time.Now,
	}
	return m
}

// SetClock overrides the wall clock, for tests.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
	m.grid.SetClock(now)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadBookings(), m.startWatch())
}

func (m *Model) loadBookings() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		bs, err := svc.Bookings(context.Background())
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return bookingsLoadedMsg{bookings: bs}
	}
}

func (m *Model) loadBooking(id int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		b, err := svc.Get(context.Background(), id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return bookingLoadedMsg{booking: b}
	}
}

// startWatch subscribes to store change events so edits from other
// processes show up without a manual refresh.
func (m *Model) startWatch() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ch, err := svc.Watch(context.Background())
		if err != nil {
			return nil
		}
		ev, ok := <-ch
		return watchEventMsg{ch: ch, ev: ev, ok: ok}
	}
}

func waitWatch(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return watchEventMsg{ch: ch, ev: ev, ok: ok}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.applySizes()
		return m, nil

	case bookingsLoadedMsg:
		m.grid.SetBookings(msg.bookings)
		return m, nil

	case bookingLoadedMsg:
		m.detail.SetBooking(msg.booking)
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.footer.SetStatus(msg.err.Error(), true)
		} else if msg.status != "" {
			m.footer.SetStatus(msg.status, false)
		}
		cmds := []tea.Cmd{m.loadBookings()}
		if b := m.detail.Booking(); b != nil {
			cmds = append(cmds, m.loadBooking(b.ID))
		}
		return m, tea.Batch(cmds...)

	case assistReplyMsg:
		m.assistant.SetReply(msg.reply.Text)
		if msg.imported > 0 {
			m.footer.SetStatus(fmt.Sprintf("%d booking(s) added", msg.imported), false)
		}
		return m, m.loadBookings()

	case analyzeDoneMsg:
		m.assistant.SetReply(msg.text)
		m.focus = focusAssistant
		m.footer.SetMode(bottombar.ModeAssistant)
		return m, nil

	case watchEventMsg:
		if !msg.ok {
			return m, nil
		}
		cmds := []tea.Cmd{m.loadBookings(), waitWatch(msg.ch)}
		if b := m.detail.Booking(); b != nil && (msg.ev.Type == store.EventStoreInvalidated || msg.ev.BookingID == b.ID) {
			cmds = append(cmds, m.loadBooking(b.ID))
		}
		return m, tea.Batch(cmds...)

	case events.MoveRequestMsg:
		return m, m.moveBooking(msg)

	case events.CreateRequestMsg:
		m.openCreate(msg.ResourceID, msg.Start)
		return m, m.createInput.Focus()

	case events.BookingSelectMsg:
		m.focus = focusDetail
		m.footer.SetMode(bottombar.ModeDetail)
		return m, m.loadBooking(msg.Booking.ID)

	case events.SubAddRequestMsg:
		return m, m.addSub(msg)

	case events.SubRemoveRequestMsg:
		return m, m.removeSub(msg)

	case events.AssistSubmitMsg:
		return m, m.suggest(msg.Prompt)

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg:
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.focus {
	case focusCreate:
		return m.handleCreateKey(msg)

	case focusDetail:
		if msg.String() == "esc" || msg.String() == "q" {
			if m.detail.Mode() == detail.ModeInput {
				break // the pane handles esc itself
			}
			m.focus = focusBoard
			m.footer.SetMode(bottombar.ModeBoard)
			return m, nil
		}

	case focusAssistant:
		if msg.String() == "esc" {
			m.focus = focusBoard
			m.footer.SetMode(bottombar.ModeBoard)
			m.assistant.Blur()
			return m, nil
		}

	case focusBoard:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case ":":
			m.focus = focusAssistant
			m.footer.SetMode(bottombar.ModeAssistant)
			return m, m.assistant.Focus()
		case "A":
			return m, m.analyze()
		}
	}

	// Everything else routes to the focused pane.
	var cmd tea.Cmd
	switch m.focus {
	case focusDetail:
		m.detail, cmd = m.detail.Update(msg)
	case focusAssistant:
		m.assistant, cmd = m.assistant.Update(msg)
	default:
		m.grid, cmd = m.grid.Update(msg)
	}
	return m, cmd
}

func (m *Model) openCreate(resourceID int, start time.Time) {
	m.focus = focusCreate
	m.footer.SetMode(bottombar.ModeCreate)
	m.createInput.Reset()
	m.createTarget = &struct {
		resourceID int
		start      time.Time
	}{resourceID: resourceID, start: start}
}

func (m *Model) handleCreateKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.createTarget = nil
		m.focus = focusBoard
		m.footer.SetMode(bottombar.ModeBoard)
		m.createInput.Blur()
		return m, nil
	case "enter":
		if m.createTarget == nil {
			return m, nil
		}
		target := *m.createTarget
		title := m.createInput.Value()
		if title == "" {
			title = "New Booking"
		}
		m.createTarget = nil
		m.focus = focusBoard
		m.footer.SetMode(bottombar.ModeBoard)
		m.createInput.Blur()

		svc := m.svc
		return m, func() tea.Msg {
			_, err := svc.Create(context.Background(), appsvc.Draft{
				ResourceID: target.resourceID,
				Title:      title,
				Start:      target.start,
				End:        target.start.Add(DefaultCreateDuration),
			})
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{status: fmt.Sprintf("created %q", title)}
		}
	}
	var cmd tea.Cmd
	m.createInput, cmd = m.createInput.Update(msg)
	return m, cmd
}

func (m *Model) moveBooking(msg events.MoveRequestMsg) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Move(context.Background(), msg.Booking.ID, msg.NewStart, msg.ResourceID)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("moved %s to %s", msg.Booking.Label(), msg.NewStart.Format("15:04"))}
	}
}

func (m *Model) addSub(msg events.SubAddRequestMsg) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.AddSub(context.Background(), msg.Booking.ID, msg.Sub)
		if errors.Is(err, appsvc.ErrCapacity) {
			return mutationDoneMsg{err: errors.New("block is at capacity")}
		}
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("added %q", msg.Sub.Title)}
	}
}

func (m *Model) removeSub(msg events.SubRemoveRequestMsg) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if _, err := svc.RemoveSub(context.Background(), msg.Booking.ID, msg.SubID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "entry removed"}
	}
}

// suggest runs the assistant request off the UI loop and imports
// whatever bookings come back.
func (m *Model) suggest(prompt string) tea.Cmd {
	svc, client, now := m.svc, m.client, m.now
	return func() tea.Msg {
		ctx := context.Background()
		resources, err := svc.Resources(ctx)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		reply := client.Suggest(ctx, prompt, resources, now())
		stored, err := svc.Import(ctx, reply.Bookings)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return assistReplyMsg{reply: reply, imported: len(stored)}
	}
}

func (m *Model) analyze() tea.Cmd {
	svc, client := m.svc, m.client
	return func() tea.Msg {
		ctx := context.Background()
		resources, err := svc.Resources(ctx)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		bookings, err := svc.Bookings(ctx)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return analyzeDoneMsg{text: client.Analyze(ctx, resources, bookings)}
	}
}

func (m *Model) applySizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	paneHeight := 8
	m.grid.SetSize(m.width, m.height-paneHeight-1)
	m.detail.SetSize(m.width, paneHeight)
	m.assistant.SetSize(m.width, paneHeight)
	m.footer.SetWidth(m.width)
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{m.grid.View()}

	switch m.focus {
	case focusDetail:
		sections = append(sections, m.detail.View())
	case focusAssistant:
		sections = append(sections, m.assistant.View())
	case focusCreate:
		sections = append(sections, m.createView())
	}

	sections = append(sections, m.footer.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) createView() string {
	th := m.th.Detail
	if m.createTarget == nil {
		return ""
	}
	header := th.Title.Render(fmt.Sprintf("New booking at %s", m.createTarget.start.Format("15:04")))
	return th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.createInput.View()))
}

// Run launches the interactive TUI program.
func Run(svc *appsvc.Service, client Assistant) error {
	p := tea.NewProgram(New(svc, client), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
