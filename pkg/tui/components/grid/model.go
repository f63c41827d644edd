// Package grid renders the timeline board: one row band per roster
// lane, a clock header, and the booking blocks, with mouse-driven
// rescheduling and click-to-create.
package grid

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/timeline"
	"tableflip.dev/rota/pkg/tui/events"
	"tableflip.dev/rota/pkg/tui/theme"
)

const (
	// SidebarWidth is the fixed label gutter left of the board.
	SidebarWidth = 24

	// LaneHeight is the number of terminal rows each lane occupies.
	LaneHeight = 2

	headerRows = 1
)

// press records a pointer-down that has not yet become a drag. Whether
// the release turns into a move, a selection, or a create depends on
// whether motion arrived in between.
type press struct {
	x, y      int
	bookingID int // zero when the press landed on empty track
}

// Model is the timeline board component.
type Model struct {
	id events.ComponentID
	th theme.Theme

	axis      timeline.Axis
	resources []schedule.Resource
	lanes     timeline.LaneSet
	bookings  []*schedule.Booking

	category string // active category filter, empty shows all
	selected int    // booking id under keyboard focus

	pending *press
	drag    *timeline.Drag

	now func() time.Time

	width, height int
}

// New builds the board over the given roster, windowed on day.
func New(id events.ComponentID, th theme.Theme, resources []schedule.Resource, day time.Time) Model {
	m := Model{
		id:        id,
		th:        th,
		axis:      timeline.NewAxis(day, 4),
		resources: resources,
		lanes:     timeline.NewLaneSet(resources, LaneHeight),
		now:       time.Now,
	}
	return m
}

// Init implements ui.Component.
func (m Model) Init() tea.Cmd { return nil }

// SetSize implements ui.Component. The hour scale stretches with the
// terminal so the window always spans the full board width.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	cols := width - SidebarWidth
	if cols < timeline.WindowHours {
		cols = timeline.WindowHours
	}
	m.axis.ColsPerHour = float64(cols) / timeline.WindowHours
}

// SetBookings replaces the board's booking snapshot.
func (m *Model) SetBookings(bs []*schedule.Booking) {
	m.bookings = bs
	if m.selected != 0 {
		if b := m.booking(m.selected); b == nil {
			m.selected = 0
		}
	}
}

// SetClock overrides the wall clock, for tests.
func (m *Model) SetClock(now func() time.Time) { m.now = now }

// Axis exposes the active time window.
func (m Model) Axis() timeline.Axis { return m.axis }

// Lanes exposes the visible lane set.
func (m Model) Lanes() timeline.LaneSet { return m.lanes }

// Selected reports the booking id under keyboard focus, zero for none.
func (m Model) Selected() int { return m.selected }

// Category reports the active category filter, empty for all.
func (m Model) Category() string { return m.category }

// Update implements ui.Component.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg.String())
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			m.handlePress(msg.X, msg.Y)
		}
		return m, nil
	case tea.MouseMotionMsg:
		m.handleMotion(msg.X, msg.Y)
		return m, nil
	case tea.MouseReleaseMsg:
		return m.handleRelease()
	}
	return m, nil
}

func (m Model) handleKey(key string) (Model, tea.Cmd) {
	switch key {
	case "h", "left":
		m.axis = m.axis.Prev()
	case "l", "right":
		m.axis = m.axis.Next()
	case "t":
		m.axis = m.axis.Today(m.now())
	case "f":
		m.cycleFilter()
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "enter":
		if b := m.booking(m.selected); b != nil {
			id := m.id
			ref := events.BookingRef{ID: b.ID, Title: b.Title}
			return m, func() tea.Msg {
				return events.BookingSelectMsg{Component: id, Booking: ref}
			}
		}
	}
	return m, nil
}

// cycleFilter rotates through the roster's categories and back to all.
// Filtering rebuilds the lane set so hit-testing and layout stay on the
// same lane list.
func (m *Model) cycleFilter() {
	cats := m.categories()
	if len(cats) == 0 {
		return
	}
	next := ""
	for i, c := range cats {
		if c == m.category {
			if i+1 < len(cats) {
				next = cats[i+1]
			}
			break
		}
		if m.category == "" {
			next = cats[0]
			break
		}
	}
	m.category = next
	if next == "" {
		m.lanes = timeline.NewLaneSet(m.resources, LaneHeight)
		return
	}
	full := timeline.NewLaneSet(m.resources, LaneHeight)
	m.lanes = full.Filter(func(r schedule.Resource) bool {
		return r.Category == next
	})
}

func (m Model) categories() []string {
	seen := make(map[string]bool)
	cats := make([]string, 0)
	for _, r := range m.resources {
		if !seen[r.Category] {
			seen[r.Category] = true
			cats = append(cats, r.Category)
		}
	}
	return cats
}

// moveSelection walks keyboard focus through the visible bookings in
// start order.
func (m *Model) moveSelection(delta int) {
	visible := m.visibleBookings()
	if len(visible) == 0 {
		m.selected = 0
		return
	}
	idx := -1
	for i, b := range visible {
		if b.ID == m.selected {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	m.selected = visible[idx].ID
}

func (m Model) visibleBookings() []*schedule.Booking {
	out := make([]*schedule.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if m.lanes.IndexOf(b.ResourceID) < 0 {
			continue
		}
		if b.End.Time.Before(m.axis.Origin) || !b.Start.Time.Before(m.axis.End()) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (m Model) booking(id int) *schedule.Booking {
	for _, b := range m.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// handlePress records the pointer-down. Nothing is decided yet: the
// same press can end as a drag commit, a selection, or a create.
func (m *Model) handlePress(x, y int) {
	gx, gy := x-SidebarWidth, y-headerRows
	if gx < 0 || gy < 0 {
		m.pending = nil
		return
	}
	p := &press{x: gx, y: gy}
	if b := m.bookingAt(gx, gy); b != nil {
		p.bookingID = b.ID
	}
	m.pending = p
}

// handleMotion promotes a pending press on a block into a drag session
// on the first movement, then feeds the session.
func (m *Model) handleMotion(x, y int) {
	gx, gy := x-SidebarWidth, y-headerRows
	if m.drag == nil {
		if m.pending == nil || m.pending.bookingID == 0 {
			return
		}
		b := m.booking(m.pending.bookingID)
		if b == nil {
			m.pending = nil
			return
		}
		m.drag = timeline.StartDrag(b.ID, m.pending.x, b.Start.Time, b.ResourceID)
	}
	lane, ok := m.lanes.Index(gy)
	laneID := 0
	if ok {
		if r, found := m.lanes.At(lane); found {
			laneID = r.ID
		} else {
			ok = false
		}
	}
	m.drag = m.drag.Track(gx, laneID, ok)
}

// handleRelease resolves the gesture. A drag session, once created,
// always commits; a press that never became one selects its block or
// creates in the slot where the pointer went down.
func (m Model) handleRelease() (Model, tea.Cmd) {
	if m.drag != nil {
		move := m.drag.Commit(m.axis)
		b := m.booking(move.BookingID)
		title := ""
		if b != nil {
			title = b.Title
		}
		cmd := events.MoveRequestCmd(m.id,
			events.BookingRef{ID: move.BookingID, Title: title},
			move.NewStart, move.ResourceID)
		m.drag = nil
		m.pending = nil
		return m, cmd
	}

	if m.pending == nil {
		return m, nil
	}
	p := *m.pending
	m.pending = nil

	if p.bookingID != 0 {
		b := m.booking(p.bookingID)
		if b == nil {
			return m, nil
		}
		m.selected = b.ID
		id := m.id
		ref := events.BookingRef{ID: b.ID, Title: b.Title}
		return m, func() tea.Msg {
			return events.BookingSelectMsg{Component: id, Booking: ref}
		}
	}

	target, ok := timeline.ResolveCreate(m.axis, m.lanes, p.x, p.y)
	if !ok {
		return m, nil
	}
	return m, events.CreateRequestCmd(m.id, target.ResourceID, target.Start)
}

// bookingAt hit-tests the grid position against the visible blocks.
func (m Model) bookingAt(gx, gy int) *schedule.Booking {
	lane, ok := m.lanes.Index(gy)
	if !ok {
		return nil
	}
	r, ok := m.lanes.At(lane)
	if !ok {
		return nil
	}
	t := m.axis.TimeOf(float64(gx))
	for _, b := range m.bookings {
		if b.ResourceID != r.ID {
			continue
		}
		if !t.Before(b.Start.Time) && t.Before(b.End.Time) {
			return b
		}
	}
	return nil
}

// View implements ui.Component.
func (m Model) View() string {
	cols := int(m.axis.Width())
	if cols <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.header(cols))
	sb.WriteString("\n")

	for i := 0; i < m.lanes.Len(); i++ {
		r, _ := m.lanes.At(i)
		for row := 0; row < LaneHeight; row++ {
			sb.WriteString(m.laneRow(i, r, row, cols))
			if i < m.lanes.Len()-1 || row < LaneHeight-1 {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func (m Model) header(cols int) string {
	line := make([]rune, cols)
	for i := range line {
		line[i] = ' '
	}
	// Hour labels are five cells wide; skip marks until consecutive
	// labels cannot collide at the current scale.
	stride := 1
	for float64(stride)*m.axis.ColsPerHour < 6 {
		stride++
	}
	for i, h := range m.axis.Hours() {
		if i%stride != 0 {
			continue
		}
		col := int(m.axis.PixelOf(h))
		label := []rune(h.Format("15:04"))
		if col < 0 || col+len(label) > cols {
			continue
		}
		copy(line[col:], label)
	}
	gutter := strings.Repeat(" ", SidebarWidth)
	return gutter + m.th.Grid.Header.Render(string(line))
}

// laneRow renders one terminal row of one lane: gutter cell plus the
// track with any blocks that cross this lane.
func (m Model) laneRow(lane int, r schedule.Resource, row int, cols int) string {
	gutter := strings.Repeat(" ", SidebarWidth)
	switch row {
	case 0:
		gutter = m.th.Grid.Sidebar.Render(pad(r.Label, SidebarWidth))
	case 1:
		gutter = m.th.Grid.SidebarCat.Render(pad("  "+r.Category, SidebarWidth))
	}

	laneStyle := m.th.Grid.LaneEven
	if lane%2 == 1 {
		laneStyle = m.th.Grid.LaneOdd
	}

	type span struct {
		from, to int // column range, to exclusive
		text     string
		style    lipgloss.Style
	}
	spans := make([]span, 0)
	for _, b := range m.bookings {
		if b.ResourceID != r.ID {
			continue
		}
		if m.drag != nil && m.drag.BookingID == b.ID {
			continue // rendered as the preview instead
		}
		from := int(m.axis.PixelOf(b.Start.Time))
		to := int(m.axis.PixelOf(b.End.Time))
		if to <= 0 || from >= cols {
			continue
		}
		spans = append(spans, span{
			from:  clamp(from, 0, cols),
			to:    clamp(to, 0, cols),
			text:  m.blockText(b, row, clamp(to, 0, cols)-clamp(from, 0, cols)),
			style: m.blockStyle(b),
		})
	}

	// The dragged block previews in its current lane at the tracked
	// offset; commit geometry is computed from the session, not here.
	if m.drag != nil && m.drag.CurrentLane == r.ID {
		if b := m.booking(m.drag.BookingID); b != nil {
			from := int(m.axis.PixelOf(b.Start.Time)) + m.drag.PreviewOffset()
			to := from + int(m.axis.PixelOf(b.End.Time)-m.axis.PixelOf(b.Start.Time))
			if to > 0 && from < cols {
				spans = append(spans, span{
					from:  clamp(from, 0, cols),
					to:    clamp(to, 0, cols),
					text:  m.blockText(b, row, clamp(to, 0, cols)-clamp(from, 0, cols)),
					style: m.th.Grid.BlockDrag,
				})
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].from < spans[j].from })

	var sb strings.Builder
	sb.WriteString(gutter)
	cursor := 0
	for _, s := range spans {
		if s.from < cursor {
			continue // overlapping block, first one wins the cells
		}
		if s.from > cursor {
			sb.WriteString(laneStyle.Render(strings.Repeat("·", s.from-cursor)))
		}
		sb.WriteString(s.style.Render(pad(s.text, s.to-s.from)))
		cursor = s.to
	}
	if cursor < cols {
		sb.WriteString(laneStyle.Render(strings.Repeat("·", cols-cursor)))
	}
	return sb.String()
}

// blockText picks the label for one row of a block.
func (m Model) blockText(b *schedule.Booking, row, width int) string {
	if width <= 0 {
		return ""
	}
	switch row {
	case 0:
		text := b.Title
		if badge := b.Badge(); badge != "" {
			text = fmt.Sprintf("%s %s", text, badge)
		}
		if m.selected == b.ID {
			text = "▸" + text
		}
		return truncate(text, width)
	case 1:
		span := fmt.Sprintf("%s-%s", b.Start.Clock(), b.End.Clock())
		if b.Room != "" {
			span = span + " " + b.Room
		}
		return truncate(span, width)
	}
	return ""
}

func (m Model) blockStyle(b *schedule.Booking) lipgloss.Style {
	if b.Full() {
		return m.th.Grid.BlockFull
	}
	return theme.BlockStyle(b.Style)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
