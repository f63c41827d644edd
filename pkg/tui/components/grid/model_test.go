package grid

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/tui/events"
	"tableflip.dev/rota/pkg/tui/theme"
)

func testDay() time.Time {
	return time.Date(2026, time.March, 3, 0, 0, 0, 0, time.Local)
}

func testRoster() []schedule.Resource {
	return []schedule.Resource{
		{ID: 1, Label: "Dr. Arben Kodra", Category: "General Surgery", Style: "#2563eb"},
		{ID: 2, Label: "Dr. Ilir Dervishi", Category: "Cardiology", Style: "#dc2626"},
		{ID: 3, Label: "Dr. Gentiana Hoxha", Category: "Neurology", Style: "#9333ea"},
		{ID: 4, Label: "Dr. Marco Bellini", Category: "General Surgery", Style: "#0891b2"},
	}
}

// testModel builds a board at 4 columns per hour: one column is one
// 15 minute cell, so drag arithmetic stays readable in the tests.
func testModel(bookings ...*schedule.Booking) Model {
	m := New("grid", theme.Default(), testRoster(), testDay())
	m.SetSize(SidebarWidth+64, 20)
	m.SetBookings(bookings)
	return m
}

func origin() time.Time {
	return time.Date(2026, time.March, 3, 8, 0, 0, 0, time.Local)
}

func key(s string) tea.KeyPressMsg {
	if len(s) == 1 {
		return tea.KeyPressMsg{Text: s, Code: rune(s[0])}
	}
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	return tea.KeyPressMsg{}
}

func TestWindowNavigation(t *testing.T) {
	m := testModel()

	m, _ = m.Update(key("l"))
	if want := origin().Add(4 * time.Hour); !m.Axis().Origin.Equal(want) {
		t.Fatalf("next should step 4h, got %v", m.Axis().Origin)
	}
	m, _ = m.Update(key("h"))
	m, _ = m.Update(key("h"))
	if want := origin().Add(-4 * time.Hour); !m.Axis().Origin.Equal(want) {
		t.Fatalf("prev should step back 4h, got %v", m.Axis().Origin)
	}

	m.SetClock(func() time.Time {
		return time.Date(2026, time.March, 5, 14, 30, 0, 0, time.Local)
	})
	m, _ = m.Update(key("t"))
	if want := time.Date(2026, time.March, 5, 8, 0, 0, 0, time.Local); !m.Axis().Origin.Equal(want) {
		t.Fatalf("today should re-anchor at 08:00, got %v", m.Axis().Origin)
	}
}

func TestClickOnEmptyTrackRequestsCreate(t *testing.T) {
	m := testModel()

	// Column 5 at 4 cols/h is 09:15, which snaps up to 09:30. Row 0 is
	// the first lane.
	x, y := SidebarWidth+5, headerRows+0
	m, _ = m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m, cmd := m.Update(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	if cmd == nil {
		t.Fatalf("release without motion on empty track must request a create")
	}

	msg, ok := cmd().(events.CreateRequestMsg)
	if !ok {
		t.Fatalf("expected CreateRequestMsg, got %T", cmd())
	}
	if msg.ResourceID != 1 {
		t.Fatalf("expected lane 1, got %d", msg.ResourceID)
	}
	if want := origin().Add(time.Hour + 30*time.Minute); !msg.Start.Equal(want) {
		t.Fatalf("09:15 click should snap to 09:30, got %v", msg.Start.Format("15:04"))
	}
}

func TestCreateResolvesFromPressPosition(t *testing.T) {
	m := testModel()

	// Press at 09:15 on the first lane, then let the pointer wander
	// before releasing. No block means no drag session, so the create
	// fires from where the pointer went down, not where it came up.
	x, y := SidebarWidth+5, headerRows+0
	m, _ = m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m, _ = m.Update(tea.MouseMotionMsg{X: x + 20, Y: y + 4})
	m, cmd := m.Update(tea.MouseReleaseMsg{X: x + 20, Y: y + 4, Button: tea.MouseLeft})
	if cmd == nil {
		t.Fatalf("an empty-track press must still request a create")
	}

	msg, ok := cmd().(events.CreateRequestMsg)
	if !ok {
		t.Fatalf("expected CreateRequestMsg, got %T", cmd())
	}
	if msg.ResourceID != 1 {
		t.Fatalf("create should use the pressed lane, got %d", msg.ResourceID)
	}
	if want := origin().Add(time.Hour + 30*time.Minute); !msg.Start.Equal(want) {
		t.Fatalf("create should snap the pressed time, got %v", msg.Start.Format("15:04"))
	}
}

func TestClickOnBlockSelects(t *testing.T) {
	b := schedule.New(1, "Hip Replacement", origin().Add(time.Hour), origin().Add(3*time.Hour))
	b.ID = 7
	m := testModel(b)

	// 09:30 is column 6; the block spans 09:00 to 11:00.
	x, y := SidebarWidth+6, headerRows+0
	m, _ = m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m, cmd := m.Update(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	if cmd == nil {
		t.Fatalf("release without motion on a block must select it")
	}

	msg, ok := cmd().(events.BookingSelectMsg)
	if !ok {
		t.Fatalf("expected BookingSelectMsg, got %T", cmd())
	}
	if msg.Booking.ID != 7 {
		t.Fatalf("expected booking 7, got %d", msg.Booking.ID)
	}
	if m.Selected() != 7 {
		t.Fatalf("selection should stick on the board")
	}
}

func TestDragCommitsMoveWithFloorSnap(t *testing.T) {
	b := schedule.New(1, "Hip Replacement", origin().Add(time.Hour), origin().Add(3*time.Hour))
	b.ID = 7
	m := testModel(b)

	// Press at 09:30 on lane 1, drag 9 columns right (2h15m) and two
	// rows down into lane 2.
	x, y := SidebarWidth+6, headerRows+0
	m, _ = m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m, _ = m.Update(tea.MouseMotionMsg{X: x + 4, Y: y})
	m, _ = m.Update(tea.MouseMotionMsg{X: x + 9, Y: y + 2})
	m, cmd := m.Update(tea.MouseReleaseMsg{X: x + 9, Y: y + 2, Button: tea.MouseLeft})
	if cmd == nil {
		t.Fatalf("a drag session must commit on release")
	}

	msg, ok := cmd().(events.MoveRequestMsg)
	if !ok {
		t.Fatalf("expected MoveRequestMsg, got %T", cmd())
	}
	if msg.Booking.ID != 7 {
		t.Fatalf("expected booking 7, got %d", msg.Booking.ID)
	}
	// 9 columns is 2h15m from the original 09:00 start: 11:15, already
	// on the 15 minute grid.
	if want := origin().Add(3*time.Hour + 15*time.Minute); !msg.NewStart.Equal(want) {
		t.Fatalf("expected 11:15, got %v", msg.NewStart.Format("15:04"))
	}
	if msg.ResourceID != 2 {
		t.Fatalf("drop lane should win, got %d", msg.ResourceID)
	}
}

func TestDragNeverTurnsIntoCreate(t *testing.T) {
	b := schedule.New(1, "Hip Replacement", origin().Add(time.Hour), origin().Add(3*time.Hour))
	b.ID = 7
	m := testModel(b)

	// Wander off the lanes entirely before releasing: still a move.
	x, y := SidebarWidth+6, headerRows+0
	m, _ = m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m, _ = m.Update(tea.MouseMotionMsg{X: x + 2, Y: y + 50})
	m, cmd := m.Update(tea.MouseReleaseMsg{X: x + 2, Y: y + 50, Button: tea.MouseLeft})
	if cmd == nil {
		t.Fatalf("expected a move commit")
	}
	msg, ok := cmd().(events.MoveRequestMsg)
	if !ok {
		t.Fatalf("expected MoveRequestMsg, got %T", cmd())
	}
	if msg.ResourceID != 1 {
		t.Fatalf("invalid drop rows keep the last valid lane, got %d", msg.ResourceID)
	}
}

func TestFilterRebuildsLanes(t *testing.T) {
	m := testModel()

	m, _ = m.Update(key("f"))
	if m.Category() != "General Surgery" {
		t.Fatalf("first filter should be the first category, got %q", m.Category())
	}
	if m.Lanes().Len() != 2 {
		t.Fatalf("expected 2 surgical lanes, got %d", m.Lanes().Len())
	}
	// Row 2 is now the second visible lane: resource 4, not resource 2.
	if i, ok := m.Lanes().Index(2); !ok {
		t.Fatalf("row 2 should resolve")
	} else if r, _ := m.Lanes().At(i); r.ID != 4 {
		t.Fatalf("filtered hit-test should find resource 4, got %d", r.ID)
	}

	m, _ = m.Update(key("f"))
	m, _ = m.Update(key("f"))
	m, _ = m.Update(key("f"))
	if m.Category() != "" || m.Lanes().Len() != 4 {
		t.Fatalf("cycling past the last category should clear the filter")
	}
}

func TestViewRendersBlocksAndBadges(t *testing.T) {
	b := schedule.New(2, "Morning Clinic", origin().Add(time.Hour), origin().Add(6*time.Hour))
	b.ID = 3
	b.Container = true
	b.Capacity = 5
	b.Room = "OR-2"
	b.Subs = []schedule.SubBooking{{ID: "a", Title: "Checkup"}}
	m := testModel(b)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Morning Clinic 1/5") {
		t.Fatalf("block should carry its occupancy badge:\n%s", view)
	}
	if !strings.Contains(view, "09:00-14:00 OR-2") {
		t.Fatalf("second block row should carry the span and room:\n%s", view)
	}
	if !strings.Contains(view, "Dr. Ilir Dervishi") {
		t.Fatalf("sidebar should list the roster:\n%s", view)
	}
	if !strings.Contains(view, "08:00") || !strings.Contains(view, "22:00") {
		t.Fatalf("header should span the window:\n%s", view)
	}
}
