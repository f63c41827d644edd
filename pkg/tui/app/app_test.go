package app

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	appsvc "tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/assist"
	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/store"
	"tableflip.dev/rota/pkg/tui/components/bottombar"
	"tableflip.dev/rota/pkg/tui/events"
)

type fakePersistence struct {
	roster   []schedule.Resource
	bookings map[int]*schedule.Booking
	next     int
}

func newFakePersistence(roster ...schedule.Resource) *fakePersistence {
	return &fakePersistence{
		roster:   roster,
		bookings: make(map[int]*schedule.Booking),
		next:     1,
	}
}

func (f *fakePersistence) List(ctx context.Context) []*schedule.Booking {
	out := make([]*schedule.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakePersistence) Get(ctx context.Context, id int) (*schedule.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return b, nil
}

func (f *fakePersistence) Store(b *schedule.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakePersistence) Delete(b *schedule.Booking) error {
	delete(f.bookings, b.ID)
	return nil
}

func (f *fakePersistence) NextID(ctx context.Context) int {
	id := f.next
	f.next++
	return id
}

func (f *fakePersistence) Resources() []schedule.Resource { return f.roster }

func (f *fakePersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	return ch, nil
}

type fakeAssistant struct {
	reply    assist.Reply
	analysis string

	prompt string
}

func (f *fakeAssistant) Suggest(ctx context.Context, prompt string, resources []schedule.Resource, now time.Time) assist.Reply {
	f.prompt = prompt
	return f.reply
}

func (f *fakeAssistant) Analyze(ctx context.Context, resources []schedule.Resource, bookings []*schedule.Booking) string {
	return f.analysis
}

func testRoster() []schedule.Resource {
	return []schedule.Resource{
		{ID: 1, Label: "Dr. Adams", Category: "Cardiology", Style: "#e06c75"},
		{ID: 2, Label: "Dr. Okafor", Category: "General Surgery", Style: "#61afef"},
	}
}

func newTestModel(t *testing.T, p store.Persistence) (*Model, *fakeAssistant) {
	t.Helper()
	client := &fakeAssistant{}
	m := New(appsvc.New(p), client)
	m.SetClock(func() time.Time {
		return time.Date(2026, time.March, 3, 10, 0, 0, 0, time.Local)
	})
	return m, client
}

// run feeds a message through Update and returns whatever the returned
// command produced, so service calls execute synchronously in tests.
func run(t *testing.T, m *Model, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestClickCreateFlow(t *testing.T) {
	p := newFakePersistence(testRoster()...)
	m, _ := newTestModel(t, p)

	start := time.Date(2026, time.March, 3, 9, 30, 0, 0, time.Local)
	m.Update(events.CreateRequestMsg{ResourceID: 2, Start: start})
	if m.focus != focusCreate {
		t.Fatalf("a create request should open the title prompt")
	}
	if m.footer.Mode() != bottombar.ModeCreate {
		t.Fatalf("footer should switch to the create help line")
	}

	m.createInput.SetValue("Ward Round")
	out := run(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	done, ok := out.(mutationDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("create should succeed, got %#v", out)
	}
	if m.focus != focusBoard {
		t.Fatalf("the prompt should close after create")
	}

	bs := p.List(context.Background())
	if len(bs) != 1 {
		t.Fatalf("expected one stored booking, got %d", len(bs))
	}
	b := bs[0]
	if b.Title != "Ward Round" || b.ResourceID != 2 {
		t.Fatalf("unexpected booking %+v", b)
	}
	if !b.Start.Time.Equal(start) || b.Duration() != DefaultCreateDuration {
		t.Fatalf("create should use the clicked start and the default span, got %s for %s", b.Start.Clock(), b.Duration())
	}
}

func TestCreateEscapeCancels(t *testing.T) {
	p := newFakePersistence(testRoster()...)
	m, _ := newTestModel(t, p)

	m.Update(events.CreateRequestMsg{ResourceID: 1, Start: time.Now()})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.focus != focusBoard || m.createTarget != nil {
		t.Fatalf("esc should abandon the create")
	}
	if len(p.List(context.Background())) != 0 {
		t.Fatalf("nothing should be stored on cancel")
	}
}

func TestMoveRequestRoutesThroughService(t *testing.T) {
	p := newFakePersistence(testRoster()...)
	m, _ := newTestModel(t, p)

	start := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	b := schedule.New(1, "Morning Clinic", start, start.Add(4*time.Hour))
	b.ID = p.NextID(context.Background())
	if err := p.Store(b); err != nil {
		t.Fatal(err)
	}

	newStart := time.Date(2026, time.March, 3, 11, 15, 0, 0, time.Local)
	out := run(t, m, events.MoveRequestMsg{
		Booking:    events.BookingRef{ID: b.ID, Title: b.Title},
		NewStart:   newStart,
		ResourceID: 2,
	})
	done, ok := out.(mutationDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("move should succeed, got %#v", out)
	}

	moved, err := p.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !moved.Start.Time.Equal(newStart) || moved.ResourceID != 2 {
		t.Fatalf("unexpected placement %+v", moved)
	}
	if moved.Duration() != 4*time.Hour {
		t.Fatalf("moves must preserve the span, got %s", moved.Duration())
	}
}

func TestSelectOpensDetail(t *testing.T) {
	p := newFakePersistence(testRoster()...)
	m, _ := newTestModel(t, p)

	start := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	b := schedule.New(1, "Morning Clinic", start, start.Add(2*time.Hour))
	b.ID = 7
	if err := p.Store(b); err != nil {
		t.Fatal(err)
	}

	out := run(t, m, events.BookingSelectMsg{Booking: events.BookingRef{ID: 7, Title: b.Title}})
	if m.focus != focusDetail {
		t.Fatalf("selecting a booking should focus the detail pane")
	}
	loaded, ok := out.(bookingLoadedMsg)
	if !ok {
		t.Fatalf("expected bookingLoadedMsg, got %T", out)
	}
	m.Update(loaded)
	if got := m.detail.Booking(); got == nil || got.ID != 7 {
		t.Fatalf("detail should display the selected booking, got %+v", got)
	}
}

func TestSuggestImportsBookings(t *testing.T) {
	p := newFakePersistence(testRoster()...)
	m, client := newTestModel(t, p)

	start := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.Local)
	suggested := schedule.New(1, "Cath Lab Block", start, start.Add(3*time.Hour))
	suggested.Container = true
	suggested.Capacity = 4
	client.reply = assist.Reply{
		Text:     "Operations scheduled.",
		Bookings: []*schedule.Booking{suggested},
	}

	out := run(t, m, events.AssistSubmitMsg{Prompt: "book a cath lab block tomorrow"})
	reply, ok := out.(assistReplyMsg)
	if !ok {
		t.Fatalf("expected assistReplyMsg, got %T", out)
	}
	if reply.imported != 1 {
		t.Fatalf("expected one imported booking, got %d", reply.imported)
	}
	if client.prompt != "book a cath lab block tomorrow" {
		t.Fatalf("the prompt should reach the client verbatim, got %q", client.prompt)
	}

	m.Update(reply)
	if m.assistant.Reply() != "Operations scheduled." {
		t.Fatalf("reply text should reach the pane, got %q", m.assistant.Reply())
	}
	if status, isErr := m.footer.Status(); isErr || !strings.Contains(status, "1 booking(s) added") {
		t.Fatalf("unexpected footer status %q", status)
	}

	bs := p.List(context.Background())
	if len(bs) != 1 || !bs[0].Container || bs[0].ID == 0 {
		t.Fatalf("the suggestion should be stored with a fresh id, got %+v", bs)
	}
}

func TestCapacityErrorReachesFooter(t *testing.T) {
	p := newFakePersistence(testRoster()...)
	m, _ := newTestModel(t, p)

	start := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	b := schedule.New(1, "Morning Clinic", start, start.Add(4*time.Hour))
	b.ID = p.NextID(context.Background())
	b.Container = true
	b.Capacity = 1
	b.Subs = []schedule.SubBooking{{ID: "s1", Title: "Checkup"}}
	if err := p.Store(b); err != nil {
		t.Fatal(err)
	}

	out := run(t, m, events.SubAddRequestMsg{
		Booking: events.BookingRef{ID: b.ID, Title: b.Title},
		Sub:     schedule.SubBooking{ID: "s2", Title: "Biopsy"},
	})
	done, ok := out.(mutationDoneMsg)
	if !ok || done.err == nil {
		t.Fatalf("a full container must refuse the add, got %#v", out)
	}

	m.Update(done)
	status, isErr := m.footer.Status()
	if !isErr || !strings.Contains(status, "capacity") {
		t.Fatalf("the refusal should surface in the footer, got %q", status)
	}
}

func TestAnalyzeShowsSummary(t *testing.T) {
	p := newFakePersistence(testRoster()...)
	m, client := newTestModel(t, p)
	client.analysis = "Cardiology is fully booked before noon."

	out := run(t, m, tea.KeyPressMsg{Text: "A", Code: 'A'})
	done, ok := out.(analyzeDoneMsg)
	if !ok {
		t.Fatalf("expected analyzeDoneMsg, got %T", out)
	}
	m.Update(done)
	if m.focus != focusAssistant {
		t.Fatalf("analysis should land in the assistant pane")
	}
	if m.assistant.Reply() != client.analysis {
		t.Fatalf("unexpected reply %q", m.assistant.Reply())
	}
}
