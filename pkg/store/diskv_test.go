package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/rota/pkg/schedule"
)

func TestStoreRoundTrip(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx := context.Background()

	start := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	b := schedule.New(2, "Aortic valve repair", start, start.Add(3*time.Hour))
	b.ID = p.NextID(ctx)
	b.Room = "OR-2"
	b.Container = true
	b.Capacity = 2
	b.Subs = []schedule.SubBooking{
		{ID: "s1", Title: "Prep", When: schedule.ParseTimeSpec("09:00-09:30")},
	}

	if err := p.Store(b); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := p.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != b.Title || got.ResourceID != 2 || got.Room != "OR-2" {
		t.Fatalf("unexpected booking %+v", got)
	}
	if !got.Start.Equal(b.Start.Time) || got.Duration() != 3*time.Hour {
		t.Fatalf("the span should survive the round trip, got %s for %s", got.Start.Clock(), got.Duration())
	}
	if !got.Container || got.Capacity != 2 || len(got.Subs) != 1 {
		t.Fatalf("container fields should survive, got %+v", got)
	}
	if got.Subs[0].When.String() != "09:00–09:30" {
		t.Fatalf("unexpected sub time %q", got.Subs[0].When)
	}
}

func TestStoreRefusesUnidentifiedBookings(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	start := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	if err := p.Store(schedule.New(1, "No ID", start, start.Add(time.Hour))); err == nil {
		t.Fatal("storing without an id should fail")
	}
}

func TestNextIDSkipsExisting(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx := context.Background()

	if id := p.NextID(ctx); id != 1 {
		t.Fatalf("an empty store should mint 1, got %d", id)
	}

	start := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	b := schedule.New(1, "Morning Clinic", start, start.Add(time.Hour))
	b.ID = 5
	if err := p.Store(b); err != nil {
		t.Fatalf("store: %v", err)
	}
	if id := p.NextID(ctx); id != 6 {
		t.Fatalf("ids should follow the highest stored, got %d", id)
	}
}

func TestListSortsByStartThenID(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx := context.Background()

	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.Local)
	late := schedule.New(1, "Late", day.Add(14*time.Hour), day.Add(16*time.Hour))
	late.ID = 1
	early := schedule.New(2, "Early", day.Add(9*time.Hour), day.Add(10*time.Hour))
	early.ID = 2
	for _, b := range []*schedule.Booking{late, early} {
		if err := p.Store(b); err != nil {
			t.Fatalf("store: %v", err)
		}
	}

	all := p.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(all))
	}
	if all[0].Title != "Early" || all[1].Title != "Late" {
		t.Fatalf("bookings should sort by start, got %q then %q", all[0].Title, all[1].Title)
	}
}

func TestGetUnknownBooking(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if _, err := p.Get(context.Background(), 99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
