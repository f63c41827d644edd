package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/rota/pkg/schedule"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string { return t.path }

func (t testConfig) Resources() []schedule.Resource { return DefaultRoster() }

func (t testConfig) Assist() AssistConfig { return AssistConfig{} }

func TestPersistenceWatchEmitsBookingChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	start := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	b := schedule.New(1, "Morning Clinic", start, start.Add(4*time.Hour))
	b.ID = p.NextID(ctx)
	if err := p.Store(b); err != nil {
		t.Fatalf("store booking: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventStoreInvalidated {
				return
			}
			if evt.Type == EventBookingChanged {
				if evt.BookingID != b.ID {
					t.Fatalf("expected booking %d, got %d", b.ID, evt.BookingID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for booking change event")
		}
	}
}
