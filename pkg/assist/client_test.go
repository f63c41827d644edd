package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/store"
)

func testResources() []schedule.Resource {
	return []schedule.Resource{
		{ID: 1, Label: "Dr. Arben Kodra", Category: "General Surgery"},
		{ID: 2, Label: "Dr. Ilir Dervishi", Category: "Cardiology"},
	}
}

// candidateWith wraps text the way the generation API returns it.
func candidateWith(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	out, _ := json.Marshal(resp)
	return string(out)
}

func testClient(ts *httptest.Server) *Client {
	return New(store.AssistConfig{
		Endpoint: ts.URL,
		Model:    "gemini-2.5-flash",
		APIKey:   "test-key",
		Timeout:  5 * time.Second,
	})
}

func TestSuggestConvertsItemsToBookings(t *testing.T) {
	start := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	payload := map[string]any{
		"responseMessage": "Scheduled a surgery block.",
		"items": []map[string]any{
			{
				"title":         "Surgery Block",
				"group":         2,
				"start_time":    start.UnixMilli(),
				"end_time":      start.Add(4 * time.Hour).UnixMilli(),
				"description":   "Bypass prep",
				"isMainEvent":   true,
				"maxMiniEvents": 5,
				"miniEvents": []map[string]string{
					{
						"title":         "Coronary Bypass",
						"patientName":   "A. Leka",
						"time":          "09:30",
						"operationRoom": "OR-2",
						"description":   "Standard approach",
					},
				},
			},
		},
	}
	body, _ := json.Marshal(payload)

	var gotPath, gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Write([]byte(candidateWith(string(body))))
	}))
	defer ts.Close()

	reply := testClient(ts).Suggest(context.Background(), "book a bypass for tomorrow", testResources(), start)

	if reply.Text != "Scheduled a surgery block." {
		t.Fatalf("unexpected reply text %q", reply.Text)
	}
	if len(reply.Bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(reply.Bookings))
	}

	b := reply.Bookings[0]
	if b.ResourceID != 2 || b.Title != "Surgery Block" {
		t.Fatalf("unexpected booking %+v", b)
	}
	if !b.Start.Equal(start) || b.Duration() != 4*time.Hour {
		t.Fatalf("timestamps must round-trip through epoch millis: %+v", b)
	}
	if !b.Container || b.Capacity != 5 {
		t.Fatalf("suggestions must land as capacity-bounded containers: %+v", b)
	}
	if len(b.Subs) != 1 {
		t.Fatalf("expected 1 sub-booking, got %d", len(b.Subs))
	}
	sub := b.Subs[0]
	if sub.ID == "" {
		t.Fatalf("sub-bookings must get fresh ids")
	}
	if sub.Patient != "A. Leka" || sub.Room != "OR-2" {
		t.Fatalf("unexpected sub %+v", sub)
	}
	if !sub.When.IsRange() || sub.When.Start != "09:30" {
		t.Fatalf("clock strings should parse as ranges: %+v", sub.When)
	}

	if !strings.Contains(gotPath, "gemini-2.5-flash") {
		t.Fatalf("model missing from request path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header missing")
	}
}

func TestSuggestMalformedAnswer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateWith("I cannot help with that.")))
	}))
	defer ts.Close()

	reply := testClient(ts).Suggest(context.Background(), "anything", testResources(), time.Now())
	if reply.Text != "Failed to process request." {
		t.Fatalf("malformed answers must fail closed, got %q", reply.Text)
	}
	if len(reply.Bookings) != 0 {
		t.Fatalf("no bookings may come out of a malformed answer")
	}
}

func TestSuggestServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	reply := testClient(ts).Suggest(context.Background(), "anything", testResources(), time.Now())
	if reply.Text != "Failed to process request." || len(reply.Bookings) != 0 {
		t.Fatalf("server errors must fail closed, got %+v", reply)
	}
}

func TestAnalyzeReturnsSummaryText(t *testing.T) {
	var gotPrompt string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Write([]byte(candidateWith("A balanced day with light afternoon load.")))
	}))
	defer ts.Close()

	start := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	b := schedule.New(1, "Morning Theatre", start, start.Add(4*time.Hour))
	b.Subs = []schedule.SubBooking{
		{ID: "s1", Title: "Appendectomy", Patient: "B. Rama", Room: "OR-1", When: schedule.TimeSpec{Start: "09:30", End: "10:15"}},
	}

	got := testClient(ts).Analyze(context.Background(), testResources(), []*schedule.Booking{b})
	if got != "A balanced day with light afternoon load." {
		t.Fatalf("unexpected analysis %q", got)
	}
	// The flattened context must carry the nested operations.
	if !strings.Contains(gotPrompt, "Appendectomy") || !strings.Contains(gotPrompt, "OR-1") {
		t.Fatalf("analysis context is missing operations: %s", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "09:30–10:15") {
		t.Fatalf("sub times should render as ranges: %s", gotPrompt)
	}
}

func TestAnalyzeFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer ts.Close()

	got := testClient(ts).Analyze(context.Background(), testResources(), nil)
	if got != "An error occurred while analyzing the schedule." {
		t.Fatalf("failures must collapse to the fixed message, got %q", got)
	}
}
