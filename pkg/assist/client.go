// Package assist talks to an external text-generation service to turn
// natural-language requests into bookings and to summarize a day's
// schedule. Failures never surface as errors to the UI; they come back
// as human-readable reply text with zero bookings.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/store"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com"

// Reply is the outcome of a Suggest call: a short message for the
// operator plus the bookings the service proposed, already converted
// into domain records (without ids; the service layer mints those).
type Reply struct {
	Text     string
	Bookings []*schedule.Booking
}

// Client is a thin HTTP client for the generation endpoint.
type Client struct {
	cfg    store.AssistConfig
	client *http.Client
}

// New builds a client from the operator's assist configuration.
func New(cfg store.AssistConfig) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// wire types for the generation API.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// suggestion is the schema the service is instructed to answer with.
type suggestion struct {
	ResponseMessage string `json:"responseMessage"`
	Items           []struct {
		Title     string `json:"title"`
		Group     int    `json:"group"`
		StartTime int64  `json:"start_time"`
		EndTime   int64  `json:"end_time"`
		Note      string `json:"description"`
		Container bool   `json:"isMainEvent"`
		Capacity  int    `json:"maxMiniEvents"`
		Subs      []struct {
			Title   string `json:"title"`
			Patient string `json:"patientName"`
			Time    string `json:"time"`
			Room    string `json:"operationRoom"`
			Note    string `json:"description"`
		} `json:"miniEvents"`
	} `json:"items"`
}

type laneContext struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
}

func laneContexts(resources []schedule.Resource) []laneContext {
	out := make([]laneContext, 0, len(resources))
	for _, r := range resources {
		out = append(out, laneContext{ID: r.ID, Name: r.Label, Speciality: r.Category})
	}
	return out
}

// Suggest asks the service to schedule the operator's request. The
// returned bookings are forced into container form so every suggestion
// lands as a block that can hold its operations. Any transport or
// parse failure yields a fixed failure message and no bookings.
func (c *Client) Suggest(ctx context.Context, prompt string, resources []schedule.Resource, now time.Time) Reply {
	lanes, _ := json.Marshal(laneContexts(resources))

	instruction := fmt.Sprintf(`Current Time: %s.
Available Doctors: %s.
User Request: %q

Create a main block (a container) for the requested operation(s) and assign it to the most appropriate doctor based on speciality.
Place the specific operation details as entries inside this block.
The block duration should strictly cover the operation (default 4 hours for the block if not specified).
Assign a realistic Operation Room (OR-1 to OR-4) to each entry.

Return a JSON object with this schema:
{
  "responseMessage": "Short confirmation message",
  "items": [
    {
      "title": "Block Title (e.g. 'Surgery Block')",
      "group": 1,
      "start_time": 1234567890000,
      "end_time": 1234567890000,
      "description": "Block notes",
      "isMainEvent": true,
      "maxMiniEvents": 5,
      "miniEvents": [
        {
          "title": "Operation Name",
          "patientName": "Patient Name (infer or use placeholder)",
          "time": "HH:mm",
          "operationRoom": "OR-1",
          "description": "Details"
        }
      ]
    }
  ]
}`, now.Format("2006-01-02 15:04"), lanes, prompt)

	text, err := c.generate(ctx, instruction, true)
	if err != nil {
		return Reply{Text: "Failed to process request."}
	}

	var result suggestion
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return Reply{Text: "Failed to process request."}
	}

	bookings := make([]*schedule.Booking, 0, len(result.Items))
	for _, item := range result.Items {
		b := schedule.New(item.Group, item.Title, time.UnixMilli(item.StartTime), time.UnixMilli(item.EndTime))
		b.Note = item.Note
		b.Container = true
		b.Capacity = item.Capacity
		for _, sub := range item.Subs {
			b.Subs = append(b.Subs, schedule.SubBooking{
				ID:      uuid.NewString(),
				Title:   sub.Title,
				Patient: sub.Patient,
				Room:    sub.Room,
				Note:    sub.Note,
				When:    schedule.ParseTimeSpec(sub.Time),
			})
		}
		bookings = append(bookings, b)
	}

	text = result.ResponseMessage
	if text == "" {
		text = "Operations scheduled."
	}
	return Reply{Text: text, Bookings: bookings}
}

// analysis context sent with Analyze requests.

type blockContext struct {
	DoctorID   int                `json:"doctor_id"`
	BlockTitle string             `json:"block_title"`
	Start      string             `json:"start"`
	End        string             `json:"end"`
	Operations []operationContext `json:"operations"`
}

type operationContext struct {
	Operation string `json:"operation"`
	Patient   string `json:"patient"`
	Time      string `json:"time"`
	Room      string `json:"room"`
	Notes     string `json:"notes"`
}

// Analyze summarizes the workload across the given bookings. The
// summary comes back as short prose; failures collapse into a fixed
// message so callers can render the reply unconditionally.
func (c *Client) Analyze(ctx context.Context, resources []schedule.Resource, bookings []*schedule.Booking) string {
	blocks := make([]blockContext, 0, len(bookings))
	for _, b := range bookings {
		bc := blockContext{
			DoctorID:   b.ResourceID,
			BlockTitle: b.Title,
			Start:      b.Start.Local().Format("2006-01-02 15:04"),
			End:        b.End.Local().Format("2006-01-02 15:04"),
			Operations: make([]operationContext, 0, len(b.Subs)),
		}
		for _, s := range b.Subs {
			bc.Operations = append(bc.Operations, operationContext{
				Operation: s.Title,
				Patient:   s.Patient,
				Time:      s.When.String(),
				Room:      s.Room,
				Notes:     s.Note,
			})
		}
		blocks = append(blocks, bc)
	}

	payload, _ := json.Marshal(struct {
		Doctors        []laneContext  `json:"doctors"`
		ScheduleBlocks []blockContext `json:"scheduleBlocks"`
	}{laneContexts(resources), blocks})

	instruction := fmt.Sprintf(`You are a medical scheduling assistant for a busy hospital. Analyze the following surgery schedule blocks and the operations inside them. Provide a brief, insightful summary of the workload, potential doctor fatigue, and utilization of operation rooms. Keep it under 150 words.

Schedule Data:
%s`, payload)

	text, err := c.generate(ctx, instruction, false)
	if err != nil {
		return "An error occurred while analyzing the schedule."
	}
	if text == "" {
		return "Could not generate analysis."
	}
	return text
}

// generate posts one prompt and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if wantJSON {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.Endpoint, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assist: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("assist: decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assist: empty response")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
