package schedule

import (
	"encoding/json"
	"time"
)

// Timestamp wraps time.Time and crosses every boundary (disk, external
// services) as absolute milliseconds since the Unix epoch.
type Timestamp struct {
	time.Time
}

// At wraps a wall-clock time.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// FromMillis builds a Timestamp from epoch milliseconds.
func FromMillis(ms int64) Timestamp {
	return Timestamp{Time: time.UnixMilli(ms)}
}

// Millis returns the timestamp as epoch milliseconds.
func (t Timestamp) Millis() int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func (t Timestamp) SameDay(then time.Time) bool {
	y1, m1, d1 := t.Local().Date()
	y2, m2, d2 := then.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Millis())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	if ms == 0 {
		t.Time = time.Time{}
		return nil
	}
	t.Time = time.UnixMilli(ms)
	return nil
}

// Clock renders the local wall-clock portion, e.g. "09:00".
func (t Timestamp) Clock() string {
	return t.Local().Format("15:04")
}
