package schedule

import "strings"

// SubBooking is a child record owned by exactly one container booking.
// It is destroyed when removed from its parent or when the parent is
// discarded; it is never shared between bookings.
type SubBooking struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Patient string   `json:"patient,omitempty"`
	Room    string   `json:"room,omitempty"`
	Note    string   `json:"note,omitempty"`
	When    TimeSpec `json:"when,omitempty"`
}

// TimeSpec is the time shape of a sub-booking. Two forms occur in the
// wild and both are supported: a free-form duration tag ("45m",
// "morning"), or an explicit start/end pair of "HH:mm" wall-clock
// strings. A range wins when both are present.
type TimeSpec struct {
	Duration string `json:"duration,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
}

// IsRange reports whether the spec carries an explicit start/end pair.
func (ts TimeSpec) IsRange() bool {
	return ts.Start != ""
}

// IsZero reports whether no time information is present.
func (ts TimeSpec) IsZero() bool {
	return ts.Duration == "" && ts.Start == "" && ts.End == ""
}

func (ts TimeSpec) String() string {
	switch {
	case ts.IsRange() && ts.End != "":
		return ts.Start + "–" + ts.End
	case ts.IsRange():
		return ts.Start
	default:
		return ts.Duration
	}
}

// ParseTimeSpec reads operator input: "HH:mm-HH:mm" or "HH:mm" become a
// range, anything else is kept verbatim as a duration tag.
func ParseTimeSpec(raw string) TimeSpec {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TimeSpec{}
	}
	if looksLikeClock(raw) {
		return TimeSpec{Start: raw}
	}
	if from, to, ok := strings.Cut(raw, "-"); ok {
		from = strings.TrimSpace(from)
		to = strings.TrimSpace(to)
		if looksLikeClock(from) && looksLikeClock(to) {
			return TimeSpec{Start: from, End: to}
		}
	}
	return TimeSpec{Duration: raw}
}

func looksLikeClock(s string) bool {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return false
	}
	for _, r := range hh + mm {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
