package schedule

import (
	"fmt"
	"time"
)

// Booking is a time-bounded record occupying one lane. A booking may be
// a simple entry or, when Container is set, a block that owns a
// capacity-bounded list of sub-bookings.
type Booking struct {
	ID         int          `json:"id"`
	ResourceID int          `json:"resource"`
	Title      string       `json:"title"`
	Start      Timestamp    `json:"start"`
	End        Timestamp    `json:"end"`
	Note       string       `json:"note,omitempty"`
	Room       string       `json:"room,omitempty"`
	Style      string       `json:"style,omitempty"`
	Container  bool         `json:"container,omitempty"`
	Capacity   int          `json:"capacity,omitempty"`
	Subs       []SubBooking `json:"subs,omitempty"`
}

// New builds a booking without an identifier; the store mints one when
// the booking is first persisted.
func New(resourceID int, title string, start, end time.Time) *Booking {
	return &Booking{
		ResourceID: resourceID,
		Title:      title,
		Start:      Timestamp{Time: start},
		End:        Timestamp{Time: end},
	}
}

// Duration is the booked span. Moves preserve it exactly.
func (b *Booking) Duration() time.Duration {
	return b.End.Sub(b.Start.Time)
}

// Full reports whether the container has reached its capacity ceiling.
// A container with a zero ceiling never reports full even though adds
// are refused; the ceiling's minimum is not validated anywhere.
func (b *Booking) Full() bool {
	return b.Capacity > 0 && len(b.Subs) >= b.Capacity
}

// AddSub appends a sub-booking unless the container's ceiling has been
// reached. The refusal is silent: callers disable the affordance via
// Full. Non-container bookings accept subs without a bound.
func (b *Booking) AddSub(s SubBooking) bool {
	if b.Container && len(b.Subs) >= b.Capacity {
		return false
	}
	b.Subs = append(b.Subs, s)
	return true
}

// RemoveSub deletes the sub-booking with the given id. Removing an
// unknown id is a no-op, not an error.
func (b *Booking) RemoveSub(id string) {
	for i, s := range b.Subs {
		if s.ID == id {
			b.Subs = append(b.Subs[:i], b.Subs[i+1:]...)
			return
		}
	}
}

// Sub returns the sub-booking with the given id.
func (b *Booking) Sub(id string) (SubBooking, bool) {
	for _, s := range b.Subs {
		if s.ID == id {
			return s, true
		}
	}
	return SubBooking{}, false
}

// Badge renders the occupancy indicator for container blocks, e.g. "1/5".
func (b *Booking) Badge() string {
	if b.Capacity <= 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", len(b.Subs), b.Capacity)
}

func (b *Booking) String() string {
	return fmt.Sprintf("%s %s–%s", b.Title, b.Start.Clock(), b.End.Clock())
}
