package timeline

import "time"

// Drag is the transient state of an active drag session. The machine
// has two states: idle (a nil *Drag) and dragging (a non-nil value).
// Transitions return new values rather than mutating in place so the
// session can be inspected and tested in isolation.
type Drag struct {
	BookingID     int
	StartX        int
	OriginalStart time.Time
	CurrentX      int
	OriginalLane  int
	CurrentLane   int
}

// Move is the mutation a committed drag proposes to the booking store.
// The store recomputes the end time from the booking's original
// duration so moves never stretch or shrink a booking.
type Move struct {
	BookingID  int
	NewStart   time.Time
	ResourceID int
}

// StartDrag opens a session for the booking under the pointer,
// capturing the original start time and lane alongside the current
// ones.
func StartDrag(bookingID, x int, start time.Time, laneID int) *Drag {
	return &Drag{
		BookingID:     bookingID,
		StartX:        x,
		OriginalStart: start,
		CurrentX:      x,
		OriginalLane:  laneID,
		CurrentLane:   laneID,
	}
}

// Track records a pointer move. The X coordinate always advances; the
// hovered lane only changes when the pointer resolves to a valid lane,
// otherwise the last valid lane is kept.
func (d *Drag) Track(x int, laneID int, laneOK bool) *Drag {
	next := *d
	next.CurrentX = x
	if laneOK {
		next.CurrentLane = laneID
	}
	return &next
}

// PreviewOffset is the live horizontal offset, in columns, applied to
// the dragged booking while the session is open.
func (d *Drag) PreviewOffset() int {
	return d.CurrentX - d.StartX
}

// Commit closes the session and produces the move. The new start is
// always derived from the original captured start plus the pixel
// delta, snapped DOWN to the move grid; intermediate preview state is
// never an input, so repeated moves within one session cannot drift.
// The result is not clamped to the visible window.
func (d *Drag) Commit(a Axis) Move {
	deltaMs := float64(d.CurrentX-d.StartX) / a.ColsPerHour * 3_600_000
	newStart := time.UnixMilli(d.OriginalStart.UnixMilli() + int64(roundHalfAway(deltaMs)))
	return Move{
		BookingID:  d.BookingID,
		NewStart:   SnapFloor(newStart, SnapMove),
		ResourceID: d.CurrentLane,
	}
}
