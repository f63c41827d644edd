// Package timeline holds the pure geometry of the interactive grid:
// the time/column mapping, the lane layout, the drag session state
// machine, and the click-to-create resolver. Nothing in this package
// mutates bookings; it only produces proposed mutations.
package timeline

import "time"

const (
	// WindowHours is the visible span of the axis.
	WindowHours = 16
	// WindowStartHour offsets the day-aligned origin (08:00 local).
	WindowStartHour = 8
	// StepHours is the prev/next navigation step.
	StepHours = 4

	// SnapMove is the grid for drag commits (floor tie-break).
	SnapMove = 15 * time.Minute
	// SnapCreate is the grid for background clicks (nearest tie-break).
	SnapCreate = 30 * time.Minute
)

// Axis maps between absolute timestamps and horizontal offsets. It is
// parameterized by the visible-window origin and a columns-per-hour
// constant, and carries no other state.
type Axis struct {
	Origin      time.Time
	ColsPerHour float64
}

// NewAxis positions the window at the standard origin for the given
// day: start of day plus WindowStartHour.
func NewAxis(day time.Time, colsPerHour float64) Axis {
	y, m, d := day.Date()
	origin := time.Date(y, m, d, WindowStartHour, 0, 0, 0, day.Location())
	return Axis{Origin: origin, ColsPerHour: colsPerHour}
}

// PixelOf converts an absolute timestamp to a horizontal offset.
func (a Axis) PixelOf(t time.Time) float64 {
	deltaMs := float64(t.UnixMilli() - a.Origin.UnixMilli())
	return deltaMs / 3_600_000 * a.ColsPerHour
}

// TimeOf is the inverse of PixelOf. The pair round-trips within one
// millisecond for any instant inside the visible window.
func (a Axis) TimeOf(x float64) time.Time {
	deltaMs := x / a.ColsPerHour * 3_600_000
	return time.UnixMilli(a.Origin.UnixMilli() + int64(roundHalfAway(deltaMs)))
}

// Width is the total column span of the visible window.
func (a Axis) Width() int {
	return int(WindowHours * a.ColsPerHour)
}

// End is the exclusive upper bound of the visible window.
func (a Axis) End() time.Time {
	return a.Origin.Add(WindowHours * time.Hour)
}

// Contains reports whether the timestamp falls inside the window.
func (a Axis) Contains(t time.Time) bool {
	x := a.PixelOf(t)
	return x >= 0 && x < float64(a.Width())
}

// Next advances the window by the fixed step. The axis never scrolls
// continuously; navigation is the only way the origin changes.
func (a Axis) Next() Axis {
	a.Origin = a.Origin.Add(StepHours * time.Hour)
	return a
}

// Prev retreats the window by the fixed step.
func (a Axis) Prev() Axis {
	a.Origin = a.Origin.Add(-StepHours * time.Hour)
	return a
}

// Today re-anchors the window at the standard origin for now's day.
func (a Axis) Today(now time.Time) Axis {
	return NewAxis(now, a.ColsPerHour)
}

// Hours lists the hour marks across the window, for header rendering.
func (a Axis) Hours() []time.Time {
	marks := make([]time.Time, 0, WindowHours)
	for i := 0; i < WindowHours; i++ {
		marks = append(marks, a.Origin.Add(time.Duration(i)*time.Hour))
	}
	return marks
}

// SnapFloor rounds t down to the previous grid boundary. Drag commits
// always floor, never round to nearest.
func SnapFloor(t time.Time, grid time.Duration) time.Time {
	ms := t.UnixMilli()
	step := grid.Milliseconds()
	rem := ms % step
	if rem < 0 {
		rem += step
	}
	return time.UnixMilli(ms - rem)
}

// SnapNearest rounds t to the closest grid boundary. Background clicks
// round to nearest so a click at 09:07 lands on 09:00.
func SnapNearest(t time.Time, grid time.Duration) time.Time {
	ms := t.UnixMilli()
	step := grid.Milliseconds()
	rem := ms % step
	if rem < 0 {
		rem += step
	}
	if rem*2 >= step {
		return time.UnixMilli(ms - rem + step)
	}
	return time.UnixMilli(ms - rem)
}

func roundHalfAway(f float64) float64 {
	if f < 0 {
		return float64(int64(f - 0.5))
	}
	return float64(int64(f + 0.5))
}
