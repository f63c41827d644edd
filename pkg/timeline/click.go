package timeline

import "time"

// CreateTarget is the (lane, snapped time) pair a background click
// resolves to. The creation dialog consumes it; the resolver itself
// never creates a booking.
type CreateTarget struct {
	ResourceID int
	Start      time.Time
}

// ResolveCreate converts a grid-relative click into a creation target.
// Fixed header and sidebar offsets must already be subtracted by the
// caller. Clicks outside the lane rows resolve to nothing. The clicked
// time snaps to the nearest SnapCreate boundary, round-to-nearest.
func ResolveCreate(a Axis, lanes LaneSet, x, y int) (CreateTarget, bool) {
	lane, ok := lanes.Index(y)
	if !ok {
		return CreateTarget{}, false
	}
	r, ok := lanes.At(lane)
	if !ok {
		return CreateTarget{}, false
	}
	t := a.TimeOf(float64(x))
	return CreateTarget{
		ResourceID: r.ID,
		Start:      SnapNearest(t, SnapCreate),
	}, true
}
