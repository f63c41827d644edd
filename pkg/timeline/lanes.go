package timeline

import "tableflip.dev/rota/pkg/schedule"

// LaneSet is the ordered list of visible resources with a fixed row
// height per lane. Lane order is exactly resource order; filtering
// produces a new LaneSet and every piece of geometry (rendering and
// hit-testing alike) must come from the same set.
type LaneSet struct {
	resources []schedule.Resource
	height    int
}

// NewLaneSet builds a lane layout over the given resources.
func NewLaneSet(resources []schedule.Resource, height int) LaneSet {
	if height < 1 {
		height = 1
	}
	return LaneSet{resources: resources, height: height}
}

// Len is the number of visible lanes.
func (l LaneSet) Len() int { return len(l.resources) }

// Height is the fixed row height of one lane.
func (l LaneSet) Height() int { return l.height }

// Resources returns the ordered resource list backing the lanes.
func (l LaneSet) Resources() []schedule.Resource { return l.resources }

// Index resolves a vertical offset to a lane index. Offsets outside
// the lane rows report ok=false; the caller must not clamp.
func (l LaneSet) Index(y int) (int, bool) {
	if y < 0 {
		return 0, false
	}
	i := y / l.height
	if i >= len(l.resources) {
		return 0, false
	}
	return i, true
}

// Top is the first row of the lane at index i.
func (l LaneSet) Top(i int) int { return i * l.height }

// At returns the resource occupying lane i.
func (l LaneSet) At(i int) (schedule.Resource, bool) {
	if i < 0 || i >= len(l.resources) {
		return schedule.Resource{}, false
	}
	return l.resources[i], true
}

// IndexOf finds the lane showing the given resource, or -1 when the
// resource is not visible (filtered out or unknown).
func (l LaneSet) IndexOf(resourceID int) int {
	for i, r := range l.resources {
		if r.ID == resourceID {
			return i
		}
	}
	return -1
}

// Filter returns a new LaneSet containing only matching resources, in
// the original order.
func (l LaneSet) Filter(keep func(schedule.Resource) bool) LaneSet {
	out := make([]schedule.Resource, 0, len(l.resources))
	for _, r := range l.resources {
		if keep(r) {
			out = append(out, r)
		}
	}
	return LaneSet{resources: out, height: l.height}
}
