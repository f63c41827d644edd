package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/rota/pkg/schedule"
)

// ReportSection groups one lane's bookings for the reported day.
type ReportSection struct {
	Resource schedule.Resource
	Bookings []*schedule.Booking
	Booked   time.Duration
}

// ReportResult encapsulates a per-lane utilization report for one day.
type ReportResult struct {
	Day      time.Time
	Sections []ReportSection
	Total    int
}

// Report returns the day's bookings grouped by lane, in roster order,
// with the booked duration summed per lane. Lanes without bookings are
// included so the report always shows the full roster.
func (s *Service) Report(ctx context.Context, day time.Time) (ReportResult, error) {
	if s.Persistence == nil {
		return ReportResult{}, ErrNoPersistence
	}

	all := s.Persistence.List(ctx)
	byLane := make(map[int][]*schedule.Booking)
	total := 0
	for _, b := range all {
		if b == nil || !b.Start.SameDay(day) {
			continue
		}
		byLane[b.ResourceID] = append(byLane[b.ResourceID], b)
		total++
	}

	result := ReportResult{Day: day, Total: total}
	for _, r := range s.Persistence.Resources() {
		section := ReportSection{Resource: r, Bookings: byLane[r.ID]}
		sort.SliceStable(section.Bookings, func(i, j int) bool {
			return section.Bookings[i].Start.Before(section.Bookings[j].Start.Time)
		})
		for _, b := range section.Bookings {
			section.Booked += b.Duration()
		}
		result.Sections = append(result.Sections, section)
	}
	return result, nil
}
