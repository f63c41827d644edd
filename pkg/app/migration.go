package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/rota/pkg/schedule"
)

// MigrationCandidate is a booking eligible to be carried to another day.
type MigrationCandidate struct {
	Booking  *schedule.Booking
	Resource schedule.Resource
}

// MigrationCandidates returns the bookings that start on the given day,
// in roster-then-start order, paired with their lane. Container blocks
// travel with their sub-bookings, so carrying a clinic forward keeps
// its appointments.
func (s *Service) MigrationCandidates(ctx context.Context, day time.Time) ([]MigrationCandidate, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}

	lanes := make(map[int]schedule.Resource)
	order := make(map[int]int)
	for i, r := range s.Persistence.Resources() {
		lanes[r.ID] = r
		order[r.ID] = i
	}

	candidates := make([]MigrationCandidate, 0)
	for _, b := range s.Persistence.List(ctx) {
		if b == nil || !b.Start.SameDay(day) {
			continue
		}
		r, ok := lanes[b.ResourceID]
		if !ok {
			continue
		}
		candidates = append(candidates, MigrationCandidate{Booking: b, Resource: r})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		bi, bj := candidates[i].Booking, candidates[j].Booking
		if order[bi.ResourceID] != order[bj.ResourceID] {
			return order[bi.ResourceID] < order[bj.ResourceID]
		}
		return bi.Start.Before(bj.Start.Time)
	})
	return candidates, nil
}

// Migrate moves every booking that starts on from to the same clock
// time on to, preserving lanes and durations. It returns the moved
// bookings. Bookings already on to are left alone.
func (s *Service) Migrate(ctx context.Context, from, to time.Time) ([]*schedule.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}

	candidates, err := s.MigrationCandidates(ctx, from)
	if err != nil {
		return nil, err
	}

	y, m, d := to.Date()
	moved := make([]*schedule.Booking, 0, len(candidates))
	for _, c := range candidates {
		start := c.Booking.Start.Local()
		newStart := time.Date(y, m, d, start.Hour(), start.Minute(), 0, 0, start.Location())
		b, err := s.Move(ctx, c.Booking.ID, newStart, c.Booking.ResourceID)
		if err != nil {
			return moved, err
		}
		moved = append(moved, b)
	}
	return moved, nil
}
