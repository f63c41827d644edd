package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/store"
)

// Service provides high-level operations for bookings and the resource
// roster. It wraps persistence so UIs and CLIs can share logic, and it
// is the only code that writes bookings: every mutation funnels through
// here so capacity and scheduling rules cannot be bypassed.
type Service struct {
	Persistence store.Persistence

	validate *validator.Validate
}

var (
	ErrNoPersistence = errors.New("app: no persistence configured")

	// ErrCapacity is returned when a sub-booking would overflow its
	// parent's ceiling.
	ErrCapacity = errors.New("app: booking is at capacity")
)

// New builds a Service over the given persistence.
func New(p store.Persistence) *Service {
	return &Service{
		Persistence: p,
		validate:    validator.New(),
	}
}

// Draft carries the fields a caller may set when creating a booking.
// Start and End come in as wall-clock times; the id is minted here.
type Draft struct {
	ResourceID int       `validate:"required,gt=0"`
	Title      string    `validate:"required"`
	Start      time.Time `validate:"required"`
	End        time.Time `validate:"required,gtfield=Start"`
	Note       string
	Room       string
	Style      string
	Container  bool
	Capacity   int `validate:"gte=0"`
}

// Resources returns the configured lane roster in display order.
func (s *Service) Resources(ctx context.Context) ([]schedule.Resource, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Resources(), nil
}

// Bookings lists every stored booking sorted by start time.
func (s *Service) Bookings(ctx context.Context) ([]*schedule.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.List(ctx), nil
}

// Get fetches a single booking by id.
func (s *Service) Get(ctx context.Context, id int) (*schedule.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Get(ctx, id)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Create validates the draft, mints an id, and stores the booking.
func (s *Service) Create(ctx context.Context, d Draft) (*schedule.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	if err := s.validate.Struct(d); err != nil {
		return nil, fmt.Errorf("app: invalid booking: %w", err)
	}
	if s.laneFor(d.ResourceID) == nil {
		return nil, fmt.Errorf("app: unknown resource %d", d.ResourceID)
	}

	b := schedule.New(d.ResourceID, d.Title, d.Start, d.End)
	b.ID = s.Persistence.NextID(ctx)
	b.Note = d.Note
	b.Room = d.Room
	b.Style = d.Style
	b.Container = d.Container
	b.Capacity = d.Capacity
	if b.Style == "" {
		if r := s.laneFor(d.ResourceID); r != nil {
			b.Style = r.Style
		}
	}
	if err := s.Persistence.Store(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Move reschedules a booking to a new start and lane. Duration is
// preserved: the end shifts by the same delta as the start. This is
// the only operation allowed to change start, end, or resource.
func (s *Service) Move(ctx context.Context, id int, newStart time.Time, resourceID int) (*schedule.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	b, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.laneFor(resourceID) == nil {
		return nil, fmt.Errorf("app: unknown resource %d", resourceID)
	}

	dur := b.Duration()
	b.Start = schedule.At(newStart)
	b.End = schedule.At(newStart.Add(dur))
	b.ResourceID = resourceID
	if err := s.Persistence.Store(b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateDetails applies fn to the booking and stores the result.
// Scheduling fields are off limits here: any change fn makes to start,
// end, or resource is discarded so detail edits cannot reschedule.
func (s *Service) UpdateDetails(ctx context.Context, id int, fn func(*schedule.Booking)) (*schedule.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	b, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	start, end, lane := b.Start, b.End, b.ResourceID
	fn(b)
	b.Start, b.End, b.ResourceID = start, end, lane

	if err := s.Persistence.Store(b); err != nil {
		return nil, err
	}
	return b, nil
}

// AddSub appends a sub-booking, enforcing the parent's capacity.
func (s *Service) AddSub(ctx context.Context, id int, sub schedule.SubBooking) (*schedule.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	b, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.AddSub(sub) {
		return nil, ErrCapacity
	}
	if err := s.Persistence.Store(b); err != nil {
		return nil, err
	}
	return b, nil
}

// RemoveSub drops the sub-booking with the given id, if present.
func (s *Service) RemoveSub(ctx context.Context, id int, subID string) (*schedule.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	b, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b.RemoveSub(subID)
	if err := s.Persistence.Store(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a booking entirely.
func (s *Service) Delete(ctx context.Context, id int) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	b, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.Persistence.Delete(b)
}

// Import stores a batch of externally produced bookings, minting fresh
// ids so suggestions cannot collide with existing records. Bookings on
// unknown resources are skipped.
func (s *Service) Import(ctx context.Context, bookings []*schedule.Booking) ([]*schedule.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	stored := make([]*schedule.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || s.laneFor(b.ResourceID) == nil {
			continue
		}
		b.ID = s.Persistence.NextID(ctx)
		if b.Style == "" {
			if r := s.laneFor(b.ResourceID); r != nil {
				b.Style = r.Style
			}
		}
		if err := s.Persistence.Store(b); err != nil {
			return stored, err
		}
		stored = append(stored, b)
	}
	return stored, nil
}

func (s *Service) laneFor(resourceID int) *schedule.Resource {
	for _, r := range s.Persistence.Resources() {
		if r.ID == resourceID {
			return &r
		}
	}
	return nil
}
