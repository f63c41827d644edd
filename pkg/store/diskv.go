package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/rota/pkg/schedule"
)

// ErrNotFound is returned when no booking carries the requested id.
var ErrNotFound = errors.New("store: booking not found")

// Persistence defines the persistence contract for bookings. The
// resource roster rides along because lane order comes from the same
// configuration the store is built from.
type Persistence interface {
	List(ctx context.Context) []*schedule.Booking
	Get(ctx context.Context, id int) (*schedule.Booking, error)
	Store(b *schedule.Booking) error
	Delete(b *schedule.Booking) error
	NextID(ctx context.Context) int
	Resources() []schedule.Resource
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		roster:   cfg.Resources(),
		basePath: basePath,
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	roster   []schedule.Resource
	basePath string
}

const bookingPrefix = "bookings"

func (p *persistence) read(key string) (*schedule.Booking, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	b := &schedule.Booking{}
	if err := json.Unmarshal(val, b); err != nil {
		return nil, err
	}
	if b.ID == 0 {
		pk := keyToPathTransform(key)
		if id, err := strconv.Atoi(pk.FileName); err == nil {
			b.ID = id
		}
	}
	return b, nil
}

func (p *persistence) List(ctx context.Context) []*schedule.Booking {
	all := make([]*schedule.Booking, 0)
	for key := range p.d.Keys(ctx.Done()) {
		b, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, b)
	}
	sortBookings(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id int) (*schedule.Booking, error) {
	b, err := p.read(toKey(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (p *persistence) Store(b *schedule.Booking) error {
	if b.ID == 0 {
		return errors.New("store: booking id required")
	}
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(b.ID), data)
}

func (p *persistence) Delete(b *schedule.Booking) error {
	return p.d.Erase(toKey(b.ID))
}

// NextID mints the next free booking identifier.
func (p *persistence) NextID(ctx context.Context) int {
	max := 0
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if id, err := strconv.Atoi(pk.FileName); err == nil && id > max {
			max = id
		}
	}
	return max + 1
}

func (p *persistence) Resources() []schedule.Resource {
	return p.roster
}

func sortBookings(all []*schedule.Booking) {
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start.Equal(all[j].Start.Time) {
			return all[i].ID < all[j].ID
		}
		return all[i].Start.Before(all[j].Start.Time)
	})
}

// toKey makes `bookings-<id>`
func toKey(id int) string {
	return fmt.Sprintf("%s-%d", bookingPrefix, id)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
