package sub

import (
	"context"
	"errors"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/store"
)

type Sub struct {
	BookingID int
	Sub       schedule.SubBooking

	Remove bool
	SubID  string
	ShowID bool

	Persistence store.Persistence
}

func (n *Sub) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not edit sub-bookings, no persistence")
	}

	svc := app.New(n.Persistence)

	var b *schedule.Booking
	var err error
	if n.Remove {
		b, err = svc.RemoveSub(ctx, n.BookingID, n.SubID)
	} else {
		b, err = svc.AddSub(ctx, n.BookingID, n.Sub)
	}
	if errors.Is(err, app.ErrCapacity) {
		return errors.New("the block is at capacity")
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title(b.Title)
	pp.Booking(b)

	return nil
}
