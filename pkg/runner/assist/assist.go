package assist

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/assist"
	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/store"
)

type Assist struct {
	Prompt  string
	Analyze bool

	Client      *assist.Client
	Persistence store.Persistence
}

func (n *Assist) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not assist, no persistence")
	}
	if n.Client == nil {
		return errors.New("can not assist, no client configured")
	}

	svc := app.New(n.Persistence)
	resources, err := svc.Resources(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}

	if n.Analyze {
		bookings, err := svc.Bookings(ctx)
		if err != nil {
			return err
		}
		pp.Reply(n.Client.Analyze(ctx, resources, bookings))
		return nil
	}

	reply := n.Client.Suggest(ctx, n.Prompt, resources, time.Now())
	stored, err := svc.Import(ctx, reply.Bookings)
	if err != nil {
		return err
	}

	pp.Reply(reply.Text)
	if len(stored) > 0 {
		pp.NewLine()
		for _, b := range stored {
			pp.Booking(b)
		}
	}

	return nil
}
