package add

import (
	"context"
	"errors"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/store"
)

type Add struct {
	Draft  app.Draft
	ShowID bool

	Persistence store.Persistence
}

const layoutUS = "January 2, 2006"

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}

	svc := app.New(n.Persistence)
	b, err := svc.Create(ctx, n.Draft)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title(b.Start.Local().Format(layoutUS))
	pp.Booking(b)

	return nil
}
