package migrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/store"
)

type Migrate struct {
	From time.Time
	To   time.Time
	List bool

	ShowID      bool
	Persistence store.Persistence
}

const layoutUS = "January 2, 2006"

func (n *Migrate) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not migrate, no persistence")
	}

	svc := app.New(n.Persistence)
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	if n.List {
		candidates, err := svc.MigrationCandidates(ctx, n.From)
		if err != nil {
			return err
		}
		pp.TitleWithCount(n.From.Format(layoutUS), len(candidates))
		pp.NewLine()
		for _, c := range candidates {
			pp.Booking(c.Booking)
		}
		return nil
	}

	moved, err := svc.Migrate(ctx, n.From, n.To)
	if err != nil {
		return err
	}

	pp.TitleWithCount(n.To.Format(layoutUS), len(moved))
	pp.NewLine()
	for _, b := range moved {
		pp.Booking(b)
	}

	return nil
}
