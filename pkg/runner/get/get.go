package get

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/store"
)

type Get struct {
	ShowID   bool
	Calendar bool
	On       time.Time
	Resource int // when set, only that lane is printed

	Persistence store.Persistence
}

const layoutUS = "January 2, 2006"

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}

	svc := app.New(n.Persistence)
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	if n.Calendar {
		all, err := svc.Bookings(ctx)
		if err != nil {
			return err
		}
		pp.Calendar(n.On, all...)
		return nil
	}

	result, err := svc.Report(ctx, n.On)
	if err != nil {
		return err
	}

	pp.TitleWithCount(n.On.Format(layoutUS), result.Total)
	pp.NewLine()
	for _, section := range result.Sections {
		if n.Resource != 0 && section.Resource.ID != n.Resource {
			continue
		}
		pp.Lane(section)
	}

	return nil
}
