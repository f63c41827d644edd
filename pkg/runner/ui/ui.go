package ui

import (
	"context"
	"errors"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/store"
	tuiapp "tableflip.dev/rota/pkg/tui/app"
)

type UI struct {
	Persistence store.Persistence
	Client      tuiapp.Assistant
}

func (d *UI) Do(ctx context.Context) error {
	if d.Persistence == nil {
		return errors.New("can not open the ui, no persistence")
	}
	return tuiapp.Run(app.New(d.Persistence), d.Client)
}
