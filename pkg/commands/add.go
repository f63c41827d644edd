package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/commands/options"
	"tableflip.dev/rota/pkg/runner/add"
	"tableflip.dev/rota/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	resource := 0
	at := "09:00"
	span := 2 * time.Hour
	room := ""
	note := ""
	container := false
	capacity := 0

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: base.Wrap80("Add a booking to a roster lane."),
		Example: `
rota add "Morning Clinic" --resource=1 --at=09:00 --for=4h --container --capacity=5
rota add "Aortic valve repair" --resource=2 --on="3/14" --at=13:00 --room=OR-2
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			day := time.Now()
			if on != nil {
				day = *on
			}
			clock, err := time.Parse("15:04", at)
			if err != nil {
				return fmt.Errorf("can not parse --at=%q: %w", at, err)
			}
			start := time.Date(day.Year(), day.Month(), day.Day(),
				clock.Hour(), clock.Minute(), 0, 0, time.Local)

			s := add.Add{
				Draft: app.Draft{
					ResourceID: resource,
					Title:      strings.Join(args, " "),
					Start:      start,
					End:        start.Add(span),
					Room:       room,
					Note:       note,
					Container:  container,
					Capacity:   capacity,
				},
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().IntVar(&resource, "resource", 0,
		"Roster lane (resource id) for the booking.")
	cmd.Flags().StringVar(&at, "at", "09:00",
		`Start time of day, example: --at="13:30".`)
	cmd.Flags().DurationVar(&span, "for", 2*time.Hour,
		"Booked span, example: --for=90m.")
	cmd.Flags().StringVar(&room, "room", "",
		"Operating room or location.")
	cmd.Flags().StringVar(&note, "note", "",
		"Free-form note on the booking.")
	cmd.Flags().BoolVar(&container, "container", false,
		"Make the booking a block that holds sub-bookings.")
	cmd.Flags().IntVar(&capacity, "capacity", 0,
		"Sub-booking ceiling for a container block.")

	topLevel.AddCommand(cmd)
}
