package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/commands/options"
	"tableflip.dev/rota/pkg/runner/get"
	"tableflip.dev/rota/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	calendar := false
	resource := 0

	cmd := &cobra.Command{
		Use:   "get",
		Short: base.Wrap80("Get the day's schedule, grouped by roster lane."),
		Example: `
rota get
rota get --on="2026-3-3"
rota get --resource=2
rota get --calendar
`,
		Args: cobra.NoArgs,
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
			s := get.Get{
				ShowID:      io.ShowID,
				Calendar:    calendar,
				On:          day,
				Resource:    resource,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&calendar, "calendar", false,
		"Show a month calendar of booked days instead of the day view.")
	cmd.Flags().IntVar(&resource, "resource", 0,
		"Only show the lane for this resource id.")

	topLevel.AddCommand(cmd)
}
