package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/commands/options"
	"tableflip.dev/rota/pkg/runner/migrate"
	"tableflip.dev/rota/pkg/store"
)

func addMigrate(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	from := ""
	to := ""

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: base.Wrap80("Carry a day's bookings forward to another day."),
		Example: `
rota migrate
rota migrate --from="3/3" --to="3/5"
rota migrate list
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDay, toDay, err := migrationWindow(from, to)
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := migrate.Migrate{
				From:        fromDay,
				To:          toDay,
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().StringVar(&from, "from", "",
		`Day to migrate from, default today. Example: --from="3/3".`)
	cmd.Flags().StringVar(&to, "to", "",
		`Day to migrate to, default tomorrow. Example: --to="3/5".`)

	addMigrateList(cmd)

	topLevel.AddCommand(cmd)
}

func addMigrateList(parent *cobra.Command) {
	io := &options.IDOptions{}
	from := ""

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list the bookings that would be carried forward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDay, _, err := migrationWindow(from, "")
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := migrate.Migrate{
				From:        fromDay,
				List:        true,
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().StringVar(&from, "from", "",
		`Day to list, default today. Example: --from="3/3".`)

	parent.AddCommand(cmd)
}

func migrationWindow(from, to string) (time.Time, time.Time, error) {
	fromDay := time.Now()
	if from != "" {
		d, err := options.ParseDay(from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		fromDay = d
	}

	toDay := fromDay.AddDate(0, 0, 1)
	if to != "" {
		d, err := options.ParseDay(to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		toDay = d
	}

	return fromDay, toDay, nil
}
