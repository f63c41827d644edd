package commands

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/commands/options"
	"tableflip.dev/rota/pkg/runner/sub"
	"tableflip.dev/rota/pkg/schedule"
	"tableflip.dev/rota/pkg/store"
)

func addSub(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sub",
		Short: base.Wrap80("Manage sub-bookings inside a container block."),
		Example: `
rota sub add 3 "Appendectomy" --patient="B. Rama" --time="09:30-10:15" --room=OR-1
rota sub remove 3 2f6c13a2-...
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addSubAdd(cmd)
	addSubRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addSubAdd(parent *cobra.Command) {
	io := &options.IDOptions{}
	patient := ""
	when := ""
	room := ""
	note := ""

	cmd := &cobra.Command{
		Use:   "add [booking id] [title]",
		Short: "add a sub-booking to a block",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := sub.Sub{
				BookingID: id,
				Sub: schedule.SubBooking{
					ID:      uuid.NewString(),
					Title:   strings.Join(args[1:], " "),
					Patient: patient,
					Room:    room,
					Note:    note,
					When:    schedule.ParseTimeSpec(when),
				},
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().StringVar(&patient, "patient", "", "Patient name.")
	cmd.Flags().StringVar(&when, "time", "",
		`Time inside the block, example: --time="09:30-10:15" or --time=45m.`)
	cmd.Flags().StringVar(&room, "room", "", "Operating room or location.")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note.")

	parent.AddCommand(cmd)
}

func addSubRemove(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "remove [booking id] [sub id]",
		Aliases: []string{"rm"},
		Short:   "remove a sub-booking from a block",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := sub.Sub{
				BookingID:   id,
				Remove:      true,
				SubID:       args[1],
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	parent.AddCommand(cmd)
}
