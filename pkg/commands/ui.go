package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/rota/pkg/assist"
	"tableflip.dev/rota/pkg/runner/ui"
	"tableflip.dev/rota/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive roster timeline",
		Example: `
rota ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			i := ui.UI{Persistence: p, Client: assist.New(cfg.Assist())}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
