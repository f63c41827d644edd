package commands

import (
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/assist"
	"tableflip.dev/rota/pkg/commands/options"
	runner "tableflip.dev/rota/pkg/runner/assist"
	"tableflip.dev/rota/pkg/store"
)

func addAssist(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "assist [prompt]",
		Short: base.Wrap80("Ask the scheduling assistant to book operations from a natural-language request."),
		Example: `
rota assist "book a coronary bypass for tomorrow morning"
rota assist analyze
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			s := runner.Assist{
				Prompt:      strings.Join(args, " "),
				Client:      assist.New(cfg.Assist()),
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)

	addAnalyze(cmd)

	topLevel.AddCommand(cmd)
}

func addAnalyze(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "summarize the whole schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			s := runner.Assist{
				Analyze:     true,
				Client:      assist.New(cfg.Assist()),
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)

	parent.AddCommand(cmd)
}
