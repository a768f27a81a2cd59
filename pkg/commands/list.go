package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/list"
	"tableflip.dev/todo/pkg/store"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "print the saved list",
		Example: `
todo list
todo list --rows
todo list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			cfg, err := loadConfig(lo)
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				ShowRow:     lo.ShowRow,
				JSON:        oo.JSON,
				Name:        cfg.Name(),
				Persistence: p,
				Out:         oo.Out,
			}
			return oo.HandleError(l.Do(context.Background()))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddShowRowArgs(cmd, lo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
