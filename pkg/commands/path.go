package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/store"
)

func addPath(topLevel *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "path",
		Short: "print where the list is stored",
		Example: `
todo path
cat $(todo path)
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(lo)
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p.Path(cfg.Name()))
			return err
		},
	}

	options.AddListArgs(cmd, lo)

	topLevel.AddCommand(cmd)
}
