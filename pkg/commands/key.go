package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "print the editor key bindings",
		Example: `
todo key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Out: cmd.OutOrStdout()}
			return k.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
