package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "todo",
		Short: base.Wrap80("A single todo list in the terminal, saved as plain text."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addPath(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
}

// loadConfig reads the configuration and applies a --name override.
func loadConfig(lo *options.ListOptions) (*store.FileConfig, error) {
	c, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	cfg := &store.FileConfig{
		Path:    c.BasePath(),
		File:    c.Name(),
		Quiet:   c.Debounce(),
		Level:   c.LogLevel(),
		LogPath: c.LogFile(),
	}
	if lo != nil && lo.Name != "" {
		cfg.File = lo.Name
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
