package commands

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/runner/ui"
	"tableflip.dev/todo/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
todo ui
todo ui --name groceries
`,
		ValidArgs: []string{},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.New("ui needs an interactive terminal, try `todo list`")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(lo)
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{Level: cfg.LogLevel(), Path: cfg.LogFile()})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			i := ui.UI{Config: cfg, Persistence: p, Logger: logger}
			return i.Do(context.Background())
		},
	}

	options.AddListArgs(cmd, lo)

	topLevel.AddCommand(cmd)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
