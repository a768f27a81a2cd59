package options

import (
	"github.com/spf13/cobra"
)

// ListOptions
type ListOptions struct {
	// Name overrides the configured list name when set.
	Name    string
	ShowRow bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"List to use, instead of the configured one.")
}

func AddShowRowArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().BoolVar(&o.ShowRow, "rows", false,
		"Show row numbers.")
}
