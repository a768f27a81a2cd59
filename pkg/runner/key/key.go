// Package key provides CLI helpers to display the editor's key bindings.
package key

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/todo/pkg/tui/listview"
)

// Key prints the key bindings of the list editor.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

// Do renders the key table.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, "")
	k.Key(ctx, out, listview.Bindings())
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Key renders one row per binding.
func (k *Key) Key(_ context.Context, out io.Writer, bindings []listview.Binding) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Keys"), bold.Sprint("Action"))
	for _, b := range bindings {
		tbl.AddRow(strings.Join(b.Keys, ", "), b.Help)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
