// Package list prints a stored list without opening the editor.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	tasks "tableflip.dev/todo/pkg/list"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/store"
)

// List reads one list file and prints its non-empty rows.
type List struct {
	ShowRow     bool
	JSON        bool
	Name        string
	Persistence store.Persistence
	// Out defaults to color.Output.
	Out io.Writer
}

type listJSON struct {
	Name  string   `json:"name"`
	Path  string   `json:"path"`
	Tasks []string `json:"tasks"`
}

func (l *List) Do(_ context.Context) error {
	if l.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	out := l.Out
	if out == nil {
		out = color.Output
	}

	data, err := l.Persistence.Read(l.Name)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	rows := make([]string, 0)
	for _, line := range tasks.Lines(data) {
		if line != "" {
			rows = append(rows, line)
		}
	}

	if l.JSON {
		b, err := json.Marshal(listJSON{Name: l.Name, Path: l.Persistence.Path(l.Name), Tasks: rows})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}

	pp := printers.PrettyPrint{ShowRow: l.ShowRow, Out: out}
	pp.NewLine()
	pp.TitleWithCount(l.Name, len(rows))
	pp.List(rows...)
	return nil
}
