package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestListNumbersRows(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{ShowRow: true, Out: &buf}
	pp.TitleWithCount("Task", 2)
	pp.List("milk", "eggs")

	out := buf.String()
	for _, want := range []string{"Task - 2 tasks", "1  •  milk", "2  •  eggs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.TitleWithCount("Task", 0)
	pp.List()

	out := buf.String()
	if !strings.Contains(out, "Task - 0 tasks\n") || !strings.Contains(out, "none") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
