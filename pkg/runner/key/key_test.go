package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestKeyListsBindings(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	k := Key{Out: &buf}
	if err := k.Do(context.Background()); err != nil {
		t.Fatalf("key: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Keys", "enter", "ctrl+d", "esc, ctrl+c, ctrl+q", "save and quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
