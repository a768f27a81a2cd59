package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func withHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TODO_CONFIG_PATH", dir)
	t.Setenv("TODO_PATH", dir)
	t.Setenv("TODO_NAME", "Task")
	return dir
}

func TestPathPrintsListFile(t *testing.T) {
	dir := withHome(t)
	out, err := run(t, "path")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if got := strings.TrimSpace(out); got != filepath.Join(dir, "Task") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestPathHonoursName(t *testing.T) {
	dir := withHome(t)
	out, err := run(t, "path", "--name", "groceries")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if got := strings.TrimSpace(out); got != filepath.Join(dir, "groceries") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestBadNameRejected(t *testing.T) {
	withHome(t)
	if _, err := run(t, "path", "--name", "../escape"); err == nil {
		t.Fatalf("expected invalid name error")
	}
}

func TestListJSON(t *testing.T) {
	dir := withHome(t)
	if err := os.WriteFile(filepath.Join(dir, "Task"), []byte("milk\n\neggs\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	out, err := run(t, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got struct {
		Tasks []string `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !reflect.DeepEqual(got.Tasks, []string{"milk", "eggs"}) {
		t.Fatalf("unexpected tasks %q", got.Tasks)
	}
}

func TestListPretty(t *testing.T) {
	dir := withHome(t)
	if err := os.WriteFile(filepath.Join(dir, "Task"), []byte("milk\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	out, err := run(t, "list", "--rows")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Task - 1 task") || !strings.Contains(out, "1  •  milk") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestListJSONError(t *testing.T) {
	withHome(t)
	out, err := run(t, "list", "--json", "--name", "a/b")
	if err != nil {
		t.Fatalf("json errors are printed, not returned: %v", err)
	}
	if !strings.Contains(out, `"error"`) {
		t.Fatalf("expected error object, got %q", out)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("unexpected version %q", out)
	}
}
