package listview

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/todo/pkg/background"
	"tableflip.dev/todo/pkg/coordinator"
	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/mailbox"
)

type fixture struct {
	model    *Model
	coord    *coordinator.Coordinator
	commands *mailbox.Mailbox[background.Command]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cmds := mailbox.New[background.Command]()
	c, err := coordinator.New(coordinator.Options{
		Name:     "Task",
		Events:   mailbox.New[events.Event](),
		Commands: cmds,
		Debounce: time.Hour,
	})
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	m := New(context.Background(), c)
	m.Init()
	return &fixture{model: m, coord: c, commands: cmds}
}

func (f *fixture) press(msgs ...tea.KeyPressMsg) {
	for _, msg := range msgs {
		f.model.Update(msg)
	}
}

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.press(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// pump delivers what waitForEvent would once events are queued and reports
// whether the program asked to quit.
func (f *fixture) pump() bool {
	if f.coord.Events().Len() > 0 {
		f.model.Update(eventsReadyMsg{})
	}
	return f.model.quitting
}

func (f *fixture) load(data string) {
	f.coord.Events().Send(events.Load{Data: data})
	f.pump()
}

func (f *fixture) texts() []string {
	return f.coord.Store().Texts()
}

func TestTypingEditsFocusedRow(t *testing.T) {
	f := newFixture(t)
	f.typeText("milk")
	f.pump()

	if got := f.texts(); !reflect.DeepEqual(got, []string{"milk"}) {
		t.Fatalf("expected typed text in the row, got %q", got)
	}
	if !f.coord.SavePending() {
		t.Fatalf("typing did not schedule a save")
	}
	if !strings.Contains(f.model.View(), "unsaved changes") {
		t.Fatalf("expected unsaved status in view")
	}
}

func TestEnterInsertsBelowAndMovesFocus(t *testing.T) {
	f := newFixture(t)
	f.typeText("a")
	f.press(tea.KeyPressMsg{Code: tea.KeyEnter})
	f.pump()
	f.typeText("b")
	f.pump()

	if got := f.texts(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %q", got)
	}
}

func TestEnterOnEmptyRowDoesNothing(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyPressMsg{Code: tea.KeyEnter})
	if n := f.coord.Events().Len(); n != 0 {
		t.Fatalf("enter on empty row queued %d events", n)
	}
	f.pump()
	if len(f.texts()) != 1 {
		t.Fatalf("expected one row, got %q", f.texts())
	}
}

func TestRemoveFocusedRowKeepsPosition(t *testing.T) {
	f := newFixture(t)
	f.load("a\nb\nc\n")
	f.press(tea.KeyPressMsg{Code: tea.KeyDown})
	f.press(tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	f.pump()

	if got := f.texts(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("expected [a c], got %q", got)
	}
	f.typeText("!")
	f.pump()
	if got := f.texts(); !reflect.DeepEqual(got, []string{"a", "c!"}) {
		t.Fatalf("expected focus to move to c, got %q", got)
	}
}

func TestMoveFocusStaysInBounds(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyPressMsg{Code: tea.KeyUp})
	f.press(tea.KeyPressMsg{Code: tea.KeyDown})
	f.typeText("x")
	f.pump()
	if got := f.texts(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("expected edit on the only row, got %q", got)
	}
}

func TestCtrlSFlushes(t *testing.T) {
	f := newFixture(t)
	f.typeText("eggs")
	f.pump()
	f.press(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	f.pump()

	cmd, ok := f.commands.TryRecv()
	if !ok {
		t.Fatalf("expected a save command")
	}
	if save, ok := cmd.(background.Save); !ok || save.Contents != "eggs\n" {
		t.Fatalf("unexpected command %#v", cmd)
	}
	if f.coord.SavePending() {
		t.Fatalf("flush left a pending save")
	}
}

func TestEscDetachesAndQuitsAfterConfirmation(t *testing.T) {
	f := newFixture(t)
	f.typeText("bread")
	f.pump()
	f.press(tea.KeyPressMsg{Code: tea.KeyEscape})

	if !strings.Contains(f.model.View(), "Saving") {
		t.Fatalf("expected saving view after esc, got %q", f.model.View())
	}
	f.typeText("ignored")
	f.pump()

	save, _ := f.commands.TryRecv()
	quit, _ := f.commands.TryRecv()
	if s, ok := save.(background.Save); !ok || s.Contents != "bread\n" {
		t.Fatalf("expected final save first, got %#v", save)
	}
	if _, ok := quit.(background.Quit); !ok {
		t.Fatalf("expected quit command second, got %#v", quit)
	}

	f.coord.Events().Send(events.Quit{})
	if !f.pump() {
		t.Fatalf("program did not quit after the actor confirmed")
	}
}

func TestLoadReplacesRows(t *testing.T) {
	f := newFixture(t)
	f.load("x\ny\n")

	view := f.model.View()
	for _, want := range []string{"Todo", "x", "y"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if len(f.model.inputs) != 2 {
		t.Fatalf("expected two inputs, got %d", len(f.model.inputs))
	}
}

func TestClosedFromSignalDetaches(t *testing.T) {
	f := newFixture(t)
	f.typeText("tea")
	f.pump()

	f.coord.Events().Send(events.Closed{})
	f.pump()
	if !strings.Contains(f.model.View(), "Saving") {
		t.Fatalf("expected saving view after close, got %q", f.model.View())
	}

	f.typeText("late")
	if got := f.texts(); !reflect.DeepEqual(got, []string{"tea"}) {
		t.Fatalf("typing after close changed the list: %q", got)
	}
}

func TestWaitForEventLeavesEventsQueued(t *testing.T) {
	f := newFixture(t)
	f.coord.Events().Send(events.Load{Data: "kept\n"})

	ctx, cancel := context.WithCancel(context.Background())
	m := New(ctx, f.coord)
	if _, ok := m.waitForEvent()().(eventsReadyMsg); !ok {
		t.Fatalf("expected a ready message")
	}
	if n := f.coord.Events().Len(); n != 1 {
		t.Fatalf("waiting consumed the event, %d left", n)
	}

	cancel()
	f.coord.Drain()
	msg := m.waitForEvent()()
	if stopped, ok := msg.(stoppedMsg); !ok || !errors.Is(stopped.err, context.Canceled) {
		t.Fatalf("expected stop on cancel, got %#v", msg)
	}
	if got := f.texts(); !reflect.DeepEqual(got, []string{"kept"}) {
		t.Fatalf("expected the load to reach the list, got %q", got)
	}
}
