// Package listview is the terminal front end of the list.
//
// The bubbletea update loop is the coordinator's goroutine: a command waits
// for the event mailbox to fill and the update loop drains it through the
// coordinator, and key presses only edit the focused row or forward one of
// its signals. No key
// handler changes the list structure itself.
package listview

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/todo/pkg/coordinator"
	"tableflip.dev/todo/pkg/entity"
	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/list"
	"tableflip.dev/todo/pkg/tui/theme"
)

const title = "Todo"

// messages
type eventsReadyMsg struct{}
type stoppedMsg struct{ err error }

// Model renders the coordinator's list, one text input per row.
type Model struct {
	coord *coordinator.Coordinator
	ctx   context.Context
	theme theme.Theme

	inputs   map[entity.ID]textinput.Model
	focus    entity.ID
	focusRow int

	width    int
	detached bool
	quitting bool
	err      error
}

// New creates the UI model for coord.
func New(ctx context.Context, coord *coordinator.Coordinator) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		coord:  coord,
		ctx:    ctx,
		theme:  theme.Default(),
		inputs: make(map[entity.ID]textinput.Model),
	}
	m.sync()
	return m
}

// Init starts listening for events and focuses the first row.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.applyFocus())
}

func (m *Model) waitForEvent() tea.Cmd {
	evs := m.coord.Events()
	ctx := m.ctx
	return func() tea.Msg {
		if err := evs.Wait(ctx); err != nil {
			return stoppedMsg{err: err}
		}
		return eventsReadyMsg{}
	}
}

// Err returns why the event stream stopped, if it stopped early.
func (m *Model) Err() error {
	return m.err
}

// Update handles messages and keybindings
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for id, in := range m.inputs {
			in.SetWidth(m.inputWidth())
			m.inputs[id] = in
		}
	case eventsReadyMsg:
		if m.coord.Drain() {
			m.quitting = true
			return m, tea.Quit
		}
		// A close may also come from a signal rather than a key.
		m.detached = m.detached || m.coord.Closing()
		m.sync()
		cmds = append(cmds, m.applyFocus(), m.waitForEvent())
	case stoppedMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	case tea.KeyPressMsg:
		if !m.detached {
			cmds = append(cmds, m.handleKey(msg))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+c", "ctrl+q":
		// Keep the rows in memory but stop showing and editing them until
		// the actor confirms the final save.
		m.detached = true
		m.coord.Events().Send(events.Closed{})
		return nil
	case "ctrl+s":
		m.coord.Events().Send(events.Flush{})
		return nil
	case "up", "shift+tab":
		return m.moveFocus(-1)
	case "down", "tab":
		return m.moveFocus(1)
	}

	it, ok := m.coord.Store().Get(m.focus)
	if !ok {
		return nil
	}
	switch msg.String() {
	case "enter":
		it.Activate()
		return nil
	case "ctrl+n":
		it.PressInsert()
		return nil
	case "ctrl+d":
		it.PressRemove()
		return nil
	}

	in := m.inputs[m.focus]
	in, cmd := in.Update(msg)
	m.inputs[m.focus] = in
	it.SetText(in.Value())
	return cmd
}

// sync brings the inputs in line with the store after an event.
func (m *Model) sync() {
	store := m.coord.Store()
	rows := store.Rows()
	live := make(map[entity.ID]struct{}, len(rows))
	for _, id := range rows {
		live[id] = struct{}{}
		it, _ := store.Get(id)
		in, ok := m.inputs[id]
		if !ok {
			in = newInput()
			in.SetWidth(m.inputWidth())
		}
		if in.Value() != it.Text() {
			in.SetValue(it.Text())
			in.CursorEnd()
		}
		m.inputs[id] = in
	}
	for id := range m.inputs {
		if _, ok := live[id]; !ok {
			delete(m.inputs, id)
		}
	}

	if id, ok := m.coord.TakeFocus(); ok {
		m.focus = id
	}
	if it, ok := store.Get(m.focus); ok {
		m.focusRow = it.Row
		return
	}
	// The focused row went away; stay at the same position.
	if len(rows) == 0 {
		m.focus = entity.ID{}
		return
	}
	m.focusRow = min(m.focusRow, len(rows)-1)
	m.focus = rows[m.focusRow]
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	rows := m.coord.Store().Rows()
	if len(rows) == 0 {
		return nil
	}
	next := m.focusRow + delta
	if next < 0 || next >= len(rows) {
		return nil
	}
	m.focusRow = next
	m.focus = rows[next]
	return m.applyFocus()
}

func (m *Model) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for id, in := range m.inputs {
		if id == m.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
		m.inputs[id] = in
	}
	return cmd
}

// inputWidth leaves room for the focus marker and the row buttons.
func (m *Model) inputWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(m.width-12, 8)
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "New task"
	ti.CharLimit = 1024
	return ti
}

// View renders the title, one line per row and the key help.
func (m *Model) View() string {
	header := m.theme.Title.Render(title)
	if m.detached {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.theme.Status.Render("Saving…"))
	}

	store := m.coord.Store()
	lines := make([]string, 0, store.Len())
	for _, id := range store.Rows() {
		it, _ := store.Get(id)
		lines = append(lines, m.renderRow(id, it))
	}

	status := "saved"
	if m.coord.SavePending() {
		status = "unsaved changes"
	}
	footer := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Status.Render(status),
		m.theme.Help.Render("  ·  "+footerHelp()),
	)

	return strings.Join([]string{header, strings.Join(lines, "\n"), footer}, "\n\n")
}

func (m *Model) renderRow(id entity.ID, it *list.Item) string {
	marker := m.theme.Marker.Render("  ")
	if id == m.focus {
		marker = m.theme.Marker.Render("› ")
	}
	in := m.inputs[id]
	buttons := m.theme.Button.Render(" [+] [-]")
	if it.Len() == 0 {
		buttons = m.theme.Button.Render("     [-]")
	}
	return marker + in.View() + buttons
}

// Run launches the interactive TUI program and returns once the background
// actor has confirmed the final save.
func Run(ctx context.Context, coord *coordinator.Coordinator) error {
	m := New(ctx, coord)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.Err()
}
