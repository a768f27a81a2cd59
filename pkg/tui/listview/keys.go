package listview

import "strings"

// Binding names the keys that trigger one action.
type Binding struct {
	Keys []string
	Help string
	// Short is shown in the footer; empty keeps the binding out of it.
	Short string
}

// Bindings lists the editor's keys in display order.
func Bindings() []Binding {
	return []Binding{
		{Keys: []string{"enter"}, Help: "add a task below the current one (not on an empty row)", Short: "add below"},
		{Keys: []string{"ctrl+n"}, Help: "same as enter"},
		{Keys: []string{"ctrl+d"}, Help: "remove the current task (the last row stays)", Short: "remove"},
		{Keys: []string{"up", "shift+tab"}, Help: "focus the task above"},
		{Keys: []string{"down", "tab"}, Help: "focus the task below"},
		{Keys: []string{"ctrl+s"}, Help: "save now instead of after the quiet period", Short: "save"},
		{Keys: []string{"esc", "ctrl+c", "ctrl+q"}, Help: "save and quit", Short: "quit"},
	}
}

func footerHelp() string {
	var parts []string
	for _, b := range Bindings() {
		if b.Short == "" {
			continue
		}
		parts = append(parts, b.Keys[0]+" "+b.Short)
	}
	return strings.Join(parts, "  ")
}
