package list

import "unicode/utf8"

// Signals are the handlers an Item forwards its user-facing signals to. A nil
// handler drops the signal.
type Signals struct {
	// Changed fires when the text changes while notifications are unblocked.
	Changed func()
	// Activate fires when the user submits the row (enter).
	Activate func()
	// Insert fires when the row's insert button is pressed.
	Insert func()
	// Remove fires when the row's remove button is pressed.
	Remove func()
}

// Item is one row of the list. It plays the part of the row's editable
// field: the UI reads and writes the text through it and forwards the row's
// signals to it.
type Item struct {
	// Row is the zero-based display position. It is maintained by Store.
	Row int

	text    string
	blocked bool
	signals Signals
}

// Text returns the current content.
func (it *Item) Text() string {
	return it.text
}

// Len returns the content length in characters.
func (it *Item) Len() int {
	return utf8.RuneCountInString(it.text)
}

// SetText replaces the content and signals Changed unless notifications are
// blocked or the content is unchanged.
func (it *Item) SetText(s string) {
	if s == it.text {
		return
	}
	it.text = s
	if !it.blocked && it.signals.Changed != nil {
		it.signals.Changed()
	}
}

// SetTextQuiet replaces the content without signalling Changed.
func (it *Item) SetTextQuiet(s string) {
	it.Block()
	it.SetText(s)
	it.Unblock()
}

// Block suppresses Changed until Unblock.
func (it *Item) Block() { it.blocked = true }

// Unblock re-enables Changed.
func (it *Item) Unblock() { it.blocked = false }

// Blocked reports whether Changed is suppressed.
func (it *Item) Blocked() bool { return it.blocked }

// Connect replaces the item's signal handlers.
func (it *Item) Connect(s Signals) {
	it.signals = s
}

// Activate forwards a submit from the UI.
func (it *Item) Activate() { emit(it.signals.Activate) }

// PressInsert forwards an insert button press from the UI.
func (it *Item) PressInsert() { emit(it.signals.Insert) }

// PressRemove forwards a remove button press from the UI.
func (it *Item) PressRemove() { emit(it.signals.Remove) }

func emit(fn func()) {
	if fn != nil {
		fn()
	}
}
