// Package events defines the messages processed by the foreground
// coordinator. UI handlers, the debounce timer, the coordinator itself and
// the background actor all produce them; only the coordinator consumes them.
package events

import (
	"fmt"

	"tableflip.dev/todo/pkg/debounce"
	"tableflip.dev/todo/pkg/entity"
)

// Event is one message on the coordinator's event stream.
type Event interface {
	// Describe renders the event in a human-friendly format for logs.
	Describe() string
}

// Insert asks for a new row directly below Entity. A stale or zero Entity
// inserts at the top.
type Insert struct {
	Entity entity.ID
}

func (e Insert) Describe() string { return fmt.Sprintf("insert after:%s", e.Entity) }

// Remove asks for the row identified by Entity to be removed.
type Remove struct {
	Entity entity.ID
}

func (e Remove) Describe() string { return fmt.Sprintf("remove entity:%s", e.Entity) }

// Modified signals that some row's text changed and a save is due.
type Modified struct{}

func (Modified) Describe() string { return "modified" }

// SyncToDisk asks for the list to be serialized and saved. Token identifies
// the debounce trigger that produced it.
type SyncToDisk struct {
	Token debounce.Token
}

func (e SyncToDisk) Describe() string { return fmt.Sprintf("sync token:%d", e.Token) }

// Flush asks for any pending save to happen now.
type Flush struct{}

func (Flush) Describe() string { return "flush" }

// Load carries previously persisted content read by the background actor.
type Load struct {
	Data string
}

func (e Load) Describe() string { return fmt.Sprintf("load bytes:%d", len(e.Data)) }

// Closed signals that the user asked to close the list.
type Closed struct{}

func (Closed) Describe() string { return "closed" }

// Quit signals that the background actor drained its commands and the
// process may exit.
type Quit struct{}

func (Quit) Describe() string { return "quit" }
