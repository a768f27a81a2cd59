// Package coordinator owns the list and applies every mutation to it.
//
// A Coordinator is driven one event at a time from a single goroutine, either
// its own Run loop or a UI loop that calls Handle. Nothing else touches the
// list store. Saves are handed to the background actor as commands and never
// awaited; the only ordering point is Closed, which queues the final Save
// ahead of Quit on the same command mailbox.
package coordinator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/todo/pkg/background"
	"tableflip.dev/todo/pkg/debounce"
	"tableflip.dev/todo/pkg/entity"
	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/list"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/mailbox"
)

// Options configures a Coordinator.
type Options struct {
	// Name is the list name sent with every Save.
	Name      string
	Events    *mailbox.Mailbox[events.Event]
	Commands  *mailbox.Mailbox[background.Command]
	// Debounce is the quiet period before a save. Zero means
	// debounce.DefaultDelay.
	Debounce  time.Duration
	// AwaitLoad tells the coordinator a Load for the stored list is queued.
	// Until it is handled, Closed does not overwrite the stored list unless
	// the rows were edited.
	AwaitLoad bool
	Logger    *zap.Logger
}

// Coordinator is the foreground state machine.
type Coordinator struct {
	name     string
	store    *list.Store
	events   *mailbox.Mailbox[events.Event]
	commands *mailbox.Mailbox[background.Command]
	debounce *debounce.Scheduler
	logger   *zap.Logger

	focus        entity.ID
	closed       bool
	awaitingLoad bool
	edited       bool
}

// New returns a Coordinator whose list holds one empty row.
func New(opts Options) (*Coordinator, error) {
	if opts.Events == nil || opts.Commands == nil {
		return nil, errors.New("coordinator: event and command mailboxes required")
	}
	c := &Coordinator{
		name:     opts.Name,
		events:   opts.Events,
		commands: opts.Commands,
		logger:   logging.OrNop(opts.Logger).Named("coordinator"),

		awaitingLoad: opts.AwaitLoad,
	}
	c.store = list.New(c.connect)
	c.debounce = debounce.New(opts.Debounce, func(t debounce.Token) {
		c.events.Send(events.SyncToDisk{Token: t})
	})
	c.focus = c.store.InsertAt(0)
	return c, nil
}

// connect wires a new item's signals to events. Handlers only construct and
// enqueue events; the effects happen when the events are handled.
func (c *Coordinator) connect(id entity.ID, it *list.Item) {
	insert := func() {
		if it.Len() == 0 {
			return
		}
		c.events.Send(events.Insert{Entity: id})
	}
	it.Connect(list.Signals{
		Changed:  func() { c.events.Send(events.Modified{}) },
		Activate: insert,
		Insert:   insert,
		Remove:   func() { c.events.Send(events.Remove{Entity: id}) },
	})
}

// Store returns the list for read access and for the UI boundary's edits.
// It must only be used from the goroutine driving Handle.
func (c *Coordinator) Store() *list.Store {
	return c.store
}

// Events returns the mailbox the Coordinator consumes.
func (c *Coordinator) Events() *mailbox.Mailbox[events.Event] {
	return c.events
}

// SavePending reports whether a debounced save is outstanding.
func (c *Coordinator) SavePending() bool {
	return c.debounce.Pending()
}

// Closing reports whether Closed has been handled.
func (c *Coordinator) Closing() bool {
	return c.closed
}

// TakeFocus returns the row that should receive focus, if one was requested
// since the last call.
func (c *Coordinator) TakeFocus() (entity.ID, bool) {
	id := c.focus
	c.focus = entity.ID{}
	return id, !id.IsZero()
}

// Handle applies one event and reports whether the loop should stop.
func (c *Coordinator) Handle(ev events.Event) bool {
	c.logger.Debug("event", zap.String(logging.FieldEvent, ev.Describe()))

	if c.closed {
		// Only the actor's confirmation matters once the final save is queued.
		_, quit := ev.(events.Quit)
		return quit
	}

	switch ev := ev.(type) {
	case events.Insert:
		c.edited = true
		c.focus = c.store.InsertAfter(ev.Entity)
	case events.Remove:
		if !c.store.RemoveGuarded(ev.Entity) {
			c.logger.Debug("remove ignored", zap.Stringer(logging.FieldEntity, ev.Entity))
			break
		}
		c.edited = true
	case events.Modified:
		c.edited = true
		c.debounce.Notify()
	case events.SyncToDisk:
		if c.debounce.Claim(ev.Token) {
			c.syncToDisk()
		}
	case events.Flush:
		c.debounce.Flush()
	case events.Load:
		c.load(ev.Data)
	case events.Closed:
		c.close()
	case events.Quit:
		return true
	default:
		c.logger.Warn("unknown event", zap.String(logging.FieldEvent, ev.Describe()))
	}
	return false
}

// Drain handles every event already queued, in order, and reports whether
// one of them stopped the loop.
func (c *Coordinator) Drain() bool {
	for {
		ev, ok := c.events.TryRecv()
		if !ok {
			return false
		}
		if c.Handle(ev) {
			return true
		}
	}
}

// Run handles events until Quit or ctx is done.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		ev, err := c.events.Recv(ctx)
		if err != nil {
			return err
		}
		if c.Handle(ev) {
			return nil
		}
	}
}

func (c *Coordinator) load(data string) {
	c.awaitingLoad = false
	c.store.Load(data)
	if c.store.Len() == 0 {
		c.store.InsertAt(0)
	}
	if rows := c.store.Rows(); len(rows) > 0 {
		c.focus = rows[0]
	}
}

func (c *Coordinator) syncToDisk() {
	contents := c.store.Serialize()
	c.commands.Send(background.Save{Name: c.name, Contents: contents})
}

func (c *Coordinator) close() {
	c.closed = true
	c.debounce.Cancel()
	if c.awaitingLoad && !c.edited {
		c.logger.Warn("closed before the stored list loaded, leaving it untouched",
			zap.String(logging.FieldList, c.name))
	} else {
		c.syncToDisk()
	}
	c.commands.Send(background.Quit{})
}
