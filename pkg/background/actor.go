// Package background runs the actor that owns the list file. It is driven
// only by commands from the coordinator and reports back through the
// coordinator's event mailbox.
package background

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/mailbox"
	"tableflip.dev/todo/pkg/store"
)

// Command is one message on the actor's command stream.
type Command interface {
	isCommand()
}

// Save replaces the stored list Name with Contents.
type Save struct {
	Name     string
	Contents string
}

// Quit stops the actor once every earlier command has been handled.
type Quit struct{}

func (Save) isCommand() {}
func (Quit) isCommand() {}

// Options configures an Actor.
type Options struct {
	Store store.Persistence
	// Name is the list read on start.
	Name     string
	Commands *mailbox.Mailbox[Command]
	Events   *mailbox.Mailbox[events.Event]
	Logger   *zap.Logger
}

// Actor performs blocking storage I/O away from the coordinator.
type Actor struct {
	store    store.Persistence
	name     string
	commands *mailbox.Mailbox[Command]
	events   *mailbox.Mailbox[events.Event]
	logger   *zap.Logger
	ready    chan struct{}
	loaded   bool
}

// New returns an Actor. Store, Commands and Events are required.
func New(opts Options) (*Actor, error) {
	switch {
	case opts.Store == nil:
		return nil, errors.New("background: store required")
	case opts.Commands == nil:
		return nil, errors.New("background: command mailbox required")
	case opts.Events == nil:
		return nil, errors.New("background: event mailbox required")
	}
	return &Actor{
		store:    opts.Store,
		name:     opts.Name,
		commands: opts.Commands,
		events:   opts.Events,
		logger:   logging.OrNop(opts.Logger).Named("background"),
		ready:    make(chan struct{}),
	}, nil
}

// Run loads the list, then serves commands in send order until Quit or ctx
// is done. Storage errors are logged and never end the loop.
func (a *Actor) Run(ctx context.Context) error {
	a.load()
	close(a.ready)

	for {
		cmd, err := a.commands.Recv(ctx)
		if err != nil {
			if errors.Is(err, mailbox.ErrClosed) {
				return nil
			}
			return err
		}

		switch cmd := cmd.(type) {
		case Save:
			a.save(cmd)
		case Quit:
			a.commands.Close()
			if dropped := a.commands.Len(); dropped > 0 {
				a.logger.Warn("commands queued after quit ignored", zap.Int("count", dropped))
			}
			a.logger.Debug("quit")
			a.events.Send(events.Quit{})
			return nil
		default:
			a.logger.Error("unknown command", zap.String("type", fmt.Sprintf("%T", cmd)))
		}
	}
}

// Ready is closed once Run has read the stored list. By then any Load event
// is queued, so every event sent afterwards is handled after it.
func (a *Actor) Ready() <-chan struct{} {
	return a.ready
}

// Loaded reports whether a Load event was queued. It is only meaningful
// once Ready is closed.
func (a *Actor) Loaded() bool {
	return a.loaded
}

func (a *Actor) load() {
	if a.name == "" {
		return
	}
	data, err := a.store.Read(a.name)
	switch {
	case errors.Is(err, os.ErrNotExist):
		a.logger.Debug("no saved list", zap.String(logging.FieldList, a.name))
		return
	case err != nil:
		a.logger.Error("load failed", zap.String(logging.FieldList, a.name), zap.Error(err))
		return
	}
	a.logger.Debug("loaded", zap.String(logging.FieldList, a.name), zap.Int(logging.FieldBytes, len(data)))
	a.loaded = a.events.Send(events.Load{Data: data})
}

func (a *Actor) save(cmd Save) {
	if err := a.store.Write(cmd.Name, cmd.Contents); err != nil {
		a.logger.Error("save failed", zap.String(logging.FieldList, cmd.Name), zap.Error(err))
		return
	}
	a.logger.Debug("saved", zap.String(logging.FieldList, cmd.Name), zap.Int(logging.FieldBytes, len(cmd.Contents)))
}
