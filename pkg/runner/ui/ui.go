// Package ui runs one interactive editing session over a stored list.
package ui

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tableflip.dev/todo/pkg/background"
	"tableflip.dev/todo/pkg/coordinator"
	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/mailbox"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/tui/listview"
)

// Program drives a coordinator until it reports done.
type Program func(ctx context.Context, coord *coordinator.Coordinator) error

type UI struct {
	Config      store.Config
	Persistence store.Persistence
	Logger      *zap.Logger
	// Program defaults to the terminal list view.
	Program Program
}

// Do locks the list, starts the background actor, runs the program and
// returns once the actor has written the final save.
func (u *UI) Do(ctx context.Context) error {
	if u.Config == nil || u.Persistence == nil {
		return errors.New("can not open ui, no persistence")
	}
	logger := logging.OrNop(u.Logger)
	program := u.Program
	if program == nil {
		program = listview.Run
	}

	unlock, err := store.Lock(u.Config)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.Warn("unlock failed", zap.Error(err))
		}
	}()

	evs := mailbox.New[events.Event]()
	cmds := mailbox.New[background.Command]()

	actor, err := background.New(background.Options{
		Store:    u.Persistence,
		Name:     u.Config.Name(),
		Commands: cmds,
		Events:   evs,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	// The actor is not bound to ctx: it has to outlive the program long
	// enough to write the final save.
	actorDone := make(chan error, 1)
	go func() { actorDone <- actor.Run(context.Background()) }()

	// Any stored list is queued as Load before the program or a signal can
	// queue Closed, so the final save never replaces it with the empty seed.
	<-actor.Ready()

	coord, err := coordinator.New(coordinator.Options{
		Name:      u.Config.Name(),
		Events:    evs,
		Commands:  cmds,
		Debounce:  u.Config.Debounce(),
		AwaitLoad: actor.Loaded(),
		Logger:    logger,
	})
	if err != nil {
		cmds.Send(background.Quit{})
		<-actorDone
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	go closeOnSignal(evs, stop)

	programCtx, cancel := context.WithCancel(ctx)
	runErr := program(programCtx, coord)
	cancel()

	if !coord.Closing() {
		// The program ended without closing the list. Its goroutine is gone
		// and the coordinator has no other owner, so whatever it left queued
		// is handled here before the save and quit.
		logger.Info("program ended without close", zap.Error(runErr))
		if !coord.Drain() && !coord.Closing() {
			coord.Handle(events.Closed{})
		}
	}

	if err := <-actorDone; err != nil {
		logger.Error("background actor", zap.Error(err))
	}
	return runErr
}

func closeOnSignal(evs *mailbox.Mailbox[events.Event], stop <-chan struct{}) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		evs.Send(events.Closed{})
	case <-stop:
	}
}
