package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by Lock when another process holds the list.
var ErrLocked = errors.New("store: list is open in another process")

// Lock takes an exclusive, non-blocking lock on the named list so that only
// one process ever writes it. Call the returned func to release it.
func Lock(cfg Config) (func() error, error) {
	if err := os.MkdirAll(cfg.BasePath(), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	fl := flock.New(LockPath(cfg))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("store: lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return fl.Unlock, nil
}

// LockPath returns the lock file guarding the configured list.
func LockPath(cfg Config) string {
	return filepath.Join(cfg.BasePath(), "."+cfg.Name()+".lock")
}
