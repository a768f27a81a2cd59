// Package store persists the list as a plain text file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// Persistence reads and replaces whole list files by name.
type Persistence interface {
	// Read returns the file contents. A missing file reports an error
	// matching os.ErrNotExist.
	Read(name string) (string, error)
	// Write replaces the file contents.
	Write(name, contents string) error
	// Path returns where name is stored.
	Path(name string) string
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Writes land in TempDir first and are renamed over the old file,
		// so a crash mid-save leaves the previous contents intact.
		TempDir:      filepath.Join(basePath, tempDirName),
		CacheSizeMax: 1024 * 1024, // 1MB
		PathPerm:     0o755,
		FilePerm:     0o644,
	}), basePath: basePath}, nil
}

const tempDirName = ".tmp"

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Read(name string) (string, error) {
	val, err := p.d.Read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		return "", fmt.Errorf("store: read %s: %w", name, err)
	}
	return string(val), nil
}

func (p *persistence) Write(name, contents string) error {
	if err := p.d.Write(name, []byte(contents)); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	return nil
}

func (p *persistence) Path(name string) string {
	pk := keyToPathTransform(name)
	return filepath.Join(append([]string{p.basePath}, append(pk.Path, pk.FileName)...)...)
}

// Lists are stored flat, one file per name directly under the base path.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
