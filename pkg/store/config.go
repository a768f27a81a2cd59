package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/todo/pkg/debounce"
)

const (
	defaultPath = "~/.todo"
	defaultName = "Task"
	logFileName = "todo.log"
)

// Config locates the list file and tunes the processes that use it.
type Config interface {
	// BasePath is the directory holding the list file.
	BasePath() string
	// Name is the list file name inside BasePath.
	Name() string
	// Debounce is the quiet period before edits are saved.
	Debounce() time.Duration
	LogLevel() string
	// LogFile is where logs go while the terminal belongs to the UI.
	LogFile() string
}

// LoadConfig reads .todo.yaml from $TODO_CONFIG_PATH or the working
// directory, then TODO_* environment variables. A missing file is fine.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("name", defaultName)
	v.SetDefault("debounce", debounce.DefaultDelay)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetConfigName(".todo") // .yaml is implicit
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("TODO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	cfg := &FileConfig{
		Path:    base,
		File:    v.GetString("name"),
		Quiet:   v.GetDuration("debounce"),
		Level:   v.GetString("log.level"),
		LogPath: v.GetString("log.file"),
	}
	if cfg.LogPath != "" {
		if cfg.LogPath, err = homedir.Expand(cfg.LogPath); err != nil {
			return nil, fmt.Errorf("store: expand log file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FileConfig is the plain Config implementation.
type FileConfig struct {
	Path    string        `json:"path"`
	File    string        `json:"name"`
	Quiet   time.Duration `json:"debounce"`
	Level   string        `json:"logLevel"`
	LogPath string        `json:"logFile"`
}

// Validate rejects names that would escape BasePath.
func (f *FileConfig) Validate() error {
	name := strings.TrimSpace(f.File)
	switch {
	case f.Path == "":
		return errors.New("store: path required")
	case name == "" || name == "." || name == "..":
		return fmt.Errorf("store: invalid list name %q", f.File)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("store: list name %q must not contain path separators", f.File)
	}
	return nil
}

func (f *FileConfig) BasePath() string { return f.Path }

func (f *FileConfig) Name() string { return f.File }

func (f *FileConfig) Debounce() time.Duration {
	if f.Quiet <= 0 {
		return debounce.DefaultDelay
	}
	return f.Quiet
}

func (f *FileConfig) LogLevel() string { return f.Level }

func (f *FileConfig) LogFile() string {
	if f.LogPath != "" {
		return f.LogPath
	}
	return filepath.Join(f.Path, logFileName)
}
