package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader locates and reads the configuration file.
type Loader struct {
	OverridePath string
}

// NewLoader creates a Loader. overridePath, when set and present, wins over
// the default locations.
func NewLoader(overridePath string) *Loader {
	return &Loader{OverridePath: overridePath}
}

// Load reads the configuration, or returns defaults when no file exists.
func (l *Loader) Load() (*Config, error) {
	path := l.Path()
	if path == "" {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile parses the file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the configuration file to use, or "" if none exists.
func (l *Loader) Path() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if wd, err := os.Getwd(); err == nil {
		local := filepath.Join(wd, ".whiteboardrc")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		xdg := filepath.Join(home, ".config", "whiteboard", "config.rc")
		if _, err := os.Stat(xdg); err == nil {
			return xdg
		}
	}

	return ""
}

// ResolveDataDir returns the directory for the settings database and log file.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".whiteboard"), nil
}
