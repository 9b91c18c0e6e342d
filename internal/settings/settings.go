// Package settings builds the process-wide key/value snapshot used as the
// fallback tier when resolving provider credentials.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// DotEnv is the file name searched for when no explicit path is configured.
const DotEnv = ".env"

// Settings is a read-only snapshot of process-wide configuration.
type Settings map[string]string

// Get returns the value for key, or "" if it is not set.
func (s Settings) Get(key string) string {
	return s[key]
}

// Options controls how Load builds a snapshot.
type Options struct {
	// Path is an explicit dotenv file. When empty, the nearest .env walking up
	// from Dir is used, if any.
	Path string
	// Dir is where the search starts. Defaults to the working directory.
	Dir string
	// Environ overrides os.Environ, mostly for tests.
	Environ []string
	Logger  *log.Logger
}

// FromEnviron builds a snapshot from KEY=VALUE pairs. Later pairs win.
func FromEnviron(environ []string) Settings {
	s := make(Settings, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		s[k] = v
	}
	return s
}

// Load reads the dotenv file described by opts and overlays the process
// environment on top of it. The process environment is never modified.
func Load(opts Options) (Settings, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	path := opts.Path
	if path == "" {
		dir := opts.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("could not get working directory: %w", err)
			}
			dir = wd
		}
		path = FindNearest(dir)
	}

	s := Settings{}
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("no dotenv file", "path", path)
		case err != nil:
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		default:
			logger.Debug("loaded dotenv file", "path", path, "keys", len(values))
			for k, v := range values {
				s[k] = v
			}
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	for k, v := range FromEnviron(environ) {
		s[k] = v
	}
	return s, nil
}

// FindNearest returns the closest .env file in dir or any of its parents, or
// "" if there is none.
func FindNearest(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, DotEnv)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
