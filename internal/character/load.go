package character

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvVar holds a JSON encoded character. When set it takes precedence over
// any path given on the command line.
const EnvVar = "CHARACTER_JSON"

// DefaultDir is where bare character file names are looked up.
const DefaultDir = "../characters"

// LoadError reports which source a character failed to load from.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load character from %s: %s", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader loads characters. The zero value reads CHARACTER_JSON from the
// process environment and never touches the filesystem.
type Loader struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	Logger    *log.Logger

	// Files enables loading characters from the comma separated path list
	// when CHARACTER_JSON is not set.
	Files bool
	// Dir is used for bare file names. Defaults to DefaultDir.
	Dir string
	// WorkDir is used for relative paths. Defaults to the working directory.
	WorkDir string
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

func (l *Loader) lookupEnv(key string) (string, bool) {
	if l.LookupEnv == nil {
		return os.LookupEnv(key)
	}
	return l.LookupEnv(key)
}

// Load returns the validated characters to run. A character from
// CHARACTER_JSON wins and charactersArg is then ignored. Otherwise the result
// is empty unless file loading is enabled. On error no characters are
// returned.
func (l *Loader) Load(charactersArg string) ([]Character, error) {
	if raw, ok := l.lookupEnv(EnvVar); ok && raw != "" {
		l.logger().Info("loading character from environment", "env", EnvVar)
		c, err := Parse([]byte(raw))
		if err != nil {
			err := &LoadError{Source: EnvVar, Err: err}
			l.logger().Error("could not load character", "err", err)
			return nil, err
		}
		l.logger().Debug("loaded character", "name", c.Name)
		return []Character{c}, nil
	}

	if !l.Files || strings.TrimSpace(charactersArg) == "" {
		return []Character{}, nil
	}

	paths, err := l.Paths(charactersArg)
	if err != nil {
		return nil, err
	}
	characters := make([]Character, 0, len(paths))
	for _, path := range paths {
		c, err := ReadFile(path)
		if err != nil {
			err := &LoadError{Source: path, Err: err}
			l.logger().Error("could not load character", "err", err)
			return nil, err
		}
		l.logger().Debug("loaded character", "name", c.Name, "path", path)
		characters = append(characters, c)
	}
	return characters, nil
}

// Paths resolves a comma separated list of character files. Bare file names
// are looked up in the characters directory, everything else relative to the
// working directory.
func (l *Loader) Paths(charactersArg string) ([]string, error) {
	wd := l.WorkDir
	if wd == "" {
		var err error
		wd, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get working directory: %w", err)
		}
	}
	dir := l.Dir
	if dir == "" {
		dir = DefaultDir
	}

	var paths []string
	for _, p := range strings.Split(charactersArg, ",") {
		p = strings.TrimPrefix(strings.TrimSpace(p), "file://")
		if p == "" {
			continue
		}
		if filepath.Base(p) == p {
			p = filepath.Join(dir, p)
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(wd, p)
		}
		paths = append(paths, filepath.Clean(p))
	}
	return paths, nil
}

// Parse decodes and validates a single character.
func Parse(data []byte) (Character, error) {
	var c Character
	if err := json.Unmarshal(data, &c); err != nil {
		return Character{}, fmt.Errorf("could not parse character: %w", err)
	}
	if err := Validate(c); err != nil {
		return Character{}, fmt.Errorf("invalid character: %w", err)
	}
	return c, nil
}

// ReadFile reads, decodes and validates the character at path.
func ReadFile(path string) (Character, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		return Character{}, err //nolint:wrapcheck
	}
	return Parse(bts)
}
