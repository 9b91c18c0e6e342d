package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"
)

// Args are the character paths given on the command line. Both are optional.
type Args struct {
	Character  string `json:"character,omitempty"`
	Characters string `json:"characters,omitempty"`
}

// Paths is the comma separated character list to load, falling back to the
// single --character value.
func (a Args) Paths() string {
	if a.Characters != "" {
		return a.Characters
	}
	return a.Character
}

func characterFlags(a *Args) *flag.FlagSet {
	fs := flag.NewFlagSet("characters", flag.ContinueOnError)
	fs.StringVar(&a.Character, "character", "", "Path to the character JSON file.")
	fs.StringVar(&a.Characters, "characters", "", "Comma separated list of paths to character JSON files.")
	return fs
}

// normalizeArguments drops the program name and every "--" separator, and
// splits --character=value into two tokens.
func normalizeArguments(argv []string) []string {
	if len(argv) == 0 {
		return nil
	}
	args := make([]string, 0, len(argv)-1)
	for _, arg := range argv[1:] {
		if arg == "--" {
			continue
		}
		if v, ok := strings.CutPrefix(arg, "--character="); ok {
			args = append(args, "--character", v)
			continue
		}
		args = append(args, arg)
	}
	return args
}

// parseArguments extracts the character flags from argv, which includes the
// program name. Other flags and positional arguments are ignored. It never
// fails: on a parse error it logs and returns empty Args.
func parseArguments(argv []string, logger *log.Logger) Args {
	var a Args
	logger.Debug("raw arguments", "argv", argv)
	fs := characterFlags(&a)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	if err := fs.Parse(normalizeArguments(argv)); err != nil {
		logger.Error("could not parse arguments", "err", err)
		return Args{}
	}
	logger.Debug("parsed arguments", "character", a.Character, "characters", a.Characters)
	return a
}
