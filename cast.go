package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/cast/internal/character"
	"github.com/charmbracelet/cast/internal/provider"
	"github.com/charmbracelet/cast/internal/settings"
	"github.com/charmbracelet/log"
	xstrings "github.com/charmbracelet/x/exp/strings"
)

// report is the credential resolved for one character.
type report struct {
	Character string        `json:"character" yaml:"character"`
	Provider  provider.Name `json:"provider" yaml:"provider"`
	Tier      provider.Tier `json:"tier,omitempty" yaml:"tier,omitempty"`
	Key       string        `json:"key,omitempty" yaml:"key,omitempty"`
	Token     string        `json:"token,omitempty" yaml:"token,omitempty"`
	Missing   bool          `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Cast wires the loaded configuration to the character loader and the
// credential resolver.
type Cast struct {
	Config Config
	Logger *log.Logger
	Output io.Writer

	// Argv and LookupEnv default to os.Args and os.LookupEnv.
	Argv      []string
	LookupEnv func(string) (string, bool)
	Environ   []string
}

// Run loads the characters and prints the credential report.
func (c *Cast) Run() error {
	if c.Config.Providers {
		return renderProviders(c.Output, c.Config)
	}

	override, err := parseProvider(c.Config.Provider)
	if err != nil {
		return err
	}

	global, err := settings.Load(settings.Options{
		Path:    c.Config.DotEnv,
		Environ: c.Environ,
		Logger:  c.Logger,
	})
	if err != nil {
		return castError{err, "Could not load process-wide settings."}
	}

	argv := c.Argv
	if argv == nil {
		argv = os.Args
	}
	args := parseArguments(argv, c.Logger)

	loader := character.Loader{
		LookupEnv: c.LookupEnv,
		Logger:    c.Logger,
		Files:     c.Config.CharacterFiles,
		Dir:       c.Config.CharactersDir,
	}
	characters, err := loader.Load(args.Paths())
	if err != nil {
		var lerr *character.LoadError
		if errors.As(err, &lerr) {
			return castError{err, fmt.Sprintf("Could not load character from %s.", lerr.Source)}
		}
		return castError{err, "Could not load characters."}
	}
	if len(characters) == 0 {
		c.Logger.Info("no character loaded, using default", "env", character.EnvVar)
		characters = []character.Character{character.Default()}
	}

	reports := resolve(characters, override, global)
	if c.Config.Copy {
		if err := copyToken(reports); err != nil {
			return err
		}
		c.Logger.Info("copied credential to clipboard")
	}
	if !c.Config.ShowToken {
		for i := range reports {
			reports[i].Token = mask(reports[i].Token)
		}
	}
	return render(c.Output, c.Config, reports)
}

// resolve finds the credential of each character, for its own model provider
// unless override is set.
func resolve(characters []character.Character, override provider.Name, global provider.Source) []report {
	reports := make([]report, 0, len(characters))
	for _, ch := range characters {
		name := ch.ModelProvider
		if override != "" {
			name = override
		}
		r := report{
			Character: ch.Name,
			Provider:  name,
		}
		if res, ok := provider.Lookup(name, ch.Secrets(), global); ok {
			r.Tier = res.Tier
			r.Key = res.Key
			r.Token = res.Token
		} else {
			r.Missing = true
		}
		reports = append(reports, r)
	}
	return reports
}

func parseProvider(s string) (provider.Name, error) {
	if s == "" {
		return "", nil
	}
	name, err := provider.Parse(s)
	if err != nil {
		return "", castError{err, fmt.Sprintf(
			"Provider must be one of %s.",
			xstrings.EnglishJoin(provider.Names(), true),
		)}
	}
	return name, nil
}

func copyToken(reports []report) error {
	for _, r := range reports {
		if r.Token == "" {
			continue
		}
		if err := clipboard.WriteAll(r.Token); err != nil {
			return castError{err, "Could not copy to clipboard."}
		}
		return nil
	}
	return castError{
		newUserErrorf("no credential was resolved"),
		"Nothing to copy.",
	}
}

// mask hides all but the last four characters of token. Short tokens are
// hidden entirely.
func mask(token string) string {
	const visible, minLen = 4, 12
	if token == "" {
		return ""
	}
	if len(token) < minLen {
		return strings.Repeat("*", 8) //nolint:mnd
	}
	return strings.Repeat("*", 8) + token[len(token)-visible:] //nolint:mnd
}
