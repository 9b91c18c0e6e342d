package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v9"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var help = map[string]string{
	"provider":        "Model provider to resolve credentials for, instead of each character's modelProvider.",
	"format":          "Output format (text, json, yaml, markdown).",
	"raw":             "Render output as plain text, even when connected to a TTY.",
	"show-token":      "Print resolved credentials in full instead of masking them.",
	"copy":            "Copy the first resolved credential to the clipboard.",
	"providers":       "List known providers and where their credentials are looked up.",
	"dotenv":          "Dotenv file with process-wide settings (defaults to the nearest .env).",
	"character-files": "Load characters from the paths given with --characters when CHARACTER_JSON is not set.",
	"characters-dir":  "Directory used for bare character file names.",
	"log-level":       "Log level (debug, info, warn, error).",
	"settings":        "Open settings in your $EDITOR.",
	"reset-settings":  "Backup your old settings file and reset everything to the defaults.",
	"help":            "Show help and exit.",
	"version":         "Show version and exit.",
}

// Format is an output format for the credential report.
type Format string

// Output formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

var formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}

func (f Format) valid() bool {
	for _, ff := range formats {
		if f == ff {
			return true
		}
	}
	return false
}

// Config holds the main configuration and is mapped to the YAML settings file.
type Config struct {
	Provider       string `yaml:"provider" env:"PROVIDER"`
	Format         Format `yaml:"format" env:"FORMAT"`
	Raw            bool   `yaml:"raw" env:"RAW"`
	ShowToken      bool   `yaml:"show-token" env:"SHOW_TOKEN"`
	DotEnv         string `yaml:"dotenv" env:"DOTENV"`
	CharacterFiles bool   `yaml:"character-files" env:"CHARACTER_FILES"`
	CharactersDir  string `yaml:"characters-dir" env:"CHARACTERS_DIR"`
	LogLevel       string `yaml:"log-level" env:"LOG_LEVEL"`
	Copy           bool
	Providers      bool
	ShowHelp       bool
	Version        bool
	Settings       bool
	ResetSettings  bool
	SettingsPath   string
}

func defaultConfig() Config {
	return Config{
		Format:   FormatText,
		LogLevel: "info",
	}
}

func ensureConfig() (Config, error) {
	c := defaultConfig()
	sp, err := xdg.ConfigFile(filepath.Join("cast", "cast.yml"))
	if err != nil {
		return c, castError{err, "Could not find settings path."}
	}
	c.SettingsPath = sp

	dir := filepath.Dir(sp)
	if dirErr := os.MkdirAll(dir, 0o700); dirErr != nil { //nolint:mnd
		return c, castError{dirErr, "Could not create settings directory."}
	}

	if err := writeConfigFile(sp); err != nil {
		return c, err
	}
	content, err := os.ReadFile(sp)
	if err != nil {
		return c, castError{err, "Could not read settings file."}
	}
	if err := yaml.Unmarshal(content, &c); err != nil {
		return c, castError{err, "Could not parse settings file."}
	}

	if err := env.ParseWithOptions(&c, env.Options{Prefix: "CAST_"}); err != nil {
		return c, castError{err, "Could not parse environment into settings file."}
	}

	return c, nil
}

// validate is run after flags were parsed.
func (c Config) validate() error {
	if !c.Format.valid() {
		return castError{
			fmt.Errorf("unknown format %q", c.Format),
			"Format must be one of text, json, yaml or markdown.",
		}
	}
	return nil
}

func writeConfigFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return createConfigFile(path)
	} else if err != nil {
		return castError{err, "Could not stat path."}
	}
	return nil
}

func createConfigFile(path string) error {
	tmpl := template.Must(template.New("config").Parse(configTemplate))

	f, err := os.Create(path)
	if err != nil {
		return castError{err, "Could not create configuration file."}
	}
	defer func() { _ = f.Close() }()

	m := struct {
		Config Config
		Help   map[string]string
	}{
		Config: defaultConfig(),
		Help:   help,
	}
	if err := tmpl.Execute(f, m); err != nil {
		return castError{err, "Could not render template."}
	}
	return nil
}

func resetSettings(path string) error {
	if _, err := os.Stat(path); err != nil {
		return castError{err, "Couldn't read config file."}
	}
	backup := path + ".bak"
	if err := os.Rename(path, backup); err != nil {
		return castError{err, "Couldn't backup config file."}
	}
	if err := createConfigFile(path); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "\n  Settings restored to defaults!")
	fmt.Fprintf(os.Stderr,
		"\n  %s %s\n\n",
		stderrStyles().Comment.Render("Your old settings have been saved to:"),
		stderrStyles().Link.Render(backup),
	)
	return nil
}

func useLine() string {
	appName := filepath.Base(os.Args[0])

	if stdoutRenderer().ColorProfile() == termenv.TrueColor {
		appName = stdoutStyles().AppName.Render(appName)
	}

	return fmt.Sprintf(
		"%s %s",
		appName,
		stdoutStyles().CliArgs.Render("[--character PATH] [--characters PATHS] [OPTIONS]"),
	)
}

func usageFunc(cmd *cobra.Command) error {
	fmt.Printf("Resolve model provider credentials for agent characters.\n\n")
	fmt.Printf(
		"Usage:\n  %s\n\n",
		useLine(),
	)
	fmt.Println("Options:")
	printFlag := func(f *flag.Flag) {
		if f.Hidden {
			return
		}
		if f.Shorthand == "" {
			fmt.Printf(
				"  %-44s %s\n",
				stdoutStyles().Flag.Render("--"+f.Name),
				stdoutStyles().FlagDesc.Render(f.Usage),
			)
		} else {
			fmt.Printf(
				"  %s%s %-40s %s\n",
				stdoutStyles().Flag.Render("-"+f.Shorthand),
				stdoutStyles().FlagComma,
				stdoutStyles().Flag.Render("--"+f.Name),
				stdoutStyles().FlagDesc.Render(f.Usage),
			)
		}
	}
	characterFlags(&Args{}).VisitAll(printFlag)
	cmd.Flags().VisitAll(printFlag)
	desc, example := randomExample()
	fmt.Printf(
		"\nExample:\n  %s\n  %s\n",
		stdoutStyles().Comment.Render("# "+desc),
		example,
	)

	return nil
}
