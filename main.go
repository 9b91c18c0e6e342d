package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/cast/internal/character"
	"github.com/charmbracelet/cast/internal/provider"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/editor"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

// Build vars.
var (
	//nolint: gochecknoglobals
	Version   = ""
	CommitSHA = ""
)

func buildVersion() {
	if len(CommitSHA) >= sha1short {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:sha1short] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

const sha1short = 7

var (
	config = defaultConfig()

	rootCmd = &cobra.Command{
		Use:           "cast",
		Short:         "Resolve model provider credentials for agent characters.",
		Long:          "Loads a character from " + character.EnvVar + " (or from files given with --characters) and shows which API credential it would use. Character secrets win over process-wide settings.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			// --character and --characters are parsed separately.
			UnknownFlags: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if config.Settings {
				return editSettings(config.SettingsPath)
			}
			if config.ResetSettings {
				return resetSettings(config.SettingsPath)
			}
			if err := config.validate(); err != nil {
				return err
			}

			logger, err := newLogger(config.LogLevel)
			if err != nil {
				return err
			}
			c := &Cast{
				Config: config,
				Logger: logger,
				Output: cmd.OutOrStdout(),
			}
			return c.Run()
		},
	}
)

func initFlags() {
	flags := rootCmd.Flags()
	flags.StringVarP(&config.Provider, "provider", "p", config.Provider, stdoutStyles().FlagDesc.Render(help["provider"]))
	flags.StringVarP((*string)(&config.Format), "format", "f", string(config.Format), stdoutStyles().FlagDesc.Render(help["format"]))
	flags.BoolVarP(&config.Raw, "raw", "r", config.Raw, stdoutStyles().FlagDesc.Render(help["raw"]))
	flags.BoolVar(&config.ShowToken, "show-token", config.ShowToken, stdoutStyles().FlagDesc.Render(help["show-token"]))
	flags.BoolVarP(&config.Copy, "copy", "c", config.Copy, stdoutStyles().FlagDesc.Render(help["copy"]))
	flags.BoolVar(&config.Providers, "providers", config.Providers, stdoutStyles().FlagDesc.Render(help["providers"]))
	flags.StringVar(&config.DotEnv, "dotenv", config.DotEnv, stdoutStyles().FlagDesc.Render(help["dotenv"]))
	flags.StringVar(&config.LogLevel, "log-level", config.LogLevel, stdoutStyles().FlagDesc.Render(help["log-level"]))
	flags.BoolVar(&config.Settings, "settings", false, stdoutStyles().FlagDesc.Render(help["settings"]))
	flags.BoolVar(&config.ResetSettings, "reset-settings", config.ResetSettings, stdoutStyles().FlagDesc.Render(help["reset-settings"]))
	flags.BoolVarP(&config.ShowHelp, "help", "h", false, stdoutStyles().FlagDesc.Render(help["help"]))
	flags.BoolVarP(&config.Version, "version", "v", false, stdoutStyles().FlagDesc.Render(help["version"]))
	flags.Lookup("log-level").Hidden = true
	flags.SortFlags = false

	_ = rootCmd.RegisterFlagCompletionFunc("provider", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return provider.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(formats))
		for _, f := range formats {
			out = append(out, string(f))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newFlagParseError(err)
	})
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, castError{err, "Log level must be one of debug, info, warn or error."}
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cast",
		Level:  lvl,
	}), nil
}

func editSettings(path string) error {
	c, err := editor.Cmd("cast", path)
	if err != nil {
		return castError{err, "Could not edit your settings file."}
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return castError{err, fmt.Sprintf(
			"Missing %s.",
			stderrStyles().InlineCode.Render("$EDITOR"),
		)}
	}
	fmt.Fprintln(os.Stderr, "Wrote config file to:", path)
	return nil
}

func main() {
	buildVersion()
	rootCmd.SetUsageFunc(usageFunc)
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		_ = usageFunc(cmd)
	})
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if !isCompletionCmd(os.Args) && !isManCmd(os.Args) {
		cfg, err := ensureConfig()
		if err != nil {
			handleError(err)
			os.Exit(1)
		}
		config = cfg
	}

	// XXX: this must come after creating the config.
	initFlags()

	if isManCmd(os.Args) {
		rootCmd.AddCommand(&cobra.Command{
			Use:                   "man",
			Short:                 "Generates manpages",
			SilenceUsage:          true,
			DisableFlagsInUseLine: true,
			Hidden:                true,
			Args:                  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				manPage, err := mcobra.NewManPage(1, rootCmd)
				if err != nil {
					//nolint:wrapcheck
					return err
				}
				_, err = fmt.Fprint(os.Stdout, manPage.Build(roff.NewDocument()))
				//nolint:wrapcheck
				return err
			},
		})
	}

	if err := rootCmd.Execute(); err != nil {
		handleError(err)
		os.Exit(1)
	}
}

func handleError(err error) {
	format := "\n%s\n\n"

	var args []interface{}
	var ferr flagParseError
	var cerr castError
	if errors.As(err, &ferr) {
		format += "%s\n\n"
		args = []interface{}{
			fmt.Sprintf(
				"Check out %s %s",
				stderrStyles().InlineCode.Render("cast -h"),
				stderrStyles().Comment.Render("for help."),
			),
			fmt.Sprintf(
				ferr.ReasonFormat(),
				stderrStyles().InlineCode.Render(ferr.Flag()),
			),
		}
	} else if errors.As(err, &cerr) {
		format += "%s\n\n"
		args = []interface{}{
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorHeader.String(), cerr.reason),
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorDetails.Render(err.Error())),
		}
	} else {
		args = []interface{}{
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorDetails.Render(err.Error())),
		}
	}

	fmt.Fprintf(os.Stderr, format, args...)
}

func isCompletionCmd(args []string) bool {
	if len(args) <= 1 {
		return false
	}
	if args[1] == "__complete" {
		return true
	}
	if args[1] != "completion" {
		return false
	}
	if len(args) == 3 { //nolint:mnd
		_, ok := map[string]any{
			"bash":       nil,
			"fish":       nil,
			"zsh":        nil,
			"powershell": nil,
			"-h":         nil,
			"--help":     nil,
			"help":       nil,
		}[args[2]]
		return ok
	}
	if len(args) == 4 { //nolint:mnd
		_, ok := map[string]any{
			"-h":     nil,
			"--help": nil,
		}[args[3]]
		return ok
	}
	return false
}

func isManCmd(args []string) bool {
	if len(args) == 2 { //nolint:mnd
		return args[1] == "man"
	}
	if len(args) == 3 && args[1] == "man" { //nolint:mnd
		return args[2] == "-h" || args[2] == "--help"
	}
	return false
}
