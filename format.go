package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/cast/internal/provider"
	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"
)

func render(w io.Writer, cfg Config, reports []report) error {
	switch cfg.Format {
	case FormatJSON:
		return writeJSON(w, reports)
	case FormatYAML:
		return writeYAML(w, reports)
	case FormatMarkdown:
		return writeMarkdown(w, cfg, reportMarkdown(reports))
	default:
		return writeText(w, cfg, reports)
	}
}

func writeJSON(w io.Writer, v any) error {
	bts, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return castError{err, "Could not encode output."}
	}
	if _, err := fmt.Fprintln(w, string(bts)); err != nil {
		return castError{err, "Could not write output."}
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint:mnd
	if err := enc.Encode(v); err != nil {
		return castError{err, "Could not encode output."}
	}
	if err := enc.Close(); err != nil {
		return castError{err, "Could not write output."}
	}
	return nil
}

func writeMarkdown(w io.Writer, cfg Config, md string) error {
	if cfg.Raw || !isOutputTTY() {
		_, err := io.WriteString(w, md)
		return err //nolint:wrapcheck
	}
	style := "light"
	if stdoutRenderer().HasDarkBackground() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return castError{err, "Could not create markdown renderer."}
	}
	out, err := r.Render(md)
	if err != nil {
		return castError{err, "Could not render markdown."}
	}
	_, err = io.WriteString(w, out)
	return err //nolint:wrapcheck
}

func reportMarkdown(reports []report) string {
	var sb strings.Builder
	sb.WriteString("| Character | Provider | Source | Token |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, r := range reports {
		source, token := "missing", ""
		if !r.Missing {
			source = string(r.Tier) + " `" + r.Key + "`"
			token = "`" + r.Token + "`"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", r.Character, r.Provider, source, token)
	}
	return sb.String()
}

func writeText(w io.Writer, cfg Config, reports []report) error {
	s := stdoutStyles()
	plain := cfg.Raw || !isOutputTTY()
	nameWidth, providerWidth := 0, 0
	for _, r := range reports {
		nameWidth = max(nameWidth, len(r.Character))
		providerWidth = max(providerWidth, len(r.Provider))
	}

	for _, r := range reports {
		name := fmt.Sprintf("%-*s", nameWidth, r.Character)
		prov := fmt.Sprintf("%-*s", providerWidth, r.Provider)
		var line string
		if plain {
			if r.Missing {
				line = fmt.Sprintf("%s  %s  missing", name, prov)
			} else {
				line = fmt.Sprintf("%s  %s  %s %s  %s", name, prov, r.Tier, r.Key, r.Token)
			}
		} else {
			if r.Missing {
				line = fmt.Sprintf("%s  %s  %s", s.Character.Render(name), s.Provider.Render(prov), s.Missing.Render("missing"))
			} else {
				line = fmt.Sprintf(
					"%s  %s %s %s %s  %s",
					s.Character.Render(name),
					s.Provider.Render(prov),
					s.Arrow,
					s.Tier.Render(string(r.Tier)),
					s.InlineCode.Render(r.Key),
					s.Token.Render(r.Token),
				)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return castError{err, "Could not write output."}
		}
	}
	return nil
}

// providerInfo is one entry of the --providers listing.
type providerInfo struct {
	Name  provider.Name `json:"name" yaml:"name"`
	Chain []string      `json:"chain" yaml:"chain"`
}

func providerInfos() []providerInfo {
	infos := make([]providerInfo, 0, len(provider.All))
	for _, name := range provider.All {
		info := providerInfo{Name: name, Chain: []string{}}
		for _, c := range provider.Chain(name) {
			info.Chain = append(info.Chain, c.String())
		}
		infos = append(infos, info)
	}
	return infos
}

func renderProviders(w io.Writer, cfg Config) error {
	infos := providerInfos()
	switch cfg.Format {
	case FormatJSON:
		return writeJSON(w, infos)
	case FormatYAML:
		return writeYAML(w, infos)
	case FormatMarkdown:
		var sb strings.Builder
		sb.WriteString("| Provider | Credentials |\n|---|---|\n")
		for _, info := range infos {
			fmt.Fprintf(&sb, "| %s | %s |\n", info.Name, strings.Join(info.Chain, " → "))
		}
		return writeMarkdown(w, cfg, sb.String())
	}

	s := stdoutStyles()
	plain := cfg.Raw || !isOutputTTY()
	for _, info := range infos {
		chain := strings.Join(info.Chain, " → ")
		if chain == "" {
			chain = "no credentials"
		}
		line := info.Name.String() + "  " + chain
		if !plain {
			line = s.Provider.Render(info.Name.String()) + "  " + s.Comment.Render(chain)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return castError{err, "Could not write output."}
		}
	}
	return nil
}
