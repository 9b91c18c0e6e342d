package character

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrMissingField is wrapped by validation errors for absent required fields.
var ErrMissingField = errors.New("missing required field")

// ValidationError describes a single problem with a character field.
type ValidationError struct {
	Field string
	err   error
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.err.Error()
}

func (e ValidationError) Unwrap() error {
	return e.err
}

func missing(field string) error {
	return ValidationError{Field: field, err: ErrMissingField}
}

func invalid(field, format string, a ...any) error {
	return ValidationError{Field: field, err: fmt.Errorf(format, a...)}
}

// Validate checks c against the character schema. All problems are reported
// at once, joined with errors.Join.
func Validate(c Character) error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, missing("name"))
	}
	if c.ID != "" {
		if _, err := uuid.Parse(c.ID); err != nil {
			errs = append(errs, invalid("id", "not a uuid: %q", c.ID))
		}
	}
	if c.ModelProvider == "" {
		errs = append(errs, missing("modelProvider"))
	} else if !c.ModelProvider.Valid() {
		errs = append(errs, invalid("modelProvider", "unknown provider %q", c.ModelProvider))
	}
	if c.ImageModelProvider != "" && !c.ImageModelProvider.Valid() {
		errs = append(errs, invalid("imageModelProvider", "unknown provider %q", c.ImageModelProvider))
	}

	for _, f := range []struct {
		name    string
		present bool
	}{
		{"bio", c.Bio != nil},
		{"lore", c.Lore != nil},
		{"messageExamples", c.MessageExamples != nil},
		{"postExamples", c.PostExamples != nil},
		{"topics", c.Topics != nil},
		{"adjectives", c.Adjectives != nil},
		{"clients", c.Clients != nil},
		{"plugins", c.Plugins != nil},
		{"style", c.Style != nil},
	} {
		if !f.present {
			errs = append(errs, missing(f.name))
		}
	}

	for i, p := range c.Plugins {
		if p.Name == "" {
			errs = append(errs, invalid(fmt.Sprintf("plugins[%d]", i), "empty plugin name"))
		}
	}
	for i, client := range c.Clients {
		if strings.TrimSpace(client) == "" {
			errs = append(errs, invalid(fmt.Sprintf("clients[%d]", i), "empty client name"))
		}
	}
	if c.Style != nil {
		if c.Style.All == nil {
			errs = append(errs, missing("style.all"))
		}
		if c.Style.Chat == nil {
			errs = append(errs, missing("style.chat"))
		}
		if c.Style.Post == nil {
			errs = append(errs, missing("style.post"))
		}
	}
	if c.Settings != nil && c.Settings.Voice != nil && c.Settings.Voice.URL != "" &&
		!strings.HasPrefix(c.Settings.Voice.URL, "http://") && !strings.HasPrefix(c.Settings.Voice.URL, "https://") {
		errs = append(errs, invalid("settings.voice.url", "not a url: %q", c.Settings.Voice.URL))
	}

	return errors.Join(errs...)
}
