// Package character defines the agent character record, validates it, and
// loads it from the environment or from files.
package character

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/cast/internal/provider"
)

// Character describes an agent's persona and the credentials it brings along.
type Character struct {
	ID                    string            `json:"id,omitempty"`
	Name                  string            `json:"name"`
	Username              string            `json:"username,omitempty"`
	System                string            `json:"system,omitempty"`
	ModelProvider         provider.Name     `json:"modelProvider,omitempty"`
	ModelEndpointOverride string            `json:"modelEndpointOverride,omitempty"`
	ImageModelProvider    provider.Name     `json:"imageModelProvider,omitempty"`
	Templates             map[string]string `json:"templates,omitempty"`
	Bio                   Bio               `json:"bio"`
	Lore                  []string          `json:"lore"`
	MessageExamples       [][]Message       `json:"messageExamples"`
	PostExamples          []string          `json:"postExamples"`
	Topics                []string          `json:"topics"`
	Adjectives            []string          `json:"adjectives"`
	Knowledge             []string          `json:"knowledge,omitempty"`
	Clients               []string          `json:"clients"`
	Plugins               Plugins           `json:"plugins"`
	Settings              *Settings         `json:"settings,omitempty"`
	Style                 *Style            `json:"style"`
	Extends               []string          `json:"extends,omitempty"`
}

// Settings holds per-character model options and secrets.
type Settings struct {
	Secrets        Secrets `json:"secrets,omitempty"`
	Voice          *Voice  `json:"voice,omitempty"`
	Model          string  `json:"model,omitempty"`
	EmbeddingModel string  `json:"embeddingModel,omitempty"`
}

// Voice configures text to speech.
type Voice struct {
	Model string `json:"model,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Style holds writing directions, general and per medium.
type Style struct {
	All  []string `json:"all"`
	Chat []string `json:"chat"`
	Post []string `json:"post"`
}

// Message is one turn of a message example.
type Message struct {
	User    string         `json:"user"`
	Content MessageContent `json:"content"`
}

// MessageContent is the body of a Message.
type MessageContent struct {
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
}

// Secrets maps credential names to values.
type Secrets map[string]string

// Get returns the secret named key, or "".
func (s Secrets) Get(key string) string {
	return s[key]
}

// Secrets returns the character's secrets. It is safe to call on characters
// without settings.
func (c Character) Secrets() Secrets {
	if c.Settings == nil {
		return nil
	}
	return c.Settings.Secrets
}

// Default is used when no character was loaded, so that process-wide
// settings can still be resolved.
func Default() Character {
	return Character{
		Name:            "default",
		ModelProvider:   provider.OpenAI,
		Bio:             Bio{},
		Lore:            []string{},
		MessageExamples: [][]Message{},
		PostExamples:    []string{},
		Topics:          []string{},
		Adjectives:      []string{},
		Clients:         []string{},
		Plugins:         Plugins{},
		Style:           &Style{All: []string{}, Chat: []string{}, Post: []string{}},
	}
}

// Bio accepts either a single string or a list of strings.
type Bio []string

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bio) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Bio{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("bio must be a string or a list of strings")
	}
	*b = Bio(list)
	return nil
}

// Plugins lists plugins either by name or as inline objects.
type Plugins []Plugin

// Plugin is a plugin reference. Inline plugin objects keep their raw JSON.
type Plugin struct {
	Name string
	Raw  json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Plugin) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p.Name = name
		return nil
	}
	var obj struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.Name == nil {
		return fmt.Errorf("plugin must be a name or an object with a name")
	}
	p.Name = *obj.Name
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Plugin) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	return json.Marshal(p.Name) //nolint:wrapcheck
}
