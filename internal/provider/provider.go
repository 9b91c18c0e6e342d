// Package provider names the model backends a character can target and
// resolves which credential each of them should use.
package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies a model-serving backend.
type Name string

// Known providers.
const (
	OpenAI       Name = "openai"
	EternalAI    Name = "eternalai"
	Anthropic    Name = "anthropic"
	Grok         Name = "grok"
	Groq         Name = "groq"
	LlamaCloud   Name = "llama_cloud"
	Together     Name = "together"
	LlamaLocal   Name = "llama_local"
	Google       Name = "google"
	Mistral      Name = "mistral"
	ClaudeVertex Name = "claude_vertex"
	Redpill      Name = "redpill"
	OpenRouter   Name = "openrouter"
	Ollama       Name = "ollama"
	Heurist      Name = "heurist"
	Galadriel    Name = "galadriel"
	FalAI        Name = "falai"
	GaiaNet      Name = "gaianet"
	AliBailian   Name = "ali_bailian"
	Volengine    Name = "volengine"
	NanoGPT      Name = "nanogpt"
	Hyperbolic   Name = "hyperbolic"
	Venice       Name = "venice"
	AkashChatAPI Name = "akash_chat_api"
	Livepeer     Name = "livepeer"
	Deepseek     Name = "deepseek"
	Infera       Name = "infera"
)

// All lists every known provider in declaration order.
var All = []Name{
	OpenAI,
	EternalAI,
	Anthropic,
	Grok,
	Groq,
	LlamaCloud,
	Together,
	LlamaLocal,
	Google,
	Mistral,
	ClaudeVertex,
	Redpill,
	OpenRouter,
	Ollama,
	Heurist,
	Galadriel,
	FalAI,
	GaiaNet,
	AliBailian,
	Volengine,
	NanoGPT,
	Hyperbolic,
	Venice,
	AkashChatAPI,
	Livepeer,
	Deepseek,
	Infera,
}

// ErrUnknown is returned by Parse for names outside All.
var ErrUnknown = errors.New("unknown provider")

// Valid reports whether n is a known provider.
func (n Name) Valid() bool {
	for _, p := range All {
		if p == n {
			return true
		}
	}
	return false
}

func (n Name) String() string {
	return string(n)
}

// Parse maps s to a known provider, ignoring case and surrounding spaces.
func Parse(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return n, nil
}

// Names returns All as plain strings.
func Names() []string {
	names := make([]string, 0, len(All))
	for _, p := range All {
		names = append(names, string(p))
	}
	return names
}
