package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type source map[string]string

func (s source) Get(key string) string { return s[key] }

func TestLookup(t *testing.T) {
	t.Run("anthropic falls back to claude key", func(t *testing.T) {
		secrets := source{"CLAUDE_API_KEY": "claude"}
		settings := source{"ANTHROPIC_API_KEY": "global-anthropic"}
		r, ok := Lookup(Anthropic, secrets, settings)
		require.True(t, ok)
		require.Equal(t, "claude", r.Token)
		require.Equal(t, Candidate{TierCharacter, "CLAUDE_API_KEY"}, r.Candidate)
	})

	t.Run("llama cloud crosses tiers", func(t *testing.T) {
		settings := source{
			"XAI_API_KEY":    "global-xai",
			"OPENAI_API_KEY": "global-openai",
		}
		r, ok := Lookup(LlamaCloud, source{}, settings)
		require.True(t, ok)
		require.Equal(t, "global-xai", r.Token)
		require.Equal(t, TierGlobal, r.Tier)
		require.Equal(t, "XAI_API_KEY", r.Key)
	})

	t.Run("character wins over global", func(t *testing.T) {
		secrets := source{"GROQ_API_KEY": "mine"}
		settings := source{"GROQ_API_KEY": "theirs"}
		require.Equal(t, "mine", Token(Groq, secrets, settings))
	})

	t.Run("empty values are skipped", func(t *testing.T) {
		secrets := source{"OPENAI_API_KEY": ""}
		settings := source{"OPENAI_API_KEY": "global"}
		require.Equal(t, "global", Token(OpenAI, secrets, settings))
	})

	t.Run("openrouter character key has no suffix", func(t *testing.T) {
		require.Equal(t, "or", Token(OpenRouter, source{"OPENROUTER": "or"}, nil))
		require.Empty(t, Token(OpenRouter, source{"OPENROUTER_API_KEY": "or"}, nil))
		require.Equal(t, "g", Token(OpenRouter, nil, source{"OPENROUTER_API_KEY": "g"}))
	})

	t.Run("known provider without credentials", func(t *testing.T) {
		r, ok := Lookup(Redpill, source{}, source{"OPENAI_API_KEY": "x"})
		require.False(t, ok)
		require.Empty(t, r.Token)
	})

	t.Run("provider without chain", func(t *testing.T) {
		settings := source{"OLLAMA_API_KEY": "x", "OPENAI_API_KEY": "y"}
		_, ok := Lookup(Ollama, nil, settings)
		require.False(t, ok)
		require.Empty(t, Token("nope", nil, settings))
	})
}

func TestChains(t *testing.T) {
	for name, want := range map[Name][]string{
		OpenAI: {"character OPENAI_API_KEY", "global OPENAI_API_KEY"},
		LlamaCloud: {
			"character LLAMACLOUD_API_KEY", "global LLAMACLOUD_API_KEY",
			"character TOGETHER_API_KEY", "global TOGETHER_API_KEY",
			"character XAI_API_KEY", "global XAI_API_KEY",
			"character OPENAI_API_KEY", "global OPENAI_API_KEY",
		},
		Anthropic: {
			"character ANTHROPIC_API_KEY", "character CLAUDE_API_KEY",
			"global ANTHROPIC_API_KEY", "global CLAUDE_API_KEY",
		},
		Redpill:    {"character REDPILL_API_KEY", "global REDPILL_API_KEY"},
		OpenRouter: {"character OPENROUTER", "global OPENROUTER_API_KEY"},
		Grok:       {"character GROK_API_KEY", "global GROK_API_KEY"},
		Heurist:    {"character HEURIST_API_KEY", "global HEURIST_API_KEY"},
		Groq:       {"character GROQ_API_KEY", "global GROQ_API_KEY"},
	} {
		t.Run(string(name), func(t *testing.T) {
			var got []string
			for _, c := range Chain(name) {
				got = append(got, c.String())
			}
			require.Equal(t, want, got)
		})
	}

	t.Run("copy", func(t *testing.T) {
		c := Chain(OpenAI)
		c[0].Key = "changed"
		require.Equal(t, "OPENAI_API_KEY", Chain(OpenAI)[0].Key)
	})
}

func TestParse(t *testing.T) {
	for in, want := range map[string]Name{
		"openai":         OpenAI,
		" Anthropic ":    Anthropic,
		"LLAMA_CLOUD":    LlamaCloud,
		"akash_chat_api": AkashChatAPI,
	} {
		t.Run(in, func(t *testing.T) {
			n, err := Parse(in)
			require.NoError(t, err)
			require.Equal(t, want, n)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := Parse("skynet")
		require.ErrorIs(t, err, ErrUnknown)
	})

	t.Run("names", func(t *testing.T) {
		require.Len(t, Names(), len(All))
		require.Contains(t, Names(), "groq")
	})
}
