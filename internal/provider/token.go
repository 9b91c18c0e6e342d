package provider

// Source is a read-only view over named credentials.
type Source interface {
	Get(key string) string
}

// Tier tells where a credential was found.
type Tier string

// Credential tiers, in the order they are usually consulted.
const (
	TierCharacter Tier = "character"
	TierGlobal    Tier = "global"
)

// Candidate is one step of a provider's credential chain.
type Candidate struct {
	Tier Tier
	Key  string
}

func (c Candidate) String() string {
	return string(c.Tier) + " " + c.Key
}

// Resolution is the outcome of a successful Lookup.
type Resolution struct {
	Provider Name
	Token    string
	Candidate
}

func character(key string) Candidate { return Candidate{TierCharacter, key} }
func global(key string) Candidate    { return Candidate{TierGlobal, key} }

var chains = map[Name][]Candidate{
	OpenAI: {
		character("OPENAI_API_KEY"),
		global("OPENAI_API_KEY"),
	},
	LlamaCloud: {
		character("LLAMACLOUD_API_KEY"),
		global("LLAMACLOUD_API_KEY"),
		character("TOGETHER_API_KEY"),
		global("TOGETHER_API_KEY"),
		character("XAI_API_KEY"),
		global("XAI_API_KEY"),
		character("OPENAI_API_KEY"),
		global("OPENAI_API_KEY"),
	},
	Anthropic: {
		character("ANTHROPIC_API_KEY"),
		character("CLAUDE_API_KEY"),
		global("ANTHROPIC_API_KEY"),
		global("CLAUDE_API_KEY"),
	},
	Redpill: {
		character("REDPILL_API_KEY"),
		global("REDPILL_API_KEY"),
	},
	// the character secret has no _API_KEY suffix here.
	OpenRouter: {
		character("OPENROUTER"),
		global("OPENROUTER_API_KEY"),
	},
	Grok: {
		character("GROK_API_KEY"),
		global("GROK_API_KEY"),
	},
	Heurist: {
		character("HEURIST_API_KEY"),
		global("HEURIST_API_KEY"),
	},
	Groq: {
		character("GROQ_API_KEY"),
		global("GROQ_API_KEY"),
	},
}

// Chain returns the ordered credential candidates for n, or nil when n has no
// credential chain.
func Chain(n Name) []Candidate {
	chain := chains[n]
	if chain == nil {
		return nil
	}
	out := make([]Candidate, len(chain))
	copy(out, chain)
	return out
}

// Lookup walks the credential chain of n and returns the first non-empty
// value. Either source may be nil.
func Lookup(n Name, secrets, settings Source) (Resolution, bool) {
	for _, c := range chains[n] {
		src := settings
		if c.Tier == TierCharacter {
			src = secrets
		}
		if src == nil {
			continue
		}
		if v := src.Get(c.Key); v != "" {
			return Resolution{Provider: n, Token: v, Candidate: c}, true
		}
	}
	return Resolution{}, false
}

// Token is Lookup without the provenance. It returns "" for unknown providers
// and for known providers with no credential set.
func Token(n Name, secrets, settings Source) string {
	r, _ := Lookup(n, secrets, settings)
	return r.Token
}
