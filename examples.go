package main

import (
	"math/rand"
)

var examples = map[string]string{
	"Check which key a character would use": `CHARACTER_JSON="$(cat trump.json)" cast`,
	"Resolve the Anthropic key from a .env": `cast --provider anthropic --dotenv ./agent/.env`,
	"Export a key for another program":       `export GROQ_API_KEY="$(cast -p groq --show-token -f json | jq -r '.[0].token')"`,
	"Load characters from files":             `CAST_CHARACTER_FILES=true cast --characters trump.json,c3po.json`,
}

func randomExample() (string, string) {
	keys := make([]string, 0, len(examples))
	for k := range examples {
		keys = append(keys, k)
	}
	desc := keys[rand.Intn(len(keys))] //nolint:gosec
	return desc, examples[desc]
}
