package main

const configTemplate = `# {{ index .Help "provider" }}
# provider: anthropic
# {{ index .Help "format" }}
format: {{ .Config.Format }}
# {{ index .Help "raw" }}
raw: false
# {{ index .Help "show-token" }}
show-token: false
# {{ index .Help "dotenv" }}
# dotenv: .env
# {{ index .Help "character-files" }}
character-files: false
# {{ index .Help "characters-dir" }}
characters-dir: ../characters
# {{ index .Help "log-level" }}
log-level: {{ .Config.LogLevel }}
`
