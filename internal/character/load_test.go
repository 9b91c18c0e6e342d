package character

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/cast/internal/provider"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

const validJSON = `{
	"name": "trump",
	"modelProvider": "anthropic",
	"bio": "a character used in tests",
	"lore": [],
	"messageExamples": [[{"user": "{{user1}}", "content": {"text": "hi"}}]],
	"postExamples": [],
	"topics": ["tests"],
	"adjectives": [],
	"clients": ["direct"],
	"plugins": [],
	"settings": {"secrets": {"CLAUDE_API_KEY": "sk-claude"}},
	"style": {"all": [], "chat": [], "post": []}
}`

func env(kv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := kv[key]
		return v, ok
	}
}

func testLoader(kv map[string]string) *Loader {
	return &Loader{
		LookupEnv: env(kv),
		Logger:    log.New(io.Discard),
	}
}

func TestLoad(t *testing.T) {
	t.Run("from environment", func(t *testing.T) {
		for _, arg := range []string{"", "a.json", "a.json,b.json"} {
			t.Run(arg, func(t *testing.T) {
				characters, err := testLoader(map[string]string{EnvVar: validJSON}).Load(arg)
				require.NoError(t, err)
				require.Len(t, characters, 1)
				require.Equal(t, "trump", characters[0].Name)
				require.Equal(t, provider.Anthropic, characters[0].ModelProvider)
				require.Equal(t, "sk-claude", characters[0].Secrets().Get("CLAUDE_API_KEY"))
			})
		}
	})

	t.Run("environment wins over files", func(t *testing.T) {
		l := testLoader(map[string]string{EnvVar: validJSON})
		l.Files = true
		characters, err := l.Load("does-not-exist.json")
		require.NoError(t, err)
		require.Len(t, characters, 1)
	})

	t.Run("invalid json", func(t *testing.T) {
		characters, err := testLoader(map[string]string{EnvVar: "{not json"}).Load("")
		require.Error(t, err)
		require.Nil(t, characters)

		var lerr *LoadError
		require.ErrorAs(t, err, &lerr)
		require.Equal(t, EnvVar, lerr.Source)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := testLoader(map[string]string{EnvVar: validJSON + "{}"}).Load("")
		require.Error(t, err)
	})

	t.Run("schema violation", func(t *testing.T) {
		characters, err := testLoader(map[string]string{EnvVar: `{"name": "x"}`}).Load("")
		require.ErrorIs(t, err, ErrMissingField)
		require.Nil(t, characters)
	})

	t.Run("unset", func(t *testing.T) {
		for _, arg := range []string{"", "a.json", "x,y,z"} {
			characters, err := testLoader(nil).Load(arg)
			require.NoError(t, err)
			require.Empty(t, characters)
			require.NotNil(t, characters)
		}
	})

	t.Run("empty", func(t *testing.T) {
		characters, err := testLoader(map[string]string{EnvVar: ""}).Load("a.json")
		require.NoError(t, err)
		require.Empty(t, characters)
	})

	t.Run("files disabled by default", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "c.json")
		require.NoError(t, os.WriteFile(path, []byte(validJSON), 0o600))

		characters, err := testLoader(nil).Load(path)
		require.NoError(t, err)
		require.Empty(t, characters)
	})

	t.Run("files", func(t *testing.T) {
		dir := t.TempDir()
		chars := filepath.Join(dir, "characters")
		require.NoError(t, os.MkdirAll(chars, 0o700))
		require.NoError(t, os.WriteFile(filepath.Join(chars, "one.json"), []byte(validJSON), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "two.json"), []byte(validJSON), 0o600))

		l := testLoader(nil)
		l.Files = true
		l.Dir = chars
		l.WorkDir = dir
		characters, err := l.Load("one.json, ./two.json")
		require.NoError(t, err)
		require.Len(t, characters, 2)
	})

	t.Run("bad file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), []byte(validJSON), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o600))

		l := testLoader(nil)
		l.Files = true
		l.Dir = dir
		l.WorkDir = dir
		characters, err := l.Load("good.json,bad.json")
		require.Nil(t, characters)

		var lerr *LoadError
		require.ErrorAs(t, err, &lerr)
		require.Equal(t, filepath.Join(dir, "bad.json"), lerr.Source)
	})

	t.Run("missing file", func(t *testing.T) {
		l := testLoader(nil)
		l.Files = true
		l.WorkDir = t.TempDir()
		_, err := l.Load("./nope.json")
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestPaths(t *testing.T) {
	l := &Loader{Dir: "../characters", WorkDir: "/srv/agent"}
	paths, err := l.Paths(" trump.json ,sub/a.json,,/abs/b.json,file:///abs/c.json")
	require.NoError(t, err)
	require.Equal(t, []string{
		"/srv/characters/trump.json",
		"/srv/agent/sub/a.json",
		"/abs/b.json",
		"/abs/c.json",
	}, paths)
}

func TestParse(t *testing.T) {
	t.Run("bio list", func(t *testing.T) {
		var c Character
		require.NoError(t, json.Unmarshal([]byte(`{"bio": ["a", "b"]}`), &c))
		require.Equal(t, Bio{"a", "b"}, c.Bio)
	})

	t.Run("bio invalid", func(t *testing.T) {
		var c Character
		require.Error(t, json.Unmarshal([]byte(`{"bio": 1}`), &c))
	})

	t.Run("plugins", func(t *testing.T) {
		var c Character
		require.NoError(t, json.Unmarshal([]byte(`{"plugins": ["@org/plugin-a", {"name": "b", "actions": []}]}`), &c))
		require.Len(t, c.Plugins, 2)
		require.Equal(t, "@org/plugin-a", c.Plugins[0].Name)
		require.Equal(t, "b", c.Plugins[1].Name)

		bts, err := json.Marshal(c.Plugins)
		require.NoError(t, err)
		require.JSONEq(t, `["@org/plugin-a", {"name": "b", "actions": []}]`, string(bts))
	})

	t.Run("plugin without name", func(t *testing.T) {
		var c Character
		require.Error(t, json.Unmarshal([]byte(`{"plugins": [{"actions": []}]}`), &c))
	})

	t.Run("no settings", func(t *testing.T) {
		c := Default()
		require.Nil(t, c.Secrets())
		require.Empty(t, c.Secrets().Get("OPENAI_API_KEY"))
	})
}
