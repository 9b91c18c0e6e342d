package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestParseArguments(t *testing.T) {
	logger := log.New(io.Discard)

	for name, tt := range map[string]struct {
		argv []string
		want Args
	}{
		"empty": {
			[]string{"cast"},
			Args{},
		},
		"no argv": {
			nil,
			Args{},
		},
		"character equals": {
			[]string{"cast", "--character=foo"},
			Args{Character: "foo"},
		},
		"character equals with value containing equals": {
			[]string{"cast", "--character=a=b.json"},
			Args{Character: "a=b.json"},
		},
		"character": {
			[]string{"cast", "--character", "foo.json"},
			Args{Character: "foo.json"},
		},
		"characters": {
			[]string{"cast", "--characters", "a,b,c"},
			Args{Characters: "a,b,c"},
		},
		"both": {
			[]string{"cast", "--characters=a,b", "--character=c"},
			Args{Character: "c", Characters: "a,b"},
		},
		"separator is dropped": {
			[]string{"cast", "--", "--character=foo", "--", "--characters", "x"},
			Args{Character: "foo", Characters: "x"},
		},
		"unknown flags are ignored": {
			[]string{"cast", "-p", "groq", "--raw", "--format=json", "--characters", "a,b,c", "positional"},
			Args{Characters: "a,b,c"},
		},
		"unterminated flag": {
			[]string{"cast", "--characters", "a", "--character"},
			Args{},
		},
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, parseArguments(tt.argv, logger))
		})
	}
}

func TestNormalizeArguments(t *testing.T) {
	require.Equal(t,
		[]string{"--character", "x.json", "--characters", "a,b", "--characters=c"},
		normalizeArguments([]string{"cast", "--character=x.json", "--", "--characters", "a,b", "--characters=c"}),
	)
	require.Empty(t, normalizeArguments([]string{"cast"}))
}

func TestArgsPaths(t *testing.T) {
	require.Equal(t, "a,b", Args{Character: "c", Characters: "a,b"}.Paths())
	require.Equal(t, "c", Args{Character: "c"}.Paths())
	require.Empty(t, Args{}.Paths())
}
