package main

import (
	"regexp"
	"strings"
)

var (
	unknownShorthandRe = regexp.MustCompile(`unknown shorthand flag: '.*' in (-\w)`)
	invalidArgumentRe  = regexp.MustCompile(`invalid argument ".*" for "(.*)" flag: .*`)
)

// newFlagParseError turns pflag's error strings into a reason format and the
// offending flag, so they can be rendered separately.
func newFlagParseError(err error) flagParseError {
	var reason, flag string
	s := err.Error()
	switch {
	case strings.HasPrefix(s, "flag needs an argument:"):
		reason = "Flag %s needs an argument."
		ps := strings.Split(s, "-")
		switch len(ps) {
		case 2: //nolint:mnd
			flag = "-" + ps[len(ps)-1]
		case 3: //nolint:mnd
			flag = "--" + ps[len(ps)-1]
		}
	case strings.HasPrefix(s, "unknown shorthand flag:"):
		reason = "Short flag %s is missing."
		if parts := unknownShorthandRe.FindStringSubmatch(s); len(parts) > 1 {
			flag = parts[1]
		}
	case strings.HasPrefix(s, "invalid argument"):
		reason = "Flag %s has an invalid argument."
		if parts := invalidArgumentRe.FindStringSubmatch(s); len(parts) > 1 {
			flag = parts[1]
		}
	case strings.HasPrefix(s, "bad flag syntax:"):
		reason = "Flag %s is malformed."
		flag = strings.TrimSpace(strings.TrimPrefix(s, "bad flag syntax:"))
	default:
		reason = s
	}
	return flagParseError{
		err:    err,
		reason: reason,
		flag:   flag,
	}
}

type flagParseError struct {
	err    error
	reason string
	flag   string
}

func (f flagParseError) Error() string {
	return f.err.Error()
}

func (f flagParseError) ReasonFormat() string {
	return f.reason
}

func (f flagParseError) Flag() string {
	return f.flag
}
