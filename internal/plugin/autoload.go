package plugin

import (
	"strings"

	"golang.org/x/text/cases"
)

var (
	enableWords  = []string{"all", "true", "1"}
	disableWords = []string{"none", "false", "0"}
)

// ResolveAutoload evaluates an autoload policy for a plugin carrying tags.
//
// Booleans are returned as is and integers follow their truthiness. A string
// is a comma-separated list of tokens evaluated left to right: "all", "true",
// "1" or a matching tag switch loading on; "none", "false", "0" or "-" plus a
// matching tag switch it off. Later tokens win, so "all,-heavy" loads every
// plugin except those tagged heavy. Unknown tokens are ignored and every other
// type resolves to false.
func ResolveAutoload(raw any, tags []string) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case string:
		return evalPolicy(v, tags)
	default:
		return false
	}
}

func evalPolicy(policy string, tags []string) bool {
	fold := cases.Fold()

	enable := make(map[string]bool, len(enableWords)+len(tags))
	disable := make(map[string]bool, len(disableWords)+len(tags))
	for _, w := range enableWords {
		enable[w] = true
	}
	for _, w := range disableWords {
		disable[w] = true
	}
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		t := fold.String(tag)
		enable[t] = true
		disable["-"+t] = true
	}

	result := false
	for _, token := range strings.Split(policy, ",") {
		token = fold.String(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if enable[token] {
			result = true
		}
		if disable[token] {
			result = false
		}
	}
	return result
}
