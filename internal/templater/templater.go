// Package templater substitutes :::DOTTED.PATH::: and
// :::DOTTED.PATH|DEFAULT::: tokens in a command string against the client
// settings tree. It has no knowledge of checks, transports, or the agent
// lifecycle: it is a pure string transform over a nested map.
package templater

import (
	"fmt"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`:::([^:|]+)(?:\|([^:]*))?:::`)

// Substitute walks cmd for ":::path:::" and ":::path|default:::" tokens,
// resolving path against tree (a nested map[string]interface{}). It returns
// the substituted string and the list of dotted paths that had neither a
// resolvable value nor a supplied default, in order of first appearance.
func Substitute(cmd string, tree map[string]interface{}) (string, []string) {
	var unmatched []string
	seen := map[string]bool{}

	out := tokenPattern.ReplaceAllStringFunc(cmd, func(tok string) string {
		m := tokenPattern.FindStringSubmatch(tok)
		path := m[1]
		hasDefault := strings.Contains(tok, "|")
		def := m[2]

		if v, ok := lookup(tree, path); ok {
			return toString(v)
		}
		if hasDefault {
			return def
		}
		if !seen[path] {
			seen[path] = true
			unmatched = append(unmatched, path)
		}
		return tok
	})

	return out, unmatched
}

func lookup(tree map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var cur interface{} = tree
	for _, p := range parts {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := m[p]
		if !ok || v == nil {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
