// Package extract discovers the bridgeable members of a tagged type
// definition: constructors, callable methods, property accessors, and an
// optional initializer. Discovery is free-text pattern matching inside
// the region span computed by the scanner; signatures that do not match
// their canonical shape are reported but still used, because a broken
// shim is the native compiler's problem, not ours.
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Param is one parsed parameter. Qualifier is "" or "const". Type is
// normalized: all embedded whitespace removed and any array suffix
// written after the name folded in, so "const JSValueRef argv[]" and
// "const JSValueRef[] argv" carry the same type.
type Param struct {
	Qualifier string
	Type      string
	Name      string
}

// paramRe shapes one comma-separated segment: optional const, a type
// token (identifier, optional <...> suffix, optional [], optional * or
// &), and an optional name with an optional trailing [].
var paramRe = regexp.MustCompile(`^\s*(?:(const)\s+)?([A-Za-z_]\w*(?:\s*<[^<>]*>)?(?:\s*\[\s*\])?(?:\s*[*&])?)\s*([A-Za-z_]\w*)?\s*(\[\s*\])?\s*$`)

// ParseParams splits a raw parameter-list string on commas and parses
// each segment. A blank string is a zero-argument signature, not an
// error. A segment the shape pattern cannot place yields a Param whose
// Type is the whitespace-stripped segment, so validation reports it
// instead of parsing failing.
func ParseParams(raw string) []Param {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	segments := strings.Split(raw, ",")
	params := make([]Param, 0, len(segments))
	for _, seg := range segments {
		params = append(params, parseParam(seg))
	}
	return params
}

func parseParam(seg string) Param {
	m := paramRe.FindStringSubmatch(seg)
	if m == nil {
		return Param{Type: stripSpace(seg)}
	}
	typ := stripSpace(m[2])
	if m[4] != "" {
		typ += "[]"
	}
	return Param{Qualifier: m[1], Type: typ, Name: m[3]}
}

// stripSpace removes every whitespace byte so "Foo *" and "Foo*" compare
// equal.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
