// Package scanner locates bridge-tagged type definitions in raw source
// text. It is not a lexer: definitions are found by pattern search and
// their spans delimited by brace counting alone, so a brace inside a
// comment or string literal corrupts the computed span. That tolerance
// is part of the contract — the generator synthesizes text, it does not
// validate the language.
package scanner

import "regexp"

// Region is one tagged type definition: a half-open byte range
// [Start, End) of the scanned source. Start is the offset of the
// struct/class keyword; End is the offset just past the first line break
// seen after the definition's closing brace, or len(src) when the
// definition runs to end of input.
type Region struct {
	Name  string
	Start int
	End   int
}

// Scanner iterates over tagged type definitions. Successive calls to
// Next return disjoint regions in increasing offset order: each search
// resumes at the end of the previous region, never inside it.
type Scanner struct {
	src string
	pos int
	tag *regexp.Regexp
}

// New creates a Scanner recognizing definitions of the form
// "struct <Name> : <marker> {" (struct or class).
func New(src, marker string) *Scanner {
	tag := regexp.MustCompile(`\b(?:struct|class)\s+(\w+)\s*:\s*` + regexp.QuoteMeta(marker) + `\s*\{`)
	return &Scanner{src: src, tag: tag}
}

// Next returns the next tagged definition, or false when none remain.
func (s *Scanner) Next() (Region, bool) {
	m := s.tag.FindStringSubmatchIndex(s.src[s.pos:])
	if m == nil {
		s.pos = len(s.src)
		return Region{}, false
	}
	r := Region{
		Name:  s.src[s.pos+m[2] : s.pos+m[3]],
		Start: s.pos + m[0],
		End:   spanEnd(s.src, s.pos+m[1]),
	}
	s.pos = r.End
	return r, true
}

// spanEnd scans forward from the byte after the opening brace with a
// depth counter starting at 1, and returns the offset just past the
// first line break seen at depth 0.
func spanEnd(src string, from int) int {
	depth := 1
	for i := from; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
		case '\n':
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(src)
}

// Regions collects every tagged definition in src.
func Regions(src, marker string) []Region {
	sc := New(src, marker)
	var regions []Region
	for r, ok := sc.Next(); ok; r, ok = sc.Next() {
		regions = append(regions, r)
	}
	return regions
}
