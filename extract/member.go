package extract

import (
	"regexp"
	"strings"

	"github.com/rubiojr/jsglue/config"
	"github.com/rubiojr/jsglue/diag"
	"github.com/rubiojr/jsglue/scanner"
)

// Member is one discovered method or accessor. Off is the byte offset of
// the signature in the scanned source, used for diagnostics.
type Member struct {
	Name   string
	Params []Param
	Off    int
}

// Ctor is one discovered constructor. Raw preserves the parameter list
// exactly as written so it can be spliced verbatim into a factory
// signature.
type Ctor struct {
	Params []Param
	Raw    string
	Off    int
}

// Inventory is everything extraction learned about one region, in
// discovery order per kind.
type Inventory struct {
	Region  scanner.Region
	Ctors   []Ctor
	Methods []Member
	Getters []Member
	Setters []Member
	HasInit bool
}

// memberScan is a forward-only match iterator over one region's text.
// Each call to next resumes the search at the end of the previous match,
// so a signature is never revisited. The four member kinds each get
// their own scan with independent position state.
type memberScan struct {
	re   *regexp.Regexp
	text string
	pos  int
}

func newMemberScan(re *regexp.Regexp, text string) *memberScan {
	return &memberScan{re: re, text: text}
}

// next returns the submatch index pairs of the following match, adjusted
// to offsets within the full scanned text, or false when exhausted.
func (s *memberScan) next() ([]int, bool) {
	if s.pos >= len(s.text) {
		return nil, false
	}
	m := s.re.FindStringSubmatchIndex(s.text[s.pos:])
	if m == nil {
		s.pos = len(s.text)
		return nil, false
	}
	for i, off := range m {
		if off >= 0 {
			m[i] = off + s.pos
		}
	}
	s.pos = m[1]
	return m, true
}

// Member signatures match only at a statement boundary: a line break, an
// opening brace, or a semicolon, then horizontal whitespace. The tilde
// of a destructor is not a boundary, which keeps ~Foo( out of the
// constructor scan.
const boundary = `[\n{;][ \t]*`

// Extractor discovers members inside tagged regions and validates their
// signatures against the canonical shapes of a profile.
type Extractor struct {
	profile config.Profile
	shapes  Shapes
	method  *regexp.Regexp
	getter  *regexp.Regexp
	setter  *regexp.Regexp
	init    *regexp.Regexp
}

func NewExtractor(p config.Profile) *Extractor {
	vr := regexp.QuoteMeta(p.ValueRef)
	sig := func(ret, prefix string) *regexp.Regexp {
		return regexp.MustCompile(boundary + `(` + ret + `\s+` + regexp.QuoteMeta(prefix) + `(\w+)\s*\(([^)]*)\))`)
	}
	return &Extractor{
		profile: p,
		shapes:  ShapesFor(p),
		method:  sig(vr, p.CallPrefix),
		getter:  sig(vr, p.GetPrefix),
		setter:  sig(regexp.QuoteMeta(p.BoolType), p.SetPrefix),
		init:    regexp.MustCompile(boundary + `((\w+)\s+` + regexp.QuoteMeta(p.InitName) + `\s*\(([^)]*)\))`),
	}
}

// Extract scans one region of src and returns its member inventory.
// Signature problems are reported to bag; they never abort extraction,
// and the declared name is used downstream regardless.
func (e *Extractor) Extract(src, file string, region scanner.Region, bag *diag.Bag) Inventory {
	inv := Inventory{Region: region}
	text := src[region.Start:region.End]

	report := func(off int, format string, args ...interface{}) {
		line, col := diag.Position(src, off)
		bag.Addf(file, line, col, format, args...)
	}

	members := func(re *regexp.Regexp, shape Shape, prefix string) []Member {
		var out []Member
		scan := newMemberScan(re, text)
		for m, ok := scan.next(); ok; m, ok = scan.next() {
			mem := Member{
				Name:   text[m[4]:m[5]],
				Params: ParseParams(text[m[6]:m[7]]),
				Off:    region.Start + m[2],
			}
			if !MatchShape(mem.Params, shape) {
				report(mem.Off, "invalid parameters for %s%s: expected %s", prefix, mem.Name, shape)
			}
			out = append(out, mem)
		}
		return out
	}

	inv.Methods = members(e.method, e.shapes.Call, e.profile.CallPrefix)
	inv.Getters = members(e.getter, e.shapes.Getter, e.profile.GetPrefix)
	inv.Setters = members(e.setter, e.shapes.Setter, e.profile.SetPrefix)

	ctorRe := regexp.MustCompile(boundary + `(` + regexp.QuoteMeta(region.Name) + `\s*\(([^)]*)\))`)
	scan := newMemberScan(ctorRe, text)
	for m, ok := scan.next(); ok; m, ok = scan.next() {
		raw := strings.TrimSpace(text[m[4]:m[5]])
		inv.Ctors = append(inv.Ctors, Ctor{Params: ParseParams(raw), Raw: raw, Off: region.Start + m[2]})
	}

	// Only the first syntactic initializer match counts. A non-boolean
	// return type disables the initializer-aware constructor template; a
	// boolean one with off-shape parameters is diagnosed but still
	// selects it, since template choice follows the return type alone.
	if m, ok := newMemberScan(e.init, text).next(); ok {
		off := region.Start + m[2]
		if ret := text[m[4]:m[5]]; ret != e.profile.BoolType {
			report(off, "invalid return type for %s: expected %s, got %s", e.profile.InitName, e.profile.BoolType, ret)
		} else {
			inv.HasInit = true
			if params := ParseParams(text[m[6]:m[7]]); !MatchShape(params, e.shapes.Call) {
				report(off, "invalid parameters for %s: expected %s", e.profile.InitName, e.shapes.Call)
			}
		}
	}

	return inv
}
