// Package config defines the runtime profile: the names the generator
// matches in the input (base marker, value-reference type, member
// prefixes) and splices into the glue it emits. The stock profile targets
// a JavaScriptCore-style embedding; a TOML file can override any field.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is looked up in the working directory when no profile is
// named explicitly.
const DefaultFile = "jsglue.toml"

// Profile names the textual shapes the generator recognizes and emits.
type Profile struct {
	Marker     string `toml:"marker"`
	ValueRef   string `toml:"value_ref"`
	BoolType   string `toml:"bool_type"`
	SizeType   string `toml:"size_type"`
	CallPrefix string `toml:"call_prefix"`
	GetPrefix  string `toml:"get_prefix"`
	SetPrefix  string `toml:"set_prefix"`
	InitName   string `toml:"init_name"`
}

// Default returns the stock JavaScriptCore-flavored profile.
func Default() Profile {
	return Profile{
		Marker:     "ScriptObject",
		ValueRef:   "JSValueRef",
		BoolType:   "bool",
		SizeType:   "size_t",
		CallPrefix: "jscall_",
		GetPrefix:  "jsget_",
		SetPrefix:  "jsset_",
		InitName:   "init",
	}
}

// Load reads a profile from path. Absent keys keep their stock values;
// unknown keys are rejected so a typoed override cannot silently fall
// back to the default.
func Load(path string) (Profile, error) {
	p := Default()
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Profile{}, fmt.Errorf("loading %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Profile{}, fmt.Errorf("loading %s: unknown key %q", path, undecoded[0].String())
	}
	return p, nil
}

// Discover loads DefaultFile from the working directory when present,
// otherwise the stock profile.
func Discover() (Profile, error) {
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return Default(), nil
}

// Sum returns a short digest over every profile field. Two runs with the
// same input but different profiles generate different glue, so the
// digest participates in cache freshness checks.
func (p Profile) Sum() string {
	h := sha256.New()
	for _, f := range []string{
		p.Marker, p.ValueRef, p.BoolType, p.SizeType,
		p.CallPrefix, p.GetPrefix, p.SetPrefix, p.InitName,
	} {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
