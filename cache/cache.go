// Package cache skips rewriting generated units whose inputs have not
// changed. One manifest per output path records digests of the input
// source, the profile, and the written output; when all three still
// match, the write is skipped and downstream build systems see an
// untouched file. Cache trouble of any kind degrades to regeneration,
// never to failure.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when Entry changes shape.
const schemaVersion uint16 = 1

// Entry is one manifest: the digests that must all hold for the output
// at its path to be considered current.
type Entry struct {
	Schema     uint16
	Version    string
	InputSum   string
	ProfileSum string
	OutputSum  string
}

// Cache is a directory of msgpack manifests keyed by output path.
type Cache struct {
	dir     string
	version string
}

// Open returns a cache rooted at the user cache directory. Entries
// written by a different tool version never count as fresh.
func Open(version string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "jsglue")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, version: version}, nil
}

// Sum returns a short content digest, the same shape for every hashed
// artifact the cache compares.
func Sum(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}

func (c *Cache) pathFor(outPath string) string {
	abs, err := filepath.Abs(outPath)
	if err != nil {
		abs = outPath
	}
	return filepath.Join(c.dir, Sum(abs)+".mp")
}

// Fresh reports whether the output at outPath is current for the given
// input and profile digests: a manifest exists, every digest matches,
// and the file on disk still hashes to the recorded output digest.
func (c *Cache) Fresh(outPath, inputSum, profileSum string) bool {
	if c == nil {
		return false
	}
	var e Entry
	ok, err := c.get(outPath, &e)
	if err != nil || !ok {
		return false
	}
	if e.Schema != schemaVersion || e.Version != c.version {
		return false
	}
	if e.InputSum != inputSum || e.ProfileSum != profileSum {
		return false
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		return false
	}
	return Sum(string(data)) == e.OutputSum
}

// Store writes the manifest for outPath atomically.
func (c *Cache) Store(outPath, inputSum, profileSum, outputSum string) error {
	if c == nil {
		return nil
	}
	e := Entry{
		Schema:     schemaVersion,
		Version:    c.version,
		InputSum:   inputSum,
		ProfileSum: profileSum,
		OutputSum:  outputSum,
	}
	p := c.pathFor(outPath)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if err := msgpack.NewEncoder(f).Encode(&e); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

func (c *Cache) get(outPath string, out *Entry) (bool, error) {
	f, err := os.Open(c.pathFor(outPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}
