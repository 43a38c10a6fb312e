// Package assets serves the page client scripts under fingerprinted names.
//
// A Manifest maps each source file to a name carrying a content hash:
//
//	pagefx.js -> pagefx.3f9a1c0d.js
//
// Pages link the fingerprinted name through a Resolver, so browsers can
// cache it forever; a changed file gets a new name.
//
//	m := assets.Client()
//	r := assets.NewResolver(m, "/static/")
//	r.Asset("pagefx.js") // "/static/pagefx.3f9a1c0d.js"
package assets

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed static
var static embed.FS

// hashLen is the number of hex digits kept from a file's digest.
const hashLen = 8

// Manifest maps source asset names to fingerprinted names. It is immutable
// once built and safe for concurrent use.
type Manifest struct {
	fsys    fs.FS
	entries map[string]string
	sources map[string]string
}

// Build fingerprints every regular file in fsys.
func Build(fsys fs.FS) (*Manifest, error) {
	m := &Manifest{
		fsys:    fsys,
		entries: make(map[string]string),
		sources: make(map[string]string),
	}
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		printed := fingerprint(name, hex.EncodeToString(sum[:])[:hashLen])
		m.entries[name] = printed
		m.sources[printed] = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// fingerprint inserts hash before the extension: app.js -> app.<hash>.js.
func fingerprint(name, hash string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "." + hash + ext
}

var client = sync.OnceValue(func() *Manifest {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	m, err := Build(sub)
	if err != nil {
		panic(err)
	}
	return m
})

// Client returns the manifest of the embedded page client.
func Client() *Manifest {
	return client()
}

// Resolve returns the fingerprinted name for source, or source unchanged
// when the manifest does not know it.
func (m *Manifest) Resolve(source string) string {
	if printed, ok := m.entries[source]; ok {
		return printed
	}
	return source
}

// Has reports whether source is in the manifest.
func (m *Manifest) Has(source string) bool {
	_, ok := m.entries[source]
	return ok
}

// Source maps a fingerprinted name back to its source name.
func (m *Manifest) Source(printed string) (string, bool) {
	s, ok := m.sources[printed]
	return s, ok
}

// Len returns the number of assets.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// All returns a copy of the source to fingerprinted name mapping.
func (m *Manifest) All() map[string]string {
	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}
