package assets

// Resolver turns source asset names into the URLs a page links. Each
// URL carries the fingerprinted name, so a new build never collides
// with a cached copy.
type Resolver struct {
	manifest *Manifest
	prefix   string
}

func NewResolver(m *Manifest, prefix string) *Resolver {
	return &Resolver{manifest: m, prefix: prefix}
}

// Asset returns the URL for source, for example
// "/static/pagefx.3f9a1c0d.js". Unknown names are linked unchanged.
func (r *Resolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}
