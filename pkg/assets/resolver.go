package assets

import (
	"strings"

	"github.com/proptree/proptree/pkg/props"
)

// Resolver maps a resource id to a displayable URL.
type Resolver interface {
	// Asset resolves a resource id to its full URL path, including any
	// configured prefix and fingerprinted filename.
	//
	// Example:
	//   resolver.Asset("images/asabeneh.jpg") → "/static/images/asabeneh.5f1c2b9a0d3e4f61.jpg"
	Asset(id string) string
}

// Checker is implemented by resolvers that know which ids exist.
// Mount points use it to report missing resources.
type Checker interface {
	Has(id string) bool
}

// manifestResolver wraps a Manifest to implement Resolver.
type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver from a Manifest with an optional path prefix.
//
// The prefix is prepended to all resolved paths. Common prefixes:
//   - "/static/" - the server's static file path
//   - "https://cdn.example.com/" - published assets
//   - "" - no prefix (use fingerprinted name directly)
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(id string) string {
	if IsURL(id) {
		return id
	}
	return r.prefix + r.manifest.Resolve(id)
}

func (r *manifestResolver) Has(id string) bool {
	return IsURL(id) || r.manifest.Has(id)
}

// passthrough returns ids unchanged (for development mode).
type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that returns ids unchanged.
// Use this in development mode where fingerprinting is disabled.
//
// The prefix is still applied, so dev and prod paths remain consistent:
//
//	resolver := assets.NewPassthroughResolver("/static/")
//	resolver.Asset("images/asabeneh.jpg") // "/static/images/asabeneh.jpg"
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(id string) string {
	if IsURL(id) {
		return id
	}
	return p.prefix + id
}

// IsURL reports whether id is already an absolute or data URL.
func IsURL(id string) bool {
	return strings.HasPrefix(id, "http://") ||
		strings.HasPrefix(id, "https://") ||
		strings.HasPrefix(id, "data:") ||
		strings.HasPrefix(id, "//")
}

// URL returns the displayable form of an attribute value: resources go
// through r, everything else renders as its text. ok is false for values
// that have no textual form.
func URL(r Resolver, v props.Value) (url string, ok bool) {
	if id, isRes := v.ResourceID(); isRes {
		if r == nil {
			return id, true
		}
		return r.Asset(id), true
	}
	switch v.Kind() {
	case props.KindString, props.KindNumber, props.KindTime:
		return v.Text(), true
	}
	return "", false
}
