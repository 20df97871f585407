// Package assets resolves external resource handles to displayable URLs.
//
// Components refer to images and other files through opaque resource ids
// (props.Resource("images/asabeneh.jpg")). When a tree is mounted, the ids
// are mapped to URLs through a manifest of fingerprinted file names:
//
//	{
//	  "images/asabeneh.jpg": "images/asabeneh.5f1c2b9a0d3e4f61.jpg",
//	  "images/html_logo.png": "images/html_logo.0a9b8c7d6e5f4a3b.png"
//	}
//
// Build generates such a manifest from a directory; Load reads one back:
//
//	manifest, _ := assets.Load("dist/manifest.json")
//	resolver := assets.NewResolver(manifest, "/static/")
//	resolver.Asset("images/asabeneh.jpg")
//	// "/static/images/asabeneh.5f1c2b9a0d3e4f61.jpg"
package assets

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Manifest holds the mapping from resource ids to fingerprinted paths.
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// Load reads a manifest file: {"images/a.png": "images/a.1f2e3d4c5b6a7980.png"}.
//
// In development, you may want to ignore the error and use
// NewPassthroughResolver.
func Load(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("assets: parse %s: %w", file, err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}

	return &Manifest{entries: entries}, nil
}

// Build fingerprints every regular file under dir. Ids are slash-separated
// paths relative to dir; the fingerprint is the xxhash of the file content
// inserted before the extension.
func Build(dir string) (*Manifest, error) {
	m := NewManifest()
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		sum, err := hashFile(p)
		if err != nil {
			return err
		}
		id := filepath.ToSlash(rel)
		m.entries[id] = Fingerprinted(id, sum)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: build %s: %w", dir, err)
	}
	return m, nil
}

func hashFile(p string) (uint64, error) {
	f, err := os.Open(p)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	d := xxhash.New()
	if _, err := io.Copy(d, f); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}

// Fingerprinted inserts sum into id before its extension:
// "images/a.png" becomes "images/a.00000000000000ff.png".
func Fingerprinted(id string, sum uint64) string {
	ext := path.Ext(id)
	return fmt.Sprintf("%s.%016x%s", strings.TrimSuffix(id, ext), sum, ext)
}

// Save writes the manifest as indented JSON.
func (m *Manifest) Save(file string) error {
	m.mu.RLock()
	data, err := json.MarshalIndent(m.entries, "", "  ")
	m.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(file, append(data, '\n'), 0o644)
}

// Resolve returns the fingerprinted path for the given id.
// If not found, returns the id unchanged.
func (m *Manifest) Resolve(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[id]; ok {
		return resolved
	}
	return id
}

// Has returns true if the manifest contains the given id.
func (m *Manifest) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[id]
	return ok
}

// Set adds or updates an entry in the manifest.
func (m *Manifest) Set(id, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = resolved
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// All returns a copy of all manifest entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}
