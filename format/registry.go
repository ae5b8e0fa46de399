package format

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Backend{}
)

// Register makes a backend available under the given extensions (without the
// dot). It is intended to be called from backend package init functions;
// importing a backend package for side effects is how a program selects its
// formats. Register panics if an extension is already taken.
func Register(b Backend, extensions ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if b == nil {
		panic("format: Register backend is nil")
	}
	if len(extensions) == 0 {
		panic("format: Register called without extensions")
	}
	for _, ext := range extensions {
		if ext == "" {
			panic("format: Register called with empty extension")
		}
		if prev, dup := registry[ext]; dup {
			panic(fmt.Sprintf("format: Register called twice for extension %q (%s, %s)", ext, prev.Name(), b.Name()))
		}
		registry[ext] = b
	}
}

// ByExtension returns the backend registered for ext. Extensions are matched
// exactly; "TOML" does not select the "toml" backend.
func ByExtension(ext string) (Backend, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[ext]
	return b, ok
}

// Extensions returns all registered extensions, sorted.
func Extensions() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
