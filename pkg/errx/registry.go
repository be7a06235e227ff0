package errx

import "sync"

// RegistryEntry describes a registered kind.
type RegistryEntry struct {
	Echain string
	Kind   *Kind
}

// Registry indexes kinds by echain in registration order.
type Registry struct {
	mu       sync.RWMutex
	entries  []RegistryEntry
	byEchain map[string]*Kind
}

// NewRegistry returns a registry holding kinds.
func NewRegistry(kinds ...*Kind) (*Registry, error) {
	r := &Registry{byEchain: make(map[string]*Kind, len(kinds))}
	if err := r.Register(kinds...); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds kinds in order. It stops at the first kind that has an
// empty echain or whose echain is already taken by a different kind.
// Registering the same kind twice is a no-op.
func (r *Registry) Register(kinds ...*Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byEchain == nil {
		r.byEchain = make(map[string]*Kind, len(kinds))
	}
	for _, kind := range kinds {
		echain := kind.Echain()
		if echain == "" {
			return FromMessageAndSolution(InvalidKind,
				"kind has an empty chain",
				"Declare the kind with a name and a parent below Root.")
		}
		if existing, ok := r.byEchain[echain]; ok {
			if existing == kind {
				continue
			}
			err := FromMessage(DuplicateKind, "kind already registered: "+echain)
			err.SetField("kind", echain)
			return err
		}
		r.byEchain[echain] = kind
		r.entries = append(r.entries, RegistryEntry{Echain: echain, Kind: kind})
	}
	return nil
}

// Lookup returns the kind registered under echain.
func (r *Registry) Lookup(echain string) (*Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kind, ok := r.byEchain[echain]
	return kind, ok
}

// Entries returns the registered kinds in registration order.
func (r *Registry) Entries() []RegistryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]RegistryEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]*Kind, 0, len(r.entries))
	for _, entry := range r.entries {
		kinds = append(kinds, entry.Kind)
	}
	return kinds
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := &Registry{
		entries:  make([]RegistryEntry, len(r.entries)),
		byEchain: make(map[string]*Kind, len(r.byEchain)),
	}
	copy(out.entries, r.entries)
	for echain, kind := range r.byEchain {
		out.byEchain[echain] = kind
	}
	return out
}

var defaultRegistry = mustRegistry(standardKinds...)

func mustRegistry(kinds ...*Kind) *Registry {
	r, err := NewRegistry(kinds...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the package registry holding the standard taxonomy.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds kinds to the default registry.
func Register(kinds ...*Kind) error {
	return defaultRegistry.Register(kinds...)
}

// Lookup returns the kind registered under echain in the default registry.
func Lookup(echain string) (*Kind, bool) {
	return defaultRegistry.Lookup(echain)
}

// ErrorRegistry returns the default registry in deterministic order.
func ErrorRegistry() []RegistryEntry {
	return defaultRegistry.Entries()
}

// IsRegistered checks if echain is registered in the default registry.
func IsRegistered(echain string) bool {
	_, ok := defaultRegistry.Lookup(echain)
	return ok
}
