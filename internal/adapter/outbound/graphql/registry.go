package graphql

import "sync"

// Registry holds the compiler for each synced schema source, keyed by the
// source string recorded in InvocationDetails. Schemas are parsed once and
// never mutated, so readers share them without copying; the lock only
// guards the map itself, since the admin sync endpoint can re-sync a
// source while invocations are in flight.
type Registry struct {
	mu        sync.RWMutex
	compilers map[string]*Compiler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{compilers: make(map[string]*Compiler)}
}

// Put stores (or replaces) the compiler for a schema source.
func (r *Registry) Put(source string, c *Compiler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compilers[source] = c
}

// Get returns the compiler for a schema source.
func (r *Registry) Get(source string) (*Compiler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.compilers[source]
	return c, ok
}
