package schema

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps element type names to sum variants. It is safe for
// concurrent use, so a package can expose one shared instance that
// callers extend with their own element types.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]VariantFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		variants: make(map[string]VariantFunc),
	}
}

// Register adds a variant for an element type name.
func (r *Registry) Register(typeName string, f VariantFunc) error {
	if typeName == "" {
		return fmt.Errorf("variant must have an element type name")
	}
	if f == nil {
		return fmt.Errorf("cannot register nil variant for %q", typeName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.variants[typeName]; exists {
		return fmt.Errorf("variant %q already registered", typeName)
	}

	r.variants[typeName] = f
	return nil
}

// Lookup returns the variant for an element type name.
func (r *Registry) Lookup(typeName string) (VariantFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, exists := r.variants[typeName]
	return f, exists
}

// Names returns the registered element type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.variants))
}

// Sum builds a sum shape that dispatches through the registry. Lookups
// happen at apply time, so variants registered after the shape is built
// still take part.
func (r *Registry) Sum(dst *any, opts ...SumOption) Shape {
	s := &sumShape{dst: dst, source: r}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (r *Registry) variant(typeName string) (VariantFunc, bool) {
	return r.Lookup(typeName)
}
