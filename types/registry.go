package types

import "sync"

// Name is an interned name. Two names with the same value obtained from the
// same Registry are the same instance.
type Name struct {
	Value string
}

func (n *Name) String() string { return n.Value }

// Registry holds the single instances of primitive types, the markup type and
// interned names. Instances are created the first time they are requested.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.Mutex
	primitives map[Kind]*Primitive
	markup     *MarkupType
	names      map[string]*Name
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		primitives: make(map[Kind]*Primitive),
		names:      make(map[string]*Name),
	}
}

// Default is the registry used when none is given.
var Default = NewRegistry()

// Primitive returns the primitive type of the given kind.
func (r *Registry) Primitive(k Kind) *Primitive {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.primitives[k]
	if !ok {
		p = &Primitive{k}
		r.primitives[k] = p
	}
	return p
}

// Markup returns the markup type.
func (r *Registry) Markup() *MarkupType {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.markup == nil {
		r.markup = new(MarkupType)
	}
	return r.markup
}

// Name returns the interned name with the given value.
func (r *Registry) Name(value string) *Name {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.names[value]
	if !ok {
		n = &Name{value}
		r.names[value] = n
	}
	return n
}

// Names returns the number of interned names.
func (r *Registry) Names() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}
