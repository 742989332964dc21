package types

import "sort"

// Scope maps names to types. Values and types live in separate namespaces:
// an enum name is a value of its Enum type and also names the type of its
// members. Lookups that fail in a scope continue in its parent.
type Scope struct {
	Parent *Scope
	Values map[string]Type
	Types  map[string]Type
}

// NewScope returns an empty scope nested in the given parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent: parent,
		Values: make(map[string]Type),
		Types:  make(map[string]Type),
	}
}

// Universe returns a scope with the built-in types of the given registry.
func Universe(r *Registry) *Scope {
	s := NewScope(nil)
	for _, k := range []Kind{String, Integer, Boolean, Null} {
		s.InsertType(k.String(), r.Primitive(k))
	}
	s.InsertType("null", r.Primitive(Null))
	s.InsertType("Markup", r.Markup())
	return s
}

// Insert adds a value to the scope. It returns false, leaving the scope
// untouched, if the scope already has a value with the same name.
func (s *Scope) Insert(name string, t Type) bool {
	if _, ok := s.Values[name]; ok {
		return false
	}
	s.Values[name] = t
	return true
}

// InsertType adds a type to the scope. It returns false, leaving the scope
// untouched, if the scope already has a type with the same name.
func (s *Scope) InsertType(name string, t Type) bool {
	if _, ok := s.Types[name]; ok {
		return false
	}
	s.Types[name] = t
	return true
}

// Lookup returns the type of the value with the given name, or nil.
func (s *Scope) Lookup(name string) Type {
	if t, ok := s.Values[name]; ok {
		return t
	}

	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}

// LookupType returns the type with the given name, or nil.
func (s *Scope) LookupType(name string) Type {
	if t, ok := s.Types[name]; ok {
		return t
	}

	if s.Parent != nil {
		return s.Parent.LookupType(name)
	}
	return nil
}

// Names returns the sorted names of all values visible from the scope.
func (s *Scope) Names() []string {
	set := newStrSet()
	for sc := s; sc != nil; sc = sc.Parent {
		for name := range sc.Values {
			set.add(name)
		}
	}
	return set.sorted()
}

// TypeNames returns the sorted names of all types visible from the scope.
func (s *Scope) TypeNames() []string {
	set := newStrSet()
	for sc := s; sc != nil; sc = sc.Parent {
		for name := range sc.Types {
			set.add(name)
		}
	}
	return set.sorted()
}

func (s *strSet) sorted() []string {
	elems := append([]string(nil), s.elems...)
	sort.Strings(elems)
	return elems
}
