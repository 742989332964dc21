// Package ast declares the types used to represent the syntax tree of a
// component module. Nodes are immutable once created. Every node that has an
// invariant is built through its New function, which returns a
// *StructuralError instead of building a malformed node.
package ast

import (
	"fmt"

	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
)

// Node is any node of the tree.
type Node interface {
	// Range returns the region of the source covered by the node.
	Range() token.Range
}

// StructuralError is returned when a node cannot be built because it would
// break one of the invariants of the tree.
type StructuralError struct {
	Range   token.Range
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", e.Range.Start, e.Message)
}

func structuralError(rng token.Range, msg string, args ...interface{}) *StructuralError {
	return &StructuralError{rng, fmt.Sprintf(msg, args...)}
}

// within checks that all the given children are inside the parent range.
func within(parent token.Range, children ...Node) error {
	for _, c := range children {
		if c == nil {
			continue
		}

		if !parent.Contains(c.Range()) {
			return structuralError(
				c.Range(),
				"node at %s is outside of its parent at %s",
				c.Range(), parent,
			)
		}
	}
	return nil
}

// uniqueNames checks that no name appears twice. what is used to describe the
// names in the error message.
func uniqueNames(what string, names []*Identifier) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n.Name]; ok {
			return structuralError(n.Range(), "%s %q is repeated.", what, n.Name)
		}
		seen[n.Name] = struct{}{}
	}
	return nil
}

func identNodes(names []*Identifier) []Node {
	nodes := make([]Node, len(names))
	for i, n := range names {
		nodes[i] = n
	}
	return nodes
}

// Identifier is a name, either declared or referenced.
type Identifier struct {
	Name string
	rng  token.Range
}

// NewIdentifier creates a new identifier.
func NewIdentifier(name string, rng token.Range) *Identifier {
	return &Identifier{name, rng}
}

func (i *Identifier) Range() token.Range { return i.rng }
func (i *Identifier) String() string     { return i.Name }

// Import brings names declared in another module into scope.
type Import struct {
	Names []*Identifier
	// From is the reference of the imported module.
	From *StringLiteral
	rng  token.Range
}

// NewImport creates a new import. At least one name must be imported, and
// no name can be imported twice.
func NewImport(names []*Identifier, from *StringLiteral, rng token.Range) (*Import, error) {
	if len(names) == 0 {
		return nil, structuralError(rng, "An import needs at least one name.")
	}

	if from == nil {
		return nil, structuralError(rng, "An import needs the module it imports from.")
	}

	if err := uniqueNames("Imported name", names); err != nil {
		return nil, err
	}

	if err := within(rng, append(identNodes(names), from)...); err != nil {
		return nil, err
	}

	return &Import{names, from, rng}, nil
}

func (i *Import) Range() token.Range { return i.rng }

// Export makes names of the module available to other modules.
type Export struct {
	Names []*Identifier
	rng   token.Range
}

// NewExport creates a new export. At least one name must be exported, and
// no name can be exported twice.
func NewExport(names []*Identifier, rng token.Range) (*Export, error) {
	if len(names) == 0 {
		return nil, structuralError(rng, "An export needs at least one name.")
	}

	if err := uniqueNames("Exported name", names); err != nil {
		return nil, err
	}

	if err := within(rng, identNodes(names)...); err != nil {
		return nil, err
	}

	return &Export{names, rng}, nil
}

func (e *Export) Range() token.Range { return e.rng }

// Module is a whole source file.
type Module struct {
	Source       *source.Source
	Imports      []*Import
	Exports      []*Export
	Declarations []Declaration
	rng          token.Range
}

// NewModule creates a new module. Names cannot be imported or exported more
// than once across all imports and exports of the module.
func NewModule(
	src *source.Source,
	imports []*Import,
	exports []*Export,
	decls []Declaration,
	rng token.Range,
) (*Module, error) {
	var imported, exported []*Identifier
	var children []Node
	for _, i := range imports {
		imported = append(imported, i.Names...)
		children = append(children, i)
	}

	for _, e := range exports {
		exported = append(exported, e.Names...)
		children = append(children, e)
	}

	for _, d := range decls {
		children = append(children, d)
	}

	if err := uniqueNames("Imported name", imported); err != nil {
		return nil, err
	}

	if err := uniqueNames("Exported name", exported); err != nil {
		return nil, err
	}

	if err := within(rng, children...); err != nil {
		return nil, err
	}

	return &Module{src, imports, exports, decls, rng}, nil
}

func (m *Module) Range() token.Range { return m.rng }

// Path returns the path of the source of the module.
func (m *Module) Path() string {
	if m.Source == nil {
		return ""
	}
	return m.Source.Path
}

// Lookup returns the declaration with the given name, or nil.
func (m *Module) Lookup(name string) Declaration {
	for _, d := range m.Declarations {
		if d.DeclName().Name == name {
			return d
		}
	}
	return nil
}

// IsExported reports whether the given name is exported by the module.
func (m *Module) IsExported(name string) bool {
	for _, e := range m.Exports {
		for _, n := range e.Names {
			if n.Name == name {
				return true
			}
		}
	}
	return false
}
