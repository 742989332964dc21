// Package pkg finds the modules of a project and the order in which they have
// to be compiled.
package pkg

import (
	"fmt"
	"strings"
)

// Graph is the import graph of a set of modules. Modules are identified by
// their path.
type Graph struct {
	entries []*node
	nodes   map[string]*node
}

// NewGraph creates a new graph with the given entry modules.
func NewGraph(entries ...string) *Graph {
	g := &Graph{nodes: make(map[string]*node)}
	for _, e := range entries {
		g.AddEntry(e)
	}
	return g
}

// AddEntry adds a module that will be resolved along with everything it
// imports. Adding the same entry twice does nothing.
func (g *Graph) AddEntry(module string) *Graph {
	n := g.node(module)
	for _, e := range g.entries {
		if e == n {
			return g
		}
	}
	g.entries = append(g.entries, n)
	return g
}

// Add adds `to` as an import of `from`.
func (g *Graph) Add(to, from string) *Graph {
	g.node(from).add(g.node(to))
	return g
}

// Imports returns the modules imported by the given module, in the order they
// were added.
func (g *Graph) Imports(module string) []string {
	n, ok := g.nodes[module]
	if !ok {
		return nil
	}
	return append([]string(nil), n.imports...)
}

func (g *Graph) node(module string) *node {
	if n, ok := g.nodes[module]; ok {
		return n
	}

	n := newNode(module)
	g.nodes[module] = n
	return n
}

// Resolve returns the modules reachable from the entries in the exact order in
// which they need to be compiled: every module comes after all the modules it
// imports. A graph with the exact same nodes added in the exact same order
// always produces the same output.
func (g *Graph) Resolve() ([]string, error) {
	ctx := newResolutionCtx()
	for _, e := range g.entries {
		if ctx.resolved.contains(e.module) {
			continue
		}

		if err := e.resolve(ctx); err != nil {
			return nil, err
		}
	}

	return ctx.modules, nil
}

type node struct {
	module  string
	edges   map[string]*node
	imports []string
}

func newNode(module string) *node {
	return &node{
		module: module,
		edges:  make(map[string]*node),
	}
}

func (n *node) add(node *node) {
	if _, ok := n.edges[node.module]; !ok {
		n.edges[node.module] = node
		n.imports = append(n.imports, node.module)
	}
}

func (n *node) resolve(ctx *resolutionCtx) error {
	ctx.unresolved.add(n.module)
	ctx.stack = append(ctx.stack, n.module)

	for _, mod := range n.imports {
		if ctx.resolved.contains(mod) {
			continue
		}

		if ctx.unresolved.contains(mod) {
			return NewCircularDependencyError(ctx.cycle(mod))
		}

		if err := n.edges[mod].resolve(ctx); err != nil {
			return err
		}
	}

	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	delete(ctx.unresolved, n.module)
	ctx.resolved.add(n.module)
	ctx.modules = append(ctx.modules, n.module)
	return nil
}

type moduleSet map[string]struct{}

func (m moduleSet) add(module string) {
	m[module] = struct{}{}
}

func (m moduleSet) contains(module string) bool {
	_, ok := m[module]
	return ok
}

type resolutionCtx struct {
	modules    []string
	stack      []string
	unresolved moduleSet
	resolved   moduleSet
}

func newResolutionCtx() *resolutionCtx {
	return &resolutionCtx{
		unresolved: make(moduleSet),
		resolved:   make(moduleSet),
	}
}

// cycle returns the modules being resolved from the given one, which is
// imported again by the last of them.
func (ctx *resolutionCtx) cycle(module string) []string {
	for i, m := range ctx.stack {
		if m == module {
			return append(append([]string(nil), ctx.stack[i:]...), module)
		}
	}
	return []string{module, module}
}

// CircularDependencyError describes an import cycle.
type CircularDependencyError struct {
	// Modules in the cycle. The first and the last are the same module.
	Modules []string
}

// NewCircularDependencyError returns a new CircularDependencyError.
func NewCircularDependencyError(modules []string) *CircularDependencyError {
	return &CircularDependencyError{modules}
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency error: %s", strings.Join(e.Modules, " -> "))
}
