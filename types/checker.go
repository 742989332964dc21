package types

import (
	"fmt"
	"sort"

	"github.com/golang/glog"
	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/report"
	"github.com/packagefactory/componentengine/source"
)

// Importer resolves the modules referenced by imports.
type Importer interface {
	// Import returns the checked module referenced by path, as it is written
	// in the import.
	Import(path string) (*Info, error)
}

// ImporterFunc is a function implementing Importer.
type ImporterFunc func(path string) (*Info, error)

func (f ImporterFunc) Import(path string) (*Info, error) { return f(path) }

// Config configures the checker. The zero value uses the Default registry and
// rejects all imports.
type Config struct {
	Registry *Registry
	Importer Importer
}

// Info holds the result of checking a module.
type Info struct {
	Module *ast.Module
	// Scope has the names declared and imported by the module.
	Scope *Scope
	// Types has the type of every expression.
	Types map[ast.Expr]Type
	// Defs has the type of every declaration.
	Defs map[ast.Declaration]Type
	// Scopes has the scope of the body of every component.
	Scopes map[ast.Declaration]*Scope
	// Members has the enum member referenced by value references ending in
	// one.
	Members map[*ast.ValueReference]*EnumMember
	// Exports has the declared type of every exported name.
	Exports map[string]Type
}

func newInfo(mod *ast.Module) *Info {
	return &Info{
		Module:  mod,
		Types:   make(map[ast.Expr]Type),
		Defs:    make(map[ast.Declaration]Type),
		Scopes:  make(map[ast.Declaration]*Scope),
		Members: make(map[*ast.ValueReference]*EnumMember),
		Exports: make(map[string]Type),
	}
}

// TypeOf returns the type of the given expression, or nil if the expression
// is not part of the module.
func (i *Info) TypeOf(e ast.Expr) Type { return i.Types[e] }

// ExportNames returns the sorted exported names.
func (i *Info) ExportNames() []string {
	names := make([]string, 0, len(i.Exports))
	for n := range i.Exports {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Check resolves the types of all declarations and expressions of a module.
// The first type error found is returned as a *report.TypeError.
func Check(mod *ast.Module, conf *Config) (*Info, error) {
	c := newChecker(mod.Source, conf, newInfo(mod))
	if err := c.run(func() { c.checkModule(mod) }); err != nil {
		return nil, err
	}
	return c.info, nil
}

// TypeOf resolves the type of expr, parsed from src, in the given scope.
// Type errors are reported at src. Resolving the same expression in the same
// scope always yields equal types.
func TypeOf(src *source.Source, expr ast.Expr, scope *Scope, conf *Config) (Type, error) {
	c := newChecker(src, conf, newInfo(nil))
	var t Type
	if err := c.run(func() { t = c.expr(expr, scope) }); err != nil {
		return nil, err
	}
	return t, nil
}

type checker struct {
	src      *source.Source
	reg      *Registry
	importer Importer
	info     *Info
	err      error
}

type bailout struct{}

func newChecker(src *source.Source, conf *Config, info *Info) *checker {
	c := &checker{src: src, reg: Default, info: info}
	if conf != nil {
		c.importer = conf.Importer
		if conf.Registry != nil {
			c.reg = conf.Registry
		}
	}
	return c
}

func (c *checker) run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			err = c.err
		}
	}()

	fn()
	return nil
}

func (c *checker) fail(err error) {
	c.err = err
	panic(bailout{})
}

func (c *checker) errorf(node ast.Node, code report.TypeErrorCode, msg string, args ...interface{}) {
	err := report.NewTypeError(c.src, node, code, msg, args...)
	glog.V(3).Infof("type error: %s", err)
	c.fail(err)
}

func (c *checker) primitive(k Kind) Type { return c.reg.Primitive(k) }

func (c *checker) checkModule(mod *ast.Module) {
	scope := NewScope(Universe(c.reg))
	c.info.Scope = scope

	for _, imp := range mod.Imports {
		c.importNames(imp, scope)
	}

	decls := make([]Type, len(mod.Declarations))
	for i, d := range mod.Declarations {
		decls[i] = c.declare(d, scope)
	}

	for i, d := range mod.Declarations {
		c.resolveSignature(d, decls[i], scope)
	}

	for i, d := range mod.Declarations {
		if comp, ok := decls[i].(*Component); ok {
			c.checkComponent(d.(*ast.ComponentDeclaration), comp, scope)
		}
	}

	for _, e := range mod.Exports {
		for _, n := range e.Names {
			c.export(n, scope)
		}
	}

	glog.V(3).Infof("checked %s: %d declarations, %d exports", mod.Path(), len(decls), len(c.info.Exports))
}

// bind adds the declared type t to the scope under the given name. It returns
// false if the name is already used in the scope.
func bind(scope *Scope, name string, t Type) bool {
	if _, ok := scope.Values[name]; ok {
		return false
	}
	if _, ok := scope.Types[name]; ok {
		return false
	}

	switch t := t.(type) {
	case *Enum:
		scope.Insert(name, t)
		scope.InsertType(name, t.Instance())
	case *Struct, *Interface:
		scope.InsertType(name, t)
	default:
		scope.Insert(name, t)
	}
	return true
}

// declared returns the declared type bound to name in the scope, without
// looking at its parents.
func declared(scope *Scope, name string) Type {
	if t, ok := scope.Values[name]; ok {
		return t
	}
	t, ok := scope.Types[name]
	if !ok {
		return nil
	}
	if inst, ok := t.(*EnumInstance); ok {
		return inst.Enum
	}
	return t
}

func localNames(scope *Scope) []string {
	set := newStrSet()
	for n := range scope.Values {
		set.add(n)
	}
	for n := range scope.Types {
		set.add(n)
	}
	return set.sorted()
}

func (c *checker) importNames(imp *ast.Import, scope *Scope) {
	path := imp.From.Value
	if c.importer == nil {
		c.errorf(imp.From, report.UnknownImport, "I cannot import %q, this module cannot import other modules.", path)
	}

	info, err := c.importer.Import(path)
	if err != nil {
		if _, ok := err.(report.Report); ok {
			c.fail(err)
		}
		c.errorf(imp.From, report.UnknownImport, "I could not import %q: %s.", path, err)
	}

	for _, n := range imp.Names {
		t, ok := info.Exports[n.Name]
		if !ok {
			c.errorf(
				n,
				report.UnknownImport,
				"The module %q does not export %q.%s",
				path, n.Name, suggest(n.Name, info.ExportNames()),
			)
		}

		if !bind(scope, n.Name, t) {
			c.errorf(n, report.DuplicateDeclaration, "The name %q is imported more than once.", n.Name)
		}
		glog.V(3).Infof("imported %s from %q", n.Name, path)
	}
}

func (c *checker) declare(d ast.Declaration, scope *Scope) Type {
	name := d.DeclName()

	var t Type
	switch decl := d.(type) {
	case *ast.EnumDeclaration:
		t = c.enum(decl)
	case *ast.StructDeclaration:
		t = &Struct{Name: c.reg.Name(name.Name), Decl: decl}
	case *ast.InterfaceDeclaration:
		t = &Interface{Name: c.reg.Name(name.Name), Decl: decl}
	case *ast.ComponentDeclaration:
		t = &Component{Name: c.reg.Name(name.Name), Decl: decl}
	default:
		panic(fmt.Sprintf("types: unknown declaration %T", d))
	}

	if !bind(scope, name.Name, t) {
		c.errorf(name, report.DuplicateDeclaration, "The name %q is declared more than once.", name.Name)
	}

	c.info.Defs[d] = t
	glog.V(3).Infof("declared %s", t)
	return t
}

func (c *checker) enum(d *ast.EnumDeclaration) *Enum {
	e := newEnum(c.reg.Name(d.Name.Name), d)
	seen := make(map[string]*EnumMember, len(d.Members))

	for i, m := range d.Members {
		member := &EnumMember{Enum: e, Name: c.reg.Name(m.Name.Name)}
		switch v := m.Value.(type) {
		case nil:
			member.Int = int64(i)
		case *ast.IntegerLiteral:
			member.Int = v.Value
			c.info.Types[v] = c.primitive(Integer)
		case *ast.StringLiteral:
			member.Str = v.Value
			c.info.Types[v] = c.primitive(String)
		}

		value := member.Value()
		if prev, ok := seen[value]; ok {
			c.errorf(
				m,
				report.DuplicateEnumValue,
				"The value %s of %s is already used by %s.",
				value, member, prev,
			)
		}
		seen[value] = member
		e.Members = append(e.Members, member)
	}
	return e
}

// resolveSignature resolves the types of the fields and parameters of a
// declaration. It is done once all declarations are in scope, so they can
// refer to each other in any order.
func (c *checker) resolveSignature(d ast.Declaration, t Type, scope *Scope) {
	switch t := t.(type) {
	case *Struct:
		t.Fields = c.fields(t.Decl.Fields, scope)
	case *Interface:
		t.Fields = c.fields(t.Decl.Fields, scope)
	case *Component:
		for _, p := range t.Decl.Params {
			t.Params = append(t.Params, &Param{
				Name:       c.reg.Name(p.Name.Name),
				Type:       c.typeExpr(p.Type, scope),
				HasDefault: p.Default != nil,
			})
		}
		if t.Decl.Result != nil {
			t.Result = c.typeExpr(t.Decl.Result, scope)
		}
	}
}

func (c *checker) fields(fields []*ast.Field, scope *Scope) []*Field {
	result := make([]*Field, len(fields))
	for i, f := range fields {
		result[i] = &Field{c.reg.Name(f.Name.Name), c.typeExpr(f.Type, scope)}
	}
	return result
}

func (c *checker) typeExpr(t ast.TypeExpr, scope *Scope) Type {
	switch t := t.(type) {
	case *ast.NamedType:
		name := t.Name.Name
		typ := scope.LookupType(name)
		if typ == nil {
			c.errorf(
				t,
				report.UnknownType,
				"I cannot find a type named %q.%s",
				name, suggest(name, scope.TypeNames()),
			)
		}
		return typ

	case *ast.OptionalType:
		return NewUnion(c.typeExpr(t.Inner, scope), c.primitive(Null))

	case *ast.UnionType:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = c.typeExpr(m, scope)
		}
		return NewUnion(members...)
	}
	panic(fmt.Sprintf("types: unknown type expression %T", t))
}

func (c *checker) checkComponent(d *ast.ComponentDeclaration, comp *Component, scope *Scope) {
	body := NewScope(scope)
	for i, p := range d.Params {
		param := comp.Params[i]
		if p.Default != nil {
			t := c.expr(p.Default, scope)
			if !Assignable(t, param.Type) {
				c.errorf(
					p.Default,
					report.IncompatibleDefault,
					"The default value of %q has type %s, but the parameter has type %s.",
					p.Name.Name, t, param.Type,
				)
			}
		}
		body.Insert(p.Name.Name, param.Type)
	}
	c.info.Scopes[d] = body

	t := c.expr(d.Body, body)
	if comp.Result == nil {
		comp.Result = t
	} else if !Assignable(t, comp.Result) {
		c.errorf(
			d.Body,
			report.IncompatibleReturn,
			"The component %s must return %s, but its body has type %s.",
			comp.Name, comp.Result, t,
		)
	}
	glog.V(3).Infof("checked %s: %s", comp, comp.Result)
}

func (c *checker) export(n *ast.Identifier, scope *Scope) {
	t := declared(scope, n.Name)
	if t == nil {
		c.errorf(
			n,
			report.UnknownExport,
			"I cannot export %q because nothing with that name is declared or imported.%s",
			n.Name, suggest(n.Name, localNames(scope)),
		)
	}
	c.info.Exports[n.Name] = t
}
