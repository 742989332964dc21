// Package compile runs the front end over whole projects: it loads modules,
// orders them by their imports, and parses and checks every one of them.
package compile

import (
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/config"
	"github.com/packagefactory/componentengine/parser"
	"github.com/packagefactory/componentengine/pkg"
	"github.com/packagefactory/componentengine/report"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
	"github.com/packagefactory/componentengine/types"
	"github.com/pkg/errors"
)

// Unit is a compiled module.
type Unit struct {
	Path   string
	Source *source.Source
	Module *ast.Module
	// Info is nil until the module is checked.
	Info *types.Info
	// Imports maps the paths written in the imports of the module to the
	// paths of the modules they refer to.
	Imports map[string]string
}

// Resolver returns the path of the module referenced by an import written in
// the module at path from.
type Resolver func(from, module string) (string, error)

// Session compiles modules, keeping the ones already compiled so every module
// is compiled only once.
type Session struct {
	CodeMap  *source.CodeMap
	Registry *types.Registry
	Options  config.Options
	Resolver Resolver

	units map[string]*Unit
}

// NewSession creates a session loading modules with the given loader.
// Imports are resolved relative to the loader root.
func NewSession(loader source.Loader, opts config.Options) *Session {
	return &Session{
		CodeMap:  source.NewCodeMap(loader),
		Registry: types.NewRegistry(),
		Options:  opts,
		Resolver: RelativeResolver,
		units:    make(map[string]*Unit),
	}
}

// NewProjectSession creates a session for the project of the manifest. Non
// relative imports are looked up in the source directories of the project.
func NewProjectSession(m *pkg.Manifest) *Session {
	s := NewSession(source.NewFsLoader(m.Root()), m.Options)
	s.Resolver = ManifestResolver(m)
	return s
}

func isRelative(module string) bool {
	return strings.HasPrefix(module, "./") || strings.HasPrefix(module, "../")
}

func withExt(path string) string {
	if filepath.Ext(path) != pkg.Ext {
		return path + pkg.Ext
	}
	return path
}

// RelativeResolver resolves `./x` to the module x.cmp in the directory of
// the importing module. Other imports are relative to the loader root.
func RelativeResolver(from, module string) (string, error) {
	if isRelative(module) {
		return withExt(filepath.Join(filepath.Dir(from), filepath.FromSlash(module))), nil
	}
	return withExt(filepath.Clean(filepath.FromSlash(module))), nil
}

// ManifestResolver resolves relative imports like RelativeResolver and looks
// up the rest in the source directories of the manifest.
func ManifestResolver(m *pkg.Manifest) Resolver {
	return func(from, module string) (string, error) {
		if isRelative(module) {
			return RelativeResolver(from, module)
		}
		return m.FindModule(module)
	}
}

// Unit returns the unit of the module at the given path, if it was already
// loaded.
func (s *Session) Unit(path string) *Unit {
	return s.units[path]
}

// Compile compiles the given source along with all the modules it imports.
// Units compiled before are dropped, since they may depend on a previous
// version of the source.
func (s *Session) Compile(src *source.Source) (*Unit, error) {
	s.CodeMap.Put(src)
	s.units = make(map[string]*Unit)

	if _, err := s.CompileAll(src.Path); err != nil {
		return nil, err
	}
	return s.units[src.Path], nil
}

// CompileAll compiles the modules at the given paths and all the modules they
// import. It returns the compiled units in the order they were checked, each
// one after the modules it imports. Modules whose imports failed are not
// checked. All the failures found are returned together as a
// *multierror.Error.
func (s *Session) CompileAll(paths ...string) ([]*Unit, error) {
	glog.Infof("compiling %d entry modules", len(paths))

	b := &build{
		Session: s,
		graph:   pkg.NewGraph(paths...),
		visited: make(map[string]bool),
		failed:  make(map[string]bool),
	}
	for _, p := range paths {
		b.load(p, nil, nil)
	}

	order, err := b.graph.Resolve()
	if err != nil {
		cycle, ok := err.(*pkg.CircularDependencyError)
		if !ok {
			return nil, err
		}
		return nil, multierror.Append(b.errs, b.cycleError(cycle)).ErrorOrNil()
	}

	var units []*Unit
	for _, path := range order {
		if u := b.check(path); u != nil {
			units = append(units, u)
		}
	}

	glog.Infof("compiled %d of %d modules", len(units), len(order))
	return units, b.errs.ErrorOrNil()
}

type build struct {
	*Session
	graph   *pkg.Graph
	visited map[string]bool
	failed  map[string]bool
	errs    *multierror.Error
}

func (b *build) fail(path string, err error) {
	b.failed[path] = true
	b.errs = multierror.Append(b.errs, err)
}

// load parses the module at path unless it was already loaded, and then loads
// every module it imports. If the module is loaded because of an import, imp
// is that import in the module importer.
func (b *build) load(path string, importer *Unit, imp *ast.Import) {
	if b.visited[path] {
		return
	}
	b.visited[path] = true

	if u, ok := b.units[path]; ok {
		b.loadImports(u)
		return
	}

	src, err := b.CodeMap.Add(path)
	if err != nil {
		if imp != nil {
			err = report.NewTypeError(
				importer.Source,
				imp.From,
				report.UnknownImport,
				"I could not load the module %q imported from %s.",
				imp.From.Value, importer.Path,
			)
		}
		b.fail(path, err)
		return
	}

	mod, err := parser.ParseModule(src, b.Options.ParserOptions()...)
	if err != nil {
		b.fail(path, err)
		return
	}

	u := &Unit{Path: path, Source: src, Module: mod, Imports: make(map[string]string)}
	b.units[path] = u
	glog.V(3).Infof("parsed %s: %d imports, %d declarations", path, len(mod.Imports), len(mod.Declarations))
	b.loadImports(u)
}

func (b *build) loadImports(u *Unit) {
	for _, imp := range u.Module.Imports {
		target, err := b.Resolver(u.Path, imp.From.Value)
		if err != nil {
			b.fail(u.Path, report.NewTypeError(
				u.Source,
				imp.From,
				report.UnknownImport,
				"I cannot find the module %q: %s.",
				imp.From.Value, errors.Cause(err),
			))
			continue
		}

		u.Imports[imp.From.Value] = target
		b.graph.Add(target, u.Path)
		b.load(target, u, imp)
	}
}

// check type checks the loaded module at path. It returns nil if the module
// or any of the modules it imports could not be compiled.
func (b *build) check(path string) *Unit {
	u := b.units[path]
	if u == nil || b.failed[path] {
		return nil
	}

	if u.Info != nil {
		return u
	}

	for _, target := range u.Imports {
		if b.failed[target] {
			glog.V(3).Infof("skipping %s: its import %s failed", path, target)
			b.failed[path] = true
			return nil
		}
	}

	info, err := types.Check(u.Module, &types.Config{
		Registry: b.Registry,
		Importer: b.importer(u),
	})
	if err != nil {
		b.fail(path, err)
		return nil
	}

	u.Info = info
	return u
}

// importer resolves the imports of u against the units already checked.
func (s *Session) importer(u *Unit) types.Importer {
	return types.ImporterFunc(func(module string) (*types.Info, error) {
		target, ok := u.Imports[module]
		if !ok {
			return nil, errors.Errorf("the module %s was not loaded", module)
		}

		dep := s.units[target]
		if dep == nil || dep.Info == nil {
			return nil, errors.Errorf("the module %s was not compiled", target)
		}
		return dep.Info, nil
	})
}

// cycleError locates an import cycle at the import that closes it.
func (b *build) cycleError(err *pkg.CircularDependencyError) error {
	mods := err.Modules
	from, to := mods[len(mods)-2], mods[len(mods)-1]

	u := b.units[from]
	for _, imp := range u.Module.Imports {
		if u.Imports[imp.From.Value] == to {
			return report.NewTypeError(
				u.Source,
				imp.From,
				report.ImportCycle,
				"This import creates a cycle: %s.",
				strings.Join(mods, " -> "),
			)
		}
	}
	return err
}

// Reports returns the reports in an error returned by the session. Errors
// that are not reports are returned as reports of type report.OtherError.
func Reports(err error) []report.Report {
	if err == nil {
		return nil
	}

	var errs []error
	if merr, ok := err.(*multierror.Error); ok {
		errs = merr.Errors
	} else {
		errs = []error{err}
	}

	reports := make([]report.Report, len(errs))
	for i, e := range errs {
		if r, ok := e.(report.Report); ok {
			reports[i] = r
		} else {
			reports[i] = report.NewBaseReport(report.OtherError, nil, token.Range{}, e.Error())
		}
	}
	return reports
}
