package compile

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/packagefactory/componentengine/config"
	"github.com/packagefactory/componentengine/pkg"
	"github.com/packagefactory/componentengine/report"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
	"github.com/packagefactory/componentengine/types"
	"github.com/stretchr/testify/require"
)

const buttonModule = `
export component Button(label: String, disabled: Boolean = false) {
	<button disabled={disabled}>{label}</button>
}
`

const cardModule = `
import { Button } from "./button"
export { Card, Color }

enum Color { RED, GREEN }

component Card(title: String, color: Color): Markup {
	<div>
		<h1>{title}</h1>
		<Button label={title} />
	</div>
}
`

const homeModule = `
import { Card, Color } from "../ui/card"

export component Home() {
	<Card title="Welcome" color={Color.GREEN} />
}
`

func newSession(files map[string]string) *Session {
	loader := source.NewMemLoader()
	for path, content := range files {
		loader.Add(path, content)
	}
	return NewSession(loader, config.Default())
}

func unitPaths(units []*Unit) []string {
	var paths []string
	for _, u := range units {
		paths = append(paths, u.Path)
	}
	return paths
}

func TestCompileAll(t *testing.T) {
	require := require.New(t)
	s := newSession(map[string]string{
		"ui/button.cmp":  buttonModule,
		"ui/card.cmp":    cardModule,
		"pages/home.cmp": homeModule,
	})

	units, err := s.CompileAll("pages/home.cmp")
	require.NoError(err)
	require.Equal([]string{"ui/button.cmp", "ui/card.cmp", "pages/home.cmp"}, unitPaths(units))

	home := s.Unit("pages/home.cmp")
	require.NotNil(home.Info)
	require.Equal(map[string]string{"../ui/card": "ui/card.cmp"}, home.Imports)
	require.Equal([]string{"Home"}, home.Info.ExportNames())

	card := s.Unit("ui/card.cmp")
	require.Same(card.Info.Exports["Color"], home.Info.Scope.Lookup("Color"))
	require.IsType(&types.Component{}, home.Info.Scope.Lookup("Card"))

	again, err := s.CompileAll("ui/card.cmp", "pages/home.cmp")
	require.NoError(err)
	require.Len(again, 3)
	for i := range units {
		require.Same(units[i], again[i])
	}
}

func TestCompile(t *testing.T) {
	require := require.New(t)
	s := newSession(map[string]string{"button.cmp": buttonModule})

	u, err := s.Compile(source.NewSource("main.cmp", `
import { Button } from "./button"
component Main() { <Button label="ok" /> }
`))
	require.NoError(err)
	require.Equal("main.cmp", u.Path)
	require.NotNil(u.Info)
	require.Equal(map[string]string{"./button": "button.cmp"}, u.Imports)

	_, err = s.Compile(source.NewSource("main.cmp", `
import { Button } from "./button"
component Main() { <Button /> }
`))
	require.Error(err)

	reports := Reports(err)
	require.Len(reports, 1)
	typeErr, ok := reports[0].(*report.TypeError)
	require.True(ok, "expected a type error, got %T", reports[0])
	require.Equal(report.MissingAttribute, typeErr.Code)
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name     string
		files    map[string]string
		entries  []string
		compiled []string
		errors   []report.ReportType
		message  string
		path     string
	}{
		{
			"syntax error does not stop the other modules",
			map[string]string{
				"bad.cmp":    "component {",
				"button.cmp": buttonModule,
			},
			[]string{"bad.cmp", "button.cmp"},
			[]string{"button.cmp"},
			[]report.ReportType{report.Syntax},
			"",
			"bad.cmp",
		},
		{
			"missing import",
			map[string]string{
				"main.cmp": `import { X } from "./missing"
component Main() { null }`,
			},
			[]string{"main.cmp"},
			nil,
			[]report.ReportType{report.Typing},
			`I could not load the module "./missing" imported from main.cmp.`,
			"main.cmp",
		},
		{
			"failed import skips the importer",
			map[string]string{
				"broken.cmp": `export component Broken() { missing }`,
				"main.cmp": `import { Broken } from "./broken"
component Main() { <Broken /> }`,
			},
			[]string{"main.cmp"},
			nil,
			[]report.ReportType{report.Typing},
			`I cannot find a value named "missing".`,
			"broken.cmp",
		},
		{
			"import cycle",
			map[string]string{
				"a.cmp": `import { B } from "./b"
export component A() { null }`,
				"b.cmp": `import { A } from "./a"
export component B() { null }`,
			},
			[]string{"a.cmp"},
			nil,
			[]report.ReportType{report.Typing},
			"This import creates a cycle: a.cmp -> b.cmp -> a.cmp.",
			"b.cmp",
		},
		{
			"missing entry",
			map[string]string{},
			[]string{"nope.cmp"},
			nil,
			[]report.ReportType{report.OtherError},
			"",
			"",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require := require.New(t)
			s := newSession(c.files)

			units, err := s.CompileAll(c.entries...)
			require.Error(err)
			require.IsType(&multierror.Error{}, err)
			require.Equal(c.compiled, unitPaths(units))

			reports := Reports(err)
			require.Len(reports, len(c.errors))
			for i, typ := range c.errors {
				require.Equal(typ, reports[i].Type(), reports[i].Error())
			}

			if c.message != "" {
				require.Equal(c.message, reports[0].Message())
			}
			require.Equal(c.path, reports[0].Location().Path())
		})
	}
}

func TestImportCycleCode(t *testing.T) {
	s := newSession(map[string]string{
		"self.cmp": `import { Self } from "./self"
export component Self() { null }`,
	})

	_, err := s.CompileAll("self.cmp")
	reports := Reports(err)
	require.Len(t, reports, 1)

	typeErr, ok := reports[0].(*report.TypeError)
	require.True(t, ok)
	require.Equal(t, report.ImportCycle, typeErr.Code)
}

func TestRelativeResolver(t *testing.T) {
	cases := []struct {
		from     string
		module   string
		expected string
	}{
		{"main.cmp", "./button", "button.cmp"},
		{"ui/card.cmp", "./button", "ui/button.cmp"},
		{"ui/card.cmp", "./button.cmp", "ui/button.cmp"},
		{"pages/home.cmp", "../ui/card", "ui/card.cmp"},
		{"pages/home.cmp", "ui/card", "ui/card.cmp"},
		{"pages/home.cmp", "ui//card", "ui/card.cmp"},
	}

	for _, c := range cases {
		t.Run(c.module, func(t *testing.T) {
			path, err := RelativeResolver(c.from, c.module)
			require.NoError(t, err)
			require.Equal(t, filepath.FromSlash(c.expected), path)
		})
	}
}

func TestProjectSession(t *testing.T) {
	require := require.New(t)
	root, err := ioutil.TempDir("", "project")
	require.NoError(err)
	defer os.RemoveAll(root)

	files := map[string]string{
		pkg.ManifestFile:    "name: shop\nsource-directories: [src]\nentries: [main]\n",
		"src/ui/button.cmp": buttonModule,
		"src/main.cmp":      "import { Button } from \"ui/button\"\ncomponent Main() { <Button label=\"buy\" /> }\n",
		"src/ui/unused.cmp": "component {",
	}
	for path, content := range files {
		file := filepath.Join(root, path)
		require.NoError(os.MkdirAll(filepath.Dir(file), 0777))
		require.NoError(ioutil.WriteFile(file, []byte(content), 0666))
	}

	m, err := pkg.Load(root)
	require.NoError(err)

	entries, err := m.EntryPaths()
	require.NoError(err)

	s := NewProjectSession(m)
	units, err := s.CompileAll(entries...)
	require.NoError(err)
	require.Equal([]string{
		filepath.Join(m.Root(), "src/ui/button.cmp"),
		filepath.Join(m.Root(), "src/main.cmp"),
	}, unitPaths(units))
}

func TestReports(t *testing.T) {
	require := require.New(t)
	require.Nil(Reports(nil))

	other := Reports(os.ErrNotExist)
	require.Len(other, 1)
	require.Equal(report.OtherError, other[0].Type())
	require.Equal(os.ErrNotExist.Error(), other[0].Message())

	syntax := report.NewSyntaxError(nil, token.Range{}, "bad")
	reports := Reports(multierror.Append(nil, syntax, os.ErrClosed))
	require.Len(reports, 2)
	require.Same(syntax, reports[0])
	require.Equal(report.OtherError, reports[1].Type())
}
