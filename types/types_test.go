package types

import (
	"sync"
	"testing"

	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/token"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRegistryFlyweights(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()

	for _, k := range []Kind{String, Integer, Boolean, Null} {
		require.Same(r.Primitive(k), r.Primitive(k))
		require.Equal(k, r.Primitive(k).Kind())
	}
	require.NotSame(r.Primitive(String), r.Primitive(Integer))
	require.Same(r.Markup(), r.Markup())

	require.Same(r.Name("Color"), r.Name("Color"))
	require.NotSame(r.Name("Color"), r.Name("Colour"))
	require.Equal(2, r.Names())
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")
		b := rapid.String().Draw(t, "b")

		if r.Name(a) != r.Name(a) {
			t.Fatalf("two lookups of %q returned different names", a)
		}
		if (a == b) != (r.Name(a) == r.Name(b)) {
			t.Fatalf("names %q and %q: identity does not match equality", a, b)
		}
	})
}

func TestRegistryConcurrentUse(t *testing.T) {
	r := NewRegistry()
	const n = 16

	names := make([]*Name, n)
	prims := make([]*Primitive, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i] = r.Name("shared")
			prims[i] = r.Primitive(Boolean)
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		require.Same(t, names[0], names[i])
		require.Same(t, prims[0], prims[i])
	}
}

func testEnum(r *Registry, name string, members ...string) *Enum {
	decl := &ast.EnumDeclaration{Name: ast.NewIdentifier(name, token.Range{})}
	e := newEnum(r.Name(name), decl)
	for i, m := range members {
		e.Members = append(e.Members, &EnumMember{Enum: e, Name: r.Name(m), Int: int64(i)})
	}
	return e
}

func TestNewUnion(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	str, num, null := r.Primitive(String), r.Primitive(Integer), r.Primitive(Null)

	require.Same(str, NewUnion(str))
	require.Same(str, NewUnion(str, str))

	u := NewUnion(str, num)
	require.IsType(&Union{}, u)
	require.Equal("String | Integer", u.String())

	flat := NewUnion(u, NewUnion(null, str))
	require.Len(flat.(*Union).Members, 3)
	require.Equal("String | Integer | Null", flat.String())

	require.Panics(func() { NewUnion() })
}

func TestEqual(t *testing.T) {
	r := NewRegistry()
	str, num, boolean := r.Primitive(String), r.Primitive(Integer), r.Primitive(Boolean)
	color := testEnum(r, "Color", "RED")
	otherColor := testEnum(r, "Color", "RED")

	cases := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"same primitive", str, str, true},
		{"different primitives", str, num, false},
		{"primitives of other registry", str, NewRegistry().Primitive(String), false},
		{"same enum", color, color, true},
		{"enums of different declarations", color, otherColor, false},
		{"instances of the same enum", color.Instance(), color.Instance(), true},
		{"union order", NewUnion(str, num), NewUnion(num, str), true},
		{"union members", NewUnion(str, num), NewUnion(str, boolean), false},
		{"union size", NewUnion(str, num), NewUnion(str, num, boolean), false},
		{"union and member", NewUnion(str, num), str, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.equal, Equal(c.a, c.b))
			require.Equal(t, c.equal, Equal(c.b, c.a))
		})
	}
}

func TestAssignable(t *testing.T) {
	r := NewRegistry()
	str, num, null, markup := r.Primitive(String), r.Primitive(Integer), r.Primitive(Null), r.Markup()
	optStr := NewUnion(str, null)

	cases := []struct {
		name     string
		from, to Type
		ok       bool
	}{
		{"same type", str, str, true},
		{"different types", num, str, false},
		{"into optional", str, optStr, true},
		{"null into optional", null, optStr, true},
		{"optional into member", optStr, str, false},
		{"union into bigger union", NewUnion(str, num), NewUnion(num, null, str), true},
		{"union into smaller union", NewUnion(str, num, markup), NewUnion(num, str), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.ok, Assignable(c.from, c.to))
		})
	}
}

func TestPredicates(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	str, num, boolean, null := r.Primitive(String), r.Primitive(Integer), r.Primitive(Boolean), r.Primitive(Null)
	color := testEnum(r, "Color", "RED")
	point := &Struct{Name: r.Name("Point")}

	require.True(IsBoolean(boolean))
	require.True(IsBoolean(null))
	require.True(IsBoolean(NewUnion(str, null)))
	require.False(IsBoolean(str))
	require.False(IsBoolean(NewUnion(str, num)))

	require.True(IsRenderable(str))
	require.True(IsRenderable(r.Markup()))
	require.True(IsRenderable(color.Instance()))
	require.True(IsRenderable(NewUnion(num, r.Markup(), null)))
	require.False(IsRenderable(point))
	require.False(IsRenderable(color))
	require.False(IsRenderable(NewUnion(str, point)))

	require.False(renderable(r.Markup(), false))
	require.True(renderable(NewUnion(str, num), false))
}

func TestWithout(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	str, num, null := r.Primitive(String), r.Primitive(Integer), r.Primitive(Null)

	require.Same(str, without(NewUnion(str, null), Null))
	require.True(Equal(NewUnion(str, num), without(NewUnion(str, null, num), Null)))
	require.Nil(without(null, Null))
	require.Same(str, without(str, Null))
}

func TestEnumMembers(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	color := testEnum(r, "Color", "RED", "GREEN")

	require.Equal("enum Color", color.String())
	require.Equal("Color", color.Instance().String())
	require.Same(color, color.Instance().Enum)
	require.Equal("Color.GREEN", color.Member("GREEN").String())
	require.Equal("1", color.Member("GREEN").Value())
	require.Nil(color.Member("BLUE"))
}

func TestScope(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	universe := Universe(r)
	outer := NewScope(universe)
	inner := NewScope(outer)

	require.True(outer.Insert("a", r.Primitive(String)))
	require.False(outer.Insert("a", r.Primitive(Integer)))
	require.True(inner.Insert("a", r.Primitive(Boolean)))
	require.True(inner.Insert("b", r.Primitive(Null)))

	require.Same(r.Primitive(Boolean), inner.Lookup("a"))
	require.Same(r.Primitive(String), outer.Lookup("a"))
	require.Nil(outer.Lookup("b"))
	require.Nil(inner.Lookup("c"))
	require.Equal([]string{"a", "b"}, inner.Names())

	require.Same(r.Primitive(Integer), inner.LookupType("Integer"))
	require.Same(r.Markup(), inner.LookupType("Markup"))
	require.Nil(inner.LookupType("a"))
	require.Equal([]string{"Boolean", "Integer", "Markup", "Null", "String", "null"}, inner.TypeNames())
}

func TestClosest(t *testing.T) {
	candidates := []string{"title", "subtitle", "color"}
	cases := []struct {
		name     string
		expected string
	}{
		{"titel", "title"},
		{"colour", "color"},
		{"Color", "color"},
		{"subtitles", "subtitle"},
		{"zzzzzz", ""},
		{"title", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, closest(c.name, candidates))
		})
	}
}
