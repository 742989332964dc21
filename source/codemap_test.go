package source

import (
	"os"
	"testing"

	"github.com/packagefactory/componentengine/token"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const sourceFixture = `enum Color { RED, GREEN }

component Badge(color: Color) {
	<span>{color}</span>
}
`

func TestSource(t *testing.T) {
	s := NewSource("badge.cmp", sourceFixture)

	t.Run("line index", func(t *testing.T) {
		require := require.New(t)
		require.Equal([]int{0, 26, 27, 59, 81, 83}, s.lineIndex)
		require.Equal(6, s.Lines())
	})

	t.Run("LinePos", func(t *testing.T) {
		require := require.New(t)
		cases := []struct {
			offset int
			line   int
			col    int
		}{
			{0, 0, 0},
			{5, 0, 5},
			{26, 1, 0},
			{27, 2, 0},
			{61, 3, 2},
			{len(sourceFixture), 5, 0},
		}

		for _, c := range cases {
			pos, err := s.LinePos(c.offset)
			require.NoError(err)
			require.Equal(c.line, pos.Line, "line of offset %d", c.offset)
			require.Equal(c.col, pos.Column, "column of offset %d", c.offset)
		}

		_, err := s.LinePos(len(sourceFixture) + 1)
		require.Error(err)
	})

	t.Run("Region", func(t *testing.T) {
		require := require.New(t)
		start, _ := s.LinePos(27)
		end, _ := s.LinePos(70)
		snippet := s.Region(token.Range{Start: start, End: end})
		require.Equal(2, snippet.Start)
		require.Equal([]string{
			"component Badge(color: Color) {",
			"\t<span>{color}</span>",
		}, snippet.Lines)
	})

	t.Run("Text", func(t *testing.T) {
		require := require.New(t)
		start, _ := s.LinePos(5)
		end, _ := s.LinePos(10)
		require.Equal("Color", s.Text(token.Range{Start: start, End: end}))
	})
}

func TestMemorySource(t *testing.T) {
	require := require.New(t)

	a := NewMemorySource("null")
	b := NewMemorySource("null")
	c := NewMemorySource("true")

	require.True(a.IsMemory())
	require.Equal(a.Path, b.Path)
	require.True(a.Equal(b))
	require.NotEqual(a.Path, c.Path)
	require.False(a.Equal(c))
	require.False(NewSource("a.cmp", "null").IsMemory())
}

func TestCodeMap(t *testing.T) {
	require := require.New(t)

	loader := NewMemLoader()
	loader.Add("a.cmp", "enum A { X }")
	cm := NewCodeMap(loader)

	src, err := cm.Add("a.cmp")
	require.NoError(err)
	require.Equal("enum A { X }", src.Contents)

	again, err := cm.Add("a.cmp")
	require.NoError(err)
	require.True(src == again, "expected the cached source")

	_, err = cm.Add("missing.cmp")
	require.Error(err)
	require.True(os.IsNotExist(errors.Cause(err)))

	require.Equal([]string{"a.cmp"}, cm.Paths())
	require.Nil(cm.Source("missing.cmp"))
}
