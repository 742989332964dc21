package operator

import (
	"testing"

	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/token"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	s := require.New(t)
	table := NewTable()
	s.NoError(table.Add(token.Pipe, ast.Or, Left, 0))
	s.Error(table.Add(token.Pipe, ast.Or, Left, 0))
}

func TestBuiltinTable(t *testing.T) {
	s := require.New(t)
	table := BuiltinTable()

	cases := []struct {
		tok  token.Type
		op   ast.BinaryOperator
		prec uint
	}{
		{token.Less, ast.Less, 5},
		{token.GreaterEqual, ast.GreaterEqual, 5},
		{token.Equal, ast.Equal, 4},
		{token.NotEqual, ast.NotEqual, 4},
		{token.And, ast.And, 3},
		{token.Or, ast.Or, 2},
		{token.DoubleQuestion, ast.NullishCoalescing, 1},
	}

	for _, c := range cases {
		info := table.Lookup(c.tok)
		s.NotNil(info, "operator %s", c.tok)
		s.Equal(c.op, info.Operator)
		s.Equal(c.prec, info.Precedence)
		s.Equal(Left, info.Associativity)
	}

	s.Nil(table.Lookup(token.Question))
	s.Nil(table.Lookup(token.Not))
}
