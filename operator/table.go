// Package operator holds the precedence and associativity of the binary
// operators of the language.
package operator

import (
	"fmt"

	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/token"
)

// Table is the implementation of an operator table. It contains the operators
// and their info, indexed by the token that denotes them.
type Table struct {
	ops map[token.Type]*OpInfo
}

// NewTable creates a new empty operator table.
func NewTable() *Table {
	return &Table{ops: make(map[token.Type]*OpInfo)}
}

// BuiltinTable creates a new operator table with all the operators of the
// language loaded.
func BuiltinTable() *Table {
	t := NewTable()
	for _, op := range builtinOps {
		if err := t.Add(op.tok, op.op, op.assoc, op.prec); err != nil {
			panic(err)
		}
	}
	return t
}

var builtinOps = []struct {
	tok   token.Type
	op    ast.BinaryOperator
	assoc Associativity
	prec  uint
}{
	{token.Less, ast.Less, Left, 5},
	{token.LessEqual, ast.LessEqual, Left, 5},
	{token.Greater, ast.Greater, Left, 5},
	{token.GreaterEqual, ast.GreaterEqual, Left, 5},
	{token.Equal, ast.Equal, Left, 4},
	{token.NotEqual, ast.NotEqual, Left, 4},
	{token.And, ast.And, Left, 3},
	{token.Or, ast.Or, Left, 2},
	{token.DoubleQuestion, ast.NullishCoalescing, Left, 1},
}

// Add inserts the given operator and its data in the operator table. It
// returns an error if the token already denotes an operator.
func (t *Table) Add(tok token.Type, op ast.BinaryOperator, assoc Associativity, precedence uint) error {
	if _, ok := t.ops[tok]; ok {
		return fmt.Errorf("operator %s is already defined", tok)
	}

	t.ops[tok] = &OpInfo{op, assoc, precedence}
	return nil
}

// Lookup returns the info of the operator denoted by the given token type.
// Will return nil if the token is not an operator.
func (t *Table) Lookup(tok token.Type) *OpInfo {
	return t.ops[tok]
}

// OpInfo contains the info about an operator.
type OpInfo struct {
	// Operator is the operator of the nodes built with it.
	Operator ast.BinaryOperator
	// Associativity of the operator.
	Associativity Associativity
	// Precedence of the operator. Higher binds tighter.
	Precedence uint
}

// Associativity is the type of associativity of the operator.
type Associativity byte

const (
	// Left associativity.
	Left Associativity = iota
	// Right associativity.
	Right
	// NonAssoc operators cannot follow an operator of the same precedence.
	NonAssoc
)
