package ast

import "fmt"

// Visitor is used to traverse an AST. Its method Visit will be invoked with
// every single node to visit during the traversal.
type Visitor interface {
	// Visit will be invoked with the node being visited. If it receives a
	// non-nil node and returns nil, the children of that node will not be
	// visited.
	// If it's called with a nil node, it means all children of a node have
	// been visited.
	Visit(Node) Visitor
}

func walkExprs(v Visitor, exprs []Expr) {
	for _, e := range exprs {
		Walk(v, e)
	}
}

func walkIdents(v Visitor, idents []*Identifier) {
	for _, i := range idents {
		Walk(v, i)
	}
}

func walkFields(v Visitor, fields []*Field) {
	for _, f := range fields {
		Walk(v, f)
	}
}

// Walk traverses an AST with the given node as a starting point in
// depth-first order. The first thing it will do is v.Visit(node) and, if the
// result is not nil, it will continue walking every non-nil child.
// After all the children have been visited, v.Visit(nil) will be performed so
// the visitor knows that all children have been visited.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch node := node.(type) {
	case *Module:
		for _, i := range node.Imports {
			Walk(v, i)
		}

		for _, e := range node.Exports {
			Walk(v, e)
		}

		for _, d := range node.Declarations {
			Walk(v, d)
		}

	case *Import:
		walkIdents(v, node.Names)
		Walk(v, node.From)

	case *Export:
		walkIdents(v, node.Names)

	// Declarations
	case *EnumDeclaration:
		Walk(v, node.Name)
		for _, m := range node.Members {
			Walk(v, m)
		}

	case *EnumMember:
		Walk(v, node.Name)
		if node.Value != nil {
			Walk(v, node.Value)
		}

	case *StructDeclaration:
		Walk(v, node.Name)
		walkFields(v, node.Fields)

	case *InterfaceDeclaration:
		Walk(v, node.Name)
		walkFields(v, node.Fields)

	case *Field:
		Walk(v, node.Name)
		Walk(v, node.Type)

	case *ComponentDeclaration:
		Walk(v, node.Name)
		for _, p := range node.Params {
			Walk(v, p)
		}

		if node.Result != nil {
			Walk(v, node.Result)
		}

		Walk(v, node.Body)

	case *Parameter:
		Walk(v, node.Name)
		Walk(v, node.Type)
		if node.Default != nil {
			Walk(v, node.Default)
		}

	// Types
	case *NamedType:
		Walk(v, node.Name)

	case *OptionalType:
		Walk(v, node.Inner)

	case *UnionType:
		for _, m := range node.Members {
			Walk(v, m)
		}

	// Exprs
	case *Identifier, *NullLiteral, *BooleanLiteral, *IntegerLiteral,
		*StringLiteral, *TemplateText, *Text:
		// do nothing

	case *TemplateLiteral:
		for _, s := range node.Spans {
			Walk(v, s)
		}

	case *ValueReference:
		Walk(v, node.Name)
		walkIdents(v, node.Members)

	case *BinaryOperation:
		Walk(v, node.Left)
		Walk(v, node.Right)

	case *UnaryOperation:
		Walk(v, node.Operand)

	case *TernaryOperation:
		Walk(v, node.Condition)
		Walk(v, node.TrueBranch)
		Walk(v, node.FalseBranch)

	case *Match:
		Walk(v, node.Subject)
		for _, a := range node.Arms {
			Walk(v, a)
		}

	case *MatchArm:
		walkExprs(v, node.Patterns)
		Walk(v, node.Body)

	// Markup
	case *Tag:
		Walk(v, node.Name)
		for _, a := range node.Attributes {
			Walk(v, a)
		}

		for _, c := range node.Children {
			Walk(v, c)
		}

	case *Attribute:
		Walk(v, node.Name)
		if node.Value != nil {
			Walk(v, node.Value)
		}

	case *Embedded:
		Walk(v, node.Expr)

	default:
		panic(fmt.Errorf("walk: unable to walk node of type %T", node))
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (i inspector) Visit(node Node) Visitor {
	if i(node) {
		return i
	}
	return nil
}

// Inspect traverses the AST in depth-first order. It works exactly the same
// way Walk does, only it uses a function to walk the AST instead of a Visitor,
// so fn is also called with nil once all children of a node are visited.
func Inspect(node Node, fn func(Node) bool) {
	Walk(inspector(fn), node)
}
