package report

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
)

// Lexical errors

// LexicalError is reported when no token definition matches the input at
// some position.
type LexicalError struct {
	BaseReport
	// Char is the first character that could not be matched.
	Char rune
}

// NewLexicalError creates a lexical error for the character at pos.
func NewLexicalError(src *source.Source, pos token.Position) *LexicalError {
	r, width := utf8.DecodeRuneInString(src.Contents[pos.Offset:])
	end := pos
	end.Offset += width
	end.Column++

	return &LexicalError{
		NewBaseReport(
			Lexical,
			src,
			token.Range{Start: pos, End: end},
			fmt.Sprintf("I could not recognize any token starting with %q.", r),
		),
		r,
	}
}

// Syntax errors

// SyntaxError is reported when the parser finds something it did not expect
// or when a node cannot be built because it would be malformed.
type SyntaxError struct {
	BaseReport
	// Found is the unexpected token, if any.
	Found *token.Token
	// Expected are the token types that would have been valid instead.
	Expected []token.Type
}

// NewUnexpectedTokenError creates a syntax error for an unexpected token.
func NewUnexpectedTokenError(src *source.Source, tok *token.Token, expected ...token.Type) *SyntaxError {
	var msg string
	switch {
	case tok.Type == token.EOF && len(expected) > 0:
		msg = fmt.Sprintf("Unexpected end of file, I was expecting %s instead.", joinTypes(expected))
	case tok.Type == token.EOF:
		msg = "Unexpected end of file."
	case len(expected) > 0:
		msg = fmt.Sprintf(
			"I encountered an unexpected %s, but I was expecting %s.",
			describe(tok), joinTypes(expected),
		)
	default:
		msg = fmt.Sprintf("I encountered an unexpected %s.", describe(tok))
	}

	return &SyntaxError{NewBaseReport(Syntax, src, tok.Range, msg), tok, expected}
}

// NewExpectedError creates a syntax error for a token found where something
// described by what was expected.
func NewExpectedError(src *source.Source, tok *token.Token, what string) *SyntaxError {
	msg := fmt.Sprintf("I was expecting %s, but I encountered an unexpected %s.", what, describe(tok))
	if tok.Type == token.EOF {
		msg = fmt.Sprintf("Unexpected end of file, I was expecting %s instead.", what)
	}
	return &SyntaxError{NewBaseReport(Syntax, src, tok.Range, msg), tok, nil}
}

// NewSyntaxError creates a syntax error with a free form message.
func NewSyntaxError(src *source.Source, rng token.Range, msg string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		BaseReport: NewBaseReport(Syntax, src, rng, fmt.Sprintf(msg, args...)),
	}
}

// NewStructuralError turns an error raised while building a node into a
// syntax error of the given source.
func NewStructuralError(src *source.Source, err *ast.StructuralError) *SyntaxError {
	return NewSyntaxError(src, err.Range, "%s", err.Message)
}

// describe returns the type of the token, followed by its value when the type
// alone does not tell it.
func describe(tok *token.Token) string {
	name := tok.Type.String()
	if tok.Type.IsKeyword() || strings.HasPrefix(name, `"`) {
		return name
	}
	return fmt.Sprintf("%s %q", name, tok.Value)
}

func joinTypes(types []token.Type) string {
	var buf bytes.Buffer
	ln := len(types)
	for i := 0; i < ln; i++ {
		buf.WriteString(types[i].String())
		if ln > 1 && i < ln-2 {
			buf.WriteString(", ")
		} else if i == ln-2 {
			buf.WriteString(" or ")
		}
	}
	return buf.String()
}

// Type errors

// TypeErrorCode identifies the rule a type error breaks.
type TypeErrorCode byte

const (
	UnknownIdentifier TypeErrorCode = iota + 1
	UnknownType
	UnknownMember
	IncompatibleOperands
	InvalidCondition
	NonExhaustiveMatch
	DuplicateArm
	IncompatiblePattern
	NotRenderable
	UnknownAttribute
	MissingAttribute
	IncompatibleAttribute
	IncompatibleReturn
	IncompatibleDefault
	DuplicateDeclaration
	DuplicateEnumValue
	UnknownExport
	UnknownImport
	ImportCycle
)

var codeNames = [...]string{
	UnknownIdentifier:     "UnknownIdentifier",
	UnknownType:           "UnknownType",
	UnknownMember:         "UnknownMember",
	IncompatibleOperands:  "IncompatibleOperands",
	InvalidCondition:      "InvalidCondition",
	NonExhaustiveMatch:    "NonExhaustiveMatch",
	DuplicateArm:          "DuplicateArm",
	IncompatiblePattern:   "IncompatiblePattern",
	NotRenderable:         "NotRenderable",
	UnknownAttribute:      "UnknownAttribute",
	MissingAttribute:      "MissingAttribute",
	IncompatibleAttribute: "IncompatibleAttribute",
	IncompatibleReturn:    "IncompatibleReturn",
	IncompatibleDefault:   "IncompatibleDefault",
	DuplicateDeclaration:  "DuplicateDeclaration",
	DuplicateEnumValue:    "DuplicateEnumValue",
	UnknownExport:         "UnknownExport",
	UnknownImport:         "UnknownImport",
	ImportCycle:           "ImportCycle",
}

func (c TypeErrorCode) String() string {
	if int(c) < len(codeNames) && codeNames[c] != "" {
		return codeNames[c]
	}
	return fmt.Sprintf("TypeErrorCode(%d)", byte(c))
}

// TypeError is reported when a node cannot be given a consistent type.
type TypeError struct {
	BaseReport
	Code TypeErrorCode
}

// NewTypeError creates a type error located at the given node.
func NewTypeError(src *source.Source, node ast.Node, code TypeErrorCode, msg string, args ...interface{}) *TypeError {
	var rng token.Range
	if node != nil {
		rng = node.Range()
	}
	return NewTypeErrorAt(src, rng, code, msg, args...)
}

// NewTypeErrorAt creates a type error located at the given range.
func NewTypeErrorAt(src *source.Source, rng token.Range, code TypeErrorCode, msg string, args ...interface{}) *TypeError {
	return &TypeError{
		NewBaseReport(Typing, src, rng, fmt.Sprintf(msg, args...)),
		code,
	}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s [%s]: %s", e.Location(), e.typ, e.Code, e.msg)
}
