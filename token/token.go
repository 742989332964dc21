package token

import "fmt"

// Token is the smallest part in which the code can be divided and still makes sense on its own.
type Token struct {
	Type  Type
	Range Range
	Value string
}

// New creates a new token of type t spanning the given range.
func New(t Type, rng Range, val string) *Token {
	return &Token{Type: t, Range: rng, Value: val}
}

func (t *Token) String() string {
	return fmt.Sprintf("%s(%q) %s", t.Type, t.Value, t.Range)
}

// Position represents a point in a source. Line and Column are zero-based,
// Offset is the byte offset from the beginning of the source.
type Position struct {
	Offset int
	Line   int
	Column int
}

// NoPos is the zero position.
var NoPos = Position{}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool {
	return p.Offset < o.Offset
}

func (p Position) String() string {
	return fmt.Sprintf("[%d,%d]", p.Line, p.Column)
}

// Range is the region between two positions, Start included and End excluded.
type Range struct {
	Start Position
	End   Position
}

// IsValid reports whether the start of the range is not after its end.
func (r Range) IsValid() bool {
	return r.Start.Offset <= r.End.Offset
}

// Contains reports whether o is a sub-range of r.
func (r Range) Contains(o Range) bool {
	return r.Start.Offset <= o.Start.Offset && o.End.Offset <= r.End.Offset
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End.Offset - r.Start.Offset
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Span returns the range going from the start of a to the end of b.
func Span(a, b Range) Range {
	return Range{Start: a.Start, End: b.End}
}

// Type is the type of a token.
type Type uint

const (
	// Error is an invalid token.
	Error Type = iota
	// EOF is the end of the input
	EOF

	// Trivia

	// Whitespace is a run of spaces, tabs and line breaks.
	Whitespace
	// Comment is a line comment starting with "//".
	Comment

	// Literals and names

	// Identifier is a name.
	Identifier
	// Integer is an integer literal in any base.
	Integer
	// String is a double quoted string literal.
	String

	// Punctuation

	// LeftBrace is "{"
	LeftBrace
	// RightBrace is "}"
	RightBrace
	// LeftParen is "("
	LeftParen
	// RightParen is ")"
	RightParen
	// Less is "<"
	Less
	// LessEqual is "<="
	LessEqual
	// Greater is ">"
	Greater
	// GreaterEqual is ">="
	GreaterEqual
	// Equal is "="
	Equal
	// NotEqual is "!="
	NotEqual
	// Question is "?"
	Question
	// DoubleQuestion is "??"
	DoubleQuestion
	// Colon is ":"
	Colon
	// Comma is ","
	Comma
	// Dot is "."
	Dot
	// Pipe is "|"
	Pipe
	// Arrow is "=>"
	Arrow
	// SlashGreater closes a self-closing tag, "/>"
	SlashGreater
	// LessSlash opens a closing tag, "</"
	LessSlash
	// Backtick delimits a template literal.
	Backtick

	// Markup and template contents

	// Text is a run of literal text inside a tag body.
	Text
	// TemplateText is a run of literal text inside a template literal.
	TemplateText
	// TemplateEscape is a backslash escape inside a template literal.
	TemplateEscape
	// TemplateOpen starts an embedded expression in a template, "${"
	TemplateOpen
	// Dollar is a lone "$" inside a template literal.
	Dollar

	// Keywords

	Import
	From
	Export
	Enum
	Struct
	Interface
	Component
	Match
	Default
	And
	Or
	Not
	Null
	True
	False
)

var typeNames = [...]string{
	Error:          "error",
	EOF:            "end of input",
	Whitespace:     "whitespace",
	Comment:        "comment",
	Identifier:     "identifier",
	Integer:        "integer",
	String:         "string",
	LeftBrace:      `"{"`,
	RightBrace:     `"}"`,
	LeftParen:      `"("`,
	RightParen:     `")"`,
	Less:           `"<"`,
	LessEqual:      `"<="`,
	Greater:        `">"`,
	GreaterEqual:   `">="`,
	Equal:          `"="`,
	NotEqual:       `"!="`,
	Question:       `"?"`,
	DoubleQuestion: `"??"`,
	Colon:          `":"`,
	Comma:          `","`,
	Dot:            `"."`,
	Pipe:           `"|"`,
	Arrow:          `"=>"`,
	SlashGreater:   `"/>"`,
	LessSlash:      `"</"`,
	Backtick:       "\"`\"",
	Text:           "text",
	TemplateText:   "template text",
	TemplateEscape: "escape sequence",
	TemplateOpen:   `"${"`,
	Dollar:         `"$"`,
	Import:         "import",
	From:           "from",
	Export:         "export",
	Enum:           "enum",
	Struct:         "struct",
	Interface:      "interface",
	Component:      "component",
	Match:          "match",
	Default:        "default",
	And:            "and",
	Or:             "or",
	Not:            "not",
	Null:           "null",
	True:           "true",
	False:          "false",
}

func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return fmt.Sprintf("token(%d)", uint(t))
}

// IsTrivia reports whether tokens of this type carry no syntactic meaning.
func (t Type) IsTrivia() bool {
	return t == Whitespace || t == Comment
}

// IsKeyword reports whether the type is a reserved word.
func (t Type) IsKeyword() bool {
	return t >= Import && t <= False
}

// Keywords maps every reserved word to its token type.
var Keywords = map[string]Type{
	"import":    Import,
	"from":      From,
	"export":    Export,
	"enum":      Enum,
	"struct":    Struct,
	"interface": Interface,
	"component": Component,
	"match":     Match,
	"default":   Default,
	"and":       And,
	"or":        Or,
	"not":       Not,
	"null":      Null,
	"true":      True,
	"false":     False,
}
