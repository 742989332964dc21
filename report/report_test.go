package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
	"github.com/stretchr/testify/require"
)

const fixture = "enum A { X }\nenum B { }"

var closingBrace = token.Range{
	Start: token.Position{Offset: 22, Line: 1, Column: 9},
	End:   token.Position{Offset: 23, Line: 1, Column: 10},
}

func TestErrorMessages(t *testing.T) {
	require := require.New(t)
	src := source.NewSource("a.cmp", fixture)

	lexErr := NewLexicalError(src, token.Position{Offset: 5, Line: 0, Column: 5})
	require.Equal(Lexical, lexErr.Type())
	require.Equal('A', lexErr.Char)
	require.Equal(6, lexErr.Range().End.Offset)
	require.Equal(`a.cmp:1:6: lexical error: I could not recognize any token starting with 'A'.`, lexErr.Error())

	tok := token.New(token.RightBrace, closingBrace, "}")
	synErr := NewUnexpectedTokenError(src, tok, token.Identifier, token.Comma)
	require.Equal(
		`I encountered an unexpected "}", but I was expecting identifier or ",".`,
		synErr.Message(),
	)
	require.Equal(tok, synErr.Found)
	require.Equal("a.cmp:2:10: syntax error: "+synErr.Message(), synErr.Error())

	eof := token.New(token.EOF, closingBrace, "")
	require.Equal(
		`Unexpected end of file, I was expecting identifier, "," or "}" instead.`,
		NewUnexpectedTokenError(src, eof, token.Identifier, token.Comma, token.RightBrace).Message(),
	)

	typeErr := NewTypeErrorAt(src, closingBrace, UnknownIdentifier, "Name %q is not defined.", "foo")
	require.Equal(UnknownIdentifier, typeErr.Code)
	require.Equal(`a.cmp:2:10: type error [UnknownIdentifier]: Name "foo" is not defined.`, typeErr.Error())
	require.Equal("TypeErrorCode(200)", TypeErrorCode(200).String())
}

func TestReporter(t *testing.T) {
	require := require.New(t)
	src := source.NewSource("a.cmp", fixture)

	var buf bytes.Buffer
	r := NewReporter(Writer(&buf, false, false))
	require.True(r.IsOK())

	r.Report(&SyntaxError{BaseReport: NewBaseReport(Warning, src, closingBrace, "ignored")})
	require.True(r.IsOK())

	r.Report(NewSyntaxError(src, closingBrace, "An enum needs at least %d member.", 1))
	require.False(r.IsOK())
	require.Len(r.Reports("a.cmp"), 2)
	require.Len(r.All(), 2)

	require.NoError(r.Emit())
	expected := "I found problems at file: a.cmp\n\n" +
		"a.cmp:2:10: syntax error: An enum needs at least 1 member.\n" +
		"2 | enum B { }\n" +
		"  |          ^\n" +
		"\n1 error\n\n"
	require.Equal(expected, buf.String())

	buf.Reset()
	r = NewReporter(Writer(&buf, true, false))
	r.Report(&SyntaxError{BaseReport: NewBaseReport(Warning, src, token.Range{
		Start: token.Position{Offset: 0, Line: 0, Column: 0},
		End:   token.Position{Offset: 4, Line: 0, Column: 4},
	}, "careful")})
	r.Report(NewSyntaxError(src, closingBrace, "boom"))
	r.Report(NewSyntaxError(src, closingBrace, "again"))
	require.NoError(r.Emit())
	require.Contains(buf.String(), "1 | enum A { X }\n  | ^^^^\n")
	require.Contains(buf.String(), "2 errors and 1 warning\n")
}

func TestErrorsEmitter(t *testing.T) {
	require := require.New(t)
	src := source.NewSource("a.cmp", fixture)

	r := NewReporter(Errors(false))
	r.Report(NewSyntaxError(src, closingBrace, "boom"))
	err := r.Emit()
	require.Error(err)
	require.True(strings.HasPrefix(err.Error(), "problems found at file: a.cmp"))

	r = NewReporter(Errors(false))
	r.Report(&SyntaxError{BaseReport: NewBaseReport(Warning, src, closingBrace, "careful")})
	require.NoError(r.Emit())
}

func TestHCL(t *testing.T) {
	require := require.New(t)
	src := source.NewSource("a.cmp", fixture)

	diags := HCL(
		NewTypeErrorAt(src, closingBrace, UnknownType, "Unknown type %q.", "Foo"),
		&SyntaxError{BaseReport: NewBaseReport(Warning, src, closingBrace, "careful")},
	)
	require.Len(diags, 2)
	require.True(diags.HasErrors())
	require.Equal(hcl.DiagError, diags[0].Severity)
	require.Equal(hcl.DiagWarning, diags[1].Severity)
	require.Equal("type error", diags[0].Summary)
	require.Equal(`Unknown type "Foo".`, diags[0].Detail)
	require.Equal("a.cmp", diags[0].Subject.Filename)
	require.Equal(hcl.Pos{Line: 2, Column: 10, Byte: 22}, diags[0].Subject.Start)

	var buf bytes.Buffer
	require.NoError(WriteHCL(&buf, 80, false, NewTypeErrorAt(src, closingBrace, UnknownType, "Unknown type.")))
	require.Contains(buf.String(), "Unknown type.")
	require.Contains(buf.String(), "a.cmp")
}
