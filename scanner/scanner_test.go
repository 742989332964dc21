package scanner

import (
	"strings"
	"testing"

	"github.com/packagefactory/componentengine/report"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type expectedToken struct {
	value string
	typ   token.Type
}

func testScan(t *testing.T, input string, expected []expectedToken) {
	t.Helper()
	require := require.New(t)

	tokens, err := Tokenize(source.NewMemorySource(input))
	require.NoError(err)
	require.Equal(len(expected)+1, len(tokens), "tokens: %v", tokens)

	for i, e := range expected {
		require.Equal(e.typ, tokens[i].Type, "type of token %d", i)
		require.Equal(e.value, tokens[i].Value, "value of token %d", i)
	}
	require.Equal(token.EOF, tokens[len(tokens)-1].Type)
}

const testEnum = `enum Color {
	// comment
	RED = 1,
	GREEN = 0x1F
}
`

func TestScanEnum(t *testing.T) {
	testScan(t, testEnum, []expectedToken{
		{"enum", token.Enum},
		{"Color", token.Identifier},
		{"{", token.LeftBrace},
		{"RED", token.Identifier},
		{"=", token.Equal},
		{"1", token.Integer},
		{",", token.Comma},
		{"GREEN", token.Identifier},
		{"=", token.Equal},
		{"0x1F", token.Integer},
		{"}", token.RightBrace},
	})
}

func TestScanKeywords(t *testing.T) {
	testScan(t, "import importer null nullable null1 not_ and or", []expectedToken{
		{"import", token.Import},
		{"importer", token.Identifier},
		{"null", token.Null},
		{"nullable", token.Identifier},
		{"null1", token.Identifier},
		{"not_", token.Identifier},
		{"and", token.And},
		{"or", token.Or},
	})

	testScan(t, "nullé Ñandú _x9 étiqueta", []expectedToken{
		{"nullé", token.Identifier},
		{"Ñandú", token.Identifier},
		{"_x9", token.Identifier},
		{"étiqueta", token.Identifier},
	})
}

func TestScanIntegers(t *testing.T) {
	testScan(t, "0b101 0o17 0x1f 42 0", []expectedToken{
		{"0b101", token.Integer},
		{"0o17", token.Integer},
		{"0x1f", token.Integer},
		{"42", token.Integer},
		{"0", token.Integer},
	})

	for _, input := range []string{"0b2", "12abc", "0xfg"} {
		_, err := Tokenize(source.NewMemorySource(input))
		require.Error(t, err, input)
		require.IsType(t, &report.LexicalError{}, err)
	}
}

func TestScanPunctuation(t *testing.T) {
	testScan(t, "a<=b<c=>d>=e!=f??g/>(h):i,j.k|l?m`", []expectedToken{
		{"a", token.Identifier},
		{"<=", token.LessEqual},
		{"b", token.Identifier},
		{"<", token.Less},
		{"c", token.Identifier},
		{"=>", token.Arrow},
		{"d", token.Identifier},
		{">=", token.GreaterEqual},
		{"e", token.Identifier},
		{"!=", token.NotEqual},
		{"f", token.Identifier},
		{"??", token.DoubleQuestion},
		{"g", token.Identifier},
		{"/>", token.SlashGreater},
		{"(", token.LeftParen},
		{"h", token.Identifier},
		{")", token.RightParen},
		{":", token.Colon},
		{"i", token.Identifier},
		{",", token.Comma},
		{"j", token.Identifier},
		{".", token.Dot},
		{"k", token.Identifier},
		{"|", token.Pipe},
		{"l", token.Identifier},
		{"?", token.Question},
		{"m", token.Identifier},
		{"`", token.Backtick},
	})
}

func TestScanStrings(t *testing.T) {
	testScan(t, `"a\"b" "" "\\" "ñ"`, []expectedToken{
		{`"a\"b"`, token.String},
		{`""`, token.String},
		{`"\\"`, token.String},
		{`"ñ"`, token.String},
	})

	for _, input := range []string{`"abc`, "\"a\nb\""} {
		_, err := Tokenize(source.NewMemorySource(input))
		require.Error(t, err, input)
	}
}

func TestScanPositions(t *testing.T) {
	require := require.New(t)

	tokens, err := Tokenize(source.NewMemorySource("a\n  ñb c"))
	require.NoError(err)
	require.Len(tokens, 4)

	require.Equal(token.Position{Offset: 0, Line: 0, Column: 0}, tokens[0].Range.Start)
	require.Equal(token.Position{Offset: 1, Line: 0, Column: 1}, tokens[0].Range.End)
	require.Equal("ñb", tokens[1].Value)
	require.Equal(token.Position{Offset: 4, Line: 1, Column: 2}, tokens[1].Range.Start)
	require.Equal(token.Position{Offset: 7, Line: 1, Column: 4}, tokens[1].Range.End)
	require.Equal(token.Position{Offset: 8, Line: 1, Column: 5}, tokens[2].Range.Start)
	require.Equal(token.Position{Offset: 9, Line: 1, Column: 6}, tokens[3].Range.Start)
	require.Equal(tokens[3].Range.Start, tokens[3].Range.End)
}

func TestLexicalError(t *testing.T) {
	require := require.New(t)

	tokens, err := Tokenize(source.NewSource("a.cmp", "a # b"), KeepTrivia())
	require.Error(err)
	require.Len(tokens, 2)

	lexErr, ok := err.(*report.LexicalError)
	require.True(ok)
	require.Equal('#', lexErr.Char)
	require.Equal(2, lexErr.Range().Start.Offset)
	require.Equal("a.cmp", lexErr.Location().Path())
}

func TestTrivia(t *testing.T) {
	require := require.New(t)
	src := source.NewMemorySource("a // hi\nb")

	tokens, err := Tokenize(src)
	require.NoError(err)
	require.Len(tokens, 3)

	tokens, err = Tokenize(src, KeepTrivia())
	require.NoError(err)
	var types []token.Type
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	require.Equal([]token.Type{
		token.Identifier,
		token.Whitespace,
		token.Comment,
		token.Whitespace,
		token.Identifier,
		token.EOF,
	}, types)
	require.Equal("// hi", tokens[2].Value)
}

type step struct {
	grammar *Grammar
	value   string
	typ     token.Type
}

func testSteps(t *testing.T, input string, steps []step) {
	t.Helper()
	require := require.New(t)

	s := New(source.NewMemorySource(input))
	for i, st := range steps {
		tok, err := s.Next(st.grammar)
		require.NoError(err, "step %d", i)
		require.Equal(st.typ, tok.Type, "type at step %d", i)
		require.Equal(st.value, tok.Value, "value at step %d", i)
	}
}

func TestMarkupGrammar(t *testing.T) {
	testSteps(t, "hello {name}!</div>", []step{
		{Markup, "hello ", token.Text},
		{Markup, "{", token.LeftBrace},
		{Default, "name", token.Identifier},
		{Default, "}", token.RightBrace},
		{Markup, "!", token.Text},
		{Markup, "</", token.LessSlash},
		{Default, "div", token.Identifier},
		{Default, ">", token.Greater},
		{Markup, "", token.EOF},
	})
}

func TestTemplateGrammar(t *testing.T) {
	testSteps(t, "`Hi ${name}\\n$x`", []step{
		{Default, "`", token.Backtick},
		{Template, "Hi ", token.TemplateText},
		{Template, "${", token.TemplateOpen},
		{Default, "name", token.Identifier},
		{Default, "}", token.RightBrace},
		{Template, `\n`, token.TemplateEscape},
		{Template, "$", token.Dollar},
		{Template, "x", token.TemplateText},
		{Template, "`", token.Backtick},
		{Default, "", token.EOF},
	})
}

func TestSaveRestore(t *testing.T) {
	require := require.New(t)
	s := New(source.NewMemorySource("export { A }"))

	peeked, err := s.Peek(Default)
	require.NoError(err)
	require.Equal(token.Export, peeked.Type)

	c := s.Save()
	tok, err := s.Next(Default)
	require.NoError(err)
	require.Equal(peeked, tok)

	tok, err = s.Next(Default)
	require.NoError(err)
	require.Equal(token.LeftBrace, tok.Type)

	s.Restore(c)
	tok, err = s.Next(Default)
	require.NoError(err)
	require.Equal(token.Export, tok.Type)
	require.Equal(6, s.Pos().Offset)
}

var alphabet = []rune("ab1_ \"\\<>=!?{}()/:,.|`#\n\t")

func TestTokenizeTotality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.StringOf(rapid.RuneFrom(alphabet)).Draw(t, "input")
		tokens, err := Tokenize(source.NewMemorySource(input), KeepTrivia())

		var buf strings.Builder
		for _, tok := range tokens {
			buf.WriteString(tok.Value)
		}
		scanned := buf.String()

		if err == nil {
			require.Equal(t, input, scanned)
			require.Equal(t, token.EOF, tokens[len(tokens)-1].Type)
			return
		}

		lexErr, ok := err.(*report.LexicalError)
		require.True(t, ok, "unexpected error %v", err)
		require.True(t, strings.HasPrefix(input, scanned))
		require.Equal(t, len(scanned), lexErr.Range().Start.Offset)
	})
}
