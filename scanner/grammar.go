package scanner

import (
	"sort"
	"unicode"

	"github.com/packagefactory/componentengine/matcher"
	"github.com/packagefactory/componentengine/token"
)

const (
	numDigits  = "0123456789"
	hexDigits  = "0123456789abcdefABCDEF"
	octDigits  = "01234567"
	binDigits  = "01"
	whitespace = " \t\r\n"
)

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentChar(r rune) bool { return isIdentStart(r) || unicode.IsDigit(r) }

// Definition binds a token type to the matcher recognizing it.
type Definition struct {
	Type    token.Type
	Matcher matcher.Matcher
}

// Grammar is a list of definitions in priority order. When more than one
// definition matches at the same position, the first one wins.
type Grammar struct {
	Name        string
	Definitions []Definition
}

func (g *Grammar) String() string { return g.Name }

var identBoundary = matcher.Unless(matcher.Class(isIdentChar))

func exact(t token.Type, s string) Definition {
	return Definition{t, matcher.Exact(s)}
}

func keywords() []Definition {
	words := make([]string, 0, len(token.Keywords))
	for w := range token.Keywords {
		words = append(words, w)
	}
	sort.Strings(words)

	defs := make([]Definition, len(words))
	for i, w := range words {
		defs[i] = Definition{
			token.Keywords[w],
			matcher.Sequence(matcher.Exact(w), identBoundary),
		}
	}
	return defs
}

func integer(prefix, digits string) Definition {
	var ms []matcher.Matcher
	if prefix != "" {
		ms = append(ms, matcher.Exact(prefix))
	}
	ms = append(ms, matcher.Characters(digits, ""), identBoundary)
	return Definition{token.Integer, matcher.Sequence(ms...)}
}

var stringLiteral = matcher.Sequence(
	matcher.Exact(`"`),
	matcher.Optional(matcher.Repeat(matcher.Either(
		matcher.Not(matcher.Characters("\"\\\n", "")),
		matcher.Sequence(matcher.Exact(`\`), matcher.Any()),
	))),
	matcher.Exact(`"`),
)

// Default is the grammar of declarations, expressions and tag heads.
var Default = &Grammar{Name: "default"}

// Markup is the grammar of the children of a tag.
var Markup = &Grammar{
	Name: "markup",
	Definitions: []Definition{
		{token.Text, matcher.Not(matcher.Characters("<{}", ""))},
		exact(token.LessSlash, "</"),
		exact(token.Less, "<"),
		exact(token.LeftBrace, "{"),
		exact(token.RightBrace, "}"),
	},
}

// Template is the grammar of the contents of a template literal.
var Template = &Grammar{
	Name: "template",
	Definitions: []Definition{
		{token.TemplateText, matcher.Not(matcher.Characters("`$\\", ""))},
		{token.TemplateEscape, matcher.Sequence(matcher.Exact(`\`), matcher.Any())},
		exact(token.TemplateOpen, "${"),
		exact(token.Dollar, "$"),
		exact(token.Backtick, "`"),
	},
}

func init() {
	defs := []Definition{
		{token.Whitespace, matcher.Characters(whitespace, "")},
		{token.Comment, matcher.Sequence(
			matcher.Exact("//"),
			matcher.Optional(matcher.Not(matcher.Characters("\n", ""))),
		)},
	}

	defs = append(defs, keywords()...)
	defs = append(defs,
		integer("0b", binDigits),
		integer("0o", octDigits),
		integer("0x", hexDigits),
		integer("", numDigits),
		Definition{token.String, stringLiteral},

		exact(token.Arrow, "=>"),
		exact(token.LessEqual, "<="),
		exact(token.GreaterEqual, ">="),
		exact(token.NotEqual, "!="),
		exact(token.DoubleQuestion, "??"),
		exact(token.SlashGreater, "/>"),
		exact(token.LeftBrace, "{"),
		exact(token.RightBrace, "}"),
		exact(token.LeftParen, "("),
		exact(token.RightParen, ")"),
		exact(token.Less, "<"),
		exact(token.Greater, ">"),
		exact(token.Equal, "="),
		exact(token.Question, "?"),
		exact(token.Colon, ":"),
		exact(token.Comma, ","),
		exact(token.Dot, "."),
		exact(token.Pipe, "|"),
		exact(token.Backtick, "`"),

		Definition{token.Identifier, matcher.Sequence(
			matcher.Class(isIdentStart),
			matcher.Optional(matcher.Class(isIdentChar)),
		)},
	)

	Default.Definitions = defs
}
