// Package scanner turns sources into tokens using the definitions of a
// grammar. The scanner is lazy: the parser chooses the grammar of every token
// it asks for, which is how the contents of tags and template literals are
// scanned differently from the rest of the code.
package scanner

import (
	"unicode/utf8"

	"github.com/golang/glog"
	"github.com/packagefactory/componentengine/matcher"
	"github.com/packagefactory/componentengine/report"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
)

// Scanner is in charge of extracting tokens from a source.
type Scanner struct {
	src        *source.Source
	pos        token.Position
	keepTrivia bool
}

// Option configures a scanner.
type Option func(*Scanner)

// KeepTrivia makes the scanner return whitespace and comment tokens instead
// of skipping them.
func KeepTrivia() Option {
	return func(s *Scanner) {
		s.keepTrivia = true
	}
}

// New creates a new scanner for the source.
func New(src *source.Source, opts ...Option) *Scanner {
	s := &Scanner{src: src}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the source being scanned.
func (s *Scanner) Source() *source.Source {
	return s.src
}

// Pos returns the position of the next character to scan.
func (s *Scanner) Pos() token.Position {
	return s.pos
}

// Checkpoint is a saved position of the scanner.
type Checkpoint struct {
	pos token.Position
}

// Save returns a checkpoint of the current position.
func (s *Scanner) Save() Checkpoint {
	return Checkpoint{s.pos}
}

// Restore moves the scanner back to the given checkpoint.
func (s *Scanner) Restore(c Checkpoint) {
	s.pos = c.pos
}

// Next returns the next token of the given grammar. Once the end of the
// source is reached, an EOF token is returned every time.
func (s *Scanner) Next(g *Grammar) (*token.Token, error) {
	for {
		tok, err := s.scan(g)
		if err != nil {
			return nil, err
		}

		if s.keepTrivia || !tok.Type.IsTrivia() {
			return tok, nil
		}
	}
}

// Peek returns the next token of the given grammar without consuming it.
func (s *Scanner) Peek(g *Grammar) (*token.Token, error) {
	c := s.Save()
	defer s.Restore(c)
	return s.Next(g)
}

type attempt struct {
	next matcher.Func
	done bool
	ok   bool
	end  int
}

func (s *Scanner) scan(g *Grammar) (*token.Token, error) {
	start := s.pos
	contents := s.src.Contents
	if start.Offset >= len(contents) {
		return token.New(token.EOF, token.Range{Start: start, End: start}, ""), nil
	}

	attempts := make([]attempt, len(g.Definitions))
	for i, d := range g.Definitions {
		attempts[i].next = d.Matcher.Begin()
	}

	winner := -1
	for offset, pos := 0, start.Offset; winner < 0; offset++ {
		r, width := matcher.EOF, 0
		if pos < len(contents) {
			r, width = utf8.DecodeRuneInString(contents[pos:])
		}

		for i := range attempts {
			a := &attempts[i]
			if a.done {
				continue
			}

			switch a.next(r, offset) {
			case matcher.Keep:
				if r == matcher.EOF {
					a.done = true
				}
			case matcher.Satisfied:
				a.done, a.ok, a.end = true, offset > 0, pos
			case matcher.Cancel:
				a.done = true
			}
		}

		winner = s.decide(attempts)
		if winner == len(attempts) || r == matcher.EOF {
			break
		}
		pos += width
	}

	if winner < 0 || winner == len(attempts) {
		glog.V(5).Infof("no %s token matches at %s in %s", g, start, s.src.Path)
		return nil, report.NewLexicalError(s.src, start)
	}

	value := contents[start.Offset:attempts[winner].end]
	s.pos = advance(start, value)
	tok := token.New(g.Definitions[winner].Type, token.Range{Start: start, End: s.pos}, value)
	glog.V(5).Infof("scanned %s", tok)
	return tok, nil
}

// decide returns the index of the winning attempt, -1 if it cannot be known
// yet or len(attempts) if every attempt failed.
func (s *Scanner) decide(attempts []attempt) int {
	for i, a := range attempts {
		if !a.done {
			return -1
		}

		if a.ok {
			return i
		}
	}
	return len(attempts)
}

// advance returns the position after text, which starts at pos.
func advance(pos token.Position, text string) token.Position {
	for _, r := range text {
		if r == '\n' {
			pos.Line++
			pos.Column = 0
		} else {
			pos.Column++
		}
	}
	pos.Offset += len(text)
	return pos
}

// Tokenize scans the whole source with the default grammar. If the source
// cannot be scanned, the tokens found before the error are returned along
// with it.
func Tokenize(src *source.Source, opts ...Option) ([]*token.Token, error) {
	s := New(src, opts...)
	var tokens []*token.Token
	for {
		tok, err := s.Next(Default)
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}
