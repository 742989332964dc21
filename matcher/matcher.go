// Package matcher implements the character-level matching algebra used to
// recognize tokens. A matcher is fed one character at a time, starting at
// offset 0, and decides whether the character belongs to the candidate token,
// whether the token ended right before it, or whether the candidate is not a
// token of its kind at all.
package matcher

import "strings"

// EOF is the character given to a matcher when the end of the input has been
// reached.
const EOF rune = -1

// Result is the decision of a matcher for a single character.
type Result byte

const (
	// Keep means the character belongs to the token and matching continues.
	Keep Result = iota
	// Satisfied means the token ended right before the character.
	Satisfied
	// Cancel means the input is not a token of this kind.
	Cancel
)

func (r Result) String() string {
	switch r {
	case Keep:
		return "keep"
	case Satisfied:
		return "satisfied"
	case Cancel:
		return "cancel"
	}
	return "invalid"
}

// Func decides for the character at the given offset of a single match
// attempt. It must be called with consecutive offsets starting at 0.
type Func func(r rune, offset int) Result

// Matcher creates match attempts. Matchers are immutable and safe for
// concurrent use; any state lives in the Func returned by Begin.
type Matcher interface {
	// Begin starts a new match attempt.
	Begin() Func
}

// stateless is a matcher whose decision only depends on the character and
// the offset.
type stateless Func

func (m stateless) Begin() Func { return Func(m) }

// Characters matches a non-empty run of characters in allowed. A character in
// disallowed cancels the match even if it is also allowed.
func Characters(allowed, disallowed string) Matcher {
	return stateless(func(r rune, offset int) Result {
		switch {
		case r != EOF && strings.ContainsRune(disallowed, r):
			return Cancel
		case r != EOF && strings.ContainsRune(allowed, r):
			return Keep
		case offset > 0:
			return Satisfied
		default:
			return Cancel
		}
	})
}

// Class matches a non-empty run of characters for which in returns true.
func Class(in func(rune) bool) Matcher {
	return stateless(func(r rune, offset int) Result {
		switch {
		case r != EOF && in(r):
			return Keep
		case offset > 0:
			return Satisfied
		default:
			return Cancel
		}
	})
}

// Exact matches the given keyword. It panics if the keyword is empty.
func Exact(keyword string) Matcher {
	if keyword == "" {
		panic("matcher: Exact requires a non-empty keyword")
	}

	runes := []rune(keyword)
	return stateless(func(r rune, offset int) Result {
		if offset >= len(runes) {
			return Satisfied
		}

		if r == runes[offset] {
			return Keep
		}
		return Cancel
	})
}

// Not matches a run of characters up to, and not including, the first
// character at which inner would start a match. It cancels if inner would
// start a match at the very first character.
func Not(inner Matcher) Matcher {
	return stateless(func(r rune, offset int) Result {
		if r == EOF {
			return Satisfied
		}

		starts := inner.Begin()(r, 0) == Keep
		if offset == 0 {
			if starts {
				return Cancel
			}
			return Keep
		}

		if starts {
			return Satisfied
		}
		return Keep
	})
}

// Optional matches inner or nothing at all.
func Optional(inner Matcher) Matcher {
	return optional{inner}
}

type optional struct {
	inner Matcher
}

func (m optional) Begin() Func {
	next := m.inner.Begin()
	return func(r rune, offset int) Result {
		result := next(r, offset)
		if offset == 0 && result == Cancel {
			return Satisfied
		}
		return result
	}
}
