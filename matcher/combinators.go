package matcher

// Sequence matches each of the given matchers one after the other. The
// character at which a matcher is satisfied is given to the next one at its
// offset 0, so zero-width matchers such as Optional or Unless compose freely.
func Sequence(ms ...Matcher) Matcher {
	if len(ms) == 0 {
		panic("matcher: Sequence requires at least one matcher")
	}
	return sequence(ms)
}

type sequence []Matcher

func (s sequence) Begin() Func {
	var (
		idx  int
		base int
		cur  = s[0].Begin()
	)

	return func(r rune, offset int) Result {
		for {
			switch cur(r, offset-base) {
			case Keep:
				return Keep
			case Cancel:
				return Cancel
			}

			if idx == len(s)-1 {
				return Satisfied
			}

			idx++
			base = offset
			cur = s[idx].Begin()
		}
	}
}

// Either matches any of the given alternatives, fed in lockstep. It keeps
// matching while at least one alternative keeps. Once no alternative keeps,
// it is satisfied if one of them was satisfied at that very character.
// Alternatives satisfied earlier are discarded: there is no backtracking.
func Either(ms ...Matcher) Matcher {
	if len(ms) == 0 {
		panic("matcher: Either requires at least one matcher")
	}
	return either(ms)
}

type either []Matcher

func (e either) Begin() Func {
	live := make([]Func, len(e))
	for i, m := range e {
		live[i] = m.Begin()
	}

	return func(r rune, offset int) Result {
		var (
			next      = live[:0]
			satisfied bool
		)

		for _, f := range live {
			switch f(r, offset) {
			case Keep:
				next = append(next, f)
			case Satisfied:
				satisfied = true
			}
		}
		live = next

		switch {
		case len(live) > 0:
			return Keep
		case satisfied:
			return Satisfied
		default:
			return Cancel
		}
	}
}

// Repeat matches one or more consecutive occurrences of inner.
func Repeat(inner Matcher) Matcher {
	return repeat{inner}
}

type repeat struct {
	inner Matcher
}

func (m repeat) Begin() Func {
	var (
		base int
		cur  = m.inner.Begin()
	)

	return func(r rune, offset int) Result {
		switch cur(r, offset-base) {
		case Keep:
			return Keep
		case Cancel:
			return Cancel
		}

		if offset == base {
			return Satisfied
		}

		base = offset
		cur = m.inner.Begin()
		if cur(r, 0) == Keep {
			return Keep
		}
		return Satisfied
	}
}

// Unless is a zero-width matcher that cancels if inner would start a match at
// the current character and is satisfied otherwise.
func Unless(inner Matcher) Matcher {
	return stateless(func(r rune, offset int) Result {
		if offset == 0 && inner.Begin()(r, 0) == Keep {
			return Cancel
		}
		return Satisfied
	})
}

// Any matches exactly one character.
func Any() Matcher {
	return stateless(func(r rune, offset int) Result {
		if offset > 0 {
			return Satisfied
		}

		if r == EOF {
			return Cancel
		}
		return Keep
	})
}
