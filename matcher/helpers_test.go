package matcher

import "unicode/utf8"

// run feeds s to a new attempt of m and returns the number of bytes of the
// matched prefix. It reports false if m cancels. A matcher that still keeps at
// the end of the input is considered cancelled.
func run(m Matcher, s string) (int, bool) {
	var (
		f      = m.Begin()
		offset int
		pos    int
	)

	for {
		r, width := EOF, 0
		if pos < len(s) {
			r, width = utf8.DecodeRuneInString(s[pos:])
		}

		switch f(r, offset) {
		case Satisfied:
			return pos, true
		case Cancel:
			return 0, false
		}

		if r == EOF {
			return 0, false
		}

		pos += width
		offset++
	}
}

// trace feeds s to a new attempt of m and returns every result, one per
// character fed, including the end of input if it is reached.
func trace(m Matcher, s string) []Result {
	var (
		f       = m.Begin()
		results []Result
		offset  int
	)

	runes := append([]rune(s), EOF)
	for _, r := range runes {
		res := f(r, offset)
		results = append(results, res)
		if res != Keep {
			break
		}
		offset++
	}
	return results
}
