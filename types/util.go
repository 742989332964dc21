package types

import (
	"fmt"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

type strSet struct {
	elems []string
	index map[string]struct{}
}

func newStrSet() *strSet {
	return &strSet{index: make(map[string]struct{})}
}

func (s *strSet) add(str string) bool {
	if _, ok := s.index[str]; ok {
		return false
	}
	s.elems = append(s.elems, str)
	s.index[str] = struct{}{}
	return true
}

func (s *strSet) contains(str string) bool {
	_, ok := s.index[str]
	return ok
}

// closest returns the candidate closest to name, or an empty string if none
// of them is close enough to be a likely typo.
func closest(name string, candidates []string) string {
	maxDist := len(name)/3 + 1
	var (
		best     string
		bestDist = maxDist + 1
	)

	for _, c := range candidates {
		if c == name {
			continue
		}

		d := levenshtein.DistanceForStrings(
			[]rune(strings.ToLower(name)),
			[]rune(strings.ToLower(c)),
			levenshtein.DefaultOptionsWithSub,
		)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// suggest returns a sentence proposing the candidate closest to name, or an
// empty string if there is none.
func suggest(name string, candidates []string) string {
	if c := closest(name, candidates); c != "" {
		return fmt.Sprintf(" Did you mean %q?", c)
	}
	return ""
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
