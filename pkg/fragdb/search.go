// Pattern search over the aligned label string. The patterns people
// have in their scripts use a lookahead group like (?=(L{2,6})) to get
// every overlapping window. Go's regexp has no lookahead, so the same
// windows are recovered by anchoring the inner expression at every
// position in turn; the greedy match at each position is exactly what
// the lookahead form captured.

package fragdb

import (
	"regexp"
	"strings"
)

// stripLookahead unwraps a (?=(...)) pattern to its inner expression.
// Patterns already in plain form pass through.
func stripLookahead(pattern string) string {
	if strings.HasPrefix(pattern, "(?=(") && strings.HasSuffix(pattern, "))") {
		return pattern[4 : len(pattern)-2]
	}
	return pattern
}

// FragmentsMatching returns every overlapping index window of the pool
// whose labels match pattern, for example "L{2,6}" for runs of two to
// six loop residues. Windows never cross fragment boundaries.
// ErrNoFragments is returned when the pool holds no matching window.
func (p *Pool) FragmentsMatching(pattern string) ([]Window, error) {
	re, err := regexp.Compile("^(?:" + stripLookahead(pattern) + ")")
	if err != nil {
		return nil, err
	}
	labels := string(p.labels)
	var out []Window
	for i := 0; i < len(labels); i++ {
		if loc := re.FindStringIndex(labels[i:]); loc != nil && loc[1] > 0 {
			if strings.IndexByte(labels[i:i+loc[1]], spacer) != -1 {
				continue // a dot or class in the pattern swallowed a join
			}
			out = append(out, Window{Start: i, N: loc[1]})
		}
	}
	if len(out) == 0 {
		return nil, ErrNoFragments
	}
	return out, nil
}
