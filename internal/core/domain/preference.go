package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Preference is the canonical vote form: an ordered sequence of levels, most
// preferred first. Candidates within a level are tied and have no internal
// order. A valid Preference covers every candidate of its ballot's set
// (including the bar, when enabled) exactly once.
type Preference struct {
	Levels [][]Candidate
}

// ParsePreference parses a relation string such as "C=D>A>B=E" against set.
// ">" starts a new, strictly lower level; "=" adds a tied candidate to the
// current level. Every candidate of the set, plus the bar when enabled, must
// appear exactly once.
func ParsePreference(raw string, set CandidateSet) (Preference, error) {
	seen := make(map[Candidate]bool, set.Size())
	var levels [][]Candidate

	for _, group := range strings.Split(raw, ">") {
		var level []Candidate
		for _, token := range strings.Split(group, "=") {
			token = strings.TrimSpace(token)
			if token == "" {
				return Preference{}, fmt.Errorf("%w: empty token in ranking", ErrUnknownCandidate)
			}
			c := Candidate(token)
			if !set.Contains(c) {
				return Preference{}, fmt.Errorf("%w: %q", ErrUnknownCandidate, token)
			}
			if seen[c] {
				return Preference{}, fmt.Errorf("%w: %q", ErrDuplicateCandidate, token)
			}
			seen[c] = true
			level = append(level, c)
		}
		levels = append(levels, level)
	}

	if len(seen) != set.Size() {
		return Preference{}, ErrIncompleteRanking
	}

	p := Preference{Levels: levels}
	p.normalize(set)
	return p, nil
}

// normalize sorts candidates within each level into display order so that
// serialization is canonical. Level order carries the preference; order
// within a level does not.
func (p Preference) normalize(set CandidateSet) {
	idx := set.orderIndex()
	for _, level := range p.Levels {
		sort.Slice(level, func(i, j int) bool {
			return idx[level[i]] < idx[level[j]]
		})
	}
}

// String renders the canonical relation string, levels joined by ">" and
// tied candidates by "=".
func (p Preference) String() string {
	var b strings.Builder
	for i, level := range p.Levels {
		if i > 0 {
			b.WriteByte('>')
		}
		for j, c := range level {
			if j > 0 {
				b.WriteByte('=')
			}
			b.WriteString(string(c))
		}
	}
	return b.String()
}

// LevelOf returns the zero-based level index of c, or -1 when c is not ranked.
func (p Preference) LevelOf(c Candidate) int {
	for i, level := range p.Levels {
		for _, other := range level {
			if other == c {
				return i
			}
		}
	}
	return -1
}

// Prefers reports whether a is ranked strictly above b.
func (p Preference) Prefers(a, b Candidate) bool {
	la, lb := p.LevelOf(a), p.LevelOf(b)
	return la >= 0 && lb >= 0 && la < lb
}

// Equal reports whether both partitions rank the same candidates in the same
// levels.
func (p Preference) Equal(other Preference) bool {
	if len(p.Levels) != len(other.Levels) {
		return false
	}
	for i, level := range p.Levels {
		if len(level) != len(other.Levels[i]) {
			return false
		}
		members := make(map[Candidate]bool, len(level))
		for _, c := range level {
			members[c] = true
		}
		for _, c := range other.Levels[i] {
			if !members[c] {
				return false
			}
		}
	}
	return true
}
