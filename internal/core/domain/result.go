package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// BoundaryStat counts the votes supporting (Pro) and opposing (Contra) one
// adjacent level boundary of the aggregate ranking.
type BoundaryStat struct {
	Pro    int `json:"pro"`
	Contra int `json:"contra"`
}

// Result is the published record of one tallied ballot. It carries everything
// a third party needs to recompute and confirm the outcome: the candidate
// list, the raw canonical vote strings, the aggregate ranking and the
// per-boundary counts.
type Result struct {
	BallotID    uuid.UUID         `json:"ballot_id"`
	Candidates  []Candidate       `json:"candidates"`
	BarEnabled  bool              `json:"bar_enabled"`
	Mode        VoteMode          `json:"mode"`
	RawVotes    []string          `json:"raw_votes"`
	Ranking     string            `json:"ranking"`
	Boundaries  []BoundaryStat    `json:"boundaries"`
	Selections  map[Candidate]int `json:"selections,omitempty"`
	VoteCount   int               `json:"vote_count"`
	PublishedAt time.Time         `json:"published_at"`
}

// Equivalent reports whether both results describe the same outcome over the
// same vote set, ignoring publication time. Used by the audit recomputation
// guard.
func (r *Result) Equivalent(other *Result) bool {
	if r.Ranking != other.Ranking || r.VoteCount != other.VoteCount {
		return false
	}
	if len(r.Boundaries) != len(other.Boundaries) {
		return false
	}
	for i, b := range r.Boundaries {
		if b != other.Boundaries[i] {
			return false
		}
	}
	if len(r.RawVotes) != len(other.RawVotes) {
		return false
	}
	a, b := append([]string{}, r.RawVotes...), append([]string{}, other.RawVotes...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BoundaryStats computes Pro/Contra for every adjacent boundary of ranking
// over the closed vote set. Each boundary is judged per vote through a
// representative pair, the first candidate of the upper and of the lower
// level; within a level the members are tied in the aggregate, so the
// representative choice does not change the count.
func BoundaryStats(ranking Preference, votes []Preference) []BoundaryStat {
	stats := make([]BoundaryStat, 0, len(ranking.Levels))
	for i := 0; i+1 < len(ranking.Levels); i++ {
		upper := ranking.Levels[i][0]
		lower := ranking.Levels[i+1][0]

		var stat BoundaryStat
		for _, vote := range votes {
			switch {
			case vote.Prefers(upper, lower):
				stat.Pro++
			case vote.Prefers(lower, upper):
				stat.Contra++
			}
		}
		stats = append(stats, stat)
	}
	return stats
}

// SelectionCounts returns, per real candidate, how many votes selected it.
// A classical vote selected a candidate iff it ranks it strictly above
// anything at all, which is what end users see for two-level classical
// results instead of boundary counts.
func SelectionCounts(set CandidateSet, votes []Preference) map[Candidate]int {
	counts := make(map[Candidate]int, len(set.Candidates))
	for _, c := range set.Candidates {
		counts[c] = 0
	}
	for _, vote := range votes {
		for _, c := range set.Candidates {
			for _, other := range set.All() {
				if other != c && vote.Prefers(c, other) {
					counts[c]++
					break
				}
			}
		}
	}
	return counts
}
