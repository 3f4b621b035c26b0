package domain

// SchulzeRanking derives the collective ranking from the pairwise matrix via
// the Schulze (strongest beatpath) method. Candidates neither of which beats
// the other by path strength end up tied on the same level; no artificial
// tie-break is applied.
func SchulzeRanking(m *PairwiseMatrix) Preference {
	n := len(m.candidates)
	paths := strongestPaths(m)

	// Repeatedly peel off the undominated candidates as the next level. The
	// strict path-strength relation has no cycles, so every pass finds at
	// least one undominated candidate.
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	var levels [][]Candidate
	for len(remaining) > 0 {
		var top, rest []int
		for _, i := range remaining {
			dominated := false
			for _, j := range remaining {
				if i != j && paths[j][i] > paths[i][j] {
					dominated = true
					break
				}
			}
			if dominated {
				rest = append(rest, i)
			} else {
				top = append(top, i)
			}
		}

		level := make([]Candidate, 0, len(top))
		for _, i := range top {
			level = append(level, m.candidates[i])
		}
		levels = append(levels, level)
		remaining = rest
	}

	return Preference{Levels: levels}
}

// strongestPaths computes the Floyd-Warshall closure of direct majorities:
// the strength of the strongest path from each candidate to each other.
func strongestPaths(m *PairwiseMatrix) [][]int {
	n := len(m.candidates)
	paths := make([][]int, n)
	for i := range paths {
		paths[i] = make([]int, n)
		for j := range paths[i] {
			if i != j && m.counts[i][j] > m.counts[j][i] {
				paths[i][j] = m.counts[i][j]
			}
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			for j := 0; j < n; j++ {
				if j == i || j == k {
					continue
				}
				if s := min(paths[i][k], paths[k][j]); s > paths[i][j] {
					paths[i][j] = s
				}
			}
		}
	}

	return paths
}
