package domain

// PairwiseMatrix holds, for every ordered pair of distinct candidates, the
// number of votes ranking the first strictly above the second. It is derived
// from the closed vote set and can be recomputed at any time for audit.
type PairwiseMatrix struct {
	candidates []Candidate
	index      map[Candidate]int
	counts     [][]int
}

// NewPairwiseMatrix aggregates a closed set of canonical votes over set.
func NewPairwiseMatrix(set CandidateSet, votes []Preference) *PairwiseMatrix {
	m := emptyMatrix(set.All())
	for _, vote := range votes {
		for _, level := range vote.Levels {
			for _, a := range level {
				for _, b := range set.All() {
					if a != b && vote.Prefers(a, b) {
						m.counts[m.index[a]][m.index[b]]++
					}
				}
			}
		}
	}
	return m
}

// PairwiseMatrixFromCounts builds a matrix from raw counts, candidate order
// matching the rows. Intended for recomputation checks and tests.
func PairwiseMatrixFromCounts(candidates []Candidate, counts [][]int) *PairwiseMatrix {
	m := emptyMatrix(candidates)
	for i := range counts {
		copy(m.counts[i], counts[i])
	}
	return m
}

func emptyMatrix(candidates []Candidate) *PairwiseMatrix {
	m := &PairwiseMatrix{
		candidates: append([]Candidate{}, candidates...),
		index:      make(map[Candidate]int, len(candidates)),
		counts:     make([][]int, len(candidates)),
	}
	for i, c := range m.candidates {
		m.index[c] = i
		m.counts[i] = make([]int, len(candidates))
	}
	return m
}

// Candidates returns the matrix's candidate order.
func (m *PairwiseMatrix) Candidates() []Candidate {
	return m.candidates
}

// Count returns the number of votes ranking a strictly above b.
func (m *PairwiseMatrix) Count(a, b Candidate) int {
	return m.counts[m.index[a]][m.index[b]]
}
