package domain

// Candidate identifies one option on a ballot by its short token.
type Candidate string

// Bar is the synthetic rejection candidate. It never shows up in a ballot's
// display list, but when enabled it takes part in every comparison.
const Bar Candidate = "_bar_"

// CandidateSet is the fixed option list of one ballot, in display order.
// The bar is not part of Candidates; BarEnabled adds it to all comparisons.
type CandidateSet struct {
	Candidates []Candidate
	BarEnabled bool
}

// All returns every candidate taking part in comparisons, bar last.
func (s CandidateSet) All() []Candidate {
	all := make([]Candidate, 0, len(s.Candidates)+1)
	all = append(all, s.Candidates...)
	if s.BarEnabled {
		all = append(all, Bar)
	}
	return all
}

// Size is the number of candidates taking part in comparisons.
func (s CandidateSet) Size() int {
	if s.BarEnabled {
		return len(s.Candidates) + 1
	}
	return len(s.Candidates)
}

func (s CandidateSet) Contains(c Candidate) bool {
	if c == Bar {
		return s.BarEnabled
	}
	for _, other := range s.Candidates {
		if other == c {
			return true
		}
	}
	return false
}

// orderIndex maps each candidate to its display position, bar last.
func (s CandidateSet) orderIndex() map[Candidate]int {
	idx := make(map[Candidate]int, s.Size())
	for i, c := range s.All() {
		idx[c] = i
	}
	return idx
}
