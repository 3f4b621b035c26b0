package domain

import "fmt"

// ClassicalPreference maps a classical multi-select submission to the
// canonical form. selected may hold at most maxVotes candidates (0 means
// unlimited); rejectAll requires the rejection option and an empty selection.
//
// With the rejection option enabled the mapping keeps "approve everyone"
// distinguishable from "abstain": a full selection ranks the bar below the
// candidates, an empty one ties it with them.
func ClassicalPreference(selected []Candidate, rejectAll bool, set CandidateSet, maxVotes int) (Preference, error) {
	if rejectAll {
		if !set.BarEnabled {
			return Preference{}, ErrRejectionNotEnabled
		}
		if len(selected) > 0 {
			return Preference{}, ErrRejectAllConflict
		}
		return Preference{Levels: [][]Candidate{{Bar}, append([]Candidate{}, set.Candidates...)}}, nil
	}

	chosen := make(map[Candidate]bool, len(selected))
	for _, c := range selected {
		if c == Bar || !set.Contains(c) {
			return Preference{}, fmt.Errorf("%w: %q", ErrUnknownCandidate, string(c))
		}
		if chosen[c] {
			return Preference{}, fmt.Errorf("%w: %q", ErrDuplicateCandidate, string(c))
		}
		chosen[c] = true
	}

	// Abstention, and "everyone selected" without a rejection option, collapse
	// to a single all-tied level.
	if len(chosen) == 0 || (!set.BarEnabled && len(chosen) == len(set.Candidates)) {
		return Preference{Levels: [][]Candidate{set.All()}}, nil
	}

	// A full selection means "approve everyone" and is exempt from the
	// selection limit.
	if set.BarEnabled && len(chosen) == len(set.Candidates) {
		return Preference{Levels: [][]Candidate{
			append([]Candidate{}, set.Candidates...),
			{Bar},
		}}, nil
	}

	if maxVotes > 0 && len(chosen) > maxVotes {
		return Preference{}, fmt.Errorf("%w: %d of at most %d", ErrTooManySelections, len(chosen), maxVotes)
	}

	var upper, lower []Candidate
	for _, c := range set.Candidates {
		if chosen[c] {
			upper = append(upper, c)
		} else {
			lower = append(lower, c)
		}
	}
	if set.BarEnabled {
		lower = append(lower, Bar)
	}
	return Preference{Levels: [][]Candidate{upper, lower}}, nil
}

// LegacyClassicalPreference maps a classical vote recorded before the
// implicit-bar disambiguation existed. Such rows carry no reject-all flag,
// so with the rejection option enabled an empty or full selection could mean
// either abstention or full approval; those rows are flagged unresolvable
// instead of guessed at.
func LegacyClassicalPreference(selected []Candidate, set CandidateSet) (Preference, error) {
	if set.BarEnabled && (len(selected) == 0 || len(selected) == len(set.Candidates)) {
		return Preference{}, ErrAmbiguousClassicalVote
	}
	return ClassicalPreference(selected, false, set, 0)
}
