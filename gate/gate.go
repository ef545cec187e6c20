// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gate

import "github.com/AksoEo/voting/ballot"

// BallotCounts is the §3 "Ballot counts" triple: how many ballots were
// submitted, how many of those were blank, and how many voters were
// eligible to cast one.
type BallotCounts struct {
	Submitted int
	Blank     int
	Eligible  int
}

// PassesQuorum reports whether counts.Submitted/counts.Eligible clears the
// configured quorum threshold.
func PassesQuorum(counts BallotCounts, quorum Threshold) bool {
	return quorum.Passes(Ratio(counts.Submitted, counts.Eligible))
}

// PassesBlankLimit reports whether counts.Blank/counts.Submitted stays
// within the configured blank-ratio limit. A vote with zero submitted
// ballots trivially has a blank ratio of zero and always passes.
func PassesBlankLimit(counts BallotCounts, limit Threshold) bool {
	if counts.Submitted == 0 {
		return true
	}
	return limit.Within(Ratio(counts.Blank, counts.Submitted))
}

// MentionFilter is the result of partitioning a candidate list by mention
// ratio.
type MentionFilter struct {
	Included []ballot.CandidateID
	Excluded []ballot.CandidateID
}

// FilterByMentions partitions candidates into those whose mention ratio
// (mentions/submitted) passes the configured mention threshold and those
// that don't. Candidate order is preserved within each partition.
func FilterByMentions(candidates []ballot.CandidateID, mentions map[ballot.CandidateID]uint32, submitted int, threshold Threshold) MentionFilter {
	var f MentionFilter
	for _, c := range candidates {
		ratio := Ratio(int(mentions[c]), submitted)
		if threshold.Passes(ratio) {
			f.Included = append(f.Included, c)
		} else {
			f.Excluded = append(f.Excluded, c)
		}
	}
	return f
}
