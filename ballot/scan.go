// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot

import "math"

// CountBlanks counts ballots with zero ranks.
func CountBlanks(b *Buffer) int {
	n := 0
	for i := 0; i < b.Count(); i++ {
		if b.IsBlank(i) {
			n++
		}
	}
	return n
}

// CandidateMentions returns the mention tally recorded at encoding time.
func CandidateMentions(b *Buffer) map[CandidateID]uint32 {
	return b.Mentions()
}

// Sentinels returned by CompareByBallot when only one of the two
// candidates appears on the ballot. Their magnitude is irrelevant to every
// caller in this module — only the sign is ever consulted — but they are
// kept far outside any realistic rank index so a caller inspecting the raw
// value never mistakes one for a real rank difference.
const (
	OnlyAAppears = math.MinInt32 / 2
	OnlyBAppears = math.MaxInt32 / 2
)

// CompareByBallot walks ballot i and compares the rank positions at which
// candidates a and b first appear. If neither appears, it returns 0. If
// only one appears, it returns the corresponding sentinel above. Otherwise
// it returns rank(b) - rank(a): by convention a positive result means a is
// preferred over b on this ballot.
func CompareByBallot(buf *Buffer, i int, a, b CandidateID) int {
	rank := 0
	rankA, rankB := -1, -1
	buf.forEachRow(i, func(id CandidateID, sep bool) {
		if sep {
			rank++
			return
		}
		if id == a && rankA < 0 {
			rankA = rank
		}
		if id == b && rankB < 0 {
			rankB = rank
		}
	})

	switch {
	case rankA < 0 && rankB < 0:
		return 0
	case rankB < 0:
		return OnlyAAppears
	case rankA < 0:
		return OnlyBAppears
	default:
		return rankB - rankA
	}
}

// ScanNthPreferences computes, for each ballot, the (n+1)-th distinct
// candidate id (0-indexed rank n) that belongs to active, skipping ids
// outside active. It returns the tally of how many ballots had that
// candidate as their n-th active preference, and a per-ballot assignment
// slice (0 when a ballot has fewer than n+1 active preferences).
func ScanNthPreferences(b *Buffer, active map[CandidateID]bool, n int) (map[CandidateID]int, []CandidateID) {
	tally := make(map[CandidateID]int)
	assign := make([]CandidateID, b.Count())

	for i := 0; i < b.Count(); i++ {
		seen := 0
		var found CandidateID
		b.forEachRow(i, func(id CandidateID, sep bool) {
			if sep || found != 0 {
				return
			}
			if !active[id] {
				return
			}
			if seen == n {
				found = id
				return
			}
			seen++
		})
		if found != 0 {
			assign[i] = found
			tally[found]++
		}
	}
	return tally, assign
}

// ScanNextPreferences computes, for each ballot, the first candidate id in
// active that appears strictly after given. It returns the tally of those
// next-preference targets and a per-ballot assignment slice (0 when a
// ballot has no such next preference, including when given never appears
// on the ballot).
func ScanNextPreferences(b *Buffer, active map[CandidateID]bool, given CandidateID) (map[CandidateID]int, []CandidateID) {
	tally := make(map[CandidateID]int)
	assign := make([]CandidateID, b.Count())

	for i := 0; i < b.Count(); i++ {
		passedGiven := false
		var found CandidateID
		b.forEachRow(i, func(id CandidateID, sep bool) {
			if sep || found != 0 {
				return
			}
			if !passedGiven {
				if id == given {
					passedGiven = true
				}
				return
			}
			if active[id] {
				found = id
			}
		})
		if found != 0 {
			assign[i] = found
			tally[found]++
		}
	}
	return tally, assign
}
