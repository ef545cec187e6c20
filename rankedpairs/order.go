// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rankedpairs

import (
	"sort"

	"github.com/AksoEo/voting/ballot"
	"github.com/AksoEo/voting/tiebreak"
)

// orderPairs sorts pairs strongest-majority-first (Tideman ordering): by
// |diff| descending, then within a tied |diff| group by two layers that
// keep the lock graph as connected as possible — pairs whose loser is
// already a loser elsewhere sort first, then pairs whose winner is already
// a winner elsewhere, then the unresolved remainder ordered by how little
// the tie-breaker favors their loser. Ties in the final remainder escalate
// to the tie-breaker; its absence or incompleteness aborts the whole step.
func orderPairs(pairs []*pair, tb tiebreak.Order) ([]*pair, StatusKind, [][2]ballot.CandidateID, []ballot.CandidateID) {
	groups := groupByAbsDiff(pairs)

	globalWinners := make(map[ballot.CandidateID]bool)
	globalLosers := make(map[ballot.CandidateID]bool)

	ordered := make([]*pair, 0, len(pairs))

	for _, group := range groups {
		if len(group) == 1 {
			ordered = append(ordered, group[0])
			globalWinners[group[0].winner] = true
			globalLosers[group[0].loser] = true
			continue
		}

		var g1, rest []*pair
		for _, p := range group {
			if globalLosers[p.loser] {
				g1 = append(g1, p)
			} else {
				rest = append(rest, p)
			}
		}

		var g2, g3 []*pair
		for _, p := range rest {
			if globalWinners[p.winner] {
				g2 = append(g2, p)
			} else {
				g3 = append(g3, p)
			}
		}

		sortPairsByIDs(g1)
		sortPairsByIDs(g2)

		if len(g3) > 1 {
			if tb == nil {
				tied := make([][2]ballot.CandidateID, 0, len(g3))
				for _, p := range g3 {
					tied = append(tied, [2]ballot.CandidateID{p.winner, p.loser})
				}
				return nil, TieBreakerNeeded, tied, nil
			}
			losers := make([]ballot.CandidateID, 0, len(g3))
			for _, p := range g3 {
				losers = append(losers, p.loser)
			}
			if missing := tb.Missing(losers); len(missing) > 0 {
				return nil, IncompleteTieBreaker, nil, missing
			}
			sort.SliceStable(g3, func(i, j int) bool {
				return tb.Less(g3[j].loser, g3[i].loser) // least-preferred loser first
			})
		}

		for _, p := range g1 {
			ordered = append(ordered, p)
		}
		for _, p := range g2 {
			ordered = append(ordered, p)
		}
		for _, p := range g3 {
			ordered = append(ordered, p)
		}
		for _, p := range group {
			globalWinners[p.winner] = true
			globalLosers[p.loser] = true
		}
	}

	return ordered, Success, nil, nil
}

func groupByAbsDiff(pairs []*pair) [][]*pair {
	byAbs := make(map[int][]*pair)
	var mags []int
	for _, p := range pairs {
		m := p.diff
		if m < 0 {
			m = -m
		}
		if _, ok := byAbs[m]; !ok {
			mags = append(mags, m)
		}
		byAbs[m] = append(byAbs[m], p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(mags)))
	groups := make([][]*pair, 0, len(mags))
	for _, m := range mags {
		groups = append(groups, byAbs[m])
	}
	return groups
}

func sortPairsByIDs(pairs []*pair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].winner != pairs[j].winner {
			return pairs[i].winner < pairs[j].winner
		}
		return pairs[i].loser < pairs[j].loser
	})
}
