// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rankedpairs implements the Ranked Pairs (Tideman) engine (§4.6):
// a pairwise majority graph, strongest-pairs-first lock graph construction
// (see graph.go), and round-by-round winner extraction, following the
// reachability/cycle-avoidance rules set out in §4.9.
package rankedpairs

import (
	"sort"

	"github.com/AksoEo/voting/ballot"
	"github.com/AksoEo/voting/tiebreak"
	"github.com/decred/slog"
)

var log = slog.Disabled

// UseLogger sets the logger used by this package.
func UseLogger(l slog.Logger) { log = l }

// StatusKind tags the outcome of Run.
type StatusKind int

const (
	// Success means Winners and Rounds are populated.
	Success StatusKind = iota + 1
	// MajorityEmpty means at least half the ballots touched none of the
	// surviving pairs.
	MajorityEmpty
	// TieBreakerNeeded means some step of the algorithm hit an
	// ambiguity with no tie-breaker supplied; TiedPairs holds the
	// ambiguous pairs (pair ordering) or TiedRoots holds the ambiguous
	// roots (round winner extraction).
	TieBreakerNeeded
	// IncompleteTieBreaker means a tie-breaker was supplied but didn't
	// cover every id the ambiguous step needed; Missing holds the
	// uncovered ids.
	IncompleteTieBreaker
)

// pair is an unordered candidate pair a<b with its accumulated ballot
// comparison.
type pair struct {
	a, b    ballot.CandidateID
	ballots int // number of ballots that compared a and b
	diff    int // signed count: positive means a ahead, negative means b ahead
	winner  ballot.CandidateID
	loser   ballot.CandidateID
}

// Round records one winner-extraction pass for diagnostics.
type Round struct {
	Winner       ballot.CandidateID
	OrderedPairs [][2]ballot.CandidateID // winner, loser, strongest first
	Roots        []ballot.CandidateID    // lock-graph roots before tie-break insertion
}

// Outcome is the tagged result of Run.
type Outcome struct {
	Kind      StatusKind
	Winners   []ballot.CandidateID
	Rounds    []Round
	TiedPairs [][2]ballot.CandidateID
	TiedRoots []ballot.CandidateID
	Missing   []ballot.CandidateID
}

// Run tabulates a Ranked Pairs election over candidates, applying the
// fixed mention-count filter (≥ half the ballots), then electing up to
// maxWinners rounds via Tideman pairwise comparison and lock-graph
// extraction.
func Run(buf *ballot.Buffer, candidates []ballot.CandidateID, maxWinners int, tb tiebreak.Order) Outcome {
	mentions := ballot.CandidateMentions(buf)
	ballotCount := buf.Count()

	active := make([]ballot.CandidateID, 0, len(candidates))
	for _, c := range candidates {
		if 2*int(mentions[c]) >= ballotCount {
			active = append(active, c)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })

	pairs := buildPairs(active)
	empty := applyBallots(buf, pairs)
	if 2*empty >= ballotCount {
		log.Debugf("rankedpairs: %d/%d ballots touched no surviving pair, majority empty", empty, ballotCount)
		return Outcome{Kind: MajorityEmpty}
	}

	if kind, tied, missing := resolvePairWinners(pairs, tb); kind != Success {
		return Outcome{Kind: kind, TiedPairs: tied, Missing: missing}
	}

	target := maxWinners
	if target > len(active) {
		target = len(active)
	}

	remaining := make(map[ballot.CandidateID]bool, len(active))
	for _, c := range active {
		remaining[c] = true
	}

	var winners []ballot.CandidateID
	var rounds []Round

	for len(winners) < target {
		roundPairs := activePairs(pairs, remaining)

		ordered, kind, tied, missing := orderPairs(roundPairs, tb)
		if kind != Success {
			return Outcome{Kind: kind, Rounds: rounds, TiedPairs: tied, Missing: missing}
		}

		nodes := make([]ballot.CandidateID, 0, len(remaining))
		for c := range remaining {
			nodes = append(nodes, c)
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

		g := newLockGraph(nodes)
		orderedPairs := make([][2]ballot.CandidateID, 0, len(ordered))
		for _, p := range ordered {
			g.addEdge(p.winner, p.loser)
			orderedPairs = append(orderedPairs, [2]ballot.CandidateID{p.winner, p.loser})
		}

		roots := g.roots()
		round := Round{OrderedPairs: orderedPairs, Roots: roots}

		if len(roots) > 1 {
			if tb == nil {
				return Outcome{Kind: TieBreakerNeeded, Rounds: rounds, TiedRoots: roots}
			}
			if missing := tb.Missing(roots); len(missing) > 0 {
				return Outcome{Kind: IncompleteTieBreaker, Rounds: rounds, Missing: missing}
			}
			for i := 0; i < len(roots); i++ {
				for j := i + 1; j < len(roots); j++ {
					ri, rj := roots[i], roots[j]
					if tb.Less(ri, rj) {
						g.addEdge(ri, rj)
					} else {
						g.addEdge(rj, ri)
					}
				}
			}
			roots = g.roots()
			if len(roots) != 1 {
				panic("rankedpairs: more than one root remains after tie-breaker insertion")
			}
		}

		round.Winner = roots[0]
		winners = append(winners, roots[0])
		delete(remaining, roots[0])
		rounds = append(rounds, round)

		log.Debugf("rankedpairs: round winner %d, %d remaining", round.Winner, len(remaining))
	}

	return Outcome{Kind: Success, Winners: winners, Rounds: rounds}
}

func buildPairs(active []ballot.CandidateID) []*pair {
	pairs := make([]*pair, 0, len(active)*(len(active)-1)/2)
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			pairs = append(pairs, &pair{a: active[i], b: active[j]})
		}
	}
	return pairs
}

// applyBallots walks every ballot once, updating every pair's comparison,
// and returns the number of ballots that touched no pair at all.
func applyBallots(buf *ballot.Buffer, pairs []*pair) int {
	empty := 0
	for i := 0; i < buf.Count(); i++ {
		touched := false
		for _, p := range pairs {
			c := ballot.CompareByBallot(buf, i, p.a, p.b)
			if c == 0 {
				continue
			}
			touched = true
			p.ballots++
			if c > 0 {
				p.diff++
			} else {
				p.diff--
			}
		}
		if !touched {
			empty++
		}
	}
	return empty
}

// resolvePairWinners assigns winner/loser to every pair with at least one
// comparing ballot, escalating ties to the tie-breaker.
func resolvePairWinners(pairs []*pair, tb tiebreak.Order) (StatusKind, [][2]ballot.CandidateID, []ballot.CandidateID) {
	for _, p := range pairs {
		if p.ballots == 0 {
			continue
		}
		switch {
		case p.diff > 0:
			p.winner, p.loser = p.a, p.b
		case p.diff < 0:
			p.winner, p.loser = p.b, p.a
		default:
			if tb == nil {
				return TieBreakerNeeded, [][2]ballot.CandidateID{{p.a, p.b}}, nil
			}
			if missing := tb.Missing([]ballot.CandidateID{p.a, p.b}); len(missing) > 0 {
				return IncompleteTieBreaker, nil, missing
			}
			if tb.Less(p.a, p.b) {
				p.winner, p.loser = p.a, p.b
			} else {
				p.winner, p.loser = p.b, p.a
			}
		}
	}
	return Success, nil, nil
}

// activePairs returns the pairs with both endpoints still in remaining and
// at least one comparing ballot.
func activePairs(pairs []*pair, remaining map[ballot.CandidateID]bool) []*pair {
	var out []*pair
	for _, p := range pairs {
		if p.ballots > 0 && remaining[p.a] && remaining[p.b] {
			out = append(out, p)
		}
	}
	return out
}
