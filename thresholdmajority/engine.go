// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package thresholdmajority implements the UEA-style Threshold Majority
// engine (§4.5): sort candidates by mention count, take the top
// max_winners, and escalate to a tie-breaker when the cutoff falls on a
// tie.
package thresholdmajority

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
	// Success means Winners and Mentions are populated.
	Success StatusKind = iota + 1
	// TieBreakerNeeded means the boundary is ambiguous and no
	// tie-breaker was supplied; Tied holds the ambiguous band.
	TieBreakerNeeded
	// IncompleteTieBreaker means a tie-breaker was supplied but didn't
	// cover every candidate in the ambiguous band; Missing holds the
	// uncovered ids.
	IncompleteTieBreaker
)

// Outcome is the tagged result of Run.
type Outcome struct {
	Kind     StatusKind
	Winners  []ballot.CandidateID
	Mentions map[ballot.CandidateID]uint32
	Tied     []ballot.CandidateID
	Missing  []ballot.CandidateID
}

// Run sorts candidates descending by mention count and returns the top
// maxWinners, escalating to a tie-breaker if the cutoff between the last
// kept candidate and the first dropped one is ambiguous.
func Run(buf *ballot.Buffer, candidates []ballot.CandidateID, maxWinners int, tb tiebreak.Order) Outcome {
	mentions := ballot.CandidateMentions(buf)

	sorted := make([]ballot.CandidateID, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := mentions[sorted[i]], mentions[sorted[j]]
		if ci != cj {
			return ci > cj
		}
		return sorted[i] < sorted[j]
	})

	if maxWinners >= len(sorted) {
		log.Debugf("thresholdmajority: maxWinners %d >= candidate count %d, electing all", maxWinners, len(sorted))
		return Outcome{Kind: Success, Winners: sorted, Mentions: mentions}
	}

	keepCount := mentions[sorted[maxWinners-1]]
	dropCount := mentions[sorted[maxWinners]]

	if keepCount != dropCount {
		return Outcome{Kind: Success, Winners: sorted[:maxWinners], Mentions: mentions}
	}

	lo, hi := maxWinners-1, maxWinners
	for lo > 0 && mentions[sorted[lo-1]] == keepCount {
		lo--
	}
	for hi < len(sorted) && mentions[sorted[hi]] == keepCount {
		hi++
	}
	tied := sorted[lo:hi]

	log.Debugf("thresholdmajority: boundary tie at count %d among %v", keepCount, tied)

	if tb == nil {
		return Outcome{Kind: TieBreakerNeeded, Mentions: mentions, Tied: tied}
	}
	if missing := tb.Missing(tied); len(missing) > 0 {
		return Outcome{Kind: IncompleteTieBreaker, Mentions: mentions, Missing: missing}
	}

	tiedSorted := tb.SortAscending(tied)
	winners := make([]ballot.CandidateID, 0, maxWinners)
	winners = append(winners, sorted[:lo]...)
	winners = append(winners, tiedSorted...)
	winners = append(winners, sorted[hi:]...)
	winners = winners[:maxWinners]

	return Outcome{Kind: Success, Winners: winners, Mentions: mentions}
}
