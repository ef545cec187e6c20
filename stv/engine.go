// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stv implements the Single Transferable Vote engine (§4.7): the
// Hagenbach-Bischoff quota, the fractional Gregory surplus transfer, and
// elimination with n-th-preference-descent tie-breaking before falling
// back to the external tie-breaker, per §4.7/§9's algorithm description.
// The vote-value table reuses the ballot package's
// scan primitives directly rather than re-walking ballots by hand, the
// same way this module's other engines (yesno, thresholdmajority) build on
// top of those primitives instead of duplicating ballot traversal.
package stv

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
	// Success means Winners and Events are populated.
	Success StatusKind = iota + 1
	// TieBreakerNeeded means some step hit an ambiguity with no
	// tie-breaker supplied; Tied holds the ambiguous candidates.
	TieBreakerNeeded
	// IncompleteTieBreaker means a tie-breaker was supplied but didn't
	// cover every id the ambiguous step needed.
	IncompleteTieBreaker
)

// EventKind tags one entry of an Outcome's Events log.
type EventKind int

const (
	// ElectWithQuota records candidates elected because their value
	// strictly exceeded the quota.
	ElectWithQuota EventKind = iota + 1
	// Eliminate records the candidate dropped for having the lowest
	// vote value, with its surviving votes transferred onward.
	Eliminate
	// ElectRest records the terminal step: every still-remaining
	// candidate elected because the seats left are enough for all of them.
	ElectRest
)

// Event is one step of an STV run. Values is a deep-copied snapshot of
// every candidate's vote value at the moment of the event (elected
// candidates included, via their frozen final value).
type Event struct {
	Kind      EventKind
	Elected   []ballot.CandidateID
	Candidate ballot.CandidateID
	Values    map[ballot.CandidateID]float64
	Quota     float64
}

// Outcome is the tagged result of Run.
type Outcome struct {
	Kind    StatusKind
	Winners []ballot.CandidateID
	Events  []Event
	Tied    []ballot.CandidateID
	Missing []ballot.CandidateID
}

// Run tabulates an STV election over candidates using the Hagenbach-
// Bischoff quota ballot_count/(maxWinners+1), electing candidates whose
// value strictly exceeds the quota, transferring surpluses by the Gregory
// method, and eliminating the lowest-value candidate (tie-broken by n-th
// preference descent, then tb) when no one crosses the quota.
func Run(buf *ballot.Buffer, candidates []ballot.CandidateID, maxWinners int, tb tiebreak.Order) Outcome {
	original := sortedCopy(candidates)

	remaining := make(map[ballot.CandidateID]bool, len(original))
	for _, c := range original {
		remaining[c] = true
	}
	eliminated := make(map[ballot.CandidateID]bool, len(original))

	ballotCount := buf.Count()
	holder := make([]ballot.CandidateID, ballotCount)
	weight := make([]float64, ballotCount)
	_, assign := ballot.ScanNthPreferences(buf, remaining, 0)
	for i, c := range assign {
		if c != 0 {
			holder[i] = c
			weight[i] = 1
		}
	}

	frozen := make(map[ballot.CandidateID]float64)
	snapshot := func() map[ballot.CandidateID]float64 {
		snap := currentValues(remaining, holder, weight)
		for c, v := range frozen {
			snap[c] = v
		}
		return snap
	}

	if maxWinners >= len(original) {
		return Outcome{
			Kind:    Success,
			Winners: append([]ballot.CandidateID{}, original...),
			Events:  []Event{{Kind: ElectRest, Elected: original, Values: snapshot()}},
		}
	}

	quota := float64(ballotCount) / float64(maxWinners+1)

	var elected []ballot.CandidateID
	var events []Event

	for {
		if len(elected)+len(remaining) <= maxWinners {
			rest := sortedKeys(remaining)
			events = append(events, Event{Kind: ElectRest, Elected: rest, Values: snapshot()})
			winners := append(append([]ballot.CandidateID{}, elected...), rest...)
			return Outcome{Kind: Success, Winners: winners, Events: events}
		}
		if len(elected) >= maxWinners {
			return Outcome{Kind: Success, Winners: elected, Events: events}
		}

		newElected, values, kind, tied, missing := electByQuota(remaining, holder, weight, quota, maxWinners-len(elected), tb)
		if kind != Success {
			return Outcome{Kind: kind, Winners: nil, Events: events, Tied: tied, Missing: missing}
		}

		if len(newElected) > 0 {
			snap := make(map[ballot.CandidateID]float64, len(values)+len(frozen))
			for c, v := range frozen {
				snap[c] = v
			}
			for c, v := range values {
				snap[c] = v
			}
			events = append(events, Event{Kind: ElectWithQuota, Elected: newElected, Values: snap, Quota: quota})

			for _, c := range newElected {
				delete(remaining, c)
			}
			elected = append(elected, newElected...)

			log.Debugf("stv: elected %v by quota %.4f", newElected, quota)

			for _, c := range newElected {
				transferSurplus(buf, c, quota, values[c], remaining, holder, weight, frozen)
			}
			continue
		}

		dropped, preValues, kind2, tied2, missing2 := eliminateOne(buf, original, eliminated, remaining, holder, weight, tb)
		if kind2 != Success {
			return Outcome{Kind: kind2, Events: events, Tied: tied2, Missing: missing2}
		}

		snap := make(map[ballot.CandidateID]float64, len(preValues)+len(frozen))
		for c, v := range frozen {
			snap[c] = v
		}
		for c, v := range preValues {
			snap[c] = v
		}
		events = append(events, Event{Kind: Eliminate, Candidate: dropped, Values: snap})

		log.Debugf("stv: eliminated %d with value %.4f", dropped, preValues[dropped])

		delete(remaining, dropped)
		eliminated[dropped] = true
		transferElimination(buf, dropped, remaining, holder, weight)
	}
}

// currentValues sums each remaining candidate's currently held ballot
// weight. Candidates not present in remaining are omitted.
func currentValues(remaining map[ballot.CandidateID]bool, holder []ballot.CandidateID, weight []float64) map[ballot.CandidateID]float64 {
	out := make(map[ballot.CandidateID]float64, len(remaining))
	for c := range remaining {
		out[c] = 0
	}
	for i, h := range holder {
		if h != 0 && remaining[h] {
			out[h] += weight[i]
		}
	}
	return out
}

// electByQuota gathers remaining candidates whose value strictly exceeds
// quota, sorted descending by value, truncated to room (= max_winners -
// |elected|) with the Threshold-Majority-style boundary tie-break when the
// truncation point falls on a value tie.
func electByQuota(
	remaining map[ballot.CandidateID]bool,
	holder []ballot.CandidateID,
	weight []float64,
	quota float64,
	room int,
	tb tiebreak.Order,
) ([]ballot.CandidateID, map[ballot.CandidateID]float64, StatusKind, []ballot.CandidateID, []ballot.CandidateID) {
	values := currentValues(remaining, holder, weight)

	var crossing []ballot.CandidateID
	for c, v := range values {
		if v > quota {
			crossing = append(crossing, c)
		}
	}
	sort.Slice(crossing, func(i, j int) bool {
		if values[crossing[i]] != values[crossing[j]] {
			return values[crossing[i]] > values[crossing[j]]
		}
		return crossing[i] < crossing[j]
	})

	if len(crossing) <= room {
		return crossing, values, Success, nil, nil
	}

	keepVal := values[crossing[room-1]]
	dropVal := values[crossing[room]]
	if keepVal != dropVal {
		return crossing[:room], values, Success, nil, nil
	}

	lo, hi := room-1, room
	for lo > 0 && values[crossing[lo-1]] == keepVal {
		lo--
	}
	for hi < len(crossing) && values[crossing[hi]] == keepVal {
		hi++
	}
	tied := crossing[lo:hi]

	if tb == nil {
		return nil, values, TieBreakerNeeded, tied, nil
	}
	if missing := tb.Missing(tied); len(missing) > 0 {
		return nil, values, IncompleteTieBreaker, nil, missing
	}

	tiedSorted := tb.SortAscending(tied)
	out := make([]ballot.CandidateID, 0, room)
	out = append(out, crossing[:lo]...)
	out = append(out, tiedSorted...)
	out = append(out, crossing[hi:]...)
	return out[:room], values, Success, nil, nil
}

// transferSurplus redistributes candidate c's surplus above quota to each
// ballot's next remaining preference at fraction f = surplus/total,
// leaving (1-f) permanently on c. Ballots with no next remaining
// preference retain their fraction on c (frozen, never moved again).
func transferSurplus(
	buf *ballot.Buffer,
	c ballot.CandidateID,
	quota float64,
	total float64,
	remaining map[ballot.CandidateID]bool,
	holder []ballot.CandidateID,
	weight []float64,
	frozen map[ballot.CandidateID]float64,
) {
	if total <= 0 {
		return
	}
	surplus := total - quota
	f := surplus / total

	_, next := ballot.ScanNextPreferences(buf, remaining, c)

	for i := range holder {
		if holder[i] != c {
			continue
		}
		w := weight[i]
		frozen[c] += (1 - f) * w

		if target := next[i]; target != 0 {
			holder[i] = target
			weight[i] = f * w
		} else {
			frozen[c] += f * w
			holder[i] = 0
			weight[i] = 0
		}
	}
}

// transferElimination moves all of the eliminated candidate's ballots to
// each ballot's next remaining preference at fraction 1.0; ballots with no
// such preference are exhausted.
func transferElimination(buf *ballot.Buffer, c ballot.CandidateID, remaining map[ballot.CandidateID]bool, holder []ballot.CandidateID, weight []float64) {
	_, next := ballot.ScanNextPreferences(buf, remaining, c)
	for i := range holder {
		if holder[i] != c {
			continue
		}
		if target := next[i]; target != 0 {
			holder[i] = target
		} else {
			holder[i] = 0
			weight[i] = 0
		}
	}
}

// eliminateOne finds the remaining candidate with the lowest vote value,
// descending into n-th preference counts among the still-present original
// candidates (not-yet-eliminated, which includes already-elected
// candidates) to break ties before escalating to the external tie-breaker.
// The candidate with the highest tie-breaker index (least preferred) is
// eliminated.
func eliminateOne(
	buf *ballot.Buffer,
	original []ballot.CandidateID,
	eliminated map[ballot.CandidateID]bool,
	remaining map[ballot.CandidateID]bool,
	holder []ballot.CandidateID,
	weight []float64,
	tb tiebreak.Order,
) (ballot.CandidateID, map[ballot.CandidateID]float64, StatusKind, []ballot.CandidateID, []ballot.CandidateID) {
	values := currentValues(remaining, holder, weight)

	var tied []ballot.CandidateID
	var minVal float64
	for _, c := range sortedKeys(remaining) {
		v := values[c]
		switch {
		case len(tied) == 0 || v < minVal:
			minVal = v
			tied = []ballot.CandidateID{c}
		case v == minVal:
			tied = append(tied, c)
		}
	}

	stillPresent := make(map[ballot.CandidateID]bool, len(original))
	for _, c := range original {
		if !eliminated[c] {
			stillPresent[c] = true
		}
	}

	for n := 0; len(tied) > 1; n++ {
		tally, _ := ballot.ScanNthPreferences(buf, stillPresent, n)
		minCount := -1
		for _, c := range tied {
			if cnt := tally[c]; minCount < 0 || cnt < minCount {
				minCount = cnt
			}
		}
		var next []ballot.CandidateID
		for _, c := range tied {
			if tally[c] == minCount {
				next = append(next, c)
			}
		}
		if len(next) == len(tied) {
			break
		}
		tied = next
	}

	if len(tied) == 1 {
		return tied[0], values, Success, nil, nil
	}
	if tb == nil {
		return 0, values, TieBreakerNeeded, tied, nil
	}
	if missing := tb.Missing(tied); len(missing) > 0 {
		return 0, values, IncompleteTieBreaker, nil, missing
	}
	sorted := tb.SortAscending(tied)
	return sorted[len(sorted)-1], values, Success, nil, nil
}

func sortedCopy(ids []ballot.CandidateID) []ballot.CandidateID {
	out := append([]ballot.CandidateID{}, ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeys(m map[ballot.CandidateID]bool) []ballot.CandidateID {
	out := make([]ballot.CandidateID, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
