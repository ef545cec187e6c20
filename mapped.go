// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voting

import (
	"github.com/AksoEo/voting/ballot"
	"github.com/pkg/errors"
)

// MappedBallot is one caller-supplied ballot: an ordered list of ranks,
// each rank an unordered set of caller candidate values.
type MappedBallot[T comparable] [][]T

// MappedResult is the Dispatch result variant with every candidate id
// remapped back to the caller's own values.
type MappedResult[T comparable] struct {
	Kind   ResultKind
	Counts BallotCounts

	Blanks    int
	Mentions  map[T]uint32
	Tied      []T
	TiedPairs [][2]T
	TiedRoots []T
	Missing   []T

	YesNo             *yesnoResultTally
	ThresholdMajority []T
	RankedPairs       []T
	STV               []T
}

// yesnoResultTally mirrors yesno.Result's tally fields, copied out so this
// file doesn't need to import yesno just to name its Tally/Result types
// in the mapped surface.
type yesnoResultTally struct {
	Yes, No, Blank int
	Passed         bool
}

// DispatchMapped maps arbitrary equality-comparable candidate values onto
// dense ballot.CandidateIDs — starting at 1 in first-seen order for
// general elections, or the fixed ballot.NoID/ballot.YesID pair for
// Yes/No types (in which case candidates must hold exactly two values, No
// then Yes) — encodes ballots, runs Dispatch, and remaps every id the
// result carries back to the caller's values.
func DispatchMapped[T comparable](cfg Config, ballots []MappedBallot[T], eligible int, candidates []T) MappedResult[T] {
	isYesNo := cfg.Type == YesNo || cfg.Type == YesNoBlank
	if isYesNo {
		requireConfig(len(candidates) == 2, "voting: DispatchMapped requires exactly 2 candidates for a Yes/No vote type, got %d", len(candidates))
	}

	idOf := make(map[T]ballot.CandidateID, len(candidates))
	toCaller := make(map[ballot.CandidateID]T, len(candidates))

	if isYesNo {
		idOf[candidates[0]] = ballot.NoID
		idOf[candidates[1]] = ballot.YesID
		toCaller[ballot.NoID] = candidates[0]
		toCaller[ballot.YesID] = candidates[1]
	} else {
		next := ballot.CandidateID(1)
		for _, c := range candidates {
			if _, ok := idOf[c]; ok {
				continue
			}
			idOf[c] = next
			toCaller[next] = c
			next++
		}
	}

	e := ballot.New(len(ballots))
	for _, mb := range ballots {
		ranks := make([]ballot.Rank, len(mb))
		for i, rank := range mb {
			r := make(ballot.Rank, 0, len(rank))
			for _, v := range rank {
				id, ok := idOf[v]
				requireConfig(ok, "voting: DispatchMapped: ballot references a candidate not present in candidates")
				r = append(r, id)
			}
			ranks[i] = r
		}
		if err := e.AddBallot(ranks); err != nil {
			panic(errors.Wrap(err, "voting: DispatchMapped"))
		}
	}
	buf, err := e.Finish()
	if err != nil {
		panic(errors.Wrap(err, "voting: DispatchMapped"))
	}

	mappedCandidates := make([]ballot.CandidateID, 0, len(candidates))
	seen := make(map[ballot.CandidateID]bool, len(candidates))
	for _, c := range candidates {
		id := idOf[c]
		if !seen[id] {
			seen[id] = true
			mappedCandidates = append(mappedCandidates, id)
		}
	}

	res := Dispatch(cfg, Input{Ballots: buf, Eligible: eligible, Candidates: mappedCandidates})
	return remapResult(res, toCaller)
}

func mapIDs[T comparable](ids []ballot.CandidateID, toCaller map[ballot.CandidateID]T) []T {
	if ids == nil {
		return nil
	}
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = toCaller[id]
	}
	return out
}

func mapPairs[T comparable](pairs [][2]ballot.CandidateID, toCaller map[ballot.CandidateID]T) [][2]T {
	if pairs == nil {
		return nil
	}
	out := make([][2]T, len(pairs))
	for i, p := range pairs {
		out[i] = [2]T{toCaller[p[0]], toCaller[p[1]]}
	}
	return out
}

func mapMentions[T comparable](mentions map[ballot.CandidateID]uint32, toCaller map[ballot.CandidateID]T) map[T]uint32 {
	if mentions == nil {
		return nil
	}
	out := make(map[T]uint32, len(mentions))
	for id, count := range mentions {
		if v, ok := toCaller[id]; ok {
			out[v] = count
		}
	}
	return out
}

func remapResult[T comparable](res VoteResult, toCaller map[ballot.CandidateID]T) MappedResult[T] {
	out := MappedResult[T]{Kind: res.Kind()}

	switch r := res.(type) {
	case NoQuorumResult:
		out.Counts = r.Counts
	case TooManyBlanksResult:
		out.Counts, out.Blanks = r.Counts, r.Blanks
	case MajorityEmptyResult:
		out.Counts = r.Counts
		out.Mentions = mapMentions(r.Mentions, toCaller)
	case TieBreakerNeededResult:
		out.Counts = r.Counts
		out.Tied = mapIDs(r.Tied, toCaller)
		out.TiedPairs = mapPairs(r.TiedPairs, toCaller)
		out.TiedRoots = mapIDs(r.TiedRoots, toCaller)
	case IncompleteTieBreakerResult:
		out.Counts = r.Counts
		out.Missing = mapIDs(r.Missing, toCaller)
	case SuccessResult:
		out.Counts = r.Counts
		switch {
		case r.YesNo != nil:
			tally := yesnoResultTally{Yes: r.YesNo.Tally.Yes, No: r.YesNo.Tally.No, Blank: r.YesNo.Tally.Blank, Passed: r.YesNo.Passed}
			out.YesNo = &tally
		case r.ThresholdMajority != nil:
			out.ThresholdMajority = mapIDs(r.ThresholdMajority.Outcome.Winners, toCaller)
		case r.RankedPairs != nil:
			out.RankedPairs = mapIDs(r.RankedPairs.Winners, toCaller)
		case r.STV != nil:
			out.STV = mapIDs(r.STV.Winners, toCaller)
		}
	}

	return out
}
