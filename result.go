// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voting

import (
	"github.com/AksoEo/voting/ballot"
	"github.com/AksoEo/voting/rankedpairs"
	"github.com/AksoEo/voting/stv"
	"github.com/AksoEo/voting/thresholdmajority"
	"github.com/AksoEo/voting/yesno"
)

// ResultKind tags a VoteResult, mirroring §6's result union
// {Success, TieBreakerNeeded, IncompleteTieBreaker, MajorityEmpty,
// NoQuorum, TooManyBlanks}.
type ResultKind int

const (
	ResultSuccess ResultKind = iota + 1
	ResultTieBreakerNeeded
	ResultIncompleteTieBreaker
	ResultMajorityEmpty
	ResultNoQuorum
	ResultTooManyBlanks
)

// resultKindNames is kept dense and in sync with the const block above by
// TestResultKindNamesAreDense.
var resultKindNames = map[ResultKind]string{
	ResultSuccess:              "success",
	ResultTieBreakerNeeded:     "tie breaker needed",
	ResultIncompleteTieBreaker: "incomplete tie breaker",
	ResultMajorityEmpty:        "majority empty",
	ResultNoQuorum:             "no quorum",
	ResultTooManyBlanks:        "too many blanks",
}

// String returns resultKindNames' description of k, or "unknown" if k
// isn't one of the declared constants.
func (k ResultKind) String() string {
	if s, ok := resultKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// VoteResult is the unified tagged result of a Dispatch call. Every
// concrete type below implements it; callers switch on Kind() to reach
// the payload that variant actually carries.
type VoteResult interface {
	Kind() ResultKind
}

// BallotCounts is attached to every result that got far enough to count
// ballots.
type BallotCounts struct {
	Submitted int
	Eligible  int
}

// NoQuorumResult means the ballot count did not clear Config.Quorum.
type NoQuorumResult struct {
	Counts BallotCounts
}

func (NoQuorumResult) Kind() ResultKind { return ResultNoQuorum }

// TooManyBlanksResult means the blank ratio exceeded Config.BlankLimit.
type TooManyBlanksResult struct {
	Counts BallotCounts
	Blanks int
}

func (TooManyBlanksResult) Kind() ResultKind { return ResultTooManyBlanks }

// MajorityEmptyResult means fewer than the required number of candidates
// (one, or two for Ranked Pairs) passed the mention filter (for STV: were
// mentioned at all), or, for Ranked Pairs, that at least half the ballots
// compared none of the surviving pairs.
type MajorityEmptyResult struct {
	Counts   BallotCounts
	Mentions map[ballot.CandidateID]uint32
}

func (MajorityEmptyResult) Kind() ResultKind { return ResultMajorityEmpty }

// TieBreakerNeededResult means an engine hit an ambiguity with no
// tie-breaker supplied. Exactly one of Tied/TiedPairs/TiedRoots is
// populated, depending on which engine and which step produced it.
type TieBreakerNeededResult struct {
	Counts    BallotCounts
	Tied      []ballot.CandidateID
	TiedPairs [][2]ballot.CandidateID
	TiedRoots []ballot.CandidateID
}

func (TieBreakerNeededResult) Kind() ResultKind { return ResultTieBreakerNeeded }

// IncompleteTieBreakerResult means a tie-breaker was supplied but did not
// cover every id an ambiguous step needed.
type IncompleteTieBreakerResult struct {
	Counts  BallotCounts
	Missing []ballot.CandidateID
}

func (IncompleteTieBreakerResult) Kind() ResultKind { return ResultIncompleteTieBreaker }

// SuccessResult carries the winning outcome. Exactly one of the
// type-specific fields is populated, matching Config.Type.
type SuccessResult struct {
	Counts BallotCounts

	// Populated for YesNo/YesNoBlank.
	YesNo *yesno.Result

	// Populated for ThresholdMajority.
	ThresholdMajority *ThresholdMajorityOutcome

	// Populated for RankedPairs.
	RankedPairs *rankedpairs.Outcome

	// Populated for STV.
	STV *stv.Outcome
}

func (SuccessResult) Kind() ResultKind { return ResultSuccess }

// ThresholdMajorityOutcome wraps thresholdmajority.Outcome with the
// mention filter's included/excluded split, which the dispatcher computes
// before calling the engine.
type ThresholdMajorityOutcome struct {
	IncludedByMentions []ballot.CandidateID
	ExcludedByMentions []ballot.CandidateID
	Outcome            thresholdmajority.Outcome
}
