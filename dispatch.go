// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package voting is the top-level dispatcher for the five tabulation
// engines (§4.8): it runs the quorum and blank-limit gates, routes to the
// selected engine, and translates the engine's tagged outcome into the
// unified VoteResult.
package voting

import (
	"github.com/AksoEo/voting/ballot"
	"github.com/AksoEo/voting/gate"
	"github.com/AksoEo/voting/rankedpairs"
	"github.com/AksoEo/voting/stv"
	"github.com/AksoEo/voting/thresholdmajority"
	"github.com/AksoEo/voting/yesno"
	"github.com/pkg/errors"
)

// Dispatch runs cfg's vote type over in, returning the unified VoteResult.
// Dispatch panics on programmer errors (§7): a missing required
// sub-record for cfg.Type.
func Dispatch(cfg Config, in Input) VoteResult {
	submitted := in.Ballots.Count()
	counts := BallotCounts{Submitted: submitted, Eligible: in.Eligible}

	if !gate.PassesQuorum(gate.BallotCounts{Submitted: submitted, Eligible: in.Eligible}, cfg.Quorum.threshold()) {
		log.Debugf("voting: quorum not met: %d/%d", submitted, in.Eligible)
		return NoQuorumResult{Counts: counts}
	}

	isYesNo := cfg.Type == YesNo || cfg.Type == YesNoBlank

	blanks := ballot.CountBlanks(in.Ballots)
	if !isYesNo {
		requireConfig(cfg.BlankLimit != nil, "voting: Config.BlankLimit is required for vote type %d", cfg.Type)
		gbc := gate.BallotCounts{Submitted: submitted, Blank: blanks, Eligible: in.Eligible}
		if !gate.PassesBlankLimit(gbc, cfg.BlankLimit.threshold()) {
			log.Debugf("voting: blank limit exceeded: %d/%d", blanks, submitted)
			return TooManyBlanksResult{Counts: counts, Blanks: blanks}
		}
	}

	switch cfg.Type {
	case YesNo, YesNoBlank:
		return dispatchYesNo(cfg, in, counts)
	case ThresholdMajority:
		return dispatchThresholdMajority(cfg, in, counts)
	case RankedPairs:
		return dispatchRankedPairs(cfg, in, counts)
	case STV:
		return dispatchSTV(cfg, in, counts)
	default:
		panic(errors.Errorf("voting: unknown Config.Type %d", cfg.Type))
	}
}

// BatchItem is one (Config, Input) pair for DispatchBatch.
type BatchItem struct {
	Config Config
	Input  Input
}

// DispatchBatch runs Dispatch over every item, in order, with no shared
// state between tabulations.
func DispatchBatch(items []BatchItem) []VoteResult {
	out := make([]VoteResult, len(items))
	for i, it := range items {
		out[i] = Dispatch(it.Config, it.Input)
	}
	return out
}

func dispatchYesNo(cfg Config, in Input, counts BallotCounts) VoteResult {
	requireConfig(cfg.Majority != nil, "voting: Config.Majority is required for Yes/No vote types")
	m := cfg.Majority
	res := yesno.Run(in.Ballots, in.Eligible, yesno.Config{
		Ballots:       gate.Threshold{Value: m.Ballots, Inclusive: m.BallotsInclusive},
		Voters:        gate.Threshold{Value: m.Voters, Inclusive: m.VotersInclusive},
		MustReachBoth: m.MustReachBoth,
	})
	return SuccessResult{Counts: counts, YesNo: &res}
}

func dispatchThresholdMajority(cfg Config, in Input, counts BallotCounts) VoteResult {
	requireConfig(cfg.MaxChoices != nil, "voting: Config.MaxChoices is required for Threshold Majority")
	requireConfig(cfg.Mentions != nil, "voting: Config.Mentions is required for Threshold Majority")

	included, excluded := filterByMentions(in.Ballots, in.Candidates, cfg.Mentions.threshold())
	if len(included) == 0 {
		return MajorityEmptyResult{Counts: counts, Mentions: ballot.CandidateMentions(in.Ballots)}
	}

	out := thresholdmajority.Run(in.Ballots, included, cfg.MaxChoices.NumChosen, cfg.TieBreaker)
	return translateThresholdMajority(counts, included, excluded, out)
}

func translateThresholdMajority(counts BallotCounts, included, excluded []ballot.CandidateID, out thresholdmajority.Outcome) VoteResult {
	switch out.Kind {
	case thresholdmajority.TieBreakerNeeded:
		return TieBreakerNeededResult{Counts: counts, Tied: out.Tied}
	case thresholdmajority.IncompleteTieBreaker:
		return IncompleteTieBreakerResult{Counts: counts, Missing: out.Missing}
	default:
		return SuccessResult{Counts: counts, ThresholdMajority: &ThresholdMajorityOutcome{
			IncludedByMentions: included,
			ExcludedByMentions: excluded,
			Outcome:            out,
		}}
	}
}

func dispatchRankedPairs(cfg Config, in Input, counts BallotCounts) VoteResult {
	requireConfig(cfg.MaxChoices != nil, "voting: Config.MaxChoices is required for Ranked Pairs")
	requireConfig(cfg.Mentions != nil, "voting: Config.Mentions is required for Ranked Pairs")

	included, _ := filterByMentions(in.Ballots, in.Candidates, cfg.Mentions.threshold())
	if len(included) < 2 {
		return MajorityEmptyResult{Counts: counts, Mentions: ballot.CandidateMentions(in.Ballots)}
	}

	out := rankedpairs.Run(in.Ballots, included, cfg.MaxChoices.NumChosen, cfg.TieBreaker)
	switch out.Kind {
	case rankedpairs.MajorityEmpty:
		return MajorityEmptyResult{Counts: counts, Mentions: ballot.CandidateMentions(in.Ballots)}
	case rankedpairs.TieBreakerNeeded:
		return TieBreakerNeededResult{Counts: counts, TiedPairs: out.TiedPairs, TiedRoots: out.TiedRoots}
	case rankedpairs.IncompleteTieBreaker:
		return IncompleteTieBreakerResult{Counts: counts, Missing: out.Missing}
	default:
		return SuccessResult{Counts: counts, RankedPairs: &out}
	}
}

func dispatchSTV(cfg Config, in Input, counts BallotCounts) VoteResult {
	requireConfig(cfg.MaxChoices != nil, "voting: Config.MaxChoices is required for STV")

	mentions := ballot.CandidateMentions(in.Ballots)
	if len(mentions) == 0 {
		return MajorityEmptyResult{Counts: counts, Mentions: mentions}
	}

	out := stv.Run(in.Ballots, in.Candidates, cfg.MaxChoices.NumChosen, cfg.TieBreaker)
	switch out.Kind {
	case stv.TieBreakerNeeded:
		return TieBreakerNeededResult{Counts: counts, Tied: out.Tied}
	case stv.IncompleteTieBreaker:
		return IncompleteTieBreakerResult{Counts: counts, Missing: out.Missing}
	default:
		return SuccessResult{Counts: counts, STV: &out}
	}
}

// filterByMentions splits candidates into those whose mention count
// clears threshold and those that don't, preserving input order.
func filterByMentions(buf *ballot.Buffer, candidates []ballot.CandidateID, threshold gate.Threshold) (included, excluded []ballot.CandidateID) {
	mentions := ballot.CandidateMentions(buf)
	f := gate.FilterByMentions(candidates, mentions, buf.Count(), threshold)
	return f.Included, f.Excluded
}
