// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voting

import "github.com/AksoEo/voting/ballot"

// RunoffEntry is one independently-tabulated vote competing in a Runoff.
type RunoffEntry struct {
	Config Config
	Input  Input
}

// RunoffResult is the outcome of Runoff: every entry's own Dispatch
// result, plus the index of the overall winner (-1 if none passed).
type RunoffResult struct {
	Winner  int
	Results []VoteResult
}

// Runoff runs Dispatch independently over every entry, then — among
// entries whose result is Success and passed — picks the one with the
// largest net (yes - no) margin for Yes/No-family configs, or the most
// mentions among its own winners for the others. It reuses the five
// engines verbatim; it adds no tabulation algorithm of its own, only a
// selection rule over their outputs.
func Runoff(entries []RunoffEntry) RunoffResult {
	results := make([]VoteResult, len(entries))
	best := -1
	var bestScore float64

	for i, e := range entries {
		res := Dispatch(e.Config, e.Input)
		results[i] = res

		sr, ok := res.(SuccessResult)
		if !ok {
			continue
		}
		passed, score := runoffScore(e, sr)
		if !passed {
			continue
		}
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}

	log.Debugf("voting: runoff over %d entries, winner index %d", len(entries), best)

	return RunoffResult{Winner: best, Results: results}
}

func runoffScore(e RunoffEntry, sr SuccessResult) (passed bool, score float64) {
	switch {
	case sr.YesNo != nil:
		return sr.YesNo.Passed, float64(sr.YesNo.Tally.Yes - sr.YesNo.Tally.No)
	case sr.ThresholdMajority != nil:
		return true, mentionScore(e.Input.Ballots, sr.ThresholdMajority.Outcome.Winners)
	case sr.RankedPairs != nil:
		return true, mentionScore(e.Input.Ballots, sr.RankedPairs.Winners)
	case sr.STV != nil:
		return true, mentionScore(e.Input.Ballots, sr.STV.Winners)
	default:
		return false, 0
	}
}

// mentionScore sums the mention count of a set of winners, used as the
// runoff comparison metric for every non-Yes/No vote type.
func mentionScore(buf *ballot.Buffer, winners []ballot.CandidateID) float64 {
	mentions := ballot.CandidateMentions(buf)
	var total float64
	for _, w := range winners {
		total += float64(mentions[w])
	}
	return total
}
