// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voting

import (
	"testing"

	"github.com/AksoEo/voting/ballot"
	"github.com/AksoEo/voting/gate"
)

func yesNoConfig() Config {
	return Config{
		Type:   YesNo,
		Quorum: Quorum{Quorum: gate.FromFraction(0, 1), Inclusive: true},
		Majority: &Majority{
			Ballots:         gate.FromFraction(1, 2),
			Voters:          gate.FromFraction(0, 1),
			VotersInclusive: true,
			MustReachBoth:   true,
		},
	}
}

func TestRunoffPicksLargestNetMargin(t *testing.T) {
	weak := encode(t, [][]ballot.Rank{{{ballot.YesID}}, {{ballot.YesID}}, {{ballot.NoID}}})
	strong := encode(t, [][]ballot.Rank{{{ballot.YesID}}, {{ballot.YesID}}, {{ballot.YesID}}, {{ballot.NoID}}})

	result := Runoff([]RunoffEntry{
		{Config: yesNoConfig(), Input: Input{Ballots: weak, Eligible: 3}},
		{Config: yesNoConfig(), Input: Input{Ballots: strong, Eligible: 4}},
	})

	if result.Winner != 1 {
		t.Fatalf("Winner = %d, want 1 (the entry with the larger net margin)", result.Winner)
	}
	if len(result.Results) != 2 {
		t.Fatalf("Results has %d entries, want 2", len(result.Results))
	}
}

func TestRunoffSkipsFailedEntries(t *testing.T) {
	failing := encode(t, [][]ballot.Rank{{{ballot.NoID}}, {{ballot.NoID}}, {{ballot.YesID}}})
	passing := encode(t, [][]ballot.Rank{{{ballot.YesID}}, {{ballot.YesID}}, {{ballot.NoID}}})

	result := Runoff([]RunoffEntry{
		{Config: yesNoConfig(), Input: Input{Ballots: failing, Eligible: 3}},
		{Config: yesNoConfig(), Input: Input{Ballots: passing, Eligible: 3}},
	})

	if result.Winner != 1 {
		t.Fatalf("Winner = %d, want 1 (the only passing entry)", result.Winner)
	}
}

func TestRunoffNoneQualify(t *testing.T) {
	buf := encode(t, [][]ballot.Rank{{{ballot.NoID}}, {{ballot.NoID}}})
	result := Runoff([]RunoffEntry{
		{Config: yesNoConfig(), Input: Input{Ballots: buf, Eligible: 2}},
	})
	if result.Winner != -1 {
		t.Fatalf("Winner = %d, want -1 when nothing passes", result.Winner)
	}
}
