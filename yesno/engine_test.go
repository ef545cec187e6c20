// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package yesno

import (
	"testing"

	"github.com/AksoEo/voting/ballot"
	"github.com/AksoEo/voting/gate"
)

func encode(t *testing.T, ballots [][]ballot.Rank) *ballot.Buffer {
	t.Helper()
	e := ballot.New(len(ballots))
	for _, ranks := range ballots {
		if err := e.AddBallot(ranks); err != nil {
			t.Fatalf("AddBallot: %v", err)
		}
	}
	buf, err := e.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return buf
}

func TestYesNoMustReachBoth(t *testing.T) {
	// 3 yes, 1 no, 1 blank; eligible = 10.
	buf := encode(t, [][]ballot.Rank{
		{{ballot.YesID}},
		{{ballot.YesID}},
		{{ballot.YesID}},
		{{ballot.NoID}},
		{},
	})
	cfg := Config{
		Ballots:       gate.Threshold{Value: gate.FromFraction(1, 2), Inclusive: false},
		Voters:        gate.Threshold{Value: gate.FromFraction(1, 2), Inclusive: false},
		MustReachBoth: true,
	}
	res := Run(buf, 10, cfg)
	if res.Tally != (Tally{Yes: 3, No: 1, Blank: 1}) {
		t.Errorf("tally = %+v", res.Tally)
	}
	// 3/5 > 1/2 passes ballot majority, but 3/10 does not pass voter
	// majority, and MustReachBoth requires both.
	if res.Passed {
		t.Error("expected vote to fail: voter majority (3/10) does not clear 1/2")
	}
}

func TestYesNoEitherPasses(t *testing.T) {
	buf := encode(t, [][]ballot.Rank{
		{{ballot.YesID}},
		{{ballot.YesID}},
		{{ballot.YesID}},
		{{ballot.NoID}},
		{},
	})
	cfg := Config{
		Ballots:       gate.Threshold{Value: gate.FromFraction(1, 2), Inclusive: false},
		Voters:        gate.Threshold{Value: gate.FromFraction(1, 2), Inclusive: false},
		MustReachBoth: false,
	}
	res := Run(buf, 10, cfg)
	if !res.Passed {
		t.Error("expected vote to pass: ballot majority (3/5) clears 1/2 and OR-combination only needs one")
	}
}
