// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voting

import (
	"reflect"
	"testing"

	"github.com/AksoEo/voting/gate"
)

func TestDispatchMappedYesNo(t *testing.T) {
	cfg := Config{
		Type:     YesNo,
		Quorum:   Quorum{Quorum: gate.FromFraction(0, 1), Inclusive: true},
		Majority: &Majority{Ballots: gate.FromFraction(1, 2), Voters: gate.FromFraction(0, 1), VotersInclusive: true},
	}
	ballots := []MappedBallot[string]{
		{{"yes"}}, {{"yes"}}, {{"yes"}}, {{"no"}},
	}
	res := DispatchMapped(cfg, ballots, 4, []string{"no", "yes"})
	if res.Kind != ResultSuccess {
		t.Fatalf("Kind = %v, want ResultSuccess", res.Kind)
	}
	if res.YesNo == nil || !res.YesNo.Passed || res.YesNo.Yes != 3 || res.YesNo.No != 1 {
		t.Errorf("YesNo = %+v", res.YesNo)
	}
}

func TestDispatchMappedYesNoWrongCandidateCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a Yes/No mapped call with != 2 candidates")
		}
	}()
	cfg := Config{
		Type:     YesNo,
		Quorum:   Quorum{Quorum: gate.FromFraction(0, 1), Inclusive: true},
		Majority: &Majority{},
	}
	DispatchMapped(cfg, []MappedBallot[string]{{{"yes"}}}, 1, []string{"yes"})
}

func TestDispatchMappedThresholdMajority(t *testing.T) {
	limit := BlankLimit{Limit: gate.FromFraction(1, 1), Inclusive: true}
	cfg := Config{
		Type:       ThresholdMajority,
		Quorum:     Quorum{Quorum: gate.FromFraction(0, 1), Inclusive: true},
		BlankLimit: &limit,
		MaxChoices: &MaxChoices{NumChosen: 2},
		Mentions:   &MentionThreshold{Threshold: gate.FromFraction(1, 4), Inclusive: false},
	}
	ballots := []MappedBallot[string]{
		{{"alice"}, {"bob"}, {"carol"}},
		{{"bob"}, {"carol"}, {"dave"}},
		{{"bob"}, {"carol"}, {"erin"}},
		{{"alice"}, {"carol"}, {"dave"}},
	}
	candidates := []string{"alice", "bob", "carol", "dave", "erin"}
	res := DispatchMapped(cfg, ballots, 10, candidates)
	if res.Kind != ResultSuccess {
		t.Fatalf("Kind = %v, want ResultSuccess", res.Kind)
	}
	want := map[string]bool{"bob": true, "carol": true}
	got := map[string]bool{}
	for _, w := range res.ThresholdMajority {
		got[w] = true
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ThresholdMajority winners = %v, want %v", res.ThresholdMajority, want)
	}
}
