// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rankedpairs

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/AksoEo/voting/ballot"
	"github.com/AksoEo/voting/tiebreak"
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

func repeat(ranks []ballot.Rank, n int) [][]ballot.Rank {
	out := make([][]ballot.Rank, n)
	for i := range out {
		out[i] = ranks
	}
	return out
}

// Scenario 3 from §8: Ranked Pairs normal case.
func TestNormalCase(t *testing.T) {
	var ballots [][]ballot.Rank
	ballots = append(ballots, repeat([]ballot.Rank{{1}, {2}, {3}}, 7)...)
	ballots = append(ballots, repeat([]ballot.Rank{{2}, {1}, {3}}, 5)...)
	ballots = append(ballots, repeat([]ballot.Rank{{3}, {1}, {2}}, 4)...)
	ballots = append(ballots, repeat([]ballot.Rank{{2}, {3}, {1}}, 2)...)
	buf := encode(t, ballots)

	out := Run(buf, []ballot.CandidateID{1, 2, 3}, 1, nil)
	if out.Kind != Success {
		t.Fatalf("Kind = %v, want Success", out.Kind)
	}
	if len(out.Winners) != 1 || out.Winners[0] != 1 {
		t.Fatalf("Winners = %v, want [1]", out.Winners)
	}
	if len(out.Rounds) != 1 {
		t.Fatalf("Rounds = %d, want 1", len(out.Rounds))
	}
	want := [][2]ballot.CandidateID{{2, 3}, {1, 3}, {1, 2}}
	if diffs := deep.Equal(out.Rounds[0].OrderedPairs, want); diffs != nil {
		t.Errorf("OrderedPairs mismatch: %v", diffs)
	}
}

// Scenario 4 from §8: Ranked Pairs disjoint roots.
func TestDisjointRoots(t *testing.T) {
	buf := encode(t, [][]ballot.Rank{
		{{1}, {2}},
		{{1}, {2}},
		{{3}, {4}},
		{{3}, {4}},
	})
	candidates := []ballot.CandidateID{1, 2, 3, 4}

	out := Run(buf, candidates, 1, nil)
	if out.Kind != TieBreakerNeeded {
		t.Fatalf("Kind = %v, want TieBreakerNeeded", out.Kind)
	}
	if len(out.TiedRoots) == 0 && len(out.TiedPairs) == 0 {
		t.Fatalf("expected either a tied pair or tied roots to be reported")
	}

	out2 := Run(buf, candidates, 1, tiebreak.Order{1, 3, 2, 4})
	if out2.Kind != Success {
		t.Fatalf("Kind = %v, want Success", out2.Kind)
	}
	if len(out2.Winners) != 1 || out2.Winners[0] != 1 {
		t.Fatalf("Winners = %v, want [1]", out2.Winners)
	}
}

// Scenario 5 from §8: Ranked Pairs majority empty.
func TestMajorityEmpty(t *testing.T) {
	buf := encode(t, [][]ballot.Rank{
		{},
		{},
		{},
		{{1}, {2}, {3}},
		{{1}, {2}, {3}},
	})
	out := Run(buf, []ballot.CandidateID{1, 2, 3}, 1, nil)
	if out.Kind != MajorityEmpty {
		t.Fatalf("Kind = %v, want MajorityEmpty", out.Kind)
	}
}

// Acyclicity: every lock graph produced during a run is a DAG, verified
// indirectly by confirming each round produces a unique, well-defined
// winner even on a larger randomish-looking input with cycles in the
// pairwise preferences (a Condorcet cycle among 1,2,3).
func TestAcyclicCondorcetCycle(t *testing.T) {
	var ballots [][]ballot.Rank
	ballots = append(ballots, repeat([]ballot.Rank{{1}, {2}, {3}}, 3)...)
	ballots = append(ballots, repeat([]ballot.Rank{{2}, {3}, {1}}, 3)...)
	ballots = append(ballots, repeat([]ballot.Rank{{3}, {1}, {2}}, 3)...)
	buf := encode(t, ballots)

	out := Run(buf, []ballot.CandidateID{1, 2, 3}, 3, tiebreak.Order{1, 2, 3})
	if out.Kind != Success {
		t.Fatalf("Kind = %v, want Success", out.Kind)
	}
	if len(out.Winners) != 3 {
		t.Fatalf("Winners = %v, want 3 candidates", out.Winners)
	}
	seen := map[ballot.CandidateID]bool{}
	for _, w := range out.Winners {
		if seen[w] {
			t.Fatalf("duplicate winner %d", w)
		}
		seen[w] = true
	}
}

// Mention filter: a candidate mentioned on fewer than half the ballots
// never appears among the winners, even with max_winners large enough to
// cover everyone.
func TestMentionFilterExcludesRareCandidate(t *testing.T) {
	buf := encode(t, [][]ballot.Rank{
		{{1}, {2}},
		{{1}, {2}},
		{{1}, {2}},
		{{3}},
	})
	out := Run(buf, []ballot.CandidateID{1, 2, 3}, 3, tiebreak.Order{1, 2, 3})
	if out.Kind != Success {
		t.Fatalf("Kind = %v, want Success", out.Kind)
	}
	for _, w := range out.Winners {
		if w == 3 {
			t.Errorf("candidate 3 (mentions 1/4) should have been excluded by the mention filter")
		}
	}
}
