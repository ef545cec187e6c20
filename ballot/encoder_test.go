// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func encode(t *testing.T, ballots [][]Rank) *Buffer {
	t.Helper()
	e := New(len(ballots))
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

func TestRoundTripMentions(t *testing.T) {
	ballots := [][]Rank{
		{{1, 2}, {3}},
		{{2}, {1, 3}},
		{},
		{{3}},
	}
	buf := encode(t, ballots)

	want := map[CandidateID]uint32{1: 2, 2: 2, 3: 3}
	got := CandidateMentions(buf)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mentions mismatch (-want +got):\n%s", diff)
	}
}

func TestBlankDeterminism(t *testing.T) {
	ballots := [][]Rank{
		{{1}},
		{},
		{{2}, {3}},
		{},
		{},
	}
	buf := encode(t, ballots)
	wantBlanks := 3
	if got := CountBlanks(buf); got != wantBlanks {
		t.Errorf("CountBlanks() = %d, want %d", got, wantBlanks)
	}
	for i, ballot := range ballots {
		if got := buf.IsBlank(i); got != (len(ballot) == 0) {
			t.Errorf("IsBlank(%d) = %v, want %v", i, got, len(ballot) == 0)
		}
	}
}

func TestExceedsCapacityIsFatal(t *testing.T) {
	e := New(1)
	if err := e.AddBallot([]Rank{{1}}); err != nil {
		t.Fatalf("AddBallot: %v", err)
	}
	if err := e.AddBallot([]Rank{{2}}); err != ErrExceedsCapacity {
		t.Errorf("AddBallot() = %v, want ErrExceedsCapacity", err)
	}
}

func TestZeroCandidateIDIsFatal(t *testing.T) {
	e := New(1)
	if err := e.AddBallot([]Rank{{0}}); err != ErrZeroCandidateID {
		t.Errorf("AddBallot() = %v, want ErrZeroCandidateID", err)
	}
}

func TestFinishTwiceIsFatal(t *testing.T) {
	e := New(0)
	if _, err := e.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := e.Finish(); err != ErrAlreadyFinished {
		t.Errorf("Finish() = %v, want ErrAlreadyFinished", err)
	}
}

func TestTieBreakerStabilityOfEncoding(t *testing.T) {
	ballots := [][]Rank{
		{{5, 1}, {2}, {3, 4}},
		{{2}, {1}},
	}
	a := encode(t, ballots)
	b := encode(t, ballots)
	if diff := cmp.Diff(a.Bytes(), b.Bytes()); diff != "" {
		t.Errorf("re-encoding the same ballots produced different bytes (-a +b):\n%s", diff)
	}
}
