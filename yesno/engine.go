// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package yesno implements the Yes/No and Yes/No/Blank tabulation engine
// (§4.4): a ballot-majority test, a voter-majority test, and a
// configurable AND/OR combination of the two, evaluated against the
// gate package's exact rational thresholds.
package yesno

import (
	"github.com/AksoEo/voting/ballot"
	"github.com/AksoEo/voting/gate"
	"github.com/decred/slog"
)

var log = slog.Disabled

// UseLogger sets the logger used by this package.
func UseLogger(l slog.Logger) { log = l }

// Config describes the two thresholds a Yes/No(/Blank) vote is measured
// against and how they combine.
type Config struct {
	Ballots       gate.Threshold
	Voters        gate.Threshold
	MustReachBoth bool
}

// Tally holds the raw vote counts.
type Tally struct {
	Yes   int
	No    int
	Blank int
}

// Result is the outcome of a Yes/No(/Blank) tabulation.
type Result struct {
	Tally   Tally
	Passed  bool
}

// Run tallies the two reserved candidate ids (ballot.NoID, ballot.YesID)
// against cfg and reports whether the vote passed. The per-ballot choice is
// taken as its first active preference (ballot.ScanNthPreferences with
// n=0): ids other than the two reserved ones are skipped, and a ballot
// that lists neither reserved id is counted as blank.
func Run(buf *ballot.Buffer, eligible int, cfg Config) Result {
	active := map[ballot.CandidateID]bool{ballot.YesID: true, ballot.NoID: true}
	counts, _ := ballot.ScanNthPreferences(buf, active, 0)

	t := Tally{
		Yes: counts[ballot.YesID],
		No:  counts[ballot.NoID],
	}
	t.Blank = buf.Count() - t.Yes - t.No

	submitted := t.Yes + t.No + t.Blank
	ballotRatio := gate.Ratio(t.Yes, submitted)
	voterRatio := gate.Ratio(t.Yes, eligible)

	passBallots := cfg.Ballots.Passes(ballotRatio)
	passVoters := cfg.Voters.Passes(voterRatio)

	var passed bool
	if cfg.MustReachBoth {
		passed = passBallots && passVoters
	} else {
		passed = passBallots || passVoters
	}

	log.Debugf("yesno: yes=%d no=%d blank=%d passBallots=%v passVoters=%v passed=%v",
		t.Yes, t.No, t.Blank, passBallots, passVoters, passed)

	return Result{Tally: t, Passed: passed}
}
