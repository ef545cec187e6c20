// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voting

import (
	"github.com/AksoEo/voting/ballot"
	"github.com/AksoEo/voting/gate"
	"github.com/AksoEo/voting/tiebreak"
)

// VoteType selects which of the five tabulation methods a Config drives.
type VoteType int

const (
	// YesNo is a simple two-option Yes/No vote.
	YesNo VoteType = iota + 1
	// YesNoBlank is a Yes/No vote that also tallies blank ballots.
	YesNoBlank
	// ThresholdMajority elects up to MaxChoices.NumChosen candidates by
	// raw mention count.
	ThresholdMajority
	// RankedPairs elects up to MaxChoices.NumChosen candidates via
	// Tideman pairwise comparison.
	RankedPairs
	// STV elects up to MaxChoices.NumChosen candidates via the
	// Hagenbach-Bischoff quota and Gregory transfer.
	STV
)

// Quorum gates a vote on the fraction of eligible voters who submitted a
// ballot. Required on every vote type.
type Quorum struct {
	Quorum    gate.Rational `json:"quorum"`
	Inclusive bool          `json:"inclusive"`
}

func (q Quorum) threshold() gate.Threshold {
	return gate.Threshold{Value: q.Quorum, Inclusive: q.Inclusive}
}

// BlankLimit gates a vote on the fraction of submitted ballots that are
// blank. Required on every non-Yes/No vote type.
type BlankLimit struct {
	Limit     gate.Rational `json:"limit"`
	Inclusive bool          `json:"inclusive"`
}

func (b BlankLimit) threshold() gate.Threshold {
	return gate.Threshold{Value: b.Limit, Inclusive: b.Inclusive}
}

// Majority configures the Yes/No and Yes/No/Blank engine's two thresholds
// and how they combine.
type Majority struct {
	Ballots         gate.Rational `json:"ballots"`
	BallotsInclusive bool         `json:"ballots_inclusive"`
	Voters          gate.Rational `json:"voters"`
	VotersInclusive bool          `json:"voters_inclusive"`
	MustReachBoth   bool          `json:"must_reach_both"`
}

// MaxChoices bounds the number of winners for Threshold Majority, Ranked
// Pairs, and STV.
type MaxChoices struct {
	NumChosen int `json:"num_chosen"`
}

// MentionThreshold configures the mention filter used by Threshold
// Majority and Ranked Pairs' configurable (not the fixed internal Ranked
// Pairs) mention gate.
type MentionThreshold struct {
	Threshold gate.Rational `json:"threshold"`
	Inclusive bool          `json:"inclusive"`
}

func (m MentionThreshold) threshold() gate.Threshold {
	return gate.Threshold{Value: m.Threshold, Inclusive: m.Inclusive}
}

// Config is the tagged configuration record driving Dispatch. Exactly the
// sub-records relevant to Type need be populated; Dispatch panics (a
// programmer error, §7) if a required sub-record is missing.
type Config struct {
	Type VoteType `json:"type"`

	Quorum     Quorum            `json:"quorum"`
	BlankLimit *BlankLimit       `json:"blank_limit,omitempty"`
	Majority   *Majority         `json:"majority,omitempty"`
	MaxChoices *MaxChoices       `json:"max_choices,omitempty"`
	Mentions   *MentionThreshold `json:"mentions,omitempty"`

	// TieBreaker is consulted only when an engine signals an ambiguity
	// it cannot resolve on its own; nil means none was supplied.
	TieBreaker tiebreak.Order `json:"-"`
}

// Input bundles everything Dispatch needs besides the Config: the encoded
// ballots, the number of eligible voters, and the candidate list (ignored
// for Yes/No-family votes, which use the reserved ballot.NoID/ballot.YesID).
type Input struct {
	Ballots    *ballot.Buffer
	Eligible   int
	Candidates []ballot.CandidateID
}
