// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package voting tabulates multi-method electoral results for a
// membership organisation whose bylaws enumerate five voting methods:
// simple Yes/No, Yes/No/Blank, UEA-style Threshold Majority, Ranked
// Pairs, and Single Transferable Vote.
//
// Dispatch is the single entry point: given a Config, an encoded
// ballot.Buffer, the number of eligible voters, and a candidate list, it
// runs the quorum and blank-limit gates, routes to the configured engine,
// and returns a VoteResult. DispatchMapped does the same for callers
// whose candidates aren't already dense ballot.CandidateID values.
//
// The library is single-threaded and synchronous: a call to Dispatch owns
// its ballot buffer, its graphs and its vote-value tables outright, and
// releases them on return. It does no validation of ballot content beyond
// what the ballot package itself enforces, no persistence, and no
// networking.
package voting
