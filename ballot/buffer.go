// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ballot implements the compact binary ballot encoding shared by
// every tabulation engine in this module, plus the allocation-free scan
// primitives the engines use to read it.
//
// The wire layout (§3) is:
//
//	u32  ballot_count = N
//	u32[N]  ballot_offsets     // byte offset of each ballot's row stream
//	u32     mentions_offset    // byte offset immediately after the last ballot
//	u16[*]  ballot rows        // concatenated; rank separator = 0, candidate id != 0
//	u32     pad to 4 bytes
//	(u32 candidate_id, u32 mentions)[K]
//
// mentions_offset marks the end of the row stream, not the (possibly
// padded) start of the mentions table; readers align it up to a multiple of
// four to find the table. The buffer is a host-native, in-process
// representation — it is never portable across machines, and this package
// fixes little-endian as that host-native order so the module's behavior is
// deterministic regardless of the platform it runs on.
package ballot

import "encoding/binary"

// CandidateID identifies a candidate on a ballot. Zero is reserved as a
// rank separator and never appears as a real id. Ids 1 and 2 are reserved
// for the Yes/No family of vote types ("No" and "Yes" respectively); all
// other vote types are free to use 1 as their first real candidate id.
type CandidateID uint32

const (
	// NoID is the reserved candidate id for "No" in Yes/No voting.
	NoID CandidateID = 1
	// YesID is the reserved candidate id for "Yes" in Yes/No voting.
	YesID CandidateID = 2

	// MaxCandidateID is the largest id that can be written into the
	// u16 row stream.
	MaxCandidateID CandidateID = 0xFFFF

	headerCountSize = 4
	headerWordSize  = 4
	rowWordSize     = 2
	mentionsEntrySize = 8
)

// Rank is an unordered set of candidate ids that share one position on a
// ballot. A rank with more than one id expresses equal preference.
type Rank []CandidateID

// Buffer is a finalized, read-only ballot buffer as produced by Encoder.Finish.
type Buffer struct {
	data []byte
	n    int
}

// Count returns the number of ballots encoded in the buffer.
func (b *Buffer) Count() int { return b.n }

// Bytes returns the raw encoded buffer. The caller must not modify it.
func (b *Buffer) Bytes() []byte { return b.data }

// ballotOffset returns the absolute byte offset of ballot i's row stream.
// i may range over [0, n], where ballotOffset(n) is the mentions_offset
// header field (the end of the last ballot's row stream).
func (b *Buffer) ballotOffset(i int) uint32 {
	if i == b.n {
		return binary.LittleEndian.Uint32(b.data[headerCountSize+headerWordSize*b.n:])
	}
	off := headerCountSize + headerWordSize*i
	return binary.LittleEndian.Uint32(b.data[off:])
}

// rowBytes returns the raw u16 row stream for ballot i.
func (b *Buffer) rowBytes(i int) []byte {
	start := b.ballotOffset(i)
	end := b.ballotOffset(i + 1)
	return b.data[start:end]
}

// IsBlank reports whether ballot i has zero ranks.
func (b *Buffer) IsBlank(i int) bool {
	return b.ballotOffset(i) == b.ballotOffset(i+1)
}

// align4 rounds off up to the next multiple of 4.
func align4(off uint32) uint32 {
	if rem := off % 4; rem != 0 {
		return off + (4 - rem)
	}
	return off
}

// mentionsTableStart returns the absolute byte offset of the mentions
// table, i.e. the mentions_offset header field aligned up to 4 bytes.
func (b *Buffer) mentionsTableStart() uint32 {
	return align4(b.ballotOffset(b.n))
}

// Mentions returns the mention tally: for each distinct candidate id that
// appears at least once across all ballots, the number of times it occurs.
func (b *Buffer) Mentions() map[CandidateID]uint32 {
	start := b.mentionsTableStart()
	k := (len(b.data) - int(start)) / mentionsEntrySize
	out := make(map[CandidateID]uint32, k)
	for i := 0; i < k; i++ {
		off := int(start) + i*mentionsEntrySize
		id := CandidateID(binary.LittleEndian.Uint32(b.data[off:]))
		count := binary.LittleEndian.Uint32(b.data[off+4:])
		out[id] = count
	}
	return out
}

// forEachRow walks ballot i's row stream, invoking fn once per rank
// boundary (sep == true) and once per candidate id (sep == false).
func (b *Buffer) forEachRow(i int, fn func(id CandidateID, sep bool)) {
	row := b.rowBytes(i)
	for off := 0; off+rowWordSize <= len(row); off += rowWordSize {
		v := binary.LittleEndian.Uint16(row[off:])
		if v == 0 {
			fn(0, true)
			continue
		}
		fn(CandidateID(v), false)
	}
}
