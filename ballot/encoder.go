// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot

import (
	"encoding/binary"
	"sort"

	"github.com/pkg/errors"
)

// Programmer errors. These surface exceeding the declared ballot count and
// placing a reserved id on a ballot — both are caller bugs, never
// data-dependent outcomes, and are returned as plain errors for the caller
// to treat as fatal (§7).
var (
	ErrExceedsCapacity    = errors.New("ballot: add_ballot called more times than the declared capacity")
	ErrZeroCandidateID    = errors.New("ballot: rank contains reserved id 0")
	ErrCandidateIDTooLarge = errors.New("ballot: candidate id exceeds the maximum representable id")
	ErrAlreadyFinished    = errors.New("ballot: encoder already finished")
)

// Encoder builds a Buffer incrementally, one ballot at a time, maintaining
// a running mention tally as it goes.
type Encoder struct {
	capacity int
	count    int
	rows     []byte
	offsets  []uint32 // relative to the start of the rows region
	mentions map[CandidateID]uint32
	done     bool
}

// New reserves capacity for exactly n ballots. Calling AddBallot more than
// n times is a programmer error.
func New(n int) *Encoder {
	return &Encoder{
		capacity: n,
		rows:     make([]byte, 0, n*4),
		offsets:  make([]uint32, 0, n),
		mentions: make(map[CandidateID]uint32),
	}
}

// AddBallot appends a ballot. Each rank may hold one or more candidate ids;
// a rank with more than one id expresses equal preference. Ranks after the
// first are separated by a single zero word in the encoded stream. Placing
// the reserved id 0 in any rank is a programmer error.
func (e *Encoder) AddBallot(ranks []Rank) error {
	if e.done {
		return ErrAlreadyFinished
	}
	if e.count >= e.capacity {
		return ErrExceedsCapacity
	}

	e.offsets = append(e.offsets, uint32(len(e.rows)))

	for i, rank := range ranks {
		if i > 0 {
			e.rows = appendU16(e.rows, 0)
		}
		for _, id := range rank {
			if id == 0 {
				return ErrZeroCandidateID
			}
			if id > MaxCandidateID {
				return ErrCandidateIDTooLarge
			}
			e.rows = appendU16(e.rows, uint16(id))
			e.mentions[id]++
		}
	}

	e.count++
	return nil
}

func appendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// Finish writes the mentions table (sorted by ascending candidate id, so
// that encoding the same ballots twice produces byte-identical buffers —
// the tie-breaker stability property in §8 relies on this), after padding
// the end of the row stream to a 4-byte boundary, and returns the
// finalized, read-only Buffer.
// The encoder must not be used again afterward.
func (e *Encoder) Finish() (*Buffer, error) {
	if e.done {
		return nil, ErrAlreadyFinished
	}
	e.done = true

	n := e.count
	header := headerCountSize + headerWordSize*n + headerWordSize
	rowsEnd := uint32(header) + uint32(len(e.rows))
	mentionsStart := align4(rowsEnd)

	ids := make([]CandidateID, 0, len(e.mentions))
	for id := range e.mentions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := int(mentionsStart) + len(ids)*mentionsEntrySize
	data := make([]byte, total)

	binary.LittleEndian.PutUint32(data[0:], uint32(n))
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(data[headerCountSize+headerWordSize*i:], uint32(header)+e.offsets[i])
	}
	binary.LittleEndian.PutUint32(data[headerCountSize+headerWordSize*n:], rowsEnd)

	copy(data[header:], e.rows)

	for i, id := range ids {
		off := int(mentionsStart) + i*mentionsEntrySize
		binary.LittleEndian.PutUint32(data[off:], uint32(id))
		binary.LittleEndian.PutUint32(data[off+4:], e.mentions[id])
	}

	return &Buffer{data: data, n: n}, nil
}
