// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tiebreak implements the external tie-breaker semantics shared by
// the Threshold Majority, Ranked Pairs and STV engines (§3, §9): a total
// preorder over candidate ids given as a sequence, most preferred first. An
// id absent from the sequence is "incomplete" for any ambiguous set that
// names it.
package tiebreak

import "github.com/AksoEo/voting/ballot"

// Order is a tie-breaker ranking, most preferred first. A nil Order means
// no tie-breaker was supplied.
type Order []ballot.CandidateID

// IndexOf returns the position of id in the order (lower = more
// preferred) and whether it was found at all.
func (o Order) IndexOf(id ballot.CandidateID) (int, bool) {
	for i, v := range o {
		if v == id {
			return i, true
		}
	}
	return 0, false
}

// Less reports whether a is strictly more preferred than b. Both ids must
// be present in the order; callers check Missing first.
func (o Order) Less(a, b ballot.CandidateID) bool {
	ia, _ := o.IndexOf(a)
	ib, _ := o.IndexOf(b)
	return ia < ib
}

// Missing returns every id in ids that is absent from the order, in the
// order they appear in ids. A nil/empty result means every id was found.
func (o Order) Missing(ids []ballot.CandidateID) []ballot.CandidateID {
	var missing []ballot.CandidateID
	for _, id := range ids {
		if _, ok := o.IndexOf(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// SortAscending returns a copy of ids sorted by tie-breaker index
// ascending (most preferred first). The caller must have already checked
// Missing returns nothing for ids.
func (o Order) SortAscending(ids []ballot.CandidateID) []ballot.CandidateID {
	out := make([]ballot.CandidateID, len(ids))
	copy(out, ids)
	insertionSortBy(out, func(a, b ballot.CandidateID) bool { return o.Less(a, b) })
	return out
}

// insertionSortBy is a small stable sort helper; the sets sorted here are
// always tiny (a handful of tied candidates or pairs), so insertion sort
// keeps the dependency surface down without pulling in sort.Slice's
// reflection overhead for what is, in practice, a handful of elements.
func insertionSortBy(ids []ballot.CandidateID, less func(a, b ballot.CandidateID) bool) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && less(ids[j], ids[j-1]); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}
