// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gate implements the configuration predicates (§4.3): quorum,
// blank-ratio and mention-threshold checks against a rational threshold,
// using math/big for exact comparisons instead of integer percentages.
package gate

import "math/big"

// Rational is an exact threshold value, expressed either as a decimal or
// as a (numerator, denominator) pair. Both constructors produce an
// equivalent internal representation.
type Rational struct {
	r *big.Rat
}

// FromDecimal builds a Rational from a floating-point decimal.
func FromDecimal(v float64) Rational {
	r := new(big.Rat)
	r.SetFloat64(v)
	return Rational{r: r}
}

// FromFraction builds a Rational from a (numerator, denominator) pair.
func FromFraction(num, den int64) Rational {
	return Rational{r: big.NewRat(num, den)}
}

// Threshold pairs a Rational cutoff with its inclusiveness: a value passes
// with >= when inclusive is true, and with > otherwise. The "within"
// predicates (used for blank limits) are the mirror image: <= when
// inclusive, < otherwise.
type Threshold struct {
	Value     Rational
	Inclusive bool
}

// Ratio returns num/den as a Rational, or the zero Rational when den is
// zero (which passes an inclusive threshold only when the threshold is at
// most zero, and an exclusive one only when it is below zero).
func Ratio(num, den int) Rational {
	if den == 0 {
		return Rational{r: new(big.Rat)}
	}
	return Rational{r: big.NewRat(int64(num), int64(den))}
}

// Passes reports whether v clears t using the ">="/">" convention.
func (t Threshold) Passes(v Rational) bool {
	cmp := v.r.Cmp(t.Value.r)
	if t.Inclusive {
		return cmp >= 0
	}
	return cmp > 0
}

// Within reports whether v clears t using the "<="/"<" convention, the
// mirror image used by blank-limit checks.
func (t Threshold) Within(v Rational) bool {
	cmp := v.r.Cmp(t.Value.r)
	if t.Inclusive {
		return cmp <= 0
	}
	return cmp < 0
}
