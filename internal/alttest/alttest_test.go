// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package alttest

import "testing"

func TestDenseConstMapAcceptsDenseOneBased(t *testing.T) {
	m := map[int]string{1: "a", 2: "b", 3: "c"}
	if err := DenseConstMap(m, 3); err != nil {
		t.Fatalf("DenseConstMap: %v", err)
	}
}

func TestDenseConstMapRejectsGap(t *testing.T) {
	m := map[int]string{1: "a", 3: "c"}
	if err := DenseConstMap(m, 3); err == nil {
		t.Fatal("expected an error for a map with a gap at key 2")
	}
}

func TestDenseConstMapRejectsZeroKey(t *testing.T) {
	m := map[int]string{0: "a", 1: "b"}
	if err := DenseConstMap(m, 2); err == nil {
		t.Fatal("expected an error for a map with a 0 key")
	}
}

func TestCompareStructFieldsMatch(t *testing.T) {
	type a struct{ X, Y int }
	type b struct{ X, Y int }
	if err := CompareStructFields(a{}, b{}); err != nil {
		t.Fatalf("CompareStructFields: %v", err)
	}
}

func TestCompareStructFieldsTypeMismatch(t *testing.T) {
	type a struct{ X int }
	type b struct{ X string }
	if err := CompareStructFields(a{}, b{}); err == nil {
		t.Fatal("expected a type mismatch error")
	}
}

func TestDisjointFieldNamesRejectsOverlap(t *testing.T) {
	type a struct{ Tied []int }
	type b struct{ Tied []string }
	if err := DisjointFieldNames(a{}, b{}); err == nil {
		t.Fatal("expected an overlap error for the shared Tied field")
	}
}

func TestDisjointFieldNamesAllowsCounts(t *testing.T) {
	type a struct{ Counts int }
	type b struct{ Counts int }
	if err := DisjointFieldNames(a{}, b{}); err != nil {
		t.Fatalf("DisjointFieldNames: %v", err)
	}
}
