// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package alttest holds reflection-based helpers shared by this module's
// test files: checking that a StatusKind/ResultKind name map is dense,
// that two structs' fields line up, and that a set of structs don't
// reuse field names.
package alttest

import (
	"reflect"

	"github.com/pkg/errors"
)

// DenseConstMap verifies that namesMap — a map keyed by some integer-kind
// enum type, such as a package's StatusKind -> string description table —
// has exactly count entries and that its keys form the dense range
// [1, count] with no gaps and no repeats. Every StatusKind/ResultKind enum
// in this module starts at iota+1, so 0 is never a valid key.
func DenseConstMap(namesMap interface{}, count int) error {
	val := reflect.ValueOf(namesMap)
	if val.Kind() != reflect.Map {
		return errors.Errorf("alttest: not a map: %T", namesMap)
	}

	seen := make(map[int64]bool, len(val.MapKeys()))
	for _, key := range val.MapKeys() {
		n, err := intKey(key)
		if err != nil {
			return err
		}
		if n < 1 || n > int64(count) {
			return errors.Errorf("alttest: key %d out of range [1, %d]", n, count)
		}
		if seen[n] {
			return errors.Errorf("alttest: key %d repeated", n)
		}
		seen[n] = true
	}
	if len(seen) != count {
		return errors.Errorf("alttest: someone added an enum value without adding its description: got %d entries, want %d", len(seen), count)
	}
	return nil
}

func intKey(v reflect.Value) (int64, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint()), nil
	default:
		return 0, errors.Errorf("alttest: unsupported map key kind: %v", v.Kind())
	}
}

// CompareStructFields reports whether struct1 and struct2 have the same
// number of fields, in the same order, with identical types. It's used to
// guard a hand-copied mirror struct (e.g. a generic result type's
// by-value tally, copied out so it doesn't need to import the engine
// package it mirrors) against silently drifting out of sync with the
// struct it was copied from.
func CompareStructFields(struct1, struct2 interface{}) error {
	v1 := reflect.ValueOf(struct1)
	v2 := reflect.ValueOf(struct2)

	if v1.Kind() != reflect.Struct {
		return errors.Errorf("alttest: struct1 is not a struct: %T", struct1)
	}
	if v2.Kind() != reflect.Struct {
		return errors.Errorf("alttest: struct2 is not a struct: %T", struct2)
	}
	if v1.NumField() != v2.NumField() {
		return errors.Errorf("alttest: field count mismatch: %T has %d, %T has %d",
			struct1, v1.NumField(), struct2, v2.NumField())
	}
	for i := 0; i < v1.NumField(); i++ {
		t1 := v1.Field(i).Type().String()
		t2 := v2.Field(i).Type().String()
		if t1 != t2 {
			return errors.Errorf("alttest: field %d type mismatch: %s vs %s", i, t1, t2)
		}
	}
	return nil
}

// DisjointFieldNames reports an error if any field name is shared between
// two or more of the given structs. It's used to confirm that a tagged
// union's payload-carrying variants (e.g. this module's VoteResult
// implementations) don't accidentally reuse a field name for two
// different meanings across variants.
func DisjointFieldNames(structs ...interface{}) error {
	owner := make(map[string]int, 0)
	for i, s := range structs {
		v := reflect.ValueOf(s)
		if v.Kind() != reflect.Struct {
			return errors.Errorf("alttest: argument %d is not a struct: %T", i, s)
		}
		t := v.Type()
		for f := 0; f < t.NumField(); f++ {
			name := t.Field(f).Name
			if name == "Counts" {
				// Every VoteResult variant legitimately carries this one.
				continue
			}
			if prev, ok := owner[name]; ok && prev != i {
				return errors.Errorf("alttest: field %q appears in both argument %d and %d", name, prev, i)
			}
			owner[name] = i
		}
	}
	return nil
}
