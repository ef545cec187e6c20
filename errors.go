// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voting

import "github.com/pkg/errors"

// dispatch validates its inputs and panics on programmer errors (§7): a
// missing required sub-record, or (in the mapped entry) a Yes/No
// candidate list that isn't exactly two values. These are never returned
// as VoteResult values — a caller that trips one has a bug to fix, not a
// vote outcome to inspect.

func requireConfig(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.Errorf(format, args...))
	}
}
