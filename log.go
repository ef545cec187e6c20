// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voting

import "github.com/decred/slog"

// log is the package-scoped logger for the dispatcher. It is silent
// until a host application wires a backend with UseLogger.
var log = slog.Disabled

// UseLogger sets the logger used by the dispatcher. Engines are configured
// independently via their own UseLogger functions (yesno.UseLogger,
// thresholdmajority.UseLogger, rankedpairs.UseLogger, stv.UseLogger).
func UseLogger(l slog.Logger) {
	log = l
}
