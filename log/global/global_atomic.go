// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package global holds the single process-wide logger behind an atomic
// pointer, the same discipline the teacher's log/global package uses for
// its GlobalLogAdapter: readers never block on a writer swapping the
// logger out (e.g. on a config reload).
package global

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var current atomic.Value // holds zerolog.Logger

func init() {
	current.Store(zerolog.Nop())
}

// Set installs logger as the process-wide logger.
func Set(logger zerolog.Logger) {
	current.Store(logger)
}

// Get returns the current process-wide logger.
func Get() *zerolog.Logger {
	l := current.Load().(zerolog.Logger)
	return &l
}
