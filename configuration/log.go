// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package configuration

// Log holds configuration for the zerolog-backed global logger.
type Log struct {
	Level  string
	Format string // "json" or "console"
}

func NewLog() Log {
	return Log{
		Level:  "info",
		Format: "json",
	}
}
