// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import "github.com/trabucador/iroha/vanilla/throw"

// Error taxonomy from spec §7. Only these three ever leave the core;
// SignatureRejected is absorbed silently (counted as a metric instead).
var (
	// ErrInvalidBatch: zero transactions, inconsistent transaction count
	// against an existing identity, or (checked by MstState.Insert) a
	// transaction with no candidate signatures at all.
	ErrInvalidBatch = throw.E("invalid batch")

	// ErrOverloaded: max_inflight_batches reached.
	ErrOverloaded = throw.E("mst state overloaded")

	// ErrPolicyError: the CompletionPolicy predicate (IsComplete/IsExpired)
	// panicked. Fatal; propagated to the caller rather than absorbed.
	ErrPolicyError = throw.E("mst completion policy failed")
)
