// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import "time"

//go:generate minimock -i github.com/trabucador/iroha/mst.CompletionPolicy -o . -s _mock.go -g

// CompletionPolicy decides, for a Batch, whether enough signatures have
// been gathered, and whether it has expired relative to a supplied time.
// Implementations must be deterministic and pure: same inputs, same
// outputs, for every peer to agree on completeness.
type CompletionPolicy interface {
	IsComplete(b *Batch) bool
	IsExpired(b *Batch, now time.Time) bool
}

// MOfNPolicy completes a transaction once it holds at least
// TransactionPayload.Quorum distinct, verified signatures. This is the
// default quorum_scheme ("m_of_n").
type MOfNPolicy struct {
	// GraceMillis is subtracted from now before comparing to
	// earliest_expiry, tolerating small clock skew between peers
	// (spec §6, expiry_grace_ms).
	GraceMillis int64
}

func (p MOfNPolicy) IsComplete(b *Batch) bool {
	for _, tx := range b.Transactions() {
		if tx.SignatureCount() < tx.Payload.Quorum {
			return false
		}
	}
	return true
}

func (p MOfNPolicy) IsExpired(b *Batch, now time.Time) bool {
	grace := time.Duration(p.GraceMillis) * time.Millisecond
	return !b.EarliestExpiry().After(now.Add(-grace))
}

// ThresholdWeightedPolicy completes a transaction once the summed weight of
// its present, verified signatories meets TransactionPayload.Quorum, where
// weights are looked up per-signatory from TransactionPayload.Weights
// (keyed by the hex-encoded public key). A signatory with no entry in
// Weights contributes weight 1. This backs quorum_scheme
// "threshold_weighted" (spec §6), whose policy body the distilled spec left
// unspecified.
type ThresholdWeightedPolicy struct {
	GraceMillis int64
}

func (p ThresholdWeightedPolicy) IsComplete(b *Batch) bool {
	for _, tx := range b.Transactions() {
		var weight int
		for _, sig := range tx.Signatures() {
			weight += weightOf(tx.Payload, sig)
		}
		if weight < tx.Payload.Quorum {
			return false
		}
	}
	return true
}

func (p ThresholdWeightedPolicy) IsExpired(b *Batch, now time.Time) bool {
	grace := time.Duration(p.GraceMillis) * time.Millisecond
	return !b.EarliestExpiry().After(now.Add(-grace))
}

func weightOf(payload TransactionPayload, sig Signature) int {
	if payload.Weights == nil {
		return 1
	}
	if w, ok := payload.Weights[sig.PublicKey.String()]; ok {
		return w
	}
	return 1
}
