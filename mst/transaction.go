// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import (
	"time"

	"github.com/trabucador/iroha/cryptography"
)

// TransactionPayload is an opaque payload plus a quorum descriptor. It is
// immutable once observed by any Batch.
type TransactionPayload struct {
	Bytes   []byte
	Quorum  int
	Weights map[string]int // signatory pubkey (hex) -> weight, for ThresholdWeightedPolicy
	Deadline time.Time
}

// Hash returns the fixed-width hash of the payload bytes, used both as the
// transaction's identity component and as the payload_hash signed over.
func (p TransactionPayload) Hash() [32]byte {
	return HashPayload(p.Bytes)
}

// Signature is a verified-or-not-yet-verified triple (public_key,
// signed_data, payload_hash). Two signatures are equal iff their public
// keys are equal.
type Signature struct {
	PublicKey  cryptography.PublicKey
	SignedData cryptography.Signature
	PayloadHash [32]byte
}

func (s Signature) keyString() string {
	return string(s.PublicKey)
}

// Transaction pairs a payload with the monotonically growing set of
// verified signatures collected for it. The zero value is not usable;
// construct with NewTransaction.
type Transaction struct {
	Payload    TransactionPayload
	signatures map[string]Signature // keyed by PublicKey bytes for uniqueness (I3)
}

func NewTransaction(payload TransactionPayload) *Transaction {
	return &Transaction{
		Payload:    payload,
		signatures: make(map[string]Signature),
	}
}

// Signatures returns a defensive copy of the currently collected signatures.
// The returned slice is not sorted; callers needing determinism (e.g. wire
// encoding) must sort by PublicKey themselves.
func (t *Transaction) Signatures() []Signature {
	out := make([]Signature, 0, len(t.signatures))
	for _, sig := range t.signatures {
		out = append(out, sig)
	}
	return out
}

func (t *Transaction) SignatureCount() int {
	return len(t.signatures)
}

func (t *Transaction) HasSignatureFrom(pub cryptography.PublicKey) bool {
	_, ok := t.signatures[string(pub)]
	return ok
}

// addSignature attempts to add sig, gated by verifier. Returns true iff the
// signature was newly inserted: its public key must be absent and it must
// verify against t's payload hash (spec §4.2's merge_signatures gate).
func (t *Transaction) addSignature(sig Signature, verifier cryptography.Service) bool {
	if _, exists := t.signatures[sig.keyString()]; exists {
		recordSignatureRejected()
		return false
	}
	if !verifier.Verify(sig.PublicKey, sig.SignedData, t.Payload.Hash()) {
		recordSignatureRejected()
		return false
	}
	t.signatures[sig.keyString()] = sig
	return true
}

// attachCandidate records sig without verifying it. Used only while
// assembling a Batch from untrusted input (a client submission or a
// gossiped peer state) — such a transaction is not yet state-resident, and
// MstState.Insert verifies every candidate before anything is stored
// (I3). Calling this on a transaction already held inside an MstState
// would violate I3; only Batch-construction helpers call it.
func (t *Transaction) attachCandidate(sig Signature) {
	t.signatures[sig.keyString()] = sig
}

func (t *Transaction) clone() *Transaction {
	cp := NewTransaction(t.Payload)
	for k, v := range t.signatures {
		cp.signatures[k] = v
	}
	return cp
}
