// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import (
	"time"

	"github.com/trabucador/iroha/cryptography"
	"github.com/trabucador/iroha/vanilla/throw"
)

// Batch is an ordered, non-empty list of Transactions that share a fate:
// it completes iff every transaction in it does, under some
// CompletionPolicy.
type Batch struct {
	transactions   []*Transaction
	identity       BatchIdentity
	earliestExpiry time.Time
}

// NewBatch builds a Batch from an ordered, non-empty list of payloads.
// Signatures are added afterward via WithSignature or during merge/insert.
func NewBatch(payloads []TransactionPayload) (*Batch, error) {
	if len(payloads) == 0 {
		return nil, throw.W(ErrInvalidBatch, "batch has zero transactions")
	}

	txs := make([]*Transaction, len(payloads))
	hashes := make([][32]byte, len(payloads))
	earliest := payloads[0].Deadline
	for i, p := range payloads {
		txs[i] = NewTransaction(p)
		hashes[i] = p.Hash()
		if p.Deadline.Before(earliest) {
			earliest = p.Deadline
		}
	}

	return &Batch{
		transactions:   txs,
		identity:       IdentityOf(hashes),
		earliestExpiry: earliest,
	}, nil
}

func (b *Batch) Identity() BatchIdentity { return b.identity }

func (b *Batch) Transactions() []*Transaction { return b.transactions }

func (b *Batch) TransactionCount() int { return len(b.transactions) }

// EarliestExpiry is the minimum of per-transaction deadlines (design note:
// the source left this relationship implicit; we take it as min).
func (b *Batch) EarliestExpiry() time.Time { return b.earliestExpiry }

// WithSignature adds sig to the transaction at index txIndex, verifying it
// first. Returns whether the signature was newly accepted. Intended for a
// local signer attaching its own signature before submitting the batch.
func (b *Batch) WithSignature(txIndex int, sig Signature, verifier cryptography.Service) bool {
	return b.transactions[txIndex].addSignature(sig, verifier)
}

// WithCandidateSignature attaches sig to the transaction at txIndex without
// verifying it. Used when reconstructing a Batch from untrusted input (a
// client submission or a gossip payload) — MstState.Insert verifies every
// candidate signature before anything is stored.
func (b *Batch) WithCandidateSignature(txIndex int, sig Signature) {
	b.transactions[txIndex].attachCandidate(sig)
}

func (b *Batch) clone() *Batch {
	txs := make([]*Transaction, len(b.transactions))
	for i, t := range b.transactions {
		txs[i] = t.clone()
	}
	return &Batch{
		transactions:   txs,
		identity:       b.identity,
		earliestExpiry: b.earliestExpiry,
	}
}

// mergeSignatures implements spec §4.2: for each positionally paired
// transaction (target[i], donor[i]), attempt to add every donor signature
// into target, gated by verification and public-key uniqueness. Returns
// true iff at least one signature was newly inserted anywhere in target.
//
// Preconditions (identity equality, equal transaction count) are checked by
// the caller (MstState.insert), which is the only place batches of
// differing identity are ever compared.
func mergeSignatures(target, donor *Batch, verifier cryptography.Service) bool {
	added := false
	for i, donorTx := range donor.transactions {
		targetTx := target.transactions[i]
		for _, sig := range donorTx.Signatures() {
			if targetTx.addSignature(sig, verifier) {
				added = true
			}
		}
	}
	return added
}
