// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package gen generates randomized MST fixtures for tests, the same role
// the teacher's testutils/gen plays for references and pulse numbers:
// unique-by-construction values so tests never collide on identity.
package gen

import (
	"sync/atomic"
	"time"

	fuzz "github.com/google/gofuzz"

	"github.com/trabucador/iroha/cryptography"
	"github.com/trabucador/iroha/mst"
)

var uniqueSeq uint32

func getUnique() uint32 {
	return atomic.AddUint32(&uniqueSeq, 1)
}

// TransactionPayload returns a payload with unique random bytes, the given
// quorum, and a deadline far enough out that EraseByTime-driven tests don't need
// to race the clock unless they ask for one explicitly via Deadline.
func TransactionPayload(quorum int) mst.TransactionPayload {
	var body [32]byte
	fuzz.New().NilChance(0).Fuzz(&body)

	return mst.TransactionPayload{
		Bytes:    append(body[:], byte(getUnique())),
		Quorum:   quorum,
		Deadline: time.Now().Add(time.Hour),
	}
}

// TransactionPayloads builds n unique payloads, each requiring quorum
// signatures.
func TransactionPayloads(n, quorum int) []mst.TransactionPayload {
	out := make([]mst.TransactionPayload, n)
	for i := range out {
		out[i] = TransactionPayload(quorum)
	}
	return out
}

// Batch builds a batch of n transactions, each requiring quorum
// signatures, with zero attached signatures.
func Batch(n, quorum int) *mst.Batch {
	b, err := mst.NewBatch(TransactionPayloads(n, quorum))
	if err != nil {
		panic(err)
	}
	return b
}

// SignerSet is a small pool of key pairs, used to attach signatures to a
// generated batch without each test hand-rolling its own secp256k1 keys.
type SignerSet struct {
	Service cryptography.Service
	signers []*cryptography.Secp256k1Service
}

// NewSignerSet generates n secp256k1 key pairs sharing one verifying
// service, since Verify doesn't depend on which key signed.
func NewSignerSet(n int) *SignerSet {
	signers := make([]*cryptography.Secp256k1Service, n)
	for i := range signers {
		s, err := cryptography.GenerateSecp256k1Service()
		if err != nil {
			panic(err)
		}
		signers[i] = s
	}
	var verifier cryptography.Service = signers[0]
	return &SignerSet{Service: verifier, signers: signers}
}

// Sign produces a valid Signature for payload from signer index i.
func (s *SignerSet) Sign(i int, payload mst.TransactionPayload) mst.Signature {
	signer := s.signers[i]
	pub, err := signer.GetPublicKey()
	if err != nil {
		panic(err)
	}
	hash := payload.Hash()
	sig, err := signer.Sign(hash)
	if err != nil {
		panic(err)
	}
	return mst.Signature{PublicKey: pub, SignedData: sig, PayloadHash: hash}
}

// BatchWithSignatures builds a batch of n transactions, each requiring
// quorum signatures, with valid signatures from the first quorum signers
// attached as (not yet verified) candidate signatures on every transaction.
func BatchWithSignatures(signers *SignerSet, n, quorum int) *mst.Batch {
	b := Batch(n, quorum)
	for txIndex, tx := range b.Transactions() {
		for i := 0; i < quorum && i < len(signers.signers); i++ {
			b.WithCandidateSignature(txIndex, signers.Sign(i, tx.Payload))
		}
	}
	return b
}
