// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package cryptography treats signing and verification as an opaque
// service: the MST core only ever calls Verify against a payload hash, it
// never inspects key material directly.
package cryptography

import "encoding/hex"

// PublicKey is an opaque, comparable public key handle. Two signatures are
// considered to come from the same signatory iff their PublicKey bytes are
// equal (spec: "public keys are equal").
type PublicKey []byte

func (k PublicKey) String() string {
	return hex.EncodeToString(k)
}

// Signature is the raw bytes produced by a Signer over a payload hash.
type Signature []byte

//go:generate minimock -i github.com/trabucador/iroha/cryptography.Signer -o . -s _mock.go -g

// Signer produces signatures over already-hashed payloads.
type Signer interface {
	GetPublicKey() (PublicKey, error)
	Sign(payloadHash [32]byte) (Signature, error)
}

//go:generate minimock -i github.com/trabucador/iroha/cryptography.Service -o . -s _mock.go -g

// Service is the pure predicate the spec calls verify(sig, payload, pubkey).
// Byzantine-tolerance rests entirely on this being decidable in isolation:
// it never touches shared state and never returns an error, only a verdict.
type Service interface {
	Signer
	Verify(pub PublicKey, sig Signature, payloadHash [32]byte) bool
}
