// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package cryptography

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/trabucador/iroha/vanilla/throw"
)

// Secp256k1Service is the default Service implementation: DER-encoded
// ECDSA over secp256k1, matching the scheme used elsewhere in the BFT
// ledger corpus this node's crypto layer was modeled on.
type Secp256k1Service struct {
	priv *secp256k1.PrivateKey
}

// NewSecp256k1Service wraps an existing private key. Use
// GenerateSecp256k1Service in tests and tooling that need a fresh key.
func NewSecp256k1Service(priv *secp256k1.PrivateKey) *Secp256k1Service {
	if priv == nil {
		panic(throw.IllegalValue())
	}
	return &Secp256k1Service{priv: priv}
}

func GenerateSecp256k1Service() (*Secp256k1Service, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, throw.W(err, "failed to generate secp256k1 key")
	}
	return NewSecp256k1Service(priv), nil
}

func (s *Secp256k1Service) GetPublicKey() (PublicKey, error) {
	return PublicKey(s.priv.PubKey().SerializeCompressed()), nil
}

func (s *Secp256k1Service) Sign(payloadHash [32]byte) (Signature, error) {
	sig := ecdsa.Sign(s.priv, payloadHash[:])
	return Signature(sig.Serialize()), nil
}

// Verify implements the spec's pure predicate verify(sig, payload, pubkey).
// Malformed keys or signatures verify false rather than error: the caller
// (mst.mergeSignatures) treats "does not verify" and "cannot be parsed" as
// the same Byzantine-input case.
func (s *Secp256k1Service) Verify(pub PublicKey, sig Signature, payloadHash [32]byte) bool {
	pk, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(payloadHash[:], pk)
}

var _ Service = (*Secp256k1Service)(nil)
