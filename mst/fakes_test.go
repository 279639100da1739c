// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import "github.com/trabucador/iroha/cryptography"

// alwaysValidVerifier accepts every signature, whatever its key, data or
// hash — a deliberately trivial stand-in for real secp256k1 verification, letting
// these tests exercise MstState's bookkeeping without signing real keys.
type alwaysValidVerifier struct{}

func (alwaysValidVerifier) GetPublicKey() (cryptography.PublicKey, error) {
	return cryptography.PublicKey("fake"), nil
}

func (alwaysValidVerifier) Sign(payloadHash [32]byte) (cryptography.Signature, error) {
	return cryptography.Signature("fake-sig"), nil
}

func (alwaysValidVerifier) Verify(_ cryptography.PublicKey, _ cryptography.Signature, _ [32]byte) bool {
	return true
}

// rejectingVerifier never accepts a signature, used to exercise the
// SignatureRejected path deterministically.
type rejectingVerifier struct{}

func (rejectingVerifier) GetPublicKey() (cryptography.PublicKey, error) {
	return cryptography.PublicKey("fake"), nil
}

func (rejectingVerifier) Sign(payloadHash [32]byte) (cryptography.Signature, error) {
	return cryptography.Signature("fake-sig"), nil
}

func (rejectingVerifier) Verify(_ cryptography.PublicKey, _ cryptography.Signature, _ [32]byte) bool {
	return false
}

func sigFrom(pub string, payload TransactionPayload) Signature {
	return Signature{
		PublicKey:   cryptography.PublicKey(pub),
		SignedData:  cryptography.Signature("sig-" + pub),
		PayloadHash: payload.Hash(),
	}
}
