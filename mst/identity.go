// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// IdentitySize is the fixed width of a BatchIdentity digest.
const IdentitySize = 32

// BatchIdentity identifies a Batch by the hash of its ordered transaction
// payloads, independent of which signatures have been collected. Equal
// identities imply byte-identical payloads in the same order.
type BatchIdentity [IdentitySize]byte

// ZeroIdentity is the identity of no batch; a legitimate Batch never hashes
// to it in practice, but it is not special-cased.
var ZeroIdentity BatchIdentity

// Compare returns -1, 0 or 1, ordering identities by their lexicographic
// byte representation.
func (id BatchIdentity) Compare(other BatchIdentity) int {
	return bytes.Compare(id[:], other[:])
}

func (id BatchIdentity) String() string {
	return hex.EncodeToString(id[:])
}

// IdentityOf computes identity_of(batch) = H(H(tx1.payload) || H(tx2.payload) || ...)
// for the fixed hash H = SHA-256.
func IdentityOf(payloadHashes [][32]byte) BatchIdentity {
	h := sha256.New()
	for _, ph := range payloadHashes {
		h.Write(ph[:])
	}
	var id BatchIdentity
	copy(id[:], h.Sum(nil))
	return id
}

// HashPayload computes the per-transaction payload hash used both as an
// input to IdentityOf and as the payload_hash field of a Signature.
func HashPayload(payload []byte) [32]byte {
	return sha256.Sum256(payload)
}

// byIdentity sorts a slice of Batch by ascending BatchIdentity, used by
// batches() to produce deterministic output (P7).
type byIdentity []*Batch

func (b byIdentity) Len() int      { return len(b) }
func (b byIdentity) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byIdentity) Less(i, j int) bool {
	return b[i].Identity().Compare(b[j].Identity()) < 0
}
