// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransactionAddSignatureRejectsDuplicateKey(t *testing.T) {
	payload := TransactionPayload{Bytes: []byte("tx"), Quorum: 2}
	tx := NewTransaction(payload)

	sig := sigFrom("alice", payload)
	require.True(t, tx.addSignature(sig, alwaysValidVerifier{}))
	require.False(t, tx.addSignature(sig, alwaysValidVerifier{}), "duplicate public key must be rejected (I3)")
	require.Equal(t, 1, tx.SignatureCount())
}

func TestTransactionAddSignatureRejectsUnverifiable(t *testing.T) {
	payload := TransactionPayload{Bytes: []byte("tx"), Quorum: 1}
	tx := NewTransaction(payload)

	sig := sigFrom("alice", payload)
	require.False(t, tx.addSignature(sig, rejectingVerifier{}))
	require.Equal(t, 0, tx.SignatureCount())
}

func TestTransactionHasSignatureFrom(t *testing.T) {
	payload := TransactionPayload{Bytes: []byte("tx"), Quorum: 1}
	tx := NewTransaction(payload)

	pub := sigFrom("alice", payload).PublicKey
	require.False(t, tx.HasSignatureFrom(pub))

	tx.attachCandidate(sigFrom("alice", payload))
	require.True(t, tx.HasSignatureFrom(pub))
}

func TestTransactionCloneIsIndependent(t *testing.T) {
	payload := TransactionPayload{Bytes: []byte("tx"), Quorum: 1}
	tx := NewTransaction(payload)
	tx.attachCandidate(sigFrom("alice", payload))

	cp := tx.clone()
	cp.attachCandidate(sigFrom("bob", payload))

	require.Equal(t, 1, tx.SignatureCount())
	require.Equal(t, 2, cp.SignatureCount())
}
