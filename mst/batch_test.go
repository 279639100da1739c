// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewBatchRejectsEmptyPayloads(t *testing.T) {
	_, err := NewBatch(nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidBatch)
}

func TestNewBatchEarliestExpiryIsMinimum(t *testing.T) {
	now := time.Now()
	b, err := NewBatch([]TransactionPayload{
		{Bytes: []byte("a"), Deadline: now.Add(3 * time.Minute)},
		{Bytes: []byte("b"), Deadline: now.Add(1 * time.Minute)},
		{Bytes: []byte("c"), Deadline: now.Add(2 * time.Minute)},
	})
	require.NoError(t, err)
	require.WithinDuration(t, now.Add(1*time.Minute), b.EarliestExpiry(), time.Second)
}

func TestMergeSignaturesAddsAcrossPositionalTransactions(t *testing.T) {
	payloads := []TransactionPayload{
		{Bytes: []byte("a"), Quorum: 2},
		{Bytes: []byte("b"), Quorum: 2},
	}
	target, err := NewBatch(payloads)
	require.NoError(t, err)
	donor, err := NewBatch(payloads)
	require.NoError(t, err)

	donor.WithCandidateSignature(0, sigFrom("alice", payloads[0]))
	donor.WithCandidateSignature(1, sigFrom("bob", payloads[1]))

	added := mergeSignatures(target, donor, alwaysValidVerifier{})
	require.True(t, added)
	require.Equal(t, 1, target.transactions[0].SignatureCount())
	require.Equal(t, 1, target.transactions[1].SignatureCount())
}

func TestMergeSignaturesIsIdempotent(t *testing.T) {
	payloads := []TransactionPayload{{Bytes: []byte("a"), Quorum: 2}}
	target, err := NewBatch(payloads)
	require.NoError(t, err)
	donor, err := NewBatch(payloads)
	require.NoError(t, err)
	donor.WithCandidateSignature(0, sigFrom("alice", payloads[0]))

	mergeSignatures(target, donor, alwaysValidVerifier{})
	addedAgain := mergeSignatures(target, donor, alwaysValidVerifier{})

	require.False(t, addedAgain, "re-merging the same donor must be a no-op (P1)")
	require.Equal(t, 1, target.transactions[0].SignatureCount())
}

func TestBatchCloneIsDeep(t *testing.T) {
	payloads := []TransactionPayload{{Bytes: []byte("a"), Quorum: 1}}
	b, err := NewBatch(payloads)
	require.NoError(t, err)
	b.WithCandidateSignature(0, sigFrom("alice", payloads[0]))

	cp := b.clone()
	cp.WithCandidateSignature(0, sigFrom("bob", payloads[0]))

	require.Equal(t, 1, b.transactions[0].SignatureCount())
	require.Equal(t, 2, cp.transactions[0].SignatureCount())
	require.Equal(t, b.Identity(), cp.Identity())
}
