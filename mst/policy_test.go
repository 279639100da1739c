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

func TestMOfNPolicyIsComplete(t *testing.T) {
	payload := TransactionPayload{Bytes: []byte("a"), Quorum: 2}
	b, err := NewBatch([]TransactionPayload{payload})
	require.NoError(t, err)

	policy := MOfNPolicy{}
	require.False(t, policy.IsComplete(b))

	b.WithCandidateSignature(0, sigFrom("alice", payload))
	require.False(t, policy.IsComplete(b))

	b.WithCandidateSignature(0, sigFrom("bob", payload))
	require.True(t, policy.IsComplete(b))
}

func TestMOfNPolicyIsExpiredWithGrace(t *testing.T) {
	now := time.Now()
	payload := TransactionPayload{Bytes: []byte("a"), Deadline: now}
	b, err := NewBatch([]TransactionPayload{payload})
	require.NoError(t, err)

	strict := MOfNPolicy{GraceMillis: 0}
	require.True(t, strict.IsExpired(b, now))

	lenient := MOfNPolicy{GraceMillis: 5000}
	require.False(t, lenient.IsExpired(b, now))
}

func TestThresholdWeightedPolicySumsWeights(t *testing.T) {
	payload := TransactionPayload{
		Bytes:  []byte("a"),
		Quorum: 5,
		Weights: map[string]int{
			sigFrom("alice", TransactionPayload{Bytes: []byte("a")}).PublicKey.String(): 3,
			sigFrom("bob", TransactionPayload{Bytes: []byte("a")}).PublicKey.String():   2,
		},
	}
	b, err := NewBatch([]TransactionPayload{payload})
	require.NoError(t, err)

	policy := ThresholdWeightedPolicy{}
	b.WithCandidateSignature(0, sigFrom("alice", payload))
	require.False(t, policy.IsComplete(b), "weight 3 < quorum 5")

	b.WithCandidateSignature(0, sigFrom("bob", payload))
	require.True(t, policy.IsComplete(b), "weight 3+2 == quorum 5")
}

func TestThresholdWeightedPolicyDefaultsToWeightOne(t *testing.T) {
	payload := TransactionPayload{Bytes: []byte("a"), Quorum: 2}
	b, err := NewBatch([]TransactionPayload{payload})
	require.NoError(t, err)

	policy := ThresholdWeightedPolicy{}
	b.WithCandidateSignature(0, sigFrom("alice", payload))
	require.False(t, policy.IsComplete(b))

	b.WithCandidateSignature(0, sigFrom("bob", payload))
	require.True(t, policy.IsComplete(b))
}
