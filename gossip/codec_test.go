// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package gossip

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trabucador/iroha/cryptography"
	"github.com/trabucador/iroha/mst"
)

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

type memPayloadSource struct {
	byHash map[[32]byte][]byte
}

func newMemPayloadSource() *memPayloadSource {
	return &memPayloadSource{byHash: make(map[[32]byte][]byte)}
}

func (s *memPayloadSource) Put(body []byte) {
	s.byHash[mst.HashPayload(body)] = body
}

func (s *memPayloadSource) PayloadByHash(hash [32]byte) ([]byte, bool) {
	b, ok := s.byHash[hash]
	return b, ok
}

func sigFor(pub string, payload mst.TransactionPayload) mst.Signature {
	return mst.Signature{
		PublicKey:   cryptography.PublicKey(pub),
		SignedData:  cryptography.Signature("sig-" + pub),
		PayloadHash: payload.Hash(),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sources := newMemPayloadSource()
	policy := mst.MOfNPolicy{}
	verifier := alwaysValidVerifier{}

	state := mst.Empty(policy, verifier)
	deadline := time.Now().Add(time.Hour).Truncate(time.Second)

	for _, body := range [][]byte{[]byte("alpha"), []byte("beta")} {
		sources.Put(body)
		payload := mst.TransactionPayload{Bytes: body, Quorum: 2, Deadline: deadline}
		b, err := mst.NewBatch([]mst.TransactionPayload{payload})
		require.NoError(t, err)
		b.WithCandidateSignature(0, sigFor("pk1", payload))
		_, err = state.Insert(b)
		require.NoError(t, err)
	}
	require.Equal(t, 2, state.Len())

	wire := Encode(state)

	decoded, err := Decode(bytes.NewReader(wire), sources, policy, verifier)
	require.NoError(t, err)

	require.Equal(t, state.Len(), decoded.Len())
	original := state.Batches()
	roundTripped := decoded.Batches()
	for i := range original {
		require.Equal(t, original[i].Identity(), roundTripped[i].Identity())
		require.Equal(t, original[i].Transactions()[0].SignatureCount(), roundTripped[i].Transactions()[0].SignatureCount())
		require.True(t, original[i].EarliestExpiry().Equal(roundTripped[i].EarliestExpiry()))
	}
}

func TestDecodeDropsBatchWithUnresolvablePayload(t *testing.T) {
	sources := newMemPayloadSource()
	policy := mst.MOfNPolicy{}
	verifier := alwaysValidVerifier{}

	state := mst.Empty(policy, verifier)

	known := []byte("known")
	sources.Put(known)
	knownPayload := mst.TransactionPayload{Bytes: known, Quorum: 2, Deadline: time.Now().Add(time.Hour)}
	knownBatch, err := mst.NewBatch([]mst.TransactionPayload{knownPayload})
	require.NoError(t, err)
	knownBatch.WithCandidateSignature(0, sigFor("pk1", knownPayload))
	_, err = state.Insert(knownBatch)
	require.NoError(t, err)

	unknownPayload := mst.TransactionPayload{Bytes: []byte("unknown"), Quorum: 2, Deadline: time.Now().Add(time.Hour)}
	unknownBatch, err := mst.NewBatch([]mst.TransactionPayload{unknownPayload})
	require.NoError(t, err)
	unknownBatch.WithCandidateSignature(0, sigFor("pk1", unknownPayload))
	_, err = state.Insert(unknownBatch)
	require.NoError(t, err)
	require.Equal(t, 2, state.Len())

	wire := Encode(state)

	decoded, err := Decode(bytes.NewReader(wire), sources, policy, verifier)
	require.NoError(t, err)
	require.Equal(t, 1, decoded.Len(), "the batch whose payload this node cannot resolve must be dropped, not erred")
	require.Equal(t, knownBatch.Identity(), decoded.Batches()[0].Identity())
}

func TestEncodeOfEmptyStateDecodesToEmpty(t *testing.T) {
	state := mst.Empty(mst.MOfNPolicy{}, alwaysValidVerifier{})
	wire := Encode(state)

	decoded, err := Decode(bytes.NewReader(wire), newMemPayloadSource(), mst.MOfNPolicy{}, alwaysValidVerifier{})
	require.NoError(t, err)
	require.True(t, decoded.IsEmpty())
}
