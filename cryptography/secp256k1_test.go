// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package cryptography

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecp256k1SignVerifyRoundTrip(t *testing.T) {
	svc, err := GenerateSecp256k1Service()
	require.NoError(t, err)

	pub, err := svc.GetPublicKey()
	require.NoError(t, err)

	hash := [32]byte{1, 2, 3}
	sig, err := svc.Sign(hash)
	require.NoError(t, err)

	require.True(t, svc.Verify(pub, sig, hash))
}

func TestSecp256k1VerifyRejectsWrongHash(t *testing.T) {
	svc, err := GenerateSecp256k1Service()
	require.NoError(t, err)

	pub, err := svc.GetPublicKey()
	require.NoError(t, err)

	sig, err := svc.Sign([32]byte{1})
	require.NoError(t, err)

	require.False(t, svc.Verify(pub, sig, [32]byte{2}))
}

func TestSecp256k1VerifyRejectsForeignKey(t *testing.T) {
	svc, err := GenerateSecp256k1Service()
	require.NoError(t, err)
	other, err := GenerateSecp256k1Service()
	require.NoError(t, err)

	otherPub, err := other.GetPublicKey()
	require.NoError(t, err)

	hash := [32]byte{9}
	sig, err := svc.Sign(hash)
	require.NoError(t, err)

	require.False(t, svc.Verify(otherPub, sig, hash))
}

func TestSecp256k1VerifyRejectsMalformedKeyAndSignature(t *testing.T) {
	svc, err := GenerateSecp256k1Service()
	require.NoError(t, err)

	hash := [32]byte{1}
	sig, err := svc.Sign(hash)
	require.NoError(t, err)

	require.False(t, svc.Verify(PublicKey("not-a-key"), sig, hash))
	require.False(t, svc.Verify(PublicKey(nil), sig, hash))

	pub, err := svc.GetPublicKey()
	require.NoError(t, err)
	require.False(t, svc.Verify(pub, Signature("not-a-signature"), hash))
}

func TestPublicKeyStringIsHex(t *testing.T) {
	pub := PublicKey([]byte{0xde, 0xad, 0xbe, 0xef})
	require.Equal(t, "deadbeef", pub.String())
}
