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

func TestExpiryIndexPeekDoesNotPop(t *testing.T) {
	var idx expiryIndex
	base := time.Now()
	idx.push(base.Add(time.Minute), BatchIdentity{1})
	idx.push(base, BatchIdentity{2})

	head, ok := idx.peek()
	require.True(t, ok)
	require.Equal(t, BatchIdentity{2}, head.id)

	headAgain, ok := idx.peek()
	require.True(t, ok)
	require.Equal(t, head, headAgain, "peek must not mutate the index")
}

func TestExpiryIndexPopsInDeadlineOrder(t *testing.T) {
	var idx expiryIndex
	base := time.Now()
	idx.push(base.Add(3*time.Minute), BatchIdentity{3})
	idx.push(base.Add(1*time.Minute), BatchIdentity{1})
	idx.push(base.Add(2*time.Minute), BatchIdentity{2})

	var order []BatchIdentity
	for idx.Len() > 0 {
		order = append(order, idx.pop().id)
	}

	require.Equal(t, []BatchIdentity{{1}, {2}, {3}}, order)
}

func TestExpiryIndexOnEmpty(t *testing.T) {
	var idx expiryIndex
	_, ok := idx.peek()
	require.False(t, ok)
}
