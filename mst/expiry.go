// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import (
	"container/heap"
	"time"
)

// expiryEntry is one (deadline, identity) pair. The index holds these by
// non-owning reference to identity only; entries.Map is the sole owner of
// the Batch itself (design note in spec §9: no back-pointers from the heap
// into the map).
type expiryEntry struct {
	at time.Time
	id BatchIdentity
}

// expiryIndex is a min-heap of expiryEntry ordered by deadline, tolerating
// stale entries: a popped entry is only trusted once validated against the
// live entries map (lazy deletion, spec §5's prescribed discipline).
type expiryIndex []expiryEntry

func (h expiryIndex) Len() int { return len(h) }
func (h expiryIndex) Less(i, j int) bool {
	return h[i].at.Before(h[j].at)
}
func (h expiryIndex) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *expiryIndex) Push(x interface{}) {
	*h = append(*h, x.(expiryEntry))
}

func (h *expiryIndex) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (h *expiryIndex) push(at time.Time, id BatchIdentity) {
	heap.Push(h, expiryEntry{at: at, id: id})
}

// peek returns the current minimum without popping it. Returns ok=false on
// an empty index.
func (h expiryIndex) peek() (expiryEntry, bool) {
	if len(h) == 0 {
		return expiryEntry{}, false
	}
	return h[0], true
}

func (h *expiryIndex) pop() expiryEntry {
	return heap.Pop(h).(expiryEntry)
}
