// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

//go:generate minimock -i github.com/trabucador/iroha/mst.Observer -o . -s _mock.go -g

// Observer receives the three downstream events spec §6 defines. One
// subscriber per event kind is sufficient for the consensus pipeline
// (design note in spec §9): this is a typed interface rather than a
// fan-out registry of callbacks.
type Observer interface {
	// OnCompleted fires exactly once per completion within a SyncState.
	OnCompleted(b *Batch)
	// OnExpired fires exactly once per expiry.
	OnExpired(b *Batch)
	// OnUpdated fires when Insert/Merge mutated state without producing a
	// terminal outcome, to trigger the next gossip round.
	OnUpdated()
}

// NopObserver discards every event; the default when a SyncState is built
// without one.
type NopObserver struct{}

func (NopObserver) OnCompleted(*Batch) {}
func (NopObserver) OnExpired(*Batch)   {}
func (NopObserver) OnUpdated()         {}
