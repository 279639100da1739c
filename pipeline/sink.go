// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package pipeline holds the two external collaborators spec §2 names as
// sitting downstream of the MST core: CompletedSink receives batches that
// reached quorum, ExpiredSink receives batches dropped by eraseByTime.
package pipeline

import (
	"github.com/trabucador/iroha/mst"
	"github.com/trabucador/iroha/vanilla/atomickit"
)

//go:generate minimock -i github.com/trabucador/iroha/pipeline.CompletedSink -o . -s _mock.go -g

// CompletedSink receives batches ready for downstream ordering/consensus.
// The MST core's job ends the moment a batch is handed here.
type CompletedSink interface {
	Accept(b *mst.Batch)
}

//go:generate minimock -i github.com/trabucador/iroha/pipeline.ExpiredSink -o . -s _mock.go -g

// ExpiredSink receives batches the core dropped for exceeding their
// earliest_expiry before completing.
type ExpiredSink interface {
	Accept(b *mst.Batch)
}

// ChannelSink is a default, buffered-channel-backed sink for both kinds,
// following the appctl package's preference for plain channels over a
// callback-registration list (spec §9's design note on `receivers`
// vectors).
type ChannelSink struct {
	out      chan *mst.Batch
	accepted atomickit.Uint64
}

func NewChannelSink(capacity int) *ChannelSink {
	return &ChannelSink{out: make(chan *mst.Batch, capacity)}
}

func (s *ChannelSink) Accept(b *mst.Batch) {
	s.out <- b
	s.accepted.Add(1)
}

func (s *ChannelSink) Batches() <-chan *mst.Batch {
	return s.out
}

// Accepted returns the total number of batches ever sent through this
// sink, a lock-free counter a /metrics-style endpoint can poll without
// contending with Accept/Batches.
func (s *ChannelSink) Accepted() uint64 {
	return s.accepted.Load()
}

var (
	_ CompletedSink = (*ChannelSink)(nil)
	_ ExpiredSink   = (*ChannelSink)(nil)
)

// Observer adapts a SyncState's mst.Observer calls onto a CompletedSink /
// ExpiredSink pair plus an updated callback — the glue cmd/irohad installs
// on the node's SyncState.
type Observer struct {
	Completed CompletedSink
	Expired   ExpiredSink
	Updated   func()
}

func (o Observer) OnCompleted(b *mst.Batch) {
	if o.Completed != nil {
		o.Completed.Accept(b)
	}
}

func (o Observer) OnExpired(b *mst.Batch) {
	if o.Expired != nil {
		o.Expired.Accept(b)
	}
}

func (o Observer) OnUpdated() {
	if o.Updated != nil {
		o.Updated()
	}
}

var _ mst.Observer = Observer{}
