// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package gossip

import (
	"bytes"
	"context"
	"time"

	"github.com/trabucador/iroha/cryptography"
	"github.com/trabucador/iroha/log"
	"github.com/trabucador/iroha/mst"
	"github.com/trabucador/iroha/vanilla/synckit"
)

// Driver runs the periodic gossip round spec §6 describes: every period it
// picks a peer, sends this node's current MstState, and feeds back whatever
// the peer answers with via SyncState.Merge. It is the only thing in this
// module holding both a PeerTransport and a *mst.SyncState — the two
// collaborators spec §2 keeps out of the MST core itself.
type Driver struct {
	transport PeerTransport
	state     *mst.SyncState
	payloads  PayloadSource
	policy    mst.CompletionPolicy
	verifier  cryptography.Service
	period    time.Duration

	nextPeer int
}

// NewDriver wires a transport and a state together. Neither is
// package-level or global: every Driver instance is independently
// testable against a fake PeerTransport.
func NewDriver(transport PeerTransport, state *mst.SyncState, payloads PayloadSource, policy mst.CompletionPolicy, verifier cryptography.Service, period time.Duration) *Driver {
	return &Driver{
		transport: transport,
		state:     state,
		payloads:  payloads,
		policy:    policy,
		verifier:  verifier,
		period:    period,
	}
}

// Run alternates gossip rounds with a listener loop until ctx is
// cancelled. The listener runs in its own goroutine and the gossip loop in
// the caller's; Run blocks until both have returned.
func (d *Driver) Run(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.listen(ctx)
	}()

	d.gossipLoop(ctx)
	<-done
}

// gossipLoop sends the local state out once per period, using a
// synckit.TimerHolder the same way the teacher's occasion-based timeouts
// are held: stopped explicitly rather than left to be garbage collected.
func (d *Driver) gossipLoop(ctx context.Context) {
	timer := synckit.NewTimer(d.period)
	defer func() { timer.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Channel():
			d.round(ctx)
			timer = synckit.NewTimer(d.period)
		}
	}
}

func (d *Driver) round(ctx context.Context) {
	peers := d.transport.Peers()
	if len(peers) == 0 {
		return
	}

	peer := peers[d.nextPeer%len(peers)]
	d.nextPeer++

	payload := Encode(d.state.Snapshot())
	if err := d.transport.Send(ctx, peer, payload); err != nil {
		log.Logger().Warn().Err(err).Str("peer", peer).Msg("gossip send failed")
	}
}

// listen feeds every inbound state exchange into Merge as it arrives,
// independent of this node's own send cadence — a peer's unsolicited
// push is accepted exactly like a reply to our own round.
func (d *Driver) listen(ctx context.Context) {
	for {
		_, payload, err := d.transport.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Logger().Warn().Err(err).Msg("gossip receive failed")
			continue
		}

		incoming, err := Decode(bytes.NewReader(payload), d.payloads, d.policy, d.verifier)
		if err != nil {
			log.Logger().Warn().Err(err).Msg("gossip decode failed")
			continue
		}

		if err := d.state.Merge(incoming); err != nil {
			log.Logger().Error().Err(err).Msg("gossip merge failed")
		}
	}
}
