// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package gossip implements the external collaborator spec §2 calls the
// "Gossip driver": it periodically sends a snapshot of the whole local
// MstState to a peer and feeds received states back into Merge. The MST core
// itself (package mst) holds no notion of peers, transport, or time; this
// package is the only place those exist.
package gossip

import "context"

//go:generate minimock -i github.com/trabucador/iroha/gossip.PeerTransport -o . -s _mock.go -g

// PeerTransport is the opaque RPC stub spec §1 places out of scope: the
// core never knows whether it runs over watermill pub/sub, libp2p
// gossipsub, or plain HTTP. Send pushes an encoded MstState to one peer;
// Receive yields encoded states arriving from any peer. Implementations
// must not hold any lock belonging to an mst.SyncState while blocked in
// either method (spec §5: no network I/O while holding the state lock).
type PeerTransport interface {
	Send(ctx context.Context, peer string, payload []byte) error
	Receive(ctx context.Context) (peer string, payload []byte, err error)
	Peers() []string
	Close() error
}
