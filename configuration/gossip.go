// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package configuration

// Gossip holds configuration for the gossip driver and its PeerTransport.
type Gossip struct {
	// Transport names a PeerTransport implementation: "watermill" (the
	// default, in-process pub/sub) or "libp2p" (gossipsub, built only
	// under the p2p build tag). cmd/irohad does not read Transport or
	// Peers: it always builds the watermill transport and takes its peers
	// from the --peers flag.
	Transport string
	Peers     []string
}

func NewGossip() Gossip {
	return Gossip{
		Transport: "watermill",
	}
}
