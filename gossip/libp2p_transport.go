// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

//go:build p2p

package gossip

import (
	"context"
	"encoding/json"

	libp2p "github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	p2phost "github.com/libp2p/go-libp2p/core/host"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/trabucador/iroha/vanilla/throw"
)

// TopicMstState is the single gossipsub topic MST state exchanges travel
// on; routing to a specific peer is left to gossipsub's own propagation,
// so PeerTransport.Send's peer argument is advisory only under this
// transport (every Send is effectively a broadcast, same as the C++
// original's fire-and-forget gossip round).
const TopicMstState = "mst-state/1.0.0"

type wireEnvelope struct {
	Sender  string `json:"sender"`
	Payload []byte `json:"payload"`
}

// Libp2pTransport is the optional PeerTransport built only with the p2p
// build tag, grounded on the pack's libp2p+gossipsub factory: a single
// host joins one topic and every state exchange is a topic publish.
// It is never linked into the default binary since wiring the full
// libp2p dependency tree unconditionally would pull a transport the spec
// treats as an opaque, swappable RPC stub (spec §1) into every build.
type Libp2pTransport struct {
	self  string
	peers []string

	host  p2phost.Host
	ps    *pubsub.PubSub
	topic *pubsub.Topic
	sub   *pubsub.Subscription
}

// NewLibp2pTransport starts a libp2p host, joins the gossip topic, and
// subscribes to it, following BuildTransport/Start in the pack's
// factory_p2p.go.
func NewLibp2pTransport(ctx context.Context, self string, peers []string, listenAddrs []string) (*Libp2pTransport, error) {
	opts := []libp2p.Option{}
	if len(listenAddrs) > 0 {
		var addrs []ma.Multiaddr
		for _, s := range listenAddrs {
			a, err := ma.NewMultiaddr(s)
			if err != nil {
				return nil, throw.W(err, "invalid listen address")
			}
			addrs = append(addrs, a)
		}
		opts = append(opts, libp2p.ListenAddrs(addrs...))
	}

	host, err := libp2p.New(opts...)
	if err != nil {
		return nil, throw.W(err, "failed to start libp2p host")
	}

	ps, err := pubsub.NewGossipSub(ctx, host)
	if err != nil {
		return nil, throw.W(err, "failed to start gossipsub")
	}

	topic, err := ps.Join(TopicMstState)
	if err != nil {
		return nil, throw.W(err, "failed to join gossip topic")
	}

	sub, err := topic.Subscribe()
	if err != nil {
		return nil, throw.W(err, "failed to subscribe to gossip topic")
	}

	return &Libp2pTransport{
		self:  self,
		peers: peers,
		host:  host,
		ps:    ps,
		topic: topic,
		sub:   sub,
	}, nil
}

func (t *Libp2pTransport) Send(ctx context.Context, _ string, payload []byte) error {
	b, err := json.Marshal(wireEnvelope{Sender: t.self, Payload: payload})
	if err != nil {
		return throw.W(err, "failed to marshal gossip envelope")
	}
	if err := t.topic.Publish(ctx, b); err != nil {
		return throw.W(err, "failed to publish to gossip topic")
	}
	return nil
}

func (t *Libp2pTransport) Receive(ctx context.Context) (string, []byte, error) {
	for {
		msg, err := t.sub.Next(ctx)
		if err != nil {
			return "", nil, throw.W(err, "failed to read from gossip topic")
		}
		var env wireEnvelope
		if err := json.Unmarshal(msg.Data, &env); err != nil {
			continue
		}
		if env.Sender == t.self {
			continue
		}
		return env.Sender, env.Payload, nil
	}
}

func (t *Libp2pTransport) Peers() []string {
	return t.peers
}

func (t *Libp2pTransport) Close() error {
	t.sub.Cancel()
	if err := t.topic.Close(); err != nil {
		return throw.W(err, "failed to close gossip topic")
	}
	return t.host.Close()
}

var _ PeerTransport = (*Libp2pTransport)(nil)
