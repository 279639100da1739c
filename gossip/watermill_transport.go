// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package gossip

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/trabucador/iroha/vanilla/throw"
)

// metadata keys, following the teacher's messagesender convention of
// addressing via message.Metadata rather than per-peer topics.
const (
	metaSender   = "gossip_sender"
	metaReceiver = "gossip_receiver"

	// TopicGossip is the single pub/sub topic every node publishes state
	// exchanges to and subscribes on; routing is by metaReceiver, not topic.
	TopicGossip = "TopicGossip"
)

// WatermillTransport is the default PeerTransport, a thin wrapper over a
// watermill Publisher/Subscriber pair. It is the gossip counterpart of the
// teacher's messagesender.DefaultService: same NewUUID-per-message and
// metadata-tagging idiom, generalized from a single outgoing topic to a
// shared gossip topic every peer both publishes and subscribes on.
type WatermillTransport struct {
	self   string
	peers  []string
	pub    message.Publisher
	sub    message.Subscriber
	inbox  <-chan *message.Message
	cancel context.CancelFunc
}

// NewWatermillTransport subscribes self in on TopicGossip and returns a
// transport that publishes outgoing state to the same topic, tagging every
// message with the intended receiver so uninterested peers can discard it.
func NewWatermillTransport(ctx context.Context, self string, peers []string, pub message.Publisher, sub message.Subscriber) (*WatermillTransport, error) {
	subCtx, cancel := context.WithCancel(ctx)

	inbox, err := sub.Subscribe(subCtx, TopicGossip)
	if err != nil {
		cancel()
		return nil, throw.W(err, "failed to subscribe to gossip topic")
	}

	return &WatermillTransport{
		self:   self,
		peers:  peers,
		pub:    pub,
		sub:    sub,
		inbox:  inbox,
		cancel: cancel,
	}, nil
}

func (t *WatermillTransport) Send(ctx context.Context, peer string, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metaSender, t.self)
	msg.Metadata.Set(metaReceiver, peer)
	msg.SetContext(ctx)

	if err := t.pub.Publish(TopicGossip, msg); err != nil {
		return throw.W(err, "failed to publish gossip message", struct{ Topic string }{Topic: TopicGossip})
	}
	return nil
}

// Receive blocks until a message addressed to self arrives, silently
// discarding and Ack-ing traffic meant for other peers sharing the topic.
func (t *WatermillTransport) Receive(ctx context.Context) (string, []byte, error) {
	for {
		select {
		case <-ctx.Done():
			return "", nil, ctx.Err()
		case msg, ok := <-t.inbox:
			if !ok {
				return "", nil, throw.E("gossip inbox closed")
			}
			receiver := msg.Metadata.Get(metaReceiver)
			if receiver != t.self {
				msg.Ack()
				continue
			}
			msg.Ack()
			return msg.Metadata.Get(metaSender), msg.Payload, nil
		}
	}
}

func (t *WatermillTransport) Peers() []string {
	return t.peers
}

func (t *WatermillTransport) Close() error {
	t.cancel()
	if err := t.sub.Close(); err != nil {
		return throw.W(err, "failed to close gossip subscriber")
	}
	return t.pub.Close()
}

var _ PeerTransport = (*WatermillTransport)(nil)
