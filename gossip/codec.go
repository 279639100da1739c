// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package gossip

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
	"time"

	"github.com/trabucador/iroha/cryptography"
	"github.com/trabucador/iroha/mst"
	"github.com/trabucador/iroha/vanilla/throw"
)

// PayloadSource resolves a transaction payload hash back to its bytes.
// Gossip never re-sends payload bytes between peers that share a mempool
// (spec §6) — only their hash — so decoding a wire batch needs this to
// reconstitute something mst.NewBatch can hash back to the same identity.
type PayloadSource interface {
	PayloadByHash(hash [32]byte) ([]byte, bool)
}

// Encode serializes state as the sorted-by-identity record sequence spec
// §6 specifies, using uvarint-length-prefixed fields in the manual
// WriteTo/ReadFrom style the teacher's own wire types use (reference.Local,
// longbits.fixedSize), rather than a generated protobuf schema — see
// DESIGN.md for why gogo/protobuf itself isn't wired here.
func Encode(state *mst.MstState) []byte {
	var buf bytes.Buffer
	batches := state.Batches() // already sorted by BatchIdentity (P7)

	writeUvarint(&buf, uint64(len(batches)))
	for _, b := range batches {
		encodeBatch(&buf, b)
	}
	return buf.Bytes()
}

func encodeBatch(buf *bytes.Buffer, b *mst.Batch) {
	id := b.Identity()
	buf.Write(id[:])

	txs := b.Transactions()
	writeUvarint(buf, uint64(len(txs)))
	for _, tx := range txs {
		hash := tx.Payload.Hash()
		buf.Write(hash[:])

		sigs := tx.Signatures()
		sort.Slice(sigs, func(i, j int) bool { return bytes.Compare(sigs[i].PublicKey, sigs[j].PublicKey) < 0 })
		writeUvarint(buf, uint64(len(sigs)))
		for _, sig := range sigs {
			writeBytes(buf, sig.PublicKey)
			writeBytes(buf, sig.SignedData)
		}

		writeUvarint(buf, uint64(tx.Payload.Quorum))
	}

	writeVarint(buf, b.EarliestExpiry().UnixNano())
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func writeVarint(buf *bytes.Buffer, v int64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutVarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeUvarint(buf, uint64(len(b)))
	buf.Write(b)
}

// Decode rebuilds an MstState from wire bytes. Each batch's transaction
// payloads are reconstituted via payloads (spec §6: a reference by hash
// suffices provided both sides can reconstitute the payload); a hash this
// node cannot resolve drops the whole batch, since an unknown transaction
// can never be verified or completed locally anyway.
func Decode(r io.Reader, payloads PayloadSource, policy mst.CompletionPolicy, verifier cryptography.Service) (*mst.MstState, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &byteReaderAdapter{r}
	}

	batchCount, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, throw.W(err, "failed to read batch count")
	}

	out := mst.Empty(policy, verifier)
	for i := uint64(0); i < batchCount; i++ {
		batch, ok, err := decodeBatch(br, payloads)
		if err != nil {
			return nil, throw.W(err, "failed to decode batch")
		}
		if !ok {
			continue
		}
		if _, err := out.Insert(batch); err != nil {
			continue
		}
	}
	return out, nil
}

func decodeBatch(br io.ByteReader, payloads PayloadSource) (*mst.Batch, bool, error) {
	var id mst.BatchIdentity
	for i := range id {
		b, err := br.ReadByte()
		if err != nil {
			return nil, false, err
		}
		id[i] = b
	}

	txCount, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, false, err
	}

	type pendingSig struct {
		pub  cryptography.PublicKey
		data cryptography.Signature
	}

	payloadBytesList := make([][]byte, txCount)
	sigLists := make([][]pendingSig, txCount)
	quorums := make([]int, txCount)
	resolvable := true

	for i := uint64(0); i < txCount; i++ {
		var hash [32]byte
		for j := range hash {
			b, err := br.ReadByte()
			if err != nil {
				return nil, false, err
			}
			hash[j] = b
		}

		sigCount, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, false, err
		}
		sigs := make([]pendingSig, 0, sigCount)
		for s := uint64(0); s < sigCount; s++ {
			pub, err := readBytes(br)
			if err != nil {
				return nil, false, err
			}
			data, err := readBytes(br)
			if err != nil {
				return nil, false, err
			}
			sigs = append(sigs, pendingSig{pub: cryptography.PublicKey(pub), data: cryptography.Signature(data)})
		}

		quorum, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, false, err
		}

		if payload, found := payloads.PayloadByHash(hash); found {
			payloadBytesList[i] = payload
		} else {
			resolvable = false
		}
		sigLists[i] = sigs
		quorums[i] = int(quorum)
	}

	expiryNanos, err := binary.ReadVarint(br)
	if err != nil {
		return nil, false, err
	}

	if !resolvable {
		return nil, false, nil
	}

	txPayloads := make([]mst.TransactionPayload, txCount)
	for i := range txPayloads {
		txPayloads[i] = mst.TransactionPayload{
			Bytes:    payloadBytesList[i],
			Quorum:   quorums[i],
			Deadline: time.Unix(0, expiryNanos),
		}
	}

	batch, err := mst.NewBatch(txPayloads)
	if err != nil {
		return nil, false, err
	}

	for i, sigs := range sigLists {
		for _, s := range sigs {
			batch.WithCandidateSignature(i, mst.Signature{
				PublicKey:   s.pub,
				SignedData:  s.data,
				PayloadHash: batch.Transactions()[i].Payload.Hash(),
			})
		}
	}

	return batch, true, nil
}

func readBytes(br io.ByteReader) ([]byte, error) {
	n, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	for i := range out {
		b, err := br.ReadByte()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

type byteReaderAdapter struct {
	r io.Reader
}

func (a *byteReaderAdapter) ReadByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(a.r, b[:])
	return b[0], err
}
