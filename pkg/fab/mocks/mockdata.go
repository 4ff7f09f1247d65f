/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"github.com/golang/protobuf/proto"
	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// TxInfo describes a transaction of a mock block
type TxInfo struct {
	TxID string
	Code pb.TxValidationCode
}

// NewMockBlock returns a block numbered num holding the given transactions,
// with the validation codes recorded in the transactions filter metadata
func NewMockBlock(num uint64, txs ...TxInfo) *cb.Block {
	data := make([][]byte, len(txs))
	filter := make([]byte, len(txs))
	for i, tx := range txs {
		env := newEnvelope(tx.TxID)
		envBytes, err := proto.Marshal(env)
		if err != nil {
			panic(err)
		}
		data[i] = envBytes
		filter[i] = byte(tx.Code)
	}

	metadata := make([][]byte, len(cb.BlockMetadataIndex_name))
	metadata[cb.BlockMetadataIndex_TRANSACTIONS_FILTER] = filter

	return &cb.Block{
		Header:   &cb.BlockHeader{Number: num},
		Data:     &cb.BlockData{Data: data},
		Metadata: &cb.BlockMetadata{Metadata: metadata},
	}
}

func newEnvelope(txID string) *cb.Envelope {
	chdr, err := proto.Marshal(&cb.ChannelHeader{
		Type:      int32(cb.HeaderType_ENDORSER_TRANSACTION),
		ChannelId: "mychannel",
		TxId:      txID,
	})
	if err != nil {
		panic(err)
	}
	payload, err := proto.Marshal(&cb.Payload{
		Header: &cb.Header{ChannelHeader: chdr},
		Data:   []byte("transaction"),
	})
	if err != nil {
		panic(err)
	}
	return &cb.Envelope{Payload: payload, Signature: []byte("signature")}
}
