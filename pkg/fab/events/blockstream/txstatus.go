/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blockstream

import (
	"github.com/golang/protobuf/proto"
	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/multi"
)

type txStatus struct {
	txID string
	code pb.TxValidationCode
}

// txStatuses returns the id and validation code of every readable transaction
// in block. Envelopes that cannot be read are left out and reported together
// in the returned error; the other transactions keep the validation code at
// their own index.
func txStatuses(block *cb.Block) ([]txStatus, error) {
	var filter []byte
	metadata := block.GetMetadata().GetMetadata()
	if len(metadata) > int(cb.BlockMetadataIndex_TRANSACTIONS_FILTER) {
		filter = metadata[cb.BlockMetadataIndex_TRANSACTIONS_FILTER]
	}

	data := block.GetData().GetData()
	statuses := make([]txStatus, 0, len(data))
	var errs error
	for i, envBytes := range data {
		txID, err := txIDFromEnvelope(envBytes)
		if err != nil {
			errs = multi.Append(errs, errors.WithMessagef(err, "transaction %d of block %d", i, block.GetHeader().GetNumber()))
			continue
		}

		code := pb.TxValidationCode_NOT_VALIDATED
		if i < len(filter) {
			code = pb.TxValidationCode(filter[i])
		}
		statuses = append(statuses, txStatus{txID: txID, code: code})
	}
	return statuses, errs
}

func txIDFromEnvelope(envBytes []byte) (string, error) {
	env := &cb.Envelope{}
	if err := proto.Unmarshal(envBytes, env); err != nil {
		return "", errors.Wrap(err, "unmarshal of envelope failed")
	}

	payload := &cb.Payload{}
	if err := proto.Unmarshal(env.Payload, payload); err != nil {
		return "", errors.Wrap(err, "unmarshal of payload failed")
	}
	if payload.Header == nil {
		return "", errors.New("payload header is missing")
	}

	chdr := &cb.ChannelHeader{}
	if err := proto.Unmarshal(payload.Header.ChannelHeader, chdr); err != nil {
		return "", errors.Wrap(err, "unmarshal of channel header failed")
	}
	return chdr.TxId, nil
}
