/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blockstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/mocks"
	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

func TestTxStatuses(t *testing.T) {
	block := mocks.NewMockBlock(1,
		mocks.TxInfo{TxID: "a", Code: pb.TxValidationCode_VALID},
		mocks.TxInfo{TxID: "b", Code: pb.TxValidationCode_ENDORSEMENT_POLICY_FAILURE},
	)

	statuses, err := txStatuses(block)
	require.NoError(t, err)
	assert.Equal(t, []txStatus{
		{txID: "a", code: pb.TxValidationCode_VALID},
		{txID: "b", code: pb.TxValidationCode_ENDORSEMENT_POLICY_FAILURE},
	}, statuses)
}

func TestTxStatusesWithoutFilter(t *testing.T) {
	block := mocks.NewMockBlock(1, mocks.TxInfo{TxID: "a", Code: pb.TxValidationCode_VALID})
	block.Metadata = nil

	statuses, err := txStatuses(block)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, pb.TxValidationCode_NOT_VALIDATED, statuses[0].code)
}

func TestTxStatusesMalformed(t *testing.T) {
	block := &cb.Block{
		Header: &cb.BlockHeader{Number: 9},
		Data:   &cb.BlockData{Data: [][]byte{{0xff, 0xff}}},
	}
	statuses, err := txStatuses(block)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction 0 of block 9")
	assert.Empty(t, statuses)
}

func TestTxStatusesSkipsMalformedEnvelope(t *testing.T) {
	block := mocks.NewMockBlock(9,
		mocks.TxInfo{TxID: "bad", Code: pb.TxValidationCode_BAD_PAYLOAD},
		mocks.TxInfo{TxID: "mytx", Code: pb.TxValidationCode_VALID},
		mocks.TxInfo{TxID: "other", Code: pb.TxValidationCode_MVCC_READ_CONFLICT},
	)
	block.Data.Data[0] = []byte{0xff, 0xff}

	statuses, err := txStatuses(block)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction 0 of block 9")
	assert.Equal(t, []txStatus{
		{txID: "mytx", code: pb.TxValidationCode_VALID},
		{txID: "other", code: pb.TxValidationCode_MVCC_READ_CONFLICT},
	}, statuses)
}
