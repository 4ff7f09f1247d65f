/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mockfab

import (
	"github.com/golang/mock/gomock"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
)

// ErrorMessage is a mock error message
const ErrorMessage = "default error message"

// EndorsingPeer returns a mock peer at url that answers every proposal with status
func EndorsingPeer(mockCtrl *gomock.Controller, url string, status int32) *MockPeer {
	peer := NewMockPeer(mockCtrl)

	peer.EXPECT().URL().Return(url).AnyTimes()
	peer.EXPECT().ProcessTransactionProposal(gomock.Any(), gomock.Any()).Return(
		&fab.TransactionProposalResponse{
			Endorser: url,
			Status:   status,
			ProposalResponse: &pb.ProposalResponse{
				Response:    &pb.Response{Status: status},
				Endorsement: &pb.Endorsement{Endorser: []byte(url), Signature: []byte("signature")},
				Payload:     []byte("proposal response payload"),
			},
		}, nil).AnyTimes()

	return peer
}

// FailingPeer returns a mock peer at url whose proposals always fail
func FailingPeer(mockCtrl *gomock.Controller, url string) *MockPeer {
	peer := NewMockPeer(mockCtrl)

	peer.EXPECT().URL().Return(url).AnyTimes()
	peer.EXPECT().ProcessTransactionProposal(gomock.Any(), gomock.Any()).Return(nil, errors.New(ErrorMessage)).AnyTimes()

	return peer
}

// AcceptingOrderer returns a mock orderer at url that accepts every envelope
func AcceptingOrderer(mockCtrl *gomock.Controller, url string) *MockOrderer {
	orderer := NewMockOrderer(mockCtrl)

	success := common.Status_SUCCESS
	orderer.EXPECT().URL().Return(url).AnyTimes()
	orderer.EXPECT().SendBroadcast(gomock.Any(), gomock.Any()).Return(&success, nil).AnyTimes()

	return orderer
}
