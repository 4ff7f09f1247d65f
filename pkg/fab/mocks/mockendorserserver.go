/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"sync"

	"github.com/golang/protobuf/proto"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"google.golang.org/grpc"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
)

var logger = logging.NewLogger("fabtxn/fab")

// MockEndorserServer mock endorser server to process endorsement proposals
type MockEndorserServer struct {
	pb.UnimplementedEndorserServer
	BufServer

	ProposalError   error
	Status          int32 // defaults to 200
	Message         string
	ChaincodeStatus int32 // defaults to Status

	mutex     sync.Mutex
	proposals []*pb.SignedProposal
}

// ProcessProposal mock implementation that returns the configured response,
// or the proposal error if one is set
func (m *MockEndorserServer) ProcessProposal(ctx context.Context, proposal *pb.SignedProposal) (*pb.ProposalResponse, error) {
	m.mutex.Lock()
	m.proposals = append(m.proposals, proposal)
	m.mutex.Unlock()

	if m.ProposalError != nil {
		return nil, m.ProposalError
	}

	s := m.Status
	if s == 0 {
		s = 200
	}
	ccStatus := m.ChaincodeStatus
	if ccStatus == 0 {
		ccStatus = s
	}

	return &pb.ProposalResponse{
		Response:    &pb.Response{Status: s, Message: m.Message},
		Endorsement: &pb.Endorsement{Endorser: []byte("endorser"), Signature: []byte("signature")},
		Payload:     createProposalResponsePayload(ccStatus),
	}, nil
}

// Proposals returns the signed proposals received so far
func (m *MockEndorserServer) Proposals() []*pb.SignedProposal {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]*pb.SignedProposal(nil), m.proposals...)
}

func createProposalResponsePayload(ccStatus int32) []byte {
	ccActionBytes, err := proto.Marshal(&pb.ChaincodeAction{Response: &pb.Response{Status: ccStatus}})
	if err != nil {
		return nil
	}
	prpBytes, err := proto.Marshal(&pb.ProposalResponsePayload{Extension: ccActionBytes})
	if err != nil {
		return nil
	}
	return prpBytes
}

// Start the mock endorser server
func (m *MockEndorserServer) Start() {
	m.Serve(func(srv *grpc.Server) {
		pb.RegisterEndorserServer(srv, m)
	})
}
