/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	reqContext "context"
	"sync"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// DefaultProposalResponsePayload is the proposal response payload returned by mock peers
var DefaultProposalResponsePayload = []byte("proposal response payload")

// MockPeer is a mock fab.Peer.
type MockPeer struct {
	RWLock                  *sync.RWMutex
	Error                   error
	MockURL                 string
	Payload                 []byte
	ResponseMessage         string
	ProposalResponsePayload []byte // Overrides DefaultProposalResponsePayload
	Status                  int32
	Endorser                []byte
	ProcessProposalCalls    int
	LastRequest             *fab.ProcessProposalRequest
}

// NewMockPeer creates basic mock peer that endorses every proposal
func NewMockPeer(url string) *MockPeer {
	return &MockPeer{MockURL: url, Status: 200, RWLock: &sync.RWMutex{}}
}

// URL returns the mock peer's mock URL
func (p *MockPeer) URL() string {
	return p.MockURL
}

// Calls returns the number of proposals processed
func (p *MockPeer) Calls() int {
	p.RWLock.RLock()
	defer p.RWLock.RUnlock()
	return p.ProcessProposalCalls
}

// ProcessTransactionProposal returns the configured response or error
func (p *MockPeer) ProcessTransactionProposal(ctx reqContext.Context, tp fab.ProcessProposalRequest) (*fab.TransactionProposalResponse, error) {
	p.RWLock.Lock()
	defer p.RWLock.Unlock()

	p.ProcessProposalCalls++
	p.LastRequest = &tp

	if p.Error != nil {
		return nil, p.Error
	}

	payload := p.ProposalResponsePayload
	if payload == nil {
		payload = DefaultProposalResponsePayload
	}

	return &fab.TransactionProposalResponse{
		Endorser: p.MockURL,
		Status:   p.Status,
		ProposalResponse: &pb.ProposalResponse{
			Response: &pb.Response{
				Message: p.ResponseMessage,
				Status:  p.Status,
				Payload: p.Payload,
			},
			Endorsement: &pb.Endorsement{
				Endorser:  p.Endorser,
				Signature: []byte("signature"),
			},
			Payload: payload,
		},
	}, nil
}
