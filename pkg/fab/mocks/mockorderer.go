/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	reqContext "context"
	"sync"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-protos-go/common"
)

// MockOrderer is a mock fab.Orderer that records broadcast envelopes
type MockOrderer struct {
	mutex      sync.Mutex
	OrdererURL string
	Status     common.Status
	Error      error
	Envelopes  []*fab.SignedEnvelope
}

// NewMockOrderer returns an orderer that accepts every envelope
func NewMockOrderer(url string) *MockOrderer {
	return &MockOrderer{OrdererURL: url, Status: common.Status_SUCCESS}
}

// URL returns the URL of the mock Orderer
func (o *MockOrderer) URL() string {
	return o.OrdererURL
}

// SendBroadcast records the envelope and returns the configured status
func (o *MockOrderer) SendBroadcast(ctx reqContext.Context, envelope *fab.SignedEnvelope) (*common.Status, error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.Envelopes = append(o.Envelopes, envelope)
	if o.Error != nil {
		return nil, o.Error
	}
	s := o.Status
	return &s, nil
}

// Broadcasts returns the number of envelopes received
func (o *MockOrderer) Broadcasts() int {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return len(o.Envelopes)
}
