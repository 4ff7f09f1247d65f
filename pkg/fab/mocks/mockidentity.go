/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"github.com/golang/protobuf/proto"
	mspproto "github.com/hyperledger/fabric-protos-go/msp"
)

// MockIdentity is a fab.IdentityContext with a fixed signature
type MockIdentity struct {
	MSP         string
	Cert        []byte
	SignErr     error
	IdentityErr error
}

// NewMockIdentity returns an identity of Org1MSP
func NewMockIdentity() *MockIdentity {
	return &MockIdentity{MSP: "Org1MSP", Cert: []byte("-----BEGIN CERTIFICATE-----\nmock\n-----END CERTIFICATE-----\n")}
}

// MSPID returns the MSP ID
func (m *MockIdentity) MSPID() string {
	return m.MSP
}

// Identity returns the serialized identity
func (m *MockIdentity) Identity() ([]byte, error) {
	if m.IdentityErr != nil {
		return nil, m.IdentityErr
	}
	return proto.Marshal(&mspproto.SerializedIdentity{Mspid: m.MSP, IdBytes: m.Cert})
}

// Sign returns a fixed signature
func (m *MockIdentity) Sign(msg []byte) ([]byte, error) {
	if m.SignErr != nil {
		return nil, m.SignErr
	}
	return []byte("signature"), nil
}
