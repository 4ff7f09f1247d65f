/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"io"
	"sync"

	"github.com/hyperledger/fabric-protos-go/common"
	po "github.com/hyperledger/fabric-protos-go/orderer"
	"google.golang.org/grpc"
)

var broadcastResponseSuccess = &po.BroadcastResponse{Status: common.Status_SUCCESS}
var broadcastResponseError = &po.BroadcastResponse{Status: common.Status_INTERNAL_SERVER_ERROR, Info: "internal error"}

// MockBroadcastServer mock broadcast server
type MockBroadcastServer struct {
	po.UnimplementedAtomicBroadcastServer
	BufServer

	BroadcastError               error
	BroadcastInternalServerError bool
	BroadcastCustomResponse      *po.BroadcastResponse

	mutex     sync.Mutex
	envelopes []*common.Envelope
}

// Broadcast mock broadcast
func (m *MockBroadcastServer) Broadcast(server po.AtomicBroadcast_BroadcastServer) error {
	for {
		env, err := server.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		m.mutex.Lock()
		m.envelopes = append(m.envelopes, env)
		m.mutex.Unlock()

		if m.BroadcastError != nil {
			return m.BroadcastError
		}

		resp := broadcastResponseSuccess
		if m.BroadcastInternalServerError {
			resp = broadcastResponseError
		} else if m.BroadcastCustomResponse != nil {
			resp = m.BroadcastCustomResponse
		}

		if err := server.Send(resp); err != nil {
			return err
		}
	}
}

// Envelopes returns the envelopes received so far
func (m *MockBroadcastServer) Envelopes() []*common.Envelope {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]*common.Envelope(nil), m.envelopes...)
}

// Start the mock broadcast server
func (m *MockBroadcastServer) Start() {
	m.Serve(func(srv *grpc.Server) {
		po.RegisterAtomicBroadcastServer(srv, m)
	})
}
