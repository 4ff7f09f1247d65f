/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"sync"

	"github.com/golang/protobuf/proto"
	cb "github.com/hyperledger/fabric-protos-go/common"
	ab "github.com/hyperledger/fabric-protos-go/orderer"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"google.golang.org/grpc"

	fabmocks "github.com/hyperledger-labs/fabric-txn-go/pkg/fab/mocks"
)

// MockDeliverServer is a mock deliver server. Blocks and statuses posted to
// Deliveries are streamed to the client after it sent its seek request; a
// status ends the stream.
type MockDeliverServer struct {
	pb.UnimplementedDeliverServer
	fabmocks.BufServer

	Deliveries chan interface{}

	sync.RWMutex
	disconnErr error
	seekInfos  []*ab.SeekInfo
	envelopes  []*cb.Envelope
}

// NewMockDeliverServer returns a new MockDeliverServer
func NewMockDeliverServer(bufferSize int) *MockDeliverServer {
	return &MockDeliverServer{Deliveries: make(chan interface{}, bufferSize)}
}

// Disconnect terminates the stream and returns the given error to the client
func (s *MockDeliverServer) Disconnect(err error) {
	s.Lock()
	defer s.Unlock()
	s.disconnErr = err
}

func (s *MockDeliverServer) disconnectErr() error {
	s.RLock()
	defer s.RUnlock()
	return s.disconnErr
}

// SeekInfos returns the seek requests received so far
func (s *MockDeliverServer) SeekInfos() []*ab.SeekInfo {
	s.RLock()
	defer s.RUnlock()
	return append([]*ab.SeekInfo(nil), s.seekInfos...)
}

// Envelopes returns the signed seek envelopes received so far
func (s *MockDeliverServer) Envelopes() []*cb.Envelope {
	s.RLock()
	defer s.RUnlock()
	return append([]*cb.Envelope(nil), s.envelopes...)
}

// Deliver delivers a stream of blocks
func (s *MockDeliverServer) Deliver(srv pb.Deliver_DeliverServer) error {
	envelope, err := srv.Recv()
	if err != nil {
		return err
	}

	payload := &cb.Payload{}
	if err := proto.Unmarshal(envelope.Payload, payload); err != nil {
		return err
	}
	seekInfo := &ab.SeekInfo{}
	if err := proto.Unmarshal(payload.Data, seekInfo); err != nil {
		return err
	}

	s.Lock()
	s.envelopes = append(s.envelopes, envelope)
	s.seekInfos = append(s.seekInfos, seekInfo)
	s.Unlock()

	for {
		select {
		case <-srv.Context().Done():
			return nil
		case d := <-s.Deliveries:
			if err := s.disconnectErr(); err != nil {
				return err
			}
			switch event := d.(type) {
			case *cb.Block:
				if err := srv.Send(&pb.DeliverResponse{Type: &pb.DeliverResponse_Block{Block: event}}); err != nil {
					return err
				}
			case cb.Status:
				return srv.Send(&pb.DeliverResponse{Type: &pb.DeliverResponse_Status{Status: event}})
			case error:
				return event
			}
		}
	}
}

// Start the mock deliver server
func (s *MockDeliverServer) Start() {
	s.Serve(func(srv *grpc.Server) {
		pb.RegisterDeliverServer(srv, s)
	})
}
