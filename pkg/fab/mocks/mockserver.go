/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

// BufServer runs a gRPC server over an in-memory listener
type BufServer struct {
	lis *bufconn.Listener
	srv *grpc.Server
	wg  sync.WaitGroup
}

// Serve registers the services and starts serving
func (s *BufServer) Serve(register func(srv *grpc.Server)) {
	if s.srv != nil {
		panic("server already started")
	}

	s.lis = bufconn.Listen(bufSize)
	s.srv = grpc.NewServer()
	register(s.srv)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.srv.Serve(s.lis); err != nil {
			logger.Debugf("mock server stopped: %s", err)
		}
	}()
}

// Dialer returns a dialer connecting to the in-memory listener, whatever the address
func (s *BufServer) Dialer() func(ctx context.Context, address string) (net.Conn, error) {
	return func(context.Context, string) (net.Conn, error) {
		return s.lis.Dial()
	}
}

// Stop the server and wait for completion.
func (s *BufServer) Stop() {
	if s.srv == nil {
		panic("server not started")
	}

	s.srv.Stop()
	s.wg.Wait()
	s.srv = nil
}
