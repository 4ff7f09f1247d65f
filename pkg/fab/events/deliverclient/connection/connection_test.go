/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connection

import (
	"context"
	"net"
	"testing"
	"time"

	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/comm"
	eventmocks "github.com/hyperledger-labs/fabric-txn-go/pkg/fab/events/mocks"
)

const peerURL = "grpc://peer0.org1.example.com:7051"

func TestInvalidConnection(t *testing.T) {
	dialer := func(ctx context.Context, _ string) (net.Conn, error) {
		return nil, &net.OpError{Op: "dial", Err: assert.AnError}
	}
	_, err := New(context.Background(), peerURL, comm.WithDialer(dialer), comm.WithConnectTimeout(50*time.Millisecond))
	assert.Error(t, err)
}

func TestConnection(t *testing.T) {
	srv := eventmocks.NewMockDeliverServer(10)
	srv.Start()
	defer srv.Stop()

	conn, err := New(context.Background(), peerURL, comm.WithDialer(srv.Dialer()), comm.WithConnectTimeout(3*time.Second))
	require.NoError(t, err)

	payload := []byte{}
	require.NoError(t, conn.Send(&cb.Envelope{Payload: payload, Signature: []byte("signature")}))

	eventch := make(chan *Event, 10)
	go conn.Receive(eventch)

	srv.Deliveries <- &cb.Block{Header: &cb.BlockHeader{Number: 3}}

	select {
	case e := <-eventch:
		require.NotNil(t, e)
		assert.Equal(t, peerURL, e.SourceURL)
		resp, ok := e.Event.(*pb.DeliverResponse)
		require.True(t, ok)
		assert.Equal(t, uint64(3), resp.GetBlock().Header.Number)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for block")
	}

	conn.Close()
	// Calling close again should be ignored
	conn.Close()
	assert.True(t, conn.Closed())
	assert.Error(t, conn.Send(&cb.Envelope{}))

	select {
	case _, ok := <-eventch:
		assert.False(t, ok, "event channel is closed once the stream ends")
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for receive loop to exit")
	}
}
