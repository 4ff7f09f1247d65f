/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package connection manages the gRPC stream to a peer's deliver service.
package connection

import (
	"context"
	"io"

	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"google.golang.org/grpc"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/comm"
)

var logger = logging.NewLogger("fabtxn/fab")

// DeliverConnection manages the connection to the deliver server
type DeliverConnection struct {
	conn   *grpc.ClientConn
	stream pb.Deliver_DeliverClient
	cancel context.CancelFunc
	url    string
	closed *atomic.Bool
}

// New returns a new Deliver Server connection
func New(ctx context.Context, url string, opts ...options.Opt) (*DeliverConnection, error) {
	logger.Debugf("Connecting to %s...", url)

	conn, err := comm.Dial(ctx, url, opts...)
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := pb.NewDeliverClient(conn).Deliver(streamCtx)
	if err != nil {
		cancel()
		if cerr := conn.Close(); cerr != nil {
			logger.Debugf("closing connection to %s failed: %s", url, cerr)
		}
		if rpcStatus, ok := grpcstatus.FromError(err); ok {
			err = status.NewFromGRPCStatus(rpcStatus)
		}
		return nil, errors.WithMessage(err, "opening deliver stream failed")
	}

	return &DeliverConnection{
		conn:   conn,
		stream: stream,
		cancel: cancel,
		url:    url,
		closed: atomic.NewBool(false),
	}, nil
}

// Closed returns true if the connection has been closed
func (c *DeliverConnection) Closed() bool {
	return c.closed.Load()
}

// Close closes the stream and the connection. Calling it more than once has no effect.
func (c *DeliverConnection) Close() {
	if !c.closed.CAS(false, true) {
		logger.Debug("Already closed")
		return
	}

	logger.Debugf("Closing connection to %s", c.url)
	if err := c.stream.CloseSend(); err != nil {
		logger.Debugf("unable to close deliver stream [%s]", err)
	}
	c.cancel()
	if err := c.conn.Close(); err != nil {
		logger.Debugf("closing connection to %s failed: %s", c.url, err)
	}
}

// Send sends a signed seek request to the deliver server
func (c *DeliverConnection) Send(envelope *cb.Envelope) error {
	if c.Closed() {
		return errors.New("connection is closed")
	}
	return c.stream.Send(envelope)
}

// Receive receives events from the deliver server until the stream ends,
// then closes eventch.
func (c *DeliverConnection) Receive(eventch chan<- *Event) {
	defer close(eventch)
	for {
		in, err := c.stream.Recv()

		if c.Closed() {
			logger.Debugf("The connection has closed with error [%v]. Terminating loop.", err)
			break
		}

		if err == io.EOF {
			logger.Debug("Received EOF from stream.")
			break
		}

		if err != nil {
			logger.Warnf("Received error from stream: [%s].", err)
			if rpcStatus, ok := grpcstatus.FromError(err); ok {
				err = status.NewFromGRPCStatus(rpcStatus)
			}
			eventch <- NewEvent(errors.WithMessage(err, "deliver stream failed"), c.url)
			break
		}

		logger.Debugf("Got deliver response: %T", in.Type)
		eventch <- NewEvent(in, c.url)
	}
	logger.Debug("Exiting stream listener")
}

// Event contains the deliver event as well as the event source
type Event struct {
	SourceURL string
	// Event is either a *pb.DeliverResponse or an error
	Event interface{}
}

// NewEvent returns a deliver event
func NewEvent(event interface{}, sourceURL string) *Event {
	return &Event{
		SourceURL: sourceURL,
		Event:     event,
	}
}
