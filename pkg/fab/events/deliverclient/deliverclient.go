/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package deliverclient implements an event hub on top of a peer's Deliver service.
package deliverclient

import (
	reqContext "context"
	"fmt"
	"sync"

	"github.com/golang/protobuf/proto"
	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/events/deliverclient/connection"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/events/deliverclient/seek"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/events/service/dispatcher"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/txn"
)

var logger = logging.NewLogger("fabtxn/fab")

var _ fab.EventHub = (*Client)(nil)

// Client connects to a peer and delivers the blocks of a channel to the registered listeners.
// A Client serves one subscription: Build, register listeners, Connect, and finally Disconnect.
type Client struct {
	params
	url        string
	channelID  string
	dispatcher *dispatcher.Dispatcher

	mutex     sync.Mutex
	identity  fab.IdentityContext
	seekRange fab.SeekRange
	conn      *connection.DeliverConnection
	done      chan struct{}
}

// New returns a new deliver event client for channelID served by the peer at url
func New(url, channelID string, opts ...options.Opt) (*Client, error) {
	if url == "" {
		return nil, errors.New("expecting event source URL")
	}
	if channelID == "" {
		return nil, errors.New("expecting channel ID")
	}

	params := defaultParams()
	options.Apply(params, opts)

	return &Client{
		params:     *params,
		url:        url,
		channelID:  channelID,
		dispatcher: dispatcher.New(url),
	}, nil
}

// Build scopes the subscription to identity and the given range
func (c *Client) Build(identity fab.IdentityContext, seekRange fab.SeekRange) error {
	if identity == nil {
		return errors.New("identity is required")
	}
	if !seekRange.Newest && seekRange.End < seekRange.Start {
		return errors.Errorf("invalid block range [%d, %d]", seekRange.Start, seekRange.End)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.conn != nil {
		return errors.New("cannot rebuild a connected event hub")
	}
	c.identity = identity
	c.seekRange = seekRange
	return nil
}

// RegisterBlockListener registers a listener for block events and delivery errors
func (c *Client) RegisterBlockListener(listener fab.BlockListener, opts fab.SubscriptionOpts) (fab.Registration, error) {
	reg, err := c.dispatcher.Register(listener, opts)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Connect opens the deliver stream and sends the seek request
func (c *Client) Connect(ctx reqContext.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.identity == nil {
		return errors.New("event hub must be built before connecting")
	}
	if c.conn != nil {
		return errors.New("already connected")
	}

	envelope, err := c.seekEnvelope()
	if err != nil {
		return errors.WithMessage(err, "creating seek request failed")
	}

	conn, err := connection.New(ctx, c.url, c.connOpts...)
	if err != nil {
		return err
	}

	if err := conn.Send(envelope); err != nil {
		conn.Close()
		return errors.Wrap(err, "sending seek request failed")
	}

	eventch := make(chan *connection.Event, c.bufferSize)
	c.conn = conn
	c.done = make(chan struct{})

	go conn.Receive(eventch)
	go c.dispatch(eventch, c.done)

	logger.Debugf("connected to %s, seeking %+v", c.url, c.seekRange)
	return nil
}

// Disconnect closes the stream and drops every registration. Listeners must
// not call Disconnect themselves.
func (c *Client) Disconnect() {
	c.mutex.Lock()
	conn, done := c.conn, c.done
	c.conn = nil
	c.mutex.Unlock()

	if conn != nil {
		conn.Close()
		<-done
	}
	c.dispatcher.Clear()
}

func (c *Client) dispatch(eventch <-chan *connection.Event, done chan struct{}) {
	defer close(done)

	for e := range eventch {
		switch evt := e.Event.(type) {
		case *pb.DeliverResponse:
			c.handleResponse(evt, e.SourceURL)
		case error:
			c.dispatcher.DispatchError(evt)
		default:
			logger.Warnf("unsupported event type: %T", e.Event)
		}
	}
}

func (c *Client) handleResponse(resp *pb.DeliverResponse, sourceURL string) {
	switch r := resp.Type.(type) {
	case *pb.DeliverResponse_Block:
		logger.Debugf("received block %d from %s", r.Block.GetHeader().GetNumber(), sourceURL)
		c.dispatcher.DispatchBlock(r.Block)
	case *pb.DeliverResponse_Status:
		if r.Status == cb.Status_SUCCESS {
			logger.Debugf("deliver service at %s completed the requested range", sourceURL)
			return
		}
		logger.Warnf("deliver service at %s returned status %s", sourceURL, r.Status)
		c.dispatcher.DispatchError(status.New(status.ClientStatus, status.DeliveryFailed.ToInt32(),
			fmt.Sprintf("deliver service returned status %s", r.Status), []interface{}{sourceURL, r.Status}))
	default:
		logger.Warnf("unsupported deliver response type: %T", resp.Type)
	}
}

func (c *Client) seekEnvelope() (*cb.Envelope, error) {
	txh, err := txn.NewHeader(c.identity, c.channelID)
	if err != nil {
		return nil, err
	}

	channelHeader, err := txn.CreateChannelHeader(cb.HeaderType_DELIVER_SEEK_INFO, txn.ChannelHeaderOpts{TxnHeader: txh})
	if err != nil {
		return nil, err
	}

	data, err := proto.Marshal(seek.Info(c.seekRange))
	if err != nil {
		return nil, errors.Wrap(err, "marshal of seek info failed")
	}

	payload, err := txn.CreatePayload(txh, channelHeader, data)
	if err != nil {
		return nil, err
	}

	payloadBytes, err := proto.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal of payload failed")
	}

	signature, err := c.identity.Sign(payloadBytes)
	if err != nil {
		return nil, errors.WithMessage(err, "signing of seek request failed")
	}

	return &cb.Envelope{Payload: payloadBytes, Signature: signature}, nil
}
