/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package orderer provides the gRPC committer that broadcasts endorsed transactions for ordering.
package orderer

import (
	reqContext "context"
	"crypto/x509"
	"io"

	"github.com/pkg/errors"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/hyperledger/fabric-protos-go/common"
	ab "github.com/hyperledger/fabric-protos-go/orderer"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/multi"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/comm"
)

var logger = logging.NewLogger("fabtxn/fab")

// Orderer allows a client to broadcast a transaction.
type Orderer struct {
	url      string
	connOpts []options.Opt
}

// Option describes a functional parameter for the New constructor
type Option func(*Orderer) error

// New Returns a Orderer instance
func New(url string, opts ...Option) (*Orderer, error) {
	if url == "" {
		return nil, errors.New("orderer URL is required")
	}

	orderer := &Orderer{url: url}
	for _, opt := range opts {
		if err := opt(orderer); err != nil {
			return nil, err
		}
	}
	return orderer, nil
}

// WithTLSCert is a functional option for the orderer.New constructor that configures the orderer's TLS certificate
func WithTLSCert(tlsCACert *x509.Certificate) Option {
	return func(o *Orderer) error {
		o.connOpts = append(o.connOpts, comm.WithCertificate(tlsCACert))
		return nil
	}
}

// WithTLSCertPEM configures the orderer's TLS CA certificate from PEM bytes
func WithTLSCertPEM(raw []byte) Option {
	return func(o *Orderer) error {
		cert, err := comm.CertificateFromPEM(raw)
		if err != nil {
			return errors.WithMessage(err, "invalid orderer TLS certificate")
		}
		o.connOpts = append(o.connOpts, comm.WithCertificate(cert))
		return nil
	}
}

// WithServerName is a functional option for the orderer.New constructor that configures the orderer's server name
func WithServerName(serverName string) Option {
	return func(o *Orderer) error {
		o.connOpts = append(o.connOpts, comm.WithHostOverride(serverName))
		return nil
	}
}

// WithInsecure is a functional option for the orderer.New constructor that configures the orderer's grpc insecure option
func WithInsecure() Option {
	return func(o *Orderer) error {
		o.connOpts = append(o.connOpts, comm.WithInsecure())
		return nil
	}
}

// WithConnectionOpts passes connection options (see package comm) to the orderer
func WithConnectionOpts(opts ...options.Opt) Option {
	return func(o *Orderer) error {
		o.connOpts = append(o.connOpts, opts...)
		return nil
	}
}

// FromProperties configures the connection from grpc properties
func FromProperties(props map[string]interface{}) Option {
	return func(o *Orderer) error {
		o.connOpts = append(o.connOpts, comm.WithProperties(props))
		return nil
	}
}

// URL Get the Orderer url. Required property for the instance objects.
func (o *Orderer) URL() string {
	return o.url
}

// SendBroadcast Send the created transaction to Orderer.
func (o *Orderer) SendBroadcast(ctx reqContext.Context, envelope *fab.SignedEnvelope) (*common.Status, error) {
	conn, err := comm.Dial(ctx, o.url, o.connOpts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Debugf("closing connection to %s failed: %s", o.url, err)
		}
	}()

	broadcastClient, err := ab.NewAtomicBroadcastClient(conn).Broadcast(ctx)
	if err != nil {
		rpcStatus, ok := grpcstatus.FromError(err)
		if ok {
			err = status.NewFromGRPCStatus(rpcStatus)
		}
		return nil, errors.WithMessage(err, "NewAtomicBroadcastClient failed")
	}

	responses := make(chan common.Status)
	errs := make(chan error, 1)

	go broadcastStream(broadcastClient, responses, errs)

	err = broadcastClient.Send(&common.Envelope{
		Payload:   envelope.Payload,
		Signature: envelope.Signature,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to send envelope to orderer")
	}
	if err = broadcastClient.CloseSend(); err != nil {
		logger.Debugf("unable to close broadcast client [%s]", err)
	}

	return wrapStreamStatusRPC(responses, errs)
}

// wrapStreamStatusRPC returns the last response and err and blocks until the chan is closed.
func wrapStreamStatusRPC(responses chan common.Status, errs chan error) (*common.Status, error) {
	var s common.Status
	var err multi.Errors

read:
	for {
		select {
		case r, ok := <-responses:
			if !ok {
				break read
			}
			s = r
		case e := <-errs:
			err = append(err, e)
		}
	}

	// drain remaining errors.
	for i := 0; i < len(errs); i++ {
		e := <-errs
		err = append(err, e)
	}

	return &s, err.ToError()
}

func broadcastStream(broadcastClient ab.AtomicBroadcast_BroadcastClient, responses chan common.Status, errs chan error) {
	defer close(responses)
	for {
		broadcastResponse, err := broadcastClient.Recv()
		if err == io.EOF {
			return
		}

		if err != nil {
			rpcStatus, ok := grpcstatus.FromError(err)
			if ok {
				err = status.NewFromGRPCStatus(rpcStatus)
			}
			errs <- errors.WithMessage(err, "broadcast recv failed")
			return
		}

		if broadcastResponse.Status == common.Status_SUCCESS {
			responses <- broadcastResponse.Status
			continue
		}
		errs <- status.New(status.OrdererServerStatus, int32(broadcastResponse.Status), broadcastResponse.Info, nil)
		return
	}
}
