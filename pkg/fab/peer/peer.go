/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package peer provides the gRPC endorser used to simulate transaction proposals.
package peer

import (
	reqContext "context"
	"crypto/x509"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/comm"
)

var logger = logging.NewLogger("fabtxn/fab")

// Peer represents a node in the target blockchain network to which
// endorsement proposals and query requests are sent.
type Peer struct {
	url       string
	mspID     string
	connOpts  []options.Opt
	processor fab.ProposalProcessor
}

// Option describes a functional parameter for the New constructor
type Option func(*Peer) error

// New Returns a new Peer instance
func New(url string, opts ...Option) (*Peer, error) {
	if url == "" {
		return nil, errors.New("peer URL is required")
	}

	peer := &Peer{url: url}

	for _, opt := range opts {
		if err := opt(peer); err != nil {
			return nil, err
		}
	}

	if peer.processor == nil {
		peer.processor = newPeerEndorser(peer.url, peer.connOpts)
	}

	return peer, nil
}

// WithTLSCert is a functional option for the peer.New constructor that configures the peer's TLS certificate
func WithTLSCert(certificate *x509.Certificate) Option {
	return func(p *Peer) error {
		p.connOpts = append(p.connOpts, comm.WithCertificate(certificate))
		return nil
	}
}

// WithTLSCertPEM configures the peer's TLS CA certificate from PEM bytes
func WithTLSCertPEM(raw []byte) Option {
	return func(p *Peer) error {
		cert, err := comm.CertificateFromPEM(raw)
		if err != nil {
			return errors.WithMessage(err, "invalid peer TLS certificate")
		}
		p.connOpts = append(p.connOpts, comm.WithCertificate(cert))
		return nil
	}
}

// WithServerName is a functional option for the peer.New constructor that configures the peer's server name
func WithServerName(serverName string) Option {
	return func(p *Peer) error {
		p.connOpts = append(p.connOpts, comm.WithHostOverride(serverName))
		return nil
	}
}

// WithInsecure is a functional option for the peer.New constructor that configures the peer's grpc insecure option
func WithInsecure() Option {
	return func(p *Peer) error {
		p.connOpts = append(p.connOpts, comm.WithInsecure())
		return nil
	}
}

// WithMSPID is a functional option for the peer.New constructor that configures the peer's msp ID
func WithMSPID(mspID string) Option {
	return func(p *Peer) error {
		p.mspID = mspID
		return nil
	}
}

// WithConnectionOpts passes connection options (see package comm) to the endorser
func WithConnectionOpts(opts ...options.Opt) Option {
	return func(p *Peer) error {
		p.connOpts = append(p.connOpts, opts...)
		return nil
	}
}

// FromProperties configures the connection from grpc properties such as
// grpc.keepalive-time, grpc.fail-fast, ssl-target-name-override and allow-insecure
func FromProperties(props map[string]interface{}) Option {
	return func(p *Peer) error {
		p.connOpts = append(p.connOpts, comm.WithProperties(props))
		return nil
	}
}

// WithPeerProcessor is a functional option for the peer.New constructor that configures the peer's proposal processor
func WithPeerProcessor(processor fab.ProposalProcessor) Option {
	return func(p *Peer) error {
		p.processor = processor
		return nil
	}
}

// ProcessTransactionProposal sends the created proposal to peer for endorsement.
func (p *Peer) ProcessTransactionProposal(ctx reqContext.Context, proposal fab.ProcessProposalRequest) (*fab.TransactionProposalResponse, error) {
	return p.processor.ProcessTransactionProposal(ctx, proposal)
}

// URL gets the peer address
func (p *Peer) URL() string {
	return p.url
}

// MSPID gets the Peer mspID.
func (p *Peer) MSPID() string {
	return p.mspID
}

func (p *Peer) String() string {
	return p.url
}
