/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/client/transaction"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/config"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/comm"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/events/deliverclient"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/identity"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/orderer"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/peer"
)

type network struct {
	identity  fab.IdentityContext
	endorsers []fab.Peer
	committer fab.Orderer
	eventHubs transaction.EventHubProvider
}

type connector func(cfg *config.TxnConfig) (*network, error)

// connect creates gRPC clients for every configured node. Connections are
// established lazily by the first request.
func connect(cfg *config.TxnConfig) (*network, error) {
	id, err := identity.FromFiles(cfg.Identity.MSPID, cfg.Identity.Cert, cfg.Identity.Key)
	if err != nil {
		return nil, errors.WithMessage(err, "loading identity failed")
	}

	nw := &network{identity: id}

	for _, e := range cfg.Endorsers {
		connOpts, err := connectionOpts(e, cfg)
		if err != nil {
			return nil, err
		}
		p, err := peer.New(e.URL, peer.WithMSPID(e.MSPID), peer.WithConnectionOpts(connOpts...))
		if err != nil {
			return nil, errors.WithMessagef(err, "creating endorser %s failed", e.URL)
		}
		nw.endorsers = append(nw.endorsers, p)
	}

	connOpts, err := connectionOpts(cfg.Committer, cfg)
	if err != nil {
		return nil, err
	}
	nw.committer, err = orderer.New(cfg.Committer.URL, orderer.WithConnectionOpts(connOpts...))
	if err != nil {
		return nil, errors.WithMessagef(err, "creating committer %s failed", cfg.Committer.URL)
	}

	nw.eventHubs = eventHubProvider(cfg)

	return nw, nil
}

// eventHubProvider opens a deliver client on the event source, or on the
// endorser named by the event options target
func eventHubProvider(cfg *config.TxnConfig) transaction.EventHubProvider {
	return func(opts fab.EventOptions) (fab.EventHub, error) {
		source := cfg.EventSource
		if opts.Target != "" && opts.Target != source.URL {
			source = config.EndpointConfig{URL: opts.Target}
			for _, e := range cfg.Endorsers {
				if e.URL == opts.Target {
					source = e
					break
				}
			}
		}

		connOpts, err := connectionOpts(source, cfg)
		if err != nil {
			return nil, err
		}
		return deliverclient.New(source.URL, cfg.Channel, deliverclient.WithConnectionOpts(connOpts...))
	}
}

func connectionOpts(e config.EndpointConfig, cfg *config.TxnConfig) ([]options.Opt, error) {
	opts := []options.Opt{comm.WithProperties(e.GRPCOptions)}

	if cfg.Timeouts.Connection > 0 {
		opts = append(opts, comm.WithConnectTimeout(cfg.Timeouts.Connection))
	}

	raw, err := e.TLSCACert.Bytes()
	if err != nil {
		return nil, err
	}
	if raw != nil {
		cert, err := comm.CertificateFromPEM(raw)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid TLS certificate for %s", e.URL)
		}
		opts = append(opts, comm.WithCertificate(cert))
	}

	return opts, nil
}
