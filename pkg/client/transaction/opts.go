/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transaction

import (
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/api"
)

// Option describes a functional parameter for the New constructor
type Option func(*Transaction) error

// ProposalFactory creates the proposal that Build binds to a chaincode
type ProposalFactory func(identity fab.IdentityContext, channelID, chaincodeID string, endorsers []fab.Peer) (fab.Proposal, error)

// WithLogger sets the logger of the transaction
func WithLogger(logger api.Logger) Option {
	return func(t *Transaction) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		t.logger = logger
		return nil
	}
}

// WithMetrics sets the instruments of the transaction
func WithMetrics(metrics *Metrics) Option {
	return func(t *Transaction) error {
		if metrics == nil {
			return errors.New("metrics is nil")
		}
		t.metrics = metrics
		return nil
	}
}

// WithProposalFactory replaces the default proposal implementation
func WithProposalFactory(factory ProposalFactory) Option {
	return func(t *Transaction) error {
		if factory == nil {
			return errors.New("proposal factory is nil")
		}
		t.newProposal = factory
		return nil
	}
}

// WithProposalOptions sets the initial proposal options
func WithProposalOptions(opts fab.ProposalOptions) Option {
	return func(t *Transaction) error {
		if err := opts.Validate(); err != nil {
			return err
		}
		t.proposalOpts = opts
		return nil
	}
}

// WithCommitOptions sets the initial commit options
func WithCommitOptions(opts fab.CommitOptions) Option {
	return func(t *Transaction) error {
		if err := opts.Validate(); err != nil {
			return err
		}
		t.commitOpts = opts
		return nil
	}
}

// WithEventOptions sets the initial event options
func WithEventOptions(opts fab.EventOptions) Option {
	return func(t *Transaction) error {
		if err := opts.Validate(); err != nil {
			return err
		}
		t.eventOpts = opts
		return nil
	}
}
