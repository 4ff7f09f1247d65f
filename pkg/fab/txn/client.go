/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txn

import (
	reqContext "context"
	"sync"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
)

// Proposal is the default fab.Proposal. Every Send creates and signs a new
// proposal with a fresh transaction ID.
type Proposal struct {
	identity    fab.IdentityContext
	channelID   string
	chaincodeID string
	endorsers   []fab.Peer

	mutex sync.RWMutex
	query bool
	txnID fab.TransactionID
}

// NewProposal returns a proposal for chaincodeID on channelID, endorsed by endorsers
func NewProposal(identity fab.IdentityContext, channelID, chaincodeID string, endorsers []fab.Peer) (*Proposal, error) {
	if identity == nil {
		return nil, errors.New("identity is required")
	}
	if channelID == "" {
		return nil, errors.New("channel ID is required")
	}
	if chaincodeID == "" {
		return nil, errors.New("chaincode ID is required")
	}
	if len(endorsers) == 0 {
		return nil, errors.New("at least one endorser is required")
	}

	return &Proposal{
		identity:    identity,
		channelID:   channelID,
		chaincodeID: chaincodeID,
		endorsers:   endorsers,
	}, nil
}

// ChaincodeID returns the target chaincode
func (p *Proposal) ChaincodeID() string {
	return p.chaincodeID
}

// AsQuery marks the proposal as a read-only evaluation
func (p *Proposal) AsQuery() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.query = true
}

// AsEndorsement marks the proposal as a transaction to be committed
func (p *Proposal) AsEndorsement() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.query = false
}

// IsQuery reports whether the proposal is a read-only evaluation
func (p *Proposal) IsQuery() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.query
}

// TransactionID returns the id of the last proposal sent
func (p *Proposal) TransactionID() fab.TransactionID {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.txnID
}

// IdentityContext returns the identity proposals are created for
func (p *Proposal) IdentityContext() fab.IdentityContext {
	return p.identity
}

// Send creates a proposal for request and sends it to every endorser
func (p *Proposal) Send(ctx reqContext.Context, request fab.ChaincodeInvokeRequest, opts fab.ProposalOptions) (*fab.EndorsementResult, error) {
	request.ChaincodeID = p.chaincodeID

	txh, err := NewHeader(p.identity, p.channelID)
	if err != nil {
		return nil, errors.WithMessage(err, "creation of transaction header failed")
	}

	proposal, err := CreateChaincodeInvokeProposal(txh, request)
	if err != nil {
		return nil, errors.WithMessage(err, "creation of transaction proposal failed")
	}

	p.mutex.Lock()
	p.txnID = proposal.TxnID
	p.mutex.Unlock()

	if opts.Timeout > 0 {
		var cancel reqContext.CancelFunc
		ctx, cancel = reqContext.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	responses, errs, err := SendProposal(ctx, p.identity, proposal, p.endorsers)
	if err != nil {
		return nil, err
	}

	logger.Debugf("proposal [%s] to chaincode [%s]: %d responses, %d errors", proposal.TxnID, p.chaincodeID, len(responses), len(errs))

	return &fab.EndorsementResult{
		Proposal:  proposal,
		Responses: responses,
		Errors:    errs,
		Query:     request.Query,
	}, nil
}

// Commit assembles the transaction from result and broadcasts it
func (p *Proposal) Commit(ctx reqContext.Context, result *fab.EndorsementResult, committers []fab.Orderer, opts fab.CommitOptions) (*fab.CommitResult, error) {
	if result == nil {
		return nil, errors.New("endorsement result is required")
	}
	if result.Query {
		return nil, errors.New("a query result cannot be committed")
	}

	tx, err := New(TransactionRequest{Proposal: result.Proposal, ProposalResponses: result.Responses})
	if err != nil {
		return nil, errors.WithMessage(err, "creation of transaction failed")
	}

	if opts.Timeout > 0 {
		var cancel reqContext.CancelFunc
		ctx, cancel = reqContext.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	return Send(ctx, p.identity, tx, committers)
}
