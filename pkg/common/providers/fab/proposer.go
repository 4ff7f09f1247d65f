/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	reqContext "context"

	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// ProposalProcessor simulates transaction proposal, so that a client can submit the result for ordering.
type ProposalProcessor interface {
	ProcessTransactionProposal(reqContext.Context, ProcessProposalRequest) (*TransactionProposalResponse, error)
}

// Peer is an endorser of the target network.
type Peer interface {
	ProposalProcessor
	// URL gets the peer address
	URL() string
}

// TransactionID provides the identifier of a Fabric transaction proposal.
type TransactionID string

// EmptyTransactionID represents a non-existing transaction (usually due to error).
const EmptyTransactionID = TransactionID("")

// TransactionHeader provides a handle to transaction metadata.
type TransactionHeader interface {
	TransactionID() TransactionID
	Creator() []byte
	Nonce() []byte
	ChannelID() string
}

// ChaincodeInvokeRequest contains the parameters for sending a transaction proposal.
// nolint: maligned
type ChaincodeInvokeRequest struct {
	ChaincodeID  string
	Lang         pb.ChaincodeSpec_Type
	TransientMap map[string][]byte
	Fcn          string
	Args         [][]byte
	IsInit       bool
	// Query marks a read-only evaluation whose result cannot be committed
	Query bool
}

// TransactionProposal contains a marshalled transaction proposal.
type TransactionProposal struct {
	TxnID TransactionID
	*pb.Proposal
}

// ProcessProposalRequest requests simulation of a proposed transaction from transaction processors.
type ProcessProposalRequest struct {
	SignedProposal *pb.SignedProposal
}

// TransactionProposalResponse represents the result of transaction proposal processing.
type TransactionProposalResponse struct {
	// Endorser is the connection the response was received on
	Endorser string
	// Status is the EndorserStatus
	Status int32
	// ChaincodeStatus is the status returned by Chaincode
	ChaincodeStatus int32
	*pb.ProposalResponse
}

// EndorsementResult is the outcome of sending a proposal to the endorser set.
// Responses are only meaningful when Errors is empty.
type EndorsementResult struct {
	Proposal  *TransactionProposal
	Responses []*TransactionProposalResponse
	Errors    []error
	// Query is copied from the request the result was endorsed for
	Query bool
}

// TxnID returns the transaction id of the endorsed proposal
func (r *EndorsementResult) TxnID() TransactionID {
	if r == nil || r.Proposal == nil {
		return EmptyTransactionID
	}
	return r.Proposal.TxnID
}

// Proposal is a chaincode proposal bound to an identity, a channel and a set
// of endorsers. It is reused until the coordinator builds a new one.
type Proposal interface {
	ChaincodeID() string
	// AsQuery records that the proposal was last used for a read-only evaluation
	AsQuery()
	// AsEndorsement records that the proposal was last used for a transaction to be committed
	AsEndorsement()
	// IsQuery reports the last recorded mode. Commit checks EndorsementResult.Query instead.
	IsQuery() bool

	// Send signs a new proposal for request and collects the responses of every endorser.
	// Endorser failures are reported in EndorsementResult.Errors.
	Send(ctx reqContext.Context, request ChaincodeInvokeRequest, opts ProposalOptions) (*EndorsementResult, error)

	// Commit assembles the transaction envelope from result and broadcasts it to the committers.
	Commit(ctx reqContext.Context, result *EndorsementResult, committers []Orderer, opts CommitOptions) (*CommitResult, error)

	// TransactionID returns the id of the last proposal sent
	TransactionID() TransactionID
	IdentityContext() IdentityContext
}
