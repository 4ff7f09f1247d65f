/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package invoke provides the handlers that carry a chaincode invocation
// through endorsement, validation, commit and confirmation.
package invoke

import (
	reqContext "context"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/api"
)

// Request contains the parameters of a chaincode invocation
type Request struct {
	Fcn          string
	Args         [][]byte
	TransientMap map[string]interface{}
	// IsInit marks the invocation as the chaincode initializer
	IsInit bool
}

// Response contains the outcome of each completed step
type Response struct {
	Result   *fab.EndorsementResult
	Commit   *fab.CommitResult
	TxStatus *fab.TxStatusEvent
}

// EventHubProvider opens a new event hub for confirming a transaction
type EventHubProvider func(opts fab.EventOptions) (fab.EventHub, error)

// Handler for chaining transaction executions
type Handler interface {
	Handle(requestContext *RequestContext, clientContext *ClientContext)
}

// ClientContext contains the collaborators shared by the handlers of one invocation
type ClientContext struct {
	Proposal    fab.Proposal
	Interceptor ResultInterceptor
	Committer   fab.Orderer
	EventHubs   EventHubProvider
	Logger      api.Logger
}

// RequestContext contains request, opts, response parameters for handler execution
type RequestContext struct {
	Ctx             reqContext.Context
	Request         Request
	ProposalOptions fab.ProposalOptions
	CommitOptions   fab.CommitOptions
	EventOptions    fab.EventOptions
	// Query marks the request as a read-only evaluation
	Query    bool
	Response Response
	Error    error
}
