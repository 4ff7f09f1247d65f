/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package invoke

import (
	reqContext "context"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/events/blockstream"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/txn"
)

//EndorsementHandler for sending the proposal to the endorsers
type EndorsementHandler struct {
	next Handler
}

//Handle for endorsing transactions
func (e *EndorsementHandler) Handle(requestContext *RequestContext, clientContext *ClientContext) {
	transientMap, err := txn.TransformTransientMap(requestContext.Request.TransientMap)
	if err != nil {
		requestContext.Error = errors.WithMessage(err, "invalid transient data")
		return
	}

	proposal := clientContext.Proposal
	request := fab.ChaincodeInvokeRequest{
		ChaincodeID:  proposal.ChaincodeID(),
		Fcn:          requestContext.Request.Fcn,
		Args:         requestContext.Request.Args,
		TransientMap: transientMap,
		IsInit:       requestContext.Request.IsInit,
		Query:        requestContext.Query,
	}

	result, err := proposal.Send(requestContext.Ctx, request, requestContext.ProposalOptions)
	if err != nil {
		requestContext.Error = err
		return
	}
	requestContext.Response.Result = result

	clientContext.Logger.Debugf("collected %d endorsements and %d errors for %s:%s",
		len(result.Responses), len(result.Errors), request.ChaincodeID, request.Fcn)

	//Delegate to next step if any
	if e.next != nil {
		e.next.Handle(requestContext, clientContext)
	}
}

//InterceptHandler applies the installed result interceptor
type InterceptHandler struct {
	next Handler
}

//Handle intercepts the endorsement result
func (h *InterceptHandler) Handle(requestContext *RequestContext, clientContext *ClientContext) {
	interceptor := clientContext.Interceptor
	if interceptor == nil {
		interceptor = Identity()
	}

	result, err := interceptor.Intercept(requestContext.Response.Result)
	if err != nil {
		requestContext.Error = err
		return
	}
	requestContext.Response.Result = result

	//Delegate to next step if any
	if h.next != nil {
		h.next.Handle(requestContext, clientContext)
	}
}

//CommitHandler for handing the endorsed transaction to the committer
type CommitHandler struct {
	next Handler
}

//Handle commits the transaction
func (c *CommitHandler) Handle(requestContext *RequestContext, clientContext *ClientContext) {
	if clientContext.Committer == nil {
		requestContext.Error = errors.New("committer is required")
		return
	}

	commit, err := clientContext.Proposal.Commit(requestContext.Ctx, requestContext.Response.Result,
		[]fab.Orderer{clientContext.Committer}, requestContext.CommitOptions)
	if err != nil {
		requestContext.Error = err
		return
	}
	requestContext.Response.Commit = commit

	clientContext.Logger.Infof("transaction %s accepted by %s with status %s", commit.TxnID, commit.Committer, commit.Status)

	//Delegate to next step if any
	if c.next != nil {
		c.next.Handle(requestContext, clientContext)
	}
}

//ConfirmationHandler waits for the committed transaction on a new event hub
type ConfirmationHandler struct {
	next Handler
}

//Handle waits for the transaction to appear in a block
func (h *ConfirmationHandler) Handle(requestContext *RequestContext, clientContext *ClientContext) {
	txnID := requestContext.Response.Result.TxnID()
	if requestContext.Response.Commit != nil && requestContext.Response.Commit.TxnID != fab.EmptyTransactionID {
		txnID = requestContext.Response.Commit.TxnID
	}

	if clientContext.EventHubs == nil {
		requestContext.Error = errors.New("event hub provider is required")
		return
	}

	hub, err := clientContext.EventHubs(requestContext.EventOptions)
	if err != nil {
		requestContext.Error = errors.WithMessage(err, "creating event hub failed")
		return
	}
	defer hub.Disconnect()

	ctx := requestContext.Ctx
	if requestContext.EventOptions.Timeout > 0 {
		var cancel reqContext.CancelFunc
		ctx, cancel = reqContext.WithTimeout(ctx, requestContext.EventOptions.Timeout)
		defer cancel()
	}

	txStatus, err := blockstream.WaitForTx(ctx, hub, clientContext.Proposal.IdentityContext(), string(txnID),
		blockstream.WithLogger(clientContext.Logger))
	if err != nil {
		requestContext.Error = err
		return
	}
	requestContext.Response.TxStatus = txStatus

	clientContext.Logger.Infof("transaction %s committed in block %d", txStatus.TxID, txStatus.BlockNumber)

	//Delegate to next step if any
	if h.next != nil {
		h.next.Handle(requestContext, clientContext)
	}
}

//NewEvaluateHandler returns a handler chain of EndorsementHandler and InterceptHandler
func NewEvaluateHandler(next ...Handler) Handler {
	return NewEndorsementHandler(
		NewInterceptHandler(next...),
	)
}

//NewSubmitHandler returns a handler chain of EndorsementHandler, InterceptHandler, CommitHandler and ConfirmationHandler
func NewSubmitHandler(next ...Handler) Handler {
	return NewEndorsementHandler(
		NewInterceptHandler(
			NewCommitHandler(
				NewConfirmationHandler(next...),
			),
		),
	)
}

//NewEndorsementHandler returns a handler that endorses a transaction proposal
func NewEndorsementHandler(next ...Handler) *EndorsementHandler {
	return &EndorsementHandler{next: getNext(next)}
}

//NewInterceptHandler returns a handler that applies the result interceptor
func NewInterceptHandler(next ...Handler) *InterceptHandler {
	return &InterceptHandler{next: getNext(next)}
}

//NewCommitHandler returns a handler that commits transaction proposal responses
func NewCommitHandler(next ...Handler) *CommitHandler {
	return &CommitHandler{next: getNext(next)}
}

//NewConfirmationHandler returns a handler that waits for the transaction to be committed
func NewConfirmationHandler(next ...Handler) *ConfirmationHandler {
	return &ConfirmationHandler{next: getNext(next)}
}

func getNext(next []Handler) Handler {
	if len(next) > 0 {
		return next[0]
	}
	return nil
}
