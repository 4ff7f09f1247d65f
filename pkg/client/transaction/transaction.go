/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package transaction drives chaincode transactions on a channel: a proposal
// is evaluated or endorsed by a fixed set of endorsers, an endorsed
// transaction is handed to a committer and its commitment is confirmed on
// the channel's block stream.
//
// Basic Flow:
// 1) Create a Transaction with New
// 2) Bind it to a chaincode with Build
// 3) Evaluate or Submit requests
package transaction

import (
	reqContext "context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/client/transaction/invoke"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/api"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/metrics"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/metrics/disabled"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/txn"
)

// InitFcn is the function name reserved for the chaincode initializer
const InitFcn = "init"

var defaultLogger = logging.NewLogger("fabtxn/transaction")

// Request contains the parameters of a chaincode invocation
type Request = invoke.Request

// EventHubProvider opens the event hub a submitted transaction is confirmed on
type EventHubProvider = invoke.EventHubProvider

// Transaction coordinates proposals for one identity on one channel
type Transaction struct {
	endorsers   []fab.Peer
	identity    fab.IdentityContext
	channelID   string
	eventHubs   EventHubProvider
	logger      api.Logger
	metrics     *Metrics
	newProposal ProposalFactory

	mutex        sync.RWMutex
	proposal     fab.Proposal
	interceptor  invoke.ResultInterceptor
	proposalOpts fab.ProposalOptions
	commitOpts   fab.CommitOptions
	eventOpts    fab.EventOptions
}

// New returns a Transaction for identity on channelID, endorsed by endorsers.
// Build must be called before requests can be evaluated or submitted.
func New(endorsers []fab.Peer, identity fab.IdentityContext, channelID string, eventHubs EventHubProvider, opts ...Option) (*Transaction, error) {
	if len(endorsers) == 0 {
		return nil, status.New(status.ClientStatus, status.NoPeersFound.ToInt32(), "at least one endorser is required", nil)
	}
	if identity == nil {
		return nil, errors.New("identity is required")
	}
	if channelID == "" {
		return nil, errors.New("channel ID is required")
	}
	if eventHubs == nil {
		return nil, errors.New("event hub provider is required")
	}

	t := &Transaction{
		endorsers: endorsers,
		identity:  identity,
		channelID: channelID,
		eventHubs: eventHubs,
		logger:    defaultLogger,
		newProposal: func(identity fab.IdentityContext, channelID, chaincodeID string, endorsers []fab.Peer) (fab.Proposal, error) {
			return txn.NewProposal(identity, channelID, chaincodeID, endorsers)
		},
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, errors.WithMessage(err, "option failed")
		}
	}

	if t.metrics == nil {
		t.metrics = NewMetrics(&disabled.Provider{})
	}

	return t, nil
}

// SetProposalOptions replaces the proposal options
func (t *Transaction) SetProposalOptions(opts fab.ProposalOptions) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.proposalOpts = opts
}

// SetCommitOptions replaces the commit options
func (t *Transaction) SetCommitOptions(opts fab.CommitOptions) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.commitOpts = opts
}

// SetEventOptions replaces the event options
func (t *Transaction) SetEventOptions(opts fab.EventOptions) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.eventOpts = opts
}

// Build binds a new proposal for chaincodeID, discarding the previous one.
// A non-nil interceptor replaces the installed one, otherwise the installed
// interceptor is kept.
func (t *Transaction) Build(chaincodeID string, interceptor ...invoke.ResultInterceptor) error {
	proposal, err := t.newProposal(t.identity, t.channelID, chaincodeID, t.endorsers)
	if err != nil {
		return errors.WithMessage(err, "creating proposal failed")
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.proposal = proposal
	if len(interceptor) > 0 && interceptor[0] != nil {
		t.interceptor = interceptor[0]
	}

	t.logger.Debugf("built proposal for chaincode [%s] on channel [%s] with %d endorsers", chaincodeID, t.channelID, len(t.endorsers))
	return nil
}

// Evaluate sends request as a query to the endorsers and returns the
// intercepted endorsement result. Nothing is committed.
func (t *Transaction) Evaluate(ctx reqContext.Context, request Request) (*fab.EndorsementResult, error) {
	requestContext, clientContext, err := t.prepare(ctx, request, nil)
	if err != nil {
		return nil, err
	}

	labels := []string{"chaincode", clientContext.Proposal.ChaincodeID(), "fcn", request.Fcn}
	t.metrics.EvaluationsReceived.With(labels...).Add(1)
	startTime := time.Now()

	requestContext.Query = true
	clientContext.Proposal.AsQuery()
	invoke.NewEvaluateHandler().Handle(requestContext, clientContext)

	t.observe(labels, startTime, requestContext.Error, t.metrics.EvaluationsFailed, t.metrics.EvaluationTimeouts, t.metrics.EvaluationDuration)
	if requestContext.Error != nil {
		return nil, requestContext.Error
	}
	return requestContext.Response.Result, nil
}

// Submit endorses request, commits the endorsed transaction to committer and
// waits until it is confirmed on a new event hub. The event hub is always
// disconnected before Submit returns.
func (t *Transaction) Submit(ctx reqContext.Context, request Request, committer fab.Orderer) (*fab.EndorsementResult, error) {
	if request.IsInit {
		request.Fcn = InitFcn
	}

	requestContext, clientContext, err := t.prepare(ctx, request, committer)
	if err != nil {
		return nil, err
	}

	labels := []string{"chaincode", clientContext.Proposal.ChaincodeID(), "fcn", request.Fcn}
	t.metrics.SubmissionsReceived.With(labels...).Add(1)
	startTime := time.Now()

	clientContext.Proposal.AsEndorsement()
	invoke.NewSubmitHandler().Handle(requestContext, clientContext)

	t.observe(labels, startTime, requestContext.Error, t.metrics.SubmissionsFailed, t.metrics.SubmissionTimeouts, t.metrics.SubmissionDuration)
	if requestContext.Error != nil {
		return nil, requestContext.Error
	}
	return requestContext.Response.Result, nil
}

func (t *Transaction) prepare(ctx reqContext.Context, request Request, committer fab.Orderer) (*invoke.RequestContext, *invoke.ClientContext, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if t.proposal == nil {
		return nil, nil, errors.New("transaction is not built, call Build first")
	}

	requestContext := &invoke.RequestContext{
		Ctx:             ctx,
		Request:         request,
		ProposalOptions: t.proposalOpts,
		CommitOptions:   t.commitOpts,
		EventOptions:    t.eventOpts,
	}
	clientContext := &invoke.ClientContext{
		Proposal:    t.proposal,
		Interceptor: t.interceptor,
		Committer:   committer,
		EventHubs:   t.eventHubs,
		Logger:      t.logger,
	}
	return requestContext, clientContext, nil
}

func (t *Transaction) observe(labels []string, startTime time.Time, err error, failed, timeouts metrics.Counter, duration metrics.Histogram) {
	if err == nil {
		duration.With(labels...).Observe(time.Since(startTime).Seconds())
		return
	}

	t.logger.Debugf("request failed: %s", err)
	if s, ok := status.FromError(err); ok {
		if s.Group == status.ClientStatus && s.Code == status.Timeout.ToInt32() {
			timeouts.With(labels...).Add(1)
			return
		}
		failed.With(append(labels, "fail", fmt.Sprintf("Error - Group:%s - Code:%d", s.Group, s.Code))...).Add(1)
		return
	}
	failed.With(append(labels, "fail", "Error - Generic")...).Add(1)
}
