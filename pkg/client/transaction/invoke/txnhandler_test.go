/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package invoke

import (
	reqContext "context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/txnerr"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/test/mockfab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/mocks"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

const testTimeOut = 5 * time.Second

var testLogger = logging.NewLogger("fabtxn/test")

func prepareRequestContext(t *testing.T, request Request) *RequestContext {
	ctx, cancel := reqContext.WithTimeout(reqContext.Background(), testTimeOut)
	t.Cleanup(cancel)
	return &RequestContext{Ctx: ctx, Request: request}
}

func endorsed(txnID fab.TransactionID, codes ...int32) *fab.EndorsementResult {
	result := &fab.EndorsementResult{Proposal: &fab.TransactionProposal{TxnID: txnID}}
	for i, code := range codes {
		result.Responses = append(result.Responses, response(fmt.Sprintf("peer%d", i), code))
	}
	return result
}

func noEventHubs(t *testing.T) EventHubProvider {
	return func(opts fab.EventOptions) (fab.EventHub, error) {
		t.Fatal("no event hub expected")
		return nil, nil
	}
}

func TestEvaluateHandler(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	result := endorsed("txn1", 200, 200)
	proposal := mockfab.NewMockProposal(mockCtrl)
	proposal.EXPECT().ChaincodeID().Return("mycc")
	proposal.EXPECT().Send(gomock.Any(), fab.ChaincodeInvokeRequest{
		ChaincodeID:  "mycc",
		Fcn:          "query",
		Args:         [][]byte{[]byte("a")},
		TransientMap: map[string][]byte{"key": []byte("secret")},
		Query:        true,
	}, fab.ProposalOptions{Timeout: time.Second}).Return(result, nil)

	requestContext := prepareRequestContext(t, Request{
		Fcn:          "query",
		Args:         [][]byte{[]byte("a")},
		TransientMap: map[string]interface{}{"key": "secret"},
	})
	requestContext.ProposalOptions = fab.ProposalOptions{Timeout: time.Second}
	requestContext.Query = true
	clientContext := &ClientContext{Proposal: proposal, Interceptor: EndorseAllInterceptor(), EventHubs: noEventHubs(t), Logger: testLogger}

	NewEvaluateHandler().Handle(requestContext, clientContext)
	require.NoError(t, requestContext.Error)
	assert.Same(t, result, requestContext.Response.Result)
	assert.Nil(t, requestContext.Response.Commit)
}

func TestEvaluateHandlerSendError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	sendErr := errors.New("no endorsers reachable")
	proposal := mockfab.NewMockProposal(mockCtrl)
	proposal.EXPECT().ChaincodeID().Return("mycc")
	proposal.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, sendErr)

	requestContext := prepareRequestContext(t, Request{Fcn: "query"})
	clientContext := &ClientContext{Proposal: proposal, Logger: testLogger}

	NewEvaluateHandler().Handle(requestContext, clientContext)
	assert.Equal(t, sendErr, requestContext.Error)
}

func TestEvaluateHandlerInvalidTransient(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	proposal := mockfab.NewMockProposal(mockCtrl)

	requestContext := prepareRequestContext(t, Request{Fcn: "query", TransientMap: map[string]interface{}{"": "x"}})
	NewEvaluateHandler().Handle(requestContext, &ClientContext{Proposal: proposal, Logger: testLogger})
	require.Error(t, requestContext.Error)
	assert.Contains(t, requestContext.Error.Error(), "invalid transient data")
}

func TestSubmitHandler(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	identity := mocks.NewMockIdentity()
	orderer := mocks.NewMockOrderer("grpc://orderer.example.com:7050")
	result := endorsed("txn1", 200)

	proposal := mockfab.NewMockProposal(mockCtrl)
	proposal.EXPECT().ChaincodeID().Return("mycc")
	proposal.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(result, nil)
	proposal.EXPECT().Commit(gomock.Any(), result, []fab.Orderer{orderer}, fab.CommitOptions{}).Return(
		&fab.CommitResult{TxnID: "txn1", Committer: orderer.URL(), Status: common.Status_SUCCESS}, nil)
	proposal.EXPECT().IdentityContext().Return(identity)

	hub := mocks.NewMockEventHub(10)
	hub.Events <- mocks.NewMockBlock(7, mocks.TxInfo{TxID: "txn1", Code: pb.TxValidationCode_VALID})

	var eventOpts fab.EventOptions
	clientContext := &ClientContext{
		Proposal:    proposal,
		Interceptor: EndorseAllInterceptor(),
		Committer:   orderer,
		EventHubs: func(opts fab.EventOptions) (fab.EventHub, error) {
			eventOpts = opts
			return hub, nil
		},
		Logger: testLogger,
	}

	requestContext := prepareRequestContext(t, Request{Fcn: "invoke"})
	requestContext.EventOptions = fab.EventOptions{Timeout: time.Second, Target: "peer0"}

	NewSubmitHandler().Handle(requestContext, clientContext)
	require.NoError(t, requestContext.Error)
	assert.Same(t, result, requestContext.Response.Result)
	assert.Equal(t, "txn1", requestContext.Response.TxStatus.TxID)
	assert.EqualValues(t, 7, requestContext.Response.TxStatus.BlockNumber)
	assert.Equal(t, "peer0", eventOpts.Target)

	scopeIdentity, seek := hub.Scope()
	assert.Equal(t, identity, scopeIdentity)
	assert.True(t, seek.Newest)
	assert.Equal(t, []string{"build", "register", "connect", "disconnect"}, hub.Calls())
}

func TestSubmitHandlerInterceptorAbortsCommit(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	proposal := mockfab.NewMockProposal(mockCtrl)
	proposal.EXPECT().ChaincodeID().Return("mycc")
	proposal.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(endorsed("txn1", 200, 500), nil)

	clientContext := &ClientContext{
		Proposal:    proposal,
		Interceptor: EndorseAllInterceptor(),
		Committer:   mocks.NewMockOrderer("grpc://orderer.example.com:7050"),
		EventHubs:   noEventHubs(t),
		Logger:      testLogger,
	}

	requestContext := prepareRequestContext(t, Request{Fcn: "invoke"})
	NewSubmitHandler().Handle(requestContext, clientContext)
	assert.IsType(t, &txnerr.EndorsementError{}, requestContext.Error)
	assert.Nil(t, requestContext.Response.Commit)
}

func TestSubmitHandlerCommitError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	commitErr := &txnerr.CommitError{Committer: "orderer", Code: common.Status_SERVICE_UNAVAILABLE}
	proposal := mockfab.NewMockProposal(mockCtrl)
	proposal.EXPECT().ChaincodeID().Return("mycc")
	proposal.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(endorsed("txn1", 200), nil)
	proposal.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, commitErr)

	clientContext := &ClientContext{
		Proposal:  proposal,
		Committer: mocks.NewMockOrderer("grpc://orderer.example.com:7050"),
		EventHubs: noEventHubs(t),
		Logger:    testLogger,
	}

	requestContext := prepareRequestContext(t, Request{Fcn: "invoke"})
	NewSubmitHandler().Handle(requestContext, clientContext)
	assert.Equal(t, commitErr, requestContext.Error)
}

func TestSubmitHandlerNoCommitter(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	proposal := mockfab.NewMockProposal(mockCtrl)
	proposal.EXPECT().ChaincodeID().Return("mycc")
	proposal.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(endorsed("txn1", 200), nil)

	requestContext := prepareRequestContext(t, Request{Fcn: "invoke"})
	NewSubmitHandler().Handle(requestContext, &ClientContext{Proposal: proposal, Logger: testLogger})
	assert.EqualError(t, requestContext.Error, "committer is required")
}

func TestConfirmationHandlerInvalidated(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	proposal := mockfab.NewMockProposal(mockCtrl)
	proposal.EXPECT().IdentityContext().Return(mocks.NewMockIdentity())

	hub := mocks.NewMockEventHub(10)
	hub.Events <- mocks.NewMockBlock(7, mocks.TxInfo{TxID: "txn1", Code: pb.TxValidationCode_MVCC_READ_CONFLICT})

	requestContext := prepareRequestContext(t, Request{Fcn: "invoke"})
	requestContext.Response.Result = endorsed("txn1", 200)
	clientContext := &ClientContext{
		Proposal:  proposal,
		EventHubs: func(fab.EventOptions) (fab.EventHub, error) { return hub, nil },
		Logger:    testLogger,
	}

	NewConfirmationHandler().Handle(requestContext, clientContext)
	confErr, ok := errors.Cause(requestContext.Error).(*txnerr.ConfirmationError)
	require.True(t, ok)
	assert.Equal(t, pb.TxValidationCode_MVCC_READ_CONFLICT, confErr.Code)

	calls := hub.Calls()
	assert.Equal(t, "disconnect", calls[len(calls)-1])
}

func TestConfirmationHandlerTimeout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	proposal := mockfab.NewMockProposal(mockCtrl)
	proposal.EXPECT().IdentityContext().Return(mocks.NewMockIdentity())

	hub := mocks.NewMockEventHub(10)

	requestContext := prepareRequestContext(t, Request{Fcn: "invoke"})
	requestContext.Response.Result = endorsed("txn1", 200)
	requestContext.EventOptions = fab.EventOptions{Timeout: 50 * time.Millisecond}
	clientContext := &ClientContext{
		Proposal:  proposal,
		EventHubs: func(fab.EventOptions) (fab.EventHub, error) { return hub, nil },
		Logger:    testLogger,
	}

	NewConfirmationHandler().Handle(requestContext, clientContext)
	require.Error(t, requestContext.Error)

	s, ok := status.FromError(requestContext.Error)
	require.True(t, ok)
	assert.Equal(t, status.ClientStatus, s.Group)
	assert.EqualValues(t, status.Timeout, s.Code)
	assert.Contains(t, hub.Calls(), "disconnect")
}

func TestConfirmationHandlerEventHubError(t *testing.T) {
	requestContext := prepareRequestContext(t, Request{Fcn: "invoke"})
	requestContext.Response.Result = endorsed("txn1", 200)
	clientContext := &ClientContext{
		EventHubs: func(fab.EventOptions) (fab.EventHub, error) { return nil, errors.New("no event source") },
		Logger:    testLogger,
	}

	NewConfirmationHandler().Handle(requestContext, clientContext)
	require.Error(t, requestContext.Error)
	assert.Contains(t, requestContext.Error.Error(), "no event source")
}
