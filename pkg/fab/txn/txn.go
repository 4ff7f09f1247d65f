/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package txn enables creating, endorsing and sending transactions to Fabric peers and orderers.
package txn

import (
	"bytes"
	reqContext "context"
	"math/rand"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/multi"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/txnerr"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

var logger = logging.NewLogger("fabtxn/fab")

// TransactionRequest holds the endorsed proposal a transaction is assembled from
type TransactionRequest struct {
	Proposal          *fab.TransactionProposal
	ProposalResponses []*fab.TransactionProposalResponse
}

// Transaction is an endorsed transaction ready to be signed and broadcast
type Transaction struct {
	Proposal    *fab.TransactionProposal
	Transaction *pb.Transaction
}

// New create a transaction with proposal response, following the endorsement policy.
func New(request TransactionRequest) (*Transaction, error) {
	if len(request.ProposalResponses) == 0 {
		return nil, errors.New("at least one proposal response is necessary")
	}

	proposal := request.Proposal
	if proposal == nil || proposal.Proposal == nil {
		return nil, errors.New("proposal is nil")
	}

	// the original header
	hdr := &common.Header{}
	if err := proto.Unmarshal(proposal.Header, hdr); err != nil {
		return nil, errors.Wrap(err, "unmarshal proposal header failed")
	}

	// the original payload
	pPayl := &pb.ChaincodeProposalPayload{}
	if err := proto.Unmarshal(proposal.Payload, pPayl); err != nil {
		return nil, errors.Wrap(err, "unmarshal proposal payload failed")
	}

	responsePayload := request.ProposalResponses[0].ProposalResponse.GetPayload()
	for _, r := range request.ProposalResponses {
		if r.ProposalResponse.GetResponse().GetStatus() != 200 {
			return nil, errors.Errorf("proposal response was not successful, error code %d, msg %s", r.ProposalResponse.GetResponse().GetStatus(), r.ProposalResponse.GetResponse().GetMessage())
		}
		if !bytes.Equal(responsePayload, r.ProposalResponse.Payload) {
			return nil, errors.Errorf("proposal response payloads are not the same (%v, %v)", responsePayload, r.ProposalResponse.Payload)
		}
	}

	endorsements := make([]*pb.Endorsement, len(request.ProposalResponses))
	for n, r := range request.ProposalResponses {
		endorsements[n] = r.ProposalResponse.Endorsement
	}

	cea := &pb.ChaincodeEndorsedAction{ProposalResponsePayload: responsePayload, Endorsements: endorsements}

	// transient data never reaches the ledger
	propPayloadBytes, err := proto.Marshal(&pb.ChaincodeProposalPayload{Input: pPayl.Input})
	if err != nil {
		return nil, errors.Wrap(err, "marshal of proposal payload failed")
	}

	capBytes, err := proto.Marshal(&pb.ChaincodeActionPayload{ChaincodeProposalPayload: propPayloadBytes, Action: cea})
	if err != nil {
		return nil, errors.Wrap(err, "marshal of chaincode action payload failed")
	}

	taa := &pb.TransactionAction{Header: hdr.SignatureHeader, Payload: capBytes}

	return &Transaction{
		Transaction: &pb.Transaction{Actions: []*pb.TransactionAction{taa}},
		Proposal:    proposal,
	}, nil
}

// Send send a transaction to the chain’s orderer service (one or more orderer endpoints) for consensus and committing to the ledger.
func Send(reqCtx reqContext.Context, identity fab.IdentityContext, tx *Transaction, orderers []fab.Orderer) (*fab.CommitResult, error) {
	if len(orderers) == 0 {
		return nil, errors.New("orderers is nil")
	}
	if tx == nil {
		return nil, errors.New("transaction is nil")
	}
	if tx.Proposal == nil || tx.Proposal.Proposal == nil {
		return nil, errors.New("proposal is nil")
	}

	// the original header
	hdr := &common.Header{}
	if err := proto.Unmarshal(tx.Proposal.Header, hdr); err != nil {
		return nil, errors.Wrap(err, "unmarshal proposal header failed")
	}

	txBytes, err := proto.Marshal(tx.Transaction)
	if err != nil {
		return nil, errors.Wrap(err, "marshal of transaction failed")
	}

	envelope, err := signPayload(identity, &common.Payload{Header: hdr, Data: txBytes})
	if err != nil {
		return nil, err
	}

	return broadcastEnvelope(reqCtx, tx.Proposal.TxnID, envelope, orderers)
}

// broadcastEnvelope will send the given envelope to some orderer, picking random endpoints
// until all are exhausted
func broadcastEnvelope(reqCtx reqContext.Context, txnID fab.TransactionID, envelope *fab.SignedEnvelope, orderers []fab.Orderer) (*fab.CommitResult, error) {
	randOrderers := make([]fab.Orderer, len(orderers))
	copy(randOrderers, orderers)

	var errs error
	for _, i := range rand.Perm(len(randOrderers)) {
		result, err := sendBroadcast(reqCtx, txnID, envelope, randOrderers[i])
		if err == nil {
			return result, nil
		}
		errs = multi.Append(errs, err)
		if reqCtx.Err() != nil {
			break
		}
	}

	return nil, errs
}

func sendBroadcast(reqCtx reqContext.Context, txnID fab.TransactionID, envelope *fab.SignedEnvelope, orderer fab.Orderer) (*fab.CommitResult, error) {
	logger.Debugf("Broadcasting envelope to orderer :%s", orderer.URL())
	s, err := orderer.SendBroadcast(reqCtx, envelope)
	if err != nil {
		logger.Debugf("Receive Error Response from orderer :%s", err)
		return nil, &txnerr.CommitError{Committer: orderer.URL(), Err: err}
	}

	code := common.Status_SUCCESS
	if s != nil {
		code = *s
	}
	if code != common.Status_SUCCESS {
		return nil, &txnerr.CommitError{Committer: orderer.URL(), Code: code}
	}

	logger.Debugf("Receive Success Response from orderer")
	return &fab.CommitResult{TxnID: txnID, Committer: orderer.URL(), Status: code}, nil
}
