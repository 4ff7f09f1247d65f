/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txn

import (
	reqContext "context"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// CreateChaincodeInvokeProposal creates a proposal for transaction.
func CreateChaincodeInvokeProposal(txh fab.TransactionHeader, request fab.ChaincodeInvokeRequest) (*fab.TransactionProposal, error) {
	if request.ChaincodeID == "" {
		return nil, errors.New("ChaincodeID is required")
	}

	if request.Fcn == "" {
		return nil, errors.New("Fcn is required")
	}

	// Add function name to arguments
	argsArray := make([][]byte, len(request.Args)+1)
	argsArray[0] = []byte(request.Fcn)
	for i, arg := range request.Args {
		argsArray[i+1] = arg
	}

	ccis := &pb.ChaincodeInvocationSpec{ChaincodeSpec: &pb.ChaincodeSpec{
		Type: request.Lang, ChaincodeId: &pb.ChaincodeID{Name: request.ChaincodeID},
		Input: &pb.ChaincodeInput{Args: argsArray, IsInit: request.IsInit}}}

	cisBytes, err := proto.Marshal(ccis)
	if err != nil {
		return nil, errors.Wrap(err, "marshal of chaincode invocation spec failed")
	}

	ccPropPayloadBytes, err := proto.Marshal(&pb.ChaincodeProposalPayload{
		Input:        cisBytes,
		TransientMap: request.TransientMap,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal of chaincode proposal payload failed")
	}

	channelHeader, err := CreateChannelHeader(common.HeaderType_ENDORSER_TRANSACTION, ChannelHeaderOpts{
		TxnHeader:   txh,
		ChaincodeID: request.ChaincodeID,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create chaincode proposal")
	}

	header, err := createHeader(txh, channelHeader)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create chaincode proposal")
	}

	headerBytes, err := proto.Marshal(header)
	if err != nil {
		return nil, errors.Wrap(err, "marshal of proposal header failed")
	}

	return &fab.TransactionProposal{
		TxnID:    txh.TransactionID(),
		Proposal: &pb.Proposal{Header: headerBytes, Payload: ccPropPayloadBytes},
	}, nil
}

// signProposal creates a SignedProposal signed by identity.
func signProposal(identity fab.IdentityContext, proposal *pb.Proposal) (*pb.SignedProposal, error) {
	proposalBytes, err := proto.Marshal(proposal)
	if err != nil {
		return nil, errors.Wrap(err, "mashal proposal failed")
	}

	signature, err := identity.Sign(proposalBytes)
	if err != nil {
		return nil, errors.WithMessage(err, "sign failed")
	}

	return &pb.SignedProposal{ProposalBytes: proposalBytes, Signature: signature}, nil
}

// SendProposal signs proposal and sends it to every target concurrently. The
// responses are returned in target order, failed targets are reported in the
// error slice instead.
func SendProposal(reqCtx reqContext.Context, identity fab.IdentityContext, proposal *fab.TransactionProposal, targets []fab.Peer) ([]*fab.TransactionProposalResponse, []error, error) {
	if proposal == nil {
		return nil, nil, errors.New("proposal is required")
	}

	if len(targets) < 1 {
		return nil, nil, errors.New("targets is required")
	}

	for _, p := range targets {
		if p == nil {
			return nil, nil, errors.New("target is nil")
		}
	}

	targets = getTargetsWithoutDuplicates(targets)

	signedProposal, err := signProposal(identity, proposal.Proposal)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "sign proposal failed")
	}

	request := fab.ProcessProposalRequest{SignedProposal: signedProposal}

	responses := make([]*fab.TransactionProposalResponse, len(targets))
	errs := make([]error, len(targets))

	// The group has no shared context: one failed endorser must not cancel the others.
	// Every outcome is kept at its target index, the group only reports whether any failed.
	var g errgroup.Group
	for i, p := range targets {
		i, p := i, p
		g.Go(func() error {
			resp, err := p.ProcessTransactionProposal(reqCtx, request)
			if err != nil {
				errs[i] = errors.WithMessagef(err, "endorser [%s]", p.URL())
				return errs[i]
			}
			responses[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Debugf("Received error response from txn proposal processing: %s", err)
	}

	var collected []*fab.TransactionProposalResponse
	var failures []error
	for i := range targets {
		if errs[i] != nil {
			failures = append(failures, errs[i])
			continue
		}
		collected = append(collected, responses[i])
	}

	return collected, failures, nil
}

// getTargetsWithoutDuplicates returns a list of targets without duplicates
func getTargetsWithoutDuplicates(targets []fab.Peer) []fab.Peer {
	peerUrlsToTargets := map[string]fab.Peer{}
	var uniqueTargets []fab.Peer

	for _, peer := range targets {
		if _, present := peerUrlsToTargets[peer.URL()]; !present {
			uniqueTargets = append(uniqueTargets, peer)
			peerUrlsToTargets[peer.URL()] = peer
		}
	}

	if len(uniqueTargets) != len(targets) {
		logger.Warn("Duplicate target peers in configuration")
	}

	return uniqueTargets
}
