/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package peer

import (
	reqContext "context"
	"testing"
	"time"

	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpcCodes "google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/comm"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/mocks"
)

const testPeerURL = "grpc://peer0.org1.example.com:7051"

func startEndorser(t *testing.T, srv *mocks.MockEndorserServer) *Peer {
	srv.Start()
	t.Cleanup(srv.Stop)

	peer, err := New(testPeerURL, WithMSPID("Org1MSP"), WithConnectionOpts(comm.WithDialer(srv.Dialer()), comm.WithConnectTimeout(5*time.Second)))
	require.NoError(t, err)
	return peer
}

func newRequest() fab.ProcessProposalRequest {
	return fab.ProcessProposalRequest{SignedProposal: &pb.SignedProposal{ProposalBytes: []byte("proposal"), Signature: []byte("signature")}}
}

func TestNewPeer(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	peer, err := New(testPeerURL, WithMSPID("Org1MSP"), WithServerName("peer0"), WithInsecure(),
		FromProperties(map[string]interface{}{"grpc.fail-fast": false}))
	require.NoError(t, err)
	assert.Equal(t, testPeerURL, peer.URL())
	assert.Equal(t, "Org1MSP", peer.MSPID())
	assert.Equal(t, testPeerURL, peer.String())

	_, err = New(testPeerURL, WithTLSCertPEM([]byte("not a certificate")))
	assert.Error(t, err)
}

func TestPeerProcessor(t *testing.T) {
	processor := mocks.NewMockPeer("custom")
	peer, err := New(testPeerURL, WithPeerProcessor(processor))
	require.NoError(t, err)

	resp, err := peer.ProcessTransactionProposal(reqContext.Background(), newRequest())
	require.NoError(t, err)
	assert.EqualValues(t, 200, resp.Status)
	assert.Equal(t, 1, processor.Calls())
}

func TestProcessProposal(t *testing.T) {
	srv := &mocks.MockEndorserServer{}
	peer := startEndorser(t, srv)

	resp, err := peer.ProcessTransactionProposal(reqContext.Background(), newRequest())
	require.NoError(t, err)
	assert.Equal(t, testPeerURL, resp.Endorser)
	assert.EqualValues(t, 200, resp.Status)
	assert.EqualValues(t, 200, resp.ChaincodeStatus)
	assert.Equal(t, []byte("signature"), resp.ProposalResponse.Endorsement.Signature)

	require.Len(t, srv.Proposals(), 1)
	assert.Equal(t, []byte("proposal"), srv.Proposals()[0].ProposalBytes)
}

func TestProcessProposalRejected(t *testing.T) {
	srv := &mocks.MockEndorserServer{Status: 500, Message: "chaincode failed"}
	peer := startEndorser(t, srv)

	resp, err := peer.ProcessTransactionProposal(reqContext.Background(), newRequest())
	require.NoError(t, err, "a rejection is a response, not an error")
	assert.EqualValues(t, 500, resp.Status)
	assert.Equal(t, "chaincode failed", resp.ProposalResponse.Response.Message)
}

func TestProcessProposalChaincodeError(t *testing.T) {
	srv := &mocks.MockEndorserServer{ProposalError: errors.New("chaincode error (status: 400, message: bad args)")}
	peer := startEndorser(t, srv)

	_, err := peer.ProcessTransactionProposal(reqContext.Background(), newRequest())
	require.Error(t, err)

	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.ChaincodeStatus, s.Group)
	assert.EqualValues(t, 400, s.Code)
	assert.Equal(t, "bad args", s.Message)
}

func TestProcessProposalTransportError(t *testing.T) {
	srv := &mocks.MockEndorserServer{ProposalError: grpcstatus.Error(grpcCodes.Unavailable, "busy")}
	peer := startEndorser(t, srv)

	_, err := peer.ProcessTransactionProposal(reqContext.Background(), newRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), testPeerURL)

	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.GRPCTransportStatus, s.Group)
	assert.EqualValues(t, grpcCodes.Unavailable, s.Code)
}

func TestExtractChaincodeError(t *testing.T) {
	code, message, err := extractChaincodeError(grpcstatus.New(grpcCodes.Unknown, "chaincode error (status: 500, message: failed)"))
	require.NoError(t, err)
	assert.Equal(t, 500, code)
	assert.Equal(t, "failed", message)

	_, _, err = extractChaincodeError(grpcstatus.New(grpcCodes.Internal, "chaincode error (status: 500, message: failed)"))
	assert.Error(t, err)

	_, _, err = extractChaincodeError(grpcstatus.New(grpcCodes.Unknown, "something else"))
	assert.Error(t, err)
}

func TestGetChaincodeResponseStatus(t *testing.T) {
	s, err := getChaincodeResponseStatus(&pb.ProposalResponse{Response: &pb.Response{Status: 200}})
	require.NoError(t, err)
	assert.EqualValues(t, 200, s)

	_, err = getChaincodeResponseStatus(&pb.ProposalResponse{Response: &pb.Response{Status: 200}, Payload: []byte("garbage")})
	assert.Error(t, err)
}
