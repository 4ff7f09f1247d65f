/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package peer

import (
	reqContext "context"
	"strconv"
	"strings"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
	grpcCodes "google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	pb "github.com/hyperledger/fabric-protos-go/peer"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/comm"
)

// peerEndorser enables access to a GRPC-based endorser for running transaction proposal simulations
type peerEndorser struct {
	target   string
	connOpts []options.Opt
}

func newPeerEndorser(target string, connOpts []options.Opt) *peerEndorser {
	return &peerEndorser{target: target, connOpts: connOpts}
}

// ProcessTransactionProposal sends the transaction proposal to a peer and returns the response.
// A response with a non-success status is returned as is, only transport failures are errors.
func (p *peerEndorser) ProcessTransactionProposal(ctx reqContext.Context, request fab.ProcessProposalRequest) (*fab.TransactionProposalResponse, error) {
	logger.Debugf("Processing proposal using endorser: %s", p.target)

	proposalResponse, err := p.sendProposal(ctx, request)
	if err != nil {
		return nil, errors.WithMessagef(err, "Transaction processing for endorser [%s]", p.target)
	}

	chaincodeStatus, err := getChaincodeResponseStatus(proposalResponse)
	if err != nil {
		return nil, errors.WithMessage(err, "chaincode response status parsing failed")
	}

	return &fab.TransactionProposalResponse{
		ProposalResponse: proposalResponse,
		Endorser:         p.target,
		ChaincodeStatus:  chaincodeStatus,
		Status:           proposalResponse.GetResponse().GetStatus(),
	}, nil
}

func (p *peerEndorser) sendProposal(ctx reqContext.Context, proposal fab.ProcessProposalRequest) (*pb.ProposalResponse, error) {
	conn, err := comm.Dial(ctx, p.target, p.connOpts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Debugf("closing connection to %s failed: %s", p.target, err)
		}
	}()

	resp, err := pb.NewEndorserClient(conn).ProcessProposal(ctx, proposal.SignedProposal)
	if err != nil {
		logger.Errorf("process proposal failed [%s]", err)
		rpcStatus, ok := grpcstatus.FromError(err)
		if !ok {
			return nil, err
		}
		if code, message, extractErr := extractChaincodeError(rpcStatus); extractErr == nil {
			return nil, status.New(status.ChaincodeStatus, int32(code), message, []interface{}{p.target})
		}
		return nil, status.NewFromGRPCStatus(rpcStatus)
	}
	if resp.GetResponse() == nil {
		return nil, status.New(status.EndorserClientStatus, status.Unknown.ToInt32(), "proposal response carries no response", []interface{}{p.target})
	}

	return resp, nil
}

// extractChaincodeError parses chaincode errors reported by older peers as
// "chaincode error (status: 500, message: ...)" in an Unknown gRPC status
func extractChaincodeError(rpcStatus *grpcstatus.Status) (int, string, error) {
	var code int
	if rpcStatus.Code() != grpcCodes.Unknown || rpcStatus.Message() == "" {
		return 0, "", errors.New("Unable to parse GRPC status message")
	}
	msg := rpcStatus.Message()
	statusLength := len("status:")
	if i := strings.Index(msg, "status:"); i >= 0 {
		j := strings.Index(msg[i:], ",")
		if j > statusLength {
			c, err := strconv.Atoi(strings.TrimSpace(msg[i+statusLength : i+j]))
			if err != nil {
				return 0, "", errors.Errorf("Non-number returned as GRPC status [%s]", strings.TrimSpace(msg[i+statusLength:i+j]))
			}
			code = c
		}
	}
	message := checkMessage(msg)
	if code != 0 && message != "" {
		return code, message, nil
	}
	return code, message, errors.Errorf("Unable to parse GRPC Status Message Code: %v Message: %v", code, message)
}

func checkMessage(msg string) string {
	messageLength := len("message:")
	if i := strings.Index(msg, "message:"); i >= 0 {
		j := strings.LastIndex(msg[i:], ")")
		if j > messageLength {
			return strings.TrimSpace(msg[i+messageLength : i+j])
		}
	}
	return ""
}

// getChaincodeResponseStatus gets the actual response status from response.Payload.extension.Response.status, as fabric always returns actual 200
func getChaincodeResponseStatus(response *pb.ProposalResponse) (int32, error) {
	if response.Payload != nil {
		payload := &pb.ProposalResponsePayload{}
		if err := proto.Unmarshal(response.Payload, payload); err != nil {
			return 0, errors.Wrap(err, "unmarshal of proposal response payload failed")
		}

		extension := &pb.ChaincodeAction{}
		if err := proto.Unmarshal(payload.Extension, extension); err != nil {
			return 0, errors.Wrap(err, "unmarshal of chaincode action failed")
		}

		if extension.Response != nil {
			return extension.Response.Status, nil
		}
	}
	return response.Response.Status, nil
}
