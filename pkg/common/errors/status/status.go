/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package status attaches a group and a code to errors raised while driving a
// transaction through endorsement, ordering and confirmation. Callers use the
// pair to decide whether a failure is transient (see package retry).
package status

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/multi"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	grpcstatus "google.golang.org/grpc/status"
)

// Status describes an unsuccessful operation.
type Status struct {
	// Group status group
	Group Group
	// Code status code, interpreted according to Group
	Code int32
	// Message status message
	Message string
	// Details any additional status details
	Details []interface{}
}

// Provider is implemented by typed errors that can describe themselves as a Status.
type Provider interface {
	Status() *Status
}

// Group identifies the component that produced a status code
type Group int32

const (
	// UnknownStatus unknown status group
	UnknownStatus Group = iota
	// GRPCTransportStatus is the status of a gRPC call
	GRPCTransportStatus
	// EndorserServerStatus status returned by an endorsing peer
	EndorserServerStatus
	// EventServerStatus status returned by the deliver service, codes are transaction validation codes
	EventServerStatus
	// OrdererServerStatus status returned by the ordering service
	OrdererServerStatus
	// EndorserClientStatus status inferred while collecting or validating endorsements
	EndorserClientStatus
	// OrdererClientStatus status inferred while broadcasting
	OrdererClientStatus
	// ClientStatus is a generic client status
	ClientStatus
	// ChaincodeStatus codes returned by chaincode
	ChaincodeStatus
	// TestStatus is used by tests to create retry codes
	TestStatus
)

// GroupName maps the groups in this packages to human-readable strings
var GroupName = map[int32]string{
	0: "Unknown",
	1: "gRPC Transport Status",
	2: "Endorser Server Status",
	3: "Event Server Status",
	4: "Orderer Server Status",
	5: "Endorser Client Status",
	6: "Orderer Client Status",
	7: "Client Status",
	8: "Chaincode status",
	9: "Test status",
}

func (g Group) String() string {
	if s, ok := GroupName[int32(g)]; ok {
		return s
	}
	return GroupName[int32(UnknownStatus)]
}

// FromError returns a Status representing err if available,
// otherwise it returns nil, false.
func FromError(err error) (s *Status, ok bool) {
	if err == nil {
		return &Status{Code: int32(OK)}, true
	}
	unwrapped := errors.Cause(err)
	switch e := unwrapped.(type) {
	case *Status:
		return e, true
	case Provider:
		return e.Status(), true
	case multi.Errors:
		var details []interface{}
		for _, err := range e {
			details = append(details, err)
		}
		return New(ClientStatus, MultipleErrors.ToInt32(), e.Error(), details), true
	}
	if gs, ok := grpcstatus.FromError(unwrapped); ok {
		return NewFromGRPCStatus(gs), true
	}
	return nil, false
}

func (s *Status) Error() string {
	return fmt.Sprintf("%s Code: (%d) %s. Description: %s", s.Group.String(), s.Code, s.codeString(), s.Message)
}

func (s *Status) codeString() string {
	switch s.Group {
	case GRPCTransportStatus:
		return ToGRPCStatusCode(s.Code).String()
	case EndorserServerStatus, OrdererServerStatus:
		return ToFabricCommonStatusCode(s.Code).String()
	case EventServerStatus:
		return ToTransactionValidationCode(s.Code).String()
	case EndorserClientStatus, OrdererClientStatus, ClientStatus, TestStatus:
		return ToClientStatusCode(s.Code).String()
	default:
		return Unknown.String()
	}
}

// New returns a Status with the given parameters
func New(group Group, code int32, msg string, details []interface{}) *Status {
	return &Status{Group: group, Code: code, Message: msg, Details: details}
}

// NewFromProposalResponse creates a status from a rejected proposal response
func NewFromProposalResponse(res *pb.ProposalResponse, endorser string) *Status {
	if res == nil || res.Response == nil {
		return nil
	}
	return New(EndorserServerStatus, res.Response.Status, res.Response.Message,
		[]interface{}{endorser, res.Response.Payload})
}

// NewFromGRPCStatus new Status from gRPC status response
func NewFromGRPCStatus(s *grpcstatus.Status) *Status {
	if s == nil {
		return nil
	}
	details := make([]interface{}, len(s.Proto().Details))
	for i, detail := range s.Proto().Details {
		details[i] = detail
	}

	return &Status{Group: GRPCTransportStatus, Code: s.Proto().Code,
		Message: s.Message(), Details: details}
}
