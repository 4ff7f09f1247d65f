/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package status

import (
	"strconv"

	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	grpcCodes "google.golang.org/grpc/codes"
)

// Code represents a client status code
type Code uint32

const (
	// OK is returned on success.
	OK Code = 0

	// Unknown represents status codes that are uncategorized
	Unknown Code = 1

	// ConnectionFailed is returned when a network connection attempt fails
	ConnectionFailed Code = 2

	// EndorsementRejected is returned when at least one endorser answered with a non-success status
	EndorsementRejected Code = 3

	// Timeout operation timed out
	Timeout Code = 5

	// NoPeersFound no endorsers were configured
	NoPeersFound Code = 6

	// MultipleErrors multiple errors occurred
	MultipleErrors Code = 7

	// EndorsementPolicyUnsatisfied the configured endorsement policy rejected the result
	EndorsementPolicyUnsatisfied Code = 9

	// BroadcastFailed the envelope could not be delivered to the committer
	BroadcastFailed Code = 10

	// GenericTransient is generally used by tests to indicate that a retry is possible
	GenericTransient Code = 12

	// DeliveryFailed the block stream returned an error
	DeliveryFailed Code = 13
)

// CodeName maps the codes in this packages to human-readable strings
var CodeName = map[int32]string{
	0:  "OK",
	1:  "UNKNOWN",
	2:  "CONNECTION_FAILED",
	3:  "ENDORSEMENT_REJECTED",
	5:  "TIMEOUT",
	6:  "NO_PEERS_FOUND",
	7:  "MULTIPLE_ERRORS",
	9:  "ENDORSEMENT_POLICY_UNSATISFIED",
	10: "BROADCAST_FAILED",
	12: "GENERIC_TRANSIENT",
	13: "DELIVERY_FAILED",
}

// ToInt32 cast to int32
func (c Code) ToInt32() int32 {
	return int32(c)
}

// String representation of the code
func (c Code) String() string {
	if s, ok := CodeName[c.ToInt32()]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// ToClientStatusCode cast to client status code
func ToClientStatusCode(c int32) Code {
	return Code(c)
}

// ToGRPCStatusCode cast to gRPC status code
func ToGRPCStatusCode(c int32) grpcCodes.Code {
	return grpcCodes.Code(c)
}

// ToFabricCommonStatusCode cast to common.Status
func ToFabricCommonStatusCode(c int32) common.Status {
	return common.Status(c)
}

// ToTransactionValidationCode cast to transaction validation status code
func ToTransactionValidationCode(c int32) pb.TxValidationCode {
	return pb.TxValidationCode(c)
}
