/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package txnerr defines the errors a transaction can fail with on its way
// from proposal to confirmation. Every error type also implements
// status.Provider so that it can be classified for retries.
package txnerr

import (
	"fmt"
	"strings"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/multi"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// SystemError reports transport or system failures collected while gathering
// endorsements. It takes priority over any per-response rejection.
type SystemError struct {
	Errors multi.Errors
}

// NewSystemError returns a SystemError holding errs.
func NewSystemError(errs []error) *SystemError {
	return &SystemError{Errors: append(multi.Errors{}, errs...)}
}

func (e *SystemError) Error() string {
	return "SYSTEM_ERROR: " + e.Errors.Error()
}

// Status implements status.Provider. A single wrapped status is reported as is.
func (e *SystemError) Status() *status.Status {
	if len(e.Errors) == 1 {
		if s, ok := status.FromError(e.Errors[0]); ok {
			return s
		}
	}
	details := make([]interface{}, len(e.Errors))
	for i, err := range e.Errors {
		details[i] = err
	}
	return status.New(status.EndorserClientStatus, status.MultipleErrors.ToInt32(), e.Error(), details)
}

// Rejection is a non-success endorsement response together with the endorser that produced it.
type Rejection struct {
	Endorser string
	Response *pb.Response
}

// EndorsementError reports the endorsers that rejected a proposal.
type EndorsementError struct {
	Rejections []Rejection
}

func (e *EndorsementError) Error() string {
	msgs := make([]string, len(e.Rejections))
	for i, r := range e.Rejections {
		msgs[i] = fmt.Sprintf("[%s] status %d: %s", r.Endorser, r.Response.GetStatus(), r.Response.GetMessage())
	}
	return "ENDORSE_ERROR: " + strings.Join(msgs, "; ")
}

// Status implements status.Provider. The first rejection's status is used.
func (e *EndorsementError) Status() *status.Status {
	if len(e.Rejections) == 0 {
		return status.New(status.EndorserClientStatus, status.EndorsementRejected.ToInt32(), e.Error(), nil)
	}
	first := e.Rejections[0]
	return status.New(status.EndorserServerStatus, first.Response.GetStatus(), first.Response.GetMessage(),
		[]interface{}{first.Endorser, first.Response.GetPayload()})
}

// CommitError reports a failure to hand an endorsed transaction to the committer.
type CommitError struct {
	Committer string
	Code      common.Status
	Err       error
}

func (e *CommitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("commit to [%s] failed: %s", e.Committer, e.Err)
	}
	return fmt.Sprintf("commit to [%s] failed with status %s", e.Committer, e.Code)
}

// Status implements status.Provider
func (e *CommitError) Status() *status.Status {
	if e.Err != nil {
		if s, ok := status.FromError(e.Err); ok {
			return s
		}
		return status.New(status.OrdererClientStatus, status.BroadcastFailed.ToInt32(), e.Error(), []interface{}{e.Committer})
	}
	return status.New(status.OrdererServerStatus, int32(e.Code), e.Error(), []interface{}{e.Committer})
}

// ConfirmationError reports that the block stream did not confirm a transaction as valid.
type ConfirmationError struct {
	TxID string
	Code pb.TxValidationCode
	Err  error
}

func (e *ConfirmationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("confirmation of transaction [%s] failed: %s", e.TxID, e.Err)
	}
	return fmt.Sprintf("transaction [%s] was invalidated with code %s", e.TxID, e.Code)
}

// Status implements status.Provider
func (e *ConfirmationError) Status() *status.Status {
	if e.Err != nil {
		if s, ok := status.FromError(e.Err); ok {
			return s
		}
		return status.New(status.ClientStatus, status.DeliveryFailed.ToInt32(), e.Error(), []interface{}{e.TxID})
	}
	return status.New(status.EventServerStatus, int32(e.Code), e.Error(), []interface{}{e.TxID})
}
