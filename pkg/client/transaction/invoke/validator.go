/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package invoke

import (
	"fmt"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/txnerr"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-protos-go/common"
)

// ResultInterceptor inspects or rewrites the endorsement result before it is
// returned or committed. An error aborts the invocation.
type ResultInterceptor interface {
	Intercept(result *fab.EndorsementResult) (*fab.EndorsementResult, error)
}

// InterceptorFunc adapts a function to a ResultInterceptor
type InterceptorFunc func(result *fab.EndorsementResult) (*fab.EndorsementResult, error)

// Intercept calls f
func (f InterceptorFunc) Intercept(result *fab.EndorsementResult) (*fab.EndorsementResult, error) {
	return f(result)
}

// Identity returns the interceptor that passes results through unchanged
func Identity() ResultInterceptor {
	return InterceptorFunc(func(result *fab.EndorsementResult) (*fab.EndorsementResult, error) {
		return result, nil
	})
}

// EndorseAllInterceptor returns EndorseAll as a ResultInterceptor
func EndorseAllInterceptor() ResultInterceptor {
	return InterceptorFunc(EndorseAll)
}

// EndorseAll requires every endorser to have accepted the proposal.
// Collected system errors fail with a *txnerr.SystemError, otherwise the
// rejected responses fail with a *txnerr.EndorsementError. An accepted
// result is returned as is.
func EndorseAll(result *fab.EndorsementResult) (*fab.EndorsementResult, error) {
	if result == nil {
		return nil, errors.New("endorsement result is required")
	}
	if len(result.Errors) > 0 {
		return nil, txnerr.NewSystemError(result.Errors)
	}

	if rejections := rejected(result.Responses); len(rejections) > 0 {
		return nil, &txnerr.EndorsementError{Rejections: rejections}
	}
	return result, nil
}

func accepted(r *fab.TransactionProposalResponse) bool {
	return r != nil && r.ProposalResponse.GetResponse().GetStatus() == int32(common.Status_SUCCESS)
}

func rejected(responses []*fab.TransactionProposalResponse) []txnerr.Rejection {
	var rejections []txnerr.Rejection
	for _, r := range responses {
		if accepted(r) {
			continue
		}
		rejection := txnerr.Rejection{}
		if r != nil {
			rejection.Endorser = r.Endorser
			rejection.Response = r.ProposalResponse.GetResponse()
		}
		rejections = append(rejections, rejection)
	}
	return rejections
}

// PolicyValidator accepts an endorsement result when a boolean expression
// over the variables accepted, rejected and total holds, e.g. "accepted >= 2".
// Only the accepted responses are kept in the returned result.
type PolicyValidator struct {
	expression *govaluate.EvaluableExpression
}

// NewPolicyValidator parses expression
func NewPolicyValidator(expression string) (*PolicyValidator, error) {
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid endorsement policy [%s]", expression)
	}

	for _, v := range expr.Vars() {
		switch v {
		case "accepted", "rejected", "total":
		default:
			return nil, errors.Errorf("unknown variable [%s] in endorsement policy [%s]", v, expression)
		}
	}
	return &PolicyValidator{expression: expr}, nil
}

// Intercept implements ResultInterceptor
func (v *PolicyValidator) Intercept(result *fab.EndorsementResult) (*fab.EndorsementResult, error) {
	if result == nil {
		return nil, errors.New("endorsement result is required")
	}
	if len(result.Errors) > 0 {
		return nil, txnerr.NewSystemError(result.Errors)
	}

	var endorsed []*fab.TransactionProposalResponse
	for _, r := range result.Responses {
		if accepted(r) {
			endorsed = append(endorsed, r)
		}
	}
	rejections := rejected(result.Responses)

	value, err := v.expression.Evaluate(map[string]interface{}{
		"accepted": float64(len(endorsed)),
		"rejected": float64(len(rejections)),
		"total":    float64(len(result.Responses)),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating endorsement policy [%s] failed", v)
	}

	satisfied, ok := value.(bool)
	if !ok {
		return nil, errors.Errorf("endorsement policy [%s] did not evaluate to a boolean: %v", v, value)
	}
	if !satisfied || len(endorsed) == 0 {
		details := make([]interface{}, len(rejections))
		for i, r := range rejections {
			details[i] = r
		}
		return nil, status.New(status.EndorserClientStatus, status.EndorsementPolicyUnsatisfied.ToInt32(),
			fmt.Sprintf("endorsement policy [%s] not satisfied: %d of %d endorsements accepted", v, len(endorsed), len(result.Responses)),
			details)
	}

	if len(rejections) == 0 {
		return result, nil
	}
	return &fab.EndorsementResult{Proposal: result.Proposal, Responses: endorsed, Query: result.Query}, nil
}

func (v *PolicyValidator) String() string {
	return v.expression.String()
}
