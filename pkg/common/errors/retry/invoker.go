/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"context"
	"time"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/multi"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/txnerr"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("fabtxn/common")

// Invocation is the function to be invoked.
type Invocation func(ctx context.Context) (interface{}, error)

// BeforeRetryHandler is a function that's invoked before a retry attempt.
type BeforeRetryHandler func(error)

// RetryableInvoker retries an invocation on transient errors.
type RetryableInvoker struct {
	handler     Handler
	beforeRetry BeforeRetryHandler
}

// InvokerOpt is an invoker option
type InvokerOpt func(invoker *RetryableInvoker)

// WithBeforeRetry specifies a function to call before a retry attempt
func WithBeforeRetry(beforeRetry BeforeRetryHandler) InvokerOpt {
	return func(invoker *RetryableInvoker) {
		invoker.beforeRetry = beforeRetry
	}
}

// NewInvoker creates a new RetryableInvoker
func NewInvoker(handler Handler, opts ...InvokerOpt) *RetryableInvoker {
	invoker := &RetryableInvoker{handler: handler}
	for _, opt := range opts {
		opt(invoker)
	}
	return invoker
}

// Invoke calls invocation until it succeeds, the handler declines a retry or ctx is done.
func (ri *RetryableInvoker) Invoke(ctx context.Context, invocation Invocation) (interface{}, error) {
	for attempt := 1; ; attempt++ {
		retval, err := invocation(ctx)
		if err == nil {
			if attempt > 1 {
				logger.Debugf("Success on attempt #%d", attempt)
			}
			return retval, nil
		}

		backoff, ok := ri.resolveRetry(err)
		if !ok {
			logger.Debugf("Retry for err [%s] is NOT warranted after %d attempt(s)", err, attempt)
			return nil, err
		}
		logger.Debugf("Retrying attempt #%d in %s on error [%s]", attempt+1, backoff, err)
		if ri.beforeRetry != nil {
			ri.beforeRetry(err)
		}
		if serr := sleep(ctx, backoff); serr != nil {
			return nil, errors.WithMessagef(err, "retry aborted: %s", serr)
		}
	}
}

// resolveRetry inspects every error of a fan-out failure, a retry is
// warranted when any of them is transient.
func (ri *RetryableInvoker) resolveRetry(err error) (time.Duration, bool) {
	var errs multi.Errors
	switch e := errors.Cause(err).(type) {
	case multi.Errors:
		errs = e
	case *txnerr.SystemError:
		errs = e.Errors
	default:
		errs = multi.Errors{err}
	}
	for _, e := range errs {
		if backoff, ok := ri.handler.Required(e); ok {
			return backoff, true
		}
	}
	return 0, false
}
