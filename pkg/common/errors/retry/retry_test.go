/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"fmt"
	"testing"
	"time"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/txnerr"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/assert"
)

func TestRetryRequired(t *testing.T) {
	attempts := 3
	transientErr := status.New(status.OrdererServerStatus,
		int32(common.Status_SERVICE_UNAVAILABLE), "", nil)
	nonTransientErr := status.New(status.EndorserServerStatus,
		int32(common.Status_BAD_REQUEST), "", nil)
	unknownErr := fmt.Errorf("Unknown")

	r := New(Opts{
		Attempts:       attempts,
		BackoffFactor:  2,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     1 * time.Second,
	})
	for i := 1; i <= attempts; i++ {
		_, ok := r.Required(transientErr)
		assert.True(t, ok, "Expected retry to be required on transient error")
	}
	_, ok := r.Required(transientErr)
	assert.False(t, ok, "Expected retry to not be required after exhausting attempts")

	_, ok = WithDefaults().Required(nonTransientErr)
	assert.False(t, ok, "Expected retry to not be required on non-transient error")
	_, ok = WithAttempts(2).Required(unknownErr)
	assert.False(t, ok, "Expected retry to not be required on unknown error")
}

func TestRetryRequiredOnInvalidation(t *testing.T) {
	err := &txnerr.ConfirmationError{TxID: "tx1", Code: pb.TxValidationCode_MVCC_READ_CONFLICT}
	_, ok := WithDefaults().Required(err)
	assert.True(t, ok)

	err = &txnerr.ConfirmationError{TxID: "tx1", Code: pb.TxValidationCode_BAD_PAYLOAD}
	_, ok = WithDefaults().Required(err)
	assert.False(t, ok)
}

func TestBackoffPeriod(t *testing.T) {
	testBackoffFactor := 3.34
	testInitialBackoff := 2 * time.Second
	floatInitBackoff := float64(testInitialBackoff)
	testMaxBackoff := 30 * time.Second
	r := New(Opts{
		Attempts:       10,
		BackoffFactor:  testBackoffFactor,
		InitialBackoff: testInitialBackoff,
		MaxBackoff:     testMaxBackoff,
	})
	i := r.(*impl)
	assert.Equal(t, testInitialBackoff, i.backoffPeriod(), "Expected initial backoff on first attempt")
	i.retries = 1
	assert.Equal(t, time.Duration(floatInitBackoff*testBackoffFactor), i.backoffPeriod(),
		"Expected initial backoff multiplied by backoff factor on second attempt")
	i.retries = 2
	assert.Equal(t, time.Duration(floatInitBackoff*testBackoffFactor*testBackoffFactor),
		i.backoffPeriod(), "Expected exponential backoff")
	i.retries = 3
	assert.Equal(t, testMaxBackoff, i.backoffPeriod(), "Expected max backoff")
}
