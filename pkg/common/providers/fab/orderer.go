/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	reqContext "context"

	"github.com/hyperledger/fabric-protos-go/common"
)

// Orderer accepts endorsed transactions for ordering into blocks.
type Orderer interface {
	URL() string
	SendBroadcast(ctx reqContext.Context, envelope *SignedEnvelope) (*common.Status, error)
}

// A SignedEnvelope can be sent to an orderer for broadcasting
type SignedEnvelope struct {
	Payload   []byte
	Signature []byte
}

// CommitResult acknowledges that a transaction was accepted for ordering. It
// says nothing about the transaction's validity.
type CommitResult struct {
	TxnID     TransactionID
	Committer string
	Status    common.Status
}
