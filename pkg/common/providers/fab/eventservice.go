/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	reqContext "context"

	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// BlockEvent contains the data for the block event
type BlockEvent struct {
	Block     *cb.Block
	SourceURL string
}

// TxStatusEvent contains the data for a transaction status event
type TxStatusEvent struct {
	TxID             string
	TxValidationCode pb.TxValidationCode
	BlockNumber      uint64
	SourceURL        string
}

// Registration is a handle that is returned from a successful RegisterBlockListener.
type Registration interface {
	// Unregister stops deliveries to the listener. It is safe to call more than once.
	Unregister()
}

// SeekRange selects the blocks a subscription delivers. Newest starts at the
// current chain head and never ends, otherwise blocks Start through End are
// delivered.
type SeekRange struct {
	Newest bool
	Start  uint64
	End    uint64
}

// NewestRange selects the newest block and every following one
func NewestRange() SeekRange {
	return SeekRange{Newest: true}
}

// BlockRange selects blocks start through end, both inclusive
func BlockRange(start, end uint64) SeekRange {
	return SeekRange{Start: start, End: end}
}

// Contains reports whether block number n falls inside the range
func (r SeekRange) Contains(n uint64) bool {
	if r.Newest {
		return true
	}
	return n >= r.Start && n <= r.End
}

// SubscriptionOpts are the options of a listener registration
type SubscriptionOpts struct {
	Range SeekRange
	// Unregister removes the listener automatically: after the last block
	// of a bounded range, or after the first delivery otherwise.
	Unregister bool
}

// BlockListener receives either a block event or a delivery error.
// Listeners are invoked one at a time from the event hub's receive loop and
// must not block.
type BlockListener func(event *BlockEvent, err error)

// EventHub is a connection to a block event source. Listeners must be
// registered before Connect so that no block is missed.
type EventHub interface {
	// Build scopes the subscription to identity and the given range
	Build(identity IdentityContext, seek SeekRange) error
	RegisterBlockListener(listener BlockListener, opts SubscriptionOpts) (Registration, error)
	Connect(ctx reqContext.Context) error
	Disconnect()
}
