/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dispatcher

import (
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"go.uber.org/atomic"
)

// BlockReg is a block listener registration. It implements fab.Registration.
type BlockReg struct {
	listener   fab.BlockListener
	opts       fab.SubscriptionOpts
	active     *atomic.Bool
	deliveries atomic.Int32
	owner      *Dispatcher
}

// Unregister stops deliveries to the listener
func (r *BlockReg) Unregister() {
	if r.active.CAS(true, false) {
		r.owner.remove(r)
	}
}

// Active reports whether the listener still receives deliveries
func (r *BlockReg) Active() bool {
	return r.active.Load()
}

// Deliveries returns the number of blocks delivered to the listener
func (r *BlockReg) Deliveries() int {
	return int(r.deliveries.Load())
}
