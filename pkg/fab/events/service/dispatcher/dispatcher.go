/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dispatcher fans block events out to registered block listeners.
//
// Dispatch is expected to be called from a single receive loop, so listeners
// are invoked one at a time and in the order the blocks arrive. Listeners may
// unregister themselves from inside their callback.
package dispatcher

import (
	"sync"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	cb "github.com/hyperledger/fabric-protos-go/common"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

var logger = logging.NewLogger("fabtxn/fab")

// Dispatcher holds the block registrations of one event source
type Dispatcher struct {
	sourceURL string

	mutex         sync.RWMutex
	registrations []*BlockReg
	lastBlockNum  *atomic.Uint64
	received      *atomic.Bool
}

// New creates a new Dispatcher for the event source at sourceURL
func New(sourceURL string) *Dispatcher {
	return &Dispatcher{
		sourceURL:    sourceURL,
		lastBlockNum: atomic.NewUint64(0),
		received:     atomic.NewBool(false),
	}
}

// Register adds a block listener
func (d *Dispatcher) Register(listener fab.BlockListener, opts fab.SubscriptionOpts) (*BlockReg, error) {
	if listener == nil {
		return nil, errors.New("block listener is required")
	}
	if !opts.Range.Newest && opts.Range.End < opts.Range.Start {
		return nil, errors.Errorf("invalid block range [%d, %d]", opts.Range.Start, opts.Range.End)
	}

	reg := &BlockReg{
		listener: listener,
		opts:     opts,
		active:   atomic.NewBool(true),
		owner:    d,
	}

	d.mutex.Lock()
	d.registrations = append(d.registrations, reg)
	d.mutex.Unlock()

	logger.Debugf("Registered block listener on [%s], range %+v, auto-unregister %t", d.sourceURL, opts.Range, opts.Unregister)
	return reg, nil
}

// DispatchBlock delivers block to every active registration whose range
// contains it and returns the number of listeners invoked.
func (d *Dispatcher) DispatchBlock(block *cb.Block) int {
	num := block.GetHeader().GetNumber()
	d.lastBlockNum.Store(num)
	d.received.Store(true)

	event := &fab.BlockEvent{Block: block, SourceURL: d.sourceURL}

	notified := 0
	for _, reg := range d.snapshot() {
		if !reg.active.Load() || !reg.opts.Range.Contains(num) {
			continue
		}
		reg.deliveries.Inc()
		reg.listener(event, nil)
		notified++

		if reg.opts.Unregister && (reg.opts.Range.Newest || num >= reg.opts.Range.End) {
			logger.Debugf("Auto-unregistering block listener after block #%d", num)
			reg.Unregister()
		}
	}
	return notified
}

// DispatchError delivers err to every active registration and returns the
// number of listeners invoked.
func (d *Dispatcher) DispatchError(err error) int {
	notified := 0
	for _, reg := range d.snapshot() {
		if !reg.active.Load() {
			continue
		}
		reg.listener(nil, err)
		notified++
	}
	return notified
}

// LastBlockNum returns the number of the last block dispatched, ok is false
// when no block has been received yet.
func (d *Dispatcher) LastBlockNum() (num uint64, ok bool) {
	return d.lastBlockNum.Load(), d.received.Load()
}

// NumRegistrations returns the number of active registrations
func (d *Dispatcher) NumRegistrations() int {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return len(d.registrations)
}

// Clear unregisters every listener
func (d *Dispatcher) Clear() {
	for _, reg := range d.snapshot() {
		reg.Unregister()
	}
}

func (d *Dispatcher) snapshot() []*BlockReg {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	regs := make([]*BlockReg, len(d.registrations))
	copy(regs, d.registrations)
	return regs
}

func (d *Dispatcher) remove(reg *BlockReg) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for i, r := range d.registrations {
		if r == reg {
			d.registrations = append(d.registrations[:i], d.registrations[i+1:]...)
			return
		}
	}
}
