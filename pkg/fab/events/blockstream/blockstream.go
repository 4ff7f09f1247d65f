/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package blockstream observes the block stream of a channel through an
// event hub: fetching a given block, the newest block, the next block, or
// waiting for a transaction to be committed.
//
// Every operation builds the hub for the caller's identity, registers its
// listener before connecting, and completes exactly once. The caller owns
// the hub and must Disconnect it.
package blockstream

import (
	reqContext "context"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/txnerr"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

type result struct {
	value interface{}
	err   error
}

// completion is a one-slot channel that accepts the first result only
type completion chan result

func newCompletion() completion {
	return make(completion, 1)
}

func (c completion) resolve(value interface{}) {
	c.complete(result{value: value})
}

func (c completion) fail(err error) {
	c.complete(result{err: err})
}

func (c completion) complete(r result) {
	select {
	case c <- r:
	default:
	}
}

type handler func(c completion, reg fab.Registration, event *fab.BlockEvent, err error)

func await(ctx reqContext.Context, hub fab.EventHub, identity fab.IdentityContext, subOpts fab.SubscriptionOpts, handle handler) (interface{}, error) {
	if hub == nil {
		return nil, errors.New("event hub is required")
	}
	if identity == nil {
		return nil, errors.New("identity is required")
	}

	if err := hub.Build(identity, subOpts.Range); err != nil {
		return nil, errors.WithMessage(err, "building event hub failed")
	}

	c := newCompletion()

	var reg fab.Registration
	reg, err := hub.RegisterBlockListener(func(event *fab.BlockEvent, err error) {
		handle(c, reg, event, err)
	}, subOpts)
	if err != nil {
		return nil, errors.WithMessage(err, "registering block listener failed")
	}

	if err := hub.Connect(ctx); err != nil {
		reg.Unregister()
		return nil, errors.WithMessage(err, "connecting event hub failed")
	}

	select {
	case r := <-c:
		return r.value, r.err
	case <-ctx.Done():
		reg.Unregister()
		return nil, contextError(ctx)
	}
}

func contextError(ctx reqContext.Context) error {
	if ctx.Err() == reqContext.DeadlineExceeded {
		return status.New(status.ClientStatus, status.Timeout.ToInt32(), "timed out waiting for block events", nil)
	}
	return errors.Wrap(ctx.Err(), "waiting for block events aborted")
}

func blockEvent(value interface{}, err error) (*fab.BlockEvent, error) {
	if err != nil {
		return nil, err
	}
	return value.(*fab.BlockEvent), nil
}

// GetSingleBlock returns block number blockNum. Delivery errors fail the
// operation unless WithErrorTolerance is given.
func GetSingleBlock(ctx reqContext.Context, hub fab.EventHub, identity fab.IdentityContext, blockNum uint64, opts ...options.Opt) (*fab.BlockEvent, error) {
	p := newParams(opts)

	subOpts := fab.SubscriptionOpts{Range: fab.BlockRange(blockNum, blockNum), Unregister: true}

	return blockEvent(await(ctx, hub, identity, subOpts, func(c completion, reg fab.Registration, event *fab.BlockEvent, err error) {
		if err != nil {
			if p.errorTolerance {
				p.logger.Warnf("ignoring delivery error while waiting for block %d: %s", blockNum, err)
				return
			}
			c.fail(errors.WithMessagef(err, "fetching block %d failed", blockNum))
			return
		}

		num := event.Block.GetHeader().GetNumber()
		switch {
		case num == blockNum:
			p.logger.Debugf("received block %d from %s", num, event.SourceURL)
			c.resolve(event)
		case num > blockNum:
			c.fail(errors.Errorf("block %d was skipped, received block %d", blockNum, num))
		default:
			p.logger.Debugf("ignoring block %d while waiting for block %d", num, blockNum)
		}
	}))
}

// GetLastBlock returns the newest block of the channel
func GetLastBlock(ctx reqContext.Context, hub fab.EventHub, identity fab.IdentityContext, opts ...options.Opt) (*fab.BlockEvent, error) {
	p := newParams(opts)

	subOpts := fab.SubscriptionOpts{Range: fab.NewestRange(), Unregister: true}

	return blockEvent(await(ctx, hub, identity, subOpts, func(c completion, reg fab.Registration, event *fab.BlockEvent, err error) {
		if err != nil {
			c.fail(errors.WithMessage(err, "fetching newest block failed"))
			return
		}
		p.logger.Debugf("newest block is %d", event.Block.GetHeader().GetNumber())
		c.resolve(event)
	}))
}

// WaitForBlock waits for the block following the current newest block. The
// first delivery is the newest block and serves as the baseline.
func WaitForBlock(ctx reqContext.Context, hub fab.EventHub, identity fab.IdentityContext, opts ...options.Opt) (*fab.BlockEvent, error) {
	p := newParams(opts)

	subOpts := fab.SubscriptionOpts{Range: fab.NewestRange()}

	var baseline *fab.BlockEvent
	return blockEvent(await(ctx, hub, identity, subOpts, func(c completion, reg fab.Registration, event *fab.BlockEvent, err error) {
		if err != nil {
			reg.Unregister()
			c.fail(errors.WithMessage(err, "waiting for next block failed"))
			return
		}

		if baseline == nil {
			baseline = event
			p.logger.Debugf("waiting for the block after block %d", event.Block.GetHeader().GetNumber())
			return
		}

		reg.Unregister()
		p.logger.Debugf("received block %d", event.Block.GetHeader().GetNumber())
		c.resolve(event)
	}))
}

// WaitForTx waits until transaction txID is committed. A transaction
// committed with a validation code other than VALID fails with a
// *txnerr.ConfirmationError.
func WaitForTx(ctx reqContext.Context, hub fab.EventHub, identity fab.IdentityContext, txID string, opts ...options.Opt) (*fab.TxStatusEvent, error) {
	if txID == "" {
		return nil, errors.New("transaction ID is required")
	}

	p := newParams(opts)

	subOpts := fab.SubscriptionOpts{Range: fab.NewestRange()}

	value, err := await(ctx, hub, identity, subOpts, func(c completion, reg fab.Registration, event *fab.BlockEvent, err error) {
		if err != nil {
			reg.Unregister()
			c.fail(&txnerr.ConfirmationError{TxID: txID, Err: err})
			return
		}

		blockNum := event.Block.GetHeader().GetNumber()
		statuses, err := txStatuses(event.Block)
		if err != nil {
			p.logger.Warnf("skipping unreadable transactions: %s", err)
		}

		for _, s := range statuses {
			if s.txID != txID {
				continue
			}

			reg.Unregister()
			p.logger.Debugf("transaction %s committed in block %d with code %s", txID, blockNum, s.code)
			if s.code != pb.TxValidationCode_VALID {
				c.fail(&txnerr.ConfirmationError{TxID: txID, Code: s.code})
				return
			}
			c.resolve(&fab.TxStatusEvent{
				TxID:             txID,
				TxValidationCode: s.code,
				BlockNumber:      blockNum,
				SourceURL:        event.SourceURL,
			})
			return
		}
	})
	if err != nil {
		if _, ok := errors.Cause(err).(*txnerr.ConfirmationError); ok {
			return nil, err
		}
		return nil, &txnerr.ConfirmationError{TxID: txID, Err: err}
	}
	return value.(*fab.TxStatusEvent), nil
}
