/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	"time"

	"github.com/pkg/errors"
)

// ProposalOptions apply to sending a proposal to the endorsers
type ProposalOptions struct {
	// Timeout bounds the endorsement round trip, zero means no extra bound
	Timeout time.Duration
}

// Validate checks the options
func (o ProposalOptions) Validate() error {
	if o.Timeout < 0 {
		return errors.Errorf("proposal timeout must not be negative: %s", o.Timeout)
	}
	return nil
}

// CommitOptions apply to broadcasting an endorsed transaction
type CommitOptions struct {
	// Timeout bounds the broadcast round trip, zero means no extra bound
	Timeout time.Duration
}

// Validate checks the options
func (o CommitOptions) Validate() error {
	if o.Timeout < 0 {
		return errors.Errorf("commit timeout must not be negative: %s", o.Timeout)
	}
	return nil
}

// EventOptions apply to the block event subscription that confirms a transaction
type EventOptions struct {
	// Timeout bounds the wait for confirmation, zero waits until the caller's context is done
	Timeout time.Duration
	// Target names the event source to subscribe to; empty selects the default source
	Target string
}

// Validate checks the options
func (o EventOptions) Validate() error {
	if o.Timeout < 0 {
		return errors.Errorf("event timeout must not be negative: %s", o.Timeout)
	}
	return nil
}
