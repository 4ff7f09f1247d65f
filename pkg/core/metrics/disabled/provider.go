/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package disabled

import (
	kitmetrics "github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/metrics"
)

// Provider creates instruments that drop every observation
type Provider struct{}

// NewCounter returns a discarding counter
func (p *Provider) NewCounter(o metrics.CounterOpts) metrics.Counter {
	return &Counter{Counter: discard.NewCounter()}
}

// NewHistogram returns a discarding histogram
func (p *Provider) NewHistogram(o metrics.HistogramOpts) metrics.Histogram {
	return &Histogram{Histogram: discard.NewHistogram()}
}

// Counter discards
type Counter struct{ kitmetrics.Counter }

// With returns c
func (c *Counter) With(labelValues ...string) metrics.Counter {
	return c
}

// Histogram discards
type Histogram struct{ kitmetrics.Histogram }

// With returns h
func (h *Histogram) With(labelValues ...string) metrics.Histogram {
	return h
}
