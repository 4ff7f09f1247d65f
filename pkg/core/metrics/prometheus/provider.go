/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	kitmetrics "github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/metrics"
)

// Provider creates prometheus instruments and registers them with its registerer
type Provider struct {
	registerer prom.Registerer
}

// NewProvider returns a provider registering with registerer, or with the
// default prometheus registerer when registerer is nil
func NewProvider(registerer prom.Registerer) *Provider {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}
	return &Provider{registerer: registerer}
}

// NewCounter creates and registers a counter vector
func (p *Provider) NewCounter(o metrics.CounterOpts) metrics.Counter {
	cv := prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: o.Namespace,
			Subsystem: o.Subsystem,
			Name:      o.Name,
			Help:      o.Help,
		},
		o.LabelNames,
	)
	p.registerer.MustRegister(cv)
	return &Counter{Counter: prometheus.NewCounter(cv)}
}

// NewHistogram creates and registers a histogram vector
func (p *Provider) NewHistogram(o metrics.HistogramOpts) metrics.Histogram {
	hv := prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: o.Namespace,
			Subsystem: o.Subsystem,
			Name:      o.Name,
			Help:      o.Help,
			Buckets:   o.Buckets,
		},
		o.LabelNames,
	)
	p.registerer.MustRegister(hv)
	return &Histogram{Histogram: prometheus.NewHistogram(hv)}
}

// Counter adapts a go-kit counter
type Counter struct{ kitmetrics.Counter }

// With returns the counter for the given label values
func (c *Counter) With(labelValues ...string) metrics.Counter {
	return &Counter{Counter: c.Counter.With(labelValues...)}
}

// Histogram adapts a go-kit histogram
type Histogram struct{ kitmetrics.Histogram }

// With returns the histogram for the given label values
func (h *Histogram) With(labelValues ...string) metrics.Histogram {
	return &Histogram{Histogram: h.Histogram.With(labelValues...)}
}
