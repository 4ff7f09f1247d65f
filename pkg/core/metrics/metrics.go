/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metrics defines the instruments used by the transaction client.
// Implementations live in the prometheus and disabled sub-packages.
package metrics

// Provider creates instruments
type Provider interface {
	NewCounter(CounterOpts) Counter
	NewHistogram(HistogramOpts) Histogram
}

// Counter is a monotonically increasing value
type Counter interface {
	// With returns the counter for the given label values
	With(labelValues ...string) Counter
	Add(delta float64)
}

// CounterOpts describes a counter
type CounterOpts struct {
	Namespace  string
	Subsystem  string
	Name       string
	Help       string
	LabelNames []string
}

// Histogram samples observations into buckets
type Histogram interface {
	With(labelValues ...string) Histogram
	Observe(value float64)
}

// HistogramOpts describes a histogram. Nil Buckets selects the
// implementation's default buckets.
type HistogramOpts struct {
	Namespace  string
	Subsystem  string
	Name       string
	Help       string
	Buckets    []float64
	LabelNames []string
}
