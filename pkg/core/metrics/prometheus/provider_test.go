/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/metrics"
)

func TestCounter(t *testing.T) {
	registry := prom.NewRegistry()
	p := NewProvider(registry)

	counter := p.NewCounter(metrics.CounterOpts{
		Namespace:  "fabtxn",
		Subsystem:  "transaction",
		Name:       "submissions_received",
		Help:       "help",
		LabelNames: []string{"chaincode"},
	})
	counter.With("chaincode", "mycc").Add(1)
	counter.With("chaincode", "mycc").Add(2)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "fabtxn_transaction_submissions_received", families[0].GetName())
	require.Len(t, families[0].GetMetric(), 1)
	assert.Equal(t, float64(3), families[0].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, "mycc", families[0].GetMetric()[0].GetLabel()[0].GetValue())
}

func TestHistogram(t *testing.T) {
	registry := prom.NewRegistry()
	p := NewProvider(registry)

	histogram := p.NewHistogram(metrics.HistogramOpts{
		Namespace:  "fabtxn",
		Name:       "duration",
		Help:       "help",
		Buckets:    []float64{1, 5},
		LabelNames: []string{"chaincode"},
	})
	histogram.With("chaincode", "mycc").Observe(2)
	histogram.With("chaincode", "mycc").Observe(7)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	h := families[0].GetMetric()[0].GetHistogram()
	assert.EqualValues(t, 2, h.GetSampleCount())
	assert.Equal(t, float64(9), h.GetSampleSum())
	require.Len(t, h.GetBucket(), 2)
	assert.EqualValues(t, 0, h.GetBucket()[0].GetCumulativeCount())
	assert.EqualValues(t, 1, h.GetBucket()[1].GetCumulativeCount())
}

func TestDuplicateRegistration(t *testing.T) {
	p := NewProvider(prom.NewRegistry())
	opts := metrics.CounterOpts{Name: "dup", Help: "help"}
	p.NewCounter(opts)
	assert.Panics(t, func() { p.NewCounter(opts) })
}
