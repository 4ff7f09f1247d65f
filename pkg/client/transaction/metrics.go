/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transaction

import (
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/metrics"
)

var (
	evaluationsReceived = metrics.CounterOpts{
		Namespace:  "fabtxn",
		Subsystem:  "transaction",
		Name:       "evaluations_received",
		Help:       "The number of evaluations received.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	evaluationsFailed = metrics.CounterOpts{
		Namespace:  "fabtxn",
		Subsystem:  "transaction",
		Name:       "evaluations_failed",
		Help:       "The number of evaluations that failed (timeouts excluded).",
		LabelNames: []string{"chaincode", "fcn", "fail"},
	}
	evaluationTimeouts = metrics.CounterOpts{
		Namespace:  "fabtxn",
		Subsystem:  "transaction",
		Name:       "evaluation_timeouts",
		Help:       "The number of evaluations that timed out.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	evaluationDuration = metrics.HistogramOpts{
		Namespace:  "fabtxn",
		Subsystem:  "transaction",
		Name:       "evaluation_duration",
		Help:       "The time to complete an evaluation, in seconds.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	submissionsReceived = metrics.CounterOpts{
		Namespace:  "fabtxn",
		Subsystem:  "transaction",
		Name:       "submissions_received",
		Help:       "The number of submissions received.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	submissionsFailed = metrics.CounterOpts{
		Namespace:  "fabtxn",
		Subsystem:  "transaction",
		Name:       "submissions_failed",
		Help:       "The number of submissions that failed (timeouts excluded).",
		LabelNames: []string{"chaincode", "fcn", "fail"},
	}
	submissionTimeouts = metrics.CounterOpts{
		Namespace:  "fabtxn",
		Subsystem:  "transaction",
		Name:       "submission_timeouts",
		Help:       "The number of submissions that timed out, including confirmation waits.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	submissionDuration = metrics.HistogramOpts{
		Namespace:  "fabtxn",
		Subsystem:  "transaction",
		Name:       "submission_duration",
		Help:       "The time to submit and confirm a transaction, in seconds.",
		LabelNames: []string{"chaincode", "fcn"},
	}
)

// Metrics contains the instruments of a Transaction
type Metrics struct {
	EvaluationsReceived metrics.Counter
	EvaluationsFailed   metrics.Counter
	EvaluationTimeouts  metrics.Counter
	EvaluationDuration  metrics.Histogram
	SubmissionsReceived metrics.Counter
	SubmissionsFailed   metrics.Counter
	SubmissionTimeouts  metrics.Counter
	SubmissionDuration  metrics.Histogram
}

// NewMetrics creates the transaction instruments with p
func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		EvaluationsReceived: p.NewCounter(evaluationsReceived),
		EvaluationsFailed:   p.NewCounter(evaluationsFailed),
		EvaluationTimeouts:  p.NewCounter(evaluationTimeouts),
		EvaluationDuration:  p.NewHistogram(evaluationDuration),
		SubmissionsReceived: p.NewCounter(submissionsReceived),
		SubmissionsFailed:   p.NewCounter(submissionsFailed),
		SubmissionTimeouts:  p.NewCounter(submissionTimeouts),
		SubmissionDuration:  p.NewHistogram(submissionDuration),
	}
}
