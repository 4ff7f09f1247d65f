/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blockstream

import (
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/api"
)

var defaultLogger = logging.NewLogger("fabtxn/blockstream")

type params struct {
	logger         api.Logger
	errorTolerance bool
}

func newParams(opts []options.Opt) *params {
	p := &params{logger: defaultLogger}
	options.Apply(p, opts)
	return p
}

// WithLogger sets the logger used by the operation
func WithLogger(logger api.Logger) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(loggerSetter); ok {
			setter.SetLogger(logger)
		}
	}
}

// WithErrorTolerance makes GetSingleBlock log delivery errors and keep
// waiting for the requested block instead of failing.
func WithErrorTolerance() options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(errorToleranceSetter); ok {
			setter.SetErrorTolerance(true)
		}
	}
}

type loggerSetter interface {
	SetLogger(logger api.Logger)
}

type errorToleranceSetter interface {
	SetErrorTolerance(value bool)
}

func (p *params) SetLogger(logger api.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

func (p *params) SetErrorTolerance(value bool) {
	p.errorTolerance = value
}
