/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package deliverclient

import (
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
)

type params struct {
	connOpts   []options.Opt
	bufferSize uint
}

func defaultParams() *params {
	return &params{
		bufferSize: 100,
	}
}

// WithConnectionOpts passes connection options (see package comm) to the deliver connection
func WithConnectionOpts(opts ...options.Opt) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(connOptsSetter); ok {
			setter.SetConnectionOpts(opts)
		}
	}
}

// WithEventBufferSize sets the number of undelivered events buffered between the stream and the listeners
func WithEventBufferSize(value uint) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(bufferSizeSetter); ok {
			setter.SetEventBufferSize(value)
		}
	}
}

type connOptsSetter interface {
	SetConnectionOpts(opts []options.Opt)
}

type bufferSizeSetter interface {
	SetEventBufferSize(value uint)
}

func (p *params) SetConnectionOpts(opts []options.Opt) {
	logger.Debugf("ConnectionOpts: %d", len(opts))
	p.connOpts = append(p.connOpts, opts...)
}

func (p *params) SetEventBufferSize(value uint) {
	logger.Debugf("EventBufferSize: %d", value)
	p.bufferSize = value
}
