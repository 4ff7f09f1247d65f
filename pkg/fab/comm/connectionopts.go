/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"context"
	"crypto/x509"
	"net"
	"time"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/spf13/cast"
	"google.golang.org/grpc/keepalive"
)

// Dialer establishes the raw connection, tests use it to dial in-memory listeners
type Dialer func(ctx context.Context, address string) (net.Conn, error)

type params struct {
	hostOverride    string
	certificates    []*x509.Certificate
	keepAliveParams keepalive.ClientParameters
	failFast        bool
	insecure        bool
	connectTimeout  time.Duration
	dialer          Dialer
}

func defaultParams() *params {
	return &params{
		failFast:       true,
		connectTimeout: 3 * time.Second,
	}
}

// WithHostOverride sets the host name that will be used to resolve the TLS certificate
func WithHostOverride(value string) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(hostOverrideSetter); ok {
			setter.SetHostOverride(value)
		}
	}
}

// WithCertificate adds an X509 root certificate used to verify the TLS server
func WithCertificate(value *x509.Certificate) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(certificateSetter); ok {
			setter.AddCertificate(value)
		}
	}
}

// WithKeepAliveParams sets the GRPC keep-alive parameters
func WithKeepAliveParams(value keepalive.ClientParameters) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(keepAliveParamsSetter); ok {
			setter.SetKeepAliveParams(value)
		}
	}
}

// WithFailFast sets the GRPC fail-fast parameter
func WithFailFast(value bool) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(failFastSetter); ok {
			setter.SetFailFast(value)
		}
	}
}

// WithConnectTimeout sets the GRPC connection timeout
func WithConnectTimeout(value time.Duration) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(connectTimeoutSetter); ok {
			setter.SetConnectTimeout(value)
		}
	}
}

// WithInsecure allows plain connections to URLs without a protocol prefix
func WithInsecure() options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(insecureSetter); ok {
			setter.SetInsecure(true)
		}
	}
}

// WithDialer replaces the network dialer
func WithDialer(value Dialer) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(dialerSetter); ok {
			setter.SetDialer(value)
		}
	}
}

func (p *params) SetHostOverride(value string) {
	logger.Debugf("HostOverride: %s", value)
	p.hostOverride = value
}

func (p *params) AddCertificate(value *x509.Certificate) {
	if value != nil {
		logger.Debugf("Certificate: %s", value.Subject)
		p.certificates = append(p.certificates, value)
	}
}

func (p *params) SetKeepAliveParams(value keepalive.ClientParameters) {
	logger.Debugf("KeepAliveParams: %#v", value)
	p.keepAliveParams = value
}

func (p *params) SetFailFast(value bool) {
	logger.Debugf("FailFast: %t", value)
	p.failFast = value
}

func (p *params) SetConnectTimeout(value time.Duration) {
	logger.Debugf("ConnectTimeout: %s", value)
	p.connectTimeout = value
}

func (p *params) SetInsecure(value bool) {
	logger.Debugf("Insecure: %t", value)
	p.insecure = value
}

func (p *params) SetDialer(value Dialer) {
	p.dialer = value
}

// SetFromProperties sets options from a property map, as read from config
func (p *params) SetFromProperties(props map[string]interface{}) {
	if v, ok := props["grpc.keepalive-time"]; ok {
		p.keepAliveParams.Time = cast.ToDuration(v)
	}
	if v, ok := props["grpc.keepalive-timeout"]; ok {
		p.keepAliveParams.Timeout = cast.ToDuration(v)
	}
	if v, ok := props["grpc.keepalive-permit"]; ok {
		p.keepAliveParams.PermitWithoutStream = cast.ToBool(v)
	}
	if v, ok := props["grpc.fail-fast"]; ok {
		p.failFast = cast.ToBool(v)
	}
	if v, ok := props["ssl-target-name-override"]; ok {
		p.hostOverride = cast.ToString(v)
	}
	if v, ok := props["allow-insecure"]; ok {
		p.insecure = cast.ToBool(v)
	}
}

// WithProperties applies the connection properties of a node's config section
func WithProperties(props map[string]interface{}) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(propertiesSetter); ok {
			setter.SetFromProperties(props)
		}
	}
}

type hostOverrideSetter interface {
	SetHostOverride(value string)
}

type certificateSetter interface {
	AddCertificate(value *x509.Certificate)
}

type keepAliveParamsSetter interface {
	SetKeepAliveParams(value keepalive.ClientParameters)
}

type failFastSetter interface {
	SetFailFast(value bool)
}

type connectTimeoutSetter interface {
	SetConnectTimeout(value time.Duration)
}

type insecureSetter interface {
	SetInsecure(value bool)
}

type dialerSetter interface {
	SetDialer(value Dialer)
}

type propertiesSetter interface {
	SetFromProperties(props map[string]interface{})
}
