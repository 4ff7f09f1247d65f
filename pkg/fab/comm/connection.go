/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package comm dials the gRPC connections to peers and orderers.
package comm

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"regexp"
	"strings"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/status"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	grpcstatus "google.golang.org/grpc/status"
)

var logger = logging.NewLogger("fabtxn/fab")

const (
	// GRPC max message size (same as Fabric)
	maxCallRecvMsgSize = 100 * 1024 * 1024
	maxCallSendMsgSize = 100 * 1024 * 1024
)

var securedURL = regexp.MustCompile(`(?i)^[a-z]+s://`)

// ToAddress trims the gRPC protocol prefix, the url is returned unchanged if none is found
func ToAddress(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[i+3:]
	}
	return url
}

// AttemptSecured reports whether a TLS connection should be used for url:
// 'grpcs' means yes, 'grpc' means no, no protocol means !allowInsecure.
func AttemptSecured(url string, allowInsecure bool) bool {
	if securedURL.MatchString(url) {
		return true
	}
	if strings.Contains(url, "://") {
		return false
	}
	return !allowInsecure
}

// CertificateFromPEM parses the first certificate in a PEM block
func CertificateFromPEM(raw []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("no PEM data found")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse certificate")
	}
	return cert, nil
}

// DialOptions returns the gRPC dial options for url
func DialOptions(url string, opts ...options.Opt) ([]grpc.DialOption, error) {
	p := defaultParams()
	options.Apply(p, opts)
	return p.dialOptions(url)
}

func (p *params) dialOptions(url string) ([]grpc.DialOption, error) {
	var grpcOpts []grpc.DialOption
	if p.keepAliveParams.Time > 0 {
		grpcOpts = append(grpcOpts, grpc.WithKeepaliveParams(p.keepAliveParams))
	}
	grpcOpts = append(grpcOpts, grpc.WithDefaultCallOptions(grpc.WaitForReady(!p.failFast)))

	if AttemptSecured(url, p.insecure) {
		tlsConfig, err := p.tlsConfig()
		if err != nil {
			return nil, err
		}
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(credentials.NewTLS(tlsConfig)))
	} else {
		grpcOpts = append(grpcOpts, grpc.WithInsecure())
	}

	if p.dialer != nil {
		grpcOpts = append(grpcOpts, grpc.WithContextDialer(p.dialer))
	}

	grpcOpts = append(grpcOpts, grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxCallRecvMsgSize),
		grpc.MaxCallSendMsgSize(maxCallSendMsgSize)))

	return grpcOpts, nil
}

func (p *params) tlsConfig() (*tls.Config, error) {
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	for _, cert := range p.certificates {
		pool.AddCert(cert)
	}
	return &tls.Config{RootCAs: pool, ServerName: p.hostOverride, MinVersion: tls.VersionTLS12}, nil
}

// Dial connects to url, blocking until the connection is up or the connect timeout expires
func Dial(ctx context.Context, url string, opts ...options.Opt) (*grpc.ClientConn, error) {
	p := defaultParams()
	options.Apply(p, opts)

	grpcOpts, err := p.dialOptions(url)
	if err != nil {
		return nil, err
	}

	if p.connectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.connectTimeout)
		defer cancel()
	}

	address := ToAddress(url)
	logger.Debugf("Dialing %s", address)

	conn, err := grpc.DialContext(ctx, address, append(grpcOpts, grpc.WithBlock())...)
	if err != nil {
		if rpcStatus, ok := grpcstatus.FromError(err); ok {
			return nil, errors.WithMessage(status.NewFromGRPCStatus(rpcStatus), "connection failed")
		}
		return nil, status.New(status.ClientStatus, status.ConnectionFailed.ToInt32(),
			errors.WithMessagef(err, "failed to connect to %s", address).Error(), []interface{}{address})
	}
	return conn, nil
}
