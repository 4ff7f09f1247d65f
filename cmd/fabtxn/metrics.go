/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/config"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/metrics"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/metrics/disabled"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/metrics/prometheus"
)

const shutdownTimeout = 5 * time.Second

// metricsServer exposes the transaction metrics on /metrics while a command runs
type metricsServer struct {
	provider metrics.Provider
	addr     string
	server   *http.Server
}

func startMetrics(cfg config.MetricsConfig) (*metricsServer, error) {
	if !cfg.Enabled {
		return &metricsServer{provider: &disabled.Provider{}}, nil
	}

	registry := prom.NewRegistry()

	lis, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s failed", cfg.ListenAddress)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	s := &metricsServer{
		provider: prometheus.NewProvider(registry),
		addr:     lis.Addr().String(),
		server:   &http.Server{Handler: mux},
	}

	go func() {
		if err := s.server.Serve(lis); err != nil && err != http.ErrServerClosed {
			logger.Warnf("metrics server stopped: %s", err)
		}
	}()
	logger.Infof("serving metrics on %s", s.addr)

	return s, nil
}

// Close stops the server, if one was started
func (s *metricsServer) Close() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		logger.Warnf("metrics server shutdown failed: %s", err)
	}
}
