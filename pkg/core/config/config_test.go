/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/retry"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
)

const configTestFile = "testdata/config_test.yaml"

func resetLogLevels(t *testing.T) {
	t.Cleanup(func() {
		for _, m := range logModules {
			logging.SetLevel(m, logging.INFO)
		}
	})
}

func TestFromFile(t *testing.T) {
	resetLogLevels(t)

	cfg, err := Load(FromFile(configTestFile))
	require.NoError(t, err)

	assert.Equal(t, "mychannel", cfg.Channel)
	assert.Equal(t, "mycc", cfg.Chaincode)
	assert.Equal(t, "accepted >= 2", cfg.Policy)
	assert.Equal(t, IdentityConfig{MSPID: "Org1MSP", Cert: "testdata/user-cert.pem", Key: "testdata/user-key.pem"}, cfg.Identity)

	require.Len(t, cfg.Endorsers, 2)
	assert.Equal(t, "grpcs://peer0.org1.example.com:7051", cfg.Endorsers[0].URL)
	assert.Equal(t, "Org1MSP", cfg.Endorsers[0].MSPID)
	assert.Equal(t, "testdata/tlsca.pem", cfg.Endorsers[0].TLSCACert.Path)
	assert.Equal(t, "peer0.org1.example.com", cfg.Endorsers[0].GRPCOptions["ssl-target-name-override"])
	assert.Contains(t, cfg.Endorsers[1].TLSCACert.Pem, "BEGIN CERTIFICATE")

	assert.Equal(t, "grpcs://orderer.example.com:7050", cfg.Committer.URL)
	assert.Equal(t, cfg.Endorsers[0].URL, cfg.EventSource.URL)

	assert.Equal(t, TimeoutsConfig{
		Connection: 3 * time.Second,
		Proposal:   10 * time.Second,
		Commit:     15 * time.Second,
		Event:      30 * time.Second,
	}, cfg.Timeouts)
	assert.Equal(t, RetryConfig{Attempts: 3, InitialBackoff: 250 * time.Millisecond, MaxBackoff: 5 * time.Second, BackoffFactor: 1.5}, cfg.Retry)
	assert.Equal(t, MetricsConfig{Enabled: true, ListenAddress: "127.0.0.1:9443"}, cfg.Metrics)

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, logging.DEBUG, logging.GetLevel("fabtxn/transaction"))
	assert.Equal(t, logging.WARNING, logging.GetLevel("fabtxn/blockstream"))

	assert.Equal(t, 10*time.Second, cfg.ProposalOptions().Timeout)
	assert.Equal(t, 15*time.Second, cfg.CommitOptions().Timeout)
	assert.Equal(t, 30*time.Second, cfg.EventOptions().Timeout)
	assert.Equal(t, cfg.Endorsers[0].URL, cfg.EventOptions().Target)

	opts := cfg.RetryOpts()
	assert.Equal(t, 3, opts.Attempts)
	assert.Equal(t, 1.5, opts.BackoffFactor)
	assert.Equal(t, retry.DefaultRetryableCodes, opts.RetryableCodes)
}

func TestFromFileErrors(t *testing.T) {
	_, err := FromFile("")()
	assert.EqualError(t, err, "filename is required")

	_, err = FromFile("testdata/missing.yaml")()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file failed")

	_, err = Load(nil)
	assert.EqualError(t, err, "config provider is required")

	_, err = Load(FromFile(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "filename is required")
}

func TestFromRaw(t *testing.T) {
	resetLogLevels(t)

	raw := []byte(`
channel: rawchannel
chaincode: rawcc
endorsers:
  - url: peer0:7051
committer:
  url: orderer:7050
eventSource:
  url: peer1:7051
`)
	cfg, err := Load(FromRaw(raw, "yaml"))
	require.NoError(t, err)

	assert.Equal(t, "rawchannel", cfg.Channel)
	assert.Equal(t, "peer1:7051", cfg.EventSource.URL)
	assert.Equal(t, retry.DefaultOpts.Attempts, cfg.Retry.Attempts)
	assert.Equal(t, retry.DefaultOpts.BackoffFactor, cfg.Retry.BackoffFactor)
	assert.Zero(t, cfg.Timeouts.Event)
	assert.Equal(t, logging.INFO, logging.GetLevel("fabtxn/core"))

	_, err = FromRaw(raw, "")()
	assert.EqualError(t, err, "empty config type")

	_, err = FromRaw([]byte("channel: [unterminated"), "yaml")()
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	resetLogLevels(t)

	_, err := FromRaw([]byte("logging:\n  level: chatty\n"), "yaml")()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging.level")

	_, err = FromRaw([]byte("logging:\n  modules:\n    fabtxn/fab: chatty\n"), "yaml")()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid level for module fabtxn/fab")
}

func TestEnvOverride(t *testing.T) {
	resetLogLevels(t)

	require.NoError(t, os.Setenv("FABTXN_CHANNEL", "envchannel"))
	require.NoError(t, os.Setenv("CUSTOM_CHAINCODE", "customcc"))
	defer func() {
		os.Unsetenv("FABTXN_CHANNEL")
		os.Unsetenv("CUSTOM_CHAINCODE")
	}()

	cfg, err := Load(FromFile(configTestFile))
	require.NoError(t, err)
	assert.Equal(t, "envchannel", cfg.Channel)
	assert.Equal(t, "mycc", cfg.Chaincode)

	cfg, err = Load(FromFile(configTestFile, WithEnvPrefix("CUSTOM")))
	require.NoError(t, err)
	assert.Equal(t, "mychannel", cfg.Channel)
	assert.Equal(t, "customcc", cfg.Chaincode)

	_, err = FromFile(configTestFile, WithEnvPrefix(""))()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "environment prefix is required")
}

func TestValidate(t *testing.T) {
	cfg := &TxnConfig{}
	err := cfg.Validate()
	require.Error(t, err)
	for _, msg := range []string{
		"channel is required",
		"identity requires mspID, cert and key",
		"at least one endorser is required",
		"committer url is required",
	} {
		assert.Contains(t, err.Error(), msg)
	}

	cfg = &TxnConfig{
		Channel:   "ch",
		Chaincode: "cc",
		Identity:  IdentityConfig{MSPID: "Org1MSP", Cert: "c", Key: "k"},
		Endorsers: []EndpointConfig{{URL: "peer0:7051"}, {}},
		Committer: EndpointConfig{URL: "orderer:7050"},
		Timeouts:  TimeoutsConfig{Event: -time.Second},
		Retry:     RetryConfig{Attempts: 2, BackoffFactor: 0.5},
		Metrics:   MetricsConfig{Enabled: true},
	}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endorser 1 has no url")
	assert.Contains(t, err.Error(), "event timeout must not be negative")
	assert.Contains(t, err.Error(), "retry backoff factor must be at least 1")
	assert.Contains(t, err.Error(), "metrics listen address is required")
	assert.NotContains(t, err.Error(), "channel is required")

	cfg.Chaincode = ""
	assert.NotContains(t, cfg.Validate().Error(), "chaincode")
}

func TestTLSConfigBytes(t *testing.T) {
	b, err := TLSConfig{}.Bytes()
	assert.NoError(t, err)
	assert.Nil(t, b)

	b, err = TLSConfig{Pem: "inline", Path: "ignored"}.Bytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte("inline"), b)

	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, ioutil.WriteFile(path, []byte("from file"), 0600))
	b, err = TLSConfig{Path: path}.Bytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte("from file"), b)

	_, err = TLSConfig{Path: filepath.Join(t.TempDir(), "missing.pem")}.Bytes()
	assert.Error(t, err)
}
