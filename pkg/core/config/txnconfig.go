/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/multi"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/retry"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/core"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/config/lookup"
)

var logger = logging.NewLogger("fabtxn/core")

// TxnConfig is the configuration of a transaction client
type TxnConfig struct {
	Channel   string
	Chaincode string
	// Policy is an endorsement policy expression over accepted, rejected and
	// total. Empty requires every endorser to accept.
	Policy      string
	Identity    IdentityConfig
	Endorsers   []EndpointConfig
	Committer   EndpointConfig
	EventSource EndpointConfig
	Timeouts    TimeoutsConfig
	Retry       RetryConfig
	Metrics     MetricsConfig
}

// IdentityConfig locates the signing identity
type IdentityConfig struct {
	MSPID string
	Cert  string
	Key   string
}

// TLSConfig holds a TLS CA certificate, either inline or as a file path
type TLSConfig struct {
	Path string
	Pem  string
}

// Bytes returns the PEM bytes, reading Path when Pem is empty
func (c TLSConfig) Bytes() ([]byte, error) {
	if c.Pem != "" {
		return []byte(c.Pem), nil
	}
	if c.Path == "" {
		return nil, nil
	}
	raw, err := ioutil.ReadFile(c.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading TLS certificate %s failed", c.Path)
	}
	return raw, nil
}

// EndpointConfig describes a network node
type EndpointConfig struct {
	URL         string
	MSPID       string
	TLSCACert   TLSConfig
	GRPCOptions map[string]interface{}
}

// TimeoutsConfig bounds each phase of a transaction
type TimeoutsConfig struct {
	Connection time.Duration
	Proposal   time.Duration
	Commit     time.Duration
	Event      time.Duration
}

// RetryConfig configures caller-side retries of failed transactions
type RetryConfig struct {
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
}

// MetricsConfig configures the prometheus endpoint
type MetricsConfig struct {
	Enabled       bool
	ListenAddress string
}

// Load reads a TxnConfig from the backends of provider. The event source
// defaults to the first endorser.
func Load(provider core.ConfigProvider) (*TxnConfig, error) {
	if provider == nil {
		return nil, errors.New("config provider is required")
	}

	backends, err := provider()
	if err != nil {
		return nil, errors.WithMessage(err, "loading config backends failed")
	}

	l := lookup.New(backends...)

	c := &TxnConfig{
		Channel:   l.GetString("channel"),
		Chaincode: l.GetString("chaincode"),
		Policy:    l.GetString("policy"),
		Timeouts: TimeoutsConfig{
			Connection: l.GetDuration("timeouts.connection"),
			Proposal:   l.GetDuration("timeouts.proposal"),
			Commit:     l.GetDuration("timeouts.commit"),
			Event:      l.GetDuration("timeouts.event"),
		},
		Retry: RetryConfig{
			Attempts:       retry.DefaultOpts.Attempts,
			InitialBackoff: retry.DefaultOpts.InitialBackoff,
			MaxBackoff:     retry.DefaultOpts.MaxBackoff,
			BackoffFactor:  retry.DefaultOpts.BackoffFactor,
		},
		Metrics: MetricsConfig{
			Enabled:       l.GetBool("metrics.enabled"),
			ListenAddress: l.GetString("metrics.listenAddress"),
		},
	}

	for key, target := range map[string]interface{}{
		"identity":    &c.Identity,
		"endorsers":   &c.Endorsers,
		"committer":   &c.Committer,
		"eventSource": &c.EventSource,
		"retry":       &c.Retry,
	} {
		if err := l.UnmarshalKey(key, target); err != nil {
			return nil, errors.Wrapf(err, "unmarshal of config key [%s] failed", key)
		}
	}

	if c.EventSource.URL == "" && len(c.Endorsers) > 0 {
		logger.Debugf("no event source configured, using endorser %s", c.Endorsers[0].URL)
		c.EventSource = c.Endorsers[0]
	}

	return c, nil
}

// Validate reports every missing or invalid setting. Chaincode is optional
// since block queries do not need one.
func (c *TxnConfig) Validate() error {
	var errs error

	if c.Channel == "" {
		errs = multi.Append(errs, errors.New("channel is required"))
	}
	if c.Identity.MSPID == "" || c.Identity.Cert == "" || c.Identity.Key == "" {
		errs = multi.Append(errs, errors.New("identity requires mspID, cert and key"))
	}
	if len(c.Endorsers) == 0 {
		errs = multi.Append(errs, errors.New("at least one endorser is required"))
	}
	for i, e := range c.Endorsers {
		if e.URL == "" {
			errs = multi.Append(errs, errors.Errorf("endorser %d has no url", i))
		}
	}
	if c.Committer.URL == "" {
		errs = multi.Append(errs, errors.New("committer url is required"))
	}

	for name, d := range map[string]time.Duration{
		"connection": c.Timeouts.Connection,
		"proposal":   c.Timeouts.Proposal,
		"commit":     c.Timeouts.Commit,
		"event":      c.Timeouts.Event,
	} {
		if d < 0 {
			errs = multi.Append(errs, errors.Errorf("%s timeout must not be negative", name))
		}
	}

	if c.Retry.Attempts < 0 {
		errs = multi.Append(errs, errors.New("retry attempts must not be negative"))
	}
	if c.Retry.Attempts > 0 && c.Retry.BackoffFactor < 1 {
		errs = multi.Append(errs, errors.New("retry backoff factor must be at least 1"))
	}
	if c.Metrics.Enabled && c.Metrics.ListenAddress == "" {
		errs = multi.Append(errs, errors.New("metrics listen address is required when metrics are enabled"))
	}

	return errs
}

// ProposalOptions returns the options for sending proposals
func (c *TxnConfig) ProposalOptions() fab.ProposalOptions {
	return fab.ProposalOptions{Timeout: c.Timeouts.Proposal}
}

// CommitOptions returns the options for committing transactions
func (c *TxnConfig) CommitOptions() fab.CommitOptions {
	return fab.CommitOptions{Timeout: c.Timeouts.Commit}
}

// EventOptions returns the options for confirming transactions
func (c *TxnConfig) EventOptions() fab.EventOptions {
	return fab.EventOptions{Timeout: c.Timeouts.Event, Target: c.EventSource.URL}
}

// RetryOpts returns the retry options
func (c *TxnConfig) RetryOpts() retry.Opts {
	return retry.Opts{
		Attempts:       c.Retry.Attempts,
		InitialBackoff: c.Retry.InitialBackoff,
		MaxBackoff:     c.Retry.MaxBackoff,
		BackoffFactor:  c.Retry.BackoffFactor,
		RetryableCodes: retry.DefaultRetryableCodes,
	}
}
