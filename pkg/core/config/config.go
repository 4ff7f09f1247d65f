/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config loads the client configuration with viper. Every key can be
// overridden by an environment variable named after the key with the
// FABTXN prefix, e.g. FABTXN_CHANNEL or FABTXN_TIMEOUTS_EVENT.
package config

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/core"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/config/lookup"
)

const (
	defaultEnvPrefix = "FABTXN"

	logLevelKey     = "logging.level"
	moduleLevelsKey = "logging.modules"
)

// logModules receive the level of logging.level
var logModules = [...]string{"fabtxn/common", "fabtxn/core", "fabtxn/fab", "fabtxn/blockstream",
	"fabtxn/transaction", "fabtxn/cmd"}

type options struct {
	envPrefix string
}

// Option customizes how the configuration is read
type Option func(opts *options) error

// WithEnvPrefix replaces the FABTXN prefix of environment overrides
func WithEnvPrefix(prefix string) Option {
	return func(opts *options) error {
		if prefix == "" {
			return errors.New("environment prefix is required")
		}
		opts.envPrefix = prefix
		return nil
	}
}

// FromFile reads the named file. Its extension selects the format.
func FromFile(name string, opts ...Option) core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		if name == "" {
			return nil, errors.New("filename is required")
		}
		return read(opts, func(v *viper.Viper) error {
			v.SetConfigFile(name)
			return errors.Wrapf(v.ReadInConfig(), "loading config file failed: %s", name)
		})
	}
}

// FromRaw reads configBytes, formatted as configType ("yaml" or "json")
func FromRaw(configBytes []byte, configType string, opts ...Option) core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		if configType == "" {
			return nil, errors.New("empty config type")
		}
		return read(opts, func(v *viper.Viper) error {
			v.SetConfigType(configType)
			return errors.Wrap(v.ReadConfig(bytes.NewReader(configBytes)), "loading config failed")
		})
	}
}

func read(opts []Option, load func(v *viper.Viper) error) ([]core.ConfigBackend, error) {
	o := options{envPrefix: defaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errors.WithMessage(err, "invalid config option")
		}
	}

	v := viper.New()
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := load(v); err != nil {
		return nil, err
	}

	backend := &viperBackend{v: v}
	if err := applyLogLevels(backend); err != nil {
		return nil, err
	}
	return []core.ConfigBackend{backend}, nil
}

// viperBackend serves lookups from a loaded viper instance
type viperBackend struct {
	v *viper.Viper
}

func (b *viperBackend) Lookup(key string) (interface{}, bool) {
	value := b.v.Get(key)
	return value, value != nil
}

// applyLogLevels sets logging.level on every client module, then the
// per-module levels of logging.modules.
func applyLogLevels(backend core.ConfigBackend) error {
	l := lookup.New(backend)

	level := logging.INFO
	if s := l.GetString(logLevelKey); s != "" {
		var err error
		if level, err = logging.LogLevel(s); err != nil {
			return errors.WithMessagef(err, "invalid %s", logLevelKey)
		}
	}
	for _, module := range logModules {
		logging.SetLevel(module, level)
	}

	var modules map[string]string
	if err := l.UnmarshalKey(moduleLevelsKey, &modules); err != nil {
		return errors.WithMessagef(err, "invalid %s", moduleLevelsKey)
	}
	for module, s := range modules {
		moduleLevel, err := logging.LogLevel(s)
		if err != nil {
			return errors.WithMessagef(err, "invalid level for module %s", module)
		}
		logging.SetLevel(module, moduleLevel)
	}
	return nil
}
