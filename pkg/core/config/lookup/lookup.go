/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package lookup reads typed values from a list of config backends. The
// first backend holding a key wins.
package lookup

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/core"
)

// ConfigLookup reads keys across backends in order
type ConfigLookup struct {
	backends []core.ConfigBackend
}

// New returns a lookup over backends. Nil backends are skipped.
func New(backends ...core.ConfigBackend) *ConfigLookup {
	return &ConfigLookup{backends: backends}
}

// Lookup returns the raw value of key from the first backend that has it
func (c *ConfigLookup) Lookup(key string) (interface{}, bool) {
	for _, backend := range c.backends {
		if backend == nil {
			continue
		}
		if value, ok := backend.Lookup(key); ok {
			return value, true
		}
	}
	return nil, false
}

// GetBool returns key as a bool, false when missing
func (c *ConfigLookup) GetBool(key string) bool {
	value, _ := c.Lookup(key)
	return cast.ToBool(value)
}

// GetString returns key as a string, empty when missing
func (c *ConfigLookup) GetString(key string) string {
	value, _ := c.Lookup(key)
	return cast.ToString(value)
}

// GetDuration returns key as a duration. Plain numbers are nanoseconds.
func (c *ConfigLookup) GetDuration(key string) time.Duration {
	value, _ := c.Lookup(key)
	return cast.ToDuration(value)
}

// UnmarshalKey decodes key into target, accepting "10s" style strings for
// durations. A missing key leaves target untouched.
func (c *ConfigLookup) UnmarshalKey(key string, target interface{}) error {
	value, ok := c.Lookup(key)
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(value)
}
