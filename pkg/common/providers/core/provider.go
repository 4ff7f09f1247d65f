/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package core defines the configuration contracts of the client.
package core

// ConfigBackend returns the raw value stored under a dotted key
type ConfigBackend interface {
	Lookup(key string) (interface{}, bool)
}

// ConfigProvider provides the config backends the client is configured from
type ConfigProvider func() ([]ConfigBackend, error)
