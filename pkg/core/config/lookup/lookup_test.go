/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lookup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapBackend map[string]interface{}

func (b mapBackend) Lookup(key string) (interface{}, bool) {
	v, ok := b[key]
	return v, ok
}

type endpoint struct {
	URL                string
	ServerHostOverride string
	Timeout            time.Duration
	Tags               []string
}

func TestGetters(t *testing.T) {
	l := New(nil, mapBackend{
		"bool":     "true",
		"string":   42,
		"duration": "3s",
		"nanos":    1500,
	})

	assert.True(t, l.GetBool("bool"))
	assert.Equal(t, "42", l.GetString("string"))
	assert.Equal(t, 3*time.Second, l.GetDuration("duration"))
	assert.Equal(t, 1500*time.Nanosecond, l.GetDuration("nanos"))

	assert.False(t, l.GetBool("missing"))
	assert.Empty(t, l.GetString("missing"))
	assert.Zero(t, l.GetDuration("missing"))
}

func TestBackendPrecedence(t *testing.T) {
	l := New(mapBackend{"channel": "first"}, mapBackend{"channel": "second", "chaincode": "mycc"})

	assert.Equal(t, "first", l.GetString("channel"))
	assert.Equal(t, "mycc", l.GetString("chaincode"))
}

func TestUnmarshalKey(t *testing.T) {
	l := New(mapBackend{
		"endpoints": []interface{}{
			map[interface{}]interface{}{
				"url":                "grpcs://peer0.org1.example.com:7051",
				"serverHostOverride": "peer0.org1.example.com",
				"timeout":            "10s",
				"tags":               []interface{}{"a", "b"},
			},
		},
	})

	var endpoints []endpoint
	require.NoError(t, l.UnmarshalKey("endpoints", &endpoints))
	require.Len(t, endpoints, 1)
	assert.Equal(t, "grpcs://peer0.org1.example.com:7051", endpoints[0].URL)
	assert.Equal(t, "peer0.org1.example.com", endpoints[0].ServerHostOverride)
	assert.Equal(t, 10*time.Second, endpoints[0].Timeout)
	assert.Equal(t, []string{"a", "b"}, endpoints[0].Tags)

	untouched := []endpoint{{URL: "keep"}}
	require.NoError(t, l.UnmarshalKey("missing", &untouched))
	assert.Equal(t, "keep", untouched[0].URL)
}

func TestUnmarshalKeyFromEnvironmentStrings(t *testing.T) {
	l := New(mapBackend{
		"endpoint": map[string]interface{}{
			"url":     "grpcs://peer1.org1.example.com:7051",
			"timeout": "250ms",
			"tags":    "a,b,c",
		},
	})

	var e endpoint
	require.NoError(t, l.UnmarshalKey("endpoint", &e))
	assert.Equal(t, 250*time.Millisecond, e.Timeout)
	assert.Equal(t, []string{"a", "b", "c"}, e.Tags)

	var wrong struct{ Timeout time.Duration }
	assert.Error(t, New(mapBackend{"bad": map[string]interface{}{"timeout": "soon"}}).UnmarshalKey("bad", &wrong))
}
