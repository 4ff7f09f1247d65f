/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package zaplog

import (
	"bytes"
	"testing"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/api"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/metadata"
	"github.com/stretchr/testify/assert"
)

const module = "fabtxn/test"

func newTestProvider(buf *bytes.Buffer, level api.Level) *Provider {
	levels := &metadata.ModuleLevels{}
	levels.SetLevel(module, level)
	return NewProvider(WithWriter(buf), WithModuleLevels(levels))
}

func TestModuleLevelGate(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestProvider(&buf, api.INFO).GetLogger(module)

	logger.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	logger.Infof("submitted %s", "tx1")
	assert.Contains(t, buf.String(), "submitted tx1")
	assert.Contains(t, buf.String(), module)
	assert.Contains(t, buf.String(), "INFO")

	buf.Reset()
	logger.Warn("block", 10, "delayed")
	assert.Contains(t, buf.String(), "block 10 delayed")

	buf.Reset()
	logger.Error("failed")
	assert.Contains(t, buf.String(), "ERROR")
}

func TestDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestProvider(&buf, api.DEBUG).GetLogger(module)

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestJSONEncoding(t *testing.T) {
	var buf bytes.Buffer
	levels := &metadata.ModuleLevels{}
	p := NewProvider(WithWriter(&buf), WithModuleLevels(levels), WithJSONEncoding())
	p.GetLogger(module).(*Logger).With("txID", "abc").Info("committed")
	assert.Contains(t, buf.String(), `"msg":"committed"`)
	assert.Contains(t, buf.String(), `"txID":"abc"`)
	assert.NoError(t, p.Sync())
}

func TestSharedLevels(t *testing.T) {
	SetLevel("fabtxn/shared", api.ERROR)
	assert.Equal(t, api.ERROR, GetLevel("fabtxn/shared"))
	assert.False(t, IsEnabledFor("fabtxn/shared", api.WARNING))
	assert.True(t, IsEnabledFor("fabtxn/shared", api.CRITICAL))
}
