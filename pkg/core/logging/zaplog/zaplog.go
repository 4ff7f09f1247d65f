/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package zaplog is the default logging provider. Every module logger is a
// named zap sugared logger gated by per-module levels.
package zaplog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/api"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/metadata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var moduleLevels = &metadata.ModuleLevels{}

// SetLevel sets the log level of a module for providers using the shared levels
func SetLevel(module string, level api.Level) {
	moduleLevels.SetLevel(module, level)
}

// GetLevel returns the log level of a module from the shared levels
func GetLevel(module string) api.Level {
	return moduleLevels.GetLevel(module)
}

// IsEnabledFor reports whether level is enabled for module in the shared levels
func IsEnabledFor(module string, level api.Level) bool {
	return moduleLevels.IsEnabledFor(module, level)
}

// Provider creates module loggers backed by a single zap core.
type Provider struct {
	base   *zap.Logger
	levels *metadata.ModuleLevels
}

// Opt configures a Provider
type Opt func(*options)

type options struct {
	out    io.Writer
	json   bool
	levels *metadata.ModuleLevels
}

// WithWriter sends log output to w instead of stderr
func WithWriter(w io.Writer) Opt {
	return func(o *options) {
		o.out = w
	}
}

// WithJSONEncoding switches from the console encoder to JSON
func WithJSONEncoding() Opt {
	return func(o *options) {
		o.json = true
	}
}

// WithModuleLevels uses levels instead of the package-wide module levels
func WithModuleLevels(levels *metadata.ModuleLevels) Opt {
	return func(o *options) {
		o.levels = levels
	}
}

// NewProvider returns a zap backed LoggerProvider
func NewProvider(opts ...Opt) *Provider {
	o := &options{out: os.Stderr, levels: moduleLevels}
	for _, opt := range opts {
		opt(o)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if o.json {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	// module levels are applied by Logger, the core accepts everything
	core := zapcore.NewCore(encoder, zapcore.AddSync(o.out), zapcore.DebugLevel)
	return &Provider{
		base:   newZapLogger(core),
		levels: o.levels,
	}
}

func newZapLogger(core zapcore.Core, options ...zap.Option) *zap.Logger {
	return zap.New(
		core,
		append([]zap.Option{
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		}, options...)...,
	)
}

// GetLogger returns the logger of the given module
func (p *Provider) GetLogger(module string) api.Logger {
	return &Logger{
		module: module,
		levels: p.levels,
		s:      p.base.Named(module).WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

// Sync flushes buffered log entries
func (p *Provider) Sync() error {
	return p.base.Sync()
}

// Logger adapts zap.SugaredLogger to api.Logger
type Logger struct {
	module string
	levels *metadata.ModuleLevels
	s      *zap.SugaredLogger
}

func (l *Logger) enabled(level api.Level) bool {
	return l.levels.IsEnabledFor(l.module, level)
}

// Fatal logs at CRITICAL and exits
func (l *Logger) Fatal(args ...interface{}) { l.s.Fatal(formatArgs(args)) }

// Fatalf logs at CRITICAL and exits
func (l *Logger) Fatalf(format string, args ...interface{}) { l.s.Fatalf(format, args...) }

// Panic logs at CRITICAL and panics
func (l *Logger) Panic(args ...interface{}) { l.s.Panic(formatArgs(args)) }

// Panicf logs at CRITICAL and panics
func (l *Logger) Panicf(format string, args ...interface{}) { l.s.Panicf(format, args...) }

// Debug logs at DEBUG
func (l *Logger) Debug(args ...interface{}) {
	if l.enabled(api.DEBUG) {
		l.s.Debug(formatArgs(args))
	}
}

// Debugf logs at DEBUG
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.enabled(api.DEBUG) {
		l.s.Debugf(format, args...)
	}
}

// Info logs at INFO
func (l *Logger) Info(args ...interface{}) {
	if l.enabled(api.INFO) {
		l.s.Info(formatArgs(args))
	}
}

// Infof logs at INFO
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.enabled(api.INFO) {
		l.s.Infof(format, args...)
	}
}

// Warn logs at WARNING
func (l *Logger) Warn(args ...interface{}) {
	if l.enabled(api.WARNING) {
		l.s.Warn(formatArgs(args))
	}
}

// Warnf logs at WARNING
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.enabled(api.WARNING) {
		l.s.Warnf(format, args...)
	}
}

// Error logs at ERROR
func (l *Logger) Error(args ...interface{}) {
	if l.enabled(api.ERROR) {
		l.s.Error(formatArgs(args))
	}
}

// Errorf logs at ERROR
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.enabled(api.ERROR) {
		l.s.Errorf(format, args...)
	}
}

// With returns a logger carrying the given key/value pairs
func (l *Logger) With(kvPairs ...interface{}) *Logger {
	return &Logger{module: l.module, levels: l.levels, s: l.s.With(kvPairs...)}
}

func formatArgs(args []interface{}) string { return strings.TrimSuffix(fmt.Sprintln(args...), "\n") }
