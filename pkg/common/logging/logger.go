/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logging provides module loggers for the packages of the client.
//
//  Basic Flow:
//  1) Optionally initialize a custom provider (defaults to zap)
//  2) Create new logger for specific module
//  3) Call log info
package logging

import (
	"sync"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/api"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/metadata"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/logging/zaplog"
)

// Logger is a module logger, the underlying instance is resolved on first use
type Logger struct {
	instance api.Logger
	module   string
	once     sync.Once
}

var (
	loggerProviderInstance api.LoggerProvider
	loggerProviderOnce     sync.Once
)

// Level defines all available log levels for log messages.
type Level int

// Log levels.
const (
	CRITICAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

const loggerModule = "fabtxn/common"

// NewLogger creates and returns a Logger object based on the module name.
func NewLogger(module string) *Logger {
	return &Logger{module: module}
}

func loggerProvider() api.LoggerProvider {
	loggerProviderOnce.Do(func() {
		loggerProviderInstance = zaplog.NewProvider()
	})
	return loggerProviderInstance
}

// Initialize sets the provider used by every module logger. It only has an
// effect before the first log output.
func Initialize(l api.LoggerProvider) {
	loggerProviderOnce.Do(func() {
		loggerProviderInstance = l
		loggerProviderInstance.GetLogger(loggerModule).Debug("Logger provider initialized")
	})
}

// Provider returns the provider backing module loggers
func Provider() api.LoggerProvider {
	return loggerProvider()
}

// SetLevel sets the log level for given module
func SetLevel(module string, level Level) {
	zaplog.SetLevel(module, api.Level(level))
}

// GetLevel returns the log level for given module
func GetLevel(module string) Level {
	return Level(zaplog.GetLevel(module))
}

// IsEnabledFor checks if the given log level is enabled for the module
func IsEnabledFor(module string, level Level) bool {
	return zaplog.IsEnabledFor(module, api.Level(level))
}

// LogLevel returns the log level from a string representation.
func LogLevel(level string) (Level, error) {
	l, err := metadata.ParseLevel(level)
	return Level(l), err
}

// Fatal calls Fatal function of underlying logger
func (l *Logger) Fatal(args ...interface{}) {
	l.logger().Fatal(args...)
}

// Fatalf calls Fatalf function of underlying logger
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logger().Fatalf(format, args...)
}

// Panic calls Panic function of underlying logger
func (l *Logger) Panic(args ...interface{}) {
	l.logger().Panic(args...)
}

// Panicf calls Panicf function of underlying logger
func (l *Logger) Panicf(format string, args ...interface{}) {
	l.logger().Panicf(format, args...)
}

// Debug calls Debug function of underlying logger
func (l *Logger) Debug(args ...interface{}) {
	l.logger().Debug(args...)
}

// Debugf calls Debugf function of underlying logger
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger().Debugf(format, args...)
}

// Info calls Info function of underlying logger
func (l *Logger) Info(args ...interface{}) {
	l.logger().Info(args...)
}

// Infof calls Infof function of underlying logger
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger().Infof(format, args...)
}

// Warn calls Warn function of underlying logger
func (l *Logger) Warn(args ...interface{}) {
	l.logger().Warn(args...)
}

// Warnf calls Warnf function of underlying logger
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger().Warnf(format, args...)
}

// Error calls Error function of underlying logger
func (l *Logger) Error(args ...interface{}) {
	l.logger().Error(args...)
}

// Errorf calls Errorf function of underlying logger
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logger().Errorf(format, args...)
}

func (l *Logger) logger() api.Logger {
	l.once.Do(func() {
		l.instance = loggerProvider().GetLogger(l.module)
	})
	return l.instance
}
