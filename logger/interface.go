/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logger provides the structured diagnostics logger used internally
// by the reactor, connection state machine and server facade.
//
// The engine itself never logs application/access traffic - that stays an
// external collaborator's responsibility. What this package backs is the
// engine's own operational diagnostics (accept errors, connection open and close, panics
// recovered from a handler) so that an embedder gets the same observability
// the rest of this module's ecosystem provides, without the engine
// dictating an access log format.
package logger

import (
	"io"

	loglvl "github.com/nabbar/evserver/logger/level"
)

// Logger is the minimal structured-logging surface the engine depends on.
type Logger interface {
	io.Writer

	SetLevel(lvl loglvl.Level)
	GetLevel() loglvl.Level

	WithField(key string, val interface{}) Logger
	WithFields(fields map[string]interface{}) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Nop returns a Logger that discards every entry. Used as the zero-value
// default so a Server never has to nil-check its logger.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Write(p []byte) (int, error)             { return len(p), nil }
func (nopLogger) SetLevel(loglvl.Level)                   {}
func (nopLogger) GetLevel() loglvl.Level                  { return loglvl.NilLevel }
func (n nopLogger) WithField(string, interface{}) Logger  { return n }
func (n nopLogger) WithFields(map[string]interface{}) Logger {
	return n
}
func (nopLogger) Debug(...interface{})                    {}
func (nopLogger) Info(...interface{})                     {}
func (nopLogger) Warn(...interface{})                     {}
func (nopLogger) Error(...interface{})                    {}
func (nopLogger) Debugf(string, ...interface{})           {}
func (nopLogger) Infof(string, ...interface{})            {}
func (nopLogger) Warnf(string, ...interface{})            {}
func (nopLogger) Errorf(string, ...interface{})           {}
