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

package logger

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	loglvl "github.com/nabbar/evserver/logger/level"
)

func levelToLogrus(l loglvl.Level) logrus.Level {
	switch l {
	case loglvl.PanicLevel:
		return logrus.PanicLevel
	case loglvl.FatalLevel:
		return logrus.FatalLevel
	case loglvl.ErrorLevel:
		return logrus.ErrorLevel
	case loglvl.WarnLevel:
		return logrus.WarnLevel
	case loglvl.DebugLevel:
		return logrus.DebugLevel
	case loglvl.NilLevel:
		return logrus.PanicLevel // most restrictive logrus level: only panic entries pass
	default:
		return logrus.InfoLevel
	}
}

type lgr struct {
	mu  sync.Mutex
	out *logrus.Logger
	lvl atomic.Uint32
}

// New wraps a logrus.Logger (or a fresh default one when nil) as a Logger.
func New(base *logrus.Logger) Logger {
	if base == nil {
		base = logrus.New()
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	l := &lgr{out: base}
	l.SetLevel(loglvl.InfoLevel)

	return l
}

func (o *lgr) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.out.Writer().Write(p)
}

func (o *lgr) SetLevel(lvl loglvl.Level) {
	o.lvl.Store(uint32(lvl))

	o.mu.Lock()
	defer o.mu.Unlock()
	o.out.SetLevel(levelToLogrus(lvl))
}

func (o *lgr) GetLevel() loglvl.Level {
	return loglvl.Level(o.lvl.Load())
}

func (o *lgr) entry() *logrus.Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return logrus.NewEntry(o.out)
}

func (o *lgr) WithField(key string, val interface{}) Logger {
	return &entryLogger{base: o, entry: o.entry().WithField(key, val)}
}

func (o *lgr) WithFields(fields map[string]interface{}) Logger {
	return &entryLogger{base: o, entry: o.entry().WithFields(fields)}
}

func (o *lgr) Debug(args ...interface{}) { o.entry().Debug(args...) }
func (o *lgr) Info(args ...interface{})  { o.entry().Info(args...) }
func (o *lgr) Warn(args ...interface{})  { o.entry().Warn(args...) }
func (o *lgr) Error(args ...interface{}) { o.entry().Error(args...) }

func (o *lgr) Debugf(format string, args ...interface{}) { o.entry().Debugf(format, args...) }
func (o *lgr) Infof(format string, args ...interface{})  { o.entry().Infof(format, args...) }
func (o *lgr) Warnf(format string, args ...interface{})  { o.entry().Warnf(format, args...) }
func (o *lgr) Errorf(format string, args ...interface{}) { o.entry().Errorf(format, args...) }

// entryLogger is the result of WithField/WithFields: a Logger bound to a
// pre-populated logrus.Entry so structured context survives chained calls.
type entryLogger struct {
	base  *lgr
	entry *logrus.Entry
}

func (o *entryLogger) Write(p []byte) (int, error)       { return o.base.Write(p) }
func (o *entryLogger) SetLevel(lvl loglvl.Level)         { o.base.SetLevel(lvl) }
func (o *entryLogger) GetLevel() loglvl.Level            { return o.base.GetLevel() }
func (o *entryLogger) WithField(key string, val interface{}) Logger {
	return &entryLogger{base: o.base, entry: o.entry.WithField(key, val)}
}
func (o *entryLogger) WithFields(fields map[string]interface{}) Logger {
	return &entryLogger{base: o.base, entry: o.entry.WithFields(fields)}
}

func (o *entryLogger) Debug(args ...interface{}) { o.entry.Debug(args...) }
func (o *entryLogger) Info(args ...interface{})  { o.entry.Info(args...) }
func (o *entryLogger) Warn(args ...interface{})  { o.entry.Warn(args...) }
func (o *entryLogger) Error(args ...interface{}) { o.entry.Error(args...) }

func (o *entryLogger) Debugf(format string, args ...interface{}) { o.entry.Debugf(format, args...) }
func (o *entryLogger) Infof(format string, args ...interface{})  { o.entry.Infof(format, args...) }
func (o *entryLogger) Warnf(format string, args ...interface{})  { o.entry.Warnf(format, args...) }
func (o *entryLogger) Errorf(format string, args ...interface{}) { o.entry.Errorf(format, args...) }
