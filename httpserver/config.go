/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package httpserver

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is immutable once passed to Start. Zero-valued fields are filled
// in with the documented defaults by Validate.
type Config struct {
	// Port is the listening TCP port. Default 80.
	Port int `mapstructure:"port" json:"port" yaml:"port" toml:"port" validate:"omitempty,min=1,max=65535"`

	// BindAddr is the local address to bind. Empty means "any IPv4".
	BindAddr string `mapstructure:"bind_addr" json:"bind_addr" yaml:"bind_addr" toml:"bind_addr" validate:"omitempty,ip"`

	// WorkerPoolSize bounds how many connections are served concurrently.
	// Default 1. Go's zero value is indistinguishable from an explicit
	// opt-in of 0, so a zero-valued Config always gets the default applied
	// by Validate; there is no way to request an unbounded reactor through
	// this field.
	WorkerPoolSize int `mapstructure:"worker_pool_size" json:"worker_pool_size" yaml:"worker_pool_size" toml:"worker_pool_size" validate:"omitempty,min=0"`

	// RequestTimeout bounds how long the engine waits for a full request
	// head. Default 5s.
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout" yaml:"request_timeout" toml:"request_timeout" validate:"omitempty,min=0"`

	// ContentTimeout bounds how long the engine waits for a declared body
	// and, separately, for a response flush. Default 300s.
	ContentTimeout time.Duration `mapstructure:"content_timeout" json:"content_timeout" yaml:"content_timeout" toml:"content_timeout" validate:"omitempty,min=0"`

	// ReuseAddress requests SO_REUSEADDR-equivalent listener behavior.
	// DefaultConfig sets it to true. Validate leaves it as given, since an
	// unset false cannot be told apart from an explicit false.
	ReuseAddress bool `mapstructure:"reuse_address" json:"reuse_address" yaml:"reuse_address" toml:"reuse_address"`
}

const (
	defaultPort           = 80
	defaultWorkerPoolSize = 1
	defaultRequestTimeout = 5 * time.Second
	defaultContentTimeout = 300 * time.Second
)

// DefaultConfig returns a Config populated with every documented default.
func DefaultConfig() Config {
	return Config{
		Port:           defaultPort,
		WorkerPoolSize: defaultWorkerPoolSize,
		RequestTimeout: defaultRequestTimeout,
		ContentTimeout: defaultContentTimeout,
		ReuseAddress:   true,
	}
}

// applyDefaults fills zero-valued fields with the documented defaults without
// touching fields the caller explicitly set.
func (c Config) applyDefaults() Config {
	if c.Port == 0 {
		c.Port = defaultPort
	}

	if c.WorkerPoolSize == 0 {
		c.WorkerPoolSize = defaultWorkerPoolSize
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}

	if c.ContentTimeout == 0 {
		c.ContentTimeout = defaultContentTimeout
	}

	return c
}

var validate = validator.New()

// Validate applies defaults and runs struct-tag validation, returning a
// wrapped ErrorConfigValidate on the first violation.
func (c Config) Validate() (Config, error) {
	c = c.applyDefaults()

	if err := validate.Struct(c); err != nil {
		return c, newError(ErrorConfigValidate, err)
	}

	return c, nil
}
