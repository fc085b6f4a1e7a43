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

// Package httpserver is the Server Facade: it holds the configuration, the
// route table, the on_error/on_upgrade callbacks, and the start/stop
// lifecycle that binds the reactor, connection buffer, request parser,
// route table and response builder into one embeddable engine.
package httpserver

import (
	libatm "github.com/nabbar/evserver/atomic"

	"github.com/nabbar/evserver/catalog"
	"github.com/nabbar/evserver/conn"
	"github.com/nabbar/evserver/logger"
	"github.com/nabbar/evserver/route"
)

// Server is the complete lifecycle and registration surface an embedder
// uses. Route registration, OnError and OnUpgrade may only be called
// before Start; doing so afterward is undefined behavior.
type Server interface {
	// Register binds method on the path regex pattern to h.
	Register(pattern, method string, h route.Handler) error

	// RegisterFallback binds method on the default map consulted when no
	// regex entry matches.
	RegisterFallback(method string, h route.Handler) error

	// OnError installs the connection-error callback.
	OnError(cb conn.OnError)

	// OnUpgrade installs the Upgrade-header handoff callback.
	OnUpgrade(cb conn.OnUpgrade)

	// SetCatalogs overrides the default status/MIME catalogs. Passing nil
	// for either argument leaves that catalog untouched.
	SetCatalogs(status catalog.Status, mime catalog.MIME)

	// GetConfig returns the configuration currently in effect.
	GetConfig() Config

	// IsRunning reports whether Start has completed and Stop has not yet
	// been called.
	IsRunning() bool

	// Start binds the listener and sizes the reactor pool to
	// WorkerPoolSize, bounding how many accepted connections are served
	// concurrently. It freezes the route table. Returns once the listener
	// is bound; accepting runs in the background.
	Start() error

	// Stop closes the listening socket. In-flight connections complete or
	// are torn down by their own phase timers.
	Stop() error

	// ActiveConnections returns the correlation IDs of every connection
	// currently being served. Empty before Start or after Stop drains them.
	ActiveConnections() []string
}

// New builds a Server from cfg, validating and defaulting it first.
func New(cfg Config) (Server, error) {
	cfg, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &server{
		cfg:           cfg,
		table:         route.NewTable(),
		statusCatalog: catalog.DefaultStatus(),
		mimeCatalog:   catalog.DefaultMIME(),
		log:           logger.Nop(),
		running:       libatm.NewValue[bool](),
	}, nil
}
