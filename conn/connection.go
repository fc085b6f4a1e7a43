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

// Package conn implements the connection lifecycle state machine: the
// hard part of the engine. It ties the buffer, request parser, route
// table and response builder together: accept -> read-request ->
// read-body? -> resolve -> invoke handler -> flush response -> decide
// keep-alive -> loop or close. It owns the per-phase timers and the
// on_error / on_upgrade callbacks.
package conn

import (
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/nabbar/evserver/buffer"
	"github.com/nabbar/evserver/catalog"
	"github.com/nabbar/evserver/logger"
	"github.com/nabbar/evserver/reactor"
	"github.com/nabbar/evserver/request"
	"github.com/nabbar/evserver/response"
	"github.com/nabbar/evserver/route"
)

// OnError is invoked for every I/O-class or protocol-class error the state
// machine surfaces. req is never nil: when no Request has been parsed yet, a
// skeletal one (peer address and connection ID only) is passed. Implementations
// must tolerate concurrent invocation from any
// worker and must not re-enter the engine.
type OnError func(req *request.Request, kind ErrorKind, err error)

// OnUpgrade, when registered and the request carries an Upgrade header, is
// invoked instead of route resolution. The engine relinquishes the socket
// and every timer; ownership transfers fully to the upgrade handler.
type OnUpgrade func(socket net.Conn, req *request.Request)

// Timeouts bounds the two network phases a connection passes through.
type Timeouts struct {
	Request time.Duration // bounds ACCEPTING -> head fully read
	Content time.Duration // bounds body read and, separately, response flush
}

// Config bundles everything a Connection needs beyond the raw socket.
type Config struct {
	Timeouts      Timeouts
	Table         *route.Table
	StatusCatalog catalog.Status
	MIMECatalog   catalog.MIME
	OnError       OnError
	OnUpgrade     OnUpgrade
	Log           logger.Logger
}

// Connection drives one accepted TCP socket through the state machine
// until it closes. One Connection handles at most one in-flight
// Request/Response pair at a time - no pipelining - resuming
// READING_HEAD only once the previous response has been fully flushed.
type Connection struct {
	socket net.Conn
	buf    *buffer.Buffer
	cfg    Config
	id     string
	log    logger.Logger

	upgraded bool // socket handed to OnUpgrade; Serve must not close it
}

// New wraps an accepted socket. The caller is expected to run Serve in its
// own goroutine (or under a reactor.Pool worker slot). Each Connection gets
// a fresh correlation ID that every request handled on this socket, and
// every error reported through cfg.OnError, carries along.
func New(socket net.Conn, cfg Config) *Connection {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}

	id := uuid.NewString()

	return &Connection{
		socket: socket,
		buf:    buffer.New(),
		cfg:    cfg,
		id:     id,
		log:    cfg.Log.WithField("connection_id", id),
	}
}

// ID returns the correlation ID generated for this connection, the same
// value stamped onto every Request it serves.
func (c *Connection) ID() string {
	return c.id
}

// Serve runs the READING_HEAD -> ... -> KEEPALIVE_DECISION loop until the
// connection closes, then closes the socket unless it was handed to
// OnUpgrade. It never returns an error:
// every failure path is either terminal (connection closes) or reported
// through cfg.OnError.
func (c *Connection) Serve() {
	c.log.Debugf("accepted connection from %s", c.socket.RemoteAddr())

	defer func() {
		if c.upgraded {
			return
		}
		c.log.Debug("closing connection")
		_ = c.socket.Close()
	}()

	for {
		if !c.serveOne() {
			return
		}
	}
}

// serveOne drives exactly one request/response exchange. It returns true
// when the state machine should loop back to READING_HEAD on the same
// socket, false when the connection must close.
func (c *Connection) serveOne() bool {
	head, overread, ok := c.readHead()
	if !ok {
		return false
	}

	body, ok := c.readBody(head, overread)
	if !ok {
		return false
	}

	req := request.New(head, body, c.socket.RemoteAddr(), c.id)

	if c.cfg.OnUpgrade != nil && req.Headers.Has("Upgrade") {
		c.upgraded = true
		c.cfg.OnUpgrade(c.socket, req)
		return false // ownership transferred; this state machine exits.
	}

	resp := c.resolveAndInvoke(req)
	if resp == nil {
		// No route and no fallback matched, or the handler did not finish
		// within the content timeout: terminate the exchange without
		// writing anything.
		return false
	}

	if !c.flush(req, resp) {
		return false
	}

	return c.keepAlive(req, resp)
}

// readHead drives ACCEPTING/READING_HEAD -> READING_BODY|RESOLVING's
// precondition: a parsed Head plus whatever body bytes were already
// buffered past the terminator. ok is false whenever the connection must
// close, whether silently (parse failure) or after an OnError call (I/O
// failure).
func (c *Connection) readHead() (head *request.Head, overread []byte, ok bool) {
	timer := reactor.StartTimer(c.socket, c.cfg.Timeouts.Request)

	raw, err := reactor.ReadUntil(c.socket, c.buf, []byte("\r\n\r\n"))
	if err != nil {
		timer.Cancel()
		c.reportIOError(nil, err)
		return nil, nil, false
	}

	timer.Cancel()

	h, parsed := request.ParseHead(raw, len(raw))
	if !parsed {
		// Silent parse failure: no OnError, just close.
		return nil, nil, false
	}

	return h, c.buf.Bytes(), true
}

// readBody drives READING_HEAD -> READING_BODY -> RESOLVING. It consumes
// whatever of the body is already retained in c.buf (the overread) and
// issues a bounded read_exact for the remainder when Content-Length
// declares more than what is already buffered.
func (c *Connection) readBody(head *request.Head, overread []byte) (body []byte, ok bool) {
	n, present, err := request.ContentLength(head.Headers)
	if err != nil {
		req := request.New(head, overread, c.socket.RemoteAddr(), c.id)
		c.call(req, ProtocolError, err)
		return nil, false
	}

	if !present {
		// No Content-Length: the body is whatever bytes remained
		// buffered, no chunked decoding. readHead only peeked at those
		// bytes via Bytes(), so consume exactly that many from the
		// retained buffer here.
		return c.buf.Take(len(overread)), true
	}

	if int64(len(overread)) >= n {
		taken := c.buf.Take(int(n))
		return taken, true
	}

	already := c.buf.Take(len(overread))
	needed := int(n) - len(already)

	timer := reactor.StartTimer(c.socket, c.cfg.Timeouts.Content)
	rest, err := reactor.ReadExact(c.socket, c.buf, needed)
	if err != nil {
		timer.Cancel()
		req := request.New(head, already, c.socket.RemoteAddr(), c.id)
		c.reportIOError(req, err)
		return nil, false
	}
	timer.Cancel()

	return append(already, rest...), true
}

// resolveAndInvoke drives RESOLVING -> HANDLER_EXECUTING -> (implicit)
// FLUSHING's precondition: a Response the handler has released. Returns
// nil when neither a route nor the fallback map matched, or when the
// handler has not called Finish once the content-phase timeout elapses.
func (c *Connection) resolveAndInvoke(req *request.Request) *response.Response {
	handler, groups, matched := c.cfg.Table.Resolve(req.Method, req.Path)
	if !matched {
		return nil
	}

	req.PathMatch = groups

	resp := response.New(c.cfg.StatusCatalog, c.cfg.MIMECatalog)

	c.invokeHandler(handler, resp, req)

	// Wait for the handler to release the Response, bounded by the
	// content-phase timer so a handler that never finishes is reaped
	// rather than leaking the connection forever: the timer closes the
	// socket and the wait below gives up at the same deadline.
	timer := reactor.StartTimer(c.socket, c.cfg.Timeouts.Content)
	defer timer.Cancel()

	var expired <-chan time.Time
	if c.cfg.Timeouts.Content > 0 {
		t := time.NewTimer(c.cfg.Timeouts.Content)
		defer t.Stop()
		expired = t.C
	}

	select {
	case <-resp.Done():
		return resp
	case <-expired:
		return nil
	}
}

// invokeHandler runs handler synchronously, converting a panic into the
// OperationCancelled error kind and forcing the response to close after
// send, overriding the request's own keep-alive preference.
func (c *Connection) invokeHandler(handler route.Handler, resp *response.Response, req *request.Request) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("handler panic for %s %s: %v", req.Method, req.Path, r)
			resp.SetCloseAfterSend(true)
			resp.Finish()
			c.call(req, OperationCancelled, ErrorConnHandlerPanic.Error(panicError{r}))
		}
	}()

	handler(resp, req)
}

// flush drives HANDLER_EXECUTING -> FLUSHING -> KEEPALIVE_DECISION's
// precondition: the response bytes written to the wire. Returns false
// (connection must close) on a write error, after reporting it.
func (c *Connection) flush(req *request.Request, resp *response.Response) bool {
	timer := reactor.StartTimer(c.socket, c.cfg.Timeouts.Content)
	err := reactor.WriteAll(c.socket, resp.Bytes())
	timer.Cancel()

	if err != nil {
		c.reportIOError(req, err)
		return false
	}

	return true
}

// keepAlive implements the KEEPALIVE_DECISION transition: Response.close_after
// _send wins outright; otherwise the request's own Connection-header /
// HTTP-version logic decides.
func (c *Connection) keepAlive(req *request.Request, resp *response.Response) bool {
	if resp.CloseAfterSend() {
		return false
	}

	return req.KeepAlive()
}

func (c *Connection) reportIOError(req *request.Request, err error) {
	if reactor.ErrCancelled == err {
		c.call(req, OperationCancelled, ErrorConnTimeout.Error(err))
		return
	}

	c.call(req, IOError, err)
}

func (c *Connection) call(req *request.Request, kind ErrorKind, err error) {
	if c.cfg.OnError == nil {
		return
	}

	if req == nil {
		req = request.Skeleton(c.socket.RemoteAddr(), c.id)
	}

	c.cfg.OnError(req, kind, err)
}

// panicError adapts a recover() value to the error interface so it can
// travel through OnError without the caller needing to type-switch.
type panicError struct {
	v interface{}
}

func (p panicError) Error() string {
	if err, ok := p.v.(error); ok {
		return err.Error()
	}

	return "panic in handler"
}
