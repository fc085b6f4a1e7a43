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

// Package response implements the outbound Response builder: an
// append-only byte sink plus typed helpers for status, MIME, cookies and
// the canonical error helper. The Response is a write buffer, not a strict
// protocol enforcer - callers may bypass every helper and write raw
// protocol bytes directly.
package response

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/nabbar/evserver/catalog"
	"github.com/nabbar/evserver/request"
)

// Response accumulates a status line, headers, and a body into an outbound
// buffer. It is created when a handler is about to be invoked and is
// flushed by the connection state machine once Finish is observed.
type Response struct {
	mu sync.Mutex

	status  int
	headers *request.Header
	body    bytes.Buffer

	closeAfterSend bool

	statusCatalog catalog.Status
	mimeCatalog   catalog.MIME

	done   bool
	finish chan struct{}
}

// New creates a Response defaulting to status 200 with the given catalogs.
// Either catalog may be nil, in which case the built-in defaults apply.
func New(statusCatalog catalog.Status, mimeCatalog catalog.MIME) *Response {
	if statusCatalog == nil {
		statusCatalog = catalog.DefaultStatus()
	}

	if mimeCatalog == nil {
		mimeCatalog = catalog.DefaultMIME()
	}

	return &Response{
		status:        200,
		headers:       request.NewHeader(),
		statusCatalog: statusCatalog,
		mimeCatalog:   mimeCatalog,
		finish:        make(chan struct{}),
	}
}

// Status reports the currently assigned status code.
func (r *Response) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// SetStatus assigns the response status code after validating membership
// in the status catalog. Unlike the source this helper is grounded on (see
// design note: the source's in-place setter was a no-op due to a
// parenthesization bug around its catalog lookup), this implementation
// actually validates and returns an error kind on unknown codes.
func (r *Response) SetStatus(code int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.statusCatalog.Reason(code); !ok {
		return fmt.Errorf("response: unknown status code %d", code)
	}

	r.status = code
	return nil
}

// Headers returns the outbound header multimap for direct manipulation.
func (r *Response) Headers() *request.Header {
	return r.headers
}

// CloseAfterSend reports whether the connection must be closed once this
// response has been flushed.
func (r *Response) CloseAfterSend() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeAfterSend
}

// SetCloseAfterSend forces the connection to close after this response is
// flushed, regardless of the request's keep-alive preference.
func (r *Response) SetCloseAfterSend(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeAfterSend = v
}

// Write appends raw bytes to the outbound buffer. Callers may bypass every
// helper below and assemble protocol bytes (including their own status
// line) directly through Write.
func (r *Response) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.Write(p)
}

// Bytes returns the accumulated outbound buffer.
func (r *Response) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.Bytes()
}

// SetMIME looks up ext in the MIME catalog and, if found, sets
// Content-Type. A miss is a silent no-op.
func (r *Response) SetMIME(ext string) {
	if ct, ok := r.mimeCatalog.Lookup(ext); ok {
		r.headers.Set("Content-Type", ct)
	}
}

// CookieOptions carries the optional Set-Cookie attributes. Zero/empty
// fields are omitted from the header.
type CookieOptions struct {
	Expires  time.Time
	MaxAge   int
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
}

// SetCookie appends a Set-Cookie header built from name, value and opts.
// Multiple calls accumulate as repeated headers rather than replacing one
// another.
func (r *Response) SetCookie(name, value string, opts CookieOptions) {
	var b bytes.Buffer

	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)

	if !opts.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(opts.Expires.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT"))
	}

	if opts.MaxAge != 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(opts.MaxAge))
	}

	if opts.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(opts.Domain)
	}

	if opts.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(opts.Path)
	}

	if opts.Secure {
		b.WriteString("; Secure")
	}

	if opts.HTTPOnly {
		b.WriteString("; HttpOnly")
	}

	r.headers.Add("Set-Cookie", b.String())
}

// SendHeaders emits the status line, every accumulated header, and the
// terminating blank line into the outbound buffer. Any Write calls after
// this are body bytes.
func (r *Response) SendHeaders() {
	r.mu.Lock()
	defer r.mu.Unlock()

	reason, ok := r.statusCatalog.Reason(r.status)
	if !ok {
		reason = "Unknown"
	}

	fmt.Fprintf(&r.body, "HTTP/1.1 %d %s\r\n", r.status, reason)

	r.headers.Range(func(name, value string) {
		fmt.Fprintf(&r.body, "%s: %s\r\n", name, value)
	})

	r.body.WriteString("\r\n")
}

// Error writes a canonical error exchange: status line, Content-Length,
// optional body, THEN every accumulated header, THEN the terminating blank
// line. This header ordering is a documented quirk preserved from the
// source (see design note on the error() helper) rather than a defect to
// fix - callers who want conventional ordering should use SendHeaders plus
// Write instead. An unknown code is replaced by 500 and forces
// CloseAfterSend.
func (r *Response) Error(code int, body string, bodySuppressed bool) {
	r.mu.Lock()

	reason, ok := r.statusCatalog.Reason(code)
	if !ok {
		code = 500
		reason, _ = r.statusCatalog.Reason(500)
		r.closeAfterSend = true
	}

	r.status = code

	fmt.Fprintf(&r.body, "HTTP/1.1 %d %s\r\n", code, reason)

	fmt.Fprintf(&r.body, "Content-Length: %d\r\n", len(body))
	if !bodySuppressed {
		r.body.WriteString(body)
	}

	r.headers.Range(func(name, value string) {
		fmt.Fprintf(&r.body, "%s: %s\r\n", name, value)
	})

	r.body.WriteString("\r\n")
	r.mu.Unlock()
}

// Finish marks the response as done with the handler. The connection
// state machine blocks on Done until either this is called or the
// content-phase timer reaps the handler. Calling Finish more than once is
// a safe no-op.
func (r *Response) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return
	}

	r.done = true
	close(r.finish)
}

// Done returns a channel that closes once Finish has been called.
func (r *Response) Done() <-chan struct{} {
	return r.finish
}
