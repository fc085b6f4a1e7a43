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

package request

import (
	"bytes"
	"net"
)

// Request is handed to a handler once its full body (as declared by
// Content-Length) has been buffered. It is immutable from the handler's
// point of view except for PathMatch, which the route table fills in
// during resolution.
type Request struct {
	Method      string
	Path        string
	HTTPVersion string
	Headers     *Header

	// Content is the request body, already fully buffered: len(Content) ==
	// declared Content-Length, or zero when the header was absent.
	Content []byte

	// PathMatch holds the capture groups from the route regex that matched
	// this request's Path. Index 0 is the whole match.
	PathMatch []string

	RemoteAddr net.Addr

	// ConnectionID correlates every request handled on the same socket
	// across a keep-alive sequence; it is generated once per accepted
	// connection and carried through to on_error and handler logging.
	ConnectionID string
}

// New builds a Request from a parsed Head, its body bytes, the peer
// address the connection accepted from, and the connection's correlation
// ID.
func New(h *Head, body []byte, remote net.Addr, connID string) *Request {
	return &Request{
		Method:       h.Method,
		Path:         h.Path,
		HTTPVersion:  h.HTTPVersion,
		Headers:      h.Headers,
		Content:      body,
		RemoteAddr:   remote,
		ConnectionID: connID,
	}
}

// Skeleton builds a peer-address-only Request, used when on_error must be
// invoked before a full Request could be parsed.
func Skeleton(remote net.Addr, connID string) *Request {
	return &Request{Headers: NewHeader(), RemoteAddr: remote, ConnectionID: connID}
}

// Query parses the query-string portion of Path into key/value pairs.
func (r *Request) Query() []QueryPair {
	return ParseQuery(r.Path)
}

// Cookies parses the Cookie request header into key/value pairs.
func (r *Request) Cookies() []QueryPair {
	return ParseCookies(r.Headers.Get("Cookie"))
}

// ContentReader returns a fresh reader over the buffered body.
func (r *Request) ContentReader() *bytes.Reader {
	return bytes.NewReader(r.Content)
}

// KeepAlive applies the keep-alive decision to this request in
// isolation: explicit Connection header values take precedence over the
// HTTP version fallback. Called after Response.CloseAfterSend has already
// been checked and found false.
func (r *Request) KeepAlive() bool {
	if r.Headers.HasValue("Connection", "close") {
		return false
	}

	if r.Headers.HasValue("Connection", "keep-alive") {
		return true
	}

	// Lexicographic string compare, preserved verbatim from the source:
	// "1.10" < "1.9" under this rule. Not "fixed" to numeric parsing.
	return r.HTTPVersion >= "1.1"
}
