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

// Package request implements the incremental HTTP/1.x request-line/header
// parser, the Request value handed to handlers, and the case-insensitive
// header multimap both depend on.
//
// The parser is purely functional: it is handed a buffer known to contain
// at least one CRLFCRLF and returns a parsed Head plus how many bytes of
// the buffer the head consumed. No state survives between calls.
package request

import (
	"strconv"
	"strings"
)

const crlfcrlf = "\r\n\r\n"
const crlf = "\r\n"

// Head is the result of successfully parsing a request line and header
// block. HeadLen is the byte offset of the first body byte within the
// buffer that was parsed - bytes at and after that offset are body bytes
// that happened to already be buffered (the "overread" the reactor leaves
// behind after a read-until-delimiter).
type Head struct {
	Method      string
	Path        string
	HTTPVersion string
	Headers     *Header
	HeadLen     int
}

// FindHeadEnd returns the offset of the first byte following CRLFCRLF in
// buf, or -1 if the terminator is not present.
func FindHeadEnd(buf []byte) int {
	i := strings.Index(string(buf), crlfcrlf)
	if i < 0 {
		return -1
	}

	return i + len(crlfcrlf)
}

// ParseHead parses the request line and headers out of buf[:headEnd]. It
// returns ok=false on any malformed request line or unparseable protocol
// token - per the engine's silent-parse-failure policy, callers must NOT
// invoke an error callback in that case, only close the connection.
func ParseHead(buf []byte, headEnd int) (head *Head, ok bool) {
	raw := string(buf[:headEnd])
	lines := strings.Split(raw, crlf)

	// raw ends with "\r\n\r\n" so Split yields a trailing "", "" pair.
	if len(lines) < 2 {
		return nil, false
	}

	reqLine := lines[0]
	fields := strings.Fields(reqLine)
	if len(fields) != 3 {
		return nil, false
	}

	method, target, proto := fields[0], fields[1], fields[2]

	if !strings.HasPrefix(proto, "HTTP/") {
		return nil, false
	}

	version := strings.TrimPrefix(proto, "HTTP/")
	if version == "" {
		return nil, false
	}

	h := NewHeader()

	for _, line := range lines[1:] {
		if line == "" {
			break
		}

		ci := strings.IndexByte(line, ':')
		if ci < 0 {
			break
		}

		name := line[:ci]
		if name == "" {
			break
		}

		value := line[ci+1:]
		value = strings.TrimPrefix(value, " ")

		h.Add(name, value)
	}

	return &Head{
		Method:      method,
		Path:        target,
		HTTPVersion: version,
		Headers:     h,
		HeadLen:     headEnd,
	}, true
}

// ContentLength parses the Content-Length header, if present. present is false
// when the header is absent (zero-length body, no framing error). err is
// non-nil when the header is present but not a valid unsigned integer -
// the caller must surface PROTOCOL_ERROR and drop the connection.
func ContentLength(h *Header) (n int64, present bool, err error) {
	v := h.Get("Content-Length")
	if v == "" {
		return 0, false, nil
	}

	n, convErr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if convErr != nil || n < 0 {
		return 0, true, errMalformedContentLength
	}

	return n, true, nil
}
