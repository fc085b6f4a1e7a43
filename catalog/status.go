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

// Package catalog holds the two static, read-only lookup tables the engine
// treats as external collaborators: status-code reasons and file-extension
// MIME types. Both are injectable so tests can swap in compact fixtures
// instead of the full default tables.
package catalog

import "strings"

// Status is a read-only status-code to reason-phrase lookup.
type Status interface {
	// Reason returns the reason phrase for code and true, or ("", false)
	// when code is not a member of the catalog.
	Reason(code int) (string, bool)
}

// MIME is a read-only file-extension to content-type lookup. Extensions may
// carry more than one alternate type; Lookup returns the first registered.
type MIME interface {
	// Lookup returns the content type for ext (with or without a leading
	// dot) and true, or ("", false) when the extension is unknown.
	Lookup(ext string) (string, bool)
}

type statusMap map[int]string

func (m statusMap) Reason(code int) (string, bool) {
	r, ok := m[code]
	return r, ok
}

type mimeMap map[string][]string

func (m mimeMap) Lookup(ext string) (string, bool) {
	if ext == "" {
		return "", false
	}

	if ext[0] != '.' {
		ext = "." + ext
	}

	ext = strings.ToLower(ext)

	if v, ok := m[ext]; ok && len(v) > 0 {
		return v[0], true
	}

	return "", false
}

// NewStatus builds a Status catalog from an explicit code->reason map. Pass
// nil to get DefaultStatus.
func NewStatus(m map[int]string) Status {
	if m == nil {
		return DefaultStatus()
	}

	cp := make(statusMap, len(m))
	for k, v := range m {
		cp[k] = v
	}

	return cp
}

// NewMIME builds a MIME catalog from an explicit extension->types map. Pass
// nil to get DefaultMIME.
func NewMIME(m map[string][]string) MIME {
	if m == nil {
		return DefaultMIME()
	}

	cp := make(mimeMap, len(m))
	for k, v := range m {
		vv := make([]string, len(v))
		copy(vv, v)
		cp[strings.ToLower(k)] = vv
	}

	return cp
}

// DefaultStatus is the built-in status-code catalog, grounded on the common
// subset of RFC 7231/7235 status codes.
func DefaultStatus() Status {
	return statusMap{
		100: "Continue",
		101: "Switching Protocols",
		200: "OK",
		201: "Created",
		202: "Accepted",
		203: "Non-Authoritative Information",
		204: "No Content",
		205: "Reset Content",
		206: "Partial Content",
		300: "Multiple Choices",
		301: "Moved Permanently",
		302: "Found",
		303: "See Other",
		304: "Not Modified",
		305: "Use Proxy",
		307: "Temporary Redirect",
		308: "Permanent Redirect",
		400: "Bad Request",
		401: "Unauthorized",
		402: "Payment Required",
		403: "Forbidden",
		404: "Not Found",
		405: "Method Not Allowed",
		406: "Not Acceptable",
		407: "Proxy Authentication Required",
		408: "Request Timeout",
		409: "Conflict",
		410: "Gone",
		411: "Length Required",
		412: "Precondition Failed",
		413: "Payload Too Large",
		414: "URI Too Long",
		415: "Unsupported Media Type",
		416: "Range Not Satisfiable",
		417: "Expectation Failed",
		426: "Upgrade Required",
		428: "Precondition Required",
		429: "Too Many Requests",
		431: "Request Header Fields Too Large",
		500: "Internal Server Error",
		501: "Not Implemented",
		502: "Bad Gateway",
		503: "Service Unavailable",
		504: "Gateway Timeout",
		505: "HTTP Version Not Supported",
	}
}

// DefaultMIME is the built-in extension catalog. It covers the common web
// extensions; the original source's catalog ran to some four hundred
// entries of legacy desktop-application types that have no bearing on an
// embeddable HTTP engine, so this table is deliberately a practical subset.
// Callers with broader needs supply their own via NewMIME.
func DefaultMIME() MIME {
	return mimeMap{
		".html": {"text/html"},
		".htm":  {"text/html"},
		".css":  {"text/css"},
		".js":   {"application/javascript"},
		".mjs":  {"application/javascript"},
		".json": {"application/json"},
		".xml":  {"application/xml", "text/xml"},
		".txt":  {"text/plain"},
		".csv":  {"text/csv"},
		".png":  {"image/png"},
		".jpg":  {"image/jpeg"},
		".jpeg": {"image/jpeg"},
		".gif":  {"image/gif"},
		".svg":  {"image/svg+xml"},
		".ico":  {"image/x-icon"},
		".webp": {"image/webp"},
		".pdf":  {"application/pdf"},
		".zip":  {"application/zip"},
		".gz":   {"application/gzip"},
		".tar":  {"application/x-tar"},
		".wasm": {"application/wasm"},
		".woff": {"font/woff"},
		".woff2": {"font/woff2"},
		".ttf":  {"font/ttf"},
		".mp4":  {"video/mp4"},
		".webm": {"video/webm"},
		".mp3":  {"audio/mpeg"},
		".wav":  {"audio/wav"},
	}
}
