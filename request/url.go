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
	"regexp"
	"strings"
)

const upperhex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	}

	return false
}

// URLEncode percent-encodes every byte outside [A-Za-z0-9\-_.~] as an
// uppercase %HH triplet.
func URLEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}

	return b.String()
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}

	return 0, false
}

// URLDecode decodes %HH triplets to their byte value and '+' to a literal
// space. Malformed triplets (truncated or non-hex) are copied through
// unchanged.
func URLDecode(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '+':
			b.WriteByte(' ')
		case '%':
			if i+2 < len(s) {
				if hi, ok1 := hexVal(s[i+1]); ok1 {
					if lo, ok2 := hexVal(s[i+2]); ok2 {
						b.WriteByte(hi<<4 | lo)
						i += 2
						continue
					}
				}
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

var queryPattern = regexp.MustCompile(`([\w+%]+)=?([^&]*)`)
var cookiePattern = regexp.MustCompile(`([\w+%]+)=?([^;]*)`)

// QueryPair is one key/value entry parsed from a query string; duplicate
// keys are preserved as distinct entries in encounter order.
type QueryPair struct {
	Key   string
	Value string
}

// ParseQuery splits the substring after the first '?' in rawPath on '&',
// matching each token against ([\w+%]+)=?([^&]*). Values are percent
// decoded and '+' converted to space; keys are returned exactly as matched.
func ParseQuery(rawPath string) []QueryPair {
	i := strings.IndexByte(rawPath, '?')
	if i < 0 {
		return nil
	}

	qs := rawPath[i+1:]
	if qs == "" {
		return nil
	}

	matches := queryPattern.FindAllStringSubmatch(qs, -1)
	out := make([]QueryPair, 0, len(matches))

	for _, m := range matches {
		out = append(out, QueryPair{Key: m[1], Value: URLDecode(m[2])})
	}

	return out
}

// ParseCookies tokenizes the Cookie header value on ';' matching each token
// against ([\w+%]+)=?([^;]*). Values are not decoded further.
func ParseCookies(header string) []QueryPair {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	matches := cookiePattern.FindAllStringSubmatch(header, -1)
	out := make([]QueryPair, 0, len(matches))

	for _, m := range matches {
		out = append(out, QueryPair{Key: strings.TrimSpace(m[1]), Value: m[2]})
	}

	return out
}
