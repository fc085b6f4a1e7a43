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

import "strings"

// Header is a case-insensitive multimap of header names to values. Multiple
// values per name are preserved in insertion order; the name's original
// casing (from the first insertion) is preserved for iteration.
type Header struct {
	keys   []string          // original-case name for each distinct key, insertion order
	values map[string][]string // lower(name) -> values, insertion order
}

// NewHeader returns an empty Header ready to use.
func NewHeader() *Header {
	return &Header{values: make(map[string][]string)}
}

// Add appends value under name, preserving any existing values.
func (h *Header) Add(name, value string) {
	if h.values == nil {
		h.values = make(map[string][]string)
	}

	lk := strings.ToLower(name)

	if _, ok := h.values[lk]; !ok {
		h.keys = append(h.keys, name)
	}

	h.values[lk] = append(h.values[lk], value)
}

// Set replaces any existing values for name with the single value given.
func (h *Header) Set(name, value string) {
	lk := strings.ToLower(name)

	if _, ok := h.values[lk]; !ok {
		h.keys = append(h.keys, name)
	}

	if h.values == nil {
		h.values = make(map[string][]string)
	}

	h.values[lk] = []string{value}
}

// Get returns the first value for name, or "" when absent.
func (h *Header) Get(name string) string {
	v := h.values[strings.ToLower(name)]
	if len(v) == 0 {
		return ""
	}

	return v[0]
}

// Values returns every value registered under name, in insertion order.
func (h *Header) Values(name string) []string {
	return h.values[strings.ToLower(name)]
}

// Has reports whether name was ever added, regardless of value.
func (h *Header) Has(name string) bool {
	_, ok := h.values[strings.ToLower(name)]
	return ok
}

// HasValue reports whether any of the values registered under name matches
// want case-insensitively. Used for Connection: close / keep-alive checks.
func (h *Header) HasValue(name, want string) bool {
	for _, v := range h.values[strings.ToLower(name)] {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}

	return false
}

// Names returns the distinct header names in first-insertion order, using
// the casing each was first added with.
func (h *Header) Names() []string {
	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out
}

// Range calls fn once per (name, value) pair in insertion order.
func (h *Header) Range(fn func(name, value string)) {
	for _, k := range h.keys {
		for _, v := range h.values[strings.ToLower(k)] {
			fn(k, v)
		}
	}
}
