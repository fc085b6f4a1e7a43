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

// Package route implements the ordered regex route table: a map from path
// regex (ordered by the regex's original source string, never by identity)
// to a method->handler map, plus a single fallback method->handler map
// consulted when no regex entry matches.
package route

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/nabbar/evserver/request"
	"github.com/nabbar/evserver/response"
)

// Handler is the callable a matched (regex, method) or fallback entry
// dispatches to. It owns the Response reference it receives; releasing it
// (calling Finish) is how it signals the engine it is done.
type Handler func(resp *response.Response, req *request.Request)

type entry struct {
	source  string
	regex   *regexp.Regexp
	methods map[string]Handler
}

// Table is the ordered regex route table. It is safe to register entries
// concurrently before Freeze is called; after Freeze, Register and
// RegisterFallback return an error. Resolve never takes the lock.
type Table struct {
	mu       sync.Mutex
	entries  map[string]*entry
	ordered  []*entry
	fallback map[string]Handler
	frozen   bool
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{
		entries:  make(map[string]*entry),
		fallback: make(map[string]Handler),
	}
}

// Register binds method (upper-cased) on the path regex pattern to h. The
// same pattern string may be registered multiple times with different
// methods; they accumulate onto one entry keyed by that exact source
// string.
func (t *Table) Register(pattern, method string, h Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return errTableFrozen
	}

	e, ok := t.entries[pattern]
	if !ok {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return err
		}

		e = &entry{source: pattern, regex: re, methods: make(map[string]Handler)}
		t.entries[pattern] = e
		t.ordered = nil // invalidate cached order
	}

	e.methods[strings.ToUpper(method)] = h

	return nil
}

// RegisterFallback binds method (upper-cased) on the default map consulted
// when no regex entry matches a request's path.
func (t *Table) RegisterFallback(method string, h Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return errTableFrozen
	}

	t.fallback[strings.ToUpper(method)] = h
	return nil
}

// Freeze finalizes the registration order (lexicographic over each entry's
// regex source string) and forbids further mutation. The server facade
// calls this from start().
func (t *Table) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return
	}

	t.ordered = make([]*entry, 0, len(t.entries))
	for _, e := range t.entries {
		t.ordered = append(t.ordered, e)
	}

	sort.Slice(t.ordered, func(i, j int) bool {
		return t.ordered[i].source < t.ordered[j].source
	})

	t.frozen = true
}

// Resolve walks the frozen entries in lexicographic order of their source
// string and returns the handler (plus capture groups) for the first whole
// -path match whose method map contains method. If no regex entry matches,
// the fallback map is consulted. ok is false when neither yields a
// handler, in which case the caller must terminate the exchange without
// writing a response.
func (t *Table) Resolve(method, path string) (h Handler, groups []string, ok bool) {
	method = strings.ToUpper(method)

	for _, e := range t.ordered {
		hh, has := e.methods[method]
		if !has {
			continue
		}

		m := e.regex.FindStringSubmatch(path)
		if m == nil {
			continue
		}

		if !isWholeMatch(e.regex, path, m) {
			continue
		}

		return hh, m, true
	}

	if hh, has := t.fallback[method]; has {
		return hh, nil, true
	}

	return nil, nil, false
}

// isWholeMatch enforces anchored, full-path matching: FindStringSubmatch
// already returns the leftmost match, but an unanchored pattern like
// "/hello" would still "match" within "/hello/world". The source anchors
// via regex_match semantics (whole-string match); Go's regexp package has
// no direct equivalent for an arbitrary pre-compiled pattern, so matching
// is verified by comparing the captured group 0 against the full path.
func isWholeMatch(re *regexp.Regexp, path string, m []string) bool {
	return m[0] == path
}

type tableError string

func (e tableError) Error() string { return string(e) }

const errTableFrozen tableError = "route: table is frozen after start()"
