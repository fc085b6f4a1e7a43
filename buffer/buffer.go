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

// Package buffer implements the per-connection byte buffer: a plain data
// structure (no socket knowledge of its own) that retains whatever bytes a
// read-until-delimiter operation overreads, so the next framing operation
// (body read, or the next pipelined request's head) can resume from
// exactly where the previous one left off.
//
// Grounded on the disk-spill-free path of a Buffer type seen elsewhere in
// the retrieved pack (bytes accumulate behind a mutex-free, single-owner
// slice); this variant drops the optional disk spill since the engine's
// per-connection buffers are bounded by ordinary HTTP head/body sizes, not
// arbitrary upload volumes.
package buffer

import "bytes"

// Buffer accumulates bytes appended by the reactor and lets callers peel
// off a prefix once its length is known, retaining everything after it.
type Buffer struct {
	data []byte
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append adds p to the end of the retained bytes.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Len reports how many unconsumed bytes are currently retained.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the currently retained bytes without consuming them.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// IndexDelim returns the offset one past the first occurrence of delim in
// the retained bytes, or -1 if delim has not been seen yet.
func (b *Buffer) IndexDelim(delim []byte) int {
	i := bytes.Index(b.data, delim)
	if i < 0 {
		return -1
	}

	return i + len(delim)
}

// Take removes and returns the first n bytes of the retained buffer. The
// caller must ensure n <= Len(); Take does not read more from anywhere.
func (b *Buffer) Take(n int) []byte {
	out := b.data[:n:n]
	b.data = b.data[n:]
	return out
}

// Reset discards every retained byte.
func (b *Buffer) Reset() {
	b.data = nil
}
