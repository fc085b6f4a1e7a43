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

package context_test

import (
	"context"
	"testing"

	libctx "github.com/nabbar/evserver/context"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestContext(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Context Suite")
}

var _ = Describe("Config[T]", func() {
	It("defaults to context.Background when given a nil context", func() {
		c := libctx.New[string](nil)
		Expect(c.GetContext()).ToNot(BeNil())
		Expect(c.Err()).ToNot(HaveOccurred())
	})

	It("stores, loads, walks and deletes keyed values, mirroring the active-connection registry use", func() {
		c := libctx.New[string](context.Background())

		c.Store("conn-1", "127.0.0.1:1")
		c.Store("conn-2", "127.0.0.1:2")

		v, ok := c.Load("conn-1")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("127.0.0.1:1"))

		var seen []string
		c.Walk(func(key string, _ interface{}) bool {
			seen = append(seen, key)
			return true
		})
		Expect(seen).To(ConsistOf("conn-1", "conn-2"))

		c.Delete("conn-1")
		_, ok = c.Load("conn-1")
		Expect(ok).To(BeFalse())
	})

	It("Clone copies the map into an independent Config", func() {
		c := libctx.New[string](context.Background())
		c.Store("k", "v")

		clone := c.Clone(nil)
		Expect(clone).ToNot(BeNil())

		clone.Store("k2", "v2")
		_, ok := c.Load("k2")
		Expect(ok).To(BeFalse())

		v, ok := clone.Load("k")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("v"))
	})

	It("Merge copies another Config's entries into the receiver", func() {
		a := libctx.New[string](context.Background())
		b := libctx.New[string](context.Background())
		b.Store("from-b", 1)

		Expect(a.Merge(b)).To(BeTrue())

		v, ok := a.Load("from-b")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))
	})
})
