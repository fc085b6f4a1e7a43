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

package conn

import "github.com/nabbar/evserver/errors"

// ErrorKind classifies what on_error receives. Parse failures of the
// request line or header block are deliberately NOT represented here -
// they are silent: the connection is simply closed.
type ErrorKind uint8

const (
	// ProtocolError is a malformed Content-Length (non-numeric or
	// negative).
	ProtocolError ErrorKind = iota + 1

	// OperationCancelled covers a handler panic during its synchronous
	// portion, and an operation aborted by timer-driven shutdown.
	OperationCancelled

	// IOError is any other reactor-surfaced I/O failure, passed through
	// verbatim.
	IOError
)

func (k ErrorKind) String() string {
	switch k {
	case ProtocolError:
		return "protocol_error"
	case OperationCancelled:
		return "operation_cancelled"
	case IOError:
		return "io_error"
	default:
		return "unknown"
	}
}

const (
	ErrorConnAccept errors.CodeError = iota + errors.MinPkgConn
	ErrorConnHandlerPanic
	ErrorConnTimeout
)

var isCodeError = false

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorConnAccept)
	errors.RegisterIdFctMessage(ErrorConnAccept, getMessage)
}

// IsCodeError reports whether this package's error codes were already
// registered (guards against double registration when the package is
// imported from more than one place).
func IsCodeError() bool {
	return isCodeError
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorConnAccept:
		return "failed accepting connection"
	case ErrorConnHandlerPanic:
		return "handler panicked during synchronous execution"
	case ErrorConnTimeout:
		return "connection phase timer expired"
	default:
		return ""
	}
}
