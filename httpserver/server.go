/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package httpserver

import (
	"context"
	"errors"
	"net"
	"sync"

	libatm "github.com/nabbar/evserver/atomic"
	libctx "github.com/nabbar/evserver/context"

	"github.com/nabbar/evserver/catalog"
	cn "github.com/nabbar/evserver/conn"
	"github.com/nabbar/evserver/logger"
	"github.com/nabbar/evserver/reactor"
	"github.com/nabbar/evserver/route"
)

type server struct {
	mu sync.Mutex

	cfg   Config
	table *route.Table

	statusCatalog catalog.Status
	mimeCatalog   catalog.MIME

	onError   cn.OnError
	onUpgrade cn.OnUpgrade
	log       logger.Logger

	running libatm.Value[bool]
	ctx     libctx.Config[string]
	ln      *reactor.Listener
	pool    *reactor.Pool
}

func (s *server) Register(pattern, method string, h route.Handler) error {
	return s.table.Register(pattern, method, h)
}

func (s *server) RegisterFallback(method string, h route.Handler) error {
	return s.table.RegisterFallback(method, h)
}

func (s *server) OnError(cb cn.OnError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = cb
}

func (s *server) OnUpgrade(cb cn.OnUpgrade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpgrade = cb
}

func (s *server) SetCatalogs(status catalog.Status, mime catalog.MIME) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status != nil {
		s.statusCatalog = status
	}

	if mime != nil {
		s.mimeCatalog = mime
	}
}

func (s *server) GetConfig() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *server) IsRunning() bool {
	return s.running.Load()
}

func (s *server) Start() error {
	s.mu.Lock()
	if s.running.Load() {
		s.mu.Unlock()
		return newError(ErrorAlreadyRunning, nil)
	}

	cfg := s.cfg
	onError := s.onError
	onUpgrade := s.onUpgrade
	statusCatalog := s.statusCatalog
	mimeCatalog := s.mimeCatalog
	log := s.log
	s.mu.Unlock()

	if log == nil {
		log = logger.Nop()
	}

	s.table.Freeze()

	ln, err := reactor.BindAndListen(cfg.BindAddr, cfg.Port, cfg.ReuseAddress)
	if err != nil {
		return newError(ErrorListen, err)
	}

	s.ctx = libctx.New[string](context.Background())
	s.ln = ln
	s.pool = reactor.NewPool(cfg.WorkerPoolSize)
	s.running.Store(true)

	connCfg := cn.Config{
		Timeouts: cn.Timeouts{
			Request: cfg.RequestTimeout,
			Content: cfg.ContentTimeout,
		},
		Table:         s.table,
		StatusCatalog: statusCatalog,
		MIMECatalog:   mimeCatalog,
		OnError:       onError,
		OnUpgrade:     onUpgrade,
		Log:           log,
	}

	go s.acceptLoop(connCfg)

	return nil
}

func (s *server) acceptLoop(connCfg cn.Config) {
	for {
		socket, err := s.ln.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) && connCfg.Log != nil {
				connCfg.Log.Errorf("%v", cn.ErrorConnAccept.Error(err))
			}
			return
		}

		conn := cn.New(socket, connCfg)
		s.ctx.Store(conn.ID(), socket.RemoteAddr().String())

		_ = s.pool.Go(s.ctx.GetContext(), func() {
			defer s.ctx.Delete(conn.ID())
			conn.Serve()
		})
	}
}

// ActiveConnections returns the correlation IDs of every connection
// currently being served, keyed by the same ID stamped onto each of its
// requests.
func (s *server) ActiveConnections() []string {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if ctx == nil {
		return nil
	}

	var ids []string
	ctx.Walk(func(key string, _ interface{}) bool {
		ids = append(ids, key)
		return true
	})

	return ids
}

func (s *server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.Load() {
		return newError(ErrorNotRunning, nil)
	}

	s.running.Store(false)

	if s.ln != nil {
		_ = s.ln.Close()
	}

	return nil
}
