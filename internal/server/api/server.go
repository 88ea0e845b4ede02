// Package api implements the inputtrack TCP API.
//
// Requests are framed as `<path>[ SP payload]\x00` and answered with a
// single JSON line. Stream routes keep the connection open instead.
package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Alia5/inputtrack/input"
	"github.com/Alia5/inputtrack/internal/log"
	"github.com/Alia5/inputtrack/internal/server/api/auth"
	apierror "github.com/Alia5/inputtrack/internal/server/api/error"
)

// Server serves the API and owns the tracking sessions.
type Server struct {
	addr      string
	config    ServerConfig
	logger    *slog.Logger
	rawLogger log.RawLogger
	router    *Router
	sessions  *Sessions
	threshold atomic.Int64
	key       []byte

	mu     sync.Mutex
	ln     net.Listener
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a server listening on addr once started.
func New(addr string, config ServerConfig, logger *slog.Logger, rawLogger log.RawLogger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	s := &Server{
		addr:      addr,
		config:    config,
		logger:    logger,
		rawLogger: rawLogger,
		router:    NewRouter(),
		sessions:  NewSessions(),
	}
	threshold := config.DefaultThreshold
	if threshold <= 0 {
		threshold = input.DefaultQuickActionThreshold
	}
	s.threshold.Store(int64(threshold))
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Router returns the router used by the API server so callers can register handlers.
func (s *Server) Router() *Router { return s.router }

// Config returns the server configuration.
func (s *Server) Config() ServerConfig { return s.config }

// Sessions returns the registry of open tracking sessions.
func (s *Server) Sessions() *Sessions { return s.sessions }

// RawLogger returns the logger for raw session frames.
func (s *Server) RawLogger() log.RawLogger { return s.rawLogger }

// Threshold returns the quick action threshold given to new sessions.
func (s *Server) Threshold() time.Duration { return time.Duration(s.threshold.Load()) }

// SetThreshold changes the default threshold and applies it to every open session.
func (s *Server) SetThreshold(d time.Duration) {
	s.threshold.Store(int64(d))
	s.sessions.SetThreshold(d)
}

// Addr returns the listen address, resolved once the server is started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Start listens on the configured address and serves connections in the background.
func (s *Server) Start() error {
	if s.config.Password != "" {
		key, err := auth.DeriveKey(s.config.Password)
		if err != nil {
			return err
		}
		s.key = key
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.logger.Info("API listening", "addr", ln.Addr().String(), "auth", s.key != nil)
	s.wg.Add(1)
	go s.serve(ln)
	return nil
}

// Close stops accepting, ends every session and waits for connections to finish.
func (s *Server) Close() {
	s.cancel()
	s.mu.Lock()
	if s.ln != nil {
		_ = s.ln.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) serve(ln net.Listener) {
	defer s.wg.Done()
	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.logger.Info("API server stopped")
			} else {
				s.logger.Error("API accept error", "error", err)
			}
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(c)
		}()
	}
}

func writeError(w io.Writer, err error) {
	b, _ := json.Marshal(apierror.WrapError(err))
	fmt.Fprintf(w, "%s\n", b)
}

func writeOK(w io.Writer, body string) {
	fmt.Fprintf(w, "%s\n", body)
}

// bufferedConn reads through the reader that consumed the request line.
type bufferedConn struct {
	net.Conn
	r io.Reader
}

func (c bufferedConn) Read(p []byte) (int, error) { return c.r.Read(p) }

// authenticate runs the handshake when a password is configured and returns
// the connection to use from then on.
func (s *Server) authenticate(conn net.Conn, r *bufio.Reader) (net.Conn, *bufio.Reader, error) {
	isHandshake, err := auth.IsAuthHandshake(r)
	if err != nil {
		return nil, nil, err
	}
	if s.key == nil {
		if isHandshake {
			return nil, nil, apierror.ErrBadRequest("authentication is not enabled on this server")
		}
		return conn, r, nil
	}
	if !isHandshake {
		return nil, nil, apierror.ErrUnauthorized("authentication required")
	}
	clientNonce, serverNonce, err := auth.ServerHandshake(r, conn, s.key)
	if err != nil {
		return nil, nil, err
	}
	sc, err := auth.WrapConn(conn, r, auth.DeriveSessionKey(s.key, serverNonce, clientNonce))
	if err != nil {
		return nil, nil, err
	}
	return sc, bufio.NewReader(sc), nil
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connCtx, connCancel := context.WithCancel(s.ctx)
	defer connCancel()
	go func() {
		<-connCtx.Done()
		_ = conn.SetReadDeadline(time.Now())
	}()

	logger := s.logger.With("remote", conn.RemoteAddr().String())
	if s.config.ConnectionTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.config.ConnectionTimeout))
	}

	c, r, err := s.authenticate(conn, bufio.NewReader(conn))
	if err != nil {
		if apierror.WrapError(err).Status < 500 {
			logger.Warn("api auth rejected", "error", err)
			writeError(conn, err)
			return
		}
		logger.Error("api auth failed", "error", err)
		return
	}

	reqData, err := r.ReadString('\x00')
	if err != nil {
		if errors.Is(err, io.EOF) {
			logger.Error("api incomplete request (no null terminator)")
		} else {
			logger.Error("read api data", "error", err)
		}
		return
	}
	reqData = strings.TrimSuffix(reqData, "\x00")

	path, payload, _ := strings.Cut(reqData, " ")
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		logger.Error("api empty path")
		writeError(c, apierror.ErrBadRequest("empty path"))
		return
	}
	logger.Debug("api cmd", "path", path)

	if sh, params := s.router.MatchStream(path); sh != nil {
		_ = conn.SetReadDeadline(time.Time{})
		logger.Info("api stream begin", "path", path)
		req := &Request{Ctx: connCtx, Params: params, Payload: payload}
		if err := sh(req, bufferedConn{Conn: c, r: r}, logger); err != nil {
			logger.Error("api stream handler error", "path", path, "error", err)
		}
		logger.Info("api stream end", "path", path)
		return
	}

	if h, params := s.router.Match(path); h != nil {
		req := &Request{Ctx: connCtx, Params: params, Payload: payload}
		res := &Response{}
		if err := h(req, res, logger); err != nil {
			logger.Error("api handler error", "path", path, "error", err)
			writeError(c, err)
			return
		}
		writeOK(c, res.JSON)
		return
	}

	logger.Error("api unknown path", "path", path)
	writeError(c, apierror.ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
}
