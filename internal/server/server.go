package server

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Server hosts the single table's WebSocket endpoint plus a health check,
// the out-of-scope transport plumbing sketched by spec §1/§6: it owns no
// game logic of its own, only accepting connections and handing each one to
// the Session's single writer.
type Server struct {
	addr     string
	logger   *log.Logger
	session  *Session
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	httpServer *http.Server
	routesOnce sync.Once
}

// NewServer wires a Server around an already-running Session.
func NewServer(addr string, session *Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		addr:    addr,
		logger:  logger.WithPrefix("http"),
		session: session,
		mux:     http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Table traffic has no browser-origin trust boundary to enforce
			// here (spec §1: authentication is out of scope beyond the
			// trivial owner gate), so any origin may connect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) ensureRoutes() {
	s.routesOnce.Do(func() {
		s.mux.HandleFunc("/ws", s.handleWebSocket)
		s.mux.HandleFunc("/health", s.handleHealth)
	})
}

// ListenAndServe binds addr and blocks serving connections until the
// listener errors or Shutdown is called.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve runs the HTTP server on an existing listener, useful for tests that
// want an ephemeral port.
func (s *Server) Serve(listener net.Listener) error {
	s.ensureRoutes()
	s.httpServer = &http.Server{Handler: s.mux}
	s.logger.Info("server starting", "addr", listener.Addr().String())
	err := s.httpServer.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops accepting new connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleWebSocket upgrades the HTTP request and registers a new client
// connection with the session. Every socket gets a fresh client identity;
// the spec has no login step (§1 Non-goals: authentication beyond the
// trivial owner gate).
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	clientRef := NewClientRef()
	c := NewConnection(conn, clientRef, s.logger, s.session)
	s.session.register(c)
	c.Start()
}
