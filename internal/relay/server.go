package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	DefaultAddr = ":3000"
	DefaultPath = "/socket"
)

// Config describes where the relay listens.
type Config struct {
	Addr string
	Path string
}

// Server exposes a Hub over websockets.
type Server struct {
	cfg      Config
	hub      *Hub
	upgrader websocket.Upgrader
	http     *http.Server
	logger   *log.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

func WithServerLogger(l *log.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer builds a server around hub. The caller runs the hub.
func NewServer(cfg Config, hub *Hub, opts ...ServerOption) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	s := &Server{
		cfg: cfg,
		hub: hub,
		upgrader: websocket.Upgrader{
			// Peers are browsers and tools on any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler serves the websocket endpoint and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.serveWS)
	mux.HandleFunc("/healthz", s.serveHealth)
	return mux
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.Info("relay listening", "addr", s.cfg.Addr, "path", s.cfg.Path)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.hub.Peers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "peers": n})
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	conn := newWSConn(ws)
	defer conn.Close()

	ctx := context.Background()
	id, err := s.hub.Join(ctx, conn)
	if err != nil {
		s.logger.Warn("join failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer func() { _ = s.hub.Leave(ctx, id) }()

	go conn.pingLoop()

	for {
		msgType, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("read failed", "peer", id, "err", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if err := s.hub.Broadcast(ctx, id, msg); err != nil {
			return
		}
	}
}
