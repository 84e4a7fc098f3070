// Package server exposes a MaterialBase for remote reasoning over a
// websocket, grounded on the teacher's pkg/server.go: one *http.Server
// multiplexing a /ws upgrade endpoint and a /metrics scrape endpoint behind
// the same mux (SPEC_FULL.md §11).
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nmms-lang/nmms/internal/telemetry"
	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/reasoner"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

// Server serves a single MaterialBase for remote querying and telling.
type Server struct {
	httpServer *http.Server
	metrics    *metrics

	mode         sentence.Mode
	baseName     string
	defaultDepth int

	mu   sync.Mutex   // guards connections/nextConnectionID
	dbMu sync.RWMutex // guards db; §5's "conceptually append-only" rule enforced with a lock

	db               *base.MaterialBase
	connections      map[uuid.UUID]*connection
	nextConnectionID int

	onTell func(*base.MaterialBase) error
}

// SetPersistHook installs fn to run after every successful Tell or AddAtom,
// under the same lock that guards db — so a durable store
// (internal/store.BoltStore) never observes a base older than what was just
// acknowledged to the client. A nil fn (the default) keeps mutations
// purely in-memory, as before.
func (s *Server) SetPersistHook(fn func(*base.MaterialBase) error) {
	s.onTell = fn
}

// New builds a Server over an initial base, listening at addr (host:port).
func New(addr string, name string, initial *base.MaterialBase, defaultDepth int) *Server {
	s := &Server{
		mode:         initial.Mode(),
		baseName:     name,
		defaultDepth: defaultDepth,
		db:           initial,
		connections:  make(map[uuid.UUID]*connection),
	}
	s.metrics = newMetrics(s)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/ws", s.handleWebsocket)

	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Handler returns the server's HTTP handler, exposed for tests that want to
// drive it through an httptest.Server rather than a bound socket.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		telemetry.L(r.Context()).Warnw("websocket upgrade failed", "error", err)
		return
	}
	s.addConnection(ws)
}

func (s *Server) addConnection(ws *websocket.Conn) {
	conn := newConnection(ws, s)

	s.mu.Lock()
	s.connections[conn.id] = conn
	s.nextConnectionID++
	s.mu.Unlock()

	go conn.readLoop()
}

func (s *Server) removeConnection(conn *connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, conn.id)
}

// Query runs derives(gamma, delta) against the current base, forwarding
// each trace line to onTrace as it's produced. maxDepth of 0 uses the
// server's configured default.
func (s *Server) Query(gamma, delta sentence.Set, maxDepth int, onTrace func(string)) reasoner.ProofResult {
	if maxDepth <= 0 {
		maxDepth = s.defaultDepth
	}
	s.dbMu.RLock()
	defer s.dbMu.RUnlock()

	r := reasoner.New(s.db, reasoner.WithMaxDepth(maxDepth), reasoner.WithTraceListener(onTrace))
	return r.Derives(gamma, delta)
}

// Tell adds (gamma, delta) as a base consequence.
func (s *Server) Tell(gamma, delta sentence.Set) error {
	s.dbMu.Lock()
	defer s.dbMu.Unlock()
	if err := s.db.AddConsequence(gamma, delta); err != nil {
		return err
	}
	return s.persist()
}

// AddAtom adds a to the base's language.
func (s *Server) AddAtom(a sentence.Sentence) error {
	s.dbMu.Lock()
	defer s.dbMu.Unlock()
	if err := s.db.AddAtom(a); err != nil {
		return err
	}
	return s.persist()
}

func (s *Server) persist() error {
	if s.onTell == nil {
		return nil
	}
	return s.onTell(s.db)
}

// ListenAndServe starts serving HTTP. It blocks until the server stops.
func (s *Server) ListenAndServe() error {
	telemetry.L(context.Background()).Infow("serving nmms", "addr", s.httpServer.Addr, "base", s.baseName)
	return s.httpServer.ListenAndServe()
}

// Close shuts down the HTTP server.
func (s *Server) Close() error {
	if err := s.httpServer.Close(); err != nil {
		return errors.Wrap(err, "closing nmms server")
	}
	return nil
}
