package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/rickgao/cursorlog/internal/event"
)

// Manager owns the sessions on one namespace and routes their lifecycle notifications.
type Manager struct {
	cfg      ManagerConfig
	writer   Writer
	ack      *Acknowledger
	observer Observer
	logger   *slog.Logger

	upgrader websocket.Upgrader

	// Registry
	mu       sync.RWMutex
	sessions map[string]*Session
	stopped  bool

	// Goroutine coordination
	wg sync.WaitGroup

	// Counters
	accepted atomic.Int64
	messages atomic.Int64
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithObserver reports session and message events to o.
func WithObserver(o Observer) ManagerOption {
	return func(m *Manager) {
		m.observer = o
	}
}

// NewManager creates a new Connection Manager.
func NewManager(cfg ManagerConfig, w Writer, logger *slog.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		cfg:      cfg,
		writer:   w,
		ack:      NewAcknowledger(logger),
		observer: nopObserver{},
		logger:   logger,
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			// Any page may open the channel; there is no client authentication.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ServeHTTP upgrades the request and serves the session until it disconnects.
// net/http runs each request on its own goroutine, so the accept loop never waits on a
// session.
func (m *Manager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// wg.Add happens under mu so Stop never waits on a counter that can still grow.
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	m.wg.Add(1)
	m.mu.Unlock()
	defer m.wg.Done()

	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		m.logger.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	s := newSession(conn, m.cfg.Namespace, m.cfg.Session, m.logger)
	m.serve(s, r.RemoteAddr)
}

// serve runs a session from registration to deregistration.
func (m *Manager) serve(s *Session, remote string) {
	defer s.Close()

	if err := m.OnConnect(s); err != nil {
		s.logger.Warn("session rejected", "remote", remote, "error", err)
		return
	}
	defer m.OnDisconnect(s)

	s.logger.Info("session connected", "remote", remote, "namespace", s.Namespace())

	go s.keepaliveLoop()

	err := s.readLoop(func(data []byte) {
		m.OnMessage(s, data)
	})
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		s.logger.Debug("read loop ended", "error", err)
	}
}

// OnConnect registers s and sends it the connected acknowledgement. Nothing is persisted.
func (m *Manager) OnConnect(s *Session) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return ErrManagerStopped
	}
	if _, exists := m.sessions[s.ID()]; exists || !s.markConnected() {
		m.mu.Unlock()
		return ErrDuplicateSession
	}
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.accepted.Add(1)
	m.observer.SessionOpened()

	if err := m.ack.Send(s, Connected()); err != nil {
		s.logger.Warn("failed to send connected ack", "error", err)
	}
	return nil
}

// OnMessage validates raw, persists it and acknowledges the sender.
//
//   - Valid payload: one write, then {"status":"success","received_data":raw}
//   - Missing field: no write, {"status":"error","message":<reason>}
//   - Write failure or anything unexpected: {"status":"error","message":"internal server error"}
//
// Messages for a session that is not Connected are dropped without a reply.
func (m *Manager) OnMessage(s *Session, raw []byte) (outcome Outcome) {
	if s.State() != StateConnected {
		return OutcomeDropped
	}
	m.messages.Add(1)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("message handler panic", "panic", r)
			m.ack.Send(s, InternalError())
			outcome = OutcomeError
		}
		m.observer.MessageHandled(string(outcome))
	}()

	ev, err := event.Parse(raw)
	if err != nil {
		var verr *event.ValidationError
		if errors.As(err, &verr) {
			s.logger.Info("payload rejected", "reason", verr.Reason, "missing", verr.Missing)
			m.ack.Send(s, ValidationFailed(verr.Reason))
			return OutcomeInvalid
		}
		s.logger.Warn("payload unreadable", "error", err, "bytes", len(raw))
		m.ack.Send(s, InternalError())
		return OutcomeError
	}

	if err := m.writer.Write(s.Context(), ev); err != nil {
		// The writer has already logged the cause.
		m.ack.Send(s, InternalError())
		return OutcomeError
	}

	m.ack.Send(s, Success(ev.Raw))
	return OutcomeSuccess
}

// OnDisconnect deregisters s. No message is sent; the state is terminal.
func (m *Manager) OnDisconnect(s *Session) {
	if !s.markDisconnected() {
		return
	}

	m.mu.Lock()
	delete(m.sessions, s.ID())
	m.mu.Unlock()

	m.observer.SessionClosed()
	s.logger.Info("session disconnected")
}

// Stop closes every session and waits for their read loops to finish.
func (m *Manager) Stop(ctx context.Context) error {
	m.logger.Info("stopping connection manager")

	m.mu.Lock()
	m.stopped = true
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("connection manager stopped")
		return nil
	case <-ctx.Done():
		m.logger.Warn("shutdown timeout, sessions still draining")
		return fmt.Errorf("stop connection manager: %w", ctx.Err())
	}
}

// Session looks up a registered session.
func (m *Manager) Session(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Stats returns current statistics.
func (m *Manager) Stats() ManagerStats {
	m.mu.RLock()
	active := len(m.sessions)
	m.mu.RUnlock()

	return ManagerStats{
		Active:   active,
		Accepted: m.accepted.Load(),
		Messages: m.messages.Load(),
	}
}

type nopObserver struct{}

func (nopObserver) SessionOpened()        {}
func (nopObserver) SessionClosed()        {}
func (nopObserver) MessageHandled(string) {}
