package connection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Session is one client's live connection on the event channel.
type Session struct {
	id        string
	namespace string
	cfg       SessionConfig
	logger    *slog.Logger

	conn *websocket.Conn

	// Cancelled when the session closes; waits tied to this session stop early.
	ctx    context.Context
	cancel context.CancelFunc

	// Write serialization
	writeMu sync.Mutex

	// State
	mu          sync.RWMutex
	state       State
	connectedAt time.Time
	lastSeenAt  time.Time
	closeOnce   sync.Once
}

// newSession wraps an upgraded connection. The session has no state until the manager
// registers it.
func newSession(conn *websocket.Conn, namespace string, cfg SessionConfig, logger *slog.Logger) *Session {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:        id,
		namespace: namespace,
		cfg:       cfg,
		logger:    logger.With("session_id", id),
		conn:      conn,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// ID returns the opaque session identifier.
func (s *Session) ID() string {
	return s.id
}

// Namespace returns the channel the session connected on.
func (s *Session) Namespace() string {
	return s.namespace
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ConnectedAt returns when the session was registered.
func (s *Session) ConnectedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connectedAt
}

// Context is cancelled when the session closes.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Send writes one text frame. Returns ErrSessionClosed once the session is disconnected.
func (s *Session) Send(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// Checked under writeMu so nothing is written after markDisconnected returns.
	if s.State() != StateConnected {
		return ErrSessionClosed
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// markConnected moves a new session to Connected. Returns false for any other state.
func (s *Session) markConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != 0 {
		return false
	}
	s.state = StateConnected
	s.connectedAt = time.Now()
	s.lastSeenAt = s.connectedAt
	return true
}

// markDisconnected moves the session to the terminal Disconnected state. Returns false if
// it was already there. Waits for any frame being written to finish.
func (s *Session) markDisconnected() bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		return false
	}
	s.state = StateDisconnected
	return true
}

// Close sends a close frame and closes the connection. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		// WriteControl is safe to call concurrently with other writes.
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = s.conn.Close()
	})
	return err
}

// readLoop delivers every data frame to handle, in arrival order, until the connection
// fails or is closed. handle runs on the read goroutine, so frame n+1 is not read before
// frame n has been fully handled.
func (s *Session) readLoop(handle func(data []byte)) error {
	s.conn.SetReadLimit(s.cfg.MaxMessageBytes)
	s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.mu.Lock()
		s.lastSeenAt = time.Now()
		s.mu.Unlock()
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	})

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			return err
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}
		// Any frame proves the client is alive.
		s.mu.Lock()
		s.lastSeenAt = time.Now()
		s.mu.Unlock()
		s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
		handle(data)
	}
}

// keepaliveLoop pings the client until the session context is cancelled.
func (s *Session) keepaliveLoop() {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				s.logger.Debug("failed to send ping", "error", err)
			}

			s.mu.RLock()
			lastSeen := s.lastSeenAt
			s.mu.RUnlock()

			if time.Since(lastSeen) > s.cfg.PongTimeout {
				s.logger.Warn("client silent, session stale",
					"last_seen", lastSeen,
					"timeout", s.cfg.PongTimeout,
				)
				s.Close()
				return
			}
		}
	}
}
