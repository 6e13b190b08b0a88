package connection

import (
	"context"
	"errors"
	"time"

	"github.com/rickgao/cursorlog/internal/model"
)

// Errors
var (
	ErrSessionClosed    = errors.New("session closed")
	ErrDuplicateSession = errors.New("session already registered")
	ErrManagerStopped   = errors.New("connection manager stopped")
)

// State is the lifecycle state of a Session.
type State int32

const (
	StateConnected State = iota + 1
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "new"
	}
}

// Outcome classifies how an inbound message was handled.
type Outcome string

const (
	OutcomeSuccess Outcome = "success" // Validated, persisted, acknowledged
	OutcomeInvalid Outcome = "invalid" // Rejected by validation, nothing written
	OutcomeError   Outcome = "error"   // Persistence or unexpected failure
	OutcomeDropped Outcome = "dropped" // Session already disconnected
)

// Writer persists a validated event. Failures carry no driver detail.
type Writer interface {
	Write(ctx context.Context, ev model.CoordinateEvent) error
}

// Observer receives session and message events, typically for metrics.
type Observer interface {
	SessionOpened()
	SessionClosed()
	MessageHandled(outcome string)
}

// SessionConfig configures a server-side WebSocket session.
type SessionConfig struct {
	PingInterval    time.Duration // How often the server pings the client
	PongTimeout     time.Duration // Max silence before the session is considered dead
	WriteTimeout    time.Duration // Write deadline for acknowledgements
	MaxMessageBytes int64         // Larger frames close the session
}

// DefaultSessionConfig returns sensible defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		PingInterval:    25 * time.Second,
		PongTimeout:     60 * time.Second,
		WriteTimeout:    5 * time.Second,
		MaxMessageBytes: 4096,
	}
}

// ManagerConfig configures the Connection Manager.
type ManagerConfig struct {
	Namespace string // Event channel path, e.g. /ws
	Session   SessionConfig
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Namespace: "/ws",
		Session:   DefaultSessionConfig(),
	}
}

// ManagerStats provides statistics about the connection manager.
type ManagerStats struct {
	Active   int   // Sessions currently registered
	Accepted int64 // Sessions registered since start
	Messages int64 // Messages handled since start
}
