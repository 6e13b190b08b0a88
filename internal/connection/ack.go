package connection

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// Ack statuses.
const (
	StatusConnected = "connected"
	StatusSuccess   = "success"
	StatusError     = "error"
)

// MessageInternalError is the only text a client sees for persistence or unexpected
// failures.
const MessageInternalError = "internal server error"

// Ack is a server→client acknowledgement.
type Ack struct {
	Status       string
	Message      string          // Error acks only
	ReceivedData json.RawMessage // Success acks only, the inbound payload verbatim
}

// Connected acknowledges a new session.
func Connected() Ack {
	return Ack{Status: StatusConnected}
}

// Success echoes the validated payload back unmodified.
func Success(raw json.RawMessage) Ack {
	return Ack{Status: StatusSuccess, ReceivedData: raw}
}

// ValidationFailed reports why a payload was rejected.
func ValidationFailed(reason string) Ack {
	return Ack{Status: StatusError, Message: reason}
}

// InternalError reports a failure without any detail.
func InternalError() Ack {
	return Ack{Status: StatusError, Message: MessageInternalError}
}

// Encode renders the ack as a JSON object. received_data is spliced in byte for byte;
// json.Marshal would compact and HTML-escape it.
func (a Ack) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"status":`)
	writeJSONString(&buf, a.Status)
	if a.Message != "" {
		buf.WriteString(`,"message":`)
		writeJSONString(&buf, a.Message)
	}
	if a.ReceivedData != nil {
		buf.WriteString(`,"received_data":`)
		buf.Write(a.ReceivedData)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// Acknowledger addresses acknowledgements to a single session.
type Acknowledger struct {
	logger *slog.Logger
}

// NewAcknowledger creates a new Acknowledger.
func NewAcknowledger(logger *slog.Logger) *Acknowledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Acknowledger{logger: logger}
}

// Send writes ack to s only. A closed session yields ErrSessionClosed and nothing is sent.
func (a *Acknowledger) Send(s *Session, ack Ack) error {
	if err := s.Send(ack.Encode()); err != nil {
		a.logger.Debug("ack not delivered",
			"session_id", s.ID(),
			"status", ack.Status,
			"error", err,
		)
		return err
	}
	return nil
}
