package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/rickgao/cursorlog/internal/model"
)

// ReasonMissingData is reported when any required field is absent or null.
const ReasonMissingData = "missing required coordinate or direction data"

// ErrMalformedPayload is returned when a frame is not a JSON object.
var ErrMalformedPayload = errors.New("payload is not a JSON object")

// ValidationError describes a payload rejected before any write.
type ValidationError struct {
	Reason  string
	Missing []string // Wire names of the absent or null fields
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Decode parses a raw frame into an untyped payload. Numbers are kept as json.Number so
// that the values reaching storage are exactly what the client sent.
//
// raw must be exactly one JSON object in valid UTF-8: it is echoed back verbatim in a
// text frame, so anything a JSON parser or a browser would reject is refused here.
func Decode(raw []byte) (map[string]any, error) {
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedPayload)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	// "null" decodes into a nil map without error.
	if payload == nil {
		return nil, ErrMalformedPayload
	}
	// More() is false before a stray ] or }, so insist on EOF.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedPayload)
	}
	return payload, nil
}

// Validate checks the payload for the five required fields and builds a CoordinateEvent.
// raw is carried through unchanged for the success echo.
func Validate(payload map[string]any, raw []byte) (model.CoordinateEvent, error) {
	var missing []string
	for _, field := range model.RequiredFields {
		if v, ok := payload[field]; !ok || v == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return model.CoordinateEvent{}, &ValidationError{
			Reason:  ReasonMissingData,
			Missing: missing,
		}
	}

	return model.CoordinateEvent{
		X:         payload[model.FieldX],
		Y:         payload[model.FieldY],
		DeltaX:    payload[model.FieldDeltaX],
		DeltaY:    payload[model.FieldDeltaY],
		Direction: payload[model.FieldDirection],
		Raw:       json.RawMessage(raw),
	}, nil
}

// Parse decodes and validates a raw frame in one step.
func Parse(raw []byte) (model.CoordinateEvent, error) {
	payload, err := Decode(raw)
	if err != nil {
		return model.CoordinateEvent{}, err
	}
	return Validate(payload, raw)
}
