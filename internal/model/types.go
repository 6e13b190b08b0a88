package model

import "encoding/json"

// Wire field names of an inbound coordinate payload.
const (
	FieldX         = "x"
	FieldY         = "y"
	FieldDeltaX    = "deltaX"
	FieldDeltaY    = "deltaY"
	FieldDirection = "direction"
)

// RequiredFields lists every field that must be present and non-null, in column order.
var RequiredFields = []string{FieldX, FieldY, FieldDeltaX, FieldDeltaY, FieldDirection}

// Storage layout of the coordinates table.
const (
	CoordinatesTable   = "coordinates"
	MaxDirectionLength = 10
)

// CoordinateEvent is one validated pointer sample, ready to persist.
//
// Field values are whatever the client sent. Presence is guaranteed; type is not.
type CoordinateEvent struct {
	X         any
	Y         any
	DeltaX    any
	DeltaY    any
	Direction any

	// Raw is the exact inbound payload, echoed back on success.
	Raw json.RawMessage
}

// Values returns the five column values in insert order.
func (e CoordinateEvent) Values() []any {
	return []any{e.X, e.Y, e.DeltaX, e.DeltaY, e.Direction}
}

// CoordinateRow is a persisted coordinate as stored by the engine.
type CoordinateRow struct {
	ID        int64  // Store-assigned, auto-incrementing
	X         int64  // Absolute position
	Y         int64  // Absolute position
	DeltaX    int64  // Displacement since previous sample
	DeltaY    int64  // Displacement since previous sample
	Direction string // Up to 10 characters
}
