// Package event validates inbound coordinate payloads.
//
// Validation only checks presence: each of x, y, deltaX, deltaY and direction must exist
// and must not be JSON null. Types and ranges are left to the storage engine, so a string
// in an integer field passes here and is rejected (or accepted) by the database.
package event
