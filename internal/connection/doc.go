// Package connection implements the event channel: the Connection Manager, the
// server-side WebSocket sessions, and the Acknowledger.
//
// The Connection Manager:
//   - Upgrades HTTP requests on the namespace path and registers one Session per client
//   - Acknowledges every new session with {"status":"connected"}
//   - Handles each session's messages in arrival order: validate, persist, acknowledge
//   - Deregisters sessions on disconnect without sending anything
//
// Acknowledgements always go to the session that triggered them. There is no broadcast.
package connection
