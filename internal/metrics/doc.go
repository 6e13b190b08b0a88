// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Active and total event-channel sessions
//   - Message outcomes (success, invalid, error)
//   - Insert latency and failures
package metrics
